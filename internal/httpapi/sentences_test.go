package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"tafsiri.site/backend/internal/db"
)

func TestHandleAddSentence_PersistsAndReturnsCreated(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodPost, "/sentences", `{"english_sentence": "The sun rises in the east"}`)
	if err := server.handleAddSentence(c); err != nil {
		t.Fatalf("handleAddSentence returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusCreated)
	}
	if len(store.addSentenceCalls) != 1 || store.addSentenceCalls[0] != "The sun rises in the east" {
		t.Fatalf("unexpected add calls: %#v", store.addSentenceCalls)
	}

	var body struct {
		Sentence db.PendingSentenceRecord `json:"sentence"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Sentence.ID == "" {
		t.Fatalf("expected sentence id in response")
	}
	if body.Sentence.LanguagesTranslated == nil || len(body.Sentence.LanguagesTranslated) != 0 {
		t.Fatalf("expected empty language_translated array, got %#v", body.Sentence.LanguagesTranslated)
	}
}

func TestHandleAddSentence_RejectsNonEnglishText(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)
	server.isEnglish = func(string) bool { return false }

	_, c, rec := newJSONContext(http.MethodPost, "/sentences", `{"english_sentence": "Jua huchomoza mashariki kila asubuhi"}`)
	if err := server.handleAddSentence(c); err != nil {
		t.Fatalf("handleAddSentence returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if len(store.addSentenceCalls) != 0 {
		t.Fatalf("expected no persistence for non-English text, got %d", len(store.addSentenceCalls))
	}
}

func TestHandleAddSentence_SkipsDetectionWhenDisabled(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)
	server.opts.EnglishDetection = false
	server.isEnglish = func(string) bool { return false }

	_, c, rec := newJSONContext(http.MethodPost, "/sentences", `{"english_sentence": "Jua huchomoza mashariki"}`)
	if err := server.handleAddSentence(c); err != nil {
		t.Fatalf("handleAddSentence returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusCreated)
	}
	if len(store.addSentenceCalls) != 1 {
		t.Fatalf("expected one add call, got %d", len(store.addSentenceCalls))
	}
}

func TestHandleNextSentence_SkipsAlreadyTranslatedLanguage(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	store.sentences = []db.PendingSentenceRecord{
		{ID: "s-1", EnglishSentence: "first", LanguagesTranslated: []string{"Kalenjin"}, Timestamp: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "s-2", EnglishSentence: "second", LanguagesTranslated: []string{}, Timestamp: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
	}
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/sentences/next?language=Kalenjin", "")
	if err := server.handleNextSentence(c); err != nil {
		t.Fatalf("handleNextSentence returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Sentence db.PendingSentenceRecord `json:"sentence"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Sentence.ID != "s-2" {
		t.Fatalf("unexpected next sentence: %#v", body.Sentence)
	}
}

func TestHandleNextSentence_EmptyQueueReturnsMessage(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/sentences/next?language=Kalenjin", "")
	if err := server.handleNextSentence(c); err != nil {
		t.Fatalf("handleNextSentence returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "No sentences available for translation" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestHandleNextSentence_RequiresLanguage(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/sentences/next", "")
	if err := server.handleNextSentence(c); err != nil {
		t.Fatalf("handleNextSentence returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if len(store.nextSentenceCalls) != 0 {
		t.Fatalf("expected no query without language, got %d", len(store.nextSentenceCalls))
	}
}

func TestHandleMarkSentenceTranslated_AppendsLanguageOnce(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	store.sentences = []db.PendingSentenceRecord{
		{ID: "s-1", EnglishSentence: "first", LanguagesTranslated: []string{}},
	}
	server := newTestServer(store)

	for attempt := 0; attempt < 2; attempt++ {
		_, c, rec := newJSONContext(http.MethodPut, "/sentences/s-1?language=Kalenjin", "")
		c.SetParamNames("sentence_id")
		c.SetParamValues("s-1")

		if err := server.handleMarkSentenceTranslated(c); err != nil {
			t.Fatalf("handleMarkSentenceTranslated returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
		}
	}

	if got := store.sentences[0].LanguagesTranslated; len(got) != 1 || got[0] != "Kalenjin" {
		t.Fatalf("expected language appended exactly once, got %#v", got)
	}
}

func TestHandleMarkSentenceTranslated_UnknownIDReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodPut, "/sentences/missing?language=Kalenjin", "")
	c.SetParamNames("sentence_id")
	c.SetParamValues("missing")

	if err := server.handleMarkSentenceTranslated(c); err != nil {
		t.Fatalf("handleMarkSentenceTranslated returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusNotFound)
	}
}
