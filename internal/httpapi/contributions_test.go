package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tafsiri.site/backend/internal/db"
)

func newTestServer(store *fakeDataStore) *Server {
	return &Server{
		logger: zerolog.Nop(),
		opts: Options{
			TranslationTimeout: time.Second,
			EnglishDetection:   true,
		},
		store:     store,
		isEnglish: func(string) bool { return true },
	}
}

func TestHandleAddContribution_PersistsAndReturnsCreated(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodPost, "/contributions", `{
		"translator_auth_id": "uid-1",
		"language": "Kalenjin",
		"english_sentence": "Good morning",
		"translated_sentence": "Chamgei",
		"source": "original"
	}`)
	if err := server.handleAddContribution(c); err != nil {
		t.Fatalf("handleAddContribution returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusCreated)
	}
	if len(store.addTranslationCalls) != 1 {
		t.Fatalf("expected one add call, got %d", len(store.addTranslationCalls))
	}
	if got := store.addTranslationCalls[0].Source; got != db.SourceOriginal {
		t.Fatalf("unexpected source: %q", got)
	}

	var body struct {
		Message     string               `json:"message"`
		Translation db.TranslationRecord `json:"translation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Translation.ID == "" {
		t.Fatalf("expected translation id in response, got %#v", body)
	}
}

func TestHandleAddContribution_RejectsUnknownSource(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodPost, "/contributions", `{
		"translator_auth_id": "uid-1",
		"language": "Kalenjin",
		"english_sentence": "Good morning",
		"translated_sentence": "Chamgei",
		"source": "crowdsourced"
	}`)
	if err := server.handleAddContribution(c); err != nil {
		t.Fatalf("handleAddContribution returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if len(store.addTranslationCalls) != 0 {
		t.Fatalf("expected no add call for invalid source, got %d", len(store.addTranslationCalls))
	}
}

func TestHandleAddContribution_RejectsEmptyBody(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodPost, "/contributions", "")
	if err := server.handleAddContribution(c); err != nil {
		t.Fatalf("handleAddContribution returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleListContributions_PassesFilterAndDefaults(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	store.translations = []db.TranslationRecord{
		{ID: "a", Language: "Kalenjin", Source: db.SourceOriginal},
	}
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/contributions?language=Kalenjin&source=original", "")
	if err := server.handleListContributions(c); err != nil {
		t.Fatalf("handleListContributions returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}
	if len(store.listFilters) != 1 {
		t.Fatalf("expected one list call, got %d", len(store.listFilters))
	}
	filter := store.listFilters[0]
	if filter.Language != "Kalenjin" || filter.Source != db.SourceOriginal {
		t.Fatalf("unexpected filter: %#v", filter)
	}
	if filter.Skip != 0 || filter.Limit != defaultListLimit {
		t.Fatalf("unexpected pagination defaults: skip=%d limit=%d", filter.Skip, filter.Limit)
	}
}

func TestHandleListContributions_RejectsInvalidPagination(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/contributions?limit=500", "")
	if err := server.handleListContributions(c); err != nil {
		t.Fatalf("handleListContributions returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if len(store.listFilters) != 0 {
		t.Fatalf("expected no list call, got %d", len(store.listFilters))
	}
}

func TestHandleSearchContributions_MatchesCaseInsensitively(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	store.translations = []db.TranslationRecord{
		{ID: "a", Language: "Kalenjin", EnglishSentence: "Good morning"},
		{ID: "b", Language: "Kalenjin", EnglishSentence: "Good night"},
	}
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/contributions/search?language=Kalenjin&english_sentence=good+morning", "")
	if err := server.handleSearchContributions(c); err != nil {
		t.Fatalf("handleSearchContributions returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Translations []db.TranslationRecord `json:"translations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Translations) != 1 || body.Translations[0].ID != "a" {
		t.Fatalf("unexpected search result: %#v", body.Translations)
	}
}

func TestHandleContributionStats_RequiresTranslator(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/contributions/stats", "")
	if err := server.handleContributionStats(c); err != nil {
		t.Fatalf("handleContributionStats returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if len(store.contributionCalls) != 0 {
		t.Fatalf("expected no stats query, got %d", len(store.contributionCalls))
	}
}

func TestHandleContributionStats_RejectsUnknownTimeFilter(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/contributions/stats?translator_auth_id=uid-1&time_filter=year", "")
	if err := server.handleContributionStats(c); err != nil {
		t.Fatalf("handleContributionStats returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleContributionStats_AggregatesRows(t *testing.T) {
	t.Parallel()

	store := newFakeDataStore()
	store.translations = []db.TranslationRecord{
		{ID: "a", TranslatorAuthID: "uid-1", Language: "Kalenjin", Source: db.SourceOriginal, Timestamp: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)},
		{ID: "b", TranslatorAuthID: "uid-1", Language: "Kalenjin", Source: db.SourceSentenceDB, Timestamp: time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)},
		{ID: "c", TranslatorAuthID: "uid-2", Language: "Swahili", Source: db.SourceOriginal, Timestamp: time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)},
	}
	server := newTestServer(store)

	_, c, rec := newJSONContext(http.MethodGet, "/contributions/stats?translator_auth_id=uid-1&time_filter=all", "")
	if err := server.handleContributionStats(c); err != nil {
		t.Fatalf("handleContributionStats returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}
	if len(store.contributionSince) != 1 || store.contributionSince[0] != nil {
		t.Fatalf("expected unbounded window, got %#v", store.contributionSince)
	}

	var stats db.ContributionStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("unexpected total: %d", stats.Total)
	}
	if stats.BySource[db.SourceOriginal] != 1 || stats.BySource[db.SourceSentenceDB] != 1 {
		t.Fatalf("unexpected by_source: %#v", stats.BySource)
	}
	if stats.ByLanguage["Kalenjin"] != 2 {
		t.Fatalf("unexpected by_language: %#v", stats.ByLanguage)
	}
}

func TestResolveTimeWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		raw     string
		want    *time.Time
		wantErr bool
	}{
		{raw: "", want: nil},
		{raw: "all", want: nil},
		{raw: "week", want: timePtr(now.AddDate(0, 0, -7))},
		{raw: "Month", want: timePtr(now.AddDate(0, 0, -30))},
		{raw: "year", wantErr: true},
	}
	for _, tc := range cases {
		got, err := resolveTimeWindow(tc.raw, now)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("resolveTimeWindow(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("resolveTimeWindow(%q): %v", tc.raw, err)
		}
		if (got == nil) != (tc.want == nil) {
			t.Fatalf("resolveTimeWindow(%q): got %v want %v", tc.raw, got, tc.want)
		}
		if got != nil && !got.Equal(*tc.want) {
			t.Fatalf("resolveTimeWindow(%q): got %v want %v", tc.raw, got, tc.want)
		}
	}
}

func timePtr(value time.Time) *time.Time {
	return &value
}
