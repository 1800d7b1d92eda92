package httpapi

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tafsiri.site/backend/internal/db"
)

type verifyCall struct {
	translationID string
	verifierUID   string
}

type markSentenceCall struct {
	sentenceID string
	language   string
}

type fakeDataStore struct {
	translations     []db.TranslationRecord
	sentences        []db.PendingSentenceRecord
	users            []db.UserRecord
	adminsByUID      map[string]*db.UserRecord
	pingErr          error
	addErr           error
	listErr          error
	contributionsErr error

	addTranslationCalls []db.AddTranslationParams
	listFilters         []db.TranslationFilter
	unverifiedFilters   []db.UnverifiedFilter
	searchCalls         [][2]string
	verifyCalls         []verifyCall
	rejectCalls         []verifyCall
	contributionCalls   []string
	contributionSince   []*time.Time
	addSentenceCalls    []string
	nextSentenceCalls   []string
	markSentenceCalls   []markSentenceCall
	createUserCalls     []db.CreateUserParams
	findAdminCalls      []string
}

func newFakeDataStore() *fakeDataStore {
	return &fakeDataStore{
		adminsByUID: map[string]*db.UserRecord{},
	}
}

func (s *fakeDataStore) AddTranslation(_ context.Context, params db.AddTranslationParams) (*db.TranslationRecord, error) {
	s.addTranslationCalls = append(s.addTranslationCalls, params)
	if s.addErr != nil {
		return nil, s.addErr
	}
	if !db.IsValidTranslationSource(params.Source) {
		return nil, db.ErrInvalidSource
	}

	record := db.TranslationRecord{
		ID:                 "33333333-3333-3333-3333-333333333333",
		TranslatorAuthID:   params.TranslatorAuthID,
		Language:           params.Language,
		EnglishSentence:    params.EnglishSentence,
		TranslatedSentence: params.TranslatedSentence,
		Source:             params.Source,
		Timestamp:          time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	s.translations = append(s.translations, record)
	copyRecord := record
	return &copyRecord, nil
}

func (s *fakeDataStore) ListTranslations(_ context.Context, filter db.TranslationFilter) ([]db.TranslationRecord, error) {
	s.listFilters = append(s.listFilters, filter)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]db.TranslationRecord(nil), s.translations...), nil
}

func (s *fakeDataStore) SearchTranslations(_ context.Context, language, englishSentence string) ([]db.TranslationRecord, error) {
	s.searchCalls = append(s.searchCalls, [2]string{language, englishSentence})

	matches := make([]db.TranslationRecord, 0, len(s.translations))
	for _, row := range s.translations {
		if language != "" && row.Language != language {
			continue
		}
		if englishSentence != "" && !strings.EqualFold(row.EnglishSentence, englishSentence) {
			continue
		}
		matches = append(matches, row)
	}
	return matches, nil
}

func (s *fakeDataStore) ListUnverifiedTranslations(_ context.Context, filter db.UnverifiedFilter) ([]db.TranslationRecord, error) {
	s.unverifiedFilters = append(s.unverifiedFilters, filter)

	matches := make([]db.TranslationRecord, 0, len(s.translations))
	for _, row := range s.translations {
		if !row.Verified {
			matches = append(matches, row)
		}
	}
	return matches, nil
}

func (s *fakeDataStore) MarkTranslationVerified(_ context.Context, translationID, verifierUID string) error {
	s.verifyCalls = append(s.verifyCalls, verifyCall{translationID: translationID, verifierUID: verifierUID})
	for idx := range s.translations {
		if s.translations[idx].ID == translationID {
			s.translations[idx].Verified = true
			return nil
		}
	}
	return db.ErrNoRows
}

func (s *fakeDataStore) MarkTranslationRejected(_ context.Context, translationID, verifierUID string) error {
	s.rejectCalls = append(s.rejectCalls, verifyCall{translationID: translationID, verifierUID: verifierUID})
	for idx := range s.translations {
		if s.translations[idx].ID == translationID {
			status := "rejected"
			s.translations[idx].Status = &status
			return nil
		}
	}
	return db.ErrNoRows
}

func (s *fakeDataStore) TranslatorContributions(_ context.Context, translatorAuthID string, since *time.Time) ([]db.TranslationRecord, error) {
	s.contributionCalls = append(s.contributionCalls, translatorAuthID)
	s.contributionSince = append(s.contributionSince, since)
	if s.contributionsErr != nil {
		return nil, s.contributionsErr
	}

	matches := make([]db.TranslationRecord, 0, len(s.translations))
	for _, row := range s.translations {
		if row.TranslatorAuthID != translatorAuthID {
			continue
		}
		if since != nil && row.Timestamp.Before(*since) {
			continue
		}
		matches = append(matches, row)
	}
	return matches, nil
}

func (s *fakeDataStore) AddPendingSentence(_ context.Context, englishSentence string, _ *time.Time) (*db.PendingSentenceRecord, error) {
	s.addSentenceCalls = append(s.addSentenceCalls, englishSentence)

	record := db.PendingSentenceRecord{
		ID:                  "44444444-4444-4444-4444-444444444444",
		EnglishSentence:     englishSentence,
		LanguagesTranslated: []string{},
		Timestamp:           time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	s.sentences = append(s.sentences, record)
	copyRecord := record
	return &copyRecord, nil
}

func (s *fakeDataStore) NextUntranslatedSentence(_ context.Context, language string) (*db.PendingSentenceRecord, error) {
	s.nextSentenceCalls = append(s.nextSentenceCalls, language)

	for _, row := range s.sentences {
		translated := false
		for _, done := range row.LanguagesTranslated {
			if done == language {
				translated = true
				break
			}
		}
		if !translated {
			copyRow := row
			return &copyRow, nil
		}
	}
	return nil, db.ErrNoRows
}

func (s *fakeDataStore) MarkSentenceTranslated(_ context.Context, sentenceID, language string) error {
	s.markSentenceCalls = append(s.markSentenceCalls, markSentenceCall{sentenceID: sentenceID, language: language})
	for idx := range s.sentences {
		if s.sentences[idx].ID == sentenceID {
			for _, done := range s.sentences[idx].LanguagesTranslated {
				if done == language {
					return nil
				}
			}
			s.sentences[idx].LanguagesTranslated = append(s.sentences[idx].LanguagesTranslated, language)
			return nil
		}
	}
	return db.ErrNoRows
}

func (s *fakeDataStore) CreateUser(_ context.Context, params db.CreateUserParams) (*db.UserRecord, error) {
	s.createUserCalls = append(s.createUserCalls, params)

	role := params.Role
	if role == "" {
		role = db.RoleUser
	}
	record := db.UserRecord{
		ID:          "55555555-5555-5555-5555-555555555555",
		FirebaseUID: params.FirebaseUID,
		Name:        params.Name,
		Role:        role,
		Timestamp:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	s.users = append(s.users, record)
	copyRecord := record
	return &copyRecord, nil
}

func (s *fakeDataStore) ListUsers(_ context.Context) ([]db.UserRecord, error) {
	return append([]db.UserRecord(nil), s.users...), nil
}

func (s *fakeDataStore) FindAdmin(_ context.Context, firebaseUID string) (*db.UserRecord, error) {
	s.findAdminCalls = append(s.findAdminCalls, firebaseUID)
	row, exists := s.adminsByUID[firebaseUID]
	if !exists {
		return nil, db.ErrNoRows
	}
	copyRow := *row
	return &copyRow, nil
}

func (s *fakeDataStore) Ping(_ context.Context) error {
	return s.pingErr
}

func newJSONContext(
	method string,
	path string,
	body string,
) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}
