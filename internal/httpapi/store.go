package httpapi

import (
	"context"
	"time"

	"tafsiri.site/backend/internal/db"
)

// dataStore is the slice of the database pool the handlers touch. Tests swap
// in a fake; production always runs on *db.Pool.
type dataStore interface {
	AddTranslation(ctx context.Context, params db.AddTranslationParams) (*db.TranslationRecord, error)
	ListTranslations(ctx context.Context, filter db.TranslationFilter) ([]db.TranslationRecord, error)
	SearchTranslations(ctx context.Context, language, englishSentence string) ([]db.TranslationRecord, error)
	ListUnverifiedTranslations(ctx context.Context, filter db.UnverifiedFilter) ([]db.TranslationRecord, error)
	MarkTranslationVerified(ctx context.Context, translationID, verifierUID string) error
	MarkTranslationRejected(ctx context.Context, translationID, verifierUID string) error
	TranslatorContributions(ctx context.Context, translatorAuthID string, since *time.Time) ([]db.TranslationRecord, error)

	AddPendingSentence(ctx context.Context, englishSentence string, timestamp *time.Time) (*db.PendingSentenceRecord, error)
	NextUntranslatedSentence(ctx context.Context, language string) (*db.PendingSentenceRecord, error)
	MarkSentenceTranslated(ctx context.Context, sentenceID, language string) error

	CreateUser(ctx context.Context, params db.CreateUserParams) (*db.UserRecord, error)
	ListUsers(ctx context.Context) ([]db.UserRecord, error)
	FindAdmin(ctx context.Context, firebaseUID string) (*db.UserRecord, error)

	Ping(ctx context.Context) error
}

func (s *Server) dataStore() dataStore {
	if s.store != nil {
		return s.store
	}
	return s.pool
}
