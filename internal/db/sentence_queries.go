package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tafsiri.site/backend/internal/globaltime"
)

// PendingSentenceRecord is the read model for one pending English sentence.
type PendingSentenceRecord struct {
	ID                  string    `json:"id"`
	EnglishSentence     string    `json:"english_sentence"`
	LanguagesTranslated []string  `json:"language_translated"`
	Timestamp           time.Time `json:"timestamp"`
}

// AddPendingSentence persists one English sentence with an empty translated
// set and a fresh id.
func (p *Pool) AddPendingSentence(ctx context.Context, englishSentence string, timestamp *time.Time) (*PendingSentenceRecord, error) {
	if strings.TrimSpace(englishSentence) == "" {
		return nil, fmt.Errorf("add pending sentence: english_sentence is required")
	}

	ts := globaltime.UTC()
	if timestamp != nil {
		ts = timestamp.UTC()
	}

	record := &PendingSentenceRecord{
		ID:                  uuid.NewString(),
		EnglishSentence:     englishSentence,
		LanguagesTranslated: []string{},
		Timestamp:           ts,
	}

	const q = `
INSERT INTO pending_sentences (sentence_uuid, english_sentence, language_translated, timestamp)
VALUES ($1::uuid, $2, '[]'::jsonb, $3)
`
	if _, err := p.Exec(ctx, q, record.ID, record.EnglishSentence, record.Timestamp); err != nil {
		return nil, fmt.Errorf("insert pending sentence: %w", err)
	}

	return record, nil
}

// NextUntranslatedSentence returns the first sentence (store-native order)
// not yet translated into the language. ErrNoRows when none remain; callers
// treat that as an empty pool, not a failure.
func (p *Pool) NextUntranslatedSentence(ctx context.Context, language string) (*PendingSentenceRecord, error) {
	const q = `
SELECT sentence_uuid::text, english_sentence, language_translated, timestamp
FROM pending_sentences
WHERE NOT (language_translated @> to_jsonb($1::text))
ORDER BY sentence_id ASC
LIMIT 1
`
	var (
		record       PendingSentenceRecord
		languagesRaw []byte
	)
	if err := p.QueryRow(ctx, q, language).Scan(
		&record.ID,
		&record.EnglishSentence,
		&languagesRaw,
		&record.Timestamp,
	); err != nil {
		if IsNoRows(err) {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("query next untranslated sentence: %w", err)
	}

	record.LanguagesTranslated = []string{}
	if len(languagesRaw) > 0 {
		if err := json.Unmarshal(languagesRaw, &record.LanguagesTranslated); err != nil {
			return nil, fmt.Errorf("decode language_translated: %w", err)
		}
	}
	return &record, nil
}

// MarkSentenceTranslated appends the language to the sentence's translated
// set. The append is a single conditional update, so two concurrent calls for
// the same language cannot produce a duplicate entry; repeating the call is a
// no-op. ErrNoRows when the id matches nothing.
func (p *Pool) MarkSentenceTranslated(ctx context.Context, sentenceID, language string) error {
	trimmedID := strings.TrimSpace(sentenceID)
	if uuid.Validate(trimmedID) != nil {
		return ErrNoRows
	}
	if strings.TrimSpace(language) == "" {
		return fmt.Errorf("mark sentence translated: language is required")
	}

	const q = `
UPDATE pending_sentences
SET language_translated = language_translated || to_jsonb($2::text)
WHERE sentence_uuid = $1::uuid
  AND NOT (language_translated @> to_jsonb($2::text))
`
	tag, err := p.Exec(ctx, q, trimmedID, language)
	if err != nil {
		return fmt.Errorf("mark sentence translated: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the language was already present (idempotent success)
	// or the sentence does not exist.
	const existsQuery = `SELECT 1 FROM pending_sentences WHERE sentence_uuid = $1::uuid`
	var one int
	if err := p.QueryRow(ctx, existsQuery, trimmedID).Scan(&one); err != nil {
		if IsNoRows(err) {
			return ErrNoRows
		}
		return fmt.Errorf("check sentence exists: %w", err)
	}
	return nil
}
