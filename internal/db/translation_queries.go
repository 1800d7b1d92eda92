package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tafsiri.site/backend/internal/globaltime"
)

// Translation provenance values. Everything else is rejected before persistence.
const (
	SourceOriginal   = "original"
	SourceSentenceDB = "sentence_db"
	SourceFlagged    = "flagged"
)

// ErrInvalidSource marks a translation whose source is outside the enum.
var ErrInvalidSource = errors.New("translation source must be one of: original, sentence_db, flagged")

// translationListCap bounds every translation listing, matching the original
// collection read limit.
const translationListCap = 100

const defaultTranslationLimit = 20

// TranslationRecord is the read model for one contribution.
type TranslationRecord struct {
	ID                 string    `json:"id"`
	TranslatorAuthID   string    `json:"translator_auth_id"`
	Language           string    `json:"language"`
	EnglishSentence    string    `json:"english_sentence"`
	TranslatedSentence string    `json:"translated_sentence"`
	Source             string    `json:"source"`
	Timestamp          time.Time `json:"timestamp"`
	Verified           bool      `json:"verified"`
	VerifiedBy         *string   `json:"verified_by,omitempty"`
	Status             *string   `json:"status,omitempty"`
	RejectedBy         *string   `json:"rejected_by,omitempty"`
}

// AddTranslationParams carries a fully-formed contribution minus the
// system-generated fields.
type AddTranslationParams struct {
	TranslatorAuthID   string
	Language           string
	EnglishSentence    string
	TranslatedSentence string
	Source             string
	Timestamp          *time.Time
}

// TranslationFilter is an optional conjunction over source, language, and
// translator identity. Empty fields are skipped.
type TranslationFilter struct {
	Source           string
	Language         string
	TranslatorAuthID string
	Skip             int
	Limit            int
}

// UnverifiedFilter extends TranslationFilter with an inclusive timestamp
// range, applied only when both bounds are set.
type UnverifiedFilter struct {
	TranslationFilter
	TimestampStart *time.Time
	TimestampEnd   *time.Time
}

func IsValidTranslationSource(source string) bool {
	switch source {
	case SourceOriginal, SourceSentenceDB, SourceFlagged:
		return true
	}
	return false
}

const translationColumns = `
	translation_uuid::text,
	translator_auth_id,
	language,
	english_sentence,
	translated_sentence,
	source,
	timestamp,
	verified,
	verified_by,
	status,
	rejected_by`

// AddTranslation persists one contribution with a fresh id. The source enum is
// enforced here as well as at the request boundary.
func (p *Pool) AddTranslation(ctx context.Context, params AddTranslationParams) (*TranslationRecord, error) {
	if !IsValidTranslationSource(params.Source) {
		return nil, fmt.Errorf("add translation: %w", ErrInvalidSource)
	}
	if strings.TrimSpace(params.TranslatorAuthID) == "" ||
		strings.TrimSpace(params.Language) == "" ||
		strings.TrimSpace(params.EnglishSentence) == "" ||
		strings.TrimSpace(params.TranslatedSentence) == "" {
		return nil, fmt.Errorf("add translation: all of translator_auth_id, language, english_sentence, translated_sentence are required")
	}

	timestamp := globaltime.UTC()
	if params.Timestamp != nil {
		timestamp = params.Timestamp.UTC()
	}

	record := &TranslationRecord{
		ID:                 uuid.NewString(),
		TranslatorAuthID:   params.TranslatorAuthID,
		Language:           params.Language,
		EnglishSentence:    params.EnglishSentence,
		TranslatedSentence: params.TranslatedSentence,
		Source:             params.Source,
		Timestamp:          timestamp,
		Verified:           false,
	}

	const q = `
INSERT INTO translations (translation_uuid, translator_auth_id, language, english_sentence, translated_sentence, source, timestamp, verified)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, FALSE)
`
	if _, err := p.Exec(ctx, q,
		record.ID,
		record.TranslatorAuthID,
		record.Language,
		record.EnglishSentence,
		record.TranslatedSentence,
		record.Source,
		record.Timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert translation: %w", err)
	}

	return record, nil
}

// ListTranslations returns contributions matching the filter in store-native
// order. No matches yields an empty slice, never an error.
func (p *Pool) ListTranslations(ctx context.Context, filter TranslationFilter) ([]TranslationRecord, error) {
	skip, limit := normalizePage(filter.Skip, filter.Limit)

	q := `
SELECT` + translationColumns + `
FROM translations
WHERE ($1 = '' OR source = $1)
  AND ($2 = '' OR language = $2)
  AND ($3 = '' OR translator_auth_id = $3)
LIMIT $4
OFFSET $5
`
	rows, err := p.Query(ctx, q, filter.Source, filter.Language, filter.TranslatorAuthID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	return collectTranslationRows(rows, limit)
}

// SearchTranslations filters by optional language and an anchored
// case-insensitive full-string match on english_sentence.
func (p *Pool) SearchTranslations(ctx context.Context, language, englishSentence string) ([]TranslationRecord, error) {
	q := `
SELECT` + translationColumns + `
FROM translations
WHERE ($1 = '' OR language = $1)
  AND ($2 = '' OR LOWER(english_sentence) = LOWER($2))
LIMIT $3
`
	rows, err := p.Query(ctx, q, language, englishSentence, translationListCap)
	if err != nil {
		return nil, fmt.Errorf("search translations: %w", err)
	}
	defer rows.Close()

	return collectTranslationRows(rows, translationListCap)
}

// ListUnverifiedTranslations is ListTranslations constrained to verified=FALSE
// plus an inclusive timestamp range when both bounds are present.
func (p *Pool) ListUnverifiedTranslations(ctx context.Context, filter UnverifiedFilter) ([]TranslationRecord, error) {
	skip, limit := normalizePage(filter.Skip, filter.Limit)

	var start, end *time.Time
	if filter.TimestampStart != nil && filter.TimestampEnd != nil {
		start = filter.TimestampStart
		end = filter.TimestampEnd
	}

	q := `
SELECT` + translationColumns + `
FROM translations
WHERE verified = FALSE
  AND ($1 = '' OR source = $1)
  AND ($2 = '' OR language = $2)
  AND ($3 = '' OR translator_auth_id = $3)
  AND ($4::timestamptz IS NULL OR timestamp >= $4)
  AND ($5::timestamptz IS NULL OR timestamp <= $5)
LIMIT $6
OFFSET $7
`
	rows, err := p.Query(ctx, q, filter.Source, filter.Language, filter.TranslatorAuthID, start, end, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("query unverified translations: %w", err)
	}
	defer rows.Close()

	return collectTranslationRows(rows, limit)
}

// MarkTranslationVerified sets verified=TRUE and records the verifier.
// ErrNoRows when the id matches nothing.
func (p *Pool) MarkTranslationVerified(ctx context.Context, translationID, verifierUID string) error {
	if uuid.Validate(strings.TrimSpace(translationID)) != nil {
		return ErrNoRows
	}

	const q = `
UPDATE translations
SET verified = TRUE, verified_by = $2
WHERE translation_uuid = $1::uuid
`
	tag, err := p.Exec(ctx, q, strings.TrimSpace(translationID), verifierUID)
	if err != nil {
		return fmt.Errorf("mark translation verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

// MarkTranslationRejected sets status=rejected and records the rejecter.
// ErrNoRows when the id matches nothing.
func (p *Pool) MarkTranslationRejected(ctx context.Context, translationID, verifierUID string) error {
	if uuid.Validate(strings.TrimSpace(translationID)) != nil {
		return ErrNoRows
	}

	const q = `
UPDATE translations
SET status = 'rejected', rejected_by = $2
WHERE translation_uuid = $1::uuid
`
	tag, err := p.Exec(ctx, q, strings.TrimSpace(translationID), verifierUID)
	if err != nil {
		return fmt.Errorf("mark translation rejected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

// TranslatorContributions returns every contribution by one translator since
// the optional bound, oldest first. One query feeds all stats sub-aggregates
// so they always describe the same snapshot.
func (p *Pool) TranslatorContributions(ctx context.Context, translatorAuthID string, since *time.Time) ([]TranslationRecord, error) {
	q := `
SELECT` + translationColumns + `
FROM translations
WHERE translator_auth_id = $1
  AND ($2::timestamptz IS NULL OR timestamp >= $2)
ORDER BY timestamp ASC, translation_id ASC
`
	rows, err := p.Query(ctx, q, translatorAuthID, since)
	if err != nil {
		return nil, fmt.Errorf("query translator contributions: %w", err)
	}
	defer rows.Close()

	return collectTranslationRows(rows, 64)
}

func collectTranslationRows(rows *Rows, sizeHint int) ([]TranslationRecord, error) {
	if sizeHint <= 0 {
		sizeHint = defaultTranslationLimit
	}

	items := make([]TranslationRecord, 0, sizeHint)
	for rows.Next() {
		var row TranslationRecord
		if err := rows.Scan(
			&row.ID,
			&row.TranslatorAuthID,
			&row.Language,
			&row.EnglishSentence,
			&row.TranslatedSentence,
			&row.Source,
			&row.Timestamp,
			&row.Verified,
			&row.VerifiedBy,
			&row.Status,
			&row.RejectedBy,
		); err != nil {
			return nil, fmt.Errorf("scan translation row: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translation rows: %w", err)
	}
	return items, nil
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultTranslationLimit
	}
	if limit > translationListCap {
		limit = translationListCap
	}
	return skip, limit
}
