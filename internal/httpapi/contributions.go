package httpapi

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tafsiri.site/backend/internal/db"
	"tafsiri.site/backend/internal/globaltime"
	"tafsiri.site/backend/schema"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (s *Server) handleAddContribution(c echo.Context) error {
	raw, err := readRequestBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	payload, err := schema.ValidateContributionPayload(raw)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	record, err := s.dataStore().AddTranslation(c.Request().Context(), db.AddTranslationParams{
		TranslatorAuthID:   payload.TranslatorAuthID,
		Language:           payload.Language,
		EnglishSentence:    payload.EnglishSentence,
		TranslatedSentence: payload.TranslatedSentence,
		Source:             payload.Source,
		Timestamp:          payload.Timestamp,
	})
	if err != nil {
		if errors.Is(err, db.ErrInvalidSource) {
			return failValidation(c, map[string]string{"source": db.ErrInvalidSource.Error()})
		}
		s.logger.Error().Err(err).Msg("add translation failed")
		return internalError(c, "Failed to add translation")
	}

	return created(c, map[string]any{
		"message":     "Translation added successfully",
		"translation": record,
	})
}

func (s *Server) handleListContributions(c echo.Context) error {
	skip, err := parseNonNegativeInt(c.QueryParam("skip"), 0, 1_000_000)
	if err != nil {
		return failValidation(c, map[string]string{"skip": err.Error()})
	}
	limit, err := parsePositiveInt(c.QueryParam("limit"), defaultListLimit, 1, maxListLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	filter := db.TranslationFilter{
		Source:           strings.TrimSpace(c.QueryParam("source")),
		Language:         strings.TrimSpace(c.QueryParam("language")),
		TranslatorAuthID: strings.TrimSpace(c.QueryParam("translator_auth_id")),
		Skip:             skip,
		Limit:            limit,
	}
	if filter.Source != "" && !db.IsValidTranslationSource(filter.Source) {
		return failValidation(c, map[string]string{"source": db.ErrInvalidSource.Error()})
	}

	rows, err := s.dataStore().ListTranslations(c.Request().Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("list translations failed")
		return internalError(c, "Failed to load translations")
	}

	return success(c, map[string]any{
		"translations": rows,
	})
}

func (s *Server) handleSearchContributions(c echo.Context) error {
	language := strings.TrimSpace(c.QueryParam("language"))
	englishSentence := strings.TrimSpace(c.QueryParam("english_sentence"))

	rows, err := s.dataStore().SearchTranslations(c.Request().Context(), language, englishSentence)
	if err != nil {
		s.logger.Error().Err(err).Msg("search translations failed")
		return internalError(c, "Failed to search translations")
	}

	return success(c, map[string]any{
		"translations": rows,
	})
}

func (s *Server) handleContributionStats(c echo.Context) error {
	translatorAuthID := strings.TrimSpace(c.QueryParam("translator_auth_id"))
	if translatorAuthID == "" {
		return failValidation(c, map[string]string{"translator_auth_id": "is required"})
	}

	since, err := resolveTimeWindow(c.QueryParam("time_filter"), globaltime.UTC())
	if err != nil {
		return failValidation(c, map[string]string{"time_filter": err.Error()})
	}

	rows, err := s.dataStore().TranslatorContributions(c.Request().Context(), translatorAuthID, since)
	if err != nil {
		s.logger.Error().Err(err).Str("translator_auth_id", translatorAuthID).Msg("query contributions failed")
		return internalError(c, "Failed to load contribution stats")
	}

	return success(c, db.BuildContributionStats(rows))
}

// resolveTimeWindow maps a time_filter query value onto an inclusive lower
// bound. The window anchors on one clock reading so every sub-aggregate in the
// response covers the same rows.
func resolveTimeWindow(raw string, now time.Time) (*time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return nil, nil
	case "week":
		since := now.AddDate(0, 0, -7)
		return &since, nil
	case "month":
		since := now.AddDate(0, 0, -30)
		return &since, nil
	}
	return nil, errors.New("must be one of: week, month, all")
}
