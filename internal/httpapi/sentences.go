package httpapi

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"tafsiri.site/backend/internal/db"
	"tafsiri.site/backend/schema"
)

func (s *Server) handleAddSentence(c echo.Context) error {
	raw, err := readRequestBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	payload, err := schema.ValidatePendingSentencePayload(raw)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	if s.opts.EnglishDetection && s.isEnglish != nil && !s.isEnglish(payload.EnglishSentence) {
		return failValidation(c, map[string]string{"english_sentence": "does not appear to be English"})
	}

	record, err := s.dataStore().AddPendingSentence(c.Request().Context(), payload.EnglishSentence, payload.Timestamp)
	if err != nil {
		s.logger.Error().Err(err).Msg("add pending sentence failed")
		return internalError(c, "Failed to add sentence")
	}

	return created(c, map[string]any{
		"message":  "Sentence added successfully",
		"sentence": record,
	})
}

func (s *Server) handleNextSentence(c echo.Context) error {
	language := strings.TrimSpace(c.QueryParam("language"))
	if language == "" {
		return failValidation(c, map[string]string{"language": "is required"})
	}

	record, err := s.dataStore().NextUntranslatedSentence(c.Request().Context(), language)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return success(c, map[string]any{
				"message": "No sentences available for translation",
			})
		}
		s.logger.Error().Err(err).Str("language", language).Msg("next untranslated sentence failed")
		return internalError(c, "Failed to load next sentence")
	}

	return success(c, map[string]any{
		"sentence": record,
	})
}

func (s *Server) handleMarkSentenceTranslated(c echo.Context) error {
	sentenceID := strings.TrimSpace(c.Param("sentence_id"))
	if sentenceID == "" {
		return failValidation(c, map[string]string{"sentence_id": "is required"})
	}
	language := strings.TrimSpace(c.QueryParam("language"))
	if language == "" {
		return failValidation(c, map[string]string{"language": "is required"})
	}

	if err := s.dataStore().MarkSentenceTranslated(c.Request().Context(), sentenceID, language); err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return failNotFound(c, "Sentence not found")
		}
		s.logger.Error().Err(err).Str("sentence_id", sentenceID).Msg("mark sentence translated failed")
		return internalError(c, "Failed to update sentence")
	}

	return success(c, map[string]any{
		"message": "Sentence updated successfully",
	})
}
