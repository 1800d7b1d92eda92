package httpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"tafsiri.site/backend/internal/translation"
)

const (
	translateSourceLang = "English"
	translateTargetLang = "Kalenjin"

	maxBatchTexts = 50
)

type translateRequest struct {
	Text string `json:"text"`
}

type batchTranslateRequest struct {
	Texts []string `json:"texts"`
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if strings.TrimSpace(req.Text) == "" {
		return failValidation(c, map[string]string{"text": "Input text cannot be empty"})
	}

	provider, err := s.translationProvider()
	if err != nil {
		s.logger.Error().Err(err).Msg("resolve translation provider failed")
		return internalError(c, "Translation service is not configured")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.opts.TranslationTimeout)
	defer cancel()

	resp, err := provider.Translate(ctx, translation.TranslateRequest{
		Text:       req.Text,
		SourceLang: translateSourceLang,
		TargetLang: translateTargetLang,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("provider", provider.Name()).Msg("translation failed")
		return internalError(c, fmt.Sprintf("Translation error: %v", err))
	}

	return success(c, map[string]any{
		"translated_text": resp.Text,
		"source_lang":     translateSourceLang,
		"target_lang":     translateTargetLang,
	})
}

func (s *Server) handleTranslateBatch(c echo.Context) error {
	var req batchTranslateRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if len(req.Texts) == 0 {
		return failValidation(c, map[string]string{"texts": "at least one text is required"})
	}
	if len(req.Texts) > maxBatchTexts {
		return failValidation(c, map[string]string{"texts": fmt.Sprintf("at most %d texts per request", maxBatchTexts)})
	}
	for idx, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			return failValidation(c, map[string]string{"texts": fmt.Sprintf("text at index %d is empty", idx)})
		}
	}

	provider, err := s.translationProvider()
	if err != nil {
		s.logger.Error().Err(err).Msg("resolve translation provider failed")
		return internalError(c, "Translation service is not configured")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.opts.TranslationTimeout)
	defer cancel()

	resp, err := provider.TranslateBatch(ctx, translation.BatchTranslateRequest{
		Texts:      req.Texts,
		SourceLang: translateSourceLang,
		TargetLang: translateTargetLang,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("provider", provider.Name()).Msg("batch translation failed")
		return internalError(c, fmt.Sprintf("Translation error: %v", err))
	}

	return success(c, map[string]any{
		"translations": resp.Texts,
		"source_lang":  translateSourceLang,
		"target_lang":  translateTargetLang,
	})
}

func (s *Server) translationProvider() (translation.Provider, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("no translation registry configured")
	}
	return s.registry.Provider("")
}
