package httpapi

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"tafsiri.site/backend/internal/db"
)

// requireAdmin resolves the caller as an admin before any moderation
// mutation. A non-admin identity short-circuits with 403 and the wrapped
// handler never runs.
func (s *Server) requireAdmin(c echo.Context, verifierUID string) (bool, error) {
	_, err := s.dataStore().FindAdmin(c.Request().Context(), verifierUID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, db.ErrNoRows) {
		return false, failForbidden(c, "Unauthorized: Admin access required")
	}
	s.logger.Error().Err(err).Str("verifier_uid", verifierUID).Msg("admin lookup failed")
	return false, internalError(c, "Failed to verify admin access")
}

func (s *Server) handleListUnverified(c echo.Context) error {
	skip, err := parseNonNegativeInt(c.QueryParam("skip"), 0, 1_000_000)
	if err != nil {
		return failValidation(c, map[string]string{"skip": err.Error()})
	}
	limit, err := parsePositiveInt(c.QueryParam("limit"), defaultListLimit, 1, maxListLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	start, err := parseTimeFilter(c.QueryParam("timestamp_start"), false)
	if err != nil {
		return failValidation(c, map[string]string{"timestamp_start": "must be RFC3339 or YYYY-MM-DD"})
	}
	end, err := parseTimeFilter(c.QueryParam("timestamp_end"), true)
	if err != nil {
		return failValidation(c, map[string]string{"timestamp_end": "must be RFC3339 or YYYY-MM-DD"})
	}
	if (start == nil) != (end == nil) {
		return failValidation(c, map[string]string{"time_range": "timestamp_start and timestamp_end must be provided together"})
	}
	if start != nil && end != nil && start.After(*end) {
		return failValidation(c, map[string]string{"time_range": "timestamp_start must be <= timestamp_end"})
	}

	filter := db.UnverifiedFilter{
		TranslationFilter: db.TranslationFilter{
			Source:           strings.TrimSpace(c.QueryParam("source")),
			Language:         strings.TrimSpace(c.QueryParam("language")),
			TranslatorAuthID: strings.TrimSpace(c.QueryParam("translator_auth_id")),
			Skip:             skip,
			Limit:            limit,
		},
		TimestampStart: start,
		TimestampEnd:   end,
	}
	if filter.Source != "" && !db.IsValidTranslationSource(filter.Source) {
		return failValidation(c, map[string]string{"source": db.ErrInvalidSource.Error()})
	}

	rows, err := s.dataStore().ListUnverifiedTranslations(c.Request().Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("list unverified translations failed")
		return internalError(c, "Failed to load unverified translations")
	}

	return success(c, map[string]any{
		"translations": rows,
	})
}

func (s *Server) handleVerifyTranslation(c echo.Context) error {
	translationID := strings.TrimSpace(c.Param("translation_id"))
	if translationID == "" {
		return failValidation(c, map[string]string{"translation_id": "is required"})
	}
	verifierUID := strings.TrimSpace(c.QueryParam("verifier_uid"))
	if verifierUID == "" {
		return failValidation(c, map[string]string{"verifier_uid": "is required"})
	}

	if ok, err := s.requireAdmin(c, verifierUID); !ok {
		return err
	}

	if err := s.dataStore().MarkTranslationVerified(c.Request().Context(), translationID, verifierUID); err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return failNotFound(c, "Translation not found")
		}
		s.logger.Error().Err(err).Str("translation_id", translationID).Msg("verify translation failed")
		return internalError(c, "Failed to verify translation")
	}

	return success(c, map[string]any{
		"message": "Translation verified successfully",
	})
}

func (s *Server) handleRejectTranslation(c echo.Context) error {
	translationID := strings.TrimSpace(c.Param("translation_id"))
	if translationID == "" {
		return failValidation(c, map[string]string{"translation_id": "is required"})
	}
	verifierUID := strings.TrimSpace(c.QueryParam("verifier_uid"))
	if verifierUID == "" {
		return failValidation(c, map[string]string{"verifier_uid": "is required"})
	}

	if ok, err := s.requireAdmin(c, verifierUID); !ok {
		return err
	}

	if err := s.dataStore().MarkTranslationRejected(c.Request().Context(), translationID, verifierUID); err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return failNotFound(c, "Translation not found")
		}
		s.logger.Error().Err(err).Str("translation_id", translationID).Msg("reject translation failed")
		return internalError(c, "Failed to reject translation")
	}

	return success(c, map[string]any{
		"message": "Translation rejected successfully",
	})
}
