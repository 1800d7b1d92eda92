package httpapi

import (
	"github.com/labstack/echo/v4"

	"tafsiri.site/backend/internal/db"
	"tafsiri.site/backend/schema"
)

func (s *Server) handleRegisterUser(c echo.Context) error {
	raw, err := readRequestBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	payload, err := schema.ValidateUserPayload(raw)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	record, err := s.dataStore().CreateUser(c.Request().Context(), db.CreateUserParams{
		FirebaseUID: payload.FirebaseUID,
		Name:        payload.Name,
		Role:        payload.Role,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("create user failed")
		return internalError(c, "Failed to register user")
	}

	return created(c, map[string]any{
		"message": "User registered successfully",
		"user":    record,
	})
}

func (s *Server) handleListUsers(c echo.Context) error {
	rows, err := s.dataStore().ListUsers(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list users failed")
		return internalError(c, "Failed to load users")
	}

	return success(c, map[string]any{
		"users": rows,
	})
}
