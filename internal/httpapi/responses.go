package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func success(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func fail(c echo.Context, status int, message string, details map[string]string) error {
	return c.JSON(status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func failValidation(c echo.Context, details map[string]string) error {
	return fail(c, http.StatusBadRequest, "Validation failed", details)
}

func failNotFound(c echo.Context, message string) error {
	return fail(c, http.StatusNotFound, message, nil)
}

func failForbidden(c echo.Context, message string) error {
	return fail(c, http.StatusForbidden, message, nil)
}

func internalError(c echo.Context, message string) error {
	return fail(c, http.StatusInternalServerError, message, nil)
}

func readRequestBody(c echo.Context) ([]byte, error) {
	body := c.Request().Body
	if body == nil {
		return nil, fmt.Errorf("request body is required")
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return raw, nil
}

func decodeJSONBody(c echo.Context, target any) error {
	raw, err := readRequestBody(c)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("request body is required")
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if decoder.More() {
		return fmt.Errorf("request body must contain a single JSON value")
	}
	return nil
}
