package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tafsiri.site/backend/internal/config"
	"tafsiri.site/backend/internal/db"
)

// ensureDefaultAdmin seeds one admin user when the users table is empty and
// DEFAULT_ADMIN_UID is configured. Without an admin, no moderation endpoint
// is usable.
func ensureDefaultAdmin(ctx context.Context, pool *db.Pool, cfg *config.Config, logger zerolog.Logger) error {
	if pool == nil || cfg == nil {
		return fmt.Errorf("ensure default admin: missing dependencies")
	}

	adminUID := strings.TrimSpace(cfg.DefaultAdminUID)
	if adminUID == "" {
		return nil
	}

	userCount, err := pool.CountUsers(ctx)
	if err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	adminName := strings.TrimSpace(cfg.DefaultAdminName)
	if adminName == "" {
		adminName = "admin"
	}

	user, err := pool.CreateUser(ctx, db.CreateUserParams{
		FirebaseUID: adminUID,
		Name:        adminName,
		Role:        db.RoleAdmin,
	})
	if err != nil {
		return err
	}

	logger.Warn().
		Str("firebaseuid", user.FirebaseUID).
		Str("name", user.Name).
		Msg("created default admin user")

	return nil
}
