package db

import (
	"context"
	"errors"

	"github.com/danmwangi/schoolhub/internal/config"
	"github.com/danmwangi/schoolhub/internal/repo/postgres"
	"github.com/danmwangi/schoolhub/internal/security"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser creates the configured admin account on a fresh
// database so the API is usable before anyone signs up. A no-op when the
// admin account already exists or when no admin credentials are set.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	users := postgres.NewUsersRepo(pool)

	_, err := users.GetByEmail(ctx, cfg.AdminEmail)

	if err == nil {
		return nil
	}

	if !errors.Is(err, postgres.ErrUserNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = users.Create(ctx, cfg.AdminUsername, cfg.AdminEmail, hash, cfg.AdminUserType)

	if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
		// lost a startup race to another instance, fine
		return nil
	}

	return err
}
