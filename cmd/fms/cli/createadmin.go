// Package cli implements the maintenance subcommands of the fms binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omar-zaman/omam-fms/internal/auth"
	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// Run dispatches a CLI subcommand.
func Run(ctx context.Context, args []string, pool *pgxpool.Pool, logger *slog.Logger) error {
	switch args[0] {
	case "createadmin":
		return createAdmin(ctx, pool, logger)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// createAdmin seeds the default admin account when it does not exist yet.
func createAdmin(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	service := auth.NewService(auth.NewRepository(pool))

	user, err := service.Register(ctx, defaultAdminUsername, defaultAdminPassword, auth.RoleAdmin)
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			logger.Info("admin user already exists, nothing to do")
			return nil
		}
		return err
	}

	logger.Info("admin user created", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
	return nil
}
