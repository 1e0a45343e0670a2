// Package seed creates the default admin account on first startup.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/mkaya/campusdesk/internal/app/models"
	appRepos "github.com/mkaya/campusdesk/internal/app/repositories"
	"github.com/mkaya/campusdesk/internal/config"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	pkgAuth "github.com/mkaya/campusdesk/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// CreateDefaultData creates the default admin user if it doesn't exist.
// Every other account is created through the admin API.
func CreateDefaultData(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	hash, err := pkgAuth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		ID:       cfg.Seed.AdminID,
		Name:     cfg.Seed.AdminName,
		Role:     appModels.RoleAdmin,
		HashPass: hash,
	}

	err = userRepo.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			lgr.Debug().Str("userId", admin.ID).Msg("Default admin already exists, skipping")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	lgr.Info().Str("userId", admin.ID).Msg("Default admin created")
	return nil
}
