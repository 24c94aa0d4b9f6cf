package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/cybersleuth25/unisphere/internal/app/models"
	appRepos "github.com/cybersleuth25/unisphere/internal/app/repositories"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
	"github.com/cybersleuth25/unisphere/internal/pkg/auth"
	"github.com/cybersleuth25/unisphere/internal/pkg/dberrors"
)

// CreateDefaultData creates the default admin account if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account)...")

	_, err := userRepo.GetUserByEmail(ctx, "admin@unisphere.edu")
	if err == nil {
		// Admin already present
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for admin user")
		return err
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := auth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Username: "admin",
		Email:    "admin@unisphere.edu",
		Password: hashedPassword,
		Role:     appModels.RoleAdmin,
		Bio:      "Platform administrator",
	}
	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		// Another instance may have created it concurrently.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) || errors.Is(err, apperrors.ErrUsernameAlreadyExists) || dberrors.IsUniqueViolation(err) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Str("email", admin.Email).Msg("Default admin user created")
	return nil
}
