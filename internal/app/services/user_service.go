package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/repositories"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
	"github.com/cybersleuth25/unisphere/internal/pkg/filestorage"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UserService defines profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error)
	RemoveAvatar(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type userServiceImpl struct {
	userRepo    *repositories.UserRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, fileStorage filestorage.FileStorage, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateProfile applies the edit-profile form and returns the updated user.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Bio = req.Bio
	user.Branch = req.Branch
	user.Semester = req.Semester

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateAvatar stores the uploaded image and records its path. The previous
// avatar file is removed on success.
func (s *userServiceImpl) UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return nil, apperrors.NewValidationError("avatar must be an image file")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.fileStorage.SaveFileWithPath(file, "avatars")
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to store avatar")
		return nil, err
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, &path); err != nil {
		return nil, err
	}

	if user.AvatarPath != nil && *user.AvatarPath != "" {
		if err := s.fileStorage.DeleteFile(*user.AvatarPath); err != nil {
			s.logger.Warn().Err(err).Str("path", *user.AvatarPath).Msg("Failed to delete old avatar file")
		}
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// RemoveAvatar clears the avatar path and deletes the stored file.
func (s *userServiceImpl) RemoveAvatar(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, nil); err != nil {
		return nil, err
	}

	if user.AvatarPath != nil && *user.AvatarPath != "" {
		if err := s.fileStorage.DeleteFile(*user.AvatarPath); err != nil {
			s.logger.Warn().Err(err).Str("path", *user.AvatarPath).Msg("Failed to delete avatar file")
		}
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userServiceImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetUserByEmail(ctx, email)
}
