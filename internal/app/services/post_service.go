package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/auth"
	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/repositories"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
	"github.com/cybersleuth25/unisphere/internal/pkg/filestorage"
	"github.com/cybersleuth25/unisphere/internal/pkg/helpers"
)

// PostService defines the feed operations
type PostService interface {
	ListPosts(ctx context.Context, rawType string, filter *dto.PostListFilter, viewerID int64) ([]dto.PostResponse, error)
	GetPost(ctx context.Context, postID, viewerID int64) (dto.PostResponse, error)
	CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (dto.PostResponse, error)
	UpdatePost(ctx context.Context, postID, userID int64, req *dto.UpdatePostRequest) (dto.PostResponse, error)
	DeletePost(ctx context.Context, postID, userID int64) error
	ToggleLike(ctx context.Context, postID, userID int64) (*dto.LikeResponse, error)
}

type postServiceImpl struct {
	postRepo    *repositories.PostRepository
	userRepo    *repositories.UserRepository
	authz       auth.AuthorizationService
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo *repositories.PostRepository,
	userRepo *repositories.UserRepository,
	authz auth.AuthorizationService,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		userRepo:    userRepo,
		authz:       authz,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// ListPosts returns one page of a typed feed, newest first. Filters that do
// not apply to the type are ignored.
func (s *postServiceImpl) ListPosts(ctx context.Context, rawType string, filter *dto.PostListFilter, viewerID int64) ([]dto.PostResponse, error) {
	postType, err := models.ParsePostType(rawType)
	if err != nil {
		return nil, err
	}

	// Only the filter the type understands is forwarded.
	effective := &dto.PostListFilter{Search: filter.Search}
	switch postType.FilterKey() {
	case "status":
		effective.Status = filter.Status
	case "category":
		effective.Category = filter.Category
	case "cost_type":
		effective.CostType = filter.CostType
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	posts, err := s.postRepo.GetPosts(ctx, postType, effective, viewerID, offset, limit)
	if err != nil {
		return nil, err
	}

	return toPostResponses(posts), nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID, viewerID int64) (dto.PostResponse, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID, viewerID)
	if err != nil {
		return dto.PostResponse{}, err
	}
	return dto.ToPostResponse(post), nil
}

// CreatePost validates the typed fields, stores the optional image and
// inserts the post. Announcements and events require the admin role.
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (dto.PostResponse, error) {
	postType, err := models.ParsePostType(req.PostType)
	if err != nil {
		return dto.PostResponse{}, err
	}

	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	if !s.authz.CanCreatePostType(author, postType) {
		return dto.PostResponse{}, apperrors.NewForbiddenError("only admins can create posts of this type")
	}

	post := &models.Post{
		AuthorID:    authorID,
		PostType:    postType,
		Title:       req.Title,
		Description: req.Description,
		Status:      helpers.NilIfEmpty(req.Status),
		Category:    helpers.NilIfEmpty(req.Category),
		CostType:    helpers.NilIfEmpty(req.CostType),
	}
	if err := post.ValidateTypeFields(); err != nil {
		return dto.PostResponse{}, err
	}

	if image != nil {
		path, err := s.fileStorage.SaveFileWithPath(image, "posts")
		if err != nil {
			s.logger.Error().Err(err).Int64("authorID", authorID).Msg("Failed to store post image")
			return dto.PostResponse{}, err
		}
		post.ImagePath = &path
	}

	id, err := s.postRepo.CreatePost(ctx, post)
	if err != nil {
		return dto.PostResponse{}, err
	}

	s.logger.Info().Int64("postID", id).Str("postType", string(postType)).Int64("authorID", authorID).Msg("Post created")

	created, err := s.postRepo.GetPostByID(ctx, id, authorID)
	if err != nil {
		return dto.PostResponse{}, err
	}
	return dto.ToPostResponse(created), nil
}

// UpdatePost edits title and description. Allowed for the author and admins.
func (s *postServiceImpl) UpdatePost(ctx context.Context, postID, userID int64, req *dto.UpdatePostRequest) (dto.PostResponse, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID, userID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	if !s.authz.CanModifyPost(user, post) {
		return dto.PostResponse{}, apperrors.NewForbiddenError("only the author or an admin can edit this post")
	}

	if err := s.postRepo.UpdatePost(ctx, postID, req.Title, req.Description); err != nil {
		return dto.PostResponse{}, err
	}

	updated, err := s.postRepo.GetPostByID(ctx, postID, userID)
	if err != nil {
		return dto.PostResponse{}, err
	}
	return dto.ToPostResponse(updated), nil
}

// DeletePost removes a post and its stored image. Allowed for the author and
// admins.
func (s *postServiceImpl) DeletePost(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.authz.CanModifyPost(user, post) {
		return apperrors.NewForbiddenError("only the author or an admin can delete this post")
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}

	if post.ImagePath != nil && *post.ImagePath != "" {
		if err := s.fileStorage.DeleteFile(*post.ImagePath); err != nil {
			s.logger.Warn().Err(err).Str("path", *post.ImagePath).Msg("Failed to delete post image file")
		}
	}

	s.logger.Info().Int64("postID", postID).Int64("userID", userID).Msg("Post deleted")
	return nil
}

// ToggleLike flips the caller's like on a post and returns the new count.
func (s *postServiceImpl) ToggleLike(ctx context.Context, postID, userID int64) (*dto.LikeResponse, error) {
	count, liked, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Likes: count, Liked: liked}, nil
}

func toPostResponses(posts []*models.Post) []dto.PostResponse {
	out := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.ToPostResponse(p))
	}
	return out
}
