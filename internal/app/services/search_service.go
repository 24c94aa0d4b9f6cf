package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/repositories"
)

// Global search caps each result collection.
const searchResultLimit = 10

// SearchService implements the global search bar
type SearchService interface {
	Search(ctx context.Context, query string, viewerID int64) (*dto.GlobalSearchResponse, error)
}

type searchServiceImpl struct {
	postRepo *repositories.PostRepository
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(postRepo *repositories.PostRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) SearchService {
	return &searchServiceImpl{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Search matches posts by title/description and users by username/bio. A
// blank query returns empty collections.
func (s *searchServiceImpl) Search(ctx context.Context, query string, viewerID int64) (*dto.GlobalSearchResponse, error) {
	resp := &dto.GlobalSearchResponse{
		Posts: []dto.PostResponse{},
		Users: []dto.UserSummary{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return resp, nil
	}

	posts, err := s.postRepo.SearchPosts(ctx, query, viewerID, searchResultLimit)
	if err != nil {
		return nil, err
	}
	resp.Posts = toPostResponses(posts)

	users, err := s.userRepo.SearchUsers(ctx, query, viewerID, searchResultLimit)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		resp.Users = append(resp.Users, *dto.ToUserSummary(u))
	}

	return resp, nil
}
