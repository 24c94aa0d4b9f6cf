package auth

import (
	"github.com/cybersleuth25/unisphere/internal/app/models"
)

// AuthorizationService centralizes resource-level permission checks.
type AuthorizationService interface {
	// CanCreatePostType reports whether the user may create posts of the given type.
	CanCreatePostType(user *models.User, postType models.PostType) bool

	// CanModifyPost reports whether the user may edit or delete the post.
	CanModifyPost(user *models.User, post *models.Post) bool
}

type authorizationServiceImpl struct{}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService() AuthorizationService {
	return &authorizationServiceImpl{}
}

func (s *authorizationServiceImpl) CanCreatePostType(user *models.User, postType models.PostType) bool {
	if user == nil {
		return false
	}
	if postType.AdminOnly() {
		return user.IsAdmin()
	}
	return true
}

// CanModifyPost allows the author and admins.
func (s *authorizationServiceImpl) CanModifyPost(user *models.User, post *models.Post) bool {
	if user == nil || post == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return post.AuthorID == user.ID
}
