package dto

import "github.com/cybersleuth25/unisphere/internal/app/models"

// UserSummary is the public view of a user rendered on cards, search results
// and conversation headers.
type UserSummary struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Bio        string `json:"bio,omitempty"`
	AvatarPath string `json:"avatarPath,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Semester   string `json:"semester,omitempty"`
}

// ToUserSummary maps a user model to its public view.
func ToUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	s := &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
		Bio:      u.Bio,
		Branch:   u.Branch,
		Semester: u.Semester,
	}
	if u.AvatarPath != nil {
		s.AvatarPath = *u.AvatarPath
	}
	return s
}

// UpdateProfileRequest represents the edit-profile form payload
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Bio      string `json:"bio" binding:"omitempty,max=1000"`
	Branch   string `json:"branch" binding:"omitempty,max=100"`
	Semester string `json:"semester" binding:"omitempty,max=10"`
}
