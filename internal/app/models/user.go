package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username   string    `json:"username" db:"username" example:"jdoe"`                    // Unique display name
	Email      string    `json:"email" db:"email" example:"jdoe@university.edu"`           // User's email address
	Password   string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Role       RoleType  `json:"role" db:"role" example:"student"`                         // User's role (student or admin)
	Bio        string    `json:"bio" db:"bio" example:"CS undergrad, coffee enthusiast"`   // Short free-form description
	AvatarPath *string   `json:"avatarPath,omitempty" db:"avatar_path"`                    // Stored avatar file path (nullable)
	Branch     string    `json:"branch" db:"branch" example:"Computer Science"`            // Study branch
	Semester   string    `json:"semester" db:"semester" example:"5"`                       // Current semester
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
