package models

import (
	"time"

	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

// PostType discriminates the five post categories. Each type carries at most
// one structured field beyond title/description.
type PostType string

const (
	PostTypeAnnouncements PostType = "announcements"
	PostTypeEvents        PostType = "events"
	PostTypeResources     PostType = "resources"
	PostTypeLostFound     PostType = "lostfound"
	PostTypeCourses       PostType = "courses"
)

// Lost & found status values
const (
	LostFoundStatusLost  = "Lost"
	LostFoundStatusFound = "Found"
)

// Course cost values
const (
	CostTypeFree = "Free"
	CostTypePaid = "Paid"
)

// Resource categories offered by the client filter bar
var ResourceCategories = []string{"Lecture Notes", "Textbooks", "Exam Papers", "Project Code", "Other"}

// ParsePostType validates a raw type string.
func ParsePostType(s string) (PostType, error) {
	switch PostType(s) {
	case PostTypeAnnouncements, PostTypeEvents, PostTypeResources, PostTypeLostFound, PostTypeCourses:
		return PostType(s), nil
	}
	return "", apperrors.ErrInvalidPostType
}

// AdminOnly reports whether only admins may create posts of this type.
func (t PostType) AdminOnly() bool {
	return t == PostTypeAnnouncements || t == PostTypeEvents
}

// FilterKey returns the name of the type-specific filter field, or "" when the
// type has none.
func (t PostType) FilterKey() string {
	switch t {
	case PostTypeResources:
		return "category"
	case PostTypeLostFound:
		return "status"
	case PostTypeCourses:
		return "cost_type"
	case PostTypeAnnouncements, PostTypeEvents:
		return ""
	}
	return ""
}

// Post defines the post model based on the 'posts' table. The nullable
// Status/Category/CostType columns hold the type-specific field of the
// variant identified by PostType; the others stay nil.
type Post struct {
	ID          int64     `json:"id" db:"id"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	PostType    PostType  `json:"postType" db:"post_type"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"` // markdown, rendered client-side
	ImagePath   *string   `json:"imagePath,omitempty" db:"image_path"`
	Status      *string   `json:"status,omitempty" db:"status"`
	Category    *string   `json:"category,omitempty" db:"category"`
	CostType    *string   `json:"costType,omitempty" db:"cost_type"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Author *User `json:"author,omitempty"` // Relation, no db tag

	// Like aggregates, populated by the repository per requesting user
	LikeCount   int  `json:"likes"`
	LikedByUser bool `json:"likedByUser"`
}

// ValidateTypeFields checks the variant field for the post's type and clears
// fields that do not belong to it. The switch is exhaustive over PostType.
func (p *Post) ValidateTypeFields() error {
	switch p.PostType {
	case PostTypeAnnouncements, PostTypeEvents:
		p.Status, p.Category, p.CostType = nil, nil, nil
	case PostTypeResources:
		p.Status, p.CostType = nil, nil
		if p.Category == nil || *p.Category == "" {
			return apperrors.NewValidationError("category is required for resource posts")
		}
	case PostTypeLostFound:
		p.Category, p.CostType = nil, nil
		if p.Status == nil || (*p.Status != LostFoundStatusLost && *p.Status != LostFoundStatusFound) {
			return apperrors.NewValidationError("status must be Lost or Found")
		}
	case PostTypeCourses:
		p.Status, p.Category = nil, nil
		if p.CostType == nil || (*p.CostType != CostTypeFree && *p.CostType != CostTypePaid) {
			return apperrors.NewValidationError("costType must be Free or Paid")
		}
	default:
		return apperrors.ErrInvalidPostType
	}
	return nil
}
