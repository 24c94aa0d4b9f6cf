package dto

import "github.com/cybersleuth25/unisphere/internal/app/models"

// PostResponse is the card view of a post as consumed by the feed.
type PostResponse struct {
	ID          int64  `json:"id"`
	PostType    string `json:"postType"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Status      string `json:"status,omitempty"`
	Category    string `json:"category,omitempty"`
	CostType    string `json:"cost_type,omitempty"`
	Author      string `json:"author"` // author email, matched client-side against the session user
	AuthorName  string `json:"authorName,omitempty"`
	Likes       int    `json:"likes"`
	LikedByUser bool   `json:"liked_by_user"`
	CreatedAt   string `json:"createdAt"`
}

// ToPostResponse maps a post model (with author and like aggregates loaded)
// to its card view.
func ToPostResponse(p *models.Post) PostResponse {
	resp := PostResponse{
		ID:          p.ID,
		PostType:    string(p.PostType),
		Title:       p.Title,
		Description: p.Description,
		Likes:       p.LikeCount,
		LikedByUser: p.LikedByUser,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if p.ImagePath != nil {
		resp.Image = *p.ImagePath
	}
	if p.Status != nil {
		resp.Status = *p.Status
	}
	if p.Category != nil {
		resp.Category = *p.Category
	}
	if p.CostType != nil {
		resp.CostType = *p.CostType
	}
	if p.Author != nil {
		resp.Author = p.Author.Email
		resp.AuthorName = p.Author.Username
	}
	return resp
}

// CreatePostRequest represents the create-post form (multipart; the image
// part is read separately by the controller).
type CreatePostRequest struct {
	PostType    string `form:"postType" binding:"required"`
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description" binding:"required"`
	Status      string `form:"status"`
	Category    string `form:"category"`
	CostType    string `form:"cost_type"`
}

// UpdatePostRequest represents the edit-post payload. Only title and
// description are mutable after creation.
type UpdatePostRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
}

// LikeResponse is returned by the like toggle.
type LikeResponse struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// PostListFilter carries the optional query filters of the post list.
type PostListFilter struct {
	Status   string
	Category string
	CostType string
	Search   string
	Page     int
	Size     int
}
