package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

func TestListPostsForwardsTypeAndFilters(t *testing.T) {
	env := newTestEnv(t)
	env.postSvc.listResp = []dto.PostResponse{
		{ID: 7, PostType: "lostfound", Title: "Lost keys", Status: "Lost", Likes: 3, LikedByUser: true},
	}
	token := env.token(t, 1, "student@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodGet, "/api/v1/posts?type=lostfound&status=Lost&search=keys&page=2&size=5", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if env.postSvc.listType != "lostfound" {
		t.Errorf("service received type %q, want lostfound", env.postSvc.listType)
	}
	filter := env.postSvc.listFilter
	if filter.Status != "Lost" || filter.Search != "keys" || filter.Page != 2 || filter.Size != 5 {
		t.Errorf("filter = %+v, want status=Lost search=keys page=2 size=5", filter)
	}

	var resp struct {
		Success bool               `json:"success"`
		Data    []dto.PostResponse `json:"data"`
	}
	decodeResponse(t, rec, &resp)
	if !resp.Success || len(resp.Data) != 1 {
		t.Fatalf("response = %s", rec.Body.String())
	}
	if got := resp.Data[0]; got.ID != 7 || got.Likes != 3 || !got.LikedByUser {
		t.Errorf("post = %+v", got)
	}
}

func TestListPostsUnknownTypeIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	env.postSvc.listErr = apperrors.ErrInvalidPostType
	token := env.token(t, 1, "student@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodGet, "/api/v1/posts?type=memes", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestListPostsRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/posts?type=events", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreatePostAdminOnlyTypeForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.postSvc.createErr = apperrors.NewForbiddenError("Only admins can create announcement posts")
	token := env.token(t, 2, "student@unisphere.edu", models.RoleStudent)

	form := url.Values{}
	form.Set("postType", "announcements")
	form.Set("title", "Exam schedule")
	form.Set("description", "Finals start Monday")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", rec.Code, rec.Body.String())
	}
}

func TestCreatePostReturnsCreated(t *testing.T) {
	env := newTestEnv(t)
	env.postSvc.createResp = dto.PostResponse{ID: 11, PostType: "events", Title: "Spring fest"}
	token := env.token(t, 3, "admin@unisphere.edu", models.RoleAdmin)

	form := url.Values{}
	form.Set("postType", "events")
	form.Set("title", "Spring fest")
	form.Set("description", "Main quad, 6pm")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data dto.PostResponse `json:"data"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Data.ID != 11 || resp.Data.PostType != "events" {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestCreatePostMissingTitleIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, 3, "admin@unisphere.edu", models.RoleAdmin)

	form := url.Values{}
	form.Set("postType", "events")
	form.Set("description", "no title")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestToggleLikeReturnsNewState(t *testing.T) {
	env := newTestEnv(t)
	env.postSvc.likeResp = &dto.LikeResponse{Likes: 4, Liked: true}
	token := env.token(t, 9, "student@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodPost, "/api/v1/posts/42/like", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if env.postSvc.likePostID != 42 || env.postSvc.likeUserID != 9 {
		t.Errorf("service called with post=%d user=%d, want post=42 user=9",
			env.postSvc.likePostID, env.postSvc.likeUserID)
	}

	var resp struct {
		Data dto.LikeResponse `json:"data"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Data.Likes != 4 || !resp.Data.Liked {
		t.Errorf("like data = %+v, want likes=4 liked=true", resp.Data)
	}
}

func TestToggleLikeUnknownPostIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.postSvc.likeErr = apperrors.ErrPostNotFound
	token := env.token(t, 9, "student@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodPost, "/api/v1/posts/404/like", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestToggleLikeRejectsBadID(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, 9, "student@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodPost, "/api/v1/posts/abc/like", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
