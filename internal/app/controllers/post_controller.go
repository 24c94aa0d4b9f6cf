package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/services"
	"github.com/cybersleuth25/unisphere/internal/middleware"
	"github.com/cybersleuth25/unisphere/internal/pkg/helpers"
)

// PostController handles the typed post feeds
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// ListPosts returns one page of a typed feed
// @Summary List posts of a type
// @Description Returns posts of the given type, newest first. Filters apply per type: status for lostfound, category for resources, cost_type for courses.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param type query string true "Post type" Enums(announcements, events, resources, lostfound, courses)
// @Param status query string false "Lost & found status filter"
// @Param category query string false "Resource category filter"
// @Param cost_type query string false "Course cost filter"
// @Param search query string false "Title/description search"
// @Param page query int false "1-based page"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse} "Posts"
// @Failure 400 {object} dto.ErrorResponse "Unknown post type"
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.PostListFilter{
		Status:   ctx.Query("status"),
		Category: ctx.Query("category"),
		CostType: ctx.Query("cost_type"),
		Search:   ctx.Query("search"),
		Page:     page,
		Size:     size,
	}

	posts, err := c.postService.ListPosts(ctx.Request.Context(), ctx.Query("type"), filter, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPost returns one post
// @Summary Get a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	postID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid post id")))
		return
	}

	post, err := c.postService.GetPost(ctx.Request.Context(), postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost creates a post
// @Summary Create a post
// @Description Creates a post of the given type. Announcements and events require the admin role. The image part is optional.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param postType formData string true "Post type"
// @Param title formData string true "Title"
// @Param description formData string true "Description (markdown)"
// @Param status formData string false "Lost or Found (lostfound only)"
// @Param category formData string false "Resource category (resources only)"
// @Param cost_type formData string false "Free or Paid (courses only)"
// @Param image formData file false "Image"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Created post"
// @Failure 400 {object} dto.ErrorResponse "Invalid type or missing typed field"
// @Failure 403 {object} dto.ErrorResponse "Admin role required for this type"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// The image part is optional; FormFile errors just mean it is absent.
	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	post, err := c.postService.CreatePost(ctx.Request.Context(), userID, &req, image)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Str("postType", req.PostType).Msg("Failed to create post")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// UpdatePost edits a post's title and description
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "New title and description"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Updated post"
// @Failure 403 {object} dto.ErrorResponse "Not the author or an admin"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	postID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid post id")))
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	post, err := c.postService.UpdatePost(ctx.Request.Context(), postID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost removes a post
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author or an admin"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	postID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid post id")))
		return
	}

	if err := c.postService.DeletePost(ctx.Request.Context(), postID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Post deleted"))
}

// ToggleLike flips the caller's like on a post
// @Summary Toggle like
// @Description Likes the post if the caller has not liked it, removes the like otherwise. Returns the new count.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse} "New like state"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/like [post]
func (c *PostController) ToggleLike(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	postID, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid post id")))
		return
	}

	like, err := c.postService.ToggleLike(ctx.Request.Context(), postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(like))
}

func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}
