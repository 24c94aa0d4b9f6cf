package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/services"
	"github.com/cybersleuth25/unisphere/internal/middleware"
)

// FriendshipController handles friendship transitions and listings
type FriendshipController struct {
	friendshipService services.FriendshipService
	logger            zerolog.Logger
}

// NewFriendshipController creates a new FriendshipController
func NewFriendshipController(friendshipService services.FriendshipService, logger zerolog.Logger) *FriendshipController {
	return &FriendshipController{
		friendshipService: friendshipService,
		logger:            logger,
	}
}

// PerformAction applies a friendship transition
// @Summary Perform a friend action
// @Description Applies add, accept, decline, cancel or remove against the user identified by email.
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FriendActionRequest true "Action and target email"
// @Success 200 {object} dto.APIResponse "Action applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid action"
// @Failure 403 {object} dto.ErrorResponse "Action not available to this side"
// @Failure 404 {object} dto.ErrorResponse "User or request not found"
// @Failure 409 {object} dto.ErrorResponse "Relation already exists or self target"
// @Router /friends [post]
func (c *FriendshipController) PerformAction(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.FriendActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.friendshipService.PerformAction(ctx.Request.Context(), userID, &req); err != nil {
		c.logger.Debug().Err(err).Int64("userID", userID).Str("action", req.Action).Msg("Friend action rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Action applied"))
}

// GetStatus reports the relation with another user
// @Summary Get friendship status
// @Description Returns not_friends, pending or accepted. While pending, action_user_email identifies the requester.
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param email query string true "Other user's email"
// @Success 200 {object} dto.APIResponse{data=dto.FriendshipStatusResponse} "Status"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /friends/status [get]
func (c *FriendshipController) GetStatus(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "email query parameter is required")))
		return
	}

	status, err := c.friendshipService.StatusOf(ctx.Request.Context(), userID, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// ListFriends returns the caller's accepted friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary} "Friends"
// @Router /friends [get]
func (c *FriendshipController) ListFriends(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	friends, err := c.friendshipService.ListFriends(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(friends))
}

// ListRequests returns pending requests addressed to the caller
// @Summary List incoming friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary} "Requesters"
// @Router /friends/requests [get]
func (c *FriendshipController) ListRequests(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	requests, err := c.friendshipService.ListPendingRequests(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}
