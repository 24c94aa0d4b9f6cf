package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/services"
	"github.com/cybersleuth25/unisphere/internal/middleware"
)

// SearchController handles the global search bar
type SearchController struct {
	searchService services.SearchService
	logger        zerolog.Logger
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService services.SearchService, logger zerolog.Logger) *SearchController {
	return &SearchController{
		searchService: searchService,
		logger:        logger,
	}
}

// Search matches posts and users
// @Summary Global search
// @Description Matches posts by title/description and users by username/bio. A blank query returns empty collections.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} dto.APIResponse{data=dto.GlobalSearchResponse} "Results"
// @Router /search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	results, err := c.searchService.Search(ctx.Request.Context(), ctx.Query("q"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}
