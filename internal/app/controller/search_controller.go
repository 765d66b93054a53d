package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/internal/app/service"
	apperrors "github.com/qkart/storefront/internal/errors"
	"github.com/qkart/storefront/internal/middleware"
)

type SearchController struct {
	searchService service.SearchService
}

func NewSearchController(searchService service.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

type SearchInputRequest struct {
	Value string `json:"value"`
}

// Input registers one keystroke of search text. The query itself fires
// only after the quiet interval elapses with no further input; poll
// State (or call Submit) for results.
// POST /api/v1/search/input
func (ctrl *SearchController) Input(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SearchInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid search input payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	sid := middleware.GetSessionID(c)
	ctrl.searchService.OnInput(sid, req.Value)

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
	})
}

// State returns the session's current search view.
// GET /api/v1/search
func (ctrl *SearchController) State(c *gin.Context) {
	sid := middleware.GetSessionID(c)
	view := ctrl.searchService.View(sid)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"search":  view,
	})
}

// Submit fires the query immediately, bypassing the quiet interval.
// POST /api/v1/search
func (ctrl *SearchController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SearchInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid search submit payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	sid := middleware.GetSessionID(c)
	view := ctrl.searchService.Flush(c.Request.Context(), sid, req.Value)

	log.Info("Search submitted", map[string]interface{}{
		"query":   req.Value,
		"results": len(view.Products),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"search":  view,
	})
}
