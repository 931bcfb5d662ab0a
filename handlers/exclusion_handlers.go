package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/services"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// ExclusionHandler handles event exclusion HTTP requests
type ExclusionHandler struct {
	exclusions *services.ExclusionService
}

func NewExclusionHandler(exclusions *services.ExclusionService) *ExclusionHandler {
	return &ExclusionHandler{exclusions: exclusions}
}

// ListExclusions handles GET /events/:id/exclusions
func (h *ExclusionHandler) ListExclusions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	rows, err := h.exclusions.ListExclusions(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, rows)
}

// ExcludeUser handles POST /events/:id/exclusions
func (h *ExclusionHandler) ExcludeUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.ExcludeUserRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.exclusions.ExcludeUser(c.Request.Context(), p, c.Param("id"), req.UserID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"excluded": created})
}

// IncludeUser handles DELETE /events/:id/exclusions/:userId
func (h *ExclusionHandler) IncludeUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.exclusions.IncludeUser(c.Request.Context(), p, c.Param("id"), c.Param("userId")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "User included successfully"})
}
