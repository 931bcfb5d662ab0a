package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/services"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// ContributionHandler handles contribution-related HTTP requests
type ContributionHandler struct {
	contributions *services.ContributionService
}

// NewContributionHandler creates a new contribution handler
func NewContributionHandler(contributions *services.ContributionService) *ContributionHandler {
	return &ContributionHandler{contributions: contributions}
}

// MarkPaid handles POST /events/:id/pay
func (h *ContributionHandler) MarkPaid(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	contribution, err := h.contributions.MarkPaid(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, contribution)
}

// ListContributions handles GET /contributions
func (h *ContributionHandler) ListContributions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	rows, err := h.contributions.ListContributions(c.Request.Context(), p)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, rows)
}

// UpdateContribution handles PATCH /contributions/:id
func (h *ContributionHandler) UpdateContribution(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var patch models.ContributionPatch
	if !bindJSON(c, &patch) {
		return
	}
	contribution, err := h.contributions.UpdateContribution(c.Request.Context(), p, c.Param("id"), patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, contribution)
}

// DeleteContribution handles DELETE /contributions/:id
func (h *ContributionHandler) DeleteContribution(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.contributions.DeleteContribution(c.Request.Context(), p, c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Contribution deleted successfully"})
}
