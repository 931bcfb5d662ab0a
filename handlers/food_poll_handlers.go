package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/services"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// FoodPollHandler handles food poll HTTP requests
type FoodPollHandler struct {
	polls *services.FoodPollService
}

func NewFoodPollHandler(polls *services.FoodPollService) *FoodPollHandler {
	return &FoodPollHandler{polls: polls}
}

// Results handles GET /events/:id/food
func (h *FoodPollHandler) Results(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	result, err := h.polls.Results(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, result)
}

// AddOption handles POST /events/:id/food
func (h *FoodPollHandler) AddOption(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.FoodOptionRequest
	if !bindJSON(c, &req) {
		return
	}
	option, err := h.polls.AddFoodOption(c.Request.Context(), p, c.Param("id"), req.Title)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, option)
}

// RemoveOption handles DELETE /events/:id/food/:optionId
func (h *FoodPollHandler) RemoveOption(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.polls.RemoveFoodOption(c.Request.Context(), p, c.Param("id"), c.Param("optionId")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Food option removed successfully"})
}

// Vote handles POST /events/:id/food/:optionId/vote
func (h *FoodPollHandler) Vote(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	result, err := h.polls.Vote(c.Request.Context(), p, c.Param("id"), c.Param("optionId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, result)
}
