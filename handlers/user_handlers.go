package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/services"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// UserHandler handles profile, user admin and dashboard requests
type UserHandler struct {
	users *services.UserService
	stats *services.StatsService
}

func NewUserHandler(users *services.UserService, stats *services.StatsService) *UserHandler {
	return &UserHandler{users: users, stats: stats}
}

// GetProfile handles GET /me
func (h *UserHandler) GetProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	user, err := h.users.GetProfile(c.Request.Context(), p)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, user)
}

// UpsertProfile handles PUT /me
func (h *UserHandler) UpsertProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.ProfileInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.UpsertProfile(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, user)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	users, err := h.users.ListUsers(c.Request.Context(), p)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, users)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.CreateUser(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, user)
}

// UpdateUser handles PATCH /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var patch models.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), p, c.Param("id"), patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, user)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), p, c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "User deleted successfully"})
}

// UpcomingBirthdays handles GET /users/birthdays?days=
func (h *UserHandler) UpcomingBirthdays(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.HandleError(c, utils.NewValidationError("days must be a number"))
			return
		}
		days = parsed
	}
	birthdays, err := h.users.UpcomingBirthdays(c.Request.Context(), p, days)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, birthdays)
}

// DashboardStats handles GET /stats
func (h *UserHandler) DashboardStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	stats, err := h.stats.DashboardStats(c.Request.Context(), p)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, stats)
}
