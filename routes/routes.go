package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/handlers"
	"github.com/fadhlanhapp/giftbuddy-backend/services"
)

// SetupRoutes configures all API routes for the application.
// authMiddleware guards everything under /api/v1.
func SetupRoutes(router *gin.Engine, svc *services.Services, authMiddleware gin.HandlerFunc) {
	events := handlers.NewEventHandler(svc.Events, svc.Export)
	contributions := handlers.NewContributionHandler(svc.Contributions)
	exclusions := handlers.NewExclusionHandler(svc.Exclusions)
	polls := handlers.NewFoodPollHandler(svc.FoodPolls)
	users := handlers.NewUserHandler(svc.Users, svc.Stats)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware)
	{
		// Profile endpoints
		v1.GET("/me", users.GetProfile)
		v1.PUT("/me", users.UpsertProfile)
		v1.GET("/me/events", events.ListMyEvents)
		v1.GET("/me/contributions", events.ListMyContributions)

		// User admin endpoints
		v1.GET("/users", users.ListUsers)
		v1.POST("/users", users.CreateUser)
		v1.GET("/users/birthdays", users.UpcomingBirthdays)
		v1.PATCH("/users/:id", users.UpdateUser)
		v1.DELETE("/users/:id", users.DeleteUser)

		// Event endpoints
		v1.POST("/events", events.CreateEvent)
		v1.GET("/events", events.ListEvents)
		v1.POST("/events/status", events.BulkUpdateStatus)
		v1.GET("/events/:id", events.GetEvent)
		v1.PATCH("/events/:id", events.UpdateEvent)
		v1.DELETE("/events/:id", events.DeleteEvent)
		v1.POST("/events/:id/complete", events.CompleteEvent)
		v1.POST("/events/:id/cancel", events.CancelEvent)
		v1.POST("/events/:id/clone", events.CloneEvent)
		v1.POST("/events/:id/gifts", events.AddGift)
		v1.PUT("/events/:id/payment-contact", events.UpdatePaymentContact)
		v1.DELETE("/events/:id/payment-contact", events.ClearPaymentContact)
		v1.GET("/events/:id/export", events.ExportEvent)
		v1.POST("/events/:id/pay", contributions.MarkPaid)

		// Exclusion endpoints
		v1.GET("/events/:id/exclusions", exclusions.ListExclusions)
		v1.POST("/events/:id/exclusions", exclusions.ExcludeUser)
		v1.DELETE("/events/:id/exclusions/:userId", exclusions.IncludeUser)

		// Food poll endpoints
		v1.GET("/events/:id/food", polls.Results)
		v1.POST("/events/:id/food", polls.AddOption)
		v1.DELETE("/events/:id/food/:optionId", polls.RemoveOption)
		v1.POST("/events/:id/food/:optionId/vote", polls.Vote)

		// Contribution endpoints
		v1.GET("/contributions", contributions.ListContributions)
		v1.PATCH("/contributions/:id", contributions.UpdateContribution)
		v1.DELETE("/contributions/:id", contributions.DeleteContribution)

		// Dashboard
		v1.GET("/stats", users.DashboardStats)
	}
}
