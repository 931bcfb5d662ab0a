package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/services"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	events *services.EventService
	export *services.ExcelService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService, export *services.ExcelService) *EventHandler {
	return &EventHandler{events: events, export: export}
}

// giftInput converts a gift form to subunits; an explicit amount wins over estimatedCost
func giftInput(req models.GiftRequest) models.GiftInput {
	amount := req.Amount
	if amount == 0 {
		amount = utils.ToSubunits(req.EstimatedCost)
	}
	return models.GiftInput{Name: req.Name, Link: req.Link, Amount: amount}
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	in := models.CreateEventInput{
		Title:            req.Title,
		Date:             req.Date,
		BirthdayPersonID: req.BirthdayPersonID,
		UPIID:            req.UPIID,
		Phone:            req.PhoneNumber,
		ParticipantIDs:   req.ParticipantIDs,
		ExcludedUserIDs:  req.ExcludedUserIDs,
		FoodOptions:      req.FoodOptions,
	}
	for _, g := range req.Gifts {
		in.Gifts = append(in.Gifts, giftInput(g))
	}

	result, err := h.events.CreateEventWithGifts(c.Request.Context(), p, in)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, result)
}

// ListEvents handles GET /events?status=
func (h *EventHandler) ListEvents(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	filter := models.EventFilter{Status: models.EventStatus(c.Query("status"))}
	events, err := h.events.ListEventsWithStats(c.Request.Context(), p, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, events)
}

// GetEvent handles GET /events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	detail, err := h.events.GetEvent(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, detail)
}

// UpdateEvent handles PATCH /events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var patch models.EventPatch
	if !bindJSON(c, &patch) {
		return
	}
	event, err := h.events.UpdateEvent(c.Request.Context(), p, c.Param("id"), patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, event)
}

// DeleteEvent handles DELETE /events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.events.DeleteEvent(c.Request.Context(), p, c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Event deleted successfully"})
}

// CompleteEvent handles POST /events/:id/complete
func (h *EventHandler) CompleteEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	event, err := h.events.CompleteEvent(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, event)
}

// CancelEvent handles POST /events/:id/cancel
func (h *EventHandler) CancelEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	event, err := h.events.CancelEvent(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, event)
}

// BulkUpdateStatus handles POST /events/status
func (h *EventHandler) BulkUpdateStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.BulkStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.events.BulkUpdateStatus(c.Request.Context(), p, req.EventIDs, req.Status)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"updated": updated, "status": req.Status})
}

// CloneEvent handles POST /events/:id/clone
func (h *EventHandler) CloneEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.CloneEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.CloneEvent(c.Request.Context(), p, c.Param("id"), req.Date)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, event)
}

// AddGift handles POST /events/:id/gifts
func (h *EventHandler) AddGift(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.GiftRequest
	if !bindJSON(c, &req) {
		return
	}
	gift, err := h.events.AddGift(c.Request.Context(), p, c.Param("id"), giftInput(req))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, gift)
}

// UpdatePaymentContact handles PUT /events/:id/payment-contact
func (h *EventHandler) UpdatePaymentContact(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.PaymentContactRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.UpdatePaymentContact(c.Request.Context(), p, c.Param("id"), req.UPIID, req.Phone)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, event)
}

// ClearPaymentContact handles DELETE /events/:id/payment-contact
func (h *EventHandler) ClearPaymentContact(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	event, err := h.events.ClearPaymentContact(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, event)
}

// ListMyEvents handles GET /me/events
func (h *EventHandler) ListMyEvents(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	events, err := h.events.ListUpcomingForUser(c.Request.Context(), p)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, events)
}

// ListMyContributions handles GET /me/contributions
func (h *EventHandler) ListMyContributions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	contributions, err := h.events.ListUserContributions(c.Request.Context(), p)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, contributions)
}

// ExportEvent handles GET /events/:id/export
func (h *EventHandler) ExportEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	file, filename, err := h.export.ExportEvent(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer file.Close()

	buf, err := file.WriteToBuffer()
	if err != nil {
		utils.HandleError(c, utils.NewInternalError("Failed to write Excel file"))
		return
	}

	// Set headers for file download
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
