package handlers

import (
	"net/http"

	"e-guarding-cctv/console/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// GetEvents serves the events page snapshot. ?type= narrows by event type
// within the loaded page; the response carries the filter dropdown data
// alongside the rows.
func (h *EventHandler) GetEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"events":         h.events.Events(c.Query("type")),
		"event_types":    h.events.EventTypes(),
		"filter":         h.events.Filter(),
		"unacknowledged": h.events.UnacknowledgedCount(),
	})
}

type EventFilterRequest struct {
	Filter string `json:"filter" binding:"required"`
}

// SetFilter switches the acknowledged-state filter and reloads before
// answering, so the response reflects the new filter.
func (h *EventHandler) SetFilter(c *gin.Context) {
	var req EventFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.events.SetFilter(c.Request.Context(), req.Filter)
	c.JSON(http.StatusOK, gin.H{"filter": h.events.Filter()})
}

func (h *EventHandler) AcknowledgeEvent(c *gin.Context) {
	if err := h.events.Acknowledge(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to acknowledge event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event acknowledged"})
}
