package handlers

import (
	"net/http"

	"e-guarding-cctv/console/services"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignments *services.AssignmentService
}

func NewAssignmentHandler(assignments *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// GetAssignments returns the assignment dialog data for one camera: the
// active models on offer and the ids already assigned.
func (h *AssignmentHandler) GetAssignments(c *gin.Context) {
	ctx := c.Request.Context()
	cameraID := c.Param("id")

	active, err := h.assignments.ActiveModels(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch models"})
		return
	}
	assigned, err := h.assignments.Assigned(ctx, cameraID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"models":   active,
		"assigned": assigned,
	})
}

type ToggleAssignmentRequest struct {
	AIModelID string `json:"ai_model_id" binding:"required"`
}

// ToggleAssignment assigns or unassigns one model and reports the new state.
func (h *AssignmentHandler) ToggleAssignment(c *gin.Context) {
	var req ToggleAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assigned, err := h.assignments.Toggle(c.Request.Context(), c.Param("id"), req.AIModelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assigned": assigned})
}
