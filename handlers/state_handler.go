package handlers

import (
	"net/http"

	"e-guarding-cctv/console/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateHandler persists dashboard preferences (sidebar minimized flag, last
// active view) in the local state store.
type StateHandler struct {
	db *gorm.DB
}

func NewStateHandler(db *gorm.DB) *StateHandler {
	return &StateHandler{db: db}
}

var knownStateKeys = map[string]bool{
	models.StateSidebarMinimized: true,
	models.StateActiveView:       true,
}

// GetState returns every stored preference as a flat key/value map.
func (h *StateHandler) GetState(c *gin.Context) {
	var rows []models.UIState
	if err := h.db.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load state"})
		return
	}

	state := make(map[string]string, len(rows))
	for _, row := range rows {
		state[row.Key] = row.Value
	}
	c.JSON(http.StatusOK, state)
}

type SetStateRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

func (h *StateHandler) SetState(c *gin.Context) {
	var req SetStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !knownStateKeys[req.Key] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown state key"})
		return
	}

	row := models.UIState{Key: req.Key, Value: req.Value}
	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{req.Key: req.Value})
}
