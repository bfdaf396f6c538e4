package handlers

import (
	"net/http"

	"e-guarding-cctv/console/services"

	"github.com/gin-gonic/gin"
)

type MonitorHandler struct {
	monitor *services.MonitorService
	cameras *services.CameraService
}

func NewMonitorHandler(monitor *services.MonitorService, cameras *services.CameraService) *MonitorHandler {
	return &MonitorHandler{monitor: monitor, cameras: cameras}
}

// GetMonitor serves the grid snapshot: every tile's state, the focus session
// if open, and the column count for the current tile population.
func (h *MonitorHandler) GetMonitor(c *gin.Context) {
	tiles := h.monitor.Tiles()
	resp := gin.H{
		"tiles":   tiles,
		"columns": h.monitor.Columns(len(tiles)),
	}
	if focus, ok := h.monitor.Focus(); ok {
		resp["focus"] = focus
	}
	c.JSON(http.StatusOK, resp)
}

// StartMonitor enters the view: playback starts for every camera, ordered by
// name. Individual open failures leave that tile in the error state without
// failing the rest.
func (h *MonitorHandler) StartMonitor(c *gin.Context) {
	cameras, err := h.cameras.ListByName(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cameras"})
		return
	}

	for _, camera := range cameras {
		h.monitor.StartTile(camera)
	}

	tiles := h.monitor.Tiles()
	c.JSON(http.StatusOK, gin.H{
		"tiles":   tiles,
		"columns": h.monitor.Columns(len(tiles)),
	})
}

// StopMonitor leaves the view and stops all playback, focus included.
func (h *MonitorHandler) StopMonitor(c *gin.Context) {
	h.monitor.Teardown()
	c.JSON(http.StatusOK, gin.H{"message": "Monitoring stopped"})
}

// RestartTile reopens one camera's playback, picking up a changed stream URL.
func (h *MonitorHandler) RestartTile(c *gin.Context) {
	camera, err := h.cameras.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
		return
	}

	h.monitor.StopTile(camera.ID)
	if err := h.monitor.StartTile(*camera); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	tile, _ := h.monitor.Tile(camera.ID)
	c.JSON(http.StatusOK, tile)
}

// OpenFocus starts the full-screen unmuted session for one camera.
func (h *MonitorHandler) OpenFocus(c *gin.Context) {
	camera, err := h.cameras.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
		return
	}

	if err := h.monitor.OpenFocus(*camera); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	focus, _ := h.monitor.Focus()
	c.JSON(http.StatusOK, focus)
}

func (h *MonitorHandler) CloseFocus(c *gin.Context) {
	h.monitor.CloseFocus()
	c.JSON(http.StatusOK, gin.H{"message": "Focus closed"})
}

type ColumnsRequest struct {
	Columns int `json:"columns"`
}

// SetColumns picks the grid width: 1, 2, 4 or 0 to derive it from the camera
// count.
func (h *MonitorHandler) SetColumns(c *gin.Context) {
	var req ColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.monitor.SetColumns(req.Columns); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": h.monitor.Columns(len(h.monitor.Tiles()))})
}
