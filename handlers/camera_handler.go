package handlers

import (
	"net/http"

	"e-guarding-cctv/console/services"

	"github.com/gin-gonic/gin"
)

type CameraHandler struct {
	cameras *services.CameraService
}

func NewCameraHandler(cameras *services.CameraService) *CameraHandler {
	return &CameraHandler{cameras: cameras}
}

// GetCameras lists cameras newest first, narrowed by the optional ?q=
// substring filter.
func (h *CameraHandler) GetCameras(c *gin.Context) {
	cameras, err := h.cameras.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cameras"})
		return
	}

	c.JSON(http.StatusOK, h.cameras.Search(cameras, c.Query("q")))
}

func (h *CameraHandler) CreateCamera(c *gin.Context) {
	var req services.CameraInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cameras, err := h.cameras.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create camera"})
		return
	}

	c.JSON(http.StatusCreated, cameras)
}

func (h *CameraHandler) UpdateCamera(c *gin.Context) {
	var req services.CameraInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cameras, err := h.cameras.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update camera"})
		return
	}

	c.JSON(http.StatusOK, cameras)
}

func (h *CameraHandler) DeleteCamera(c *gin.Context) {
	cameras, err := h.cameras.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete camera"})
		return
	}

	c.JSON(http.StatusOK, cameras)
}
