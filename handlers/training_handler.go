package handlers

import (
	"net/http"

	"e-guarding-cctv/console/services"

	"github.com/gin-gonic/gin"
)

type TrainingHandler struct {
	training *services.TrainingService
}

func NewTrainingHandler(training *services.TrainingService) *TrainingHandler {
	return &TrainingHandler{training: training}
}

// GetTraining serves the training center snapshot: datasets (narrowed by
// ?q=), jobs and the server picker.
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"datasets": h.training.Datasets(c.Query("q")),
		"jobs":     h.training.Jobs(),
		"servers":  h.training.Servers(),
	})
}

// DatasetForm is the multipart dataset submission: metadata plus the archive.
type DatasetForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Format      string `form:"format" binding:"required"`
}

func (h *TrainingHandler) UploadDataset(c *gin.Context) {
	var form DatasetForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, f, err := formUpload(c)
	if err != nil || upload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dataset archive is required"})
		return
	}
	defer f.Close()

	input := services.DatasetInput{
		Name:        form.Name,
		Description: form.Description,
		Format:      form.Format,
	}
	if err := h.training.UploadDataset(c.Request.Context(), input, *upload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Dataset uploaded"})
}

func (h *TrainingHandler) DeleteDataset(c *gin.Context) {
	if err := h.training.DeleteDataset(c.Request.Context(), c.Param("id"), c.Query("storage_path")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dataset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dataset deleted"})
}

type StartTrainingRequest struct {
	DatasetID   string `json:"dataset_id" binding:"required"`
	ServerID    string `json:"server_id" binding:"required"`
	Epochs      int    `json:"epochs" binding:"required,min=1"`
	BaseModelID string `json:"base_model_id"`
}

// StartTraining submits a pending job. When base_model_id is set this is a
// retrain of that model.
func (h *TrainingHandler) StartTraining(c *gin.Context) {
	var req StartTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var err error
	if req.BaseModelID != "" {
		err = h.training.Retrain(ctx, req.BaseModelID, req.DatasetID, req.ServerID, req.Epochs)
	} else {
		err = h.training.StartTraining(ctx, req.DatasetID, req.ServerID, req.Epochs)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit training job"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"jobs": h.training.Jobs()})
}
