package handlers

import (
	"mime/multipart"
	"net/http"

	"e-guarding-cctv/console/services"

	"github.com/gin-gonic/gin"
)

type ModelHandler struct {
	models *services.ModelService
}

func NewModelHandler(models *services.ModelService) *ModelHandler {
	return &ModelHandler{models: models}
}

// ModelForm is the multipart model submission: the metadata fields plus an
// optional weights file.
type ModelForm struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description"`
	ModelType   string  `form:"model_type" binding:"required"`
	Version     string  `form:"version" binding:"required"`
	Accuracy    float64 `form:"accuracy"`
	ServerID    string  `form:"server_id"`
	// The edit form is seeded with the stored path so an update without a
	// fresh upload keeps it.
	ModelPath string `form:"model_path"`
}

func (f ModelForm) input() services.ModelInput {
	return services.ModelInput{
		Name:        f.Name,
		Description: f.Description,
		ModelType:   f.ModelType,
		Version:     f.Version,
		Accuracy:    f.Accuracy,
		ServerID:    f.ServerID,
		ModelPath:   f.ModelPath,
	}
}

// formUpload opens the optional "file" part. A missing part is not an error.
func formUpload(c *gin.Context) (*services.UploadFile, multipart.File, error) {
	header, err := c.FormFile("file")
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        f,
	}, f, nil
}

func (h *ModelHandler) GetModels(c *gin.Context) {
	list, err := h.models.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch models"})
		return
	}

	c.JSON(http.StatusOK, h.models.Search(list, c.Query("q")))
}

func (h *ModelHandler) CreateModel(c *gin.Context) {
	var form ModelForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, f, err := formUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid model file"})
		return
	}
	if f != nil {
		defer f.Close()
	}

	list, err := h.models.Create(c.Request.Context(), form.input(), upload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, list)
}

func (h *ModelHandler) UpdateModel(c *gin.Context) {
	var form ModelForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, f, err := formUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid model file"})
		return
	}
	if f != nil {
		defer f.Close()
	}

	list, err := h.models.Update(c.Request.Context(), c.Param("id"), form.input(), upload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ModelHandler) DeleteModel(c *gin.Context) {
	list, err := h.models.Delete(c.Request.Context(), c.Param("id"), c.Query("model_path"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete model"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ModelHandler) ToggleModel(c *gin.Context) {
	list, err := h.models.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle model"})
		return
	}

	c.JSON(http.StatusOK, list)
}
