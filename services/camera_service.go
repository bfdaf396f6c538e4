package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"
)

type CameraService struct {
	rows RowStore
}

func NewCameraService(rows RowStore) *CameraService {
	return &CameraService{rows: rows}
}

// CameraInput is the camera form payload for both create and edit.
type CameraInput struct {
	Name           string `json:"name" binding:"required"`
	Location       string `json:"location" binding:"required"`
	Brand          string `json:"brand" binding:"required"`
	ConnectionType string `json:"connection_type" binding:"required"`
	StreamURL      string `json:"stream_url" binding:"required"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	FPS            int    `json:"fps,omitempty"`
	Status         string `json:"status,omitempty"`
}

// List returns the full collection, newest first.
func (s *CameraService) List(ctx context.Context) ([]models.Camera, error) {
	var cameras []models.Camera
	q := gateway.NewQuery().OrderBy("created_at", false)
	if err := s.rows.Select(ctx, "cameras", q, &cameras); err != nil {
		return nil, err
	}
	return cameras, nil
}

// ListByName returns cameras ordered by name, as the live monitoring grid
// expects them.
func (s *CameraService) ListByName(ctx context.Context) ([]models.Camera, error) {
	var cameras []models.Camera
	q := gateway.NewQuery().OrderBy("name", true)
	if err := s.rows.Select(ctx, "cameras", q, &cameras); err != nil {
		return nil, err
	}
	return cameras, nil
}

// Get returns one camera by id.
func (s *CameraService) Get(ctx context.Context, id string) (*models.Camera, error) {
	var cameras []models.Camera
	q := gateway.NewQuery().Eq("id", id).Limit(1)
	if err := s.rows.Select(ctx, "cameras", q, &cameras); err != nil {
		return nil, err
	}
	if len(cameras) == 0 {
		return nil, fmt.Errorf("camera %s not found", id)
	}
	return &cameras[0], nil
}

// Search filters a loaded collection by case-insensitive substring over
// name, location and brand. An empty query returns the input unchanged.
func (s *CameraService) Search(cameras []models.Camera, query string) []models.Camera {
	if query == "" {
		return cameras
	}
	needle := strings.ToLower(query)
	matched := make([]models.Camera, 0, len(cameras))
	for _, c := range cameras {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Location), needle) ||
			strings.Contains(strings.ToLower(c.Brand), needle) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Create inserts a camera and reloads the collection.
func (s *CameraService) Create(ctx context.Context, input CameraInput) ([]models.Camera, error) {
	if input.Status == "" {
		input.Status = "online"
	}
	if err := s.rows.Insert(ctx, "cameras", input, nil); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// Update overwrites the row's form fields, stamps updated_at and reloads.
func (s *CameraService) Update(ctx context.Context, id string, input CameraInput) ([]models.Camera, error) {
	patch := struct {
		CameraInput
		UpdatedAt string `json:"updated_at"`
	}{input, time.Now().UTC().Format(time.RFC3339)}

	if err := s.rows.Update(ctx, "cameras", patch, gateway.NewQuery().Eq("id", id)); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// Delete removes a camera and reloads.
func (s *CameraService) Delete(ctx context.Context, id string) ([]models.Camera, error) {
	if err := s.rows.Delete(ctx, "cameras", gateway.NewQuery().Eq("id", id)); err != nil {
		return nil, err
	}
	return s.List(ctx)
}
