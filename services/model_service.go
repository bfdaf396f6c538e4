package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"
)

type ModelService struct {
	rows    RowStore
	objects ObjectStore
}

func NewModelService(rows RowStore, objects ObjectStore) *ModelService {
	return &ModelService{rows: rows, objects: objects}
}

type ModelInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description,omitempty"`
	ModelType   string  `json:"model_type" binding:"required"`
	Version     string  `json:"version" binding:"required"`
	Accuracy    float64 `json:"accuracy,omitempty"`
	ServerID    string  `json:"server_id,omitempty"`
	ModelPath   string  `json:"model_path,omitempty"`
}

// modelRow is the wire form of the model payload. The server assignment is a
// uuid column, so an empty selection must be sent as null rather than "".
type modelRow struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ModelType   string  `json:"model_type"`
	Version     string  `json:"version"`
	Accuracy    float64 `json:"accuracy"`
	ServerID    *string `json:"server_id"`
	ModelPath   string  `json:"model_path"`
}

func (in ModelInput) row() modelRow {
	row := modelRow{
		Name:        in.Name,
		Description: in.Description,
		ModelType:   in.ModelType,
		Version:     in.Version,
		Accuracy:    in.Accuracy,
		ModelPath:   in.ModelPath,
	}
	if in.ServerID != "" {
		row.ServerID = &in.ServerID
	}
	return row
}

func (s *ModelService) List(ctx context.Context) ([]models.AIModel, error) {
	var list []models.AIModel
	q := gateway.NewQuery().OrderBy("created_at", false)
	if err := s.rows.Select(ctx, "ai_models", q, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Search filters by case-insensitive substring over name, description and
// model type.
func (s *ModelService) Search(list []models.AIModel, query string) []models.AIModel {
	if query == "" {
		return list
	}
	needle := strings.ToLower(query)
	matched := make([]models.AIModel, 0, len(list))
	for _, m := range list {
		if strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Description), needle) ||
			strings.Contains(strings.ToLower(m.ModelType), needle) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Create uploads the model file (when provided) then inserts the row. An
// upload failure aborts the whole submit.
func (s *ModelService) Create(ctx context.Context, input ModelInput, file *UploadFile) ([]models.AIModel, error) {
	path, err := s.uploadFile(ctx, file)
	if err != nil {
		return nil, err
	}
	if path != "" {
		input.ModelPath = path
	}
	if err := s.rows.Insert(ctx, "ai_models", input.row(), nil); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *ModelService) Update(ctx context.Context, id string, input ModelInput, file *UploadFile) ([]models.AIModel, error) {
	path, err := s.uploadFile(ctx, file)
	if err != nil {
		return nil, err
	}
	if path != "" {
		input.ModelPath = path
	} else if input.ModelPath == "" {
		// An edit without a new upload keeps the stored file reference.
		var current []models.AIModel
		if err := s.rows.Select(ctx, "ai_models", gateway.NewQuery().Eq("id", id).Limit(1), &current); err != nil {
			return nil, err
		}
		if len(current) > 0 {
			input.ModelPath = current[0].ModelPath
		}
	}
	if err := s.rows.Update(ctx, "ai_models", input.row(), gateway.NewQuery().Eq("id", id)); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *ModelService) uploadFile(ctx context.Context, file *UploadFile) (string, error) {
	if file == nil {
		return "", nil
	}
	key := gateway.ObjectKey(file.Name)
	if err := s.objects.Upload(ctx, gateway.BucketAIModels, key, file.Body, file.ContentType); err != nil {
		return "", fmt.Errorf("failed to upload model file: %w", err)
	}
	return key, nil
}

// Delete attempts to remove the stored model file first; the row delete
// proceeds even if file removal fails.
func (s *ModelService) Delete(ctx context.Context, id, modelPath string) ([]models.AIModel, error) {
	if modelPath != "" {
		if err := s.objects.Remove(ctx, gateway.BucketAIModels, modelPath); err != nil {
			log.Printf("[Models] best-effort file removal failed for %s: %v", modelPath, err)
		}
	}
	if err := s.rows.Delete(ctx, "ai_models", gateway.NewQuery().Eq("id", id)); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// ToggleActive flips exactly the given row's active flag, then reloads.
func (s *ModelService) ToggleActive(ctx context.Context, id string) ([]models.AIModel, error) {
	var current []models.AIModel
	if err := s.rows.Select(ctx, "ai_models", gateway.NewQuery().Eq("id", id).Limit(1), &current); err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, fmt.Errorf("model %s not found", id)
	}
	patch := map[string]bool{"is_active": !current[0].IsActive}
	if err := s.rows.Update(ctx, "ai_models", patch, gateway.NewQuery().Eq("id", id)); err != nil {
		return nil, err
	}
	return s.List(ctx)
}
