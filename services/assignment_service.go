package services

import (
	"context"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"
)

// AssignmentService manages the camera/model join collection. A join row's
// existence means the model is assigned to the camera.
type AssignmentService struct {
	rows RowStore
}

func NewAssignmentService(rows RowStore) *AssignmentService {
	return &AssignmentService{rows: rows}
}

// ActiveModels lists the models offered for assignment, by name.
func (s *AssignmentService) ActiveModels(ctx context.Context) ([]models.AIModel, error) {
	var list []models.AIModel
	q := gateway.NewQuery().Eq("is_active", true).OrderBy("name", true)
	if err := s.rows.Select(ctx, "ai_models", q, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Assigned returns the ids of models currently assigned to a camera.
func (s *AssignmentService) Assigned(ctx context.Context, cameraID string) ([]string, error) {
	var joins []models.CameraModel
	q := gateway.NewQuery().Eq("camera_id", cameraID)
	if err := s.rows.Select(ctx, "camera_models", q, &joins); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(joins))
	for _, j := range joins {
		ids = append(ids, j.AIModelID)
	}
	return ids, nil
}

// Toggle assigns or unassigns a model and reports the resulting state.
func (s *AssignmentService) Toggle(ctx context.Context, cameraID, modelID string) (bool, error) {
	q := gateway.NewQuery().Eq("camera_id", cameraID).Eq("ai_model_id", modelID)

	var existing []models.CameraModel
	if err := s.rows.Select(ctx, "camera_models", q, &existing); err != nil {
		return false, err
	}
	if len(existing) > 0 {
		if err := s.rows.Delete(ctx, "camera_models", q); err != nil {
			return true, err
		}
		return false, nil
	}

	row := map[string]string{"camera_id": cameraID, "ai_model_id": modelID}
	if err := s.rows.Insert(ctx, "camera_models", row, nil); err != nil {
		return false, err
	}
	return true, nil
}
