package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelService_ToggleActiveFlipsOnlyTargetRow(t *testing.T) {
	var patchedQuery string
	var patched map[string]any
	rows := &fakeRows{
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			require.Equal(t, "ai_models", collection)
			if strings.Contains(q.String(), "id=eq.model-1") {
				fill(t, dest, []models.AIModel{{ID: "model-1", IsActive: true}})
				return nil
			}
			fill(t, dest, []models.AIModel{})
			return nil
		},
		updateFn: func(collection string, patch any, q *gateway.Query) error {
			patchedQuery = q.String()
			patched = asMap(t, patch)
			return nil
		},
	}
	svc := NewModelService(rows, &fakeObjects{})

	_, err := svc.ToggleActive(context.Background(), "model-1")

	require.NoError(t, err)
	assert.Contains(t, patchedQuery, "id=eq.model-1")
	assert.Equal(t, false, patched["is_active"])
}

func TestModelService_CreateUploadFailureAbortsInsert(t *testing.T) {
	inserted := false
	rows := &fakeRows{
		insertFn: func(collection string, row any, dest any) error {
			inserted = true
			return nil
		},
	}
	objects := &fakeObjects{uploadErr: errors.New("storage unavailable")}
	svc := NewModelService(rows, objects)

	file := &UploadFile{Name: "weights.pt", ContentType: "application/octet-stream", Body: strings.NewReader("data")}
	_, err := svc.Create(context.Background(), ModelInput{
		Name:      "Intrusion v2",
		ModelType: "object_detection",
		Version:   "2.0",
	}, file)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload model file")
	assert.False(t, inserted)
}

func TestModelService_EmptyServerSelectionIsNull(t *testing.T) {
	var row map[string]any
	rows := &fakeRows{
		insertFn: func(collection string, r any, dest any) error {
			row = asMap(t, r)
			return nil
		},
	}
	svc := NewModelService(rows, &fakeObjects{})

	_, err := svc.Create(context.Background(), ModelInput{
		Name:      "Fire detection",
		ModelType: "classification",
		Version:   "1.0",
	}, nil)

	require.NoError(t, err)
	require.Contains(t, row, "server_id")
	assert.Nil(t, row["server_id"])
}

func TestModelService_UpdateWithoutNewFileKeepsStoredPath(t *testing.T) {
	var patched map[string]any
	rows := &fakeRows{
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			require.Equal(t, "ai_models", collection)
			if strings.Contains(q.String(), "id=eq.model-1") {
				fill(t, dest, []models.AIModel{{ID: "model-1", ModelPath: "abc_weights.pt"}})
				return nil
			}
			fill(t, dest, []models.AIModel{})
			return nil
		},
		updateFn: func(collection string, patch any, q *gateway.Query) error {
			patched = asMap(t, patch)
			return nil
		},
	}
	svc := NewModelService(rows, &fakeObjects{})

	_, err := svc.Update(context.Background(), "model-1", ModelInput{
		Name:      "Intrusion v2",
		ModelType: "object_detection",
		Version:   "2.1",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "abc_weights.pt", patched["model_path"])
}

func TestModelService_UpdateWithNewFileReplacesPath(t *testing.T) {
	var patched map[string]any
	rows := &fakeRows{
		updateFn: func(collection string, patch any, q *gateway.Query) error {
			patched = asMap(t, patch)
			return nil
		},
	}
	objects := &fakeObjects{}
	svc := NewModelService(rows, objects)

	file := &UploadFile{Name: "new_weights.pt", Body: strings.NewReader("data")}
	_, err := svc.Update(context.Background(), "model-1", ModelInput{
		Name:      "Intrusion v2",
		ModelType: "object_detection",
		Version:   "2.1",
		ModelPath: "abc_weights.pt",
	}, file)

	require.NoError(t, err)
	require.Len(t, objects.uploaded, 1)
	path, ok := patched["model_path"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(path, "_new_weights.pt"))
}

func TestModelService_DeleteProceedsWhenFileRemovalFails(t *testing.T) {
	deleted := false
	rows := &fakeRows{
		deleteFn: func(collection string, q *gateway.Query) error {
			deleted = true
			assert.Contains(t, q.String(), "id=eq.model-1")
			return nil
		},
	}
	objects := &fakeObjects{removeErr: errors.New("object missing")}
	svc := NewModelService(rows, objects)

	_, err := svc.Delete(context.Background(), "model-1", "abc_weights.pt")

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"ai-models/abc_weights.pt"}, objects.removed)
}

func TestModelService_SearchMatchesType(t *testing.T) {
	svc := NewModelService(&fakeRows{}, &fakeObjects{})
	list := []models.AIModel{
		{Name: "Intrusion", ModelType: "object_detection"},
		{Name: "Smoke", ModelType: "classification", Description: "fire and smoke"},
	}

	assert.Len(t, svc.Search(list, "detect"), 1)
	assert.Len(t, svc.Search(list, "FIRE"), 1)
	assert.Len(t, svc.Search(list, ""), 2)
}
