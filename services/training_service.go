package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"
)

// TrainingService is a job-submission and progress-observation surface: the
// external worker owns execution and writes progress back to the gateway.
// Datasets and jobs are two independently polled collections.
type TrainingService struct {
	rows    RowStore
	objects ObjectStore

	PollInterval time.Duration

	mu       sync.RWMutex
	datasets []models.Dataset
	jobs     []models.TrainingJob
	servers  []models.AIServer
	poller   *poller
}

func NewTrainingService(rows RowStore, objects ObjectStore) *TrainingService {
	return &TrainingService{
		rows:         rows,
		objects:      objects,
		PollInterval: 5 * time.Second,
	}
}

type DatasetInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format" binding:"required"`
}

func (s *TrainingService) Start() {
	s.Refresh(context.Background())
	s.poller = startPoller(s.PollInterval, func() {
		s.Refresh(context.Background())
	})
}

func (s *TrainingService) Close() {
	if s.poller != nil {
		s.poller.Stop()
	}
}

// Refresh reloads datasets, jobs and the server picker. Failures keep the
// prior snapshots.
func (s *TrainingService) Refresh(ctx context.Context) {
	var datasets []models.Dataset
	if err := s.rows.Select(ctx, "datasets", gateway.NewQuery().OrderBy("created_at", false), &datasets); err != nil {
		log.Printf("[Training] dataset refresh failed: %v", err)
	} else {
		s.mu.Lock()
		s.datasets = datasets
		s.mu.Unlock()
	}

	var jobs []models.TrainingJob
	if err := s.rows.Select(ctx, "training_jobs", gateway.NewQuery().OrderBy("created_at", false), &jobs); err != nil {
		log.Printf("[Training] job refresh failed: %v", err)
	} else {
		s.mu.Lock()
		s.jobs = jobs
		s.mu.Unlock()
	}

	var servers []models.AIServer
	if err := s.rows.Select(ctx, "ai_servers", gateway.NewQuery().OrderBy("name", true), &servers); err != nil {
		log.Printf("[Training] server refresh failed: %v", err)
	} else {
		s.mu.Lock()
		s.servers = servers
		s.mu.Unlock()
	}
}

// Datasets returns the snapshot, filtered by case-insensitive substring over
// name and description.
func (s *TrainingService) Datasets(query string) []models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return append([]models.Dataset(nil), s.datasets...)
	}
	needle := strings.ToLower(query)
	matched := make([]models.Dataset, 0, len(s.datasets))
	for _, d := range s.datasets {
		if strings.Contains(strings.ToLower(d.Name), needle) ||
			strings.Contains(strings.ToLower(d.Description), needle) {
			matched = append(matched, d)
		}
	}
	return matched
}

func (s *TrainingService) Jobs() []models.TrainingJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TrainingJob(nil), s.jobs...)
}

func (s *TrainingService) Servers() []models.AIServer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AIServer(nil), s.servers...)
}

// UploadDataset stores the archive then inserts the row. The image count is a
// placeholder the worker fills in after unpacking.
func (s *TrainingService) UploadDataset(ctx context.Context, input DatasetInput, file UploadFile) error {
	key := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), strings.ReplaceAll(file.Name, "/", "_"))
	if err := s.objects.Upload(ctx, gateway.BucketDatasets, key, file.Body, file.ContentType); err != nil {
		return fmt.Errorf("failed to upload dataset archive: %w", err)
	}

	row := map[string]any{
		"name":         input.Name,
		"description":  input.Description,
		"format":       input.Format,
		"storage_path": key,
		"image_count":  0,
	}
	if err := s.rows.Insert(ctx, "datasets", row, nil); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// StartTraining submits a pending job. The console plays no part in running
// it.
func (s *TrainingService) StartTraining(ctx context.Context, datasetID, serverID string, epochs int) error {
	return s.submitJob(ctx, datasetID, serverID, "", epochs)
}

// Retrain submits a pending job that records which model it is meant to
// improve, so the worker can seed from the base weights.
func (s *TrainingService) Retrain(ctx context.Context, baseModelID, datasetID, serverID string, epochs int) error {
	return s.submitJob(ctx, datasetID, serverID, baseModelID, epochs)
}

func (s *TrainingService) submitJob(ctx context.Context, datasetID, serverID, baseModelID string, epochs int) error {
	row := map[string]any{
		"dataset_id": datasetID,
		"server_id":  serverID,
		"epochs":     epochs,
		"status":     "pending",
	}
	if baseModelID != "" {
		row["base_model_id"] = baseModelID
	}
	if err := s.rows.Insert(ctx, "training_jobs", row, nil); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// DeleteDataset removes the stored archive best-effort, then the row.
func (s *TrainingService) DeleteDataset(ctx context.Context, id, storagePath string) error {
	if storagePath != "" {
		if err := s.objects.Remove(ctx, gateway.BucketDatasets, storagePath); err != nil {
			log.Printf("[Training] best-effort archive removal failed for %s: %v", storagePath, err)
		}
	}
	if err := s.rows.Delete(ctx, "datasets", gateway.NewQuery().Eq("id", id)); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}
