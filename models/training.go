package models

import "time"

type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Format      string    `json:"format"`
	StoragePath string    `json:"storage_path"` // object key in the datasets bucket
	ImageCount  int       `json:"image_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrainingJob tracks a job executed by an external worker. The console only
// submits jobs and observes progress.
type TrainingJob struct {
	ID           string    `json:"id"`
	DatasetID    string    `json:"dataset_id"`
	ServerID     string    `json:"server_id"`
	BaseModelID  string    `json:"base_model_id,omitempty"` // set when retraining an existing model
	Status       string    `json:"status"`                  // pending, processing, completed, failed
	Epochs       int       `json:"epochs"`
	CurrentEpoch int       `json:"current_epoch"`
	Progress     float64   `json:"progress"` // 0..1, supplied by the worker
	CreatedAt    time.Time `json:"created_at"`
}
