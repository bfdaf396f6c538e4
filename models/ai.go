package models

import "time"

type AIServer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IPAddress string    `json:"ip_address"`
	Port      int       `json:"port"`
	Status    string    `json:"status"`
	GPUModel  string    `json:"gpu_model,omitempty"`
	CPUCores  int       `json:"cpu_cores,omitempty"`
	MemoryGB  int       `json:"memory_gb,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AIModel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ModelType   string    `json:"model_type"`
	Version     string    `json:"version"`
	Accuracy    float64   `json:"accuracy,omitempty"`
	ServerID    string    `json:"server_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	ModelPath   string    `json:"model_path,omitempty"` // object key in the ai-models bucket
	CreatedAt   time.Time `json:"created_at"`
}

// CameraModel is the camera/model assignment join row. Existence means
// the model is assigned to the camera.
type CameraModel struct {
	ID        string    `json:"id"`
	CameraID  string    `json:"camera_id"`
	AIModelID string    `json:"ai_model_id"`
	CreatedAt time.Time `json:"created_at"`
}
