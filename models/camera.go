package models

import "time"

// Camera is a row in the gateway's cameras collection. Rows are owned by the
// gateway; these structs are transient decode targets only.
type Camera struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	Brand          string    `json:"brand"`
	ConnectionType string    `json:"connection_type"`
	StreamURL      string    `json:"stream_url"`
	Username       string    `json:"username,omitempty"`
	Password       string    `json:"password,omitempty"`
	Status         string    `json:"status"` // online, offline
	Resolution     string    `json:"resolution,omitempty"`
	FPS            int       `json:"fps,omitempty"`
	AIServerID     string    `json:"ai_server_id,omitempty"`
	AIModelID      string    `json:"ai_model_id,omitempty"`
	IsRecording    bool      `json:"is_recording"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
