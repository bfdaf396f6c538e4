package models

import "time"

type Event struct {
	ID           string         `json:"id"`
	CameraID     string         `json:"camera_id"`
	AIModelID    string         `json:"ai_model_id,omitempty"`
	EventType    string         `json:"event_type"`
	Confidence   float64        `json:"confidence,omitempty"`
	SnapshotURL  string         `json:"snapshot_url,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Acknowledged bool           `json:"acknowledged"`
	CreatedAt    time.Time      `json:"created_at"`
}
