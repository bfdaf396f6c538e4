package models

import "time"

// UIState is a locally persisted key/value preference (sidebar minimized flag,
// last active view). This is the only collection the console stores itself.
type UIState struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fixed preference keys restored on load.
const (
	StateSidebarMinimized = "sidebar_minimized"
	StateActiveView       = "active_view"
)
