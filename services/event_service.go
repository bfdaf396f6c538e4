package services

import (
	"context"
	"log"
	"sync"
	"time"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"
)

// Acknowledged-state filters applied server-side by the gateway.
const (
	FilterAll            = "all"
	FilterAcknowledged   = "acknowledged"
	FilterUnacknowledged = "unacknowledged"
)

const eventPageSize = 100

// EventService keeps the events page snapshot current: up to 100 rows newest
// first, re-polled every 5 seconds regardless of filter changes.
type EventService struct {
	rows RowStore

	PollInterval time.Duration

	mu     sync.RWMutex
	filter string
	events []models.Event
	poller *poller
}

func NewEventService(rows RowStore) *EventService {
	return &EventService{
		rows:         rows,
		PollInterval: 5 * time.Second,
		filter:       FilterAll,
	}
}

func (s *EventService) Start() {
	s.Refresh(context.Background())
	s.poller = startPoller(s.PollInterval, func() {
		s.Refresh(context.Background())
	})
}

func (s *EventService) Close() {
	if s.poller != nil {
		s.poller.Stop()
	}
}

// Refresh reloads the page. A load failure leaves the previous snapshot in
// place.
func (s *EventService) Refresh(ctx context.Context) {
	q := gateway.NewQuery().OrderBy("created_at", false).Limit(eventPageSize)

	s.mu.RLock()
	filter := s.filter
	s.mu.RUnlock()

	switch filter {
	case FilterAcknowledged:
		q.Eq("acknowledged", true)
	case FilterUnacknowledged:
		q.Eq("acknowledged", false)
	}

	var events []models.Event
	if err := s.rows.Select(ctx, "events", q, &events); err != nil {
		log.Printf("[Events] refresh failed: %v", err)
		return
	}

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
}

// SetFilter switches the acknowledged-state filter and reloads immediately.
func (s *EventService) SetFilter(ctx context.Context, filter string) {
	switch filter {
	case FilterAll, FilterAcknowledged, FilterUnacknowledged:
	default:
		filter = FilterAll
	}
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	s.Refresh(ctx)
}

func (s *EventService) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Events returns the snapshot, optionally narrowed to one event type. The
// type filter is applied over the loaded page only.
func (s *EventService) Events(eventType string) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if eventType == "" || eventType == "all" {
		return append([]models.Event(nil), s.events...)
	}
	matched := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.EventType == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

// EventTypes derives the distinct set of types present in the loaded page,
// not the full historical set.
func (s *EventService) EventTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var types []string
	for _, e := range s.events {
		if !seen[e.EventType] {
			seen[e.EventType] = true
			types = append(types, e.EventType)
		}
	}
	return types
}

// UnacknowledgedCount counts pending events within the loaded page.
func (s *EventService) UnacknowledgedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.events {
		if !e.Acknowledged {
			n++
		}
	}
	return n
}

// Acknowledge marks a single event reviewed and reloads immediately.
func (s *EventService) Acknowledge(ctx context.Context, id string) error {
	patch := map[string]bool{"acknowledged": true}
	if err := s.rows.Update(ctx, "events", patch, gateway.NewQuery().Eq("id", id)); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}
