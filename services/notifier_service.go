package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"

	"github.com/patrickmn/go-cache"
)

// Fixed audio cue played with every alert. Playback is the client's job and
// best-effort; failures there are logged, never surfaced.
const alarmSoundURL = "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3"

// Feed is the change-feed subscription interface. *gateway.Client satisfies
// it.
type Feed interface {
	Subscribe(ctx context.Context, collection string) <-chan json.RawMessage
}

// Notification is an event enriched with the owning camera's display name.
type Notification struct {
	models.Event
	CameraName string    `json:"camera_name"`
	SoundURL   string    `json:"sound_url"`
	ReceivedAt time.Time `json:"received_at"`
}

// NotifierUpdate is what overlay subscribers receive.
type NotifierUpdate struct {
	Type         string        `json:"type"` // "event" or "dismiss"
	Notification *Notification `json:"notification,omitempty"`
}

// NotifierService is the process-wide event notification overlay: it runs
// from app start to shutdown, shows one alert at a time (last event wins) and
// auto-dismisses after DismissAfter unless the user dismisses earlier.
type NotifierService struct {
	rows RowStore
	feed Feed

	DismissAfter time.Duration

	names *cache.Cache

	mu      sync.Mutex
	current *Notification
	timer   *time.Timer
	subs    map[chan NotifierUpdate]struct{}
	cancel  context.CancelFunc
}

func NewNotifierService(rows RowStore, feed Feed) *NotifierService {
	return &NotifierService{
		rows:         rows,
		feed:         feed,
		DismissAfter: 10 * time.Second,
		names:        cache.New(5*time.Minute, 10*time.Minute),
		subs:         make(map[chan NotifierUpdate]struct{}),
	}
}

// Start opens the single long-lived feed subscription. Reconnection is owned
// by the feed client.
func (s *NotifierService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	rows := s.feed.Subscribe(ctx, "events")
	go func() {
		for raw := range rows {
			var event models.Event
			if err := json.Unmarshal(raw, &event); err != nil {
				log.Printf("[Notifier] bad event row: %v", err)
				continue
			}
			s.handleNew(ctx, event)
		}
	}()
}

func (s *NotifierService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.current = nil
}

func (s *NotifierService) handleNew(ctx context.Context, event models.Event) {
	notif := &Notification{
		Event:      event,
		CameraName: s.cameraName(ctx, event.CameraID),
		SoundURL:   alarmSoundURL,
		ReceivedAt: time.Now(),
	}
	log.Printf("[Notifier] %s detected on %s", event.EventType, notif.CameraName)

	s.mu.Lock()
	// A new arrival replaces the current alert and resets the timer.
	if s.timer != nil {
		s.timer.Stop()
	}
	s.current = notif
	s.timer = time.AfterFunc(s.DismissAfter, func() {
		s.expire(notif)
	})
	s.mu.Unlock()

	s.broadcast(NotifierUpdate{Type: "event", Notification: notif})
}

// expire auto-dismisses, but only if the alert is still the one on screen.
func (s *NotifierService) expire(notif *Notification) {
	s.mu.Lock()
	if s.current != notif {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.mu.Unlock()

	s.broadcast(NotifierUpdate{Type: "dismiss"})
}

// Dismiss clears the alert on user request.
func (s *NotifierService) Dismiss() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = nil
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.broadcast(NotifierUpdate{Type: "dismiss"})
}

// Current returns the alert on screen, or nil.
func (s *NotifierService) Current() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers an overlay client. The channel is dropped-from rather
// than blocked-on when the client is slow.
func (s *NotifierService) Subscribe() chan NotifierUpdate {
	ch := make(chan NotifierUpdate, 8)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *NotifierService) Unsubscribe(ch chan NotifierUpdate) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
	close(ch)
}

func (s *NotifierService) broadcast(update NotifierUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- update:
		default:
		}
	}
}

// cameraName is the single point lookup the gateway does not join for us,
// memoized per camera.
func (s *NotifierService) cameraName(ctx context.Context, cameraID string) string {
	if name, found := s.names.Get(cameraID); found {
		return name.(string)
	}

	var cameras []models.Camera
	q := gateway.NewQuery().Eq("id", cameraID).Limit(1)
	if err := s.rows.Select(ctx, "cameras", q, &cameras); err != nil || len(cameras) == 0 {
		return "Unknown Camera"
	}
	s.names.Set(cameraID, cameras[0].Name, cache.DefaultExpiration)
	return cameras[0].Name
}
