package services

import (
	"context"
	"log"
	"sync"
	"time"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"
)

type Stats struct {
	TotalCameras         int `json:"total_cameras"`
	OnlineCameras        int `json:"online_cameras"`
	TotalServers         int `json:"total_servers"`
	ActiveModels         int `json:"active_models"`
	RecentEvents         int `json:"recent_events"` // last 24 hours
	UnacknowledgedEvents int `json:"unacknowledged_events"`
}

// DashboardService keeps the landing-page stats snapshot, re-polled every 10
// seconds. The five source queries are issued concurrently.
type DashboardService struct {
	rows RowStore

	PollInterval time.Duration

	mu     sync.RWMutex
	stats  Stats
	poller *poller
}

func NewDashboardService(rows RowStore) *DashboardService {
	return &DashboardService{
		rows:         rows,
		PollInterval: 10 * time.Second,
	}
}

func (s *DashboardService) Start() {
	s.Refresh(context.Background())
	s.poller = startPoller(s.PollInterval, func() {
		s.Refresh(context.Background())
	})
}

func (s *DashboardService) Close() {
	if s.poller != nil {
		s.poller.Stop()
	}
}

func (s *DashboardService) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Refresh recomputes the snapshot. Any failed source query leaves its fields
// at their previous values.
func (s *DashboardService) Refresh(ctx context.Context) {
	var (
		wg          sync.WaitGroup
		cameras     []models.Camera
		servers     []models.AIServer
		activeCount int
		recent      []models.Event
		unacked     []models.Event
		camErr      error
		srvErr      error
		modErr      error
		recErr      error
		unaErr      error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		camErr = s.rows.Select(ctx, "cameras", gateway.NewQuery(), &cameras)
	}()
	go func() {
		defer wg.Done()
		srvErr = s.rows.Select(ctx, "ai_servers", gateway.NewQuery(), &servers)
	}()
	go func() {
		defer wg.Done()
		var active []models.AIModel
		modErr = s.rows.Select(ctx, "ai_models", gateway.NewQuery().Eq("is_active", true), &active)
		activeCount = len(active)
	}()
	go func() {
		defer wg.Done()
		since := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
		recErr = s.rows.Select(ctx, "events", gateway.NewQuery().Gte("created_at", since), &recent)
	}()
	go func() {
		defer wg.Done()
		unaErr = s.rows.Select(ctx, "events", gateway.NewQuery().Eq("acknowledged", false), &unacked)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if camErr == nil {
		s.stats.TotalCameras = len(cameras)
		online := 0
		for _, c := range cameras {
			if c.Status == "online" {
				online++
			}
		}
		s.stats.OnlineCameras = online
	}
	if srvErr == nil {
		s.stats.TotalServers = len(servers)
	}
	if modErr == nil {
		s.stats.ActiveModels = activeCount
	}
	if recErr == nil {
		s.stats.RecentEvents = len(recent)
	}
	if unaErr == nil {
		s.stats.UnacknowledgedEvents = len(unacked)
	}

	for _, err := range []error{camErr, srvErr, modErr, recErr, unaErr} {
		if err != nil {
			log.Printf("[Dashboard] stats refresh failed: %v", err)
			break
		}
	}
}
