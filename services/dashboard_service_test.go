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

func TestDashboard_RefreshComputesStats(t *testing.T) {
	rows := &fakeRows{
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			switch collection {
			case "cameras":
				fill(t, dest, []models.Camera{
					{ID: "1", Status: "online"},
					{ID: "2", Status: "offline"},
					{ID: "3", Status: "online"},
				})
			case "ai_servers":
				fill(t, dest, []models.AIServer{{ID: "1"}, {ID: "2"}})
			case "ai_models":
				// Invoked from Refresh's worker goroutines, so assert only.
				assert.Contains(t, q.String(), "is_active=eq.true")
				fill(t, dest, []models.AIModel{{ID: "1", IsActive: true}})
			case "events":
				if strings.Contains(q.String(), "acknowledged=eq.false") {
					fill(t, dest, []models.Event{{ID: "1"}, {ID: "2"}})
				} else {
					assert.Contains(t, q.String(), "created_at=gte.")
					fill(t, dest, []models.Event{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}})
				}
			}
			return nil
		},
	}
	svc := NewDashboardService(rows)

	svc.Refresh(context.Background())

	stats := svc.Stats()
	assert.Equal(t, 3, stats.TotalCameras)
	assert.Equal(t, 2, stats.OnlineCameras)
	assert.Equal(t, 2, stats.TotalServers)
	assert.Equal(t, 1, stats.ActiveModels)
	assert.Equal(t, 4, stats.RecentEvents)
	assert.Equal(t, 2, stats.UnacknowledgedEvents)
}

func TestDashboard_FailedQueryKeepsPreviousValue(t *testing.T) {
	failCameras := false
	rows := &fakeRows{
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			switch collection {
			case "cameras":
				if failCameras {
					return errors.New("gateway returned 500")
				}
				fill(t, dest, []models.Camera{{ID: "1", Status: "online"}})
			case "ai_servers":
				fill(t, dest, []models.AIServer{{ID: "1"}, {ID: "2"}, {ID: "3"}})
			}
			return nil
		},
	}
	svc := NewDashboardService(rows)
	ctx := context.Background()

	svc.Refresh(ctx)
	require.Equal(t, 1, svc.Stats().TotalCameras)

	// The camera count survives a failed camera query; the rest still updates.
	failCameras = true
	svc.Refresh(ctx)
	assert.Equal(t, 1, svc.Stats().TotalCameras)
	assert.Equal(t, 3, svc.Stats().TotalServers)
}
