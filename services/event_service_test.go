package services

import (
	"context"
	"errors"
	"testing"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_RefreshAppliesServerSideFilter(t *testing.T) {
	var lastQuery string
	rows := &fakeRows{
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			require.Equal(t, "events", collection)
			lastQuery = q.String()
			fill(t, dest, []models.Event{})
			return nil
		},
	}
	svc := NewEventService(rows)
	ctx := context.Background()

	svc.Refresh(ctx)
	assert.Contains(t, lastQuery, "order=created_at.desc")
	assert.Contains(t, lastQuery, "limit=100")
	assert.NotContains(t, lastQuery, "acknowledged")

	svc.SetFilter(ctx, FilterUnacknowledged)
	assert.Contains(t, lastQuery, "acknowledged=eq.false")

	svc.SetFilter(ctx, FilterAcknowledged)
	assert.Contains(t, lastQuery, "acknowledged=eq.true")

	// Unknown filters fall back to all.
	svc.SetFilter(ctx, "bogus")
	assert.Equal(t, FilterAll, svc.Filter())
	assert.NotContains(t, lastQuery, "acknowledged")
}

func TestEventService_RefreshFailureKeepsPriorSnapshot(t *testing.T) {
	fail := false
	rows := &fakeRows{
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			if fail {
				return errors.New("gateway returned 500")
			}
			fill(t, dest, []models.Event{{ID: "ev-1", EventType: "intrusion"}})
			return nil
		},
	}
	svc := NewEventService(rows)
	ctx := context.Background()

	svc.Refresh(ctx)
	require.Len(t, svc.Events(""), 1)

	fail = true
	svc.Refresh(ctx)
	assert.Len(t, svc.Events(""), 1)
}

func TestEventService_TypeFilterAndDistinctTypes(t *testing.T) {
	rows := &fakeRows{
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			fill(t, dest, []models.Event{
				{ID: "1", EventType: "intrusion"},
				{ID: "2", EventType: "fire"},
				{ID: "3", EventType: "intrusion", Acknowledged: true},
			})
			return nil
		},
	}
	svc := NewEventService(rows)
	svc.Refresh(context.Background())

	assert.Len(t, svc.Events("intrusion"), 2)
	assert.Len(t, svc.Events("fire"), 1)
	assert.Len(t, svc.Events("all"), 3)

	// Distinct, first-seen order.
	assert.Equal(t, []string{"intrusion", "fire"}, svc.EventTypes())

	assert.Equal(t, 2, svc.UnacknowledgedCount())
}

func TestEventService_AcknowledgeThenReload(t *testing.T) {
	acked := false
	rows := &fakeRows{
		updateFn: func(collection string, patch any, q *gateway.Query) error {
			require.Equal(t, "events", collection)
			assert.Contains(t, q.String(), "id=eq.ev-1")
			assert.Equal(t, true, asMap(t, patch)["acknowledged"])
			acked = true
			return nil
		},
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			var events []models.Event
			if acked {
				events = []models.Event{{ID: "ev-1", Acknowledged: true}}
			} else {
				events = []models.Event{{ID: "ev-1"}}
			}
			fill(t, dest, events)
			return nil
		},
	}
	svc := NewEventService(rows)
	ctx := context.Background()
	svc.Refresh(ctx)

	require.NoError(t, svc.Acknowledge(ctx, "ev-1"))
	assert.Equal(t, 0, svc.UnacknowledgedCount())
}
