package services

import (
	"context"
	"testing"
	"time"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(rows RowStore) *NotifierService {
	svc := NewNotifierService(rows, nil)
	svc.DismissAfter = 30 * time.Millisecond
	return svc
}

func cameraLookup(t *testing.T, calls *int) func(string, *gateway.Query, any) error {
	return func(collection string, q *gateway.Query, dest any) error {
		require.Equal(t, "cameras", collection)
		*calls++
		fill(t, dest, []models.Camera{{ID: "cam-1", Name: "Lobby"}})
		return nil
	}
}

func TestNotifier_EnrichesWithCameraName(t *testing.T) {
	calls := 0
	svc := newTestNotifier(&fakeRows{selectFn: cameraLookup(t, &calls)})

	svc.handleNew(context.Background(), models.Event{ID: "ev-1", CameraID: "cam-1", EventType: "intrusion"})

	current := svc.Current()
	require.NotNil(t, current)
	assert.Equal(t, "Lobby", current.CameraName)
	assert.Equal(t, alarmSoundURL, current.SoundURL)

	// Second event for the same camera hits the name cache.
	svc.handleNew(context.Background(), models.Event{ID: "ev-2", CameraID: "cam-1", EventType: "fire"})
	assert.Equal(t, 1, calls)
}

func TestNotifier_UnknownCameraFallback(t *testing.T) {
	rows := &fakeRows{
		selectFn: func(collection string, q *gateway.Query, dest any) error {
			fill(t, dest, []models.Camera{})
			return nil
		},
	}
	svc := newTestNotifier(rows)

	svc.handleNew(context.Background(), models.Event{ID: "ev-1", CameraID: "ghost"})

	require.NotNil(t, svc.Current())
	assert.Equal(t, "Unknown Camera", svc.Current().CameraName)
}

func TestNotifier_LastEventWins(t *testing.T) {
	calls := 0
	svc := newTestNotifier(&fakeRows{selectFn: cameraLookup(t, &calls)})
	ctx := context.Background()

	svc.handleNew(ctx, models.Event{ID: "ev-1", CameraID: "cam-1", EventType: "intrusion"})
	svc.handleNew(ctx, models.Event{ID: "ev-2", CameraID: "cam-1", EventType: "fire"})

	current := svc.Current()
	require.NotNil(t, current)
	assert.Equal(t, "ev-2", current.ID)
}

func TestNotifier_AutoDismissAfterTimeout(t *testing.T) {
	calls := 0
	svc := newTestNotifier(&fakeRows{selectFn: cameraLookup(t, &calls)})

	svc.handleNew(context.Background(), models.Event{ID: "ev-1", CameraID: "cam-1"})
	require.NotNil(t, svc.Current())

	assert.Eventually(t, func() bool {
		return svc.Current() == nil
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_StaleTimerDoesNotDismissNewerAlert(t *testing.T) {
	calls := 0
	svc := newTestNotifier(&fakeRows{selectFn: cameraLookup(t, &calls)})
	ctx := context.Background()

	svc.handleNew(ctx, models.Event{ID: "ev-1", CameraID: "cam-1"})
	first := svc.Current()
	svc.handleNew(ctx, models.Event{ID: "ev-2", CameraID: "cam-1"})

	// Firing the first alert's timer by hand must be a no-op now.
	svc.expire(first)
	require.NotNil(t, svc.Current())
	assert.Equal(t, "ev-2", svc.Current().ID)
}

func TestNotifier_SubscribersReceiveEventAndDismiss(t *testing.T) {
	calls := 0
	svc := newTestNotifier(&fakeRows{selectFn: cameraLookup(t, &calls)})
	ch := svc.Subscribe()

	svc.handleNew(context.Background(), models.Event{ID: "ev-1", CameraID: "cam-1", EventType: "intrusion"})

	update := <-ch
	require.Equal(t, "event", update.Type)
	require.NotNil(t, update.Notification)
	assert.Equal(t, "Lobby", update.Notification.CameraName)

	svc.Dismiss()
	update = <-ch
	assert.Equal(t, "dismiss", update.Type)
	assert.Nil(t, svc.Current())

	svc.Unsubscribe(ch)
}

func TestNotifier_DismissWithoutAlertIsNoop(t *testing.T) {
	svc := newTestNotifier(&fakeRows{})
	ch := svc.Subscribe()
	defer svc.Unsubscribe(ch)

	svc.Dismiss()

	select {
	case update := <-ch:
		t.Fatalf("unexpected update %+v", update)
	case <-time.After(20 * time.Millisecond):
	}
}
