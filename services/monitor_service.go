package services

import (
	"fmt"
	"sync"

	"e-guarding-cctv/console/models"
)

// Tile states. Error is terminal; there is no automatic retry.
const (
	TileLoading = "loading"
	TileLive    = "live"
	TileError   = "error"
)

// PlayerEvent is a playback lifecycle signal from the player library.
type PlayerEvent int

const (
	PlayerReady PlayerEvent = iota
	PlayerBuffer
	PlayerBufferEnd
	PlayerError
)

// PlayerSession is one running playback, keyed by stream URL. Stop must
// release the underlying resources.
type PlayerSession interface {
	Events() <-chan PlayerEvent
	Stop()
}

// Player is the external playback abstraction the monitoring grid delegates
// decode/playback to.
type Player interface {
	Open(url string, muted bool) (PlayerSession, error)
}

// Tile is the per-camera view state of the monitoring grid.
type Tile struct {
	CameraID   string `json:"camera_id"`
	CameraName string `json:"camera_name"`
	StreamURL  string `json:"stream_url"`
	Muted      bool   `json:"muted"`
	State      string `json:"state"`
}

type tileSession struct {
	tile    Tile
	session PlayerSession
}

// MonitorService runs the live monitoring grid: N concurrent tiles with
// independent loading/error state, plus an optional unmuted full-screen focus
// session replaying one stream.
type MonitorService struct {
	player Player

	mu      sync.RWMutex
	tiles   map[string]*tileSession
	focus   *tileSession
	columns int // 0 = derived from camera count
}

func NewMonitorService(player Player) *MonitorService {
	return &MonitorService{
		player: player,
		tiles:  make(map[string]*tileSession),
	}
}

// StartTile opens (or reopens, when the URL changed) muted playback for a
// camera. The tile starts in the loading state.
func (s *MonitorService) StartTile(camera models.Camera) error {
	s.mu.Lock()
	if existing, ok := s.tiles[camera.ID]; ok {
		if existing.tile.StreamURL == camera.StreamURL {
			s.mu.Unlock()
			return nil
		}
		// URL changed: state resets and playback restarts.
		existing.session.Stop()
		delete(s.tiles, camera.ID)
	}
	s.mu.Unlock()

	ts := &tileSession{tile: Tile{
		CameraID:   camera.ID,
		CameraName: camera.Name,
		StreamURL:  camera.StreamURL,
		Muted:      true,
		State:      TileLoading,
	}}

	session, err := s.player.Open(camera.StreamURL, true)
	if err != nil {
		ts.tile.State = TileError
		s.mu.Lock()
		s.tiles[camera.ID] = ts
		s.mu.Unlock()
		return fmt.Errorf("failed to open stream for camera %s: %w", camera.ID, err)
	}
	ts.session = session

	s.mu.Lock()
	s.tiles[camera.ID] = ts
	s.mu.Unlock()

	go s.watch(ts)
	return nil
}

// watch drives the tile state machine from player callbacks.
func (s *MonitorService) watch(ts *tileSession) {
	for ev := range ts.session.Events() {
		s.mu.Lock()
		switch ev {
		case PlayerReady, PlayerBufferEnd:
			ts.tile.State = TileLive
		case PlayerBuffer:
			ts.tile.State = TileLoading
		case PlayerError:
			ts.tile.State = TileError
		}
		terminal := ts.tile.State == TileError
		s.mu.Unlock()
		if terminal {
			ts.session.Stop()
			return
		}
	}
}

// Tiles returns a snapshot of every tile's state.
func (s *MonitorService) Tiles() []Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tiles := make([]Tile, 0, len(s.tiles))
	for _, ts := range s.tiles {
		tiles = append(tiles, ts.tile)
	}
	return tiles
}

// Tile reports one camera's state.
func (s *MonitorService) Tile(cameraID string) (Tile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.tiles[cameraID]
	if !ok {
		return Tile{}, false
	}
	return ts.tile, true
}

// StopTile tears one tile down and stops its playback.
func (s *MonitorService) StopTile(cameraID string) {
	s.mu.Lock()
	ts, ok := s.tiles[cameraID]
	if ok {
		delete(s.tiles, cameraID)
	}
	s.mu.Unlock()
	if ok && ts.session != nil {
		ts.session.Stop()
	}
}

// OpenFocus starts the full-screen session: same stream, unmuted, replacing
// any previous focus.
func (s *MonitorService) OpenFocus(camera models.Camera) error {
	s.CloseFocus()

	session, err := s.player.Open(camera.StreamURL, false)
	if err != nil {
		return fmt.Errorf("failed to open focus stream for camera %s: %w", camera.ID, err)
	}
	ts := &tileSession{
		tile: Tile{
			CameraID:   camera.ID,
			CameraName: camera.Name,
			StreamURL:  camera.StreamURL,
			Muted:      false,
			State:      TileLoading,
		},
		session: session,
	}

	s.mu.Lock()
	s.focus = ts
	s.mu.Unlock()

	go s.watch(ts)
	return nil
}

func (s *MonitorService) Focus() (Tile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.focus == nil {
		return Tile{}, false
	}
	return s.focus.tile, true
}

// CloseFocus stops the full-screen playback.
func (s *MonitorService) CloseFocus() {
	s.mu.Lock()
	ts := s.focus
	s.focus = nil
	s.mu.Unlock()
	if ts != nil && ts.session != nil {
		ts.session.Stop()
	}
}

// Teardown stops every session; leaving the view must not leak players.
func (s *MonitorService) Teardown() {
	s.mu.Lock()
	tiles := s.tiles
	s.tiles = make(map[string]*tileSession)
	focus := s.focus
	s.focus = nil
	s.mu.Unlock()

	for _, ts := range tiles {
		if ts.session != nil {
			ts.session.Stop()
		}
	}
	if focus != nil && focus.session != nil {
		focus.session.Stop()
	}
}

// SetColumns picks an explicit grid width (1, 2 or 4), or 0 to derive it from
// the camera count again.
func (s *MonitorService) SetColumns(n int) error {
	switch n {
	case 0, 1, 2, 4:
	default:
		return fmt.Errorf("unsupported column count %d", n)
	}
	s.mu.Lock()
	s.columns = n
	s.mu.Unlock()
	return nil
}

// Columns returns the grid width for the given camera count.
func (s *MonitorService) Columns(cameraCount int) int {
	s.mu.RLock()
	chosen := s.columns
	s.mu.RUnlock()
	if chosen != 0 {
		return chosen
	}
	switch {
	case cameraCount <= 1:
		return 1
	case cameraCount <= 4:
		return 2
	case cameraCount <= 6:
		return 3
	default:
		return 4
	}
}
