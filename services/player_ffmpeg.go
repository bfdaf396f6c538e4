package services

import (
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"
	"time"
)

// FFmpegPlayer runs one ffmpeg process per session, remuxing the camera
// stream to stdout. Playback health is inferred from the output byte flow:
// first bytes mean ready, a stall means buffering, process exit means error.
type FFmpegPlayer struct {
	// Path to the ffmpeg binary, from FFMPEG_PATH.
	Path string

	// StallTimeout is how long the output may be silent before the session
	// reports buffering.
	StallTimeout time.Duration
}

func NewFFmpegPlayer(path string) *FFmpegPlayer {
	return &FFmpegPlayer{
		Path:         path,
		StallTimeout: 5 * time.Second,
	}
}

type ffmpegSession struct {
	cmd    *exec.Cmd
	events chan PlayerEvent

	stopOnce sync.Once
	stopped  chan struct{}
}

func (p *FFmpegPlayer) Open(url string, muted bool) (PlayerSession, error) {
	if _, err := exec.LookPath(p.Path); err != nil {
		return nil, fmt.Errorf("ffmpeg not found at %q: %w", p.Path, err)
	}

	args := []string{
		"-rtsp_transport", "tcp", // TCP is the reliable transport for RTSP sources
		"-i", url,
		"-c:v", "copy",
	}
	if muted {
		args = append(args, "-an")
	} else {
		args = append(args, "-c:a", "aac", "-b:a", "128k")
	}
	args = append(args, "-f", "mpegts", "pipe:1")

	cmd := exec.Command(p.Path, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open ffmpeg stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	log.Printf("[Player] ffmpeg started for %s (pid %d)", url, cmd.Process.Pid)

	s := &ffmpegSession{
		cmd:     cmd,
		events:  make(chan PlayerEvent, 8),
		stopped: make(chan struct{}),
	}
	go s.run(stdout, p.StallTimeout)
	return s, nil
}

func (s *ffmpegSession) Events() <-chan PlayerEvent {
	return s.events
}

func (s *ffmpegSession) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopped)
		if s.cmd.Process != nil {
			s.cmd.Process.Kill()
		}
	})
}

// run turns the output byte flow into lifecycle events. The reader goroutine
// reports chunk arrivals; this loop times them against the stall window.
func (s *ffmpegSession) run(stdout io.ReadCloser, stallTimeout time.Duration) {
	defer close(s.events)

	chunks := make(chan int)
	go func() {
		defer close(chunks)
		buf := make([]byte, 32*1024)
		for {
			n, err := stdout.Read(buf)
			if n > 0 {
				select {
				case chunks <- n:
				case <-s.stopped:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	timer := time.NewTimer(stallTimeout)
	defer timer.Stop()

	started := false
	stalled := false
	for {
		select {
		case <-s.stopped:
			s.cmd.Wait()
			return
		case _, ok := <-chunks:
			if !ok {
				// EOF or read error: the process is gone.
				err := s.cmd.Wait()
				log.Printf("[Player] ffmpeg exited (pid %d): %v", s.cmd.Process.Pid, err)
				s.emit(PlayerError)
				return
			}
			if !started {
				started = true
				s.emit(PlayerReady)
			} else if stalled {
				stalled = false
				s.emit(PlayerBufferEnd)
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(stallTimeout)
		case <-timer.C:
			if started && !stalled {
				stalled = true
				s.emit(PlayerBuffer)
			}
			timer.Reset(stallTimeout)
		}
	}
}

func (s *ffmpegSession) emit(ev PlayerEvent) {
	select {
	case s.events <- ev:
	case <-s.stopped:
	}
}
