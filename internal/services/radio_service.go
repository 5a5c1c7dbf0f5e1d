package services

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// RadioState describes the ambient radio.
type RadioState struct {
	Index   int
	Station domain.Stream
	On      bool
	Volume  float64
	PlaybackState
}

// RadioService plays one of the fixed internet radio streams.
type RadioService struct {
	mu       sync.Mutex
	streams  []domain.Stream
	index    int
	on       bool
	volume   float64
	playback *playback
}

// NewRadioService creates a stopped radio tuned to the first station.
func NewRadioService(player ports.AudioPlayer, volume float64, logger *slog.Logger) *RadioService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RadioService{
		streams:  domain.Streams,
		volume:   clampVolume(volume),
		playback: newPlayback("radio", player, logger),
	}
}

// Stations returns the station list.
func (s *RadioService) Stations() []domain.Stream {
	return append([]domain.Stream(nil), s.streams...)
}

// Toggle starts or stops playback and returns whether the radio is on.
func (s *RadioService) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = !s.on
	s.applyLocked()
	return s.on
}

// Play turns the radio on.
func (s *RadioService) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.on {
		return
	}
	s.on = true
	s.applyLocked()
}

// Pause turns the radio off.
func (s *RadioService) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.on {
		return
	}
	s.on = false
	s.applyLocked()
}

// Next tunes to the following station, wrapping around.
func (s *RadioService) Next() domain.Stream {
	return s.step(1)
}

// Prev tunes to the previous station, wrapping around.
func (s *RadioService) Prev() domain.Stream {
	return s.step(-1)
}

func (s *RadioService) step(delta int) domain.Stream {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.streams)
	s.index = ((s.index+delta)%n + n) % n
	if s.on {
		s.applyLocked()
	}
	return s.streams[s.index]
}

// Select tunes to the station at index (0-based).
func (s *RadioService) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.streams) {
		return fmt.Errorf("%w: station %d", domain.ErrUnknownPreset, index+1)
	}
	s.index = index
	if s.on {
		s.applyLocked()
	}
	return nil
}

// SetVolume clamps v into [0, 1]. A playing stream restarts at the new level.
func (s *RadioService) SetVolume(v float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampVolume(v)
	if s.on {
		s.applyLocked()
	}
	return s.volume
}

// State returns the radio status.
func (s *RadioService) State() RadioState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RadioState{
		Index:         s.index,
		Station:       s.streams[s.index],
		On:            s.on,
		Volume:        s.volume,
		PlaybackState: s.playback.snapshot(),
	}
}

// Wait blocks until the current stream ends.
func (s *RadioService) Wait() {
	s.playback.wait()
}

// Close stops playback.
func (s *RadioService) Close() {
	s.Pause()
}

func (s *RadioService) applyLocked() {
	if !s.on {
		s.playback.stop()
		return
	}
	s.playback.start(s.streams[s.index].URL, s.volume)
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return domain.DefaultVolume
	}
	return min(max(v, 0), 1)
}
