package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// StatsService owns the liquid study time counter.
type StatsService struct {
	mu     sync.Mutex
	repo   ports.LiquidTimeRepository
	liquid domain.LiquidTime
	// seconds counted while the store was unwritable
	pending int64
	logger *slog.Logger
}

// NewStatsService creates a service starting at zero.
func NewStatsService(repo ports.LiquidTimeRepository, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{repo: repo, logger: logger}
}

// Load reads the stored counter. Corrupt data counts as zero.
func (s *StatsService) Load(ctx context.Context) error {
	v, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrCorruptValue) {
			return fmt.Errorf("failed to load liquid time: %w", err)
		}
		s.logger.Warn("stored liquid time is unreadable, starting at zero", "error", err)
	}

	s.mu.Lock()
	s.liquid = v
	s.mu.Unlock()
	return nil
}

// LiquidTime returns the accumulated focus seconds.
func (s *StatsService) LiquidTime() domain.LiquidTime {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liquid
}

// AddFocusSecond adds one second to the stored total and adopts the result,
// which includes seconds recorded by other processes. When the write fails
// the second is kept in memory and added with the next successful write.
func (s *StatsService) AddFocusSecond(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.repo.Add(ctx, s.pending+1)
	if err != nil {
		s.pending++
		s.liquid = s.liquid.Add(1)
		return fmt.Errorf("failed to save liquid time: %w", err)
	}
	s.pending = 0
	s.liquid = v
	return nil
}

// Reset zeroes the counter. Callers must have the user's confirmation.
func (s *StatsService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Save(ctx, 0); err != nil {
		return fmt.Errorf("failed to reset liquid time: %w", err)
	}
	s.liquid = 0
	s.pending = 0
	return nil
}
