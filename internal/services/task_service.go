// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// TaskService handles task ledger use cases. Every mutation is written
// through to storage before it becomes visible.
type TaskService struct {
	mu     sync.Mutex
	repo   ports.TaskRepository
	ledger *domain.Ledger
	logger *slog.Logger
}

// NewTaskService creates a new task service with an empty ledger.
func NewTaskService(repo ports.TaskRepository, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{repo: repo, ledger: domain.NewLedger(nil), logger: logger}
}

// Load reads the ledger from storage. Corrupt data leaves an empty ledger.
// Calling it again picks up edits made by other processes.
func (s *TaskService) Load(ctx context.Context) error {
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrCorruptValue) {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		s.logger.Warn("stored tasks are unreadable, starting with an empty list", "error", err)
	}

	s.mu.Lock()
	s.ledger = domain.NewLedger(tasks)
	s.mu.Unlock()
	return nil
}

// ListTasks returns the ledger, newest first.
func (s *TaskService) ListTasks(ctx context.Context) []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Tasks()
}

// AddTaskRequest contains the data needed to create a new task.
type AddTaskRequest struct {
	Title          string
	TotalQuestions int
}

// AddTask creates a task and prepends it to the ledger.
func (s *TaskService) AddTask(ctx context.Context, req AddTaskRequest) (*domain.Task, error) {
	var task *domain.Task
	err := s.mutate(ctx, func(l *domain.Ledger) error {
		var err error
		task, err = l.Add(req.Title, req.TotalQuestions)
		if err != nil {
			return fmt.Errorf("invalid task: %w", err)
		}
		return nil
	})
	return task, err
}

// ToggleTask flips a task's completed flag.
func (s *TaskService) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	var task *domain.Task
	err := s.mutate(ctx, func(l *domain.Ledger) error {
		var err error
		task, err = l.Toggle(id)
		return err
	})
	return task, err
}

// AdjustTask moves a task's completed count by delta.
func (s *TaskService) AdjustTask(ctx context.Context, id string, delta int) (*domain.Task, error) {
	var task *domain.Task
	err := s.mutate(ctx, func(l *domain.Ledger) error {
		var err error
		task, err = l.Adjust(id, delta)
		return err
	})
	return task, err
}

// DeleteTask removes a task. Unknown ids are ignored.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, func(l *domain.Ledger) error {
		l.Delete(id)
		return nil
	})
}

// GetTask resolves a task by id or unique id prefix.
func (s *TaskService) GetTask(ctx context.Context, ref string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Resolve(ref)
}

// FindTasks fuzzy-matches titles against query, best match first.
// An empty query returns the whole ledger.
func (s *TaskService) FindTasks(ctx context.Context, query string) []*domain.Task {
	tasks := s.ListTasks(ctx)
	query = strings.TrimSpace(query)
	if query == "" {
		return tasks
	}

	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}

	matches := fuzzy.Find(query, titles)
	out := make([]*domain.Task, 0, len(matches))
	for _, m := range matches {
		out = append(out, tasks[m.Index])
	}
	return out
}

// CompletedQuestions sums completed questions across the ledger.
func (s *TaskService) CompletedQuestions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CompletedQuestions()
}

// mutate applies fn to the ledger as stored right now, not to this
// service's copy, so edits made by other processes since Load survive.
// The visible ledger is swapped only after the write commits.
func (s *TaskService) mutate(ctx context.Context, fn func(*domain.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next *domain.Ledger
	var opErr error
	_, err := s.repo.Update(ctx, func(stored []*domain.Task) ([]*domain.Task, error) {
		next = domain.NewLedger(stored)
		if opErr = fn(next); opErr != nil {
			return nil, opErr
		}
		return next.Tasks(), nil
	})
	if opErr != nil {
		return opErr
	}
	if err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	s.ledger = next
	return nil
}
