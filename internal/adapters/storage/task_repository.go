package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// taskRepository implements ports.TaskRepository as a JSON array in one slot.
type taskRepository struct {
	kv ports.KVStore
}

// newTaskRepository creates a new task repository.
func newTaskRepository(kv ports.KVStore) ports.TaskRepository {
	return &taskRepository{kv: kv}
}

// Load returns the stored ledger, newest first.
func (r *taskRepository) Load(ctx context.Context) ([]*domain.Task, error) {
	raw, ok, err := r.kv.Get(ctx, ports.KeyTasks)
	if err != nil {
		return []*domain.Task{}, err
	}
	if !ok {
		return []*domain.Task{}, nil
	}
	tasks, err := decodeTasks(raw)
	if err != nil {
		return []*domain.Task{}, err
	}
	return tasks, nil
}

// Save replaces the stored ledger.
func (r *taskRepository) Save(ctx context.Context, tasks []*domain.Task) error {
	data, err := encodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, ports.KeyTasks, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Update applies fn to the ledger as currently stored and saves the result.
// An unreadable slot is treated as empty and overwritten.
func (r *taskRepository) Update(ctx context.Context, fn func([]*domain.Task) ([]*domain.Task, error)) ([]*domain.Task, error) {
	var saved []*domain.Task
	err := r.kv.Update(ctx, ports.KeyTasks, func(raw string, ok bool) (string, error) {
		tasks := []*domain.Task{}
		if ok {
			if decoded, err := decodeTasks(raw); err == nil {
				tasks = decoded
			}
		}
		next, err := fn(tasks)
		if err != nil {
			return "", err
		}
		saved = next
		return encodeTasks(next)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func decodeTasks(raw string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ports.ErrCorruptValue, ports.KeyTasks, err)
	}

	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func encodeTasks(tasks []*domain.Task) (string, error) {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return string(data), nil
}
