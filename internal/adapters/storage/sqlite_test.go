package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

func TestNewMemory(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}
}

func TestKVStore(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	kv := storage.KV()

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := kv.Get(ctx, "nope")
		if err != nil || ok {
			t.Errorf("Get() = %v, %v; want not found", ok, err)
		}
	})

	t.Run("set twice is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := kv.Set(ctx, "k", "v"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
		}
		v, ok, err := kv.Get(ctx, "k")
		if err != nil || !ok || v != "v" {
			t.Errorf("Get() = %q, %v, %v", v, ok, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := kv.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok, _ := kv.Get(ctx, "k"); ok {
			t.Error("key still present after Delete()")
		}
		if err := kv.Delete(ctx, "k"); err != nil {
			t.Errorf("Delete() of missing key error = %v", err)
		}
	})
}

func TestSettingsRepository(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Settings()

	t.Run("defaults when absent", func(t *testing.T) {
		s, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if s != domain.DefaultSettings() {
			t.Errorf("Load() = %+v, want defaults", s)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		want := domain.DefaultSettings()
		want.FocusTime = 1200
		want.AlarmEnabled = false
		want.AlarmSound = domain.AlarmSounds[2].URL
		want.BackgroundImage = "https://example.com/bg.jpg"
		if err := repo.Save(ctx, want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != want {
			t.Errorf("Load() = %+v, want %+v", got, want)
		}
	})

	t.Run("partial object keeps defaults", func(t *testing.T) {
		if err := storage.KV().Set(ctx, ports.KeySettings, `{"focusTime":600}`); err != nil {
			t.Fatal(err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.FocusTime != 600 || got.ShortBreakTime != 300 || !got.AlarmEnabled {
			t.Errorf("Load() = %+v", got)
		}
	})

	t.Run("corrupt falls back to defaults", func(t *testing.T) {
		if err := storage.KV().Set(ctx, ports.KeySettings, `{not json`); err != nil {
			t.Fatal(err)
		}
		got, err := repo.Load(ctx)
		if !errors.Is(err, ports.ErrCorruptValue) {
			t.Errorf("Load() error = %v, want ErrCorruptValue", err)
		}
		if got != domain.DefaultSettings() {
			t.Errorf("Load() = %+v, want defaults", got)
		}
	})
}

func TestTaskRepository(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	t.Run("empty when absent", func(t *testing.T) {
		tasks, err := repo.Load(ctx)
		if err != nil || len(tasks) != 0 {
			t.Errorf("Load() = %v, %v", tasks, err)
		}
	})

	t.Run("round trip keeps order", func(t *testing.T) {
		l := domain.NewLedger(nil)
		first, _ := l.Add("First", 3)
		_, _ = l.Add("Second", 5)
		_, _ = l.Adjust(first.ID, 2)

		want := l.Tasks()
		if err := repo.Save(ctx, want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("Load() returned %d tasks, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID || got[i].Title != want[i].Title ||
				got[i].CompletedQuestions != want[i].CompletedQuestions ||
				got[i].TotalQuestions != want[i].TotalQuestions ||
				got[i].Completed != want[i].Completed ||
				!got[i].CreatedAt.Equal(want[i].CreatedAt) {
				t.Errorf("task %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("corrupt falls back to empty", func(t *testing.T) {
		if err := storage.KV().Set(ctx, ports.KeyTasks, `[{"id":`); err != nil {
			t.Fatal(err)
		}
		tasks, err := repo.Load(ctx)
		if !errors.Is(err, ports.ErrCorruptValue) || len(tasks) != 0 {
			t.Errorf("Load() = %v, %v", tasks, err)
		}
	})
}

func TestLiquidTimeRepository(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.LiquidTime()

	if v, err := repo.Load(ctx); err != nil || v != 0 {
		t.Errorf("Load() = %d, %v; want 0", v, err)
	}

	if err := repo.Save(ctx, 5400); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	raw, _, _ := storage.KV().Get(ctx, ports.KeyLiquidTime)
	if raw != "5400" {
		t.Errorf("stored value = %q, want decimal string", raw)
	}
	if v, err := repo.Load(ctx); err != nil || v != 5400 {
		t.Errorf("Load() = %d, %v; want 5400", v, err)
	}

	for _, bad := range []string{"abc", "-3", "1.5"} {
		_ = storage.KV().Set(ctx, ports.KeyLiquidTime, bad)
		v, err := repo.Load(ctx)
		if v != 0 || !errors.Is(err, ports.ErrCorruptValue) {
			t.Errorf("Load(%q) = %d, %v", bad, v, err)
		}
	}
}

func TestNew_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "study.db")
	ctx := context.Background()

	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	task := &domain.Task{ID: "x", Title: "Persist", TotalQuestions: 2, CreatedAt: time.UnixMilli(1000)}
	if err := first.Tasks().Save(ctx, []*domain.Task{task}); err != nil {
		t.Fatal(err)
	}
	_ = first.Close()

	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer func() { _ = second.Close() }()
	tasks, err := second.Tasks().Load(ctx)
	if err != nil || len(tasks) != 1 || tasks[0].Title != "Persist" {
		t.Errorf("Load() after reopen = %v, %v", tasks, err)
	}
}

func TestKVStore_Update(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	kv := storage.KV()

	t.Run("missing key", func(t *testing.T) {
		err := kv.Update(ctx, "counter", func(v string, ok bool) (string, error) {
			if ok || v != "" {
				t.Errorf("fn got %q, %v; want missing", v, ok)
			}
			return "1", nil
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if v, _, _ := kv.Get(ctx, "counter"); v != "1" {
			t.Errorf("Get() = %q, want 1", v)
		}
	})

	t.Run("sees current value", func(t *testing.T) {
		err := kv.Update(ctx, "counter", func(v string, ok bool) (string, error) {
			if !ok || v != "1" {
				t.Errorf("fn got %q, %v; want 1", v, ok)
			}
			return v + "1", nil
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if v, _, _ := kv.Get(ctx, "counter"); v != "11" {
			t.Errorf("Get() = %q, want 11", v)
		}
	})

	t.Run("fn error aborts the write", func(t *testing.T) {
		stop := errors.New("stop")
		err := kv.Update(ctx, "counter", func(string, bool) (string, error) {
			return "ignored", stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("Update() error = %v, want %v", err, stop)
		}
		if v, _, _ := kv.Get(ctx, "counter"); v != "11" {
			t.Errorf("Get() = %q, want the value before the failed update", v)
		}
		// The connection must be usable again after the rollback.
		if err := kv.Set(ctx, "counter", "12"); err != nil {
			t.Errorf("Set() after rollback error = %v", err)
		}
	})
}

func TestRepositoryUpdates(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()
	ctx := context.Background()

	t.Run("liquid time add", func(t *testing.T) {
		_ = storage.KV().Set(ctx, ports.KeyLiquidTime, "garbage")
		v, err := storage.LiquidTime().Add(ctx, 3)
		if err != nil || v != 3 {
			t.Fatalf("Add() on corrupt value = %d, %v; want 3", v, err)
		}
		v, err = storage.LiquidTime().Add(ctx, 2)
		if err != nil || v != 5 {
			t.Errorf("Add() = %d, %v; want 5", v, err)
		}
	})

	t.Run("tasks update", func(t *testing.T) {
		seed := &domain.Task{ID: "a", Title: "Stored", TotalQuestions: 1, CreatedAt: time.UnixMilli(1000)}
		if err := storage.Tasks().Save(ctx, []*domain.Task{seed}); err != nil {
			t.Fatal(err)
		}
		got, err := storage.Tasks().Update(ctx, func(tasks []*domain.Task) ([]*domain.Task, error) {
			if len(tasks) != 1 || tasks[0].ID != "a" {
				t.Errorf("fn got %v, want the stored ledger", tasks)
			}
			return append([]*domain.Task{{ID: "b", Title: "New", TotalQuestions: 2}}, tasks...), nil
		})
		if err != nil || len(got) != 2 {
			t.Fatalf("Update() = %v, %v", got, err)
		}
		stored, _ := storage.Tasks().Load(ctx)
		if len(stored) != 2 || stored[0].ID != "b" {
			t.Errorf("Load() after Update() = %v", stored)
		}

		_, err = storage.Tasks().Update(ctx, func([]*domain.Task) ([]*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		})
		if !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("Update() error = %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("settings update", func(t *testing.T) {
		got, err := storage.Settings().Update(ctx, func(s domain.Settings) domain.Settings {
			s.DailyQuestionGoal = 80
			s.FocusTime = 0
			return s
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got.DailyQuestionGoal != 80 || got.FocusTime < domain.MinDurationSeconds {
			t.Errorf("Update() = %+v, want goal 80 and a clamped focus time", got)
		}
		stored, _ := storage.Settings().Load(ctx)
		if stored != got {
			t.Errorf("Load() = %+v, want %+v", stored, got)
		}
	})
}

// TestNew_ConcurrentWriters writes from two connection pools on the same
// file, the way the dashboard and a CLI command share the database.
func TestNew_ConcurrentWriters(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "study.db")
	ctx := context.Background()

	var stores []ports.Storage
	for range 2 {
		s, err := New(dbPath)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer func() { _ = s.Close() }()
		stores = append(stores, s)
	}

	const workers, writes = 4, 100
	var wg sync.WaitGroup
	errs := make(chan error, workers*writes*2)
	for w := range workers {
		store := stores[w%len(stores)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range writes {
				if _, err := store.LiquidTime().Add(ctx, 1); err != nil {
					errs <- err
				}
				task := &domain.Task{ID: fmt.Sprintf("%d-%d", w, i), Title: "t", TotalQuestions: 1}
				if err := store.Tasks().Save(ctx, []*domain.Task{task}); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	failed := 0
	var first error
	for err := range errs {
		if first == nil {
			first = err
		}
		failed++
	}
	if failed > 0 {
		t.Fatalf("%d writes failed; first: %v", failed, first)
	}

	v, err := stores[0].LiquidTime().Load(ctx)
	if err != nil || v != workers*writes {
		t.Errorf("liquid time = %d, %v; want %d", v, err, workers*writes)
	}
}
