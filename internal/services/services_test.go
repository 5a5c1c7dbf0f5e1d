package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/storage"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := storage.NewMemory()
	require.NoError(t, err, "failed to create test storage")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// manualTicks is a tick source driven by the test.
type manualTicks struct {
	ch chan time.Time
}

func newManualTicks() *manualTicks {
	return &manualTicks{ch: make(chan time.Time)}
}

func (m *manualTicks) source() (<-chan time.Time, func()) {
	return m.ch, func() {}
}

// fakePlayer records requests and blocks until cancelled or released.
type fakePlayer struct {
	mu       sync.Mutex
	requests []ports.PlayRequest
	fail     error
	block    bool
	started  chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{started: make(chan struct{}, 16)}
}

func (p *fakePlayer) Play(ctx context.Context, req ports.PlayRequest) error {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	fail, block := p.fail, p.block
	p.mu.Unlock()

	if req.OnReady != nil && fail == nil {
		req.OnReady()
	}
	p.started <- struct{}{}
	if fail != nil {
		return fail
	}
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (p *fakePlayer) Name() string { return "fake" }

func (p *fakePlayer) urls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.requests))
	for i, r := range p.requests {
		out[i] = r.URL
	}
	return out
}

func (p *fakePlayer) last() ports.PlayRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[len(p.requests)-1]
}

var errBoom = errors.New("boom")

func waitStarted(t *testing.T, p *fakePlayer) {
	t.Helper()
	select {
	case <-p.started:
	case <-time.After(2 * time.Second):
		t.Fatal("player was not started")
	}
}
