package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// PlaybackState is the loading/error indicator for one audio channel.
type PlaybackState struct {
	URL     string
	Loading bool
	Playing bool
	Err     error
}

// playback runs at most one AudioPlayer request at a time. Starting a new
// request cancels the previous one; a superseded request never updates the
// state.
type playback struct {
	mu     sync.Mutex
	player ports.AudioPlayer
	logger *slog.Logger
	name   string
	seq    uint64
	cancel context.CancelFunc
	state  PlaybackState
	wg     sync.WaitGroup
}

func newPlayback(name string, player ports.AudioPlayer, logger *slog.Logger) *playback {
	return &playback{name: name, player: player, logger: logger}
}

// start supersedes whatever is playing with url.
func (p *playback) start(url string, volume float64) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.seq++
	seq := p.seq
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.state = PlaybackState{URL: url, Loading: true}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		defer cancel()

		err := p.player.Play(ctx, ports.PlayRequest{
			URL:    url,
			Volume: volume,
			OnReady: func() {
				p.update(seq, func(st *PlaybackState) {
					st.Loading = false
					st.Playing = true
				})
			},
		})
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			err = nil
		}
		if err != nil {
			p.logger.Warn("audio playback failed", "channel", p.name, "url", url, "player", p.player.Name(), "error", err)
		}
		p.update(seq, func(st *PlaybackState) {
			st.Loading = false
			st.Playing = false
			st.Err = err
		})
	}()
}

// stop cancels the current request, if any.
func (p *playback) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.seq++
	p.state.Loading = false
	p.state.Playing = false
}

func (p *playback) update(seq uint64, fn func(*PlaybackState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return
	}
	fn(&p.state)
}

func (p *playback) snapshot() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// wait blocks until every started request has returned.
func (p *playback) wait() {
	p.wg.Wait()
}
