// Package audio plays alarm sounds and radio streams through an external
// command-line player.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// ErrNoPlayer is returned when no supported player is installed.
var ErrNoPlayer = errors.New("no audio player found (install mpv or ffmpeg)")

// candidates lists supported players in order of preference.
var candidates = []string{"mpv", "ffplay", "paplay"}

// CommandPlayer runs one external process per playback.
type CommandPlayer struct {
	name     string
	path     string
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// Ensure CommandPlayer implements ports.AudioPlayer.
var _ ports.AudioPlayer = (*CommandPlayer)(nil)

// New returns a player for the configured command. "auto" picks the first
// installed candidate; "none" or an empty string returns a silent player.
func New(player string) (ports.AudioPlayer, error) {
	switch player {
	case "", "none", "off":
		return Silent{}, nil
	case "auto":
		for _, name := range candidates {
			if path, err := exec.LookPath(name); err == nil {
				return newCommandPlayer(name, path), nil
			}
		}
		return Silent{}, ErrNoPlayer
	}

	path, err := exec.LookPath(player)
	if err != nil {
		return Silent{}, fmt.Errorf("audio player %q not found: %w", player, err)
	}
	return newCommandPlayer(player, path), nil
}

func newCommandPlayer(name, path string) *CommandPlayer {
	return &CommandPlayer{
		name:     name,
		path:     path,
		command:  exec.CommandContext,
	}
}

// Name returns the command name.
func (p *CommandPlayer) Name() string {
	return p.name
}

// Play starts the player and waits for it to exit. Cancelling ctx kills the
// process and returns nil.
func (p *CommandPlayer) Play(ctx context.Context, req ports.PlayRequest) error {
	cmd := p.command(ctx, p.path, Args(p.name, req.URL, req.Volume)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.name, err)
	}
	if req.OnReady != nil {
		req.OnReady()
	}

	err := cmd.Wait()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s exited: %w", p.name, err)
	}
	return nil
}

// Args builds the command line for a player. Volume is in [0, 1].
func Args(player, url string, volume float64) []string {
	pct := strconv.Itoa(int(volume*100 + 0.5))
	switch player {
	case "mpv":
		return []string{"--no-video", "--really-quiet", "--volume=" + pct, url}
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", pct, url}
	case "paplay":
		// paplay volume is linear 0..65536 and only reads local files.
		return []string{"--volume=" + strconv.Itoa(int(volume*65536)), url}
	default:
		return []string{url}
	}
}

// Silent discards every request. It still reports readiness so loading
// indicators clear.
type Silent struct{}

// Name implements ports.AudioPlayer.
func (Silent) Name() string { return "none" }

// Play implements ports.AudioPlayer.
func (Silent) Play(ctx context.Context, req ports.PlayRequest) error {
	if req.OnReady != nil {
		req.OnReady()
	}
	return nil
}
