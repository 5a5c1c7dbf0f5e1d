package ports

import "context"

// PlayRequest describes one playback.
type PlayRequest struct {
	URL    string
	Volume float64
	// OnReady, when set, is called once the player has started producing
	// audio (buffering is over).
	OnReady func()
}

// AudioPlayer plays a sound or stream from a URL.
// This is a driven port (implemented by adapters).
type AudioPlayer interface {
	// Play blocks until playback ends, fails or ctx is cancelled.
	// Cancellation is not an error.
	Play(ctx context.Context, req PlayRequest) error

	// Name identifies the player for diagnostics.
	Name() string
}

// Notifier shows desktop notifications.
type Notifier interface {
	Notify(title, message string) error
}

// TipProvider returns a short study tip. It never fails: implementations
// fall back to a generic tip on any error.
type TipProvider interface {
	Tip(ctx context.Context, hint string) string
}
