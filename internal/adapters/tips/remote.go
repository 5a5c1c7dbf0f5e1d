package tips

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// DefaultEndpoint is the Gemini REST API base URL.
const DefaultEndpoint = "https://generativelanguage.googleapis.com"

// maxTipLen bounds what is shown to the user.
const maxTipLen = 280

// Remote asks a Gemini-compatible generateContent endpoint for a tip and
// falls back to another provider on any error.
type Remote struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	fallback ports.TipProvider
	logger   *slog.Logger
}

// Ensure Remote implements ports.TipProvider.
var _ ports.TipProvider = (*Remote)(nil)

// RemoteConfig configures a Remote provider.
type RemoteConfig struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
	Fallback ports.TipProvider
	Logger   *slog.Logger
}

// NewRemote creates a remote provider.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Fallback == nil {
		cfg.Fallback = NewLocal()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Remote{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		fallback: cfg.Fallback,
		logger:   cfg.Logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Tip implements ports.TipProvider.
func (r *Remote) Tip(ctx context.Context, hint string) string {
	tip, err := r.fetch(ctx, hint)
	if err != nil {
		r.logger.Warn("remote tip failed, using local tip", "error", err)
		return r.fallback.Tip(ctx, hint)
	}
	return tip
}

func (r *Remote) fetch(ctx context.Context, hint string) (string, error) {
	if r.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: Prompt(hint)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		r.endpoint, url.PathEscape(r.model), url.QueryEscape(r.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			if tip := clean(p.Text); tip != "" {
				return tip, nil
			}
		}
	}
	return "", fmt.Errorf("empty response")
}

// Prompt builds the text-generation prompt.
func Prompt(hint string) string {
	p := "Give one short, motivating study tip for someone practicing exam questions in focused blocks. Answer in a single sentence."
	if hint = strings.TrimSpace(hint); hint != "" {
		p += " They are currently working on: " + hint + "."
	}
	return p
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"")
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxTipLen {
		s = string(r[:maxTipLen-1]) + "…"
	}
	return s
}
