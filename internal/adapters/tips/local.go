// Package tips provides study tip sources: a fixed local table and a remote
// text-generation endpoint that falls back to the table.
package tips

import (
	"context"
	"math/rand/v2"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// Local picks a random tip from a fixed table.
type Local struct {
	tips []string
	intn func(n int) int
}

// Ensure Local implements ports.TipProvider.
var _ ports.TipProvider = (*Local)(nil)

// NewLocal returns a provider over the built-in tips.
func NewLocal() *Local {
	return &Local{tips: domain.Tips, intn: rand.IntN}
}

// Tip returns a random tip. The hint is ignored.
func (l *Local) Tip(ctx context.Context, _ string) string {
	if len(l.tips) == 0 {
		return domain.DefaultTip
	}
	return l.tips[l.intn(len(l.tips))]
}
