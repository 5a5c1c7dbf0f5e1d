package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
)

// liquidTimeRepository stores the counter as a decimal integer string.
type liquidTimeRepository struct {
	kv ports.KVStore
}

func newLiquidTimeRepository(kv ports.KVStore) ports.LiquidTimeRepository {
	return &liquidTimeRepository{kv: kv}
}

// Load returns the stored seconds.
func (r *liquidTimeRepository) Load(ctx context.Context) (domain.LiquidTime, error) {
	raw, ok, err := r.kv.Get(ctx, ports.KeyLiquidTime)
	if err != nil || !ok {
		return 0, err
	}
	return parseLiquidTime(raw)
}

// Save replaces the stored value.
func (r *liquidTimeRepository) Save(ctx context.Context, value domain.LiquidTime) error {
	if err := r.kv.Set(ctx, ports.KeyLiquidTime, strconv.FormatInt(int64(value), 10)); err != nil {
		return fmt.Errorf("failed to save liquid time: %w", err)
	}
	return nil
}

// Add increments the stored counter in one transaction. An unreadable
// value counts as zero.
func (r *liquidTimeRepository) Add(ctx context.Context, n int64) (domain.LiquidTime, error) {
	var total domain.LiquidTime
	err := r.kv.Update(ctx, ports.KeyLiquidTime, func(raw string, ok bool) (string, error) {
		var current domain.LiquidTime
		if ok {
			current, _ = parseLiquidTime(raw)
		}
		total = current.Add(n)
		return strconv.FormatInt(int64(total), 10), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save liquid time: %w", err)
	}
	return total, nil
}

func parseLiquidTime(raw string) (domain.LiquidTime, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s: %q", ports.ErrCorruptValue, ports.KeyLiquidTime, raw)
	}
	return domain.LiquidTime(n), nil
}
