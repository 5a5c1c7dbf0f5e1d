package domain

import "fmt"

// LiquidTime is the number of seconds spent actively ticking in focus.
// It only grows, except when explicitly reset.
type LiquidTime int64

// Add returns the accumulator advanced by n seconds. Negative n is ignored.
func (l LiquidTime) Add(n int64) LiquidTime {
	if n <= 0 {
		return l
	}
	return l + LiquidTime(n)
}

// String formats the value as "Xh Ym" from one hour upward, else "Ym Zs".
func (l LiquidTime) String() string {
	return FormatLiquidTime(int64(l))
}

// FormatLiquidTime formats seconds the way the summary panel shows them.
func FormatLiquidTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	if hrs > 0 {
		return fmt.Sprintf("%dh %dm", hrs, mins)
	}
	return fmt.Sprintf("%dm %ds", mins, secs)
}

// FormatClock renders seconds as MM:SS. Minutes are not capped at 59.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
