package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyphHeight = 3

// digitMap maps each digit and the colon to a 3-row half-block glyph.
var digitMap = map[rune][glyphHeight]string{
	'0': {"█▀█", "█ █", "█▄█"},
	'1': {"▀█ ", " █ ", "▄█▄"},
	'2': {"▀▀█", "█▀▀", "█▄▄"},
	'3': {"▀▀█", " ▀█", "▄▄█"},
	'4': {"█ █", "▀▀█", "  █"},
	'5': {"█▀▀", "▀▀█", "▄▄█"},
	'6': {"█▀▀", "█▀█", "█▄█"},
	'7': {"▀▀█", "  █", "  █"},
	'8': {"█▀█", "█▀█", "█▄█"},
	'9': {"█▀█", "▀▀█", "▄▄█"},
	':': {"▄", " ", "▀"},
}

// bigClockMinWidth is the narrowest terminal that gets the big clock.
const bigClockMinWidth = 30

// renderBigTime renders an MM:SS string with the half-block font. Narrow
// terminals and characters without a glyph fall back to a single bold line.
func renderBigTime(timeStr string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < bigClockMinWidth {
		return style.Render(timeStr)
	}

	var rows [glyphHeight][]string
	for _, ch := range timeStr {
		glyph, ok := digitMap[ch]
		if !ok {
			return style.Render(timeStr)
		}
		for i := range rows {
			rows[i] = append(rows[i], glyph[i])
		}
	}

	lines := make([]string, glyphHeight)
	for i, parts := range rows {
		lines[i] = style.Render(strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}
