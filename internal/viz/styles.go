package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/terrain"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(12)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var outcomeColors = map[terrain.Type]lipgloss.Color{
	terrain.Fairway:     "#00ff88",
	terrain.Green:       "#88ff44",
	terrain.Rough:       "#669944",
	terrain.Bunker:      "#ffcc66",
	terrain.Water:       "#3399ff",
	terrain.OutOfBounds: "#ff4444",
}

func OutcomeStyle(t terrain.Type) lipgloss.Style {
	c, ok := outcomeColors[t]
	if !ok {
		c = "#ffffff"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

var stateColors = map[session.State]lipgloss.Color{
	session.Loading:  "#666688",
	session.Ready:    "#00ff88",
	session.Swinging: "#ffcc00",
	session.Flight:   "#00ccff",
	session.Putting:  "#88ff44",
	session.Result:   "#ff00ff",
}

func StateBadge(s session.State) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#0a0a0a")).
		Background(stateColors[s]).
		Padding(0, 1).
		Render(strings.ToUpper(s.String()))
}

// ProgressBar renders fraction (0..1) of width cells.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction > 0.8:
		return SparkLow.Render(bar)
	case fraction > 0.4:
		return SparkMid.Render(bar)
	}
	return SparkHigh.Render(bar)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values scaled between their min and max.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(sparkChars)-1))
		b.WriteRune(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return b.String()
}

func Separator(width int) string {
	mid := width / 2
	return Subtle.Render(strings.Repeat("─", max(0, mid-3)) + " ◆ " + strings.Repeat("─", max(0, width-mid-3)))
}

func row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}
