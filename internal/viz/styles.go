package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func titleStyle() lipgloss.Style { return fg(CurrentTheme.Title).Bold(true) }
func labelStyle() lipgloss.Style { return fg(CurrentTheme.Muted).Width(14) }
func valueStyle() lipgloss.Style { return fg(CurrentTheme.Text) }
func hintStyle() lipgloss.Style  { return fg(CurrentTheme.Muted).Italic(true) }

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#444466")).
	Padding(0, 1)

// Flag renders an on/off indicator in the given color when on.
func Flag(on bool, label string, c lipgloss.Color) string {
	if on {
		return fg(c).Bold(true).Render("● " + label)
	}
	return fg(CurrentTheme.Muted).Render("○ " + label)
}

func ProgressBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if frac >= 1 {
		return fg(CurrentTheme.Liquid).Render(bar)
	}
	return fg(CurrentTheme.Warn).Render(bar)
}

// SparklineChart renders the most recent width values. Bars are scaled over
// the visible window and colored by sign.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := bounds(values)

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / (hi - lo) * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		style := fg(CurrentTheme.Liquid)
		if v < 0 {
			style = fg(CurrentTheme.Alert)
		}
		b.WriteString(style.Render(string(chars[idx])))
	}
	return b.String()
}

func Separator(width int) string {
	return fg(CurrentTheme.Muted).Render(strings.Repeat("─", width))
}
