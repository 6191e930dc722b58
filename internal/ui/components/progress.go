package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent float64
	// Suffix replaces the percentage when set, e.g. "120/300 XP".
	Suffix      string
	ShowPercent bool
	Width       int
	// LabelWidth pads labels so stacked bars line up.
	LabelWidth int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Filled returns the number of filled cells for a bar of barWidth cells.
func Filled(percent float64, barWidth int) int {
	filled := int(float64(barWidth) * percent)
	return max(0, min(filled, barWidth))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result += theme.Body.Render(label) + "  "
	}

	trailer := p.Suffix
	if trailer == "" && p.ShowPercent {
		trailer = fmt.Sprintf("%d%%", int(p.Percent*100))
	}
	trailerWidth := 0
	if trailer != "" {
		trailerWidth = lipgloss.Width(trailer) + 2
	}

	barWidth := p.Width - lipgloss.Width(result) - trailerWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := Filled(p.Percent, barWidth)
	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if trailer != "" {
		result += theme.Subtitle.Render("  " + trailer)
	}

	return result
}
