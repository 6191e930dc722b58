package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

const (
	MinWidth     = 40
	DefaultWidth = 72
	MaxWidth     = 120
)

// ClampWidth keeps a requested render width within usable bounds. Zero or
// negative means DefaultWidth.
func ClampWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	return max(MinWidth, min(width, MaxWidth))
}

// RenderHeader renders the header bar: name on the left, title centered and
// the streak on the right.
func RenderHeader(name, title string, streak int, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(name)

	center := theme.Body.Render(title)

	right := theme.Streak.Render(fmt.Sprintf("★ %d day", streak))
	if streak != 1 {
		right += theme.Streak.Render("s")
	}

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := width - 4 // account for border padding
	if innerWidth < 0 {
		innerWidth = 0
	}

	leftGap := (innerWidth-centerLen)/2 - leftLen
	if leftGap < 1 {
		leftGap = 1
	}

	rightGap := innerWidth - leftLen - leftGap - centerLen - rightLen
	if rightGap < 1 {
		rightGap = 1
	}

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return theme.Card.Width(width).Render(content)
}

// RenderSection renders a titled block of lines.
func RenderSection(title string, lines []string) string {
	var b strings.Builder
	b.WriteString(theme.Section.Render(title))
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(l)
	}
	return b.String()
}
