// Package dashboard renders a learner's progression profile for the terminal.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/ledger"
	"github.com/abhisek/lingua/internal/profile"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// RecentActivities is how many history entries the dashboard lists.
const RecentActivities = 5

// Render draws the dashboard for p at the given terminal width.
func Render(p *profile.UserProfile, width int) string {
	width = layout.ClampWidth(width)
	level := p.CEFRLevel.Clamp()

	var b strings.Builder
	b.WriteString(layout.RenderHeader(p.Name, "Level "+string(level), p.StreakDays, width))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(level.Description()))
	b.WriteString("\n")

	b.WriteString(layout.RenderSection("Progress", progressLines(p, width)))
	b.WriteString("\n")
	b.WriteString(layout.RenderSection("Skills", masteryLines(p, width)))
	b.WriteString("\n")
	b.WriteString(layout.RenderSection("Recent activity", activityLines(p)))

	if p.PlacementInfo != nil {
		b.WriteString("\n")
		b.WriteString(layout.RenderSection("Placement", placementLines(p.PlacementInfo)))
	}
	b.WriteString("\n")
	return b.String()
}

func progressLines(p *profile.UserProfile, width int) []string {
	bar := components.ProgressBar{
		Label:      "Level XP",
		Percent:    ledger.LevelProgress(p),
		Suffix:     fmt.Sprintf("%d/%d XP", p.LevelXP, ledger.LevelUpThreshold),
		Width:      width,
		LabelWidth: 10,
	}
	lines := []string{
		bar.View(),
		theme.Body.Render(fmt.Sprintf("Total XP: %d   Streak: %s", p.XPTotal, days(p.StreakDays))),
	}
	if prompt := ledger.LevelUpPrompt(p); prompt != "" {
		lines = append(lines, theme.Correct.Render(prompt))
	}
	return lines
}

func masteryLines(p *profile.UserProfile, width int) []string {
	lines := make([]string, 0, len(profile.AllSkills()))
	for _, s := range profile.AllSkills() {
		bar := components.ProgressBar{
			Label:       s.DisplayName(),
			Percent:     p.Mastery.Get(s),
			ShowPercent: true,
			Width:       width,
			LabelWidth:  10,
		}
		lines = append(lines, bar.View())
	}
	return lines
}

func activityLines(p *profile.UserProfile) []string {
	if len(p.ActivityHistory) == 0 {
		return []string{theme.Hint.Render("No activity yet.")}
	}
	n := min(len(p.ActivityHistory), RecentActivities)
	lines := make([]string, 0, n)
	for _, a := range p.ActivityHistory[:n] {
		line := fmt.Sprintf("%s  %-24s", a.Timestamp.Local().Format("2006-01-02"), a.Title)
		if a.TotalQuestions > 0 {
			line += fmt.Sprintf("  %d/%d", a.CorrectAnswers, a.TotalQuestions)
		}
		line += fmt.Sprintf("  %+d XP", a.XPEarned)
		lines = append(lines, theme.Body.Render(line))
	}
	return lines
}

func placementLines(info *profile.PlacementInfo) []string {
	line := fmt.Sprintf("Placed at %s with a score of %d%%", info.Level, info.Score)
	if info.Confidence != "" {
		line += fmt.Sprintf(" (%s confidence)", info.Confidence)
	}
	lines := []string{theme.Body.Render(line)}
	lines = append(lines, theme.Hint.Render("Focus skill: "+info.TargetSkill.DisplayName()))
	if !info.EvaluatedAt.IsZero() {
		lines = append(lines, theme.Hint.Render("Evaluated "+info.EvaluatedAt.Local().Format("2006-01-02")))
	}
	return lines
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
