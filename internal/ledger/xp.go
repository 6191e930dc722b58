package ledger

import (
	"fmt"
	"time"

	"github.com/abhisek/lingua/internal/profile"
)

const (
	// LevelUpThreshold is the LevelXP at which a learner may take a level-up test.
	LevelUpThreshold = 300

	// DailyLoginBonus is granted once per calendar day on login.
	DailyLoginBonus = 10

	// LevelUpBonus is granted for passing a level-up test.
	LevelUpBonus = 50

	// XPPerCorrect is awarded for each correct answer in a practice quiz.
	XPPerCorrect = 10
)

// ActivityMeta describes the activity that earned XP. A record is added to
// the history only when Title is set.
type ActivityMeta struct {
	Title          string
	TotalQuestions int
	CorrectAnswers int
	Skill          profile.SkillTag
	At             time.Time
}

// GrantXP returns a copy of p with amount added to both XPTotal and LevelXP.
// amount is not validated; a negative value acts as a penalty.
func GrantXP(p *profile.UserProfile, amount int, meta ActivityMeta) *profile.UserProfile {
	out := p.Clone()
	out.XPTotal += amount
	out.LevelXP += amount
	if meta.Title == "" {
		return out
	}
	at := meta.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return out.PrependActivity(profile.NewActivity(at, meta.Title, meta.TotalQuestions, meta.CorrectAnswers, amount, meta.Skill))
}

// NeedsLevelUp reports whether p has enough LevelXP to take a level-up test.
func NeedsLevelUp(p *profile.UserProfile) bool {
	return p.LevelXP >= LevelUpThreshold
}

// LevelUpPrompt describes the level-up test p can take, or returns "" when
// LevelXP is below LevelUpThreshold. At the top of the progression there is
// no next level, so the prompt offers a mastery check instead.
func LevelUpPrompt(p *profile.UserProfile) string {
	if !NeedsLevelUp(p) {
		return ""
	}
	next := p.CEFRLevel.Next()
	if next == p.CEFRLevel {
		return fmt.Sprintf("You are at the top level (%s). A mastery test is available.", p.CEFRLevel)
	}
	return fmt.Sprintf("Level-up test to %s is available.", next)
}

// XPForQuiz returns the XP earned by a practice quiz with correct answers.
func XPForQuiz(correct int) int {
	if correct <= 0 {
		return 0
	}
	return correct * XPPerCorrect
}

// LevelProgress returns LevelXP as a fraction of LevelUpThreshold, capped at 1.
func LevelProgress(p *profile.UserProfile) float64 {
	if p.LevelXP <= 0 {
		return 0
	}
	f := float64(p.LevelXP) / LevelUpThreshold
	if f > 1 {
		return 1
	}
	return f
}
