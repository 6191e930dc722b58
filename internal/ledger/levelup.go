package ledger

import (
	"fmt"
	"time"

	"github.com/abhisek/lingua/internal/profile"
)

// TestStats is the score of a level-up test.
type TestStats struct {
	Total   int
	Correct int
}

// placeholderStats is recorded for a passed level-up test when the caller
// does not supply real numbers.
var placeholderStats = TestStats{Total: 100, Correct: 85}

// ApplyLevelUpPass applies the outcome of a level-up test.
//
// On a pass the learner moves to the next level of the stored progression
// (C1 is terminal), LevelXP resets to 0, LevelUpBonus is granted and a
// "Level Up" activity is recorded with stats, or with the 100/85 placeholder
// when stats is nil. On a fail LevelXP is halved and the level is unchanged.
func ApplyLevelUpPass(p *profile.UserProfile, passed bool, now time.Time, stats *TestStats) *profile.UserProfile {
	if !passed {
		out := p.Clone()
		out.LevelXP /= 2
		return out
	}

	recorded := placeholderStats
	if stats != nil {
		recorded = *stats
	}

	next := p.CEFRLevel.Next()
	out := GrantXP(p, LevelUpBonus, ActivityMeta{
		Title:          fmt.Sprintf("Level Up: %s", next),
		TotalQuestions: recorded.Total,
		CorrectAnswers: recorded.Correct,
		Skill:          profile.SkillVocab,
		At:             now,
	})
	out.CEFRLevel = next
	out.LevelXP = 0
	return out
}
