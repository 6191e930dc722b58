package placement

import (
	"slices"
	"time"

	"github.com/abhisek/lingua/internal/cefr"
	"github.com/abhisek/lingua/internal/profile"
)

var recommendations = map[cefr.Level][]string{
	cefr.A1: {
		"Learn the 500 most common English words with daily flashcards.",
		"Practice the present simple and the verb \"to be\" in short sentences.",
		"Listen to slow, beginner-level audio and repeat each phrase aloud.",
		"Label objects around you in English to build everyday vocabulary.",
	},
	cefr.A2: {
		"Practice past simple and future forms in short written diaries.",
		"Read graded readers written for elementary learners.",
		"Use dictation exercises to connect spoken and written words.",
	},
	cefr.B1: {
		"Read short news articles and summarise them in your own words.",
		"Work on present perfect, conditionals and linking words.",
		"Hold short conversations on familiar topics with a tutor.",
		"Watch English videos with English subtitles.",
	},
	cefr.B2: {
		"Write argumentative paragraphs and get feedback on structure.",
		"Study phrasal verbs and collocations in context.",
		"Listen to podcasts at natural speed and note new expressions.",
	},
	cefr.C1: {
		"Read opinion pieces and academic texts to widen register.",
		"Refine nuance: idioms, hedging and formal versus informal tone.",
		"Give short presentations and record yourself to review fluency.",
	},
	cefr.C2: {
		"Read literature and specialised texts without simplification.",
		"Polish style in long-form writing, focusing on precision and rhythm.",
		"Debate complex topics to keep spontaneous production sharp.",
	},
}

// Recommendations returns study tips for the result's determined level.
func Recommendations(r *Result) []string {
	if r == nil {
		return nil
	}
	return RecommendationsFor(r.DeterminedLevel)
}

// RecommendationsFor returns study tips for level. Unknown levels get the
// A1 tips.
func RecommendationsFor(level cefr.Level) []string {
	tips, ok := recommendations[level]
	if !ok {
		tips = recommendations[cefr.A1]
	}
	return slices.Clone(tips)
}

// TargetSkill picks the skill with the lowest accuracy among answers that
// carry a skill tag. It returns fallback when no answer is tagged.
func TargetSkill(answers []GradedAnswer, fallback profile.SkillTag) profile.SkillTag {
	tally := make(map[profile.SkillTag]LevelTally)
	for _, a := range answers {
		if !a.Skill.Valid() {
			continue
		}
		t := tally[a.Skill]
		t.Total++
		if a.IsCorrect {
			t.Correct++
		}
		tally[a.Skill] = t
	}
	if len(tally) == 0 {
		return fallback
	}
	target := fallback
	worst := 2.0
	for _, s := range profile.AllSkills() {
		t, ok := tally[s]
		if !ok {
			continue
		}
		if acc := t.Accuracy(); acc < worst {
			worst = acc
			target = s
		}
	}
	return target
}

// Apply records a placement result on a copy of p. The stored level is
// clamped onto the progression, so a C2 result is stored as C1 while
// PlacementInfo keeps the determined level.
func Apply(p *profile.UserProfile, r *Result, target profile.SkillTag, now time.Time) *profile.UserProfile {
	out := p.Clone()
	out.CEFRLevel = r.DeterminedLevel.Clamp()
	if !target.Valid() {
		target = profile.SkillVocab
	}
	out.PlacementInfo = &profile.PlacementInfo{
		Level:       r.DeterminedLevel,
		TargetSkill: target,
		Score:       r.OverallScore,
		Confidence:  string(r.Confidence),
		EvaluatedAt: now,
	}
	return out
}
