package mastery

import (
	"math"

	"github.com/abhisek/lingua/internal/profile"
)

const (
	// Gain is added to a skill's scalar after a correct answer.
	Gain = 0.02

	// Penalty is subtracted after an incorrect answer.
	Penalty = 0.01
)

// Update returns a copy of p with skill's mastery nudged by one graded answer.
// The scalar starts from profile.DefaultMastery when absent and is clamped to [0,1].
// Persistence is the caller's job.
func Update(p *profile.UserProfile, skill profile.SkillTag, correct bool) *profile.UserProfile {
	out := p.Clone()
	out.Mastery = backfill(out.Mastery)
	out.Mastery[skill] = step(out.Mastery.Get(skill), correct)
	return out
}

// Apply folds Update over a sequence of graded answers for one skill.
func Apply(p *profile.UserProfile, skill profile.SkillTag, results []bool) *profile.UserProfile {
	out := p.Clone()
	out.Mastery = backfill(out.Mastery)
	v := out.Mastery.Get(skill)
	for _, ok := range results {
		v = step(v, ok)
	}
	out.Mastery[skill] = v
	return out
}

// backfill adds every missing skill to m at profile.DefaultMastery.
func backfill(m profile.MasteryMap) profile.MasteryMap {
	if m == nil {
		return profile.DefaultMasteryMap()
	}
	for _, s := range profile.AllSkills() {
		if _, ok := m[s]; !ok {
			m[s] = profile.DefaultMastery
		}
	}
	return m
}

func step(v float64, correct bool) float64 {
	if math.IsNaN(v) {
		v = profile.DefaultMastery
	}
	if correct {
		v += Gain
	} else {
		v -= Penalty
	}
	// Round away float drift so repeated +0.02 steps land on exact hundredths.
	v = math.Round(v*1e6) / 1e6
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Band is a coarse label for a mastery scalar.
type Band string

const (
	BandNovice     Band = "novice"
	BandDeveloping Band = "developing"
	BandProficient Band = "proficient"
	BandMastered   Band = "mastered"
)

// BandFor buckets a mastery scalar for display.
func BandFor(v float64) Band {
	switch {
	case v >= 0.85:
		return BandMastered
	case v >= 0.6:
		return BandProficient
	case v >= 0.35:
		return BandDeveloping
	default:
		return BandNovice
	}
}

// Label returns the display label for the band.
func (b Band) Label() string {
	switch b {
	case BandNovice:
		return "Novice"
	case BandDeveloping:
		return "Developing"
	case BandProficient:
		return "Proficient"
	case BandMastered:
		return "Mastered"
	default:
		return string(b)
	}
}

// Weakest returns the skill with the lowest scalar, breaking ties by
// display order.
func Weakest(m profile.MasteryMap) profile.SkillTag {
	weakest := profile.SkillVocab
	low := math.Inf(1)
	for _, s := range profile.AllSkills() {
		if v := m.Get(s); v < low {
			low = v
			weakest = s
		}
	}
	return weakest
}
