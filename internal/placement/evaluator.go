package placement

import (
	"fmt"
	"math"
	"slices"

	"github.com/abhisek/lingua/internal/cefr"
)

const (
	// MasteryThreshold is the accuracy a level needs in the primary scan.
	MasteryThreshold = 0.70

	highConfidence = 0.80
	lowConfidence  = 0.60
)

// fallbackThresholds are the per-level bars used when no level reaches
// MasteryThreshold. They are checked independently from A1 upwards and the
// last level to pass wins, even if a level in between failed.
var fallbackThresholds = map[cefr.Level]float64{
	cefr.A1: 0.50,
	cefr.A2: 0.50,
	cefr.B1: 0.60,
	cefr.B2: 0.60,
	cefr.C1: 0.70,
	cefr.C2: 0.70,
}

// Evaluate turns a batch of graded answers into a placement result.
// Level tags are matched case-insensitively. Answers tagged with an
// unrecognized level are ignored; if none remain ErrInvalidInput is returned.
func Evaluate(answers []GradedAnswer) (*Result, error) {
	breakdown, totalCorrect, total := tabulate(answers)
	if total == 0 {
		return nil, ErrInvalidInput
	}

	determined := scanMastery(breakdown)
	highest := highestCorrect(breakdown)

	// A1 is both the default and a possible mastery result; in either case
	// the lenient per-level bars get a chance to lift it.
	if determined == cefr.A1 {
		determined = fallback(breakdown)
	}

	acc := breakdown[determined].Accuracy()
	return &Result{
		DeterminedLevel:     determined,
		OverallScore:        int(math.Round(100 * float64(totalCorrect) / float64(total))),
		Breakdown:           breakdown,
		HighestCorrectLevel: highest,
		Confidence:          confidenceFor(acc),
		Reasoning:           reasoning(determined, acc, highest),
	}, nil
}

func tabulate(answers []GradedAnswer) (map[cefr.Level]LevelTally, int, int) {
	breakdown := make(map[cefr.Level]LevelTally, len(cefr.AllLevels()))
	for _, l := range cefr.AllLevels() {
		breakdown[l] = LevelTally{}
	}
	var correct, total int
	for _, a := range answers {
		level, ok := cefr.Parse(string(a.Level))
		if !ok {
			continue
		}
		t := breakdown[level]
		t.Total++
		total++
		if a.IsCorrect {
			t.Correct++
			correct++
		}
		breakdown[level] = t
	}
	return breakdown, correct, total
}

// scanMastery walks from C2 down and returns the first level with answers
// at or above MasteryThreshold, or A1 when there is none.
func scanMastery(breakdown map[cefr.Level]LevelTally) cefr.Level {
	levels := slices.Clone(cefr.AllLevels())
	slices.Reverse(levels)
	for _, l := range levels {
		t := breakdown[l]
		if t.Total > 0 && t.Accuracy() >= MasteryThreshold {
			return l
		}
	}
	return cefr.A1
}

func highestCorrect(breakdown map[cefr.Level]LevelTally) cefr.Level {
	highest := cefr.A1
	for _, l := range cefr.AllLevels() {
		if breakdown[l].Correct > 0 {
			highest = l
		}
	}
	return highest
}

func fallback(breakdown map[cefr.Level]LevelTally) cefr.Level {
	determined := cefr.A1
	for _, l := range cefr.AllLevels() {
		t := breakdown[l]
		if t.Total > 0 && t.Accuracy() >= fallbackThresholds[l] {
			determined = l
		}
	}
	return determined
}

func confidenceFor(acc float64) Confidence {
	switch {
	case acc >= highConfidence:
		return ConfidenceHigh
	case acc < lowConfidence:
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}

func reasoning(level cefr.Level, acc float64, highest cefr.Level) string {
	return fmt.Sprintf(
		"Based on your answers, your English level is %s with %d%% accuracy at that level. %s The most advanced level where you answered correctly was %s.",
		level, int(math.Round(acc*100)), LevelDescription(level), highest,
	)
}

// LevelDescription returns a one-sentence description of level.
func LevelDescription(level cefr.Level) string {
	return level.Description()
}
