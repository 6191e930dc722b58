package placement

import (
	"errors"

	"github.com/abhisek/lingua/internal/cefr"
	"github.com/abhisek/lingua/internal/profile"
)

// ErrInvalidInput is returned when there are no usable answers to evaluate.
var ErrInvalidInput = errors.New("placement: no graded answers")

// GradedAnswer is one scored placement question.
type GradedAnswer struct {
	QuestionID string     `json:"questionId"`
	IsCorrect  bool       `json:"isCorrect"`
	Level      cefr.Level `json:"cefrLevel"`

	// Difficulty is a 1-10 ordinal. It is informational and does not
	// affect the result.
	Difficulty int `json:"difficulty,omitempty"`

	// Skill optionally tags the skill the question exercised.
	Skill profile.SkillTag `json:"skill,omitempty"`
}

// Confidence qualifies how strongly the answers support the determined level.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// LevelTally counts answers at one level.
type LevelTally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns Correct/Total, or 0 when there are no answers.
func (t LevelTally) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}

// Result is the outcome of a placement evaluation.
type Result struct {
	DeterminedLevel     cefr.Level                `json:"determinedLevel"`
	OverallScore        int                       `json:"overallScore"`
	Breakdown           map[cefr.Level]LevelTally `json:"breakdown"`
	HighestCorrectLevel cefr.Level                `json:"highestCorrectLevel"`
	Confidence          Confidence                `json:"confidence"`
	Reasoning           string                    `json:"reasoning"`
}

// Counted returns the correct and total answers that took part in the
// evaluation, summed over the breakdown.
func (r *Result) Counted() (correct, total int) {
	for _, t := range r.Breakdown {
		correct += t.Correct
		total += t.Total
	}
	return correct, total
}
