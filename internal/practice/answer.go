package practice

import (
	"strconv"
	"strings"
	"unicode"
)

// AnswerIndex resolves the correct option of q. An in-range CorrectIndex
// wins; otherwise CorrectText is matched against the options; otherwise 0.
func AnswerIndex(q *MCQQuestion) int {
	if q == nil {
		return 0
	}
	if q.CorrectIndex != nil && *q.CorrectIndex >= 0 && *q.CorrectIndex < len(q.Options) {
		return *q.CorrectIndex
	}
	if want := normalize(q.CorrectText); want != "" {
		for i, opt := range q.Options {
			if normalize(opt) == want {
				return i
			}
		}
	}
	return 0
}

// CorrectAnswer returns the text a learner should have given for q.
func CorrectAnswer(q Question) string {
	switch v := q.(type) {
	case *MCQQuestion:
		if len(v.Options) == 0 {
			return v.CorrectText
		}
		return v.Options[AnswerIndex(v)]
	case *TypingQuestion:
		return v.Answer
	default:
		return ""
	}
}

// Check reports whether response answers q correctly.
//
// For multiple choice the response may be the option text or a 1-based
// option number. Option text is matched first, so options that are
// themselves numbers grade by text. Typed answers are compared after normalization against the
// answer and every accepted alternative.
func Check(q Question, response string) bool {
	resp := normalize(response)
	if resp == "" {
		return false
	}

	switch v := q.(type) {
	case *MCQQuestion:
		if len(v.Options) == 0 {
			return false
		}
		want := AnswerIndex(v)
		for i, opt := range v.Options {
			if resp == normalize(opt) {
				return i == want
			}
		}
		if n, err := strconv.Atoi(resp); err == nil && n >= 1 && n <= len(v.Options) {
			return n-1 == want
		}
		return false
	case *TypingQuestion:
		if resp == normalize(v.Answer) {
			return true
		}
		for _, alt := range v.Accepted {
			if resp == normalize(alt) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// normalize lowercases s, collapses runs of whitespace and drops
// surrounding punctuation so "  The  Cat. " matches "the cat".
func normalize(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) && r != '\''
	})
}

// Outcome summarizes a graded quiz.
type Outcome struct {
	Total   int
	Correct int
	Results []bool
}

// Grade checks each response against its question. Missing responses count
// as wrong; extra responses are ignored.
func Grade(qs []Question, responses []string) Outcome {
	out := Outcome{Total: len(qs), Results: make([]bool, len(qs))}
	for i, q := range qs {
		if i < len(responses) && Check(q, responses[i]) {
			out.Results[i] = true
			out.Correct++
		}
	}
	return out
}
