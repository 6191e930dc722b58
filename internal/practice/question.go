// Package practice models practice questions, checks learner responses and
// generates leveled questions with an LLM.
package practice

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/lingua/internal/cefr"
	"github.com/abhisek/lingua/internal/profile"
)

// Kind names a question variant on the wire.
type Kind string

const (
	KindMCQ    Kind = "mcq"
	KindTyping Kind = "typing"
)

// Meta holds the fields shared by every question variant.
type Meta struct {
	ID          string           `json:"id"`
	Prompt      string           `json:"prompt"`
	Explanation string           `json:"explanation,omitempty"`
	Skill       profile.SkillTag `json:"skill"`
	Level       cefr.Level       `json:"cefrLevel"`
}

// Question is either *MCQQuestion or *TypingQuestion.
type Question interface {
	Kind() Kind
	Info() Meta

	isQuestion()
}

// MCQQuestion asks the learner to pick one of Options.
type MCQQuestion struct {
	Meta
	Options []string `json:"options"`

	// CorrectIndex is the 0-based index of the right option. It may be
	// absent or out of range; AnswerIndex then falls back to CorrectText.
	CorrectIndex *int   `json:"correctIndex,omitempty"`
	CorrectText  string `json:"correctText,omitempty"`
}

// TypingQuestion asks the learner to type an answer.
type TypingQuestion struct {
	Meta
	Answer string `json:"answer"`

	// Accepted lists alternative spellings that also count as correct.
	Accepted []string `json:"accepted,omitempty"`
}

func (*MCQQuestion) Kind() Kind      { return KindMCQ }
func (*TypingQuestion) Kind() Kind   { return KindTyping }
func (q *MCQQuestion) Info() Meta    { return q.Meta }
func (q *TypingQuestion) Info() Meta { return q.Meta }
func (*MCQQuestion) isQuestion()     {}
func (*TypingQuestion) isQuestion()  {}

// Index returns a pointer to i, for building MCQQuestion literals.
func Index(i int) *int { return &i }

// MarshalQuestion encodes q with a "type" discriminator.
func MarshalQuestion(q Question) ([]byte, error) {
	switch v := q.(type) {
	case *MCQQuestion:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*MCQQuestion
		}{KindMCQ, v})
	case *TypingQuestion:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*TypingQuestion
		}{KindTyping, v})
	default:
		return nil, fmt.Errorf("marshal question: unsupported type %T", q)
	}
}

// UnmarshalQuestion decodes a question written by MarshalQuestion.
func UnmarshalQuestion(raw []byte) (Question, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	switch head.Type {
	case KindMCQ:
		var q MCQQuestion
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, fmt.Errorf("decode mcq question: %w", err)
		}
		return &q, nil
	case KindTyping:
		var q TypingQuestion
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, fmt.Errorf("decode typing question: %w", err)
		}
		return &q, nil
	default:
		return nil, fmt.Errorf("decode question: unknown type %q", head.Type)
	}
}

// ReadQuestions decodes a stream of questions written one per line by
// MarshalQuestion, as printed by `lingua generate --json`.
func ReadQuestions(r io.Reader) ([]Question, error) {
	dec := json.NewDecoder(r)
	var out []Question
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read question %d: %w", len(out)+1, err)
		}
		q, err := UnmarshalQuestion(raw)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", len(out)+1, err)
		}
		out = append(out, q)
	}
}
