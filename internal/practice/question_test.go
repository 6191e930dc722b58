package practice

import (
	"strings"
	"testing"

	"github.com/abhisek/lingua/internal/cefr"
	"github.com/abhisek/lingua/internal/profile"
)

// describe exercises every variant of the sealed Question type.
func describe(q Question) string {
	switch v := q.(type) {
	case *MCQQuestion:
		return "choose from " + strings.Join(v.Options, "/")
	case *TypingQuestion:
		return "type " + v.Answer
	default:
		return "unknown"
	}
}

func TestQuestionVariants(t *testing.T) {
	qs := []Question{
		mcq(Index(0), "", "a", "b"),
		&TypingQuestion{Answer: "x"},
	}
	want := []string{"choose from a/b", "type x"}
	for i, q := range qs {
		if got := describe(q); got != want[i] {
			t.Errorf("describe(%T) = %q, want %q", q, got, want[i])
		}
	}
	if qs[0].Kind() != KindMCQ || qs[1].Kind() != KindTyping {
		t.Error("unexpected kinds")
	}
}

func TestMarshalQuestionTagsType(t *testing.T) {
	q := &MCQQuestion{
		Meta: Meta{
			ID:     "m1",
			Prompt: "She ___ a doctor.",
			Skill:  profile.SkillGrammar,
			Level:  cefr.A1,
		},
		Options:      []string{"is", "are", "am"},
		CorrectIndex: Index(0),
	}
	raw, err := MarshalQuestion(q)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"type":"mcq"`) {
		t.Errorf("missing type tag: %s", raw)
	}

	back, err := UnmarshalQuestion(raw)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := back.(*MCQQuestion)
	if !ok {
		t.Fatalf("decoded %T, want *MCQQuestion", back)
	}
	if got.Prompt != q.Prompt || got.Info().Skill != profile.SkillGrammar || AnswerIndex(got) != 0 {
		t.Errorf("decoded = %+v", got)
	}
}

func TestUnmarshalQuestionRejectsUnknownType(t *testing.T) {
	if _, err := UnmarshalQuestion([]byte(`{"type":"essay","prompt":"x"}`)); err == nil {
		t.Error("expected error for unknown type")
	}
	if _, err := UnmarshalQuestion([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestReadQuestions(t *testing.T) {
	in := `{"type":"mcq","id":"m1","prompt":"She ___ a doctor.","skill":"grammar","options":["is","are"],"correctIndex":0}

{"type":"typing","id":"t1","prompt":"Past tense of go?","skill":"grammar","answer":"went"}
`
	qs, err := ReadQuestions(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[0].Kind() != KindMCQ || qs[1].Kind() != KindTyping {
		t.Errorf("kinds = %s, %s", qs[0].Kind(), qs[1].Kind())
	}

	if qs, err := ReadQuestions(strings.NewReader("")); err != nil || len(qs) != 0 {
		t.Errorf("empty input = %v, %v", qs, err)
	}
	if _, err := ReadQuestions(strings.NewReader(`{"type":"mcq"} {"type":"essay"}`)); err == nil || !strings.Contains(err.Error(), "question 2") {
		t.Errorf("err = %v, want error naming question 2", err)
	}
}
