package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/lingua/internal/cefr"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/profile"
)

// Format restricts which question variants a generator asks for.
type Format string

const (
	FormatMixed  Format = "mixed"
	FormatMCQ    Format = "mcq"
	FormatTyping Format = "typing"
)

// ParseFormat accepts "mixed", "mcq" or "typing". Empty means mixed.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatMixed:
		return FormatMixed, true
	case FormatMCQ:
		return FormatMCQ, true
	case FormatTyping:
		return FormatTyping, true
	}
	return "", false
}

// GenerateInput holds all context needed to generate a batch of questions.
type GenerateInput struct {
	Level  cefr.Level
	Skill  profile.SkillTag
	Count  int
	Format Format

	// Topic optionally narrows the subject matter, e.g. "travel".
	Topic string

	// PriorQuestions contains prompts already shown to the learner, used
	// for deduplication in the prompt.
	PriorQuestions []string
}

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxCount caps how many questions one call may request.
	MaxCount int

	// MaxPriorQuestions is the maximum number of prior prompts
	// to include in the prompt for deduplication.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         2048,
		Temperature:       0.7,
		MaxCount:          10,
		MaxPriorQuestions: 10,
	}
}

// Generator produces leveled practice questions using an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates a Generator with the given provider and config.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// questionOutput is one raw question in the LLM response before validation.
type questionOutput struct {
	Type         string   `json:"type"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Answer       string   `json:"answer"`
	Accepted     []string `json:"accepted"`
	Explanation  string   `json:"explanation"`
}

type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Generate asks the provider for input.Count questions and returns the
// validated batch. Surplus questions are dropped.
func (g *Generator) Generate(ctx context.Context, input GenerateInput) ([]Question, error) {
	input = g.normalizeInput(input)
	ctx = llm.WithPurpose(ctx, "practice-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, &ValidationError{Validator: "structural", Message: "no questions returned", Retryable: true}
	}
	if len(raw.Questions) > input.Count {
		raw.Questions = raw.Questions[:input.Count]
	}

	out := make([]Question, 0, len(raw.Questions))
	for i, r := range raw.Questions {
		q, verr := convert(r, input)
		if verr != nil {
			verr.Message = fmt.Sprintf("question %d: %s", i+1, verr.Message)
			return nil, verr
		}
		out = append(out, q)
	}
	return out, nil
}

func (g *Generator) normalizeInput(in GenerateInput) GenerateInput {
	if !in.Level.Valid() {
		in.Level = cefr.A1
	}
	if !in.Skill.Valid() {
		in.Skill = profile.SkillVocab
	}
	if in.Format == "" {
		in.Format = FormatMixed
	}
	if in.Count < 1 {
		in.Count = 1
	}
	if g.config.MaxCount > 0 && in.Count > g.config.MaxCount {
		in.Count = g.config.MaxCount
	}
	return in
}

// convert validates one raw question and builds its typed form.
func convert(r questionOutput, input GenerateInput) (Question, *ValidationError) {
	if verr := validateStructure(r, input); verr != nil {
		return nil, verr
	}
	meta := Meta{
		ID:          uuid.NewString(),
		Prompt:      strings.TrimSpace(r.Prompt),
		Explanation: strings.TrimSpace(r.Explanation),
		Skill:       input.Skill,
		Level:       input.Level,
	}
	if Kind(r.Type) == KindTyping {
		return &TypingQuestion{Meta: meta, Answer: strings.TrimSpace(r.Answer), Accepted: r.Accepted}, nil
	}
	return &MCQQuestion{
		Meta:         meta,
		Options:      r.Options,
		CorrectIndex: Index(r.CorrectIndex),
		CorrectText:  r.Answer,
	}, nil
}
