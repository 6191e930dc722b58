package practice

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an English teacher writing practice questions for adult learners.

Rules:
- Write questions that match the given CEFR level and skill exactly. Vocabulary and grammar must not exceed the level.
- Each question must be self-contained and have exactly one correct answer.
- For "mcq" questions give exactly 4 options. Distractors should reflect common learner mistakes.
- For "typing" questions the answer should be a single word or a short phrase. List accepted alternatives (contractions, British/American spellings) in "accepted".
- Explanations are one or two sentences written at the learner's level.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CEFR level: %s (%s)\n", input.Level, input.Level.Description())
	fmt.Fprintf(&b, "Skill: %s\n", input.Skill.DisplayName())
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)
	fmt.Fprintf(&b, "Question type: %s\n", formatInstruction(input.Format))
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}

	b.WriteString("\nAlready asked:\n")
	b.WriteString(numbered(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}

func formatInstruction(f Format) string {
	switch f {
	case FormatMCQ:
		return "mcq only"
	case FormatTyping:
		return "typing only"
	default:
		return "a mix of mcq and typing"
	}
}

// numbered formats the most recent max items as a numbered list, or "None".
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, q := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
