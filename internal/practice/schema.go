package practice

import "github.com/abhisek/lingua/internal/llm"

// QuestionsSchema defines the JSON schema for LLM practice question responses.
var QuestionsSchema = &llm.Schema{
	Name:        "practice-questions",
	Description: "A batch of English practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"mcq", "typing"},
							"description": "mcq: the learner picks an option. typing: the learner types the answer.",
						},
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for mcq. Empty array for typing.",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "0-based index of the correct option for mcq. -1 for typing.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "For mcq: the text of the correct option. For typing: the expected answer.",
						},
						"accepted": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Other answers that are also correct for typing. Empty array for mcq.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A short explanation of why the answer is correct",
						},
					},
					"required":             []any{"type", "prompt", "options", "correct_index", "answer", "accepted", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
