package practice

import (
	"fmt"
	"strings"
)

// ValidationError describes why a generated question was rejected.
type ValidationError struct {
	Validator string // Name of the check that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxPromptLen      = 500
	maxExplanationLen = 1000
	minOptions        = 2
	maxOptions        = 6
)

// validateStructure checks that required fields are present, within
// length limits, and consistent with the requested format.
func validateStructure(r questionOutput, input GenerateInput) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: "structural", Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	kind := Kind(r.Type)
	if kind != KindMCQ && kind != KindTyping {
		return fail("type must be \"mcq\" or \"typing\", got %q", r.Type)
	}
	if input.Format != FormatMixed && string(input.Format) != r.Type {
		return fail("type %q does not match requested format %q", r.Type, input.Format)
	}

	prompt := strings.TrimSpace(r.Prompt)
	if prompt == "" {
		return fail("prompt is empty")
	}
	if len(prompt) > maxPromptLen {
		return fail("prompt exceeds %d characters", maxPromptLen)
	}
	if len(r.Explanation) > maxExplanationLen {
		return fail("explanation exceeds %d characters", maxExplanationLen)
	}

	if kind == KindTyping {
		if strings.TrimSpace(r.Answer) == "" {
			return fail("typing answer is empty")
		}
		return nil
	}

	if len(r.Options) < minOptions || len(r.Options) > maxOptions {
		return fail("mcq needs %d-%d options, got %d", minOptions, maxOptions, len(r.Options))
	}
	seen := make(map[string]bool, len(r.Options))
	for _, opt := range r.Options {
		n := normalize(opt)
		if n == "" {
			return fail("mcq option is empty")
		}
		if seen[n] {
			return fail("duplicate option %q", opt)
		}
		seen[n] = true
	}
	return nil
}
