package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	learnerKey contextKey = "llm_learner"
)

// WithPurpose labels requests made with ctx, e.g. "practice-gen".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithLearner attributes requests made with ctx to a learner profile ID.
// The logging decorator records it as a hashed user_id.
func WithLearner(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, learnerKey, id)
}

// LearnerFrom returns the learner ID, or "" when none is attached.
func LearnerFrom(ctx context.Context) string {
	v, _ := ctx.Value(learnerKey).(string)
	return v
}
