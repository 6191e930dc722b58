package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lingua/internal/profile"
)

var errNotLoggedIn = errors.New("not logged in: run `lingua login <email>` first")

// activeLearner returns the signed-in profile, or errNotLoggedIn for the guest.
func (e *env) activeLearner(ctx context.Context) (*profile.UserProfile, error) {
	p, err := e.profiles.LoadActiveUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !p.Authenticated || p.IsGuest() {
		return nil, errNotLoggedIn
	}
	return p, nil
}

func parseSkillFlag(s string) (profile.SkillTag, error) {
	tag, ok := profile.ParseSkill(s)
	if !ok {
		return "", fmt.Errorf("unknown skill %q (want one of vocab, grammar, reading, writing, listening, speaking)", s)
	}
	return tag, nil
}
