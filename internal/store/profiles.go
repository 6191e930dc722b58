package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/profile"
)

// Keys used by ProfileStore.
const (
	activeUserKey = "active_user"
	userKeyPrefix = "user:"
)

// UserKey returns the KV key of the profile for email.
func UserKey(email string) string {
	return userKeyPrefix + profile.NormalizeEmail(email)
}

// ProfileStore loads and saves learner profiles and tracks which one is
// active. Writes are last-write-wins; there is no locking.
type ProfileStore struct {
	kv  KV
	log *logger.Logger
}

// NewProfileStore returns a ProfileStore over kv. A nil log discards.
func NewProfileStore(kv KV, log *logger.Logger) *ProfileStore {
	if log == nil {
		log = logger.Nop()
	}
	return &ProfileStore{kv: kv, log: log.With("component", "profile_store")}
}

// Load returns the profile stored for email, or nil when none exists.
// Corrupt data is recovered, never reported as an error.
func (s *ProfileStore) Load(ctx context.Context, email string) (*profile.UserProfile, error) {
	email = profile.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	raw, err := s.kv.Get(ctx, UserKey(email))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return s.decode(raw, email), nil
}

func (s *ProfileStore) decode(raw []byte, email string) *profile.UserProfile {
	p, issues := profile.SanitizeReport(raw)
	if len(issues) > 0 {
		s.log.Warn("recovered stored profile", "email", email, "issues", strings.Join(issues, "; "))
	}
	if p.Email == "" {
		p.Email = email
		if p.Name == profile.GuestName {
			p.Name, _, _ = strings.Cut(email, "@")
		}
	}
	return p
}

// Save writes p under its email. When p is authenticated it also becomes
// the active user.
func (s *ProfileStore) Save(ctx context.Context, p *profile.UserProfile) error {
	if p == nil {
		return fmt.Errorf("save profile: nil profile")
	}
	email := profile.NormalizeEmail(p.Email)
	if email == "" {
		return fmt.Errorf("save profile: %w", profile.ErrInvalidEmail)
	}
	raw, err := profile.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, UserKey(email), raw); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if p.Authenticated {
		return s.SetActive(ctx, email)
	}
	return nil
}

// LoadActiveUser returns the profile named by the active pointer. A missing,
// dangling or unreadable pointer yields the guest placeholder.
func (s *ProfileStore) LoadActiveUser(ctx context.Context) (*profile.UserProfile, error) {
	raw, err := s.kv.Get(ctx, activeUserKey)
	if errors.Is(err, ErrNotFound) {
		return profile.Guest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load active user: %w", err)
	}
	email := profile.NormalizeEmail(string(raw))
	p, err := s.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		s.log.Warn("active user pointer is dangling", "email", email)
		return profile.Guest(), nil
	}
	return p, nil
}

// SetActive points the active user at email.
func (s *ProfileStore) SetActive(ctx context.Context, email string) error {
	email = profile.NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("set active user: %w", profile.ErrInvalidEmail)
	}
	if err := s.kv.Set(ctx, activeUserKey, []byte(email)); err != nil {
		return fmt.Errorf("set active user: %w", err)
	}
	s.log.Debug("active user set", "email", email)
	return nil
}

// ClearActive removes the active user pointer.
func (s *ProfileStore) ClearActive(ctx context.Context) error {
	if err := s.kv.Delete(ctx, activeUserKey); err != nil {
		return fmt.Errorf("clear active user: %w", err)
	}
	s.log.Debug("active user cleared")
	return nil
}

// Login loads the profile for email or creates it, marks it authenticated
// and saves it as the active user. A non-empty name replaces the stored one.
func (s *ProfileStore) Login(ctx context.Context, email, name string, now time.Time) (*profile.UserProfile, error) {
	p, err := s.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		if p, err = profile.New(email, name, now); err != nil {
			return nil, err
		}
		s.log.Info("created profile", "user_id", p.ID)
	} else if name = strings.TrimSpace(name); name != "" {
		p.Name = name
	}
	p.Authenticated = true
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Logout marks the active user unauthenticated and clears the pointer.
// The profile data is kept. Logging out with no active user is a no-op.
func (s *ProfileStore) Logout(ctx context.Context) error {
	p, err := s.LoadActiveUser(ctx)
	if err != nil {
		return err
	}
	if !p.IsGuest() {
		p.Authenticated = false
		if err := s.Save(ctx, p); err != nil {
			return err
		}
	}
	return s.ClearActive(ctx)
}
