package profile

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/abhisek/lingua/internal/cefr"
)

// ErrInvalidEmail is returned when a profile is created without an email.
var ErrInvalidEmail = errors.New("email is required")

// GuestName is the display name of the unauthenticated placeholder profile.
const GuestName = "Guest"

// UserProfile is the aggregate holding a learner's identity and progression.
type UserProfile struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Authenticated bool       `json:"isAuthenticated"`
	CEFRLevel     cefr.Level `json:"cefrLevel"`
	Mastery       MasteryMap `json:"masteryMap"`

	// XPTotal is lifetime experience. LevelXP counts towards the next
	// level-up test and is reset or halved by its outcome.
	XPTotal int `json:"xpTotal"`
	LevelXP int `json:"levelXp"`

	StreakDays    int         `json:"streakDays"`
	LastLoginDate *civil.Date `json:"lastLoginDate,omitempty"`

	// ActivityHistory is ordered most-recent-first.
	ActivityHistory []ActivityRecord `json:"activityHistory"`
	PlacementInfo   *PlacementInfo   `json:"placementInfo,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ActivityRecord is an immutable entry in a learner's history.
type ActivityRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	Title          string    `json:"title"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	XPEarned       int       `json:"xpEarned"`
	Skill          SkillTag  `json:"skill"`
}

// PlacementInfo records the outcome of the most recent placement test.
type PlacementInfo struct {
	Level       cefr.Level `json:"level"`
	TargetSkill SkillTag   `json:"targetSkill"`
	Score       int        `json:"score"`
	Confidence  string     `json:"confidence,omitempty"`
	EvaluatedAt time.Time  `json:"evaluatedAt"`
}

// NewActivity builds an ActivityRecord, keeping correct within [0, total]
// and defaulting an unknown skill to vocab.
func NewActivity(at time.Time, title string, total, correct, xp int, skill SkillTag) ActivityRecord {
	if total < 0 {
		total = 0
	}
	correct = max(0, min(correct, total))
	if !skill.Valid() {
		skill = SkillVocab
	}
	return ActivityRecord{
		Timestamp:      at,
		Title:          title,
		TotalQuestions: total,
		CorrectAnswers: correct,
		XPEarned:       xp,
		Skill:          skill,
	}
}

// NormalizeEmail trims and lowercases an email for use as a storage key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// New creates a fresh profile for email. The profile is not authenticated;
// the store marks it so on login.
func New(email, name string, now time.Time) (*UserProfile, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	p := blank()
	p.Email = email
	p.Name = name
	p.CreatedAt = now.UTC()
	return p, nil
}

// Guest returns the unauthenticated placeholder shown when nobody is logged in.
func Guest() *UserProfile {
	p := blank()
	p.Name = GuestName
	return p
}

// newID generates profile identifiers.
var newID = uuid.NewString

func blank() *UserProfile {
	return &UserProfile{
		ID:              newID(),
		CEFRLevel:       cefr.A1,
		Mastery:         DefaultMasteryMap(),
		ActivityHistory: []ActivityRecord{},
	}
}

// IsGuest reports whether p is an anonymous placeholder.
func (p *UserProfile) IsGuest() bool {
	return p.Email == ""
}

// Clone returns a deep copy of p.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Mastery = make(MasteryMap, len(p.Mastery))
	for k, v := range p.Mastery {
		c.Mastery[k] = v
	}
	c.ActivityHistory = make([]ActivityRecord, len(p.ActivityHistory))
	copy(c.ActivityHistory, p.ActivityHistory)
	if p.LastLoginDate != nil {
		d := *p.LastLoginDate
		c.LastLoginDate = &d
	}
	if p.PlacementInfo != nil {
		pi := *p.PlacementInfo
		c.PlacementInfo = &pi
	}
	return &c
}

// PrependActivity returns a copy of p with rec at the head of its history.
func (p *UserProfile) PrependActivity(rec ActivityRecord) *UserProfile {
	c := p.Clone()
	c.ActivityHistory = append([]ActivityRecord{rec}, c.ActivityHistory...)
	return c
}
