package ledger

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/cefr"
	"github.com/abhisek/lingua/internal/profile"
)

var epoch = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newProfile(t *testing.T) *profile.UserProfile {
	t.Helper()
	p, err := profile.New("ledger@example.com", "Ledger", epoch)
	require.NoError(t, err)
	return p
}

func TestGrantXP(t *testing.T) {
	p := newProfile(t)
	p.XPTotal, p.LevelXP = 100, 40

	got := GrantXP(p, 25, ActivityMeta{})
	assert.Equal(t, 125, got.XPTotal)
	assert.Equal(t, 65, got.LevelXP)
	assert.Empty(t, got.ActivityHistory, "no title, no record")
	assert.Equal(t, 100, p.XPTotal, "input untouched")
}

func TestGrantXPPrependsActivity(t *testing.T) {
	p := newProfile(t)
	p = GrantXP(p, 30, ActivityMeta{Title: "Grammar Quiz", TotalQuestions: 5, CorrectAnswers: 3, Skill: profile.SkillGrammar, At: epoch})
	p = GrantXP(p, 50, ActivityMeta{Title: "Reading", TotalQuestions: 5, CorrectAnswers: 5, Skill: profile.SkillReading, At: epoch.Add(time.Hour)})

	require.Len(t, p.ActivityHistory, 2)
	assert.Equal(t, "Reading", p.ActivityHistory[0].Title)
	assert.Equal(t, 50, p.ActivityHistory[0].XPEarned)
	assert.Equal(t, profile.SkillReading, p.ActivityHistory[0].Skill)
	assert.Equal(t, "Grammar Quiz", p.ActivityHistory[1].Title)
}

func TestGrantXPNegative(t *testing.T) {
	p := newProfile(t)
	got := GrantXP(p, -20, ActivityMeta{})
	assert.Equal(t, -20, got.XPTotal)
	assert.Equal(t, -20, got.LevelXP)
}

func TestNeedsLevelUp(t *testing.T) {
	p := newProfile(t)
	p.LevelXP = LevelUpThreshold - 1
	assert.False(t, NeedsLevelUp(p))
	p.LevelXP = LevelUpThreshold
	assert.True(t, NeedsLevelUp(p))
}

// Scenario D: a single grant of 300 XP crosses the threshold.
func TestGrantThresholdTriggersLevelUp(t *testing.T) {
	p := newProfile(t)
	got := GrantXP(p, 300, ActivityMeta{Title: "Marathon", Skill: profile.SkillVocab, At: epoch})
	assert.True(t, NeedsLevelUp(got))
}

func TestLevelProgress(t *testing.T) {
	p := newProfile(t)
	assert.Equal(t, 0.0, LevelProgress(p))
	p.LevelXP = 150
	assert.InDelta(t, 0.5, LevelProgress(p), 1e-9)
	p.LevelXP = 900
	assert.Equal(t, 1.0, LevelProgress(p))
}

func TestXPForQuiz(t *testing.T) {
	assert.Equal(t, 0, XPForQuiz(0))
	assert.Equal(t, 0, XPForQuiz(-3))
	assert.Equal(t, 70, XPForQuiz(7))
}

func day(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestDailyLoginFirstEver(t *testing.T) {
	p := newProfile(t)
	got, granted := ApplyDailyLoginBonusReport(p, day(2026, 4, 1))
	require.True(t, granted)
	assert.Equal(t, 1, got.StreakDays)
	assert.Equal(t, DailyLoginBonus, got.XPTotal)
	assert.Equal(t, DailyLoginBonus, got.LevelXP)
	require.NotNil(t, got.LastLoginDate)
	assert.Equal(t, day(2026, 4, 1), *got.LastLoginDate)
	require.Len(t, got.ActivityHistory, 1)
	assert.Equal(t, DailyLoginTitle, got.ActivityHistory[0].Title)
}

func TestDailyLoginIdempotentSameDay(t *testing.T) {
	p := newProfile(t)
	today := day(2026, 4, 2)
	once := ApplyDailyLoginBonus(p, today)
	twice, granted := ApplyDailyLoginBonusReport(once, today)

	assert.False(t, granted)
	assert.Equal(t, once, twice)
}

func TestDailyLoginConsecutiveDays(t *testing.T) {
	p := newProfile(t)
	start := day(2026, 2, 25)
	for n := 1; n <= 10; n++ {
		p = ApplyDailyLoginBonus(p, start.AddDays(n-1))
		assert.Equal(t, n, p.StreakDays, "after day %d", n)
	}
	assert.Equal(t, 10*DailyLoginBonus, p.XPTotal)
}

func TestDailyLoginGapResets(t *testing.T) {
	p := newProfile(t)
	start := day(2026, 3, 1)
	for i := 0; i < 4; i++ {
		p = ApplyDailyLoginBonus(p, start.AddDays(i))
	}
	require.Equal(t, 4, p.StreakDays)

	// Skip one full day.
	p = ApplyDailyLoginBonus(p, start.AddDays(5))
	assert.Equal(t, 1, p.StreakDays)

	p = ApplyDailyLoginBonus(p, start.AddDays(6))
	assert.Equal(t, 2, p.StreakDays)
}

func TestDailyLoginAcrossMonthBoundary(t *testing.T) {
	p := newProfile(t)
	p = ApplyDailyLoginBonus(p, day(2026, 2, 28))
	p = ApplyDailyLoginBonus(p, day(2026, 3, 1))
	assert.Equal(t, 2, p.StreakDays)
}

func TestDailyLoginClockGoingBackwards(t *testing.T) {
	p := newProfile(t)
	p = ApplyDailyLoginBonus(p, day(2026, 3, 10))
	p = ApplyDailyLoginBonus(p, day(2026, 3, 11))
	p = ApplyDailyLoginBonus(p, day(2026, 3, 9))
	assert.Equal(t, 1, p.StreakDays)
}

func TestToday(t *testing.T) {
	now := time.Date(2026, 4, 1, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, day(2026, 4, 1), Today(now, time.UTC))
	assert.Equal(t, day(2026, 4, 2), Today(now, tokyo))
}

func TestLevelUpPassAdvances(t *testing.T) {
	p := newProfile(t)
	p.CEFRLevel = cefr.A2
	p.LevelXP = 320
	p.XPTotal = 1000

	got := ApplyLevelUpPass(p, true, epoch, &TestStats{Total: 20, Correct: 17})
	assert.Equal(t, cefr.B1, got.CEFRLevel)
	assert.Equal(t, 0, got.LevelXP)
	assert.Equal(t, 1050, got.XPTotal)
	require.Len(t, got.ActivityHistory, 1)
	assert.Equal(t, "Level Up: B1", got.ActivityHistory[0].Title)
	assert.Equal(t, 20, got.ActivityHistory[0].TotalQuestions)
	assert.Equal(t, 17, got.ActivityHistory[0].CorrectAnswers)
	assert.Equal(t, LevelUpBonus, got.ActivityHistory[0].XPEarned)
}

// Scenario C: C1 is terminal.
func TestLevelUpPassAtC1IsTerminal(t *testing.T) {
	p := newProfile(t)
	p.CEFRLevel = cefr.C1
	p.LevelXP = 310
	p.XPTotal = 5000

	got := ApplyLevelUpPass(p, true, epoch, nil)
	assert.Equal(t, cefr.C1, got.CEFRLevel)
	assert.Equal(t, 0, got.LevelXP)
	assert.Equal(t, 5050, got.XPTotal)
}

func TestLevelUpPrompt(t *testing.T) {
	tests := []struct {
		level   cefr.Level
		levelXP int
		want    string
	}{
		{cefr.A1, 299, ""},
		{cefr.A1, 300, "Level-up test to A2 is available."},
		{cefr.B2, 450, "Level-up test to C1 is available."},
		{cefr.C1, 300, "You are at the top level (C1). A mastery test is available."},
	}
	for _, tt := range tests {
		p := newProfile(t)
		p.CEFRLevel = tt.level
		p.LevelXP = tt.levelXP
		assert.Equal(t, tt.want, LevelUpPrompt(p), "%s at %d XP", tt.level, tt.levelXP)
	}
}

func TestLevelUpPassPlaceholderStats(t *testing.T) {
	p := newProfile(t)
	got := ApplyLevelUpPass(p, true, epoch, nil)
	require.Len(t, got.ActivityHistory, 1)
	assert.Equal(t, 100, got.ActivityHistory[0].TotalQuestions)
	assert.Equal(t, 85, got.ActivityHistory[0].CorrectAnswers)
}

func TestLevelUpFailHalves(t *testing.T) {
	tests := []struct{ before, after int }{
		{300, 150},
		{301, 150},
		{1, 0},
		{0, 0},
	}
	for _, tt := range tests {
		p := newProfile(t)
		p.CEFRLevel = cefr.B2
		p.LevelXP = tt.before
		p.XPTotal = 777

		got := ApplyLevelUpPass(p, false, epoch, nil)
		assert.Equal(t, tt.after, got.LevelXP)
		assert.Equal(t, cefr.B2, got.CEFRLevel)
		assert.Equal(t, 777, got.XPTotal)
		assert.Empty(t, got.ActivityHistory)
	}
}
