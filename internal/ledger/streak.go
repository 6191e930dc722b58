package ledger

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/abhisek/lingua/internal/profile"
)

// DailyLoginTitle labels the activity record of a daily login bonus.
const DailyLoginTitle = "Daily Login"

// ApplyDailyLoginBonus updates the streak and grants DailyLoginBonus, at most
// once per calendar day. A second call with the same today returns p unchanged.
func ApplyDailyLoginBonus(p *profile.UserProfile, today civil.Date) *profile.UserProfile {
	out, _ := applyDailyLogin(p, today)
	return out
}

// ApplyDailyLoginBonusReport is ApplyDailyLoginBonus that also reports
// whether a bonus was granted.
func ApplyDailyLoginBonusReport(p *profile.UserProfile, today civil.Date) (*profile.UserProfile, bool) {
	return applyDailyLogin(p, today)
}

func applyDailyLogin(p *profile.UserProfile, today civil.Date) (*profile.UserProfile, bool) {
	last := p.LastLoginDate
	if last != nil && *last == today {
		return p, false
	}

	streak := 1
	if last != nil && last.AddDays(1) == today {
		streak = p.StreakDays + 1
	}

	out := GrantXP(p, DailyLoginBonus, ActivityMeta{
		Title: DailyLoginTitle,
		Skill: profile.SkillVocab,
		At:    today.In(time.UTC),
	})
	out.StreakDays = streak
	d := today
	out.LastLoginDate = &d
	return out, true
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(now.In(loc))
}
