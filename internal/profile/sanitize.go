package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/abhisek/lingua/internal/cefr"
)

// parseKind classifies how much of a persisted blob was usable.
type parseKind int

const (
	parsedClean        parseKind = iota // every field present and well-typed
	parsedRecovered                     // some fields defaulted or migrated
	parsedUnrecognized                  // not a JSON object at all
)

type parseResult struct {
	kind    parseKind
	profile *UserProfile
	issues  []string
}

func (r *parseResult) note(format string, args ...any) {
	if r.kind == parsedClean {
		r.kind = parsedRecovered
	}
	r.issues = append(r.issues, fmt.Sprintf(format, args...))
}

// Sanitize decodes a persisted profile, repairing anything missing or
// malformed. It never fails: unusable input yields a fresh default profile.
func Sanitize(raw []byte) *UserProfile {
	p, _ := SanitizeReport(raw)
	return p
}

// SanitizeReport is Sanitize plus a list of the repairs that were made.
// An empty list means the blob was already valid.
func SanitizeReport(raw []byte) (*UserProfile, []string) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		r := unrecognized(fmt.Sprintf("undecodable JSON: %v", err))
		return r.profile, r.issues
	}
	r := parse(v)
	return r.profile, r.issues
}

func unrecognized(issue string) parseResult {
	return parseResult{kind: parsedUnrecognized, profile: Guest(), issues: []string{issue}}
}

func parse(v any) (r parseResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r = unrecognized(fmt.Sprintf("panic while sanitizing: %v", rec))
		}
	}()

	m, ok := v.(map[string]any)
	if !ok {
		return unrecognized(fmt.Sprintf("expected object, got %T", v))
	}

	r = parseResult{kind: parsedClean, profile: blank()}
	p := r.profile

	version := 1
	if n, ok := intField(m, "schemaVersion"); ok {
		version = n
	}
	if version < SchemaVersion {
		r.note("migrated from schema v%d", version)
	}

	if s, ok := m["id"].(string); ok && strings.TrimSpace(s) != "" {
		p.ID = s
	} else {
		r.note("id missing; generated %s", p.ID)
	}

	if s, ok := m["email"].(string); ok {
		p.Email = NormalizeEmail(s)
	} else {
		r.note("email missing")
	}

	if s, ok := m["name"].(string); ok && strings.TrimSpace(s) != "" {
		p.Name = s
	} else if p.Email != "" {
		p.Name, _, _ = strings.Cut(p.Email, "@")
		r.note("name missing")
	} else {
		p.Name = GuestName
	}

	if b, ok := boolField(m, "isAuthenticated", "authenticated"); ok {
		p.Authenticated = b
	} else {
		r.note("isAuthenticated missing")
	}

	p.CEFRLevel = parseLevel(&r, m)
	p.Mastery = parseMastery(&r, m["masteryMap"])
	p.XPTotal = nonNegative(&r, m, "xpTotal", "xp")
	p.LevelXP = nonNegative(&r, m, "levelXp", "levelXP")
	p.StreakDays = nonNegative(&r, m, "streakDays", "streak")
	p.LastLoginDate = parseDate(&r, m["lastLoginDate"])
	p.ActivityHistory = parseHistory(&r, m)
	p.PlacementInfo = parsePlacement(&r, m["placementInfo"])

	if t, ok := parseTime(m["createdAt"]); ok {
		p.CreatedAt = t
	} else if _, present := m["createdAt"]; present {
		r.note("createdAt unparseable")
	}

	return r
}

func parseLevel(r *parseResult, m map[string]any) cefr.Level {
	raw, ok := firstString(m, "cefrLevel", "cefr_level", "level")
	if !ok {
		r.note("cefrLevel missing; defaulted to %s", cefr.A1)
		return cefr.A1
	}
	l, ok := cefr.Parse(raw)
	if !ok {
		r.note("cefrLevel %q invalid; defaulted to %s", raw, cefr.A1)
		return cefr.A1
	}
	if !l.Stored() {
		r.note("cefrLevel %s outside progression; clamped", l)
		return l.Clamp()
	}
	return l
}

func parseMastery(r *parseResult, v any) MasteryMap {
	out := DefaultMasteryMap()
	m, ok := v.(map[string]any)
	if !ok {
		r.note("masteryMap missing; defaulted")
		return out
	}
	seen := make(map[SkillTag]bool)
	for k, raw := range m {
		tag, ok := ParseSkill(k)
		if !ok {
			r.note("masteryMap: dropped unknown skill %q", k)
			continue
		}
		f, ok := toFloat(raw)
		if !ok || math.IsNaN(f) {
			r.note("masteryMap[%s]: not a number", k)
			continue
		}
		if f < 0 || f > 1 {
			r.note("masteryMap[%s]: %v clamped", k, f)
			f = math.Max(0, math.Min(1, f))
		}
		// Canonical keys win over aliases.
		if seen[tag] && string(tag) != k {
			continue
		}
		out[tag] = f
		seen[tag] = true
	}
	for _, s := range AllSkills() {
		if !seen[s] {
			r.note("masteryMap[%s] missing; defaulted", s)
		}
	}
	return out
}

func parseHistory(r *parseResult, m map[string]any) []ActivityRecord {
	out := []ActivityRecord{}
	v, ok := m["activityHistory"]
	if !ok {
		v, ok = m["history"]
	}
	if !ok {
		r.note("activityHistory missing")
		return out
	}
	items, ok := v.([]any)
	if !ok {
		r.note("activityHistory not a list")
		return out
	}
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			r.note("activityHistory[%d] dropped", i)
			continue
		}
		out = append(out, parseActivity(r, i, rec))
	}
	return out
}

func parseActivity(r *parseResult, i int, m map[string]any) ActivityRecord {
	ts, ok := parseTime(firstPresent(m, "timestamp", "date"))
	if !ok {
		r.note("activityHistory[%d].timestamp unparseable", i)
	}
	title, ok := firstString(m, "title", "lessonTitle")
	if !ok || title == "" {
		r.note("activityHistory[%d].title missing", i)
		title = "Activity"
	}
	total, _ := intField(m, "totalQuestions", "total")
	correct, _ := intField(m, "correctAnswers", "correct")
	xp, _ := intField(m, "xpEarned", "xp")

	skill := SkillVocab
	if s, ok := firstString(m, "skill", "skillTag"); ok {
		if tag, ok := ParseSkill(s); ok {
			skill = tag
		} else {
			r.note("activityHistory[%d].skill %q invalid; backfilled", i, s)
		}
	} else {
		r.note("activityHistory[%d].skill missing; backfilled", i)
	}

	rec := NewActivity(ts, title, total, correct, xp, skill)
	if rec.TotalQuestions != total || rec.CorrectAnswers != correct {
		r.note("activityHistory[%d]: counts clamped", i)
	}
	return rec
}

func parsePlacement(r *parseResult, v any) *PlacementInfo {
	if v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.note("placementInfo not an object; dropped")
		return nil
	}
	raw, _ := firstString(m, "level", "determinedLevel")
	level, ok := cefr.Parse(raw)
	if !ok {
		r.note("placementInfo.level %q invalid; dropped", raw)
		return nil
	}
	info := &PlacementInfo{Level: level, TargetSkill: SkillVocab}
	if s, ok := firstString(m, "targetSkill"); ok {
		if tag, ok := ParseSkill(s); ok {
			info.TargetSkill = tag
		}
	}
	if n, ok := intField(m, "score"); ok {
		info.Score = max(0, min(n, 100))
	}
	if s, ok := firstString(m, "confidence"); ok {
		switch s {
		case "high", "medium", "low":
			info.Confidence = s
		}
	}
	if t, ok := parseTime(m["evaluatedAt"]); ok {
		info.EvaluatedAt = t
	}
	return info
}

func parseDate(r *parseResult, v any) *civil.Date {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.note("lastLoginDate not a string; dropped")
		return nil
	}
	if d, err := civil.ParseDate(s); err == nil {
		return &d
	}
	if t, ok := parseTime(s); ok {
		d := civil.DateOf(t)
		return &d
	}
	// Browser-style date strings, e.g. "Mon Jan 02 2006".
	if t, err := time.Parse("Mon Jan 02 2006", s); err == nil {
		d := civil.DateOf(t)
		return &d
	}
	r.note("lastLoginDate %q unparseable; dropped", s)
	return nil
}

func nonNegative(r *parseResult, m map[string]any, keys ...string) int {
	n, ok := intField(m, keys...)
	if !ok {
		r.note("%s missing; defaulted to 0", keys[0])
		return 0
	}
	if n < 0 {
		r.note("%s negative; clamped to 0", keys[0])
		return 0
	}
	return n
}

// parseTime accepts RFC 3339 strings and epoch milliseconds.
func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		ts, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return ts, true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(t)).UTC(), true
	default:
		return time.Time{}, false
	}
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func firstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

func boolField(m map[string]any, keys ...string) (bool, bool) {
	for _, k := range keys {
		switch b := m[k].(type) {
		case bool:
			return b, true
		case string:
			if v, err := strconv.ParseBool(b); err == nil {
				return v, true
			}
		}
	}
	return false, false
}

func intField(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		if f, ok := toFloat(m[k]); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
