package profile

import "strings"

// SkillTag identifies one of the six tracked language skills.
type SkillTag string

const (
	SkillVocab     SkillTag = "vocab"
	SkillGrammar   SkillTag = "grammar"
	SkillReading   SkillTag = "reading"
	SkillWriting   SkillTag = "writing"
	SkillListening SkillTag = "listening"
	SkillSpeaking  SkillTag = "speaking"
)

// AllSkills returns all skill tags in display order.
func AllSkills() []SkillTag {
	return []SkillTag{
		SkillVocab,
		SkillGrammar,
		SkillReading,
		SkillWriting,
		SkillListening,
		SkillSpeaking,
	}
}

// skillAliases maps legacy spellings onto canonical tags.
var skillAliases = map[string]SkillTag{
	"vocabulary": SkillVocab,
	"words":      SkillVocab,
	"flashcards": SkillVocab,
	"dictation":  SkillListening,
}

// ParseSkill converts s to a SkillTag. It accepts canonical tags and a small
// set of legacy aliases, case-insensitively.
func ParseSkill(s string) (SkillTag, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllSkills() {
		if string(t) == key {
			return t, true
		}
	}
	if t, ok := skillAliases[key]; ok {
		return t, true
	}
	return "", false
}

// Valid reports whether s is a canonical skill tag.
func (s SkillTag) Valid() bool {
	for _, t := range AllSkills() {
		if t == s {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable label for the skill.
func (s SkillTag) DisplayName() string {
	switch s {
	case SkillVocab:
		return "Vocabulary"
	case SkillGrammar:
		return "Grammar"
	case SkillReading:
		return "Reading"
	case SkillWriting:
		return "Writing"
	case SkillListening:
		return "Listening"
	case SkillSpeaking:
		return "Speaking"
	default:
		return string(s)
	}
}

// DefaultMastery is the starting proficiency for every skill.
const DefaultMastery = 0.2

// MasteryMap holds a proficiency scalar in [0,1] per skill.
type MasteryMap map[SkillTag]float64

// DefaultMasteryMap returns a map with every skill at DefaultMastery.
func DefaultMasteryMap() MasteryMap {
	m := make(MasteryMap, len(AllSkills()))
	for _, s := range AllSkills() {
		m[s] = DefaultMastery
	}
	return m
}

// Get returns the scalar for s, or DefaultMastery when absent.
func (m MasteryMap) Get(s SkillTag) float64 {
	if v, ok := m[s]; ok {
		return v
	}
	return DefaultMastery
}
