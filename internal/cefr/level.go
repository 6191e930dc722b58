package cefr

import "strings"

// Level is a CEFR proficiency band.
type Level string

const (
	A1 Level = "A1"
	A2 Level = "A2"
	B1 Level = "B1"
	B2 Level = "B2"
	C1 Level = "C1"
	C2 Level = "C2"
)

// AllLevels returns every recognized level from lowest to highest.
// C2 is recognized by placement but is not part of the stored progression.
func AllLevels() []Level {
	return []Level{A1, A2, B1, B2, C1, C2}
}

// Progression is the ordered ladder a learner climbs through level-up tests.
// It stops at C1.
func Progression() []Level {
	return []Level{A1, A2, B1, B2, C1}
}

// Parse converts s to a Level. Matching is case-insensitive and ignores
// surrounding whitespace.
func Parse(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if l.Valid() {
		return l, true
	}
	return "", false
}

// Valid reports whether l is one of the six recognized levels.
func (l Level) Valid() bool {
	return l.Rank() >= 0
}

// Stored reports whether l can be held as a learner's level.
func (l Level) Stored() bool {
	return l.Valid() && l != C2
}

// Rank returns the zero-based position of l in AllLevels, or -1.
func (l Level) Rank() int {
	for i, v := range AllLevels() {
		if v == l {
			return i
		}
	}
	return -1
}

// Next returns the level after l in the stored progression.
// C1 is terminal and returns itself; unknown levels restart at A1.
func (l Level) Next() Level {
	prog := Progression()
	for i, v := range prog {
		if v == l {
			if i+1 < len(prog) {
				return prog[i+1]
			}
			return v
		}
	}
	return A1
}

// Clamp maps any level onto the stored progression: C2 becomes C1 and
// unrecognized values become A1.
func (l Level) Clamp() Level {
	switch {
	case l == C2:
		return C1
	case l.Stored():
		return l
	default:
		return A1
	}
}

// Description returns a one-sentence summary of what a learner at l can do.
func (l Level) Description() string {
	switch l {
	case A1:
		return "Beginner - can understand and use familiar everyday expressions and very basic phrases."
	case A2:
		return "Elementary - can communicate in simple and routine tasks on familiar topics."
	case B1:
		return "Intermediate - can deal with most situations likely to arise while travelling and describe experiences."
	case B2:
		return "Upper Intermediate - can interact with a degree of fluency and spontaneity with native speakers."
	case C1:
		return "Advanced - can express ideas fluently and use language flexibly for social, academic and professional purposes."
	case C2:
		return "Proficient - can understand virtually everything heard or read and express themselves precisely."
	default:
		return "Unknown level."
	}
}
