package mastery

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/lingua/internal/profile"
)

func newProfile(t *testing.T) *profile.UserProfile {
	t.Helper()
	p, err := profile.New("learner@example.com", "", time.Now())
	if err != nil {
		t.Fatalf("new profile: %v", err)
	}
	return p
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		correct bool
		want    float64
	}{
		{"correct from default", profile.DefaultMastery, true, 0.22},
		{"incorrect from default", profile.DefaultMastery, false, 0.19},
		{"correct near ceiling", 0.99, true, 1.0},
		{"incorrect near floor", 0.005, false, 0.0},
		{"at ceiling stays", 1.0, true, 1.0},
		{"at floor stays", 0.0, false, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProfile(t)
			p.Mastery[profile.SkillGrammar] = tt.start

			got := Update(p, profile.SkillGrammar, tt.correct)
			if math.Abs(got.Mastery[profile.SkillGrammar]-tt.want) > 1e-9 {
				t.Errorf("mastery = %v, want %v", got.Mastery[profile.SkillGrammar], tt.want)
			}
			if p.Mastery[profile.SkillGrammar] != tt.start {
				t.Error("Update mutated its input")
			}
		})
	}
}

func TestUpdateMissingSkillUsesDefault(t *testing.T) {
	p := newProfile(t)
	delete(p.Mastery, profile.SkillSpeaking)

	got := Update(p, profile.SkillSpeaking, true)
	if math.Abs(got.Mastery[profile.SkillSpeaking]-0.22) > 1e-9 {
		t.Errorf("mastery = %v, want 0.22", got.Mastery[profile.SkillSpeaking])
	}
}

func TestUpdateNilMap(t *testing.T) {
	p := newProfile(t)
	p.Mastery = nil
	got := Update(p, profile.SkillReading, false)
	if len(got.Mastery) != len(profile.AllSkills()) {
		t.Fatalf("expected full default map, got %d keys", len(got.Mastery))
	}
	if math.Abs(got.Mastery[profile.SkillReading]-0.19) > 1e-9 {
		t.Errorf("mastery = %v, want 0.19", got.Mastery[profile.SkillReading])
	}
}

func TestBackfillsEveryMissingSkill(t *testing.T) {
	maps := map[string]profile.MasteryMap{
		"nil":     nil,
		"empty":   {},
		"partial": {profile.SkillGrammar: 0.5},
	}
	for name, m := range maps {
		t.Run(name, func(t *testing.T) {
			p := newProfile(t)
			p.Mastery = m

			for _, got := range []*profile.UserProfile{
				Update(p, profile.SkillReading, true),
				Apply(p, profile.SkillReading, []bool{true, false}),
			} {
				if len(got.Mastery) != len(profile.AllSkills()) {
					t.Fatalf("got %d keys, want %d: %v", len(got.Mastery), len(profile.AllSkills()), got.Mastery)
				}
				for _, s := range profile.AllSkills() {
					if _, ok := got.Mastery[s]; !ok {
						t.Errorf("skill %s missing", s)
					}
				}
				if want := m.Get(profile.SkillGrammar); got.Mastery[profile.SkillGrammar] != want {
					t.Errorf("grammar = %v, want %v", got.Mastery[profile.SkillGrammar], want)
				}
			}
			if len(p.Mastery) != len(m) {
				t.Error("input map was modified")
			}
		})
	}
}

func TestClampingHoldsUnderRepetition(t *testing.T) {
	starts := []float64{0, 0.2, 0.5, 0.99, 1}
	for _, start := range starts {
		for _, correct := range []bool{true, false} {
			p := newProfile(t)
			p.Mastery[profile.SkillVocab] = start
			for i := 0; i < 200; i++ {
				p = Update(p, profile.SkillVocab, correct)
				v := p.Mastery[profile.SkillVocab]
				if v < 0 || v > 1 {
					t.Fatalf("start=%v correct=%v step=%d: %v out of range", start, correct, i, v)
				}
			}
			want := 0.0
			if correct {
				want = 1.0
			}
			if p.Mastery[profile.SkillVocab] != want {
				t.Errorf("start=%v correct=%v: settled at %v, want %v", start, correct, p.Mastery[profile.SkillVocab], want)
			}
		}
	}
}

func TestApplyMatchesRepeatedUpdate(t *testing.T) {
	results := []bool{true, true, false, true, false, false, true}
	p := newProfile(t)

	folded := Apply(p, profile.SkillWriting, results)

	stepwise := p
	for _, ok := range results {
		stepwise = Update(stepwise, profile.SkillWriting, ok)
	}
	if folded.Mastery[profile.SkillWriting] != stepwise.Mastery[profile.SkillWriting] {
		t.Errorf("Apply = %v, stepwise = %v", folded.Mastery[profile.SkillWriting], stepwise.Mastery[profile.SkillWriting])
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		v    float64
		want Band
	}{
		{0, BandNovice},
		{0.2, BandNovice},
		{0.35, BandDeveloping},
		{0.6, BandProficient},
		{0.85, BandMastered},
		{1, BandMastered},
	}
	for _, tt := range tests {
		if got := BandFor(tt.v); got != tt.want {
			t.Errorf("BandFor(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestWeakest(t *testing.T) {
	m := profile.DefaultMasteryMap()
	if got := Weakest(m); got != profile.SkillVocab {
		t.Errorf("tie should resolve to first skill, got %q", got)
	}
	m[profile.SkillListening] = 0.05
	if got := Weakest(m); got != profile.SkillListening {
		t.Errorf("Weakest = %q, want listening", got)
	}
}
