package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/cefr"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/placement"
	"github.com/abhisek/lingua/internal/practice"
	"github.com/abhisek/lingua/internal/profile"
)

// cli runs commands against one SQLite file with a controllable clock.
type cli struct {
	t   *testing.T
	db  string
	now time.Time
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	c := &cli{
		t:   t,
		db:  filepath.Join(t.TempDir(), "lingua.db"),
		now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	prev := now
	now = func() time.Time { return c.now }
	t.Cleanup(func() { now = prev })
	return c
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	return c.runIn("", args...)
}

func (c *cli) runIn(stdin string, args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(bytes.NewBufferString(stdin))
	root.SetArgs(append([]string{"--store", "sqlite", "--db", c.db, "--log-mode", "off"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "lingua %v", args)
	return out
}

func TestLoginWhoamiLogout(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.mustRun("whoami"), "Not logged in.")

	out := c.mustRun("login", "Ada@Example.com", "--name", "Ada")
	assert.Contains(t, out, "Welcome, Ada! You are at level A1.")
	assert.Contains(t, out, "+10 XP daily login bonus. Streak: 1 day.")

	assert.Contains(t, c.mustRun("whoami"), "Ada <ada@example.com>  level A1  10 XP")

	out = c.mustRun("login", "ada@example.com")
	assert.NotContains(t, out, "daily login bonus", "second login on the same day")

	c.now = c.now.Add(24 * time.Hour)
	assert.Contains(t, c.mustRun("login", "ada@example.com"), "Streak: 2 days.")

	assert.Contains(t, c.mustRun("logout"), "Logged out.")
	assert.Contains(t, c.mustRun("whoami"), "Not logged in.")

	out = c.mustRun("login", "ada@example.com")
	assert.Contains(t, out, "Welcome, Ada!")
	assert.Contains(t, c.mustRun("whoami"), "20 XP")
}

func TestCommandsRequireLogin(t *testing.T) {
	c := newCLI(t)
	for _, args := range [][]string{
		{"practice", "--skill", "grammar", "--correct", "1", "--total", "2"},
		{"levelup", "--passed", "--force"},
		{"stats"},
	} {
		_, err := c.run(args...)
		assert.ErrorIs(t, err, errNotLoggedIn, "lingua %v", args)
	}
}

func TestPractice(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	out := c.mustRun("practice", "--skill", "grammar", "--correct", "4", "--total", "5")
	assert.Contains(t, out, "Practice: Grammar: 4/5 correct, +40 XP")
	assert.Contains(t, out, "Grammar mastery: 20% ->")
	assert.NotContains(t, out, "level-up test")

	assert.Contains(t, c.mustRun("whoami"), "50 XP")

	_, err := c.run("practice", "--skill", "cooking", "--total", "5")
	assert.ErrorContains(t, err, "unknown skill")

	_, err = c.run("practice", "--skill", "grammar", "--correct", "6", "--total", "5")
	assert.ErrorContains(t, err, "--correct")

	_, err = c.run("practice", "--skill", "grammar", "--total", "0")
	assert.ErrorContains(t, err, "--total")
}

func TestPracticeSuggestsLevelUp(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	out := c.mustRun("practice", "--skill", "vocab", "--correct", "30", "--total", "30", "--title", "Big quiz")
	assert.Contains(t, out, "Big quiz: 30/30 correct, +300 XP")
	assert.Contains(t, out, "You have 300 level XP. Level-up test to A2 is available.")
}

func writeQuestionFile(t *testing.T, qs ...practice.Question) string {
	t.Helper()
	var buf bytes.Buffer
	for _, q := range qs {
		raw, err := practice.MarshalQuestion(q)
		require.NoError(t, err)
		buf.Write(raw)
		buf.WriteByte('\n')
	}
	path := filepath.Join(t.TempDir(), "questions.jsonl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func grammarQuiz(t *testing.T) string {
	t.Helper()
	grammar := practice.Meta{Skill: profile.SkillGrammar, Level: cefr.A1}
	return writeQuestionFile(t,
		&practice.MCQQuestion{Meta: grammar, Options: []string{"3", "4", "5"}, CorrectIndex: practice.Index(2)},
		&practice.TypingQuestion{Meta: grammar, Answer: "went"},
		&practice.MCQQuestion{Meta: grammar, Options: []string{"is", "are"}, CorrectIndex: practice.Index(0)},
	)
}

func TestPracticeGradesResponses(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	responses := filepath.Join(t.TempDir(), "responses.txt")
	require.NoError(t, os.WriteFile(responses, []byte("3\nWent.\n"), 0o644))

	out := c.mustRun("practice", "--questions", grammarQuiz(t), "--responses", responses)
	assert.Contains(t, out, "Practice: Grammar: 1/3 correct, +10 XP")
	assert.Contains(t, out, "Grammar mastery: 20% -> 20%")
	assert.Contains(t, c.mustRun("whoami"), "20 XP")
	assert.Contains(t, c.mustRun("stats"), "1/3")
}

func TestPracticeGradesStdin(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	out, err := c.runIn("5\nwent\nis\n", "practice", "--questions", grammarQuiz(t), "--responses", "-", "--title", "Quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Quiz: 3/3 correct, +30 XP")
	assert.Contains(t, out, "Grammar mastery: 20% -> 26%")
}

func TestPracticeGradingFlags(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")
	quiz := grammarQuiz(t)

	_, err := c.run("practice", "--questions", quiz)
	assert.ErrorContains(t, err, "--responses")

	_, err = c.runIn("5\n", "practice", "--questions", quiz, "--responses", "-", "--total", "3")
	assert.ErrorContains(t, err, "cannot be combined")

	mixed := writeQuestionFile(t,
		&practice.TypingQuestion{Meta: practice.Meta{Skill: profile.SkillGrammar}, Answer: "went"},
		&practice.TypingQuestion{Meta: practice.Meta{Skill: profile.SkillVocab}, Answer: "cat"},
	)
	_, err = c.runIn("went\ncat\n", "practice", "--questions", mixed, "--responses", "-")
	assert.ErrorContains(t, err, "--skill")

	out, err := c.runIn("went\ncat\n", "practice", "--questions", mixed, "--responses", "-", "--skill", "vocab")
	require.NoError(t, err)
	assert.Contains(t, out, "Practice: Vocabulary: 2/2 correct, +20 XP")
}

func writeAnswers(t *testing.T, answers []placement.GradedAnswer) string {
	t.Helper()
	raw, err := json.Marshal(answers)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestPlace(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	var answers []placement.GradedAnswer
	for _, lvl := range []string{"A1", "A2", "B1"} {
		for i := range 5 {
			answers = append(answers, placement.GradedAnswer{QuestionID: lvl + string(rune('a'+i)), IsCorrect: true, Level: lvlOf(lvl)})
		}
	}
	for i := range 5 {
		answers = append(answers, placement.GradedAnswer{QuestionID: "B2" + string(rune('a'+i)), Level: lvlOf("B2"), Skill: "writing"})
	}

	out := c.mustRun("place", writeAnswers(t, answers))
	assert.Contains(t, out, "Level: B1 (score 75%, high confidence)")
	assert.Contains(t, out, "Focus skill: Writing. +150 XP")
	assert.Contains(t, out, "Recommendations:")

	assert.Contains(t, c.mustRun("whoami"), "level B1  160 XP")

	stats := c.mustRun("stats")
	assert.Contains(t, stats, "Placed at B1 with a score of 75%")
	assert.Contains(t, stats, PlacementTestTitle)
}

func TestPlaceCountsEvaluatedAnswers(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	answers := []placement.GradedAnswer{
		{QuestionID: "q1", IsCorrect: true, Level: "b1"},
		{QuestionID: "q2", IsCorrect: true, Level: cefr.B1},
		{QuestionID: "q3", IsCorrect: false, Level: " a1"},
		{QuestionID: "q4", IsCorrect: true, Level: "Z9"},
	}
	out := c.mustRun("place", writeAnswers(t, answers))
	assert.Contains(t, out, "Level: B1 (score 67%")
	assert.Contains(t, out, "+20 XP")

	assert.Contains(t, c.mustRun("whoami"), "level B1  30 XP")
	assert.Contains(t, c.mustRun("stats"), "2/3")
}

func TestPlaceFromStdinWrapped(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(bytes.NewBufferString(`{"answers":[{"questionId":"q1","isCorrect":true,"cefrLevel":"A2"}]}`))
	root.SetArgs([]string{"--store", "sqlite", "--db", c.db, "--log-mode", "off", "place", "-"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Level: A2")
}

func TestPlaceRejectsEmptyBatch(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	_, err := c.run("place", writeAnswers(t, []placement.GradedAnswer{}))
	assert.ErrorIs(t, err, placement.ErrInvalidInput)
}

func TestLevelUp(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	_, err := c.run("levelup", "--passed")
	assert.ErrorContains(t, err, "not eligible")

	_, err = c.run("levelup", "--passed", "--failed")
	assert.Error(t, err)
	_, err = c.run("levelup")
	assert.Error(t, err)

	c.mustRun("practice", "--skill", "vocab", "--correct", "30", "--total", "30")

	out := c.mustRun("levelup", "--failed")
	assert.Contains(t, out, "You keep level A1 with 155 level XP.")

	out = c.mustRun("levelup", "--passed", "--force", "--correct", "18", "--total", "20")
	assert.Contains(t, out, "You moved from A1 to A2. +50 XP")
	assert.Contains(t, c.mustRun("whoami"), "level A2  360 XP")
}

func TestStats(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com", "--name", "Ada")

	out := c.mustRun("stats", "--width", "80")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Level A1")
	assert.Contains(t, out, "10/300 XP")
	assert.Contains(t, out, "Daily Login")
}

func TestGenerate(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "ada@example.com")

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"type":"mcq","prompt":"Choose the past tense of 'go'.","options":["goed","went","gone"],"correct_index":1,"answer":"","accepted":[],"explanation":"'Went' is the simple past of 'go'."},
		{"type":"typing","prompt":"Type the plural of 'child'.","options":[],"correct_index":0,"answer":"children","accepted":[],"explanation":"An irregular plural."}
	]}`)})
	prev := newProvider
	newProvider = func(context.Context, llm.Config, *logger.Logger) (llm.Provider, error) { return mock, nil }
	t.Cleanup(func() { newProvider = prev })

	out := c.mustRun("generate", "--provider", "mock", "--count", "2", "--skill", "grammar", "--answers")
	assert.Contains(t, out, "Grammar practice at level A1")
	assert.Contains(t, out, "1. Choose the past tense of 'go'.")
	assert.Contains(t, out, "   2) went")
	assert.Contains(t, out, "Answer: went")
	assert.Contains(t, out, "Answer: children")

	require.Len(t, mock.Calls, 1)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "A1")
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("generate", "--format", "essay")
	assert.ErrorContains(t, err, "unknown format")
}

func TestLLMConfig(t *testing.T) {
	for _, k := range []string{
		"LINGUA_LLM_PROVIDER", "LINGUA_GEMINI_API_KEY", "LINGUA_VERTEX_PROJECT",
		"LINGUA_OPENAI_API_KEY", "LINGUA_ANTHROPIC_API_KEY",
		"GOOGLE_CLOUD_PROJECT", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(k, "")
	}

	_, err := llmConfig("")
	assert.ErrorContains(t, err, "not configured")

	cfg, err := llmConfig("mock")
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Provider)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err = llmConfig("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)

	_, err = llmConfig("anthropic")
	assert.Error(t, err, "explicit provider is not replaced by discovery")
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("version"), "lingua")
}

func lvlOf(s string) cefr.Level {
	l, _ := cefr.Parse(s)
	return l
}
