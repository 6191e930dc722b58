package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/ledger"
	"github.com/abhisek/lingua/internal/mastery"
	"github.com/abhisek/lingua/internal/practice"
	"github.com/abhisek/lingua/internal/profile"
)

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Record a finished practice quiz",
		Long: "Record a practice quiz: updates mastery for the skill once per answer,\n" +
			"grants XP for each correct answer and adds the quiz to your history.\n\n" +
			"Grade your own answers with --questions (JSON lines from `lingua generate --json`)\n" +
			"and --responses (one answer per line, - for stdin), or record a quiz graded\n" +
			"elsewhere with --correct and --total.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skillFlag, _ := cmd.Flags().GetString("skill")
			correct, _ := cmd.Flags().GetInt("correct")
			total, _ := cmd.Flags().GetInt("total")
			title, _ := cmd.Flags().GetString("title")
			questionsPath, _ := cmd.Flags().GetString("questions")
			responsesPath, _ := cmd.Flags().GetString("responses")

			var (
				skill   profile.SkillTag
				results []bool
				err     error
			)
			if questionsPath != "" || responsesPath != "" {
				if cmd.Flags().Changed("correct") || cmd.Flags().Changed("total") {
					return fmt.Errorf("--correct and --total cannot be combined with --questions")
				}
				var out practice.Outcome
				skill, out, err = gradeQuiz(cmd, questionsPath, responsesPath, skillFlag)
				if err != nil {
					return err
				}
				correct, total, results = out.Correct, out.Total, out.Results
			} else {
				if skillFlag == "" {
					return fmt.Errorf("--skill is required")
				}
				if skill, err = parseSkillFlag(skillFlag); err != nil {
					return err
				}
				if total <= 0 {
					return fmt.Errorf("--total must be positive")
				}
				if correct < 0 || correct > total {
					return fmt.Errorf("--correct must be between 0 and %d", total)
				}
				results = quizResults(correct, total)
			}
			if title == "" {
				title = "Practice: " + skill.DisplayName()
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			p, err := e.activeLearner(ctx)
			if err != nil {
				return err
			}

			before := p.Mastery.Get(skill)
			p = mastery.Apply(p, skill, results)

			xp := ledger.XPForQuiz(correct)
			p = ledger.GrantXP(p, xp, ledger.ActivityMeta{
				Title:          title,
				TotalQuestions: total,
				CorrectAnswers: correct,
				Skill:          skill,
				At:             now(),
			})
			if err := e.profiles.Save(ctx, p); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d/%d correct, +%d XP\n", title, correct, total, xp)
			fmt.Fprintf(out, "%s mastery: %.0f%% -> %.0f%% (%s)\n",
				skill.DisplayName(), before*100, p.Mastery.Get(skill)*100, mastery.BandFor(p.Mastery.Get(skill)).Label())
			if prompt := ledger.LevelUpPrompt(p); prompt != "" {
				fmt.Fprintf(out, "You have %d level XP. %s Run `lingua levelup`.\n", p.LevelXP, prompt)
			}
			return nil
		},
	}
	cmd.Flags().String("skill", "", "Skill practiced: vocab, grammar, reading, writing, listening or speaking")
	cmd.Flags().Int("correct", 0, "Number of correct answers")
	cmd.Flags().Int("total", 0, "Number of questions")
	cmd.Flags().String("title", "", "Activity title (default \"Practice: <skill>\")")
	cmd.Flags().String("questions", "", "Questions file written by `lingua generate --json`")
	cmd.Flags().String("responses", "", "Responses file, one answer per line (- for stdin)")
	return cmd
}

// gradeQuiz checks responses against questions in the order they were
// answered. The skill comes from --skill, or from the questions when they
// all share one.
func gradeQuiz(cmd *cobra.Command, questionsPath, responsesPath, skillFlag string) (profile.SkillTag, practice.Outcome, error) {
	if questionsPath == "" || responsesPath == "" {
		return "", practice.Outcome{}, fmt.Errorf("--questions and --responses must be used together")
	}
	if questionsPath == "-" {
		return "", practice.Outcome{}, fmt.Errorf("--questions must be a file")
	}

	f, err := os.Open(questionsPath)
	if err != nil {
		return "", practice.Outcome{}, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()
	questions, err := practice.ReadQuestions(f)
	if err != nil {
		return "", practice.Outcome{}, err
	}
	if len(questions) == 0 {
		return "", practice.Outcome{}, fmt.Errorf("no questions in %s", questionsPath)
	}

	responses, err := readResponses(cmd, responsesPath)
	if err != nil {
		return "", practice.Outcome{}, err
	}

	skill, err := quizSkill(questions, skillFlag)
	if err != nil {
		return "", practice.Outcome{}, err
	}
	return skill, practice.Grade(questions, responses), nil
}

func quizSkill(questions []practice.Question, skillFlag string) (profile.SkillTag, error) {
	if skillFlag != "" {
		return parseSkillFlag(skillFlag)
	}
	skill := questions[0].Info().Skill
	for _, q := range questions[1:] {
		if q.Info().Skill != skill {
			return "", fmt.Errorf("questions cover several skills; pass --skill")
		}
	}
	if !skill.Valid() {
		return "", fmt.Errorf("questions carry no skill; pass --skill")
	}
	return skill, nil
}

// readResponses returns one response per line. Blank lines are kept so
// a skipped question still lines up with its answer.
func readResponses(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open responses: %w", err)
		}
		defer f.Close()
		r = f
	}
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	return out, nil
}

// quizResults orders correct answers first, then misses, for quizzes
// recorded as counts only.
func quizResults(correct, total int) []bool {
	results := make([]bool, total)
	for i := range correct {
		results[i] = true
	}
	return results
}
