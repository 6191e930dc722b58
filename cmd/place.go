package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/ledger"
	"github.com/abhisek/lingua/internal/mastery"
	"github.com/abhisek/lingua/internal/placement"
)

// PlacementTestTitle labels the activity recorded for a placement test.
const PlacementTestTitle = "Placement Test"

func newPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <answers.json>",
		Short: "Evaluate a graded placement test",
		Long: "Evaluate a graded placement test and set your CEFR level.\n\n" +
			"The file holds a JSON array (or an object with an \"answers\" array) of\n" +
			"{\"questionId\", \"isCorrect\", \"cefrLevel\", \"difficulty\", \"skill\"} entries.\n" +
			"Use - to read from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(cmd, args[0])
			if err != nil {
				return err
			}

			result, err := placement.Evaluate(answers)
			if err != nil {
				return fmt.Errorf("evaluate placement: %w", err)
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

			t := now()
			target := placement.TargetSkill(answers, mastery.Weakest(p.Mastery))
			p = placement.Apply(p, result, target, t)

			correct, total := result.Counted()
			xp := ledger.XPForQuiz(correct)
			p = ledger.GrantXP(p, xp, ledger.ActivityMeta{
				Title:          PlacementTestTitle,
				TotalQuestions: total,
				CorrectAnswers: correct,
				Skill:          target,
				At:             t,
			})
			if err := e.profiles.Save(ctx, p); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Level: %s (score %d%%, %s confidence)\n",
				result.DeterminedLevel, result.OverallScore, result.Confidence)
			fmt.Fprintln(out, placement.LevelDescription(result.DeterminedLevel))
			fmt.Fprintln(out, result.Reasoning)
			if p.CEFRLevel != result.DeterminedLevel {
				fmt.Fprintf(out, "Your profile level is set to %s.\n", p.CEFRLevel)
			}
			fmt.Fprintf(out, "Focus skill: %s. +%d XP\n\n", target.DisplayName(), xp)
			fmt.Fprintln(out, "Recommendations:")
			for _, r := range placement.Recommendations(result) {
				fmt.Fprintf(out, "  - %s\n", r)
			}
			return nil
		},
	}
}

func readAnswers(cmd *cobra.Command, path string) ([]placement.GradedAnswer, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	var answers []placement.GradedAnswer
	if len(raw) > 0 && raw[0] == '{' {
		var wrapped struct {
			Answers []placement.GradedAnswer `json:"answers"`
		}
		err = json.Unmarshal(raw, &wrapped)
		answers = wrapped.Answers
	} else {
		err = json.Unmarshal(raw, &answers)
	}
	if err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return answers, nil
}
