package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/ledger"
)

func newLevelUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levelup",
		Short: "Record the outcome of a level-up test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			passed, _ := cmd.Flags().GetBool("passed")
			correct, _ := cmd.Flags().GetInt("correct")
			total, _ := cmd.Flags().GetInt("total")
			force, _ := cmd.Flags().GetBool("force")

			var stats *ledger.TestStats
			if total > 0 {
				if correct < 0 || correct > total {
					return fmt.Errorf("--correct must be between 0 and %d", total)
				}
				stats = &ledger.TestStats{Total: total, Correct: correct}
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
			if !ledger.NeedsLevelUp(p) && !force {
				return fmt.Errorf("not eligible for a level-up test yet: %d/%d level XP", p.LevelXP, ledger.LevelUpThreshold)
			}

			from := p.CEFRLevel
			p = ledger.ApplyLevelUpPass(p, passed, now(), stats)
			if err := e.profiles.Save(ctx, p); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}

			out := cmd.OutOrStdout()
			switch {
			case passed && p.CEFRLevel != from:
				fmt.Fprintf(out, "Congratulations! You moved from %s to %s. +%d XP\n", from, p.CEFRLevel, ledger.LevelUpBonus)
			case passed:
				fmt.Fprintf(out, "Passed! You are already at the top level (%s). +%d XP\n", p.CEFRLevel, ledger.LevelUpBonus)
			default:
				fmt.Fprintf(out, "Not this time. You keep level %s with %d level XP.\n", p.CEFRLevel, p.LevelXP)
			}
			return nil
		},
	}
	cmd.Flags().Bool("passed", false, "The test was passed")
	cmd.Flags().Bool("failed", false, "The test was failed")
	cmd.Flags().Int("correct", 0, "Correct answers in the test")
	cmd.Flags().Int("total", 0, "Questions in the test")
	cmd.Flags().Bool("force", false, "Record the outcome even without enough level XP")
	cmd.MarkFlagsMutuallyExclusive("passed", "failed")
	cmd.MarkFlagsOneRequired("passed", "failed")
	return cmd
}
