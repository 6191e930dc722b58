package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/ledger"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in, creating the profile on first use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			t := now()
			p, err := e.profiles.Login(ctx, args[0], name, t)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			p, granted := ledger.ApplyDailyLoginBonusReport(p, ledger.Today(t, time.Local))
			if granted {
				if err := e.profiles.Save(ctx, p); err != nil {
					return fmt.Errorf("save profile: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Welcome, %s! You are at level %s.\n", p.Name, p.CEFRLevel)
			if granted {
				fmt.Fprintf(out, "+%d XP daily login bonus. Streak: %s.\n", ledger.DailyLoginBonus, days(p.StreakDays))
			}
			return nil
		},
	}
	cmd.Flags().String("name", "", "Display name (defaults to the part of the email before @)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.profiles.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.profiles.LoadActiveUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}
			out := cmd.OutOrStdout()
			if !p.Authenticated {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			fmt.Fprintf(out, "%s <%s>  level %s  %d XP\n", p.Name, p.Email, p.CEFRLevel, p.XPTotal)
			return nil
		},
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
