package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/mastery"
	"github.com/abhisek/lingua/internal/practice"
	"github.com/abhisek/lingua/internal/profile"
)

// newProvider is replaced in tests.
var newProvider = llm.NewProvider

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate practice questions at your level",
		Long: "Ask the configured LLM for practice questions at your CEFR level.\n\n" +
			"The provider comes from LINGUA_LLM_PROVIDER and its LINGUA_* settings, or is\n" +
			"discovered from GOOGLE_CLOUD_PROJECT, GEMINI_API_KEY, OPENAI_API_KEY or\n" +
			"ANTHROPIC_API_KEY.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			skillFlag, _ := cmd.Flags().GetString("skill")
			formatFlag, _ := cmd.Flags().GetString("format")
			topic, _ := cmd.Flags().GetString("topic")
			providerFlag, _ := cmd.Flags().GetString("provider")
			asJSON, _ := cmd.Flags().GetBool("json")
			showAnswers, _ := cmd.Flags().GetBool("answers")

			format, ok := practice.ParseFormat(formatFlag)
			if !ok {
				return fmt.Errorf("unknown format %q (want mixed, mcq or typing)", formatFlag)
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			p, err := e.profiles.LoadActiveUser(ctx)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}

			skill := mastery.Weakest(p.Mastery)
			if skillFlag != "" {
				if skill, err = parseSkillFlag(skillFlag); err != nil {
					return err
				}
			}

			cfg, err := llmConfig(providerFlag)
			if err != nil {
				return err
			}
			provider, err := newProvider(ctx, cfg, e.log)
			if err != nil {
				return fmt.Errorf("create LLM provider: %w", err)
			}

			gen := practice.NewGenerator(provider, practice.DefaultConfig())
			questions, err := gen.Generate(llm.WithLearner(ctx, p.ID), practice.GenerateInput{
				Level:  p.CEFRLevel,
				Skill:  skill,
				Count:  count,
				Format: format,
				Topic:  topic,
			})
			if err != nil {
				return fmt.Errorf("generate questions: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeQuestionsJSON(out, questions)
			}
			writeQuestions(out, p, skill, questions, showAnswers)
			return nil
		},
	}
	cmd.Flags().Int("count", 5, "Number of questions")
	cmd.Flags().String("skill", "", "Skill to practice (default: your weakest skill)")
	cmd.Flags().String("format", string(practice.FormatMixed), "Question format: mixed, mcq or typing")
	cmd.Flags().String("topic", "", "Optional topic, e.g. travel")
	cmd.Flags().String("provider", "", "LLM provider: gemini, vertex, openai, anthropic or mock")
	cmd.Flags().Bool("json", false, "Print questions as JSON lines")
	cmd.Flags().Bool("answers", false, "Show answers and explanations")
	return cmd
}

// llmConfig reads LINGUA_* settings, falling back to provider discovery
// from the standard API key variables.
func llmConfig(provider string) (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	if provider != "" {
		cfg.Provider = provider
	}
	if cfg.Configured() {
		return cfg, nil
	}
	if provider == "" {
		if d, ok := llm.DiscoverConfig(); ok {
			return d, nil
		}
	}
	if err := cfg.Validate(); err != nil {
		return llm.Config{}, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return cfg, nil
}

func writeQuestionsJSON(w io.Writer, questions []practice.Question) error {
	for _, q := range questions {
		raw, err := practice.MarshalQuestion(q)
		if err != nil {
			return fmt.Errorf("encode question: %w", err)
		}
		fmt.Fprintln(w, string(raw))
	}
	return nil
}

func writeQuestions(w io.Writer, p *profile.UserProfile, skill profile.SkillTag, questions []practice.Question, showAnswers bool) {
	fmt.Fprintf(w, "%s practice at level %s\n\n", skill.DisplayName(), p.CEFRLevel)
	for i, q := range questions {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Info().Prompt)
		if mcq, ok := q.(*practice.MCQQuestion); ok {
			for j, opt := range mcq.Options {
				fmt.Fprintf(w, "   %d) %s\n", j+1, opt)
			}
		}
		if showAnswers {
			fmt.Fprintf(w, "   Answer: %s\n", practice.CorrectAnswer(q))
			if ex := strings.TrimSpace(q.Info().Explanation); ex != "" {
				fmt.Fprintf(w, "   %s\n", ex)
			}
		}
		fmt.Fprintln(w)
	}
}
