package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
)

// now is the clock used by every command.
var now = time.Now

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lingua",
		Short:         "English-learning companion",
		Long:          "Lingua tracks your English level, skills, XP and daily streak, and generates practice at your CEFR level.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUA_DB env var)")
	root.PersistentFlags().String("store", "", "Storage backend: sqlite, redis or memory (overrides LINGUA_STORE)")
	root.PersistentFlags().String("log-mode", "", "Log mode: dev, prod or off (overrides LINGUA_LOG_MODE)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newPracticeCmd(),
		newPlaceCmd(),
		newLevelUpCmd(),
		newStatsCmd(),
		newGenerateCmd(),
		newVersionCmd(),
	)
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

// env holds what a command needs to work with the active learner.
type env struct {
	log      *logger.Logger
	profiles *store.ProfileStore
	backend  store.Backend
}

func (e *env) Close() {
	if err := e.backend.Close(); err != nil {
		e.log.Warn("close store", "error", err)
	}
	e.log.Sync()
}

// newLogger uses --log-mode, then LINGUA_LOG_MODE.
func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	mode, _ := cmd.Flags().GetString("log-mode")
	if mode == "" {
		mode = logger.ModeFromEnv()
	}
	return logger.New(mode)
}

// storeConfig applies --store and --db on top of the environment.
func storeConfig(cmd *cobra.Command) store.Config {
	cfg := store.ConfigFromEnv()
	if b, _ := cmd.Flags().GetString("store"); b != "" {
		cfg.Backend = b
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.SQLitePath = p
	}
	return cfg
}

func openEnv(cmd *cobra.Command) (*env, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	backend, err := store.Open(cmd.Context(), storeConfig(cmd))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &env{
		log:      log,
		profiles: store.NewProfileStore(backend, log),
		backend:  backend,
	}, nil
}
