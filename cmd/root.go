package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/store"
)

// envFiles are loaded in order; values already set are never overridden,
// so earlier files win.
var envFiles = []string{".env.local", ".env"}

var rootCmd = &cobra.Command{
	Use:   "mates",
	Short: "Práctica de matemáticas para 5º de primaria",
	Long: "Mates genera ejercicios de matemáticas para 5º de primaria, corrige las respuestas\n" +
		"y lleva la cuenta de experiencia, nivel y racha del alumno.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFiles(); err != nil {
			return err
		}
		return setupLogging(cmd, "warn")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as serve and telegram.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MATES_DB env var)")
	pf.String("catalog", "", "Path to a YAML catalog of themes and strategies (overrides MATES_CATALOG)")
	pf.String("log-level", "", "Log level: error, warn, info, debug (overrides MATES_LOG_LEVEL)")
	pf.Bool("offline", false, "Never call a language model; use local exercises only")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(telegramCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadEnvFiles() error {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// setupLogging configures the process logger from MATES_LOG_* and the
// --log-level flag, falling back to defaultLevel.
func setupLogging(cmd *cobra.Command, defaultLevel string) error {
	opts := logging.OptionsFromEnv(defaultLevel)
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		opts.Level = l
	}
	return logging.Setup(opts)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATES_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
