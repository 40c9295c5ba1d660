package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/mates/internal/app"
	"github.com/abhisek/mates/internal/logging"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practise in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay launches the terminal UI. Logs go to mates.log next to the
// database so they never draw over the screen.
func runPlay(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	logFile, err := logging.ToFile(filepath.Join(filepath.Dir(dbPath), "mates.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(cmd.Context(), app.Deps{
		Session: rt.session,
		Tracker: rt.tracker,
		Online:  rt.generator.Online(),
	})
}
