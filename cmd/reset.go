package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mates/internal/gamification"
)

var resetEvents bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over at level 1 keeping the nickname",
	Long: `Zeroes experience and streak and returns the learner to level 1. The
nickname survives. --events also empties the LLM and answer logs.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetEvents, "events", false, "also delete the LLM and answer event logs")
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tracker := gamification.NewTracker(s.KV())
	if err := tracker.Load(ctx); err != nil {
		return err
	}
	st, err := tracker.Reset(ctx)
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	fmt.Fprintf(out, "Progress reset (level %d, %d XP).\n", st.Level, st.XP)

	if !resetEvents {
		return nil
	}
	if err := s.EventRepo().Purge(ctx); err != nil {
		return fmt.Errorf("purge events: %w", err)
	}
	fmt.Fprintln(out, "Event log emptied.")
	return nil
}
