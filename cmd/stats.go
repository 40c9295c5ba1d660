package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/gamification"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress and answer accuracy per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tracker := gamification.NewTracker(s.KV())
		if err := tracker.Load(ctx); err != nil {
			return err
		}
		state := tracker.State()
		in, span := state.LevelProgress()

		name := state.Nickname
		if name == "" {
			name = "(no nickname)"
		}
		fmt.Printf("Learner: %s\n", name)
		fmt.Printf("Level:   %d (%d/%d XP)\n", state.Level, in, span)
		fmt.Printf("XP:      %d\n", state.XP)
		fmt.Printf("Streak:  %d\n", state.Streak)

		stats, err := s.EventRepo().AnswerStatsByCategory(ctx)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("\nNo answers recorded yet.")
			return nil
		}

		var total, correct int
		rows := make([][]string, 0, len(stats)+1)
		for _, st := range stats {
			label := st.Category
			if c, err := exercise.ParseCategory(st.Category); err == nil {
				label = c.Label()
			}
			rows = append(rows, []string{label, strconv.Itoa(st.Attempted), strconv.Itoa(st.Correct), percent(st.Correct, st.Attempted)})
			total += st.Attempted
			correct += st.Correct
		}
		rows = append(rows, []string{"TOTAL", strconv.Itoa(total), strconv.Itoa(correct), percent(correct, total)})

		fmt.Println()
		printTable([]string{"Category", "Answers", "Correct", "Accuracy"}, rows, 1, 2, 3)
		return nil
	},
}
