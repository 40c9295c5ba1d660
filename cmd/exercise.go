package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mates/internal/exercise"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Generate one exercise and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("category")
		category, err := exercise.ParseCategory(name)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ex, err := rt.generator.Generate(cmd.Context(), category)
		if err != nil {
			return fmt.Errorf("generate exercise: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(ex)
		}

		fmt.Fprintf(out, "%s (%s)\n\n", ex.Category.Label(), ex.Origin)
		fmt.Fprintln(out, ex.Question)
		if ex.Context != "" {
			fmt.Fprintf(out, "\n«%s»\n", ex.Context)
		}
		if ex.Hint != "" {
			fmt.Fprintf(out, "\nPista: %s\n", ex.Hint)
		}
		if ex.HasGroundTruth() {
			fmt.Fprintf(out, "Respuesta: %s\n", ex.Answer)
		}
		return nil
	},
}

func init() {
	exerciseCmd.Flags().StringP("category", "c", string(exercise.CategoryRandom), "Category: solve, reformulate, create, multiples, mental, arithmetic or random")
	exerciseCmd.Flags().Bool("json", false, "Print the exercise as JSON")
}
