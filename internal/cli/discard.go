package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/escala/internal/engine"
)

var (
	discardOperation string
	discardMonth     string
)

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop pending edits",
	Long:  `Delete the pending edits of a month without saving them.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		op, err := parseOptionalOperation(discardOperation)
		if err != nil {
			return err
		}
		month, err := parseMonth(eng, discardMonth)
		if err != nil {
			return err
		}

		result, err := eng.Discard(context.Background(), &engine.DiscardRequest{Month: month, Operation: op})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}
		for _, discarded := range result.Discarded {
			PrintSuccess(out, fmt.Sprintf("Discarded pending %s edits for %s", discarded.Label(), month))
		}
		return nil
	},
}

func init() {
	discardCmd.Flags().StringVar(&discardOperation, "op", "", "Discard only this operation (default: all)")
	discardCmd.Flags().StringVar(&discardMonth, "month", "", "Month as YYYY-MM (default: current month)")
}
