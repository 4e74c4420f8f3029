package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/escala/internal/engine"
)

var (
	clearOperation string
	clearMonth     string
	clearDay       int
	clearSlot      int
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty a roster slot",
	Long: `Remove whoever occupies one slot of a day. Removal is always allowed,
even for someone at the monthly limit. The edit is staged until 'escala save'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		op, err := parseOperation(clearOperation)
		if err != nil {
			return err
		}
		month, err := parseMonth(eng, clearMonth)
		if err != nil {
			return err
		}

		result, err := eng.Clear(context.Background(), &engine.ClearRequest{
			Operation: op,
			Month:     month,
			Day:       clearDay,
			Slot:      clearSlot - 1,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}
		printAssignResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	clearCmd.Flags().StringVar(&clearOperation, "op", "pmf", "Operation (pmf or escolaSegura)")
	clearCmd.Flags().StringVar(&clearMonth, "month", "", "Month as YYYY-MM (default: current month)")
	clearCmd.Flags().IntVar(&clearDay, "day", 0, "Day of the month")
	clearCmd.Flags().IntVar(&clearSlot, "slot", 1, "Slot number within the day (1-based)")
	_ = clearCmd.MarkFlagRequired("day")
}
