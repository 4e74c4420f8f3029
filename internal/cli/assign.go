package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/escala/internal/engine"
	"github.com/danieljhkim/escala/internal/roster"
)

var (
	assignOperation    string
	assignMonth        string
	assignDay          int
	assignSlot         int
	assignAllowUnknown bool
)

var assignCmd = &cobra.Command{
	Use:   "assign <name>",
	Short: "Place a person in a roster slot",
	Long: `Place a person in one slot of a day. The edit is staged until 'escala save'.

The placement is rejected when the person already holds a slot that day (in
either operation) or already has 12 services this month across PMF and Escola
Segura.`,
	Example: `  escala assign --op pmf --month 2025-04 --day 7 --slot 1 "1º SGT PM OLIMAR"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		op, err := parseOperation(assignOperation)
		if err != nil {
			return err
		}
		month, err := parseMonth(eng, assignMonth)
		if err != nil {
			return err
		}

		result, err := eng.Assign(context.Background(), &engine.AssignRequest{
			Operation:    op,
			Month:        month,
			Day:          assignDay,
			Slot:         assignSlot - 1,
			Person:       strings.Join(args, " "),
			AllowUnknown: assignAllowUnknown,
		})

		out := cmd.OutOrStdout()
		if errors.Is(err, engine.ErrLimitExceeded) && result != nil {
			if jsonOutput {
				_ = outputJSON(out, result)
			} else {
				PrintError(cmd.ErrOrStderr(), fmt.Sprintf("%s already has %d services this month (limit %d)",
					result.Person, result.Decision.Count, result.Decision.Cap))
			}
			return err
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(out, result)
		}
		printAssignResult(out, result)
		return nil
	},
}

// printAssignResult reports a staged slot edit.
func printAssignResult(out io.Writer, result *engine.AssignResult) {
	where := fmt.Sprintf("%s %s day %d slot %d", result.Operation.Label(), result.Month, result.Day, result.Slot+1)
	switch {
	case !result.Changed && result.Person == "":
		PrintInfo(out, fmt.Sprintf("%s is already empty", where))
	case !result.Changed:
		PrintInfo(out, fmt.Sprintf("%s already holds %s", where, result.Person))
	case result.Person == "":
		PrintSuccess(out, fmt.Sprintf("Cleared %s (was %s)", where, result.Previous))
	default:
		msg := fmt.Sprintf("Placed %s in %s", result.Person, where)
		if result.Previous != "" {
			msg += fmt.Sprintf(" (replacing %s)", result.Previous)
		}
		PrintSuccess(out, msg)
		PrintLabelValue(out, "Services this month", fmt.Sprintf("%d of %d", result.Decision.Count+1, result.Decision.Cap))
	}
	if result.Changed {
		PrintLabelValue(out, "Row", formatRow(result.Row))
		PrintEmptyState(out, "Pending until 'escala save'")
	}
}

// formatRow renders a row as "A | - | C".
func formatRow(row roster.Row) string {
	cells := make([]string, len(row))
	for i, name := range row {
		if name == "" {
			name = "-"
		}
		cells[i] = name
	}
	return strings.Join(cells, " | ")
}

func init() {
	assignCmd.Flags().StringVar(&assignOperation, "op", "pmf", "Operation (pmf or escolaSegura)")
	assignCmd.Flags().StringVar(&assignMonth, "month", "", "Month as YYYY-MM (default: current month)")
	assignCmd.Flags().IntVar(&assignDay, "day", 0, "Day of the month")
	assignCmd.Flags().IntVar(&assignSlot, "slot", 1, "Slot number within the day (1-based)")
	assignCmd.Flags().BoolVar(&assignAllowUnknown, "allow-unknown", false, "Accept a name missing from the personnel directory")
	_ = assignCmd.MarkFlagRequired("day")
}
