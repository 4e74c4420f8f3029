package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/escala/internal/engine"
)

var (
	showOperation string
	showMonth     string
	showAll       bool
)

var weekdayAbbrev = []string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show an operation's month roster",
	Long: `Display the month roster of one operation with pending edits applied.

Days with unsaved edits are marked with '*'. Use --all to list empty days too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		op, err := parseOperation(showOperation)
		if err != nil {
			return err
		}
		month, err := parseMonth(eng, showMonth)
		if err != nil {
			return err
		}

		result, err := eng.View(context.Background(), &engine.ViewRequest{Operation: op, Month: month})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintSection(out, fmt.Sprintf("%s %s", op.Label(), month))

		pending := make(map[int]bool, len(result.Pending))
		for _, day := range result.Pending {
			pending[day] = true
		}

		headers := []string{"Dia", ""}
		for i := 1; i <= op.Width(); i++ {
			headers = append(headers, fmt.Sprintf("Vaga %d", i))
		}

		var rows [][]string
		var pendingRows []bool
		for day := 1; day <= month.Days(); day++ {
			row := result.Merged.Row(day)
			if row.IsEmpty() && !showAll && !pending[day] {
				continue
			}
			label := fmt.Sprintf("%02d", day)
			if pending[day] {
				label += "*"
			}
			cells := []string{label, weekdayAbbrev[month.Weekday(day)]}
			for _, name := range row {
				if name == "" {
					name = "-"
				}
				cells = append(cells, name)
			}
			rows = append(rows, cells)
			pendingRows = append(pendingRows, pending[day])
		}

		if len(rows) == 0 {
			PrintEmptyState(out, "No assignments this month")
		} else {
			PrintTable(out, headers, rows, func(row, col int) *lipgloss.Style {
				if row >= 0 && row < len(pendingRows) && pendingRows[row] {
					return &tableAlertStyle
				}
				if col == 1 {
					return &tableMutedStyle
				}
				return nil
			})
		}

		filled := result.Merged.Filled()
		fmt.Fprintln(out)
		PrintLabelValue(out, "Filled", fmt.Sprintf("%d / %d", filled, result.Merged.Capacity()))
		if len(result.Pending) > 0 {
			PrintWarning(out, fmt.Sprintf("%s with unsaved edits (escala save to confirm)",
				PrintCount(len(result.Pending), "day", "days")))
		}
		if result.Stale {
			PrintWarning(out, "The saved roster changed after these edits started; save with --force to overwrite")
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showOperation, "op", "pmf", "Operation (pmf or escolaSegura)")
	showCmd.Flags().StringVar(&showMonth, "month", "", "Month as YYYY-MM (default: current month)")
	showCmd.Flags().BoolVar(&showAll, "all", false, "Include days without assignments")
}
