package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List months with a saved roster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		result, err := eng.Months(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintSection(out, "Saved rosters")
		if len(result.Months) == 0 {
			PrintEmptyState(out, "No saved rosters")
			return nil
		}

		rows := make([][]string, 0, len(result.Months))
		for _, m := range result.Months {
			pending := ""
			if m.Pending {
				pending = "unsaved edits"
			}
			rows = append(rows, []string{
				m.Month.String(),
				m.Operation.Label(),
				fmt.Sprintf("%d / %d", m.Filled, m.Capacity),
				pending,
			})
		}
		months := result.Months
		PrintTable(out, []string{"Mês", "Operação", "Preenchidas", ""}, rows, func(row, col int) *lipgloss.Style {
			if row >= 0 && row < len(months) && months[row].Pending {
				return &tableAlertStyle
			}
			return nil
		})
		return nil
	},
}
