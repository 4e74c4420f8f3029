package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/escala/internal/engine"
)

var (
	conflictsMonth  string
	conflictsDrafts bool
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Find extraordinary duty on ordinary-duty days",
	Long: `Scan a month for people scheduled in PMF or Escola Segura on a day their
group is on ordinary duty, using the calendar and personnel directory from the
reference file.

The command fails when the reference data or rosters cannot be loaded; an
empty result always means the scan ran and found nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		month, err := parseMonth(eng, conflictsMonth)
		if err != nil {
			return err
		}

		result, err := eng.Conflicts(context.Background(), &engine.ConflictsRequest{
			Month:         month,
			IncludeDrafts: conflictsDrafts,
		})
		if err != nil {
			return fmt.Errorf("conflict check for %s could not run: %w", month, err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		rep := result.Report
		if rep.Empty() {
			PrintSuccess(out, fmt.Sprintf("No conflicts in %s (%s checked)", month, PrintCount(rep.DaysChecked, "day", "days")))
			return nil
		}

		PrintSection(out, fmt.Sprintf("Conflicts %s", month))
		rows := make([][]string, 0, len(rep.Conflicts))
		for _, c := range rep.Conflicts {
			rows = append(rows, []string{
				fmt.Sprintf("%02d", c.Day),
				c.Person,
				string(c.Group),
				c.Operation.Label(),
			})
		}
		PrintTable(out, []string{"Dia", "Militar", "Guarnição de Serviço", "Operação"}, rows, nil)
		PrintWarning(out, fmt.Sprintf("%s found on %s",
			PrintCount(len(rep.Conflicts), "conflict", "conflicts"),
			PrintCount(len(rep.ByDay()), "day", "days")))
		if result.IncludesDrafts {
			PrintEmptyState(out, "Includes unsaved edits")
		}
		return nil
	},
}

func init() {
	conflictsCmd.Flags().StringVar(&conflictsMonth, "month", "", "Month as YYYY-MM (default: current month)")
	conflictsCmd.Flags().BoolVar(&conflictsDrafts, "drafts", false, "Include unsaved edits")
}
