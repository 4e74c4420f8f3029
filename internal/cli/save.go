package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/escala/internal/engine"
	"github.com/danieljhkim/escala/internal/planner"
)

var (
	saveOperation string
	saveMonth     string
	saveForce     bool
	saveDryRun    bool
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Confirm pending edits",
	Long: `Persist the pending edits of a month, replacing the saved roster of each
operation wholesale.

If the saved roster changed after the edits started, nothing is written
unless --force is given. Use --dry-run to list the changes without saving.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		op, err := parseOptionalOperation(saveOperation)
		if err != nil {
			return err
		}
		month, err := parseMonth(eng, saveMonth)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		result, err := eng.Save(context.Background(), &engine.SaveRequest{
			Month:     month,
			Operation: op,
			Force:     saveForce,
			DryRun:    saveDryRun,
		})
		if errors.Is(err, engine.ErrNoDraft) {
			if jsonOutput {
				return outputJSON(out, &engine.SaveResult{Saved: []engine.SavedMonth{}, Plans: []*planner.SavePlan{}, DryRun: saveDryRun})
			}
			PrintEmptyState(out, "No pending edits")
			return nil
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(out, result)
		}

		if result.DryRun {
			for _, plan := range result.Plans {
				printSavePlan(out, plan)
			}
			PrintInfo(out, "Dry run: nothing was saved")
			return nil
		}
		for _, saved := range result.Saved {
			PrintSuccess(out, fmt.Sprintf("Saved %s %s (%s edited, %d slots filled)",
				saved.Operation.Label(), saved.Month, PrintCount(len(saved.Days), "day", "days"), saved.Filled))
		}
		return nil
	},
}

func printSavePlan(out io.Writer, plan *planner.SavePlan) {
	PrintSection(out, fmt.Sprintf("%s %s", plan.Operation.Label(), plan.Month))
	if plan.Stale {
		PrintWarning(out, "The saved roster changed after these edits started; save with --force to overwrite")
	}
	if !plan.HasChanges() {
		PrintEmptyState(out, "No changes")
		return
	}

	rows := make([][]string, 0, len(plan.Changes))
	for _, c := range plan.Changes {
		rows = append(rows, []string{
			fmt.Sprintf("%02d", c.Day),
			c.Kind,
			formatRow(c.Before),
			formatRow(c.After),
		})
	}
	PrintTable(out, []string{"Dia", "", "Antes", "Depois"}, rows, nil)
	PrintLabelValue(out, "New placements", fmt.Sprintf("%d", len(plan.Placed())))
}

func init() {
	saveCmd.Flags().StringVar(&saveOperation, "op", "", "Save only this operation (default: all)")
	saveCmd.Flags().StringVar(&saveMonth, "month", "", "Month as YYYY-MM (default: current month)")
	saveCmd.Flags().BoolVar(&saveForce, "force", false, "Overwrite a saved roster that changed since the edits started")
	saveCmd.Flags().BoolVar(&saveDryRun, "dry-run", false, "Show the changes without saving")
}
