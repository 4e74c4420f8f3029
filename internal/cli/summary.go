package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/escala/internal/engine"
	"github.com/danieljhkim/escala/internal/roster"
)

var (
	summaryMonth     string
	summaryOperation string
	summaryBy        string
	summaryDrafts    bool
	summaryAllGroups bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize a month's services",
	Long: `Summarize a month's extraordinary services.

  --by person     services per person, flagging those near or at the limit
  --by group      services per group, with who serves on each day
  --by occupancy  filled slots against capacity per operation`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch summaryBy {
		case "person", "group", "occupancy":
		default:
			return fmt.Errorf("invalid --by %q: must be person, group or occupancy", summaryBy)
		}

		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		op, err := parseOptionalOperation(summaryOperation)
		if err != nil {
			return err
		}
		month, err := parseMonth(eng, summaryMonth)
		if err != nil {
			return err
		}

		result, err := eng.Summary(context.Background(), &engine.SummaryRequest{
			Month:              month,
			Operation:          op,
			IncludeDrafts:      summaryDrafts,
			IncludeEmptyGroups: summaryAllGroups,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		switch summaryBy {
		case "person":
			printPersonSummary(out, result)
		case "group":
			printGroupSummary(out, result)
		case "occupancy":
			printOccupancySummary(out, result)
		}
		if !result.DirectoryLoaded {
			PrintWarning(out, "Reference file unavailable; groups and ranks are unknown")
		}
		return nil
	},
}

func printPersonSummary(out io.Writer, result *engine.SummaryResult) {
	PrintSection(out, fmt.Sprintf("Services per person %s", result.Month))
	if len(result.People) == 0 {
		PrintEmptyState(out, "No services this month")
		return
	}

	rows := make([][]string, 0, len(result.People))
	for _, p := range result.People {
		status := ""
		switch {
		case p.AtLimit:
			status = "limit reached"
		case p.NearLimit:
			status = "near limit"
		}
		rows = append(rows, []string{
			p.Name,
			string(p.Group),
			fmt.Sprintf("%d", p.PerOperation[roster.OpPMF]),
			fmt.Sprintf("%d", p.PerOperation[roster.OpEscolaSegura]),
			fmt.Sprintf("%d", p.Total),
			fmt.Sprintf("%d", p.DistinctDays()),
			status,
		})
	}
	people := result.People
	PrintTable(out, []string{"Militar", "Guarnição", "PMF", "ES", "Total", "Dias", ""}, rows, func(row, col int) *lipgloss.Style {
		if row < 0 || row >= len(people) {
			return nil
		}
		if people[row].AtLimit || people[row].NearLimit {
			return &tableAlertStyle
		}
		return nil
	})
}

func printGroupSummary(out io.Writer, result *engine.SummaryResult) {
	PrintSection(out, fmt.Sprintf("Services per group %s", result.Month))
	if len(result.Groups) == 0 {
		PrintEmptyState(out, "No services this month")
		return
	}
	for _, g := range result.Groups {
		_, _ = headerColor.Fprintf(out, "%s  ", g.Group)
		PrintInfo(out, fmt.Sprintf("%s, %s, %s",
			PrintCount(g.Total, "service", "services"),
			PrintCount(len(g.Days), "day", "days"),
			PrintCount(g.People, "person", "people")))
		for _, day := range g.Days {
			PrintLabelValue(out, fmt.Sprintf("%02d", day.Day), strings.Join(day.Names, ", "))
		}
		fmt.Fprintln(out)
	}
}

func printOccupancySummary(out io.Writer, result *engine.SummaryResult) {
	PrintSection(out, fmt.Sprintf("Occupancy %s", result.Month))
	rows := make([][]string, 0, len(result.Occupancy))
	for _, o := range result.Occupancy {
		rows = append(rows, []string{
			o.Operation.Label(),
			fmt.Sprintf("%d", o.Filled),
			fmt.Sprintf("%d", o.Capacity),
			fmt.Sprintf("%d", o.Remaining),
			fmt.Sprintf("%d%%", o.Percent),
			fmt.Sprintf("%d", o.FullDays),
		})
	}
	PrintTable(out, []string{"Operação", "Preenchidas", "Vagas", "Restantes", "%", "Dias completos"}, rows, nil)
}

func init() {
	summaryCmd.Flags().StringVar(&summaryMonth, "month", "", "Month as YYYY-MM (default: current month)")
	summaryCmd.Flags().StringVar(&summaryOperation, "op", "", "Only this operation (default: all)")
	summaryCmd.Flags().StringVar(&summaryBy, "by", "person", "Summary kind: person, group or occupancy")
	summaryCmd.Flags().BoolVar(&summaryDrafts, "drafts", false, "Include unsaved edits")
	summaryCmd.Flags().BoolVar(&summaryAllGroups, "all-groups", false, "List groups without services")
}
