package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/escala/internal/engine"
	"github.com/danieljhkim/escala/internal/report"
	"github.com/danieljhkim/escala/internal/roster"
)

const (
	styleCompact  = "compact"
	styleDetailed = "detailed"
)

var (
	candidatesOperation string
	candidatesMonth     string
	candidatesDay       int
	candidatesStyle     string
	candidatesAvailable bool
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List who can fill a day's slots",
	Long: `List the personnel directory for one day's row, grouped by group and
ordered by rank, with each person's services this month.

People at the monthly limit or already serving that day are marked blocked;
people already in the row are marked selected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if candidatesStyle != styleCompact && candidatesStyle != styleDetailed {
			return fmt.Errorf("invalid --style %q: must be %s or %s", candidatesStyle, styleCompact, styleDetailed)
		}

		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		op, err := parseOperation(candidatesOperation)
		if err != nil {
			return err
		}
		month, err := parseMonth(eng, candidatesMonth)
		if err != nil {
			return err
		}

		result, err := eng.Candidates(context.Background(), &engine.CandidatesRequest{
			Operation: op,
			Month:     month,
			Day:       candidatesDay,
		})
		if err != nil {
			return err
		}
		if candidatesAvailable {
			result.Groups = availableOnly(result.Groups)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintSection(out, fmt.Sprintf("%s %s day %02d", op.Label(), month, candidatesDay))
		PrintLabelValue(out, "Row", formatRow(result.Row))
		fmt.Fprintln(out)

		if candidatesStyle == styleCompact {
			printCandidatesCompact(out, result)
		} else {
			printCandidatesDetailed(out, result)
		}
		return nil
	},
}

// availableOnly drops blocked candidates and groups left empty.
func availableOnly(groups []engine.CandidateGroup) []engine.CandidateGroup {
	out := []engine.CandidateGroup{}
	for _, g := range groups {
		var keep []engine.Candidate
		for _, c := range g.Candidates {
			if !c.Blocked {
				keep = append(keep, c)
			}
		}
		if len(keep) > 0 {
			out = append(out, engine.CandidateGroup{Group: g.Group, Candidates: keep})
		}
	}
	return out
}

// candidateStatus describes why a candidate is marked.
func candidateStatus(c engine.Candidate) string {
	var reasons []string
	if c.Selected {
		reasons = append(reasons, "selected")
	}
	if c.LimitReached {
		reasons = append(reasons, "limit reached")
	}
	if c.SameDay {
		reasons = append(reasons, "serving this day")
	}
	return strings.Join(reasons, ", ")
}

func printCandidatesCompact(out io.Writer, result *engine.CandidatesResult) {
	if len(result.Groups) == 0 {
		PrintEmptyState(out, "No candidates")
		return
	}
	for _, g := range result.Groups {
		_, _ = headerColor.Fprintf(out, "%s\n", g.Group)
		for _, c := range g.Candidates {
			line := fmt.Sprintf("  %-32s %2d", c.Name, c.Count)
			switch {
			case c.Selected:
				_, _ = successColor.Fprintln(out, line+"  ✓")
			case c.Blocked:
				_, _ = dimColor.Fprintln(out, line+"  ✗ "+candidateStatus(c))
			default:
				fmt.Fprintln(out, line)
			}
		}
	}
}

func printCandidatesDetailed(out io.Writer, result *engine.CandidatesResult) {
	var rows [][]string
	var flagged []engine.Candidate
	for _, g := range result.Groups {
		for _, c := range g.Candidates {
			rows = append(rows, []string{
				c.Name,
				string(c.Rank),
				rankCircle(c.Rank),
				string(c.Group),
				fmt.Sprintf("%d", c.Count),
				candidateStatus(c),
			})
			flagged = append(flagged, c)
		}
	}
	if len(rows) == 0 {
		PrintEmptyState(out, "No candidates")
		return
	}
	PrintTable(out, []string{"Nome", "Posto", "Círculo", "Guarnição", "Serviços", "Situação"}, rows, func(row, col int) *lipgloss.Style {
		if row < 0 || row >= len(flagged) {
			return nil
		}
		switch {
		case flagged[row].Blocked:
			return &tableMutedStyle
		case flagged[row].Count >= report.NearLimitFrom:
			return &tableAlertStyle
		}
		return nil
	})
}

// rankCircle names the career circle of a rank.
func rankCircle(r roster.Rank) string {
	switch {
	case r == "":
		return ""
	case r.IsOfficer():
		return "Oficial"
	default:
		return "Praça"
	}
}

func init() {
	candidatesCmd.Flags().StringVar(&candidatesOperation, "op", "pmf", "Operation (pmf or escolaSegura)")
	candidatesCmd.Flags().StringVar(&candidatesMonth, "month", "", "Month as YYYY-MM (default: current month)")
	candidatesCmd.Flags().IntVar(&candidatesDay, "day", 0, "Day of the month")
	candidatesCmd.Flags().StringVar(&candidatesStyle, "style", styleDetailed, "Presentation: compact or detailed")
	candidatesCmd.Flags().BoolVar(&candidatesAvailable, "available", false, "Hide blocked candidates")
	_ = candidatesCmd.MarkFlagRequired("day")
}
