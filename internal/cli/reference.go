package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Inspect the personnel and calendar reference file",
}

var referenceCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the reference file",
	Long: `Load the reference file and report inconsistencies: people listed in more
than one group, unknown ranks or groups, and calendar entries outside their
month or naming a group that does not take ordinary duty.

Exits non-zero when issues are found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		result, err := eng.CheckReference(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := outputJSON(out, result); err != nil {
				return err
			}
		} else {
			PrintSection(out, "Reference data")
			PrintLabelValue(out, "File", result.Path)
			PrintLabelValue(out, "People", fmt.Sprintf("%d", result.People))
			PrintLabelValue(out, "Calendars", fmt.Sprintf("%d", len(result.Months)))
			months := make([]string, len(result.Months))
			for i, m := range result.Months {
				months[i] = m.String()
			}
			PrintList(out, months, 2)
			fmt.Fprintln(out)

			if len(result.Issues) == 0 {
				PrintSuccess(out, "No issues found")
				return nil
			}
			for _, issue := range result.Issues {
				PrintWarning(out, fmt.Sprintf("[%s] %s", issue.Kind, issue))
			}
		}

		if len(result.Issues) > 0 {
			return fmt.Errorf("reference file has %s", PrintCount(len(result.Issues), "issue", "issues"))
		}
		return nil
	},
}

func init() {
	referenceCmd.AddCommand(referenceCheckCmd)
}
