package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/timecard"
)

func newTimecardCommand(opts *globalOptions) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "timecard <file>",
		Short: "Parse a timecard workbook and print hours per sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimecard(cmd.OutOrStdout(), opts, args[0], start)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "pay period start (YYYY-MM-DD) to split hours by week")

	return cmd
}

func runTimecard(out io.Writer, opts *globalOptions, path, start string) error {
	var p period.Period
	if start != "" {
		var err error
		if p, err = period.ParseDates(start, ""); err != nil {
			return err
		}
	}

	wb, err := timecard.DefaultRegistry().ReadFile(path)
	if err != nil {
		return err
	}
	tc := timecard.Parse(wb, opts.logger)

	fmt.Fprintf(out, "%s: %d sheets\n\n", tc.FileName, len(tc.Employees))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if p.IsZero() {
		fmt.Fprintln(tw, "SHEET\tNAME\tDAYS\tHOURS")
	} else {
		fmt.Fprintln(tw, "SHEET\tNAME\tDAYS\tHOURS\tWEEK 1\tWEEK 2")
	}
	for _, s := range tc.Employees {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s", s.SheetName, s.Name, len(s.TimeEntries), s.TotalHours.StringFixed(2))
		if !p.IsZero() {
			h := timecard.WeekHours(s, p)
			fmt.Fprintf(tw, "\t%s\t%s", h.Week1.Hours.StringFixed(2), h.Week2.Hours.StringFixed(2))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
