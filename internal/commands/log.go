package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/auditlog"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

func newLogCommand(opts *globalOptions) *cobra.Command {
	var periodID, employee string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the audit log of runs and adjustment changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd.OutOrStdout(), opts, periodID, employee)
		},
	}

	cmd.Flags().StringVar(&periodID, "period", "", "only entries for this period ID (e.g. 2025-10-06_2025-10-19)")
	cmd.Flags().StringVar(&employee, "employee", "", "only entries for this employee ID")

	return cmd
}

func runLog(out io.Writer, opts *globalOptions, periodID, employee string) error {
	var p period.Period
	if periodID != "" {
		var err error
		if p, err = period.Parse(periodID); err != nil {
			return err
		}
	}
	proj, err := openProject(opts)
	if err != nil {
		return err
	}
	entries, err := auditlog.Read(proj.root)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTION\tPERIOD\tEMPLOYEE\tAMOUNT\tREFERENCE\tDETAILS")
	n := 0
	for _, e := range entries {
		if !p.IsZero() && e.Period != p.ID() {
			continue
		}
		if employee != "" && e.EmployeeID != employee {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"), e.Action, e.Period,
			e.EmployeeID, e.Amount, e.Reference, e.Details)
		n++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d entries\n", n)
	return nil
}
