package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

func newEmployeesCommand(opts *globalOptions) *cobra.Command {
	var structure string

	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List active employees with their pay policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmployees(cmd.Context(), cmd.OutOrStdout(), opts, model.PayStructure(structure))
		},
	}

	cmd.Flags().StringVar(&structure, "structure", "", "only list employees with this pay structure")

	return cmd
}

func runEmployees(ctx context.Context, out io.Writer, opts *globalOptions, structure model.PayStructure) error {
	if structure != "" && !structure.Valid() {
		return fmt.Errorf("unknown pay structure %q", structure)
	}
	proj, err := openProject(opts)
	if err != nil {
		return err
	}
	svc, err := proj.roster(ctx, proj.ingestClient())
	if err != nil {
		return err
	}

	employees := svc.All()
	if structure != "" {
		employees = svc.ByStructure(structure)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTRUCTURE\tCOMMISSION\tHOURLY\tADDINGS\tTIPS\tDISCOUNTS")
	for _, e := range employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%%\t%s\t%s\t%s\t%s\n",
			e.ID, e.DisplayName(), e.EmployeeType, e.PayStructure,
			e.CommissionRate.String(), e.HourlyRate.StringFixed(2),
			yesNo(e.HasAddings), yesNo(e.HasTips), yesNo(e.HasDiscountDeductions))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d active employees\n", len(employees))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
