package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/adjustments"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/auditlog"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/payroll"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

func newAdjustCommand(opts *globalOptions) *cobra.Command {
	adjustCmd := &cobra.Command{
		Use:   "adjust",
		Short: "Manage bonuses and deductions",
	}
	adjustCmd.AddCommand(
		newAdjustAddCommand(opts),
		newAdjustListCommand(opts),
		newAdjustRemoveCommand(opts),
	)
	return adjustCmd
}

type adjustAddFlags struct {
	employee string
	typ      string
	amount   string
	date     string
	notes    string
	start    string
}

func newAdjustAddCommand(opts *globalOptions) *cobra.Command {
	var f adjustAddFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a bonus or deduction for an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdjustAdd(cmd, opts, f)
		},
	}

	cmd.Flags().StringVar(&f.employee, "employee", "", "employee ID (required)")
	cmd.Flags().StringVar(&f.typ, "type", "", "bonus or deduction (required)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "positive amount, at most 2 decimal places (required)")
	cmd.Flags().StringVar(&f.date, "date", "", "date of the adjustment (YYYY-MM-DD); defaults to --start")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&f.start, "start", "", "pay period start; the date must fall in it and the employee's new pay is shown")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdjustAdd(cmd *cobra.Command, opts *globalOptions, f adjustAddFlags) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(f.amount))
	if err != nil {
		return fmt.Errorf("invalid amount %q", f.amount)
	}
	if f.date == "" && f.start == "" {
		return errors.New("one of --date or --start is required")
	}
	params := adjustments.AddParams{
		EmployeeID: f.employee,
		Type:       model.AdjustmentType(f.typ),
		Amount:     amount,
		Notes:      f.notes,
	}
	if f.date != "" {
		if params.Date, err = time.Parse(period.DateFormat, f.date); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", f.date)
		}
	}
	if f.start != "" {
		if params.Period, err = period.ParseDates(f.start, ""); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	proj, err := openProject(opts)
	if err != nil {
		return err
	}
	client := proj.ingestClient()
	svc, err := proj.roster(ctx, client)
	if err != nil {
		return err
	}
	set, err := adjustments.Load(proj.adjustmentsPath(), svc)
	if err != nil {
		return err
	}

	var before *calculation
	if !params.Period.IsZero() {
		if before, err = calculate(ctx, proj, client, svc, set, params.Period, "", ""); err != nil {
			return err
		}
	}

	a, err := set.Add(params)
	if err != nil {
		return err
	}
	if err := set.Save(proj.adjustmentsPath()); err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp:  time.Now(),
		Action:     auditlog.ActionAdjustmentAdd,
		EmployeeID: a.EmployeeID,
		Reference:  a.ID,
		Amount:     a.Signed().StringFixed(2),
		Details:    strings.TrimSpace(string(a.Type) + " " + a.Notes),
	}
	if !params.Period.IsZero() {
		entry.Period = params.Period.ID()
	}
	proj.audit(entry)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %s %s for %s on %s (%s)\n", a.Type, a.Amount.StringFixed(2), a.EmployeeID, a.Date.Format(period.DateFormat), a.ID)

	if before == nil {
		return nil
	}
	in := before.input
	in.Adjustments = set.InPeriod(params.Period)
	after, err := before.engine.Recalculate(in, before.result, a.EmployeeID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Final pay for %s in %s: %s (was %s)\n", a.EmployeeID, params.Period,
		finalPay(after, a.EmployeeID).StringFixed(2), finalPay(before.result, a.EmployeeID).StringFixed(2))
	return nil
}

func finalPay(res *payroll.Result, employeeID string) decimal.Decimal {
	for _, r := range res.Employees {
		if r.Employee.ID == employeeID {
			return r.FinalPay
		}
	}
	return decimal.Zero
}

func newAdjustListCommand(opts *globalOptions) *cobra.Command {
	var employee, start string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List adjustments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdjustList(cmd.OutOrStdout(), opts, employee, start)
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "only this employee ID")
	cmd.Flags().StringVar(&start, "start", "", "only adjustments that apply to the pay period starting here")

	return cmd
}

func runAdjustList(out io.Writer, opts *globalOptions, employee, start string) error {
	proj, err := openProject(opts)
	if err != nil {
		return err
	}
	set, err := adjustments.Load(proj.adjustmentsPath(), nil)
	if err != nil {
		return err
	}

	items := set.All()
	if start != "" {
		p, err := period.ParseDates(start, "")
		if err != nil {
			return err
		}
		items = set.InPeriod(p)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE\tTYPE\tAMOUNT\tDATE\tNOTES")
	total := decimal.Zero
	n := 0
	for _, a := range items {
		if employee != "" && a.EmployeeID != employee {
			continue
		}
		date := ""
		if !a.Date.IsZero() {
			date = a.Date.Format(period.DateFormat)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.EmployeeID, a.Type, a.Signed().StringFixed(2), date, a.Notes)
		total = total.Add(a.Signed())
		n++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d adjustments, net %s\n", n, total.StringFixed(2))
	return nil
}

func newAdjustRemoveCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an adjustment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdjustRemove(cmd.OutOrStdout(), opts, args[0])
		},
	}
}

func runAdjustRemove(out io.Writer, opts *globalOptions, id string) error {
	proj, err := openProject(opts)
	if err != nil {
		return err
	}
	set, err := adjustments.Load(proj.adjustmentsPath(), nil)
	if err != nil {
		return err
	}
	var removed model.Adjustment
	for _, a := range set.All() {
		if a.ID == id {
			removed = a
		}
	}
	if err := set.Remove(id); err != nil {
		return err
	}
	if err := set.Save(proj.adjustmentsPath()); err != nil {
		return err
	}

	proj.audit(auditlog.Entry{
		Timestamp:  time.Now(),
		Action:     auditlog.ActionAdjustmentRemove,
		EmployeeID: removed.EmployeeID,
		Reference:  id,
		Amount:     removed.Signed().StringFixed(2),
	})
	fmt.Fprintf(out, "Removed adjustment %s\n", id)
	return nil
}
