package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/adjustments"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/auditlog"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/ingest"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/payroll"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/report"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/roster"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/timecard"
)

type runFlags struct {
	start    string
	end      string
	timecard string
	hours    string
	format   string
	out      string
	services string
	archive  bool
}

func newRunCommand(opts *globalOptions) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate payroll for a pay period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayroll(cmd.Context(), cmd.OutOrStdout(), opts, f)
		},
	}

	cmd.Flags().StringVar(&f.start, "start", "", "pay period start (YYYY-MM-DD); defaults to period.start in the config")
	cmd.Flags().StringVar(&f.end, "end", "", "pay period end; defaults to start + 13 days")
	cmd.Flags().StringVar(&f.timecard, "timecard", "", "timecard workbook; defaults to the newest file in import/")
	cmd.Flags().StringVar(&f.hours, "hours", "", "CSV of manual hours (employee_id,week1,week2) that override the timecard")
	cmd.Flags().StringVar(&f.format, "format", string(report.FormatTable), "report format: table, csv, pdf or xlsx")
	cmd.Flags().StringVar(&f.out, "out", "", "report path; pdf and xlsx default to reports/")
	cmd.Flags().StringVar(&f.services, "services", "", "also write every service line as CSV to this path")
	cmd.Flags().BoolVar(&f.archive, "archive", false, "move the timecard to import/processed after a successful run")

	return cmd
}

func runPayroll(ctx context.Context, stdout io.Writer, opts *globalOptions, f runFlags) error {
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}
	proj, err := openProject(opts)
	if err != nil {
		return err
	}
	start := f.start
	if start == "" {
		start = proj.cfg.Period.Start
	}
	p, err := period.ParseDates(start, f.end)
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
	calc, err := calculate(ctx, proj, client, svc, set, p, f.timecard, f.hours)
	if err != nil {
		return err
	}
	res, tcPath := calc.result, calc.timecard

	outPath := f.out
	if outPath == "" && format.Binary() {
		outPath = filepath.Join(proj.root, "reports", "payroll-"+p.ID()+"."+string(format))
	}
	title := proj.cfg.Business.Name + " Payroll"
	if err := writeReport(stdout, outPath, format, res, title); err != nil {
		return err
	}
	if f.services != "" {
		if err := writeFile(f.services, func(w io.Writer) error { return report.WriteServicesCSV(w, res) }); err != nil {
			return err
		}
	}
	if outPath != "" {
		fmt.Fprintf(stdout, "Wrote %s report for %s to %s (total %s)\n", format, p, outPath, res.Summary.TotalPayroll.StringFixed(2))
	}

	if f.archive && tcPath != "" {
		dst, err := timecard.Archive(proj.root, tcPath)
		if err != nil {
			return err
		}
		proj.log.Info("timecard archived", "path", dst)
	}

	proj.audit(auditlog.Entry{
		Timestamp: time.Now(),
		Action:    auditlog.ActionRun,
		Period:    p.ID(),
		Reference: outPath,
		Amount:    res.Summary.TotalPayroll.StringFixed(2),
		Details:   fmt.Sprintf("%d employees, %d transactions, %d adjustments", res.Summary.EmployeeCount, len(calc.input.Transactions), len(calc.input.Adjustments)),
	})
	return nil
}

// calculation is one engine run and the inputs it was computed from.
type calculation struct {
	engine   *payroll.Engine
	input    payroll.Input
	result   *payroll.Result
	timecard string
}

// calculate gathers transactions, hours and the adjustments in set for p and
// runs the engine for proj. timecardFile and hoursFile may be empty.
func calculate(ctx context.Context, proj *project, client *ingest.Client, svc *roster.Service, set *adjustments.Set, p period.Period, timecardFile, hoursFile string) (*calculation, error) {
	txns, err := client.Transactions(ctx, p.Start, p.End)
	if err != nil {
		return nil, err
	}
	in := payroll.Input{
		Period:       p,
		Employees:    svc.All(),
		Transactions: txns,
		Adjustments:  set.InPeriod(p),
	}

	tcPath, err := proj.timecardPath(timecardFile)
	if err != nil {
		return nil, err
	}
	if tcPath != "" {
		wb, err := timecard.DefaultRegistry().ReadFile(tcPath)
		if err != nil {
			return nil, err
		}
		tc := timecard.Parse(wb, proj.log)
		in.Timecard = &tc
	} else {
		proj.log.Warn("no timecard found, hours default to zero", "dir", filepath.Join(proj.root, "import"))
	}
	if hoursFile != "" {
		if in.Hours, err = timecard.ReadHoursFile(hoursFile); err != nil {
			return nil, err
		}
	}

	rules := payroll.RulesFromConfig(proj.cfg.Rules)
	engine := payroll.NewEngine(payroll.Options{
		Rules:          &rules,
		Workers:        proj.cfg.Engine.Workers,
		StrictMatching: proj.cfg.Timecard.StrictMatching,
		Logger:         proj.log,
	})
	res, err := engine.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	return &calculation{engine: engine, input: in, result: res, timecard: tcPath}, nil
}

// timecardPath returns explicit when set, otherwise the newest readable
// workbook in import/, or "" when there is none.
func (p *project) timecardPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	files, err := timecard.DefaultRegistry().Scan(p.root)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", nil
	}
	p.log.Info("using newest timecard", "file", files[0].Name)
	return files[0].Path, nil
}

func writeReport(stdout io.Writer, path string, format report.Format, res *payroll.Result, title string) error {
	write := func(w io.Writer) error {
		switch format {
		case report.FormatCSV:
			return report.WriteCSV(w, res)
		case report.FormatPDF:
			return report.WritePDF(w, res, title)
		case report.FormatXLSX:
			return report.WriteXLSX(w, res)
		default:
			return report.WriteTable(w, res)
		}
	}
	if path == "" {
		return write(stdout)
	}
	return writeFile(path, write)
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
