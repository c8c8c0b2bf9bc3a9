package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/timecard"
)

// Input is everything a payroll run needs. It is read, never modified.
type Input struct {
	Period       period.Period
	Employees    []model.Employee
	Transactions []model.TransactionRecord
	// Timecard is optional. Employees without a matching sheet work zero hours.
	Timecard *model.Timecard
	// Hours, keyed by employee ID, take precedence over the timecard.
	Hours       map[string]model.PeriodHours
	Adjustments []model.Adjustment
}

// Result is the outcome of a payroll run. Employees keeps the input order.
type Result struct {
	Period    period.Period
	Employees []model.EmployeePayrollResult
	Summary   model.PayrollSummary
	// Hours are the per-week hours each employee was paid for.
	Hours map[string]model.PeriodHours
}

// Options configures an Engine.
type Options struct {
	Rules          *RuleSet // nil = DefaultRules()
	Workers        int      // 0 = runtime.NumCPU()
	StrictMatching bool
	Logger         *slog.Logger
}

// Engine runs payroll for a whole roster.
type Engine struct {
	rules   RuleSet
	workers int
	strict  bool
	log     *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(opts Options) *Engine {
	rules := DefaultRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{rules: rules, workers: workers, strict: opts.StrictMatching, log: logger}
}

// weekTxns holds one employee's transactions split by week.
type weekTxns [2][]model.TransactionRecord

// Run validates in, resolves hours, and computes every employee in parallel.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	if in.Period.IsZero() {
		return nil, ErrPeriodUnset
	}
	if len(in.Employees) == 0 {
		return nil, ErrNoEmployees
	}

	hours, err := e.resolveHours(in)
	if err != nil {
		return nil, err
	}
	txns := e.splitTransactions(in)

	results := make([]model.EmployeePayrollResult, len(in.Employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, emp := range in.Employees {
		i, emp := i, emp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.calculate(emp, txns[emp.ID], hours[emp.ID], in.Adjustments)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("calculating payroll: %w", err)
	}

	res := &Result{
		Period:    in.Period,
		Employees: results,
		Summary:   Summarize(results),
		Hours:     hours,
	}
	e.log.Info("payroll calculated",
		"period", in.Period.ID(),
		"employees", res.Summary.EmployeeCount,
		"total", res.Summary.TotalPayroll.StringFixed(2))
	return res, nil
}

// Recalculate recomputes one employee from in and returns a copy of prev with
// that employee's result and the summary replaced. Hours come from prev.
func (e *Engine) Recalculate(in Input, prev *Result, employeeID string) (*Result, error) {
	idx := -1
	for i, r := range prev.Employees {
		if r.Employee.ID == employeeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("recalculating %s: %w", employeeID, ErrUnknownEmployee)
	}

	var mine weekTxns
	for _, t := range in.Transactions {
		if t.ServiceProviderID != employeeID {
			continue
		}
		if w := prev.Period.Week(t.Date); w > 0 {
			mine[w-1] = append(mine[w-1], t)
		}
	}

	next := &Result{
		Period:    prev.Period,
		Employees: append([]model.EmployeePayrollResult(nil), prev.Employees...),
		Hours:     prev.Hours,
	}
	next.Employees[idx] = e.calculate(prev.Employees[idx].Employee, mine, prev.Hours[employeeID], in.Adjustments)
	next.Summary = Summarize(next.Employees)
	return next, nil
}

func (e *Engine) calculate(emp model.Employee, txns weekTxns, hours model.PeriodHours, adjustments []model.Adjustment) model.EmployeePayrollResult {
	w1 := CalculateWeek(emp, txns[0], hours.Week1.Hours, e.rules)
	w2 := CalculateWeek(emp, txns[1], hours.Week2.Hours, e.rules)
	return Aggregate(emp, w1, w2, adjustments)
}

func (e *Engine) resolveHours(in Input) (map[string]model.PeriodHours, error) {
	hours := make(map[string]model.PeriodHours, len(in.Employees))
	if in.Timecard != nil {
		sheets, err := timecard.Match(in.Timecard.Employees, in.Employees, timecard.MatchOptions{
			Strict: e.strict,
			Logger: e.log,
		})
		if err != nil {
			return nil, fmt.Errorf("matching timecard %s: %w", in.Timecard.FileName, err)
		}
		for id, sheet := range sheets {
			hours[id] = timecard.WeekHours(sheet, in.Period)
		}
	}
	for id, h := range in.Hours {
		hours[id] = h
	}
	for _, emp := range in.Employees {
		if _, ok := hours[emp.ID]; !ok {
			e.log.Info("no hours for employee, using zero", "employeeId", emp.ID, "name", emp.DisplayName())
		}
	}
	return hours, nil
}

func (e *Engine) splitTransactions(in Input) map[string]weekTxns {
	out := make(map[string]weekTxns, len(in.Employees))
	for _, emp := range in.Employees {
		out[emp.ID] = weekTxns{}
	}
	dropped := 0
	for _, t := range in.Transactions {
		w := in.Period.Week(t.Date)
		split, ok := out[t.ServiceProviderID]
		if w == 0 || !ok {
			dropped++
			continue
		}
		split[w-1] = append(split[w-1], t)
		out[t.ServiceProviderID] = split
	}
	if dropped > 0 {
		e.log.Debug("transactions outside period or roster ignored", "count", dropped)
	}
	return out
}
