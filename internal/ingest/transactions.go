package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/source"
)

// Transaction export columns.
const (
	ColServiceProviderID = "ServiceProviderID"
	ColTransactionDate   = "TransactionDate"
	ColItemSold          = "ItemSold"
	ColCCAmount          = "CCAmount"
	ColCashAmount        = "CashAmount"
	ColCheckAmount       = "CheckAmount"
	ColACHAmount         = "ACHAmount"
	ColPayLaterAmount    = "VagaroPayLaterAmount"
	ColOtherAmount       = "OtherAmount"
	ColTip               = "Tip"
	ColDiscount          = "Discount"
	ColCustomerID        = "CustomerID"
)

// Transactions returns the transactions dated within [start, end].
//
// Each day's snapshot is fetched; a missing snapshot is skipped. When no
// snapshot exists for any day, the consolidated export is read and filtered
// instead. A snapshot that fails to parse contributes no rows. Any other
// fetch failure aborts the range.
func (c *Client) Transactions(ctx context.Context, start, end time.Time) ([]model.TransactionRecord, error) {
	p, err := period.New(start, end)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	rows, found, err := c.fetchDays(ctx, p.Days())
	if err != nil {
		return nil, err
	}

	if found == 0 {
		c.log.Info("no daily snapshots in range, reading consolidated export",
			"start", p.Start.Format(period.DateFormat), "end", p.End.Format(period.DateFormat))
		data, err := c.src.Fetch(ctx, source.TransactionsPath)
		if err != nil {
			return nil, fmt.Errorf("fetching consolidated transactions: %w", err)
		}
		rows, err = ParseRows(data)
		if err != nil {
			c.log.Warn("consolidated transactions unreadable, treating as empty", "path", source.TransactionsPath, "err", err)
			rows = nil
		}
	}

	var txns []model.TransactionRecord
	for _, row := range rows {
		txn := c.toTransaction(row)
		if !p.Contains(txn.Date) {
			continue
		}
		txns = append(txns, txn)
	}
	c.log.Debug("transactions loaded", "count", len(txns), "snapshots", found)
	return txns, nil
}

// fetchDays reads every daily snapshot concurrently and returns the rows in
// calendar order along with how many snapshots existed.
func (c *Client) fetchDays(ctx context.Context, days []time.Time) ([]Row, int, error) {
	type dayResult struct {
		rows  []Row
		found bool
	}
	results := make([]dayResult, len(days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			if c.limiter != nil {
				if err := c.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			rows, found, err := c.fetchDay(gctx, day)
			if err != nil {
				return err
			}
			results[i] = dayResult{rows: rows, found: found}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("fetching daily snapshots: %w", ctx.Err())
		}
		return nil, 0, err
	}

	var rows []Row
	found := 0
	for _, r := range results {
		if r.found {
			found++
		}
		rows = append(rows, r.rows...)
	}
	return rows, found, nil
}

func (c *Client) fetchDay(ctx context.Context, day time.Time) ([]Row, bool, error) {
	iso := day.Format(period.DateFormat)
	path := source.DailyTransactionsPath(iso)

	data, err := c.src.Fetch(ctx, path)
	if errors.Is(err, source.ErrNotFound) {
		c.log.Info("no snapshot for day, skipping", "date", iso)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("fetching snapshot for %s: %w", iso, err)
	}

	rows, err := ParseRows(data)
	if err != nil {
		c.log.Warn("snapshot unreadable, treating as empty", "date", iso, "err", err)
		return nil, true, nil
	}
	return rows, true, nil
}

func (c *Client) toTransaction(row Row) model.TransactionRecord {
	date, ok := ParseDate(row.Get(ColTransactionDate))
	if !ok {
		c.log.Debug("unparseable transaction date", "value", row.Get(ColTransactionDate))
	}
	return model.TransactionRecord{
		ServiceProviderID: row.Get(ColServiceProviderID),
		Date:              date,
		ItemSold:          row.Get(ColItemSold),
		CardAmount:        c.amount(row, ColCCAmount),
		CashAmount:        c.amount(row, ColCashAmount),
		CheckAmount:       c.amount(row, ColCheckAmount),
		ACHAmount:         c.amount(row, ColACHAmount),
		PayLaterAmount:    c.amount(row, ColPayLaterAmount),
		OtherAmount:       c.amount(row, ColOtherAmount),
		Tip:               c.amount(row, ColTip),
		Discount:          c.amount(row, ColDiscount),
		CustomerID:        row.Get(ColCustomerID),
	}
}

func (c *Client) amount(row Row, col string) decimal.Decimal {
	d, ok := parseAmount(row.Get(col))
	if !ok {
		c.log.Debug("malformed amount, using zero", "column", col, "value", row.Get(col))
	}
	return d
}
