// Package auditlog keeps an append-only CSV record of payroll runs and
// adjustment changes in a project directory.
package auditlog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// Actions recorded by the CLI.
const (
	ActionRun              = "run"
	ActionAdjustmentAdd    = "adjustment_add"
	ActionAdjustmentRemove = "adjustment_remove"
)

// Path is the log location relative to the project root.
const Path = "logs/audit-log.csv"

// Entry is one row of the audit log.
type Entry struct {
	Timestamp  time.Time
	Action     string
	Period     string // period ID, empty if not tied to one
	EmployeeID string
	Reference  string // adjustment ID or report path
	Amount     string
	Details    string
}

type record struct {
	Timestamp  string `csv:"timestamp"`
	Action     string `csv:"action"`
	Period     string `csv:"period"`
	EmployeeID string `csv:"employee_id"`
	Reference  string `csv:"reference"`
	Amount     string `csv:"amount"`
	Details    string `csv:"details"`
}

func toRecord(e Entry) *record {
	return &record{
		Timestamp:  e.Timestamp.UTC().Format(time.RFC3339),
		Action:     e.Action,
		Period:     e.Period,
		EmployeeID: e.EmployeeID,
		Reference:  e.Reference,
		Amount:     e.Amount,
		Details:    e.Details,
	}
}

func (r *record) entry() (Entry, error) {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", r.Timestamp, err)
	}
	return Entry{
		Timestamp:  ts,
		Action:     r.Action,
		Period:     r.Period,
		EmployeeID: r.EmployeeID,
		Reference:  r.Reference,
		Amount:     r.Amount,
		Details:    r.Details,
	}, nil
}

// Append adds entries to <root>/logs/audit-log.csv, writing the header when
// the file is new.
func Append(root string, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	path := filepath.Join(root, Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	info, err := os.Stat(path)
	fresh := errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	recs := make([]*record, len(entries))
	for i, e := range entries {
		recs[i] = toRecord(e)
	}
	if fresh {
		err = gocsv.Marshal(&recs, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(&recs, f)
	}
	if err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}

// Read returns every entry in <root>/logs/audit-log.csv, oldest first. A
// missing log reads as empty.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, Path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()
	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var recs []*record
	if err := gocsv.UnmarshalBytes(data, &recs); err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}
	entries := make([]Entry, 0, len(recs))
	for i, rec := range recs {
		e, err := rec.entry()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
