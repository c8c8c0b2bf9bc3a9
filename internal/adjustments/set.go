package adjustments

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

// FileName is the adjustments file kept in a project directory.
const FileName = "adjustments.csv"

// ErrNotFound is returned when removing an adjustment that is not in the set.
var ErrNotFound = errors.New("adjustment not found")

// Set is the active list of adjustments. Entries are only added or removed,
// never edited.
type Set struct {
	items     []model.Adjustment
	employees EmployeeChecker
}

// NewSet creates a Set. employees may be nil.
func NewSet(items []model.Adjustment, employees EmployeeChecker) *Set {
	return &Set{items: append([]model.Adjustment(nil), items...), employees: employees}
}

// Load reads path into a Set. A missing file yields an empty set.
func Load(path string, employees EmployeeChecker) (*Set, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSet(nil, employees), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening adjustments %s: %w", path, err)
	}
	defer f.Close()

	items, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading adjustments %s: %w", path, err)
	}
	return NewSet(items, employees), nil
}

// Save writes the set to path, creating its directory if needed.
func (s *Set) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating adjustments dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating adjustments file: %w", err)
	}
	defer f.Close()

	if err := Write(f, s.items); err != nil {
		return fmt.Errorf("writing adjustments: %w", err)
	}
	return nil
}

// AddParams holds the fields of a new adjustment.
type AddParams struct {
	EmployeeID string
	Type       model.AdjustmentType
	Amount     decimal.Decimal
	Date       time.Time
	Notes      string
	// Period, when set, requires Date to fall inside it. An empty Date
	// defaults to the period start.
	Period period.Period
}

// Add validates params, assigns an ID, and appends the adjustment.
func (s *Set) Add(params AddParams) (model.Adjustment, error) {
	a := model.Adjustment{
		ID:         uuid.NewString(),
		EmployeeID: strings.TrimSpace(params.EmployeeID),
		Type:       model.AdjustmentType(strings.ToLower(string(params.Type))),
		Amount:     params.Amount,
		Date:       params.Date,
		Notes:      strings.TrimSpace(params.Notes),
	}
	if a.Date.IsZero() && !params.Period.IsZero() {
		a.Date = params.Period.Start
	}
	if verrs := Validate([]model.Adjustment{a}, s.employees, params.Period); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return model.Adjustment{}, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}
	s.items = append(s.items, a)
	return a, nil
}

// Remove deletes the adjustment with the given ID.
func (s *Set) Remove(id string) error {
	for i, a := range s.items {
		if a.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", id, ErrNotFound)
}

// All returns every adjustment in insertion order.
func (s *Set) All() []model.Adjustment {
	return s.items
}

// ForEmployee returns the adjustments for one employee.
func (s *Set) ForEmployee(id string) []model.Adjustment {
	var out []model.Adjustment
	for _, a := range s.items {
		if a.EmployeeID == id {
			out = append(out, a)
		}
	}
	return out
}

// InPeriod returns the adjustments dated inside p. Undated entries belong to
// no period.
func (s *Set) InPeriod(p period.Period) []model.Adjustment {
	var out []model.Adjustment
	for _, a := range s.items {
		if p.Contains(a.Date) {
			out = append(out, a)
		}
	}
	return out
}
