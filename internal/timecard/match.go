package timecard

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

// MatchOptions controls sheet resolution.
type MatchOptions struct {
	// Strict turns an unresolved sheet into an error instead of a warning.
	Strict bool
	Logger *slog.Logger
}

// Match assigns sheets to employees and returns them keyed by employee ID.
//
// A sheet named exactly after an employee ID, or whose sheet or parsed name
// carries the ID in brackets (for example "Aubrie [SP-12]"), resolves to that
// employee; if its name clearly belongs to someone else the match is
// ambiguous. Otherwise
// names are compared case-insensitively by substring in either direction; if
// several employees match, an exact full-name match wins. Employees without
// a sheet are simply absent from the result.
func Match(sheets []model.TimecardSheet, employees []model.Employee, opts MatchOptions) (map[string]model.TimecardSheet, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	out := make(map[string]model.TimecardSheet, len(sheets))
	owner := make(map[string]string, len(sheets))
	var errs []error
	for _, s := range sheets {
		emp, err := resolve(s, employees)
		if errors.Is(err, ErrUnresolvedSheet) && !opts.Strict {
			log.Warn("timecard sheet matches no employee, skipping", "sheet", s.SheetName, "name", s.Name)
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("sheet %q: %w", s.SheetName, err))
			continue
		}
		if prev, ok := owner[emp.ID]; ok {
			errs = append(errs, fmt.Errorf("sheet %q: %w: %s (%s) already matched sheet %q", s.SheetName, ErrDuplicateSheet, emp.DisplayName(), emp.ID, prev))
			continue
		}
		owner[emp.ID] = s.SheetName
		out[emp.ID] = s
		log.Debug("timecard sheet matched", "sheet", s.SheetName, "employeeId", emp.ID)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// idMarker finds an ID written in brackets or parentheses, e.g. "[SP-12]".
var idMarker = regexp.MustCompile(`[\[(]\s*([^\[\]()]+?)\s*[\])]`)

func resolve(s model.TimecardSheet, employees []model.Employee) (model.Employee, error) {
	markers := idMarkers(s)
	var byID []model.Employee
	for _, e := range employees {
		if e.ID != "" && hasToken(markers, e.ID) {
			byID = append(byID, e)
		}
	}
	if len(byID) > 1 {
		return model.Employee{}, fmt.Errorf("%w: %s", ErrAmbiguousMatch, names(byID))
	}

	byName, nameErr := resolveName(s, employees)
	if len(byID) == 0 {
		return byName, nameErr
	}
	if nameErr == nil && byName.ID != byID[0].ID {
		return model.Employee{}, fmt.Errorf("%w: id names %s but name matches %s",
			ErrAmbiguousMatch, names(byID), names([]model.Employee{byName}))
	}
	return byID[0], nil
}

// idMarkers returns the explicit ID markers of a sheet: a sheet name made
// of a single token, and any bracketed value in the sheet or parsed name.
func idMarkers(s model.TimecardSheet) []string {
	var out []string
	if name := strings.TrimSpace(s.SheetName); name != "" && !strings.ContainsAny(name, " \t") {
		out = append(out, name)
	}
	for _, text := range []string{s.SheetName, s.Name} {
		for _, m := range idMarker.FindAllStringSubmatch(text, -1) {
			out = append(out, m[1])
		}
	}
	return out
}

func resolveName(s model.TimecardSheet, employees []model.Employee) (model.Employee, error) {
	name := normalize(idMarker.ReplaceAllString(s.Name, " "))
	if name == "" {
		name = normalize(idMarker.ReplaceAllString(s.SheetName, " "))
	}
	if name == "" {
		return model.Employee{}, ErrUnresolvedSheet
	}
	var candidates []model.Employee
	for _, e := range employees {
		full := normalize(e.DisplayName())
		if full == "" {
			continue
		}
		if strings.Contains(name, full) || strings.Contains(full, name) {
			candidates = append(candidates, e)
		}
	}
	switch len(candidates) {
	case 0:
		return model.Employee{}, ErrUnresolvedSheet
	case 1:
		return candidates[0], nil
	}
	for _, e := range candidates {
		if normalize(e.DisplayName()) == name {
			return e, nil
		}
	}
	return model.Employee{}, fmt.Errorf("%w: %s", ErrAmbiguousMatch, names(candidates))
}

func hasToken(tokens []string, id string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, id) {
			return true
		}
	}
	return false
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func names(emps []model.Employee) string {
	parts := make([]string, len(emps))
	for i, e := range emps {
		parts[i] = fmt.Sprintf("%s (%s)", e.DisplayName(), e.ID)
	}
	return strings.Join(parts, ", ")
}
