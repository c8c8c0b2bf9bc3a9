package roster

import (
	"sort"
	"strings"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

// Service provides in-memory lookup over the active employee directory.
type Service struct {
	employees []model.Employee
	byID      map[string]model.Employee
}

// NewService creates a Service from a slice of employees. Employees are kept
// sorted by display name.
func NewService(employees []model.Employee) *Service {
	sorted := append([]model.Employee(nil), employees...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].DisplayName()) < strings.ToLower(sorted[j].DisplayName())
	})
	byID := make(map[string]model.Employee, len(sorted))
	for _, e := range sorted {
		byID[e.ID] = e
	}
	return &Service{employees: sorted, byID: byID}
}

// All returns all employees.
func (s *Service) All() []model.Employee {
	return s.employees
}

// Get returns an employee by ID.
func (s *Service) Get(id string) (model.Employee, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Exists reports whether an employee ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByStructure returns all employees paid under the given structure.
func (s *Service) ByStructure(ps model.PayStructure) []model.Employee {
	var result []model.Employee
	for _, e := range s.employees {
		if e.PayStructure == ps {
			result = append(result, e)
		}
	}
	return result
}
