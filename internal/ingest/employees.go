package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/source"
)

// Employee directory columns.
const (
	ColProviderFirstName = "ServiceProviderFirstName"
	ColProviderLastName  = "ServiceProviderLastName"
	ColEmployeeType      = "EmployeeType"
	ColProviderStatus    = "ServiceProviderStatus"
)

// StatusActive is the directory status of employees who are paid.
const StatusActive = "Active"

// Employees returns the active entries of the employee directory. Pay
// policies are left unset.
func (c *Client) Employees(ctx context.Context) ([]model.Employee, error) {
	data, err := c.src.Fetch(ctx, source.DirectoryPath)
	if err != nil {
		return nil, fmt.Errorf("fetching employee directory: %w", err)
	}

	rows, err := ParseRows(data)
	if err != nil {
		c.log.Warn("employee directory unreadable, treating as empty", "path", source.DirectoryPath, "err", err)
		return nil, nil
	}

	var employees []model.Employee
	for _, row := range rows {
		if !strings.EqualFold(row.Get(ColProviderStatus), StatusActive) {
			continue
		}
		first, last := row.Get(ColProviderFirstName), row.Get(ColProviderLastName)
		employees = append(employees, model.Employee{
			ID:           row.Get(ColServiceProviderID),
			FirstName:    first,
			LastName:     last,
			FullName:     strings.TrimSpace(first + " " + last),
			EmployeeType: row.Get(ColEmployeeType),
			Status:       row.Get(ColProviderStatus),
		})
	}
	return employees, nil
}
