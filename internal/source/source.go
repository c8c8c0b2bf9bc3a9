package source

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a resource does not exist at the source.
var ErrNotFound = errors.New("resource not found")

// Fetcher reads a named text resource.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// StatusError is a non-success response from remote storage.
type StatusError struct {
	Path       string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.Path, e.Status)
}

// Well-known resource paths inside the export container.
const (
	DirectoryPath    = "Service provider details/Service provider details.csv"
	TransactionsPath = "Transaction details/Transaction details.csv"
)

// DailyTransactionsPath returns the per-day snapshot path for an ISO date.
func DailyTransactionsPath(isoDate string) string {
	return "Transaction details/Transaction details-" + isoDate + ".csv"
}
