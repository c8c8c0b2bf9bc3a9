package timecard

import "errors"

var (
	// ErrAmbiguousMatch means a sheet matches several employees and none exactly.
	ErrAmbiguousMatch = errors.New("sheet matches more than one employee")
	// ErrDuplicateSheet means two sheets resolve to the same employee.
	ErrDuplicateSheet = errors.New("employee already has a timecard sheet")
	// ErrUnresolvedSheet means a sheet matches no employee.
	ErrUnresolvedSheet = errors.New("sheet matches no employee")
)
