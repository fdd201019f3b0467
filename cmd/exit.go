package cmd

import (
	"errors"

	"github.com/taoky/accesstat/pkg/analyze"
	"github.com/taoky/accesstat/pkg/filter"
)

const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitNoRecords = 3
)

// UsageError wraps bad command line input.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	var usageErr *UsageError
	var configErr *filter.ConfigError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, analyze.ErrNoRecords):
		return ExitNoRecords
	case errors.As(err, &usageErr), errors.As(err, &configErr):
		return ExitUsage
	default:
		return ExitFailure
	}
}
