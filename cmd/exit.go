package cmd

import (
	"errors"
	"fmt"

	"github.com/RobsonDevCode/depcheckdocx/internal/constants/exitCodes"
)

// ExitError carries the process exit status out of a command. Err may be nil
// when the command already reported what went wrong.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitCode(err error) int {
	if err == nil {
		return exitCodes.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// anything cobra rejects before RunE is a usage problem
	return exitCodes.ConfigError
}
