package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnreadableReport = errors.New("report file cannot be read")
	ErrOutputWrite      = errors.New("output document cannot be written")
	ErrInputRootMissing = errors.New("input directory does not exist")
	ErrRunAborted       = errors.New("run aborted after output write failures")
)

// MissingFieldError is returned when a data row lacks a required column value.
type MissingFieldError struct {
	Field string
	Line  int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("line %d: missing field %q", e.Line, e.Field)
}

// MalformedReportError marks a report that cannot be converted because of its content.
type MalformedReportError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *MalformedReportError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("malformed report %s: missing columns %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("malformed report %s: %v", e.Path, e.Err)
}

func (e *MalformedReportError) Unwrap() error {
	return e.Err
}
