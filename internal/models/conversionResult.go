package models

import "errors"

type ConversionResult struct {
	Report      ReportFile
	OutputPath  string
	Rows        int
	SkippedRows int
	Fallbacks   int
	Err         error
}

type RunSummary struct {
	Converted []ConversionResult
	Failed    []ConversionResult
	Skipped   []ReportFile
}

func (s RunSummary) HasFailures() bool {
	return len(s.Failed) > 0
}

// HasOutputFailures reports whether any document could not be written, or a
// report was left unconverted because of earlier write failures.
func (s RunSummary) HasOutputFailures() bool {
	for _, failed := range s.Failed {
		if errors.Is(failed.Err, ErrOutputWrite) || errors.Is(failed.Err, ErrRunAborted) {
			return true
		}
	}
	return false
}
