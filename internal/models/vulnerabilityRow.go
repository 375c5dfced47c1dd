package models

import (
	"github.com/RobsonDevCode/depcheckdocx/internal/constants/reportColumns"
)

// VulnerabilityRow is one data line of a report keyed by its header names.
// A key is absent when the line had fewer fields than the header.
type VulnerabilityRow struct {
	Line   int
	Fields map[string]string
}

func NewVulnerabilityRow(line int, header []string, record []string) VulnerabilityRow {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i >= len(record) {
			break
		}
		fields[name] = record[i]
	}

	return VulnerabilityRow{Line: line, Fields: fields}
}

func (r VulnerabilityRow) Get(field string) (string, bool) {
	value, ok := r.Fields[field]
	return value, ok
}

// Require returns the value for field or a MissingFieldError when it is absent.
func (r VulnerabilityRow) Require(field string) (string, error) {
	value, ok := r.Fields[field]
	if !ok {
		return "", &MissingFieldError{Field: field, Line: r.Line}
	}
	return value, nil
}

type TableRow struct {
	Component   string
	Severity    string
	CVE         string
	Description string
}

func (t TableRow) Cells() []string {
	return []string{t.Component, t.Severity, t.CVE, t.Description}
}

// MapTableRow copies the row's fields verbatim around an already resolved severity.
func MapTableRow(row VulnerabilityRow, severity string) (TableRow, error) {
	component, err := row.Require(reportColumns.DependencyName)
	if err != nil {
		return TableRow{}, err
	}

	cve, err := row.Require(reportColumns.CVE)
	if err != nil {
		return TableRow{}, err
	}

	description, err := row.Require(reportColumns.VulnerabilityDetail)
	if err != nil {
		return TableRow{}, err
	}

	return TableRow{
		Component:   component,
		Severity:    severity,
		CVE:         cve,
		Description: description,
	}, nil
}
