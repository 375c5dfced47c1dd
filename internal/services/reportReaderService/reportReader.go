package reportreaderservice

import (
	"fmt"
	"slices"

	"github.com/RobsonDevCode/depcheckdocx/internal/constants/reportColumns"
	"github.com/RobsonDevCode/depcheckdocx/internal/constants/reportFormats"
	"github.com/RobsonDevCode/depcheckdocx/internal/models"
)

// RowIterator streams the data rows of one report. Next returns io.EOF after the
// last row. Close must be called on every path once Open succeeded.
type RowIterator interface {
	Header() []string
	Next() (models.VulnerabilityRow, error)
	Close() error
}

type ReportReaderService interface {
	Open(report models.ReportFile) (RowIterator, error)
}

type ReportReader struct{}

func NewReportReader() *ReportReader {
	return &ReportReader{}
}

func (r *ReportReader) Open(report models.ReportFile) (RowIterator, error) {
	switch report.Extension {
	case reportFormats.Csv:
		iterator, err := openCsvReport(report.Path)
		if err != nil {
			return nil, err
		}
		return iterator, nil

	case reportFormats.Xlsx:
		iterator, err := openXlsxReport(report.Path)
		if err != nil {
			return nil, err
		}
		return iterator, nil

	default:
		return nil, fmt.Errorf("unsupported report type %q for %s", report.Extension, report.Path)
	}
}

// MissingColumns lists the required report columns absent from header.
func MissingColumns(header []string) []string {
	var missing []string
	for _, column := range reportColumns.Required {
		if !slices.Contains(header, column) {
			missing = append(missing, column)
		}
	}
	return missing
}
