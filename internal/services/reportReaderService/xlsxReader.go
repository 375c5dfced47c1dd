package reportreaderservice

import (
	"fmt"
	"io"
	"strings"

	"github.com/RobsonDevCode/depcheckdocx/internal/models"
	"github.com/xuri/excelize/v2"
)

// xlsxRowIterator reads the first worksheet of a workbook exported from a report.
type xlsxRowIterator struct {
	path   string
	file   *excelize.File
	rows   *excelize.Rows
	header []string
	line   int
}

func openXlsxReport(path string) (*xlsxRowIterator, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrUnreadableReport, path, err)
	}

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		file.Close()
		return nil, &models.MalformedReportError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := file.Rows(sheets[0])
	if err != nil {
		file.Close()
		return nil, &models.MalformedReportError{Path: path, Err: fmt.Errorf("error reading sheet %s: %w", sheets[0], err)}
	}

	iterator := &xlsxRowIterator{
		path: path,
		file: file,
		rows: rows,
	}

	if rows.Next() {
		iterator.line++
		header, err := rows.Columns()
		if err != nil {
			iterator.Close()
			return nil, &models.MalformedReportError{Path: path, Err: fmt.Errorf("error reading header: %w", err)}
		}
		iterator.header = header
	}

	return iterator, nil
}

func (x *xlsxRowIterator) Header() []string {
	return x.header
}

func (x *xlsxRowIterator) Next() (models.VulnerabilityRow, error) {
	for x.rows.Next() {
		x.line++
		columns, err := x.rows.Columns()
		if err != nil {
			return models.VulnerabilityRow{}, &models.MalformedReportError{Path: x.path, Err: err}
		}

		// blank rows are skipped the same way the csv reader skips empty lines
		if strings.Join(columns, "") == "" {
			continue
		}

		// excelize drops trailing empty cells, an empty cell is still a present field
		for len(columns) < len(x.header) {
			columns = append(columns, "")
		}

		return models.NewVulnerabilityRow(x.line, x.header, columns), nil
	}

	if err := x.rows.Error(); err != nil {
		return models.VulnerabilityRow{}, &models.MalformedReportError{Path: x.path, Err: err}
	}

	return models.VulnerabilityRow{}, io.EOF
}

func (x *xlsxRowIterator) Close() error {
	rowsErr := x.rows.Close()
	if err := x.file.Close(); err != nil {
		return err
	}
	return rowsErr
}
