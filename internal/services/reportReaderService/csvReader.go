package reportreaderservice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RobsonDevCode/depcheckdocx/internal/models"
)

const utf8BOM = "\ufeff"

type csvRowIterator struct {
	path   string
	file   *os.File
	reader *csv.Reader
	header []string
}

func openCsvReport(path string) (*csvRowIterator, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrUnreadableReport, path, err)
	}

	reader := csv.NewReader(file)
	// short rows are allowed, their trailing fields count as absent
	reader.FieldsPerRecord = -1
	// a stray quote inside an unquoted description is kept as written
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, &models.MalformedReportError{Path: path, Err: fmt.Errorf("error reading header: %w", err)}
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	return &csvRowIterator{
		path:   path,
		file:   file,
		reader: reader,
		header: header,
	}, nil
}

func (c *csvRowIterator) Header() []string {
	return c.header
}

func (c *csvRowIterator) Next() (models.VulnerabilityRow, error) {
	record, err := c.reader.Read()
	if errors.Is(err, io.EOF) {
		return models.VulnerabilityRow{}, io.EOF
	}
	if err != nil {
		return models.VulnerabilityRow{}, &models.MalformedReportError{Path: c.path, Err: err}
	}

	line, _ := c.reader.FieldPos(0)
	return models.NewVulnerabilityRow(line, c.header, record), nil
}

func (c *csvRowIterator) Close() error {
	return c.file.Close()
}
