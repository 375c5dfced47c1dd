package reportconverterservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/RobsonDevCode/depcheckdocx/internal/configuration"
	"github.com/RobsonDevCode/depcheckdocx/internal/constants/rowPolicies"
	"github.com/RobsonDevCode/depcheckdocx/internal/constants/tableHeaders"
	"github.com/RobsonDevCode/depcheckdocx/internal/logging"
	"github.com/RobsonDevCode/depcheckdocx/internal/models"
	documentexportservice "github.com/RobsonDevCode/depcheckdocx/internal/services/documentExportService"
	reportreaderservice "github.com/RobsonDevCode/depcheckdocx/internal/services/reportReaderService"
	severityresolverservice "github.com/RobsonDevCode/depcheckdocx/internal/services/severityResolverService"
)

type ReportConverterService interface {
	Convert(ctx context.Context, report models.ReportFile) (models.ConversionResult, error)
	OutputPath(report models.ReportFile) string
}

type ReportConverter struct {
	reader          reportreaderservice.ReportReaderService
	resolver        severityresolverservice.SeverityResolverService
	exporter        documentexportservice.DocumentExportService
	outputDirectory string
	outputExtension string
	rowPolicy       string
	logger          *slog.Logger
}

func NewReportConverter(config *configuration.Config,
	reader reportreaderservice.ReportReaderService,
	resolver severityresolverservice.SeverityResolverService,
	exporter documentexportservice.DocumentExportService,
	logger *slog.Logger) *ReportConverter {
	return &ReportConverter{
		reader:          reader,
		resolver:        resolver,
		exporter:        exporter,
		outputDirectory: config.OutputDirectory,
		outputExtension: config.OutputExtension,
		rowPolicy:       config.RowPolicy,
		logger:          logging.OrDefault(logger),
	}
}

// OutputPath is derived from the report being converted only. Reports sharing a
// base name in different directories map to the same output file.
func (c *ReportConverter) OutputPath(report models.ReportFile) string {
	return filepath.Join(c.outputDirectory, report.BaseName()+c.outputExtension)
}

func (c *ReportConverter) Convert(ctx context.Context, report models.ReportFile) (models.ConversionResult, error) {
	result := models.ConversionResult{
		Report:     report,
		OutputPath: c.OutputPath(report),
	}
	logger := c.logger.With(slog.String("report", report.Path))

	logger.Info("Processing OWASP Dependency Check report file to docx")
	document, err := c.buildDocument(ctx, report, &result, logger)
	if err != nil {
		return result, err
	}

	result.Rows = len(document.Rows)
	logger.Info("Finished processing, saving document",
		slog.String("output", result.OutputPath),
		slog.Int("rows", result.Rows))

	if err := c.exporter.Export(document, result.OutputPath); err != nil {
		return result, err
	}

	return result, nil
}

func (c *ReportConverter) buildDocument(ctx context.Context, report models.ReportFile, result *models.ConversionResult, logger *slog.Logger) (models.OutputDocument, error) {
	iterator, err := c.reader.Open(report)
	if err != nil {
		return models.OutputDocument{}, err
	}
	defer func() {
		if err := iterator.Close(); err != nil {
			logger.Warn("error closing report file", slog.String("error", err.Error()))
		}
	}()

	// a report without any header line converts to an empty table
	if header := iterator.Header(); len(header) > 0 {
		if missing := reportreaderservice.MissingColumns(header); len(missing) > 0 {
			return models.OutputDocument{}, &models.MalformedReportError{Path: report.Path, Missing: missing}
		}
	}

	document := models.OutputDocument{
		Title:   strings.ToUpper(report.Path),
		Headers: tableHeaders.DocumentTableHeaders,
	}

	logger.Info("Reading vulnerabilities information from report file")
	for {
		if err := ctx.Err(); err != nil {
			return models.OutputDocument{}, fmt.Errorf("conversion has been cancelled, %w", err)
		}

		row, err := iterator.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.OutputDocument{}, err
		}

		tableRow, fellBack, err := c.mapRow(row)
		if err != nil {
			var missing *models.MissingFieldError
			if errors.As(err, &missing) && c.rowPolicy == rowPolicies.SkipRow {
				logger.Warn("Skipping row with missing field",
					slog.Int("line", missing.Line),
					slog.String("field", missing.Field))
				result.SkippedRows++
				continue
			}

			return models.OutputDocument{}, &models.MalformedReportError{Path: report.Path, Err: err}
		}

		if fellBack {
			result.Fallbacks++
		}
		document.Rows = append(document.Rows, tableRow)
	}

	return document, nil
}

func (c *ReportConverter) mapRow(row models.VulnerabilityRow) (models.TableRow, bool, error) {
	severity, fellBack, err := c.resolver.Resolve(row)
	if err != nil {
		return models.TableRow{}, fellBack, err
	}

	tableRow, err := models.MapTableRow(row, severity)
	if err != nil {
		return models.TableRow{}, fellBack, err
	}

	return tableRow, fellBack, nil
}
