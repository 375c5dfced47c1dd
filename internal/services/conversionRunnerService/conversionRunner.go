package conversionrunnerservice

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/RobsonDevCode/depcheckdocx/internal/configuration"
	"github.com/RobsonDevCode/depcheckdocx/internal/extensions"
	"github.com/RobsonDevCode/depcheckdocx/internal/logging"
	"github.com/RobsonDevCode/depcheckdocx/internal/models"
	scannerService "github.com/RobsonDevCode/depcheckdocx/internal/scanner"
	reportconverterservice "github.com/RobsonDevCode/depcheckdocx/internal/services/reportConverterService"
	reportselectionservice "github.com/RobsonDevCode/depcheckdocx/internal/services/reportSelectionService"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
)

type ConversionRunnerService interface {
	Run(ctx context.Context) (models.RunSummary, error)
}

type ConversionRunner struct {
	scanner         scannerService.ReportScannerService
	converter       reportconverterservice.ReportConverterService
	selector        reportselectionservice.ReportSelectionService
	cb              *gobreaker.CircuitBreaker
	inputDirectory  string
	outputDirectory string
	workers         int
	logger          *slog.Logger
}

// NewConversionRunner wires a run over config.InputDirectory. selector may be nil,
// in which case every report found is converted.
func NewConversionRunner(config *configuration.Config,
	scanner scannerService.ReportScannerService,
	converter reportconverterservice.ReportConverterService,
	selector reportselectionservice.ReportSelectionService,
	logger *slog.Logger) *ConversionRunner {
	logger = logging.OrDefault(logger)

	maxWriteFailures := uint32(max(config.MaxWriteFailures, 1))
	cbSettings := gobreaker.Settings{
		Name:        "output-writer",
		MaxRequests: 1,
		Timeout:     24 * time.Hour, // stays open for the rest of the run
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.TotalFailures >= maxWriteFailures
		},
		// only failed writes count, a malformed report is that report's problem
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, models.ErrOutputWrite)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				logger.Error("Too many output documents could not be written, remaining reports will not be converted",
					slog.Int("max_write_failures", int(maxWriteFailures)))
			}
		},
	}

	return &ConversionRunner{
		scanner:         scanner,
		converter:       converter,
		selector:        selector,
		cb:              gobreaker.NewCircuitBreaker(cbSettings),
		inputDirectory:  config.InputDirectory,
		outputDirectory: config.OutputDirectory,
		workers:         max(config.Workers, 1),
		logger:          logger,
	}
}

// Run converts every report below the input directory. Per report failures are
// collected in the summary. The returned error is reserved for problems that stop
// the run before any conversion, such as a missing input directory.
func (r *ConversionRunner) Run(ctx context.Context) (models.RunSummary, error) {
	if err := r.ensureOutputDirectory(); err != nil {
		return models.RunSummary{}, err
	}

	reports, skipped, err := r.findReports(ctx)
	if err != nil {
		return models.RunSummary{Skipped: skipped}, err
	}

	if r.selector != nil && len(reports) > 0 {
		reports, err = r.selector.Select(reports)
		if err != nil {
			return models.RunSummary{Skipped: skipped}, err
		}
	}

	if len(reports) == 0 {
		r.logger.Info("No OWASP report files to convert", slog.String("input", r.inputDirectory))
		return models.RunSummary{Skipped: skipped}, nil
	}

	results := make(chan models.ConversionResult, r.workers)
	go r.convertAll(ctx, reports, results)

	summary := extensions.MapConversionResults(results)
	summary.Skipped = skipped

	return summary, nil
}

func (r *ConversionRunner) findReports(ctx context.Context) ([]models.ReportFile, []models.ReportFile, error) {
	var reports []models.ReportFile
	var skipped []models.ReportFile

	err := r.scanner.Walk(ctx, r.inputDirectory, func(report models.ReportFile) error {
		if !report.Suitable {
			r.logger.Warn("Skipping file, not an OWASP report", slog.String("file", report.Path))
			skipped = append(skipped, report)
			return nil
		}

		r.logger.Info("Found OWASP report file", slog.String("report", report.Path))
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}

	return reports, skipped, nil
}

func (r *ConversionRunner) ensureOutputDirectory() error {
	info, err := os.Stat(r.outputDirectory)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: output path %s is not a directory", models.ErrOutputWrite, r.outputDirectory)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: checking output directory %s: %w", models.ErrOutputWrite, r.outputDirectory, err)
	}

	r.logger.Info("Creating output directory", slog.String("output", r.outputDirectory))
	if err := os.MkdirAll(r.outputDirectory, 0755); err != nil {
		return fmt.Errorf("%w: creating output directory %s: %w", models.ErrOutputWrite, r.outputDirectory, err)
	}
	return nil
}

// convertAll sends one result per report and closes results once all are sent.
// With a single worker reports are converted in discovery order.
func (r *ConversionRunner) convertAll(ctx context.Context, reports []models.ReportFile, results chan<- models.ConversionResult) {
	defer close(results)

	if r.workers == 1 {
		for _, report := range reports {
			results <- r.convert(ctx, report)
		}
		return
	}

	var group errgroup.Group
	group.SetLimit(r.workers)
	for _, report := range reports {
		group.Go(func() error {
			results <- r.convert(ctx, report)
			return nil
		})
	}

	// conversions never fail the group, errors travel in the results
	_ = group.Wait()
}

func (r *ConversionRunner) convert(ctx context.Context, report models.ReportFile) models.ConversionResult {
	if err := ctx.Err(); err != nil {
		return models.ConversionResult{
			Report:     report,
			OutputPath: r.converter.OutputPath(report),
			Err:        fmt.Errorf("conversion has been cancelled, %w", err),
		}
	}

	var result models.ConversionResult
	_, err := r.cb.Execute(func() (interface{}, error) {
		var convertErr error
		result, convertErr = r.converter.Convert(ctx, report)
		return nil, convertErr
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return models.ConversionResult{
			Report:     report,
			OutputPath: r.converter.OutputPath(report),
			Err:        fmt.Errorf("%w: %s was not converted", models.ErrRunAborted, report.Path),
		}
	}

	result.Err = err
	if err != nil {
		r.logger.Error("Failed to convert report",
			slog.String("report", report.Path),
			slog.String("error", err.Error()))
		return result
	}

	r.logger.Info("Converted report",
		slog.String("report", report.Path),
		slog.String("output", result.OutputPath),
		slog.Int("rows", result.Rows))
	return result
}
