package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tablewriterservice "github.com/RobsonDevCode/depcheckdocx/internal/cmdLineWriters/tablewriter"
	"github.com/RobsonDevCode/depcheckdocx/internal/configuration"
	"github.com/RobsonDevCode/depcheckdocx/internal/constants/exitCodes"
	"github.com/RobsonDevCode/depcheckdocx/internal/logging"
	"github.com/RobsonDevCode/depcheckdocx/internal/models"
	scannerService "github.com/RobsonDevCode/depcheckdocx/internal/scanner"
	conversionrunnerservice "github.com/RobsonDevCode/depcheckdocx/internal/services/conversionRunnerService"
	documentexportservice "github.com/RobsonDevCode/depcheckdocx/internal/services/documentExportService"
	reportconverterservice "github.com/RobsonDevCode/depcheckdocx/internal/services/reportConverterService"
	reportreaderservice "github.com/RobsonDevCode/depcheckdocx/internal/services/reportReaderService"
	reportselectionservice "github.com/RobsonDevCode/depcheckdocx/internal/services/reportSelectionService"
	severityresolverservice "github.com/RobsonDevCode/depcheckdocx/internal/services/severityResolverService"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runConvert(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := bindSettings(cmd)
	if err != nil {
		return &ExitError{Code: exitCodes.ConfigError, Err: err}
	}

	config, err := loadConfig(settings)
	if err != nil {
		return &ExitError{Code: exitCodes.ConfigError, Err: err}
	}

	logger, err := logging.New(cmd.OutOrStdout(), config.LogLevel)
	if err != nil {
		return &ExitError{Code: exitCodes.ConfigError, Err: err}
	}
	logger, _ = logging.WithRunID(logger)

	logger.Info("Starting OWASP report conversion",
		slog.String("input", config.InputDirectory),
		slog.String("output", config.OutputDirectory),
		slog.Int("workers", config.Workers))

	runner := newConversionRunner(config, settings.GetBool(InteractiveFlag), logger)
	summary, err := runner.Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInputRootMissing):
			return &ExitError{Code: exitCodes.ConfigError, Err: err}
		case errors.Is(err, models.ErrOutputWrite):
			return &ExitError{Code: exitCodes.OutputFailure, Err: err}
		default:
			return &ExitError{Code: exitCodes.ReportsFailed, Err: err}
		}
	}

	tablewriterservice.DisplayRunSummary(cmd.OutOrStdout(), summary)

	switch {
	case summary.HasOutputFailures():
		return &ExitError{Code: exitCodes.OutputFailure}
	case summary.HasFailures():
		return &ExitError{Code: exitCodes.ReportsFailed}
	}

	return nil
}

// bindSettings layers DEPCHECKDOCX_* environment variables over the command flags.
func bindSettings(cmd *cobra.Command) (*viper.Viper, error) {
	settings := viper.New()
	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	if err := settings.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("error binding flags, %w", err)
	}

	return settings, nil
}

// loadConfig reads the configuration file and overrides it with every flag the
// user changed or environment variable that is set.
func loadConfig(settings *viper.Viper) (*configuration.Config, error) {
	config, err := configuration.Load(settings.GetString(ConfigFlag))
	if err != nil {
		return nil, err
	}

	if settings.IsSet(InputFlag) {
		config.InputDirectory = settings.GetString(InputFlag)
	}
	if settings.IsSet(OutputFlag) {
		config.OutputDirectory = settings.GetString(OutputFlag)
	}
	if settings.IsSet(WorkersFlag) {
		config.Workers = settings.GetInt(WorkersFlag)
	}
	if settings.IsSet(RowPolicyFlag) {
		config.RowPolicy = settings.GetString(RowPolicyFlag)
	}
	if settings.IsSet(LogLevelFlag) {
		config.LogLevel = settings.GetString(LogLevelFlag)
	}

	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func newConversionRunner(config *configuration.Config, interactive bool, logger *slog.Logger) *conversionrunnerservice.ConversionRunner {
	converter := reportconverterservice.NewReportConverter(config,
		reportreaderservice.NewReportReader(),
		severityresolverservice.NewSeverityResolver(logger),
		documentexportservice.NewDocumentExporter(),
		logger)
	scanner := scannerService.NewReportScanner(config.ReportExtensions)

	if interactive {
		return conversionrunnerservice.NewConversionRunner(config, scanner, converter, reportselectionservice.NewReportSelection(), logger)
	}
	return conversionrunnerservice.NewConversionRunner(config, scanner, converter, nil, logger)
}
