package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/RobsonDevCode/depcheckdocx/internal/configuration"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	envPrefix = "DEPCHECKDOCX"

	ConfigFlag      = "config"
	InputFlag       = "input"
	OutputFlag      = "output"
	WorkersFlag     = "workers"
	RowPolicyFlag   = "row-policy"
	LogLevelFlag    = "log-level"
	InteractiveFlag = "interactive"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "depcheckdocx",
		Short: "convert OWASP Dependency-Check CSV reports into Word documents",
		Long: `convert OWASP Dependency-Check CSV reports into Word documents.

Every report found below the input directory is written to the output
directory as <report name>.docx, one table row per vulnerability.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	rootCmd.PersistentFlags().StringP(ConfigFlag, "c", configuration.FilePath, "Path to the configuration file (optional)")

	rootCmd.Flags().StringP(InputFlag, "i", configuration.DefaultInputDirectory, "Directory searched recursively for OWASP reports")
	rootCmd.Flags().StringP(OutputFlag, "o", configuration.DefaultOutputDirectory, "Directory the Word documents are written to")
	rootCmd.Flags().IntP(WorkersFlag, "w", 1, "Number of reports converted at the same time")
	rootCmd.Flags().String(RowPolicyFlag, "", "What to do with a row missing a field: fail-report or skip-row")
	rootCmd.Flags().String(LogLevelFlag, "", "Log level: debug, info, warn or error")
	rootCmd.Flags().Bool(InteractiveFlag, false, "Pick the reports to convert from a list")

	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command line with args and returns the process exit status.
func Execute(ctx context.Context, args []string, out io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	err := rootCmd.ExecuteContext(ctx)

	var exitErr *ExitError
	if err != nil && (!errors.As(err, &exitErr) || exitErr.Err != nil) {
		fmt.Fprintf(out, "%s\n", color.RedString("error: %s", err.Error()))
	}

	return exitCode(err)
}
