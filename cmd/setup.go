package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/RobsonDevCode/depcheckdocx/internal/configuration"
	"github.com/RobsonDevCode/depcheckdocx/internal/constants/exitCodes"
	"github.com/spf13/cobra"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "write a default configuration file and create the input directory",
		Long: `setup writes the default configuration to the path given by --config
and creates the default input directory, so reports can be dropped in and converted`,
		Args: cobra.NoArgs,
		RunE: runSetUp,
	}
}

func runSetUp(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString(ConfigFlag)
	out := cmd.OutOrStdout()

	fmt.Fprint(out, "\n Setting up depcheckdocx...")

	if err := configuration.WriteDefault(path); err != nil {
		return &ExitError{Code: exitCodes.ConfigError, Err: err}
	}

	if err := os.MkdirAll(configuration.DefaultInputDirectory, 0755); err != nil {
		return &ExitError{Code: exitCodes.ConfigError, Err: fmt.Errorf("error creating input directory, %w", err)}
	}

	fmt.Fprintf(out, "\n Configuration written to %s\n", color.CyanString(path))
	fmt.Fprint(out, color.GreenString(" Set up complete, place OWASP reports in %s and run depcheckdocx!\n", configuration.DefaultInputDirectory))
	return nil
}
