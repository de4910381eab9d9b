// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	Input      string
	Format     string
	SaveReport bool
	ReportFile string
	ConfigFile string
}

var (
	// Log is the shared logger for commands. It is replaced by the
	// configured logger once the container is built.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the loaded configuration.
	AppConfig *config.Config

	// AppContainer holds the wired dependencies of the running command.
	AppContainer *container.Container

	// SharedFlags holds the persistent flags.
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bank-insights",
		Short: "Analyze bank card transaction exports.",
		Long: `bank-insights reads a bank transaction export (XLSX or CSV) and answers
questions about it: spending per category, P2P transfers, cashback,
round-up savings and period summaries.`,
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}
)

// Init registers the persistent flags.
func Init() {
	flags := Cmd.PersistentFlags()
	if flags.Lookup("input") != nil {
		return
	}
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Transaction file (.xlsx or .csv); defaults to input.file")
	flags.StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: json, yaml or table; defaults to output.format")
	flags.BoolVar(&SharedFlags.SaveReport, "save-report", false, "Also write the result to a JSON report file")
	flags.StringVar(&SharedFlags.ReportFile, "report-file", "", "Report file name (implies --save-report)")
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Configuration file")
}

func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// GetContainer returns the application container, or nil before
// initialization.
func GetContainer() *container.Container {
	return AppContainer
}

// GetLogger returns the configured logger.
func GetLogger() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return Log
}
