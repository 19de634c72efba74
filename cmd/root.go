// Package cmd provides the CLI commands for the ZenFlowz application.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	dataDirFlag string

	// Loaded configuration, available to every command.
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zenflowz",
	Short: "ZenFlowz - a calm cyclic focus timer",
	Long: `ZenFlowz is a terminal focus timer built around a work/rest cycle:
Zones (focus) earn Breaths (short rests), a run of Zones earns a Drift
(long rest), and enough Drifts complete the full program.

Run "zenflowz" with no arguments to open the timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Path to the data directory (default: ~/.zenflowz)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("ZenFlowz\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(wipeCmd)
}

// initConfig loads the configuration, falling back to defaults.
func initConfig() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		appConfig = config.DefaultConfig()
	}

	if dataDirFlag != "" {
		appConfig.Storage.DataDir = dataDirFlag
	}

	return nil
}
