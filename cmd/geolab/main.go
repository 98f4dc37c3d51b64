package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel = "warn"

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geolab",
		Short: "geolab computes soil index properties from laboratory readings",
		Long: `geolab computes soil index properties from laboratory readings.

It reports the liquid limit, plastic limit, plasticity index and Casagrande
soil type from Atterberg limit tests, and the specific gravity of soil solids
from pycnometer readings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", logLevel, "log level (trace, debug, info, warn, error, fatal, panic)")

	cmd.AddCommand(
		NewAtterbergCommand(),
		NewGravityCommand(),
		NewDensityCommand(),
	)
	return cmd
}
