// Command ddsdemo publishes synthetic sensor readings through the in-process
// DDS core and prints what the subscriber receives.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/dds/core/logger"
)

var (
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "ddsdemo",
	Short: "In-process DDS publish/subscribe demo",
	Long: `ddsdemo wires a domain participant, a SensorTopic writer and a reader,
publishes synthetic sensor readings and prints every sample the reader takes.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "json", false, "log in JSON instead of text")

	rootCmd.AddCommand(newSensorCmd())
	rootCmd.AddCommand(newProfilesCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from the persistent flags. Logs go to
// stderr so sample output on stdout stays clean.
func newLogger() (*slog.Logger, error) {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(slog.String("service", "ddsdemo")),
	}
	if logJSON {
		opts = append(opts, logger.WithJSONFormatter())
	}
	return logger.New(opts...), nil
}
