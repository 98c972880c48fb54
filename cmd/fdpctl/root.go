// Package main implements fdpctl, the command-line entry point for
// validating a system manifest, emitting its graph/schema artifacts, and
// running the MQTT dispatch loop for one app. Grounded on the teacher's
// cmd/cmd_root.go (GetRootCmd/Execute shape, persistent flags) and
// cmd/otto/main.go (log-level/log-format/log-output/log-file flags wired
// through logging.NewService before any subcommand runs).
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fdp/logging"
)

var (
	cmdOutput  io.Writer
	configPath string

	logLevel  string
	logFormat string
	logOutput string
	logFile   string

	logService *logging.Service
)

var rootCmd = &cobra.Command{
	Use:   "fdpctl",
	Short: "fdpctl validates and runs apps in a message-fabric system",
	Long: `fdpctl loads a system manifest, validates its topology, and can emit
a Graphviz graph, bundled JSON-Schema documents, or connect to the broker
and run one app's dispatch loop.`,
	PersistentPreRunE: setupLogging,
}

func init() {
	cmdOutput = os.Stdout
	rootCmd.SetOut(cmdOutput)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "fdpctl.yaml", "path to the fdpctl configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.DefaultFormat, "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", logging.DefaultOutput, "Log output (stdout, stderr, file, string)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (required when log-output=file)")

	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging builds the logging.Service every subcommand shares from the
// persistent log-* flags, the same shape the teacher's runServe builds
// logging.Config and calls logging.NewService before serving.
func setupLogging(cmd *cobra.Command, args []string) error {
	svc, err := logging.NewService(logging.Config{
		Level:    logLevel,
		Format:   logFormat,
		Output:   logOutput,
		FilePath: logFile,
	})
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	logService = svc
	return nil
}

// appLogger returns the *slog.Logger built from the current logging
// configuration, for subcommands to pass explicitly into facade.New and
// the dispatcher rather than relying on slog.Default().
func appLogger() *slog.Logger {
	if logService == nil {
		return slog.Default()
	}
	return logService.Logger()
}

// GetRootCmd returns fdpctl's root command.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute runs the root command, logging and exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func main() {
	Execute()
}
