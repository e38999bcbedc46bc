package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/olekit/internal/logger"
	"github.com/joshuapare/olekit/pkg/olekit"
	"github.com/joshuapare/olekit/pkg/types"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	tolerant  bool
	strict    bool
	rawStream bool
	logJSON   bool
	logDir    string

	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "olectl",
	Short: "Inspect OLE property sets of compound documents",
	Long: `olectl reads the property set streams of compound documents (legacy
Office files, MSI packages, thumbnails databases) and prints their summary,
custom properties and diagnostics. With --raw, the input is a property set
stream that was already extracted from its document.`,
	Version:            "0.1.0",
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeLog() },
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		BoolVarP(&tolerant, "tolerant", "t", false, "Skip properties whose value runs past the stream instead of failing")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Apply strict count and size limits")
	rootCmd.PersistentFlags().BoolVar(&rawStream, "raw", false, "Treat the input as a raw property set stream")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write log records as JSON")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write logs to a dated file in this directory")
}

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, ee.msg)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	closeFn, err := logger.Init(logger.Options{
		Enabled: verbose || logDir != "",
		Level:   level,
		JSON:    logJSON,
		LogDir:  logDir,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	closeLog = closeFn
	return nil
}

// decodeOptions builds decoder options from the global flags.
func decodeOptions(collectDiagnostics bool) *olekit.Options {
	opts := &olekit.Options{
		Logger:             logger.L,
		Tolerant:           tolerant,
		CollectDiagnostics: collectDiagnostics,
	}
	if strict {
		limits := types.StrictLimits()
		opts.Limits = &limits
	}
	return opts
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
