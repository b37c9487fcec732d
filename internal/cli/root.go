package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dshills/abifredact/internal/config"
	"github.com/spf13/cobra"
)

const (
	toolName = "abifredact"
	version  = "0.1.0"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitUnredacted   = 1
	ExitUsageError   = 2
	ExitFileErrors   = 3
	ExitRuntimeError = 4
)

// Global flags
var (
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   toolName,
	Short: "Strip accession numbers from ABIF sequencing files",
	Long: `abifredact copies a tree of sequencing results into a new output tree,
removing accession numbers from the names and contents of ABIF (.ab1) files.
Other files are copied unchanged.

Only the first file-name segment matching the pattern is removed, and the
number is blanked in the first newline-delimited chunk of the file that
contains it. The length byte in front of length-prefixed strings is kept.
The output tree mirrors one parent directory level of each file.`,
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print abifredact version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "%s version %s\n", toolName, version)
	},
}

// loadConfig reads the effective configuration for a command.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig, buildOverrides())
}

// newLogger returns the diagnostic logger selected by --verbose and --quiet.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case flagQuiet:
		level = slog.LevelError
	case flagVerbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file path (default: user config dir)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every file and list all report items")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
