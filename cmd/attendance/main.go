// Package main provides the CLI entry point for attendance-go.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile      string
	baseURL      string
	manifestPath string
	cacheDriver  string
	cacheDSN     string
	noCache      bool
	logLevel     string
	pretty       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "attendance",
		Short: "Look up student attendance from published sheets",
		Long: `attendance downloads the published xlsx attendance sheets, indexes them
by course and roll number, and answers roll number lookups.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "Environment file to load")
	flags.StringVar(&baseURL, "base-url", "", "Base URL of the attendance files (overrides ATTENDANCE_BASE_URL)")
	flags.StringVar(&manifestPath, "manifest", "", "JSON manifest of files to load (overrides ATTENDANCE_MANIFEST)")
	flags.StringVar(&cacheDriver, "cache-driver", "", "Cache driver: sqlite3 or postgres")
	flags.StringVar(&cacheDSN, "cache-dsn", "", "Cache data source name")
	flags.BoolVar(&noCache, "no-cache", false, "Do not read or write the cache")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newLoadCmd(),
		newCheckCmd(),
		newParseCmd(),
		newCoursesCmd(),
		newServeCmd(),
		newTUICmd(),
		newBotCmd(),
		newTokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
