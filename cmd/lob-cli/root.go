package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var globalFlags struct {
	csvPath  string
	tier     string
	logLevel string
}

var rootCmd = &cobra.Command{
	Use:   "lob-cli",
	Short: "Generate customer support LOB summaries from a knowledge sheet",
	Long:  "lob-cli classifies customer statements against a CSV or XLSX knowledge base\nand renders the Line of Business summary used by support agents.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globalFlags.csvPath, "csv", "", "Knowledge sheet path or URL (default CSV_FILE_PATH)")
	pf.StringVar(&globalFlags.tier, "default-tier", "", "Tier used when a request names none (default KB_DEFAULT_TIER)")
	pf.StringVar(&globalFlags.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(issueTypesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
