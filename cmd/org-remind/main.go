package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	debug      bool
	rootCmd    = &cobra.Command{
		Use:   "org-remind",
		Short: "org-remind - Deadline scanner for org files",
		Long: `org-remind scans a directory of org files for scheduled TODO items.
It extracts every line carrying the task marker and a DEADLINE or
SCHEDULED keyword, parses the embedded timestamp, and presents the
results as a list, an agenda, a TUI, or a JSON API.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log skipped files and lines")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("org-remind " + version)
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
