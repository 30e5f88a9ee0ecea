// Package main provides the entry point for the AIMS timetable CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "timetable_agent",
	Short: "AIMS course timetable fetcher and merger",
	Long:  "timetable_agent fetches per-course slot assignments from the AIMS course registration portal, aggregates them into slots.json/slots.csv, and merges them with local course metadata into a combined timetable CSV.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
