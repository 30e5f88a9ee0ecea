package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/arjunmnair/aims-timetable/internal/config"
	"github.com/arjunmnair/aims-timetable/internal/pipeline"
)

var combineCommand = &cobra.Command{
	Use:   "combine",
	Short: "Merge course metadata with fetched slot assignments",
	Long: `Combines the course CSVs, the date-based segment heuristic, and a
previously fetched slot map (slots.json, falling back to slots.csv) into a
single courses_with_slots.csv. Runs entirely offline; when no slot map
exists the heuristic alone fills the segment column.`,
	RunE: combineCmd,
}

var (
	combineConfigPath  string
	combineCSVPaths    []string
	combineOutJSON     string
	combineOutCSV      string
	combineOut         string
	combineDatabaseURL string
	combineVerbose     bool
)

func init() {
	combineCommand.Flags().StringVar(&combineConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	combineCommand.Flags().StringSliceVar(&combineCSVPaths, "csv", nil, "Course CSV file (repeatable; defaults to courses*.csv in the current directory)")
	combineCommand.Flags().StringVar(&combineOutJSON, "slots-json", "", "Slot map JSON input path (default slots.json)")
	combineCommand.Flags().StringVar(&combineOutCSV, "slots-csv", "", "Slot map CSV fallback input path (default slots.csv)")
	combineCommand.Flags().StringVar(&combineOut, "out", "", "Combined CSV output path (default courses_with_slots.csv)")
	combineCommand.Flags().StringVar(&combineDatabaseURL, "db-url", "", "PostgreSQL connection URL for run artifacts (optional, defaults to DATABASE_URL env var)")
	combineCommand.Flags().BoolVarP(&combineVerbose, "verbose", "v", false, "Print the merged course table after writing")

	rootCmd.AddCommand(combineCommand)
}

func combineCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, combineConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("csv") {
			cfg.CSVPaths = combineCSVPaths
		}
		if cmd.Flags().Changed("slots-json") {
			cfg.OutJSON = combineOutJSON
		}
		if cmd.Flags().Changed("slots-csv") {
			cfg.OutCSV = combineOutCSV
		}
		if cmd.Flags().Changed("out") {
			cfg.OutCourses = combineOut
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DatabaseURL = combineDatabaseURL
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = combineVerbose
		}
	})
	if err != nil {
		return err
	}

	return pipeline.RunCombine(context.Background(), pipeline.CombineOptions{Config: cfg})
}
