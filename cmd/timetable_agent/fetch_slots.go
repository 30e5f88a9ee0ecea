package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arjunmnair/aims-timetable/internal/config"
	"github.com/arjunmnair/aims-timetable/internal/pipeline"
)

var fetchSlotsCommand = &cobra.Command{
	Use:   "fetch-slots",
	Short: "Fetch slot assignments for every course in the input CSVs",
	Long: `Reads running-course ids from the course CSVs, queries the AIMS
timetable endpoint batch by batch, and writes the aggregated slot map to
slots.json and slots.csv.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values, which override environment variables.`,
	RunE: fetchSlotsCmd,
}

var (
	fetchConfigPath  string
	fetchCSVPaths    []string
	fetchStudentID   string
	fetchCookie      string
	fetchReferer     string
	fetchBatchSize   int
	fetchSleepMS     int
	fetchRetries     int
	fetchTimeoutS    int
	fetchOutJSON     string
	fetchOutCSV      string
	fetchDatabaseURL string
	fetchVerbose     bool
)

func init() {
	// Config file flag (processed first)
	fetchSlotsCommand.Flags().StringVar(&fetchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	fetchSlotsCommand.Flags().StringSliceVar(&fetchCSVPaths, "csv", nil, "Course CSV file (repeatable; defaults to courses*.csv in the current directory)")
	fetchSlotsCommand.Flags().StringVar(&fetchStudentID, "student-id", "", "AIMS student id (defaults to AIMS_STUDENT_ID env var)")
	fetchSlotsCommand.Flags().StringVar(&fetchCookie, "cookie", "", "AIMS session cookie header value (defaults to AIMS_COOKIE env var)")
	fetchSlotsCommand.Flags().StringVar(&fetchReferer, "referer", "", "Override the Referer header sent with each request")
	fetchSlotsCommand.Flags().IntVar(&fetchBatchSize, "batch-size", 0, "Running-course ids per request (default 20)")
	fetchSlotsCommand.Flags().IntVar(&fetchSleepMS, "sleep-ms", 0, "Delay between batches in milliseconds (default 200)")
	fetchSlotsCommand.Flags().IntVar(&fetchRetries, "retries", 0, "Extra attempts per failed batch (default 2)")
	fetchSlotsCommand.Flags().IntVar(&fetchTimeoutS, "timeout-s", 0, "Per-request timeout in seconds (default 30)")
	fetchSlotsCommand.Flags().StringVar(&fetchOutJSON, "out-json", "", "Slot map JSON output path (default slots.json)")
	fetchSlotsCommand.Flags().StringVar(&fetchOutCSV, "out-csv", "", "Slot map CSV output path (default slots.csv)")
	fetchSlotsCommand.Flags().StringVar(&fetchDatabaseURL, "db-url", "", "PostgreSQL connection URL for run artifacts (optional, defaults to DATABASE_URL env var)")
	fetchSlotsCommand.Flags().BoolVarP(&fetchVerbose, "verbose", "v", false, "Print the aggregated slot map after writing")

	rootCmd.AddCommand(fetchSlotsCommand)
}

func fetchSlotsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, fetchConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("csv") {
			cfg.CSVPaths = fetchCSVPaths
		}
		if cmd.Flags().Changed("student-id") {
			cfg.StudentID = fetchStudentID
		}
		if cmd.Flags().Changed("cookie") {
			cfg.Cookie = fetchCookie
		}
		if cmd.Flags().Changed("referer") {
			cfg.Referer = fetchReferer
		}
		if cmd.Flags().Changed("batch-size") {
			cfg.BatchSize = fetchBatchSize
		}
		if cmd.Flags().Changed("sleep-ms") {
			cfg.SleepMS = fetchSleepMS
		}
		if cmd.Flags().Changed("retries") {
			cfg.Retries = fetchRetries
		}
		if cmd.Flags().Changed("timeout-s") {
			cfg.TimeoutS = fetchTimeoutS
		}
		if cmd.Flags().Changed("out-json") {
			cfg.OutJSON = fetchOutJSON
		}
		if cmd.Flags().Changed("out-csv") {
			cfg.OutCSV = fetchOutCSV
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DatabaseURL = fetchDatabaseURL
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = fetchVerbose
		}
	})
	if err != nil {
		return err
	}

	return pipeline.RunFetch(context.Background(), pipeline.FetchOptions{Config: cfg})
}

// resolveConfig builds the effective configuration: it loads the config
// file when given, applies environment variables over it, lets the caller
// apply explicitly set flags on top, then fills remaining gaps with the
// built-in defaults and validates the result.
func resolveConfig(cmd *cobra.Command, configPath string, applyFlags func(*config.Config)) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if cmd.Flags().Changed("verbose") || cfg.Verbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
		}
	}

	// Environment values sit between the config file and explicit flags.
	env := config.FromEnv()
	if env.StudentID != "" {
		cfg.StudentID = env.StudentID
	}
	if env.Cookie != "" {
		cfg.Cookie = env.Cookie
	}
	if env.DatabaseURL != "" {
		cfg.DatabaseURL = env.DatabaseURL
	}

	applyFlags(&cfg)

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
