// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// CLI flags and environment variables (flag > env > file).
type Config struct {
	// Inputs
	CSVPaths []string `json:"csv,omitempty"` // Course CSV files; defaults to courses*.csv in cwd

	// Caller identity and session
	StudentID string `json:"student_id,omitempty"` // AIMS studentId (env AIMS_STUDENT_ID)
	Cookie    string `json:"cookie,omitempty"`     // Session cookie header value (env AIMS_COOKIE)
	Referer   string `json:"referer,omitempty"`    // Alternate registration-form referer
	UserAgent string `json:"user_agent,omitempty"`
	BaseURL   string `json:"base_url,omitempty"` // Alternate timetable endpoint

	// Fetch behavior
	BatchSize int `json:"batch_size,omitempty" validate:"omitempty,gt=0"` // rcids per request
	SleepMS   int `json:"sleep_ms,omitempty" validate:"omitempty,gte=0"`  // politeness delay between batches
	Retries   int `json:"retries,omitempty" validate:"omitempty,gte=0"`   // extra attempts per batch
	TimeoutS  int `json:"timeout_s,omitempty" validate:"omitempty,gt=0"`  // per-request timeout seconds

	// Outputs
	OutJSON    string `json:"out_json,omitempty"`
	OutCSV     string `json:"out_csv,omitempty"`
	OutCourses string `json:"out_courses,omitempty"`

	// Behavior
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run artifacts
	Verbose     bool   `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		BatchSize:  20,
		SleepMS:    200,
		Retries:    2,
		TimeoutS:   30,
		OutJSON:    "slots.json",
		OutCSV:     "slots.csv",
		OutCourses: "courses_with_slots.csv",
	}
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks numeric ranges via struct tags. Required credentials are
// checked separately by RequireCredentials after merging all sources.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// RequireCredentials verifies that the caller identity and session
// credential are present. It is the final pre-flight check: nothing
// touches the network before it passes.
func (c *Config) RequireCredentials() error {
	if c.StudentID == "" {
		return fmt.Errorf("missing student id: pass --student-id or set AIMS_STUDENT_ID")
	}
	if c.Cookie == "" {
		return fmt.Errorf("missing cookie: pass --cookie or set AIMS_COOKIE")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags, and built-in defaults under both.
func (c Config) MergeWithDefaults(defaults Config) Config {
	result := c

	if len(result.CSVPaths) == 0 {
		result.CSVPaths = defaults.CSVPaths
	}
	if result.StudentID == "" {
		result.StudentID = defaults.StudentID
	}
	if result.Cookie == "" {
		result.Cookie = defaults.Cookie
	}
	if result.Referer == "" {
		result.Referer = defaults.Referer
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.SleepMS == 0 {
		result.SleepMS = defaults.SleepMS
	}
	if result.Retries == 0 {
		result.Retries = defaults.Retries
	}
	if result.TimeoutS == 0 {
		result.TimeoutS = defaults.TimeoutS
	}
	if result.OutJSON == "" {
		result.OutJSON = defaults.OutJSON
	}
	if result.OutCSV == "" {
		result.OutCSV = defaults.OutCSV
	}
	if result.OutCourses == "" {
		result.OutCourses = defaults.OutCourses
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// FromEnv returns a Config holding only the environment-provided values.
func FromEnv() Config {
	return Config{
		StudentID:   os.Getenv("AIMS_STUDENT_ID"),
		Cookie:      os.Getenv("AIMS_COOKIE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}
