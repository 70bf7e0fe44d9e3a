package contract

import (
	"fmt"
	"strings"

	"github.com/covlens/covlens/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	DefaultTopLimit  = 20
	MaxTopLimit      = 1000
)

// DefaultProfileName is the profile read when no positional argument is given.
const DefaultProfileName = "cover.out"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	ProfilePath    string
	Threshold      float64
	UncoveredLimit int
	LowExecLimit   int
	PathFilter     string
	Excludes       []string
	SaveRaw        string

	TopLimit   int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	GenericsDir   string
	GenericsTest  bool
	GenericsInput string
	GenericsSave  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProfilePathStr string

	// This is set manually from positional args, so no tag
	GenericsDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Threshold        float64 `mapstructure:"threshold"`
	UncoveredLimit   int     `mapstructure:"uncovered-limit"`
	LowExecLimit     int     `mapstructure:"lowexec-limit"`
	Filter           string  `mapstructure:"filter"`
	Exclude          string  `mapstructure:"exclude"`
	SaveRaw          string  `mapstructure:"save-raw"`
	Limit            int     `mapstructure:"limit"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`

	// --- Fields from genericsCmd.Flags() ---
	Test  bool   `mapstructure:"test"`
	Input string `mapstructure:"input"`
	Save  string `mapstructure:"save"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateReportInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	processGenericsInputs(cfg, input)
	return nil
}

// validateSimpleInputs processes and validates shared output-related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.PathFilter = input.Filter
	cfg.SaveRaw = input.SaveRaw
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. TopLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxTopLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxTopLimit, input.Limit)
	}
	cfg.TopLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 3. Excludes Processing ---
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// validateReportInputs processes the coverage-report specific fields.
func validateReportInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Threshold <= 0 || input.Threshold > 100 {
		return fmt.Errorf("threshold must be within (0, 100] (received %.2f)", input.Threshold)
	}
	cfg.Threshold = input.Threshold

	if input.UncoveredLimit < 0 {
		return fmt.Errorf("uncovered-limit cannot be negative (received %d)", input.UncoveredLimit)
	}
	cfg.UncoveredLimit = input.UncoveredLimit

	if input.LowExecLimit < 0 {
		return fmt.Errorf("lowexec-limit cannot be negative (received %d)", input.LowExecLimit)
	}
	cfg.LowExecLimit = input.LowExecLimit

	cfg.ProfilePath = strings.TrimSpace(input.ProfilePathStr)
	if cfg.ProfilePath == "" {
		cfg.ProfilePath = DefaultProfileName
	}

	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// processGenericsInputs transfers the generics command fields.
func processGenericsInputs(cfg *Config, input *ConfigRawInput) {
	cfg.GenericsDir = strings.TrimSpace(input.GenericsDirStr)
	if cfg.GenericsDir == "" {
		cfg.GenericsDir = "."
	}
	cfg.GenericsTest = input.Test
	cfg.GenericsInput = strings.TrimSpace(input.Input)
	cfg.GenericsSave = strings.TrimSpace(input.Save)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
