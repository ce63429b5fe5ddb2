// Package contract has the validated runtime configuration and the shared
// helpers that every command and output layer relies on.
package contract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"tradescope/schema"
)

// Default values for configuration.
const (
	DefaultPeriod      = 12
	DefaultHorizon     = 12
	DefaultConfidence  = 0.95
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	MaxHorizon         = 120
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the pipeline.
// This struct remains the "final, validated" config.
type Config struct {
	DataFile string
	DataURL  string

	Years    []int
	Months   []time.Month
	Partners []string

	Period      int
	Horizon     int
	Confidence  float64
	Model       schema.Model
	Sensitivity schema.Sensitivity

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	DataURL        string `mapstructure:"data-url"`
	Years          string `mapstructure:"years"`
	Months         string `mapstructure:"months"`
	Partners       string `mapstructure:"partners"`
	Period         int    `mapstructure:"period"`
	Model          string `mapstructure:"model"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from forecast/run command flags ---
	Horizon    int     `mapstructure:"horizon"`
	Confidence float64 `mapstructure:"confidence"`

	// --- Fields from alerts/run command flags ---
	WarningZ  float64 `mapstructure:"warning-z"`
	CriticalZ float64 `mapstructure:"critical-z"`
}

// DataSource returns the configured dataset locations, file first.
func (c *Config) DataSource() (file, url string) {
	return c.DataFile, c.DataURL
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Years != nil {
		clone.Years = make([]int, len(c.Years))
		copy(clone.Years, c.Years)
	}
	if c.Months != nil {
		clone.Months = make([]time.Month, len(c.Months))
		copy(clone.Months, c.Months)
	}
	if c.Partners != nil {
		clone.Partners = make([]string, len(c.Partners))
		copy(clone.Partners, c.Partners)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAnalysisParams(cfg, input); err != nil {
		return err
	}
	if err := processFilters(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
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

// validateSimpleInputs processes and validates all non-analysis fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.DataFile = input.DataFileStr
	cfg.DataURL = strings.TrimSpace(input.DataURL)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 3. Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// processAnalysisParams validates the decomposition, forecast, and alert
// parameters. These mirror the pipeline's own checks so bad values fail fast
// at the flag boundary with a friendlier message.
func processAnalysisParams(cfg *Config, input *ConfigRawInput) error {
	if input.Period < 1 {
		return fmt.Errorf("period must be at least 1 (received %d)", input.Period)
	}
	cfg.Period = input.Period

	cfg.Model = schema.Model(strings.ToLower(input.Model))
	if _, ok := schema.ValidModels[cfg.Model]; !ok {
		return fmt.Errorf("invalid model '%s'. must be additive, multiplicative", input.Model)
	}

	if input.Horizon < 1 || input.Horizon > MaxHorizon {
		return fmt.Errorf("horizon must be between 1 and %d (received %d)", MaxHorizon, input.Horizon)
	}
	cfg.Horizon = input.Horizon

	if input.Confidence <= 0 || input.Confidence >= 1 {
		return fmt.Errorf("confidence must be between 0 and 1 exclusive (received %g)", input.Confidence)
	}
	cfg.Confidence = input.Confidence

	if input.WarningZ <= 0 || input.CriticalZ <= input.WarningZ {
		return fmt.Errorf("sensitivity thresholds must satisfy 0 < warning-z < critical-z (received %g, %g)",
			input.WarningZ, input.CriticalZ)
	}
	cfg.Sensitivity = schema.Sensitivity{WarningZ: input.WarningZ, CriticalZ: input.CriticalZ}

	return nil
}

// processFilters parses the comma-separated filter flags.
func processFilters(cfg *Config, input *ConfigRawInput) error {
	if input.Years != "" {
		for part := range strings.SplitSeq(input.Years, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			year, err := strconv.Atoi(part)
			if err != nil || year < 1900 || year > 2200 {
				return fmt.Errorf("invalid year '%s' in --years", part)
			}
			cfg.Years = append(cfg.Years, year)
		}
		sort.Ints(cfg.Years)
	}

	if input.Months != "" {
		for part := range strings.SplitSeq(input.Months, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			month, ok := schema.ParseMonth(part)
			if !ok {
				return fmt.Errorf("invalid month '%s' in --months", part)
			}
			cfg.Months = append(cfg.Months, month)
		}
		sort.Slice(cfg.Months, func(i, j int) bool { return cfg.Months[i] < cfg.Months[j] })
	}

	if input.Partners != "" {
		for part := range strings.SplitSeq(input.Partners, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				cfg.Partners = append(cfg.Partners, part)
			}
		}
	}

	return nil
}
