package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradescope/schema"
)

// validInput returns raw inputs mirroring the root command's flag defaults.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DataFileStr:  "trade.csv",
		Period:       DefaultPeriod,
		Model:        string(schema.Additive),
		Limit:        DefaultResultLimit,
		Precision:    DefaultPrecision,
		Output:       string(schema.TextOut),
		StoreBackend: string(schema.SQLiteBackend),
		Emoji:        "yes",
		Color:        "yes",
		Horizon:      DefaultHorizon,
		Confidence:   DefaultConfidence,
		WarningZ:     schema.DefaultWarningZ,
		CriticalZ:    schema.DefaultCriticalZ,
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "trade.csv", cfg.DataFile)
	assert.Equal(t, 12, cfg.Period)
	assert.Equal(t, schema.Additive, cfg.Model)
	assert.Equal(t, 12, cfg.Horizon)
	assert.Equal(t, 0.95, cfg.Confidence)
	assert.Equal(t, schema.DefaultSensitivity(), cfg.Sensitivity)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero period", func(in *ConfigRawInput) { in.Period = 0 }},
		{"bad model", func(in *ConfigRawInput) { in.Model = "stl" }},
		{"zero horizon", func(in *ConfigRawInput) { in.Horizon = 0 }},
		{"huge horizon", func(in *ConfigRawInput) { in.Horizon = MaxHorizon + 1 }},
		{"confidence too high", func(in *ConfigRawInput) { in.Confidence = 1 }},
		{"confidence too low", func(in *ConfigRawInput) { in.Confidence = 0 }},
		{"inverted sensitivity", func(in *ConfigRawInput) { in.WarningZ = 3; in.CriticalZ = 2 }},
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"excess limit", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 5 }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad backend", func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{"bad emoji", func(in *ConfigRawInput) { in.Emoji = "maybe" }},
		{"bad year filter", func(in *ConfigRawInput) { in.Years = "2021,abc" }},
		{"bad month filter", func(in *ConfigRawInput) { in.Months = "Jan,Foo" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

func TestProcessFilters(t *testing.T) {
	in := validInput()
	in.Years = "2023, 2021 ,2022"
	in.Months = "Jan, 3, december"
	in.Partners = "Brazil, Viet Nam ,India"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, []int{2021, 2022, 2023}, cfg.Years)
	assert.Equal(t, []time.Month{time.January, time.March, time.December}, cfg.Months)
	assert.Equal(t, []string{"Brazil", "Viet Nam", "India"}, cfg.Partners)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty ok", schema.SQLiteBackend, "", false},
		{"none empty ok", schema.NoneBackend, "", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass/dbname", true},
		{"mysql ok", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/trades", false},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres ok", schema.PostgreSQLBackend, "host=localhost dbname=trades", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Years:    []int{2021, 2022},
		Months:   []time.Month{time.May},
		Partners: []string{"Brazil"},
	}
	clone := cfg.Clone()
	clone.Years[0] = 1999
	clone.Partners[0] = "India"
	assert.Equal(t, 2021, cfg.Years[0])
	assert.Equal(t, "Brazil", cfg.Partners[0])
}
