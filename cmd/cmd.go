// Package cmd defines the command-line interface for tradescope.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tradescope/internal/contract"
	"tradescope/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(decomposeCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeRunsCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-url", "", "URL of a CSV dataset, used when no file argument is given")
	rootCmd.PersistentFlags().String("years", "", "Comma-separated list of years to keep (e.g. 2021,2022)")
	rootCmd.PersistentFlags().String("months", "", "Comma-separated list of months to keep (numbers or names)")
	rootCmd.PersistentFlags().String("partners", "", "Comma-separated list of partner countries to keep")
	rootCmd.PersistentFlags().Int("period", contract.DefaultPeriod, "Seasonal cycle length in months")
	rootCmd.PersistentFlags().Int("horizon", contract.DefaultHorizon, "Number of months to forecast ahead")
	rootCmd.PersistentFlags().Float64("confidence", contract.DefaultConfidence, "Forecast confidence level, exclusive between 0 and 1")
	rootCmd.PersistentFlags().String("model", string(schema.Additive), "Decomposition model: additive or multiplicative")
	rootCmd.PersistentFlags().Float64("warning-z", schema.DefaultWarningZ, "Residual z-score threshold for warning alerts")
	rootCmd.PersistentFlags().Float64("critical-z", schema.DefaultCriticalZ, "Residual z-score threshold for critical alerts")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of chartCmd to Viper
	chartCmd.Flags().String("chart", "decomposition", "Chart to render: decomposition or forecast")
	if err := viper.BindPFlags(chartCmd.Flags()); err != nil {
		contract.LogFatal("Error binding chart flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
