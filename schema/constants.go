package schema

// Custom string types for type safety.
type (
	// Model selects how trend, seasonal, and residual components combine.
	Model string

	// Severity ranks how far an observation deviates from expectation.
	Severity string

	// AlertKind identifies which detection rule produced an alert.
	AlertKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All decomposition models supported.
const (
	Additive       Model = "additive" // default
	Multiplicative Model = "multiplicative"
)

// All alert severities supported, from least to most severe.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// All alert kinds supported.
const (
	ResidualOutlier   AlertKind = "residual_outlier"
	ForecastDeviation AlertKind = "forecast_deviation"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Default sensitivity thresholds for the residual outlier rule.
const (
	DefaultWarningZ  = 2.0
	DefaultCriticalZ = 3.0
)

// ValidModels lists all valid decomposition models.
var ValidModels = map[Model]struct{}{
	Additive:       {},
	Multiplicative: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// severityRank orders severities for deterministic sorting.
var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityWarning:  1,
	SeverityCritical: 2,
}

// Rank returns the numeric rank of a severity; higher is more severe.
func (s Severity) Rank() int {
	return severityRank[s]
}
