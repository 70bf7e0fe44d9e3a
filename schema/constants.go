package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Report defaults shared between flag registration and validation.
const (
	// DefaultThreshold is the coverage percentage below which a file is
	// reported as needing attention.
	DefaultThreshold = 95.0

	// DefaultUncoveredLimit caps how many compressed uncovered-line range
	// tokens are rendered per file.
	DefaultUncoveredLimit = 20

	// DefaultLowExecLimit caps how many compressed low-execution range
	// tokens are rendered per file.
	DefaultLowExecLimit = 10

	// RangeEllipsis marks a truncated range list.
	RangeEllipsis = "..."
)

// HighInstanceThreshold flags generic functions instantiated often enough
// to be a likely compiler memory problem.
const HighInstanceThreshold = 50

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
