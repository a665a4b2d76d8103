package dialect

import "context"

// Dialect names understood by the SQL builder and the drivers
// registered by the veloxjoin command.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Known reports whether name is one of the supported dialects.
// The empty name selects ANSI quoting and is also accepted.
func Known(name string) bool {
	switch name {
	case "", MySQL, SQLite, Postgres:
		return true
	}
	return false
}

// Querier runs the compiled SELECT statements.
type Querier interface {
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v. For SQL drivers, it is *dialect/sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is a Querier bound to one database connection pool.
type Driver interface {
	Querier
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}
