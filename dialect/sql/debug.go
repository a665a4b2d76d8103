package sql

import (
	"context"
	"log/slog"

	"github.com/syssam/veloxjoin/dialect"
)

// DebugDriver wraps a Driver with debug logging of every statement.
type DebugDriver struct {
	*Driver
	log *slog.Logger
}

// DebugOption configures the DebugDriver.
type DebugOption func(*DebugDriver)

// DebugWithLogger sets the logger statements are written to.
func DebugWithLogger(l *slog.Logger) DebugOption {
	return func(d *DebugDriver) {
		d.log = l
	}
}

// NewDebugDriver wraps a Driver with debug logging. Statements are logged
// at debug level to slog.Default unless DebugWithLogger is given.
//
//	drv, _ := sql.Open(dialect.SQLite, "file:app.db")
//	debug := sql.NewDebugDriver(drv, sql.DebugWithLogger(logger))
func NewDebugDriver(drv *Driver, opts ...DebugOption) *DebugDriver {
	d := &DebugDriver{Driver: drv, log: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Query executes a query and logs it.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.log.DebugContext(ctx, "query", "sql", query, "args", args)
	return d.Driver.Query(ctx, query, args, v)
}

var _ dialect.Driver = (*DebugDriver)(nil)
