package join

import (
	"log/slog"

	"github.com/syssam/veloxjoin/dialect/sql"
)

// Option configures a single join call.
type Option func(*config)

type config struct {
	kind           string
	baseColumn     string
	targetColumn   string
	alias          string
	aliasRelations bool
}

func newConfig(opts []Option) config {
	cfg := config{kind: sql.InnerJoin}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Kind sets the join type, e.g. sql.LeftJoin. Any string is passed through
// to the SQL builder. The default is an inner join.
func Kind(kind string) Option {
	return func(c *config) {
		c.kind = kind
	}
}

// BaseColumn overrides the column of the base side of the ON condition.
func BaseColumn(column string) Option {
	return func(c *config) {
		c.baseColumn = column
	}
}

// TargetColumn overrides the column of the joined side of the ON condition.
func TargetColumn(column string) Option {
	return func(c *config) {
		c.targetColumn = column
	}
}

// As joins the target under an alias. With JoinRelation the alias applies to
// the last path segment.
func As(alias string) Option {
	return func(c *config) {
		c.alias = alias
	}
}

// AliasAsRelations makes JoinRelation alias every joined table with the
// relation name that reached it.
func AliasAsRelations() Option {
	return func(c *config) {
		c.aliasRelations = true
	}
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithLogger sets the logger emitted joins are reported to at debug level.
func WithLogger(l *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.log = l
	}
}
