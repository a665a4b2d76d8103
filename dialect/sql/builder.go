package sql

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/syssam/veloxjoin/dialect"
)

// Querier wraps the basic Query method that is implemented
// by the different builders in this package.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Builder is the base query builder for the sql dsl. It writes the
// statement text, quotes identifiers for its dialect and numbers the
// placeholders of the collected arguments.
type Builder struct {
	sb      strings.Builder
	args    []any
	dialect string
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

// SetDialect sets the builder dialect. It's used for garnering dialect specific queries.
func (b *Builder) SetDialect(dialect string) {
	b.dialect = dialect
}

// WriteString appends s to the statement.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Ident appends the given string as a quoted identifier.
func (b *Builder) Ident(s string) *Builder {
	b.sb.WriteString(b.Quote(s))
	return b
}

// Quote quotes an identifier for the builder dialect. A table-qualified
// identifier ("t.c") is quoted part by part. The star selector and strings
// that already look like expressions or quoted identifiers are returned as is.
func (b *Builder) Quote(ident string) string {
	if ident == "*" || strings.ContainsAny(ident, "()` \"'") {
		return ident
	}
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		if p == "*" {
			continue
		}
		parts[i] = b.quotePart(p)
	}
	return strings.Join(parts, ".")
}

func (b *Builder) quotePart(s string) string {
	switch b.dialect {
	case dialect.MySQL:
		return "`" + strings.ReplaceAll(s, "`", "``") + "`"
	case dialect.Postgres:
		return pq.QuoteIdentifier(s)
	default:
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
}

// Arg appends an argument to the builder and writes its placeholder.
// Postgres placeholders are numbered across the whole statement.
func (b *Builder) Arg(a any) *Builder {
	b.args = append(b.args, a)
	if b.dialect == dialect.Postgres {
		b.sb.WriteString("$" + strconv.Itoa(len(b.args)))
	} else {
		b.sb.WriteString("?")
	}
	return b
}

// String returns the accumulated statement.
func (b *Builder) String() string {
	return b.sb.String()
}

// Query implements the Querier interface.
func (b *Builder) Query() (string, []any) {
	return b.sb.String(), b.args
}

// Join types accepted by JoinClause. Any other string is passed through
// (upper-cased) as the join keyword.
const (
	InnerJoin = "inner"
	LeftJoin  = "left"
	RightJoin = "right"
	FullJoin  = "full"
	CrossJoin = "cross"
)

// SelectTable is a table reference used in FROM and JOIN clauses.
type SelectTable struct {
	name string
	as   string
}

// Table returns a new table reference.
//
//	t1 := Table("users").As("u")
//	return Select(t1.C("name"))
func Table(name string) *SelectTable {
	return &SelectTable{name: name}
}

// As adds the AS clause to the table.
func (t *SelectTable) As(alias string) *SelectTable {
	t.as = alias
	return t
}

// Name returns the table name.
func (t *SelectTable) Name() string {
	return t.name
}

// Alias returns the table alias, if any.
func (t *SelectTable) Alias() string {
	return t.as
}

// Ref returns the name column references should be qualified with:
// the alias if set, the table name otherwise.
func (t *SelectTable) Ref() string {
	if t.as != "" {
		return t.as
	}
	return t.name
}

// C returns a formatted string for the table column. Columns that are
// already qualified are returned unchanged.
func (t *SelectTable) C(column string) string {
	if strings.Contains(column, ".") {
		return column
	}
	return t.Ref() + "." + column
}

func (t *SelectTable) build(b *Builder) {
	b.Ident(t.name)
	if t.as != "" {
		b.WriteString(" AS ").Ident(t.as)
	}
}

// JoinClause is a single JOIN of a table with an optional ON condition.
type JoinClause struct {
	kind  string
	table *SelectTable
	on    *Predicate
}

// NewJoin returns a join of the given kind (see InnerJoin and friends).
func NewJoin(kind string, t *SelectTable) *JoinClause {
	return &JoinClause{kind: kind, table: t}
}

// On adds a column equality to the join condition.
func (j *JoinClause) On(c1, c2 string) *JoinClause {
	return j.OnP(ColumnsEQ(c1, c2))
}

// OnP ANDs the given predicate to the join condition. A nil predicate is ignored.
func (j *JoinClause) OnP(p *Predicate) *JoinClause {
	j.on = And(j.on, p)
	return j
}

// Kind returns the join kind as given to NewJoin.
func (j *JoinClause) Kind() string {
	return j.kind
}

// Table returns the joined table.
func (j *JoinClause) Table() *SelectTable {
	return j.table
}

// Cond returns the join condition, or nil if there is none.
func (j *JoinClause) Cond() *Predicate {
	return j.on
}

func (j *JoinClause) build(b *Builder) {
	b.WriteString(joinKeyword(j.kind)).WriteString(" ")
	j.table.build(b)
	if j.on != nil {
		b.WriteString(" ON ")
		j.on.build(b)
	}
}

// joinKeyword renders the kind as a join keyword. Kinds that already
// contain JOIN are kept as they are.
func joinKeyword(kind string) string {
	k := strings.ToUpper(strings.TrimSpace(kind))
	if k == "" {
		k = "INNER"
	}
	if strings.Contains(k, "JOIN") {
		return k
	}
	return k + " JOIN"
}

// DialectBuilder prefixes all root builders with the dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Select creates a Selector for the configured dialect.
//
//	Dialect(dialect.Postgres).
//		Select("id", "name").
//		From(Table("users"))
func (d *DialectBuilder) Select(columns ...string) *Selector {
	s := Select(columns...)
	s.dialect = d.dialect
	return s
}

type order struct {
	column string
	desc   bool
}

// Selector is a builder for the SELECT statement.
type Selector struct {
	dialect string
	columns []string
	from    *SelectTable
	joins   []*JoinClause
	where   []*Predicate
	order   []order
	limit   *int
	offset  *int
}

// Select returns a new selector for the SELECT statement. Without
// columns it selects every column (*).
func Select(columns ...string) *Selector {
	return &Selector{columns: columns}
}

// Dialect returns the dialect of the selector.
func (s *Selector) Dialect() string {
	return s.dialect
}

// SetDialect sets the selector dialect.
func (s *Selector) SetDialect(d string) *Selector {
	s.dialect = d
	return s
}

// Select sets the columns to select, replacing any previous ones.
func (s *Selector) Select(columns ...string) *Selector {
	s.columns = columns
	return s
}

// From sets the source of `FROM` clause.
func (s *Selector) From(t *SelectTable) *Selector {
	s.from = t
	return s
}

// Table returns the selected table.
func (s *Selector) Table() *SelectTable {
	return s.from
}

// C returns a formatted string for a selected column from this statement.
func (s *Selector) C(column string) string {
	if s.from == nil {
		return column
	}
	return s.from.C(column)
}

// Join appends an `INNER JOIN` clause to the statement.
func (s *Selector) Join(t *SelectTable) *Selector {
	return s.JoinKind(InnerJoin, t)
}

// LeftJoin appends a `LEFT JOIN` clause to the statement.
func (s *Selector) LeftJoin(t *SelectTable) *Selector {
	return s.JoinKind(LeftJoin, t)
}

// RightJoin appends a `RIGHT JOIN` clause to the statement.
func (s *Selector) RightJoin(t *SelectTable) *Selector {
	return s.JoinKind(RightJoin, t)
}

// JoinKind appends a join of the given kind to the statement.
func (s *Selector) JoinKind(kind string, t *SelectTable) *Selector {
	return s.AppendJoin(NewJoin(kind, t))
}

// AppendJoin appends an already built join clause.
func (s *Selector) AppendJoin(j *JoinClause) *Selector {
	s.joins = append(s.joins, j)
	return s
}

// On sets the `ON` clause of the last join. It panics if there is no join.
func (s *Selector) On(c1, c2 string) *Selector {
	s.lastJoin().On(c1, c2)
	return s
}

// OnP ANDs the predicate to the `ON` clause of the last join.
func (s *Selector) OnP(p *Predicate) *Selector {
	s.lastJoin().OnP(p)
	return s
}

func (s *Selector) lastJoin() *JoinClause {
	if len(s.joins) == 0 {
		panic("sql: On called without a join")
	}
	return s.joins[len(s.joins)-1]
}

// Joins returns the join clauses of the statement.
func (s *Selector) Joins() []*JoinClause {
	return s.joins
}

// Where ANDs the given predicates to the `WHERE` clause. Nil predicates are ignored.
func (s *Selector) Where(ps ...*Predicate) *Selector {
	for _, p := range ps {
		if p != nil {
			s.where = append(s.where, p)
		}
	}
	return s
}

// P returns the predicate of the `WHERE` clause, or nil if there is none.
func (s *Selector) P() *Predicate {
	return And(s.where...)
}

// OrderBy appends ascending order terms.
func (s *Selector) OrderBy(columns ...string) *Selector {
	for _, c := range columns {
		s.order = append(s.order, order{column: c})
	}
	return s
}

// OrderByDesc appends descending order terms.
func (s *Selector) OrderByDesc(columns ...string) *Selector {
	for _, c := range columns {
		s.order = append(s.order, order{column: c, desc: true})
	}
	return s
}

// Limit adds the `LIMIT` clause to the `SELECT` statement.
func (s *Selector) Limit(limit int) *Selector {
	s.limit = &limit
	return s
}

// Offset adds the `OFFSET` clause to the `SELECT` statement.
func (s *Selector) Offset(offset int) *Selector {
	s.offset = &offset
	return s
}

// Query returns query representation of a `SELECT` statement.
func (s *Selector) Query() (string, []any) {
	b := &Builder{dialect: s.dialect}
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	}
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(c)
	}
	if s.from != nil {
		b.WriteString(" FROM ")
		s.from.build(b)
	}
	for _, j := range s.joins {
		b.WriteString(" ")
		j.build(b)
	}
	if p := s.P(); p != nil {
		b.WriteString(" WHERE ")
		p.build(b)
	}
	for i, o := range s.order {
		if i == 0 {
			b.WriteString(" ORDER BY ")
		} else {
			b.WriteString(", ")
		}
		b.Ident(o.column)
		if o.desc {
			b.WriteString(" DESC")
		}
	}
	if s.limit != nil {
		b.WriteString(" LIMIT " + strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		b.WriteString(" OFFSET " + strconv.Itoa(*s.offset))
	}
	return b.Query()
}
