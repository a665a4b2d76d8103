// Package query builds SELECT queries bound to a schema entity. A Query
// accumulates filters and joins and applies the entity's default scopes
// when it is rendered.
package query

import (
	"github.com/syssam/veloxjoin"
	"github.com/syssam/veloxjoin/contrib/mixin"
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/schema"
)

// Query is a mutable SELECT builder bound to one entity view.
type Query struct {
	view     schema.View
	dialect  string
	columns  []string
	filters  []filter
	joins    []*sql.JoinClause
	removed  map[string]struct{}
	noScopes bool
	order    []order
	limit    *int
	offset   *int
}

// filter is either a fixed predicate or one bound to the view the
// query is rendered or joined under.
type filter struct {
	p  *sql.Predicate
	fn func(schema.View) *sql.Predicate
}

type order struct {
	column string
	desc   bool
}

// Option configures a Query.
type Option func(*Query)

// Dialect sets the SQL dialect the query renders for.
func Dialect(name string) Option {
	return func(q *Query) {
		q.dialect = name
	}
}

// As selects from the entity under an alias.
func As(alias string) Option {
	return func(q *Query) {
		q.view = q.view.As(alias)
	}
}

// New returns a query selecting from e.
func New(e *schema.Entity, opts ...Option) *Query {
	q := &Query{view: e.View(), removed: make(map[string]struct{})}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// OfRelation returns the query of the relationship's target with the
// relationship constraints, but without any constraint tying it to a
// parent row. For through relationships the final hop is used.
func OfRelation(rel *schema.Relationship, opts ...Option) *Query {
	if _, second, ok := rel.Hops(); ok {
		rel = second
	}
	q := New(rel.Target(), opts...)
	return q.WhereFunc(func(v schema.View) *sql.Predicate {
		return sql.And(rel.Constraints(v)...)
	})
}

// Related returns the query a loaded parent row produces for the
// relationship. For has-many and has-one the parent key is matched by the
// target foreign key; for belongs-to parentKey is the owner's foreign key
// value and is matched by the target key.
//
//	q, _ := query.Related(comments, blogID)
//	// SELECT * FROM "comments" WHERE "comments"."blog_id" = ? AND "comments"."blog_id" IS NOT NULL
func Related(rel *schema.Relationship, parentKey any, opts ...Option) (*Query, error) {
	switch rel.Shape() {
	case schema.Many:
		q := OfRelation(rel, opts...)
		q.WhereFunc(func(v schema.View) *sql.Predicate {
			return sql.EQ(rel.QualifiedForeignKey(v), parentKey)
		})
		q.WhereFunc(func(v schema.View) *sql.Predicate {
			return sql.NotNull(rel.QualifiedForeignKey(v))
		})
		return q, nil
	case schema.One:
		q := OfRelation(rel, opts...)
		q.WhereFunc(func(v schema.View) *sql.Predicate {
			return sql.EQ(rel.QualifiedLocalKey(v), parentKey)
		})
		return q, nil
	default:
		return nil, veloxjoin.NewUnsupportedRelationShapeError(rel.Owner().Name(), rel.Name(), rel.Shape().String())
	}
}

// Entity returns the entity the query selects from.
func (q *Query) Entity() *schema.Entity { return q.view.Entity() }

// View returns the view the query selects from.
func (q *Query) View() schema.View { return q.view }

// Dialect returns the dialect of the query.
func (q *Query) Dialect() string { return q.dialect }

// C qualifies the column with the query view.
func (q *Query) C(column string) string { return q.view.C(column) }

// Select sets the selected columns. The default is every column.
func (q *Query) Select(columns ...string) *Query {
	q.columns = columns
	return q
}

// Where adds fixed predicates to the query filters.
func (q *Query) Where(ps ...*sql.Predicate) *Query {
	for _, p := range ps {
		if p != nil {
			q.filters = append(q.filters, filter{p: p})
		}
	}
	return q
}

// WhereFunc adds a filter built against the view the query is rendered
// under. When the query is joined under an alias, the filter is qualified
// with the alias.
func (q *Query) WhereFunc(fn func(schema.View) *sql.Predicate) *Query {
	q.filters = append(q.filters, filter{fn: fn})
	return q
}

// Filters returns the query filters in the order they were added, with view
// bound filters evaluated against v.
func (q *Query) Filters(v schema.View) []*sql.Predicate {
	ps := make([]*sql.Predicate, 0, len(q.filters))
	for _, f := range q.filters {
		p := f.p
		if f.fn != nil {
			p = f.fn(v)
		}
		if p != nil {
			ps = append(ps, p)
		}
	}
	return ps
}

// FilterTree returns all filters ANDed together, or nil.
func (q *Query) FilterTree() *sql.Predicate {
	return sql.And(q.Filters(q.view)...)
}

// WithoutScope removes the named default scopes from the query.
func (q *Query) WithoutScope(names ...string) *Query {
	for _, n := range names {
		q.removed[n] = struct{}{}
	}
	return q
}

// WithoutScopes removes every default scope from the query.
func (q *Query) WithoutScopes() *Query {
	q.noScopes = true
	return q
}

// WithTrashed removes the soft delete scope, including soft deleted rows.
func (q *Query) WithTrashed() *Query {
	return q.WithoutScope(mixin.SoftDeleteScope)
}

// ResolvedScopes returns the entity scopes that still apply to the query,
// in registration order.
func (q *Query) ResolvedScopes() []schema.Scope {
	if q.noScopes {
		return nil
	}
	var scopes []schema.Scope
	for _, s := range q.Entity().Scopes() {
		if _, ok := q.removed[s.Name]; !ok {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// AppendJoin appends a join clause.
func (q *Query) AppendJoin(j *sql.JoinClause) *Query {
	q.joins = append(q.joins, j)
	return q
}

// Joins returns the join clauses appended so far.
func (q *Query) Joins() []*sql.JoinClause {
	return q.joins
}

// OrderBy adds ascending order terms.
func (q *Query) OrderBy(columns ...string) *Query {
	for _, c := range columns {
		q.order = append(q.order, order{column: c})
	}
	return q
}

// OrderByDesc adds descending order terms.
func (q *Query) OrderByDesc(columns ...string) *Query {
	for _, c := range columns {
		q.order = append(q.order, order{column: c, desc: true})
	}
	return q
}

// Limit limits the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = &n
	return q
}

// Offset skips the first n rows.
func (q *Query) Offset(n int) *Query {
	q.offset = &n
	return q
}

// Clone returns a deep copy of the query builder.
func (q *Query) Clone() *Query {
	c := *q
	c.columns = append([]string(nil), q.columns...)
	c.filters = append([]filter(nil), q.filters...)
	c.joins = append([]*sql.JoinClause(nil), q.joins...)
	c.order = append([]order(nil), q.order...)
	c.removed = make(map[string]struct{}, len(q.removed))
	for k := range q.removed {
		c.removed[k] = struct{}{}
	}
	return &c
}

// Selector renders the query into a selector. The query's own scopes are
// applied to the WHERE clause after its filters.
func (q *Query) Selector() *sql.Selector {
	s := sql.Dialect(q.dialect).Select(q.columns...).From(q.view.SelectTable())
	for _, j := range q.joins {
		s.AppendJoin(j)
	}
	s.Where(q.Filters(q.view)...)
	for _, sc := range q.ResolvedScopes() {
		s.Where(sc.Apply(q.view))
	}
	for _, o := range q.order {
		if o.desc {
			s.OrderByDesc(o.column)
		} else {
			s.OrderBy(o.column)
		}
	}
	if q.limit != nil {
		s.Limit(*q.limit)
	}
	if q.offset != nil {
		s.Offset(*q.offset)
	}
	return s
}

// Query implements the sql.Querier interface.
func (q *Query) Query() (string, []any) {
	return q.Selector().Query()
}
