package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/veloxjoin"
	"github.com/syssam/veloxjoin/dialect/sql"
)

// Entity describes a row source: a table, its key column, the scopes applied
// to every default query and the relationships declared from it.
type Entity struct {
	name      string
	table     string
	key       string
	scopes    []Scope
	relations map[string]*Relationship
	order     []string
}

// Option configures an Entity.
type Option func(*Entity)

// Table sets the entity table. The default is DefaultTable(name).
func Table(name string) Option {
	return func(e *Entity) {
		e.table = name
	}
}

// Key sets the key column. The default is DefaultKey.
func Key(column string) Option {
	return func(e *Entity) {
		e.key = column
	}
}

// WithScopes registers default scopes, applied in registration order.
func WithScopes(scopes ...Scope) Option {
	return func(e *Entity) {
		e.scopes = append(e.scopes, scopes...)
	}
}

// NewEntity returns a new entity with the given name.
//
//	blog := schema.NewEntity("blog")                         // table "blogs", key "id"
//	alt := schema.NewEntity("alternative", schema.Key("key")) // table "alternatives", key "key"
func NewEntity(name string, opts ...Option) *Entity {
	e := &Entity{
		name:      name,
		table:     DefaultTable(name),
		key:       DefaultKey,
		relations: make(map[string]*Relationship),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// Table returns the table name of the entity. It is never an alias.
func (e *Entity) Table() string { return e.table }

// Key returns the key column name.
func (e *Entity) Key() string { return e.key }

// Scopes returns the default scopes in registration order.
func (e *Entity) Scopes() []Scope {
	return append([]Scope(nil), e.scopes...)
}

// Qualify returns the column qualified with the entity table.
func (e *Entity) Qualify(column string) string {
	return e.View().C(column)
}

// View returns the unaliased view of the entity.
func (e *Entity) View() View {
	return View{entity: e}
}

// Relations returns the declared relation names in declaration order.
func (e *Entity) Relations() []string {
	return append([]string(nil), e.order...)
}

// HasRelation reports whether a relation with the given name is declared.
func (e *Entity) HasRelation(name string) bool {
	_, ok := e.relations[name]
	return ok
}

// Relation returns the declared relationship with the given name. The
// returned descriptor carries no parent constraints. Named two-hop
// relations are resolved into their hops here.
func (e *Entity) Relation(name string) (*Relationship, error) {
	r, ok := e.relations[name]
	if !ok {
		return nil, veloxjoin.NewUnknownRelationError(e.name, name)
	}
	if r.via == "" {
		return r, nil
	}
	first, ok := e.relations[r.via]
	if !ok {
		return nil, fmt.Errorf("relation %q: %w", name, veloxjoin.NewUnknownRelationError(e.name, r.via))
	}
	if first.kind.Shape() != Many && first.kind.Shape() != One {
		return nil, veloxjoin.NewUnsupportedRelationShapeError(e.name, name, first.kind.Shape().String())
	}
	second, ok := first.target.relations[r.then]
	if !ok {
		return nil, fmt.Errorf("relation %q: %w", name, veloxjoin.NewUnknownRelationError(first.target.name, r.then))
	}
	if second.kind.Shape() != Many && second.kind.Shape() != One {
		return nil, veloxjoin.NewUnsupportedRelationShapeError(e.name, name, second.kind.Shape().String())
	}
	last := *second
	last.constraints = append(append([]func(View) *sql.Predicate(nil), second.constraints...), r.constraints...)
	resolved := *r
	resolved.target = second.target
	resolved.through = first.target
	resolved.hops = [2]*Relationship{first, &last}
	return &resolved, nil
}

func (e *Entity) declare(r *Relationship) *Entity {
	if _, ok := e.relations[r.name]; ok {
		panic(fmt.Sprintf("schema: relation %q declared twice on %s", r.name, e.name))
	}
	e.relations[r.name] = r
	e.order = append(e.order, r.name)
	return e
}

// String implements the fmt.Stringer interface.
func (e *Entity) String() string {
	return e.name + "(" + e.table + "." + e.key + ")"
}

// View is an entity bound to the name its columns are qualified with during
// one join: the alias when one is set, the table otherwise. Views are values,
// so aliasing never changes the entity.
type View struct {
	entity *Entity
	alias  string
}

// As returns a copy of the view aliased as alias. An empty alias unaliases.
func (v View) As(alias string) View {
	v.alias = alias
	return v
}

// Entity returns the underlying entity.
func (v View) Entity() *Entity { return v.entity }

// Alias returns the alias, or "" if the view is unaliased.
func (v View) Alias() string { return v.alias }

// Key returns the entity key column.
func (v View) Key() string { return v.entity.key }

// Name returns the effective table name: the alias if set, the table otherwise.
func (v View) Name() string {
	if v.alias != "" {
		return v.alias
	}
	return v.entity.table
}

// C qualifies the column with the effective table name. Columns that are
// already qualified are returned unchanged.
func (v View) C(column string) string {
	if strings.Contains(column, ".") {
		return column
	}
	return v.Name() + "." + column
}

// SelectTable returns the table reference for FROM and JOIN clauses.
func (v View) SelectTable() *sql.SelectTable {
	t := sql.Table(v.entity.table)
	if v.alias != "" {
		t.As(v.alias)
	}
	return t
}
