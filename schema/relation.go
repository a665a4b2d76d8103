package schema

import (
	"sort"

	"github.com/syssam/veloxjoin/dialect/sql"
)

// Shape is the join shape of a relationship.
type Shape int

const (
	// Many means the target holds a foreign key to the owner (has-many, has-one).
	Many Shape = iota + 1
	// One means the owner holds a foreign key to the target (belongs-to).
	One
	// Through is a relationship made of two Many/One hops via an intermediate entity.
	Through
	// ManyToMany is a pivot table relationship. It cannot be joined.
	ManyToMany
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case Many:
		return "many"
	case One:
		return "one"
	case Through:
		return "through"
	case ManyToMany:
		return "many_to_many"
	default:
		return "unknown"
	}
}

// Kind is the declaration a relationship was created with.
type Kind string

// Relationship kinds.
const (
	KindHasMany        Kind = "has_many"
	KindHasOne         Kind = "has_one"
	KindBelongsTo      Kind = "belongs_to"
	KindHasManyThrough Kind = "has_many_through"
	KindHasOneThrough  Kind = "has_one_through"
	KindThrough        Kind = "through"
	KindBelongsToMany  Kind = "belongs_to_many"
)

// Shape returns the join shape of relationships declared with k.
func (k Kind) Shape() Shape {
	switch k {
	case KindHasMany, KindHasOne:
		return Many
	case KindBelongsTo:
		return One
	case KindHasManyThrough, KindHasOneThrough, KindThrough:
		return Through
	case KindBelongsToMany:
		return ManyToMany
	default:
		return 0
	}
}

// Relationship describes how an owner entity relates to a target entity.
//
// For Many, ForeignKey is the target column and LocalKey the owner column.
// For One, ForeignKey is the owner column and LocalKey the target column.
// Through relationships are described by their two hops.
type Relationship struct {
	name        string
	kind        Kind
	owner       *Entity
	target      *Entity
	through     *Entity
	foreignKey  string
	localKey    string
	throughFK   string
	throughKey  string
	pivot       string
	constraints []func(View) *sql.Predicate
	via, then   string
	hops        [2]*Relationship
}

// RelationOption configures a relationship declaration.
type RelationOption func(*Relationship)

// ForeignKey sets the foreign key column. For through relationships it is
// the column of the target referencing the intermediate entity.
func ForeignKey(column string) RelationOption {
	return func(r *Relationship) {
		r.foreignKey = column
	}
}

// LocalKey sets the referenced key column: the owner key for has-many and
// has-one, the target key for belongs-to, the owner key for through.
func LocalKey(column string) RelationOption {
	return func(r *Relationship) {
		r.localKey = column
	}
}

// ThroughForeignKey sets the column of the intermediate entity referencing
// the owner in a through relationship.
func ThroughForeignKey(column string) RelationOption {
	return func(r *Relationship) {
		r.throughFK = column
	}
}

// ThroughLocalKey sets the key of the intermediate entity the target
// references in a through relationship.
func ThroughLocalKey(column string) RelationOption {
	return func(r *Relationship) {
		r.throughKey = column
	}
}

// Constraint adds a predicate every query of the relationship's target
// carries, e.g. only approved comments.
func Constraint(fn func(View) *sql.Predicate) RelationOption {
	return func(r *Relationship) {
		r.constraints = append(r.constraints, fn)
	}
}

func newRelationship(kind Kind, name string, owner, target *Entity, opts []RelationOption) *Relationship {
	r := &Relationship{name: name, kind: kind, owner: owner, target: target}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// HasMany declares a one-to-many relationship: target rows reference e.
// The foreign key defaults to DefaultForeignKey(e), the local key to e's key.
func (e *Entity) HasMany(name string, target *Entity, opts ...RelationOption) *Entity {
	return e.declare(e.hasOneOrMany(KindHasMany, name, target, opts))
}

// HasOne declares a one-to-one relationship where the target references e.
func (e *Entity) HasOne(name string, target *Entity, opts ...RelationOption) *Entity {
	return e.declare(e.hasOneOrMany(KindHasOne, name, target, opts))
}

func (e *Entity) hasOneOrMany(kind Kind, name string, target *Entity, opts []RelationOption) *Relationship {
	r := newRelationship(kind, name, e, target, opts)
	r.foreignKey = orDefault(r.foreignKey, DefaultForeignKey(e))
	r.localKey = orDefault(r.localKey, e.key)
	return r
}

// BelongsTo declares an inverse relationship: e references target. The
// foreign key defaults to the snake case relation name, an underscore and
// the target key ("author" -> "author_id").
func (e *Entity) BelongsTo(name string, target *Entity, opts ...RelationOption) *Entity {
	r := newRelationship(KindBelongsTo, name, e, target, opts)
	r.foreignKey = orDefault(r.foreignKey, Underscore(name)+"_"+target.key)
	r.localKey = orDefault(r.localKey, target.key)
	return e.declare(r)
}

// HasManyThrough declares a relationship to target via an intermediate
// entity: e -> through by ThroughForeignKey, through -> target by ForeignKey.
func (e *Entity) HasManyThrough(name string, target, through *Entity, opts ...RelationOption) *Entity {
	return e.declare(e.hasThrough(KindHasManyThrough, name, target, through, opts))
}

// HasOneThrough is the single row form of HasManyThrough.
func (e *Entity) HasOneThrough(name string, target, through *Entity, opts ...RelationOption) *Entity {
	return e.declare(e.hasThrough(KindHasOneThrough, name, target, through, opts))
}

func (e *Entity) hasThrough(kind Kind, name string, target, through *Entity, opts []RelationOption) *Relationship {
	r := newRelationship(kind, name, e, target, opts)
	r.through = through
	r.throughFK = orDefault(r.throughFK, DefaultForeignKey(e))
	r.localKey = orDefault(r.localKey, e.key)
	r.foreignKey = orDefault(r.foreignKey, DefaultForeignKey(through))
	r.throughKey = orDefault(r.throughKey, through.key)
	r.hops = [2]*Relationship{
		{name: name, kind: KindHasMany, owner: e, target: through, foreignKey: r.throughFK, localKey: r.localKey},
		{name: name, kind: KindHasMany, owner: through, target: target, foreignKey: r.foreignKey, localKey: r.throughKey, constraints: r.constraints},
	}
	return r
}

// Through declares a two-hop relationship by composing the relation via,
// declared on e, with the relation then, declared on via's target. Both
// hops must be has-many, has-one or belongs-to. The hops are looked up
// when the relationship is resolved, so declaration order does not matter.
func (e *Entity) Through(name, via, then string, opts ...RelationOption) *Entity {
	r := newRelationship(KindThrough, name, e, nil, opts)
	r.via, r.then = via, then
	return e.declare(r)
}

// BelongsToMany declares a many-to-many relationship over a pivot table.
// The pivot defaults to the singular table names in lexical order joined by
// an underscore ("blog_tag"). Such relationships cannot be joined.
func (e *Entity) BelongsToMany(name string, target *Entity, pivot string, opts ...RelationOption) *Entity {
	r := newRelationship(KindBelongsToMany, name, e, target, opts)
	if pivot == "" {
		names := []string{Singular(e.table), Singular(target.table)}
		sort.Strings(names)
		pivot = names[0] + "_" + names[1]
	}
	r.pivot = pivot
	r.foreignKey = orDefault(r.foreignKey, DefaultForeignKey(e))
	r.localKey = orDefault(r.localKey, e.key)
	return e.declare(r)
}

// Name returns the relation name.
func (r *Relationship) Name() string { return r.name }

// Kind returns the declaration kind.
func (r *Relationship) Kind() Kind { return r.kind }

// Shape returns the join shape.
func (r *Relationship) Shape() Shape { return r.kind.Shape() }

// Owner returns the entity the relationship is declared on.
func (r *Relationship) Owner() *Entity { return r.owner }

// Target returns the related entity. It is nil for an unresolved Through
// declaration; use Entity.Relation to obtain the resolved form.
func (r *Relationship) Target() *Entity { return r.target }

// Through returns the intermediate entity of a through relationship.
func (r *Relationship) Through() *Entity { return r.through }

// ForeignKey returns the foreign key column name.
func (r *Relationship) ForeignKey() string { return r.foreignKey }

// LocalKey returns the referenced key column name.
func (r *Relationship) LocalKey() string { return r.localKey }

// Pivot returns the pivot table of a many-to-many relationship.
func (r *Relationship) Pivot() string { return r.pivot }

// Unique reports whether the relationship yields at most one row.
func (r *Relationship) Unique() bool {
	switch r.kind {
	case KindHasOne, KindBelongsTo, KindHasOneThrough:
		return true
	}
	return false
}

// Path returns the via and then relation names of a Through declaration.
func (r *Relationship) Path() (via, then string) { return r.via, r.then }

// Hops returns the two hops of a resolved through relationship.
func (r *Relationship) Hops() (first, second *Relationship, ok bool) {
	if r.hops[0] == nil {
		return nil, nil, false
	}
	return r.hops[0], r.hops[1], true
}

// QualifiedForeignKey returns the foreign key qualified with the view of
// the side that holds it.
func (r *Relationship) QualifiedForeignKey(v View) string {
	return v.C(r.foreignKey)
}

// QualifiedLocalKey returns the local key qualified with the given view.
func (r *Relationship) QualifiedLocalKey(v View) string {
	return v.C(r.localKey)
}

// Constraints evaluates the relationship constraints against the target view.
func (r *Relationship) Constraints(v View) []*sql.Predicate {
	ps := make([]*sql.Predicate, 0, len(r.constraints))
	for _, fn := range r.constraints {
		if p := fn(v); p != nil {
			ps = append(ps, p)
		}
	}
	return ps
}
