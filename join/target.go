package join

import (
	"github.com/syssam/veloxjoin"
	"github.com/syssam/veloxjoin/query"
	"github.com/syssam/veloxjoin/schema"
)

// Model is implemented by loaded rows that know the entity they belong to.
type Model interface {
	Entity() *schema.Entity
}

type targetKind int

const (
	targetNone targetKind = iota
	targetEntity
	targetModel
	targetQuery
	targetRelation
)

// Target is the thing joined by JoinMany and JoinOne: an entity, a loaded
// model, a prepared query or a relationship. The zero Target is invalid.
type Target struct {
	kind   targetKind
	entity *schema.Entity
	model  Model
	q      *query.Query
	rel    *schema.Relationship
}

// Entity targets the default query of e.
func Entity(e *schema.Entity) Target {
	if e == nil {
		return Target{}
	}
	return Target{kind: targetEntity, entity: e}
}

// Instance targets the default query of the model's entity.
func Instance(m Model) Target {
	if m == nil {
		return Target{}
	}
	return Target{kind: targetModel, model: m}
}

// Query targets a prepared query. Its filters and remaining scopes are
// copied into the join condition.
func Query(q *query.Query) Target {
	if q == nil {
		return Target{}
	}
	return Target{kind: targetQuery, q: q}
}

// Relation targets a relationship's target query, with the relationship
// constraints and without parent constraints.
func Relation(r *schema.Relationship) Target {
	if r == nil {
		return Target{}
	}
	return Target{kind: targetRelation, rel: r}
}

// TargetOf converts a loosely typed value into a Target. It accepts a
// Target, *schema.Entity, schema.View, *query.Query, *schema.Relationship
// or a Model.
func TargetOf(v any) (Target, error) {
	var t Target
	switch v := v.(type) {
	case Target:
		t = v
	case *schema.Entity:
		t = Entity(v)
	case schema.View:
		if v.Entity() != nil {
			t = Query(query.New(v.Entity(), query.As(v.Alias())))
		}
	case *query.Query:
		t = Query(v)
	case *schema.Relationship:
		t = Relation(v)
	case Model:
		t = Instance(v)
	}
	if t.kind == targetNone {
		return Target{}, veloxjoin.NewUnsupportedInputTypeError(v)
	}
	return t, nil
}

// targetQuery normalizes the target into the query to join.
func (t Target) targetQuery() (*query.Query, error) {
	switch t.kind {
	case targetEntity:
		return query.New(t.entity), nil
	case targetModel:
		return query.New(t.model.Entity()), nil
	case targetQuery:
		return t.q, nil
	case targetRelation:
		// Only single-hop relations stand for one joinable table.
		if shape := t.rel.Shape(); shape != schema.Many && shape != schema.One {
			return nil, veloxjoin.NewUnsupportedRelationShapeError(t.rel.Owner().Name(), t.rel.Name(), shape.String())
		}
		return query.OfRelation(t.rel), nil
	default:
		return nil, veloxjoin.NewUnsupportedInputTypeError(nil)
	}
}
