package join

import (
	"github.com/syssam/veloxjoin"
	"github.com/syssam/veloxjoin/query"
	"github.com/syssam/veloxjoin/schema"
)

// hop is one join a relationship compiles to.
type hop struct {
	shape        schema.Shape
	target       *query.Query
	baseColumn   string
	targetColumn string
}

// resolve looks up the relation on e and returns its hops: one for has-many,
// has-one and belongs-to, two for through relations.
func resolve(e *schema.Entity, name string) (*schema.Relationship, []hop, error) {
	rel, err := e.Relation(name)
	if err != nil {
		return nil, nil, err
	}
	switch rel.Shape() {
	case schema.Many, schema.One:
		return rel, []hop{hopOf(rel)}, nil
	case schema.Through:
		if first, second, ok := rel.Hops(); ok {
			return rel, []hop{hopOf(first), hopOf(second)}, nil
		}
	}
	return nil, nil, veloxjoin.NewUnsupportedRelationShapeError(e.Name(), name, rel.Shape().String())
}

func hopOf(rel *schema.Relationship) hop {
	h := hop{shape: rel.Shape(), target: query.OfRelation(rel)}
	if h.shape == schema.Many {
		h.baseColumn, h.targetColumn = rel.LocalKey(), rel.ForeignKey()
	} else {
		h.baseColumn, h.targetColumn = rel.ForeignKey(), rel.LocalKey()
	}
	return h
}
