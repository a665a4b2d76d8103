package join

import (
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/query"
	"github.com/syssam/veloxjoin/schema"
)

// collectScopes returns the scopes of the target query that a join of it
// must honor: the entity scopes minus the ones removed from the query.
func collectScopes(target *query.Query) []schema.Scope {
	return target.ResolvedScopes()
}

// applyScopes evaluates the scopes in order against the joined view.
func applyScopes(scopes []schema.Scope, v schema.View) []*sql.Predicate {
	ps := make([]*sql.Predicate, 0, len(scopes))
	for _, s := range scopes {
		if p := s.Apply(v); p != nil {
			ps = append(ps, p)
		}
	}
	return ps
}
