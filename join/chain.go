package join

import (
	"fmt"
	"strings"

	"github.com/syssam/veloxjoin/query"
)

// step is a resolved hop with the alias it is joined under.
type step struct {
	hop
	alias string
}

// JoinRelation joins the relationships along a dotted path, each segment
// resolved on the target of the previous one:
//
//	c.JoinRelation(q, "comments")
//	c.JoinRelation(q, "blogs.comments.author", join.Kind(sql.LeftJoin))
//
// Every segment is resolved before anything is appended, so a bad path
// leaves q unchanged. Through relations add two joins; when aliased, the
// intermediate join is named "<segment>_through". The Kind, As and
// AliasAsRelations options apply; key columns come from the relationships.
func (c *Compiler) JoinRelation(q *query.Query, path string, opts ...Option) error {
	cfg := newConfig(opts)
	segments := strings.Split(path, ".")
	steps := make([]step, 0, len(segments))
	e := q.Entity()
	for i, seg := range segments {
		rel, hops, err := resolve(e, seg)
		if err != nil {
			return fmt.Errorf("join %q: %w", path, err)
		}
		name := ""
		if cfg.aliasRelations {
			name = seg
		}
		if i == len(segments)-1 && cfg.alias != "" {
			name = cfg.alias
		}
		for k, h := range hops {
			alias := name
			if alias != "" && len(hops) == 2 && k == 0 {
				alias += "_through"
			}
			steps = append(steps, step{hop: h, alias: alias})
		}
		e = rel.Target()
	}
	base := q.View()
	for _, s := range steps {
		hc := cfg
		hc.alias = s.alias
		hc.baseColumn = s.baseColumn
		hc.targetColumn = s.targetColumn
		base = c.emit(q, base, s.target, s.shape, hc)
	}
	return nil
}
