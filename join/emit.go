package join

import (
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/query"
	"github.com/syssam/veloxjoin/schema"
)

// emit appends one join of target to q and returns the view the target was
// joined under, which is the base of the next hop in a chain.
//
// Many: ON target.<singular(base table)>_<base key> = base.<base key>
// One:  ON target.<target key> = base.<singular(target table)>_<target key>
//
// Key names are derived from entity tables, never from aliases. The target
// filters and then its resolved scopes are ANDed in one nested group.
func (c *Compiler) emit(q *query.Query, base schema.View, target *query.Query, dir schema.Shape, cfg config) schema.View {
	tv := target.View()
	if cfg.alias != "" {
		tv = tv.As(cfg.alias)
	}
	targetColumn, baseColumn := cfg.targetColumn, cfg.baseColumn
	if dir == schema.One {
		if targetColumn == "" {
			targetColumn = tv.Key()
		}
		if baseColumn == "" {
			baseColumn = schema.DefaultForeignKey(tv.Entity())
		}
	} else {
		if targetColumn == "" {
			targetColumn = schema.DefaultForeignKey(base.Entity())
		}
		if baseColumn == "" {
			baseColumn = base.Key()
		}
	}
	nested := target.Filters(tv)
	nested = append(nested, applyScopes(collectScopes(target), tv)...)
	j := sql.NewJoin(cfg.kind, tv.SelectTable()).
		On(tv.C(targetColumn), base.C(baseColumn)).
		OnP(sql.Group(nested...))
	q.AppendJoin(j)
	c.log.Debug("join emitted",
		"table", tv.Entity().Table(),
		"alias", tv.Alias(),
		"kind", cfg.kind,
		"on", tv.C(targetColumn)+" = "+base.C(baseColumn),
		"nested", len(nested),
	)
	return tv
}
