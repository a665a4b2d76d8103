// Package join compiles relationships into SQL joins.
//
// A Compiler appends joins to a query.Query. JoinMany and JoinOne join an
// entity, model, query or relationship with keys derived from table names;
// JoinManyOn and JoinOneOn take an explicit base view and target query;
// JoinRelation follows a dotted path of declared relationships:
//
//	c := join.New()
//	q := query.New(user)
//	err := c.JoinRelation(q, "blogs.comments", join.AliasAsRelations())
//	// SELECT * FROM "users"
//	//   INNER JOIN "blogs" AS "blogs" ON "blogs"."user_id" = "users"."id"
//	//   INNER JOIN "comments" AS "comments" ON "comments"."blog_id" = "blogs"."id"
//
// Scopes of the joined entity (soft deletes, tenants) and filters of a
// prepared target query are copied into the ON clause as one parenthesized
// group, so they constrain the joined rows only.
package join

import (
	"log/slog"

	"github.com/syssam/veloxjoin"
	"github.com/syssam/veloxjoin/query"
	"github.com/syssam/veloxjoin/schema"
)

// Compiler appends relationship joins to queries. It holds no per-query
// state and is safe for concurrent use; the queries it mutates are not.
type Compiler struct {
	log *slog.Logger
}

// New returns a new Compiler.
func New(opts ...CompilerOption) *Compiler {
	c := &Compiler{log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// JoinMany joins the target as the "many" side of q: the target holds the
// foreign key, e.g. blogs JoinMany comments ON comments.blog_id = blogs.id.
func (c *Compiler) JoinMany(q *query.Query, t Target, opts ...Option) error {
	target, err := t.targetQuery()
	if err != nil {
		return err
	}
	c.emit(q, q.View(), target, schema.Many, newConfig(opts))
	return nil
}

// JoinOne joins the target as the "one" side of q: q holds the foreign key,
// e.g. comments JoinOne blogs ON blogs.id = comments.blog_id.
func (c *Compiler) JoinOne(q *query.Query, t Target, opts ...Option) error {
	target, err := t.targetQuery()
	if err != nil {
		return err
	}
	c.emit(q, q.View(), target, schema.One, newConfig(opts))
	return nil
}

// JoinManyOn is JoinMany with an explicit base view, typically one joined
// earlier under an alias.
func (c *Compiler) JoinManyOn(q *query.Query, base schema.View, target *query.Query, opts ...Option) error {
	return c.joinOn(q, base, target, schema.Many, opts)
}

// JoinOneOn is JoinOne with an explicit base view.
func (c *Compiler) JoinOneOn(q *query.Query, base schema.View, target *query.Query, opts ...Option) error {
	return c.joinOn(q, base, target, schema.One, opts)
}

func (c *Compiler) joinOn(q *query.Query, base schema.View, target *query.Query, dir schema.Shape, opts []Option) error {
	if target == nil {
		return veloxjoin.NewUnsupportedInputTypeError(nil)
	}
	if base.Entity() == nil {
		return veloxjoin.NewUnsupportedInputTypeError(base)
	}
	c.emit(q, base, target, dir, newConfig(opts))
	return nil
}
