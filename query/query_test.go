package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxjoin"
	"github.com/syssam/veloxjoin/contrib/mixin"
	"github.com/syssam/veloxjoin/dialect"
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/query"
	"github.com/syssam/veloxjoin/schema"
)

func TestQuery(t *testing.T) {
	comment := schema.NewEntity("comment", mixin.SoftDelete(), mixin.TenantID(7))

	tests := []struct {
		name      string
		input     *query.Query
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "default scopes",
			input:     query.New(comment),
			wantQuery: `SELECT * FROM "comments" WHERE "comments"."deleted_at" IS NULL AND "comments"."tenant_id" = ?`,
			wantArgs:  []any{7},
		},
		{
			name:      "with trashed",
			input:     query.New(comment).WithTrashed(),
			wantQuery: `SELECT * FROM "comments" WHERE "comments"."tenant_id" = ?`,
			wantArgs:  []any{7},
		},
		{
			name:      "without scopes",
			input:     query.New(comment).WithoutScopes(),
			wantQuery: `SELECT * FROM "comments"`,
		},
		{
			name: "filters before scopes",
			input: query.New(comment).WithoutScope(mixin.TenantScope).
				Where(sql.EQ("comments.approved", true)).
				WhereFunc(func(v schema.View) *sql.Predicate { return sql.GT(v.C("likes"), 10) }),
			wantQuery: `SELECT * FROM "comments" WHERE "comments"."approved" = ? AND "comments"."likes" > ? AND "comments"."deleted_at" IS NULL`,
			wantArgs:  []any{true, 10},
		},
		{
			name:      "aliased",
			input:     query.New(comment, query.As("c")).WithTrashed().WithoutScope(mixin.TenantScope).Select("c.id"),
			wantQuery: `SELECT "c"."id" FROM "comments" AS "c"`,
		},
		{
			name: "order limit offset postgres",
			input: query.New(comment, query.Dialect(dialect.Postgres)).WithoutScopes().
				Where(sql.EQ("comments.blog_id", 3)).
				OrderBy("comments.id").OrderByDesc("comments.likes").
				Limit(5).Offset(10),
			wantQuery: `SELECT * FROM "comments" WHERE "comments"."blog_id" = $1 ORDER BY "comments"."id", "comments"."likes" DESC LIMIT 5 OFFSET 10`,
			wantArgs:  []any{3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := tt.input.Query()
			assert.Equal(t, tt.wantQuery, q)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestQueryAccessors(t *testing.T) {
	comment := schema.NewEntity("comment", mixin.SoftDelete())
	q := query.New(comment, query.As("c"), query.Dialect(dialect.MySQL))
	assert.Same(t, comment, q.Entity())
	assert.Equal(t, "c", q.View().Alias())
	assert.Equal(t, dialect.MySQL, q.Dialect())
	assert.Equal(t, "c.body", q.C("body"))
	assert.Nil(t, q.FilterTree())
	require.Len(t, q.ResolvedScopes(), 1)
	assert.Equal(t, mixin.SoftDeleteScope, q.ResolvedScopes()[0].Name)

	q.WhereFunc(func(v schema.View) *sql.Predicate { return sql.EQ(v.C("approved"), true) })
	q.WhereFunc(func(schema.View) *sql.Predicate { return nil })
	q.Where(nil, sql.IsNull("c.parent_id"))

	ps := q.Filters(comment.View().As("other"))
	require.Len(t, ps, 2)
	s, _ := ps[0].Query()
	assert.Equal(t, `"other"."approved" = ?`, s)
	s, _ = ps[1].Query()
	assert.Equal(t, `"c"."parent_id" IS NULL`, s)

	s, args := q.FilterTree().Query()
	assert.Equal(t, `"c"."approved" = ? AND "c"."parent_id" IS NULL`, s)
	assert.Equal(t, []any{true}, args)
}

func TestQueryClone(t *testing.T) {
	comment := schema.NewEntity("comment", mixin.SoftDelete())
	q := query.New(comment).Where(sql.EQ("comments.id", 1))
	c := q.Clone().WithTrashed().Where(sql.EQ("comments.blog_id", 2))
	c.AppendJoin(sql.NewJoin(sql.InnerJoin, sql.Table("blogs")).On("blogs.id", "comments.blog_id"))

	s, _ := q.Query()
	assert.Equal(t, `SELECT * FROM "comments" WHERE "comments"."id" = ? AND "comments"."deleted_at" IS NULL`, s)
	assert.Empty(t, q.Joins())
	s, _ = c.Query()
	assert.Equal(t, `SELECT * FROM "comments" INNER JOIN "blogs" ON "blogs"."id" = "comments"."blog_id" WHERE "comments"."id" = ? AND "comments"."blog_id" = ?`, s)
}

func TestOfRelation(t *testing.T) {
	user := schema.NewEntity("user")
	blog := schema.NewEntity("blog")
	comment := schema.NewEntity("comment", mixin.SoftDelete())
	blog.HasMany("approved", comment, schema.Constraint(func(v schema.View) *sql.Predicate {
		return sql.EQ(v.C("approved"), true)
	}))
	user.HasManyThrough("comments", comment, blog, schema.Constraint(func(v schema.View) *sql.Predicate {
		return sql.NotNull(v.C("body"))
	}))

	rel, err := blog.Relation("approved")
	require.NoError(t, err)
	s, args := query.OfRelation(rel).Query()
	assert.Equal(t, `SELECT * FROM "comments" WHERE "comments"."approved" = ? AND "comments"."deleted_at" IS NULL`, s)
	assert.Equal(t, []any{true}, args)

	rel, err = user.Relation("comments")
	require.NoError(t, err)
	q := query.OfRelation(rel)
	assert.Same(t, comment, q.Entity())
	s, _ = q.Query()
	assert.Equal(t, `SELECT * FROM "comments" WHERE "comments"."body" IS NOT NULL AND "comments"."deleted_at" IS NULL`, s)
}

func TestRelated(t *testing.T) {
	blog := schema.NewEntity("blog")
	comment := schema.NewEntity("comment")
	tag := schema.NewEntity("tag")
	blog.HasMany("comments", comment).BelongsToMany("tags", tag, "")
	comment.BelongsTo("blog", blog)

	rel, err := blog.Relation("comments")
	require.NoError(t, err)
	q, err := query.Related(rel, 1)
	require.NoError(t, err)
	s, args := q.Query()
	assert.Equal(t, `SELECT * FROM "comments" WHERE "comments"."blog_id" = ? AND "comments"."blog_id" IS NOT NULL`, s)
	assert.Equal(t, []any{1}, args)

	rel, err = comment.Relation("blog")
	require.NoError(t, err)
	q, err = query.Related(rel, 9, query.Dialect(dialect.Postgres))
	require.NoError(t, err)
	s, args = q.Query()
	assert.Equal(t, `SELECT * FROM "blogs" WHERE "blogs"."id" = $1`, s)
	assert.Equal(t, []any{9}, args)

	rel, err = blog.Relation("tags")
	require.NoError(t, err)
	_, err = query.Related(rel, 1)
	require.Error(t, err)
	assert.True(t, veloxjoin.IsUnsupportedRelationShape(err))
}
