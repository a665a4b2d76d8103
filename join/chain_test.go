package join_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxjoin"
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/join"
	"github.com/syssam/veloxjoin/query"
)

func TestJoinRelation(t *testing.T) {
	s := newBlogSchema()
	c := join.New()
	tests := []struct {
		name      string
		base      *query.Query
		path      string
		opts      []join.Option
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "has many",
			base:      query.New(s.blog),
			path:      "comments",
			wantQuery: `SELECT * FROM "blogs" INNER JOIN "comments" ON "comments"."blog_id" = "blogs"."id"`,
		},
		{
			name:      "explicit alias",
			base:      query.New(s.blog),
			path:      "comments",
			opts:      []join.Option{join.As("notes")},
			wantQuery: `SELECT * FROM "blogs" INNER JOIN "comments" AS "notes" ON "notes"."blog_id" = "blogs"."id"`,
		},
		{
			name:      "relation name alias",
			base:      query.New(s.blog),
			path:      "notes",
			opts:      []join.Option{join.AliasAsRelations()},
			wantQuery: `SELECT * FROM "blogs" INNER JOIN "comments" AS "notes" ON "notes"."blog_id" = "blogs"."id"`,
		},
		{
			name:      "has one",
			base:      query.New(s.user),
			path:      "latestBlog",
			wantQuery: `SELECT * FROM "users" INNER JOIN "blogs" ON "blogs"."user_id" = "users"."id"`,
		},
		{
			name:      "belongs to",
			base:      query.New(s.comment),
			path:      "blog",
			wantQuery: `SELECT * FROM "comments" INNER JOIN "blogs" ON "blogs"."id" = "comments"."blog_id"`,
		},
		{
			name:      "belongs to custom foreign key",
			base:      query.New(s.blog),
			path:      "owner",
			opts:      []join.Option{join.AliasAsRelations()},
			wantQuery: `SELECT * FROM "blogs" INNER JOIN "users" AS "owner" ON "owner"."id" = "blogs"."owner_id"`,
		},
		{
			name:      "custom key",
			base:      query.New(s.alternative),
			path:      "blogs",
			wantQuery: `SELECT * FROM "alternatives" INNER JOIN "blogs" ON "blogs"."alternative_key" = "alternatives"."key"`,
		},
		{
			name:      "constraint",
			base:      query.New(s.blog),
			path:      "approvedComments",
			wantQuery: `SELECT * FROM "blogs" INNER JOIN "comments" ON "comments"."blog_id" = "blogs"."id" AND ("comments"."approved" = ?)`,
			wantArgs:  []any{true},
		},
		{
			name:      "soft deleted",
			base:      query.New(s.blog),
			path:      "deletableComments",
			opts:      []join.Option{join.AliasAsRelations()},
			wantQuery: `SELECT * FROM "blogs" INNER JOIN "deletable_comments" AS "deletableComments" ON "deletableComments"."blog_id" = "blogs"."id" AND ("deletableComments"."deleted_at" IS NULL)`,
		},
		{
			name: "has many through",
			base: query.New(s.user),
			path: "commentsOnBlogs",
			wantQuery: `SELECT * FROM "users"` +
				` INNER JOIN "blogs" ON "blogs"."user_id" = "users"."id"` +
				` INNER JOIN "comments" ON "comments"."blog_id" = "blogs"."id"`,
		},
		{
			name: "has many through aliased",
			base: query.New(s.user),
			path: "commentsOnBlogs",
			opts: []join.Option{join.AliasAsRelations()},
			wantQuery: `SELECT * FROM "users"` +
				` INNER JOIN "blogs" AS "commentsOnBlogs_through" ON "commentsOnBlogs_through"."user_id" = "users"."id"` +
				` INNER JOIN "comments" AS "commentsOnBlogs" ON "commentsOnBlogs"."blog_id" = "commentsOnBlogs_through"."id"`,
		},
		{
			name: "named through",
			base: query.New(s.user),
			path: "blogComments",
			opts: []join.Option{join.As("bc")},
			wantQuery: `SELECT * FROM "users"` +
				` INNER JOIN "blogs" AS "bc_through" ON "bc_through"."user_id" = "users"."id"` +
				` INNER JOIN "comments" AS "bc" ON "bc"."blog_id" = "bc_through"."id"`,
		},
		{
			name: "nested path",
			base: query.New(s.blog),
			path: "comments.user",
			wantQuery: `SELECT * FROM "blogs"` +
				` INNER JOIN "comments" ON "comments"."blog_id" = "blogs"."id"` +
				` INNER JOIN "users" ON "users"."id" = "comments"."user_id"`,
		},
		{
			name: "nested path aliased",
			base: query.New(s.blog),
			path: "comments.user",
			opts: []join.Option{join.AliasAsRelations(), join.Kind(sql.LeftJoin)},
			wantQuery: `SELECT * FROM "blogs"` +
				` LEFT JOIN "comments" AS "comments" ON "comments"."blog_id" = "blogs"."id"` +
				` LEFT JOIN "users" AS "user" ON "user"."id" = "comments"."user_id"`,
		},
		{
			name: "nested path explicit alias on last segment",
			base: query.New(s.user),
			path: "blogs.deletableComments",
			opts: []join.Option{join.As("dc")},
			wantQuery: `SELECT * FROM "users"` +
				` INNER JOIN "blogs" ON "blogs"."user_id" = "users"."id"` +
				` INNER JOIN "deletable_comments" AS "dc" ON "dc"."blog_id" = "blogs"."id" AND ("dc"."deleted_at" IS NULL)`,
		},
		{
			name:      "key overrides are ignored",
			base:      query.New(s.blog),
			path:      "comments",
			opts:      []join.Option{join.BaseColumn("uuid"), join.TargetColumn("post_id")},
			wantQuery: `SELECT * FROM "blogs" INNER JOIN "comments" ON "comments"."blog_id" = "blogs"."id"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, c.JoinRelation(tt.base, tt.path, tt.opts...))
			q, args := tt.base.Query()
			assert.Equal(t, tt.wantQuery, q)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestJoinRelationErrors(t *testing.T) {
	s := newBlogSchema()
	c := join.New()
	tests := []struct {
		name    string
		path    string
		wantErr string
		check   func(error) bool
	}{
		{
			name:    "unknown",
			path:    "missing",
			wantErr: `join "missing": veloxjoin: relation "missing" is not declared on blog`,
			check:   veloxjoin.IsUnknownRelation,
		},
		{
			name:    "unknown nested",
			path:    "comments.missing",
			wantErr: `join "comments.missing": veloxjoin: relation "missing" is not declared on comment`,
			check:   veloxjoin.IsUnknownRelation,
		},
		{
			name:    "empty segment",
			path:    "comments..user",
			wantErr: `join "comments..user": veloxjoin: relation "" is not declared on comment`,
			check:   veloxjoin.IsUnknownRelation,
		},
		{
			name:    "many to many",
			path:    "tags",
			wantErr: `join "tags": veloxjoin: relation "tags" on blog has unsupported shape many_to_many`,
			check:   veloxjoin.IsUnsupportedRelationShape,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := query.New(s.blog)
			err := c.JoinRelation(q, tt.path)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, tt.check(err))
			assert.Empty(t, q.Joins())
		})
	}
}

func TestJoinRelationBrokenThrough(t *testing.T) {
	s := newBlogSchema()
	s.user.Through("broken", "blogs", "nothing")
	q := query.New(s.user)
	err := join.New().JoinRelation(q, "broken")
	require.Error(t, err)
	assert.True(t, veloxjoin.IsUnknownRelation(err))
	assert.Empty(t, q.Joins())
}
