package join_test

import (
	"github.com/syssam/veloxjoin/contrib/mixin"
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/schema"
)

// blogSchema is a small blogging schema:
//
//	user  -< blog -< comment >- user
//	blog  -< deletable_comment (soft deleted)
//	alternative(key) -< blog
type blogSchema struct {
	user, blog, comment, deletable, alternative, tag *schema.Entity
}

func newBlogSchema() blogSchema {
	s := blogSchema{
		user:        schema.NewEntity("user"),
		blog:        schema.NewEntity("blog"),
		comment:     schema.NewEntity("comment"),
		deletable:   schema.NewEntity("DeletableComment", mixin.SoftDelete()),
		alternative: schema.NewEntity("alternative", schema.Key("key")),
		tag:         schema.NewEntity("tag"),
	}
	s.user.
		HasMany("blogs", s.blog).
		HasOne("latestBlog", s.blog).
		HasManyThrough("commentsOnBlogs", s.comment, s.blog).
		Through("blogComments", "blogs", "comments")
	s.blog.
		HasMany("comments", s.comment).
		HasMany("notes", s.comment).
		HasMany("approvedComments", s.comment, schema.Constraint(func(v schema.View) *sql.Predicate {
			return sql.EQ(v.C("approved"), true)
		})).
		HasMany("deletableComments", s.deletable).
		BelongsTo("user", s.user).
		BelongsTo("owner", s.user, schema.ForeignKey("owner_id")).
		BelongsToMany("tags", s.tag, "")
	s.comment.
		BelongsTo("blog", s.blog).
		BelongsTo("user", s.user)
	s.deletable.BelongsTo("blog", s.blog)
	s.alternative.HasMany("blogs", s.blog)
	return s
}

// row is a loaded record that reports its entity.
type row struct {
	entity *schema.Entity
	id     int
}

func (r row) Entity() *schema.Entity { return r.entity }
