// Package schema declares entities, their default scopes and the
// relationships between them.
//
// # Entities
//
// An entity is a table with a key column. Table names default to the plural
// snake case of the entity name and keys default to "id":
//
//	user := schema.NewEntity("user")
//	blog := schema.NewEntity("blog")
//	comment := schema.NewEntity("comment", mixin.SoftDelete())
//	alt := schema.NewEntity("alternative", schema.Key("key"))
//
// # Relationships
//
//	blog.HasMany("comments", comment)          // comments.blog_id = blogs.id
//	comment.BelongsTo("blog", blog)            // blogs.id = comments.blog_id
//	user.HasMany("blogs", blog)
//	user.HasManyThrough("commentsOnBlogs", comment, blog)
//	user.Through("blogComments", "blogs", "comments")
//	blog.BelongsToMany("tags", tag, "")        // declared, but never joined
//
// Key names can be overridden per relationship with ForeignKey, LocalKey,
// ThroughForeignKey and ThroughLocalKey, and relationship level filters are
// added with Constraint.
//
// # Views
//
// A View pairs an entity with the alias its columns are qualified with.
// Aliasing returns a new value, so an entity can be joined under several
// aliases in one query without any of them leaking into the others.
//
//	v := comment.View().As("notes")
//	v.C("blog_id") // notes.blog_id
//	comment.Table() // comments
package schema
