// Package veloxjoin compiles declared relationships between entities into SQL
// join clauses.
//
// Entities and their relationships are declared with package schema, queries
// are built with package query, and package join turns a relation name, a
// dotted relation path, or an ad-hoc entity pair into joins appended to a
// query:
//
//	blog := schema.NewEntity("blog")
//	comment := schema.NewEntity("comment", mixin.SoftDelete())
//	blog.HasMany("comments", comment)
//
//	q := query.New(blog)
//	if err := join.New().JoinRelation(q, "comments"); err != nil {
//		return err
//	}
//	q.Query() // SELECT * FROM "blogs" INNER JOIN "comments" ON ...
//
// This package holds the error types shared by every other package.
package veloxjoin
