// Package sql provides the SQL building blocks join compilation works with
// and a database/sql backed driver to run the result.
//
// # Builder Types
//
//   - Builder: low-level statement writer with identifier quoting and placeholders
//   - Selector: SELECT statement with joins, predicates, ordering and pagination
//   - JoinClause: a single JOIN with its ON condition
//   - Predicate: a boolean expression tree (leaves, AND, OR, NOT, groups)
//
// # Dialect Support
//
// Quoting and placeholders adapt to the dialect:
//
//	sql.Dialect(dialect.Postgres).Select().From(sql.Table("users")).Where(sql.EQ("id", 1))
//	// SELECT * FROM "users" WHERE "id" = $1
//
//	sql.Dialect(dialect.MySQL).Select().From(sql.Table("users")).Where(sql.EQ("id", 1))
//	// SELECT * FROM `users` WHERE `id` = ?
//
// # Predicates
//
//	sql.EQ("name", "john")           // "name" = ?
//	sql.GT("age", 18)                // "age" > ?
//	sql.IsNull("deleted_at")         // "deleted_at" IS NULL
//	sql.In("status", "a", "b")       // "status" IN (?, ?)
//	sql.ColumnsEQ("p.user_id", "u.id") // "p"."user_id" = "u"."id"
//	sql.Group(p1, p2)                // (p1 AND p2)
//
// # Joins
//
//	t := sql.Table("posts").As("p")
//	sql.Select().
//	    From(sql.Table("users").As("u")).
//	    Join(t).On(t.C("user_id"), "u.id").
//	    Where(sql.EQ("u.status", "active"))
//
// Join kinds are pass-through strings: "inner", "left", "right", "full",
// "cross", or any keyword the database understands.
package sql
