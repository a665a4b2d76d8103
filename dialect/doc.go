// Package dialect names the SQL dialects supported by veloxjoin and defines
// the driver interfaces compiled queries are executed through.
//
// The dialect decides identifier quoting and placeholder style:
//
//	dialect.Postgres = "postgres" // "blogs"."id", $1
//	dialect.MySQL    = "mysql"    // `blogs`.`id`, ?
//	dialect.SQLite   = "sqlite"   // "blogs"."id", ?
//
// The empty dialect renders ANSI double-quoted identifiers with ? placeholders.
//
// Sub-packages:
//
//   - dialect/sql: SQL builder (selectors, joins, predicates) and the database/sql driver
package dialect
