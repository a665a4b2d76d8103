package schema

import "github.com/go-openapi/inflect"

// rules is the inflection ruleset used to derive table and key names.
var rules = inflect.NewDefaultRuleset()

// DefaultKey is the key column of entities declared without Key.
const DefaultKey = "id"

// DefaultTable returns the table name derived from an entity name:
// the plural snake case form, e.g. "DeletableComment" -> "deletable_comments".
func DefaultTable(name string) string {
	return rules.Pluralize(rules.Underscore(name))
}

// Singular returns the singular form of a table name, e.g. "blogs" -> "blog".
func Singular(table string) string {
	return rules.Singularize(table)
}

// Underscore returns the snake case form of s, e.g. "blogAuthor" -> "blog_author".
func Underscore(s string) string {
	return rules.Underscore(s)
}

// DefaultForeignKey returns the column another table uses to reference e:
// the singular of e's table, an underscore and e's key, e.g. "blog_id".
// Aliases never take part in the derivation.
func DefaultForeignKey(e *Entity) string {
	return Singular(e.table) + "_" + e.key
}
