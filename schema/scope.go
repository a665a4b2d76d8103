package schema

import "github.com/syssam/veloxjoin/dialect/sql"

// Scope is a named predicate applied to every default query of an entity.
// Func receives the view the query is built against, so the predicate is
// qualified with the table or alias in use. A nil predicate adds nothing.
type Scope struct {
	Name string
	Func func(View) *sql.Predicate
}

// NewScope returns a new scope.
func NewScope(name string, fn func(View) *sql.Predicate) Scope {
	return Scope{Name: name, Func: fn}
}

// Apply evaluates the scope for v.
func (s Scope) Apply(v View) *sql.Predicate {
	if s.Func == nil {
		return nil
	}
	return s.Func(v)
}
