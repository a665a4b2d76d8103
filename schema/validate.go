package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes a problem with an entity or one of its relations.
type ValidationError struct {
	Entity   string
	Relation string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Relation != "" {
		return fmt.Sprintf("%s.%s: %s", e.Entity, e.Relation, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

// ValidationResult holds the results of registry validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns the validation errors joined into one error, or nil.
// Warnings are not included.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *ValidationResult) errorf(entity, relation, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{Entity: entity, Relation: relation, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(entity, relation, format string, args ...any) {
	r.Warnings = append(r.Warnings, &ValidationError{Entity: entity, Relation: relation, Message: fmt.Sprintf(format, args...)})
}

// Validate checks that every entity has a table and a key, that every
// relation targets a registered entity and that through relations resolve.
// Entities sharing a table and many-to-many relations, which cannot be
// joined, are reported as warnings.
func (r *Registry) Validate() *ValidationResult {
	res := &ValidationResult{}
	tables := make(map[string]string)
	for _, e := range r.Entities() {
		if e.table == "" {
			res.errorf(e.name, "", "empty table name")
		}
		if e.key == "" {
			res.errorf(e.name, "", "empty key column")
		}
		if other, ok := tables[e.table]; ok {
			res.warnf(e.name, "", "table %q is also used by %s", e.table, other)
		} else {
			tables[e.table] = e.name
		}
		for _, name := range e.order {
			r.validateRelation(res, e, e.relations[name])
		}
	}
	return res
}

func (r *Registry) validateRelation(res *ValidationResult, e *Entity, rel *Relationship) {
	for _, t := range []*Entity{rel.target, rel.through} {
		if t == nil {
			continue
		}
		if registered, ok := r.entities[t.name]; !ok || registered != t {
			res.errorf(e.name, rel.name, "target %s is not registered", t.name)
		}
	}
	switch rel.kind {
	case KindThrough:
		if _, err := e.Relation(rel.name); err != nil {
			res.errorf(e.name, rel.name, "%v", err)
		}
	case KindBelongsToMany:
		res.warnf(e.name, rel.name, "many-to-many relations over %q cannot be joined", rel.pivot)
	}
}
