package veloxjoin

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes of the join compiler.
var (
	// ErrUnknownRelation is returned when a relation name is not declared on an entity.
	ErrUnknownRelation = errors.New("veloxjoin: unknown relation")

	// ErrUnsupportedRelationShape is returned when a relationship cannot be
	// expressed as one-to-many, many-to-one, or a two-hop chain of those.
	ErrUnsupportedRelationShape = errors.New("veloxjoin: unsupported relation shape")

	// ErrUnsupportedInputType is returned when a join target is not an entity,
	// a model instance, a query, or a relationship.
	ErrUnsupportedInputType = errors.New("veloxjoin: unsupported input type")

	// ErrNotFound is returned when a named entity is missing from a registry.
	ErrNotFound = errors.New("veloxjoin: not found")
)

// UnknownRelationError reports a relation name that is not declared on an entity.
type UnknownRelationError struct {
	entity   string
	relation string
}

// Error returns the error string.
func (e *UnknownRelationError) Error() string {
	return fmt.Sprintf("veloxjoin: relation %q is not declared on %s", e.relation, e.entity)
}

// Is reports whether the target error matches UnknownRelationError.
// This allows errors.Is(err, ErrUnknownRelation) to return true.
func (e *UnknownRelationError) Is(err error) bool {
	return err == ErrUnknownRelation
}

// Entity returns the name of the entity the relation was looked up on.
func (e *UnknownRelationError) Entity() string {
	return e.entity
}

// Relation returns the missing relation name.
func (e *UnknownRelationError) Relation() string {
	return e.relation
}

// NewUnknownRelationError returns a new UnknownRelationError.
func NewUnknownRelationError(entity, relation string) *UnknownRelationError {
	return &UnknownRelationError{entity: entity, relation: relation}
}

// IsUnknownRelation returns true if the error is an UnknownRelationError.
func IsUnknownRelation(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownRelationError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownRelation)
}

// UnsupportedRelationShapeError reports a relationship the compiler cannot turn into joins.
type UnsupportedRelationShapeError struct {
	entity   string
	relation string
	shape    string
}

// Error returns the error string.
func (e *UnsupportedRelationShapeError) Error() string {
	return fmt.Sprintf("veloxjoin: relation %q on %s has unsupported shape %s", e.relation, e.entity, e.shape)
}

// Is reports whether the target error matches UnsupportedRelationShapeError.
func (e *UnsupportedRelationShapeError) Is(err error) bool {
	return err == ErrUnsupportedRelationShape
}

// Entity returns the name of the entity declaring the relation.
func (e *UnsupportedRelationShapeError) Entity() string {
	return e.entity
}

// Relation returns the relation name.
func (e *UnsupportedRelationShapeError) Relation() string {
	return e.relation
}

// Shape returns the name of the rejected shape.
func (e *UnsupportedRelationShapeError) Shape() string {
	return e.shape
}

// NewUnsupportedRelationShapeError returns a new UnsupportedRelationShapeError.
func NewUnsupportedRelationShapeError(entity, relation, shape string) *UnsupportedRelationShapeError {
	return &UnsupportedRelationShapeError{entity: entity, relation: relation, shape: shape}
}

// IsUnsupportedRelationShape returns true if the error is an UnsupportedRelationShapeError.
func IsUnsupportedRelationShape(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedRelationShapeError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedRelationShape)
}

// UnsupportedInputTypeError reports a join target of an unrecognized shape.
type UnsupportedInputTypeError struct {
	value any
}

// Error returns the error string.
func (e *UnsupportedInputTypeError) Error() string {
	if e.value == nil {
		return "veloxjoin: unsupported join target <nil>"
	}
	return fmt.Sprintf("veloxjoin: unsupported join target of type %T (%v)", e.value, e.value)
}

// Is reports whether the target error matches UnsupportedInputTypeError.
func (e *UnsupportedInputTypeError) Is(err error) bool {
	return err == ErrUnsupportedInputType
}

// Value returns the rejected input.
func (e *UnsupportedInputTypeError) Value() any {
	return e.value
}

// NewUnsupportedInputTypeError returns a new UnsupportedInputTypeError.
func NewUnsupportedInputTypeError(v any) *UnsupportedInputTypeError {
	return &UnsupportedInputTypeError{value: v}
}

// IsUnsupportedInputType returns true if the error is an UnsupportedInputTypeError.
func IsUnsupportedInputType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedInputTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedInputType)
}

// NotFoundError represents a lookup of an entity or relation that is not registered.
type NotFoundError struct {
	kind string
	name string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("veloxjoin: %s %q not found", e.kind, e.name)
}

// Is reports whether the target error matches NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Kind returns what was looked up, e.g. "entity".
func (e *NotFoundError) Kind() string {
	return e.kind
}

// Name returns the name that was looked up.
func (e *NotFoundError) Name() string {
	return e.name
}

// NewNotFoundError returns a new NotFoundError.
func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{kind: kind, name: name}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
