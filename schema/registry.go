package schema

import (
	"fmt"

	"github.com/syssam/veloxjoin"
)

// Registry holds entities by name.
type Registry struct {
	entities map[string]*Entity
	order    []string
}

// NewRegistry returns a registry holding the given entities. It panics if
// two entities share a name; use Register to get an error instead.
func NewRegistry(entities ...*Entity) *Registry {
	r := &Registry{entities: make(map[string]*Entity)}
	if err := r.Register(entities...); err != nil {
		panic(err)
	}
	return r
}

// Register adds entities to the registry.
func (r *Registry) Register(entities ...*Entity) error {
	for _, e := range entities {
		if _, ok := r.entities[e.name]; ok {
			return fmt.Errorf("schema: entity %q registered twice", e.name)
		}
		r.entities[e.name] = e
		r.order = append(r.order, e.name)
	}
	return nil
}

// Entity returns the entity with the given name.
func (r *Registry) Entity(name string) (*Entity, error) {
	e, ok := r.entities[name]
	if !ok {
		return nil, veloxjoin.NewNotFoundError("entity", name)
	}
	return e, nil
}

// Entities returns the registered entities in registration order.
func (r *Registry) Entities() []*Entity {
	es := make([]*Entity, 0, len(r.order))
	for _, name := range r.order {
		es = append(es, r.entities[name])
	}
	return es
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.order)
}
