// Package load reads entity and relationship declarations from YAML
// documents and builds a schema.Registry from them.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/syssam/veloxjoin/contrib/mixin"
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/schema"
)

// Schema is the document form of a registry.
type Schema struct {
	Entities []*Entity `yaml:"entities"`
}

// Entity is the document form of a schema.Entity.
type Entity struct {
	Name       string      `yaml:"name"`
	Table      string      `yaml:"table,omitempty"`
	Key        string      `yaml:"key,omitempty"`
	SoftDelete SoftDelete  `yaml:"soft_delete,omitempty"`
	Relations  []*Relation `yaml:"relations,omitempty"`
}

// Relation is the document form of a relationship declaration. Which
// fields apply depends on Kind.
type Relation struct {
	Name              string         `yaml:"name"`
	Kind              schema.Kind    `yaml:"kind"`
	Target            string         `yaml:"target,omitempty"`
	Through           string         `yaml:"through,omitempty"`
	Via               string         `yaml:"via,omitempty"`
	Then              string         `yaml:"then,omitempty"`
	ForeignKey        string         `yaml:"foreign_key,omitempty"`
	LocalKey          string         `yaml:"local_key,omitempty"`
	ThroughForeignKey string         `yaml:"through_foreign_key,omitempty"`
	ThroughLocalKey   string         `yaml:"through_local_key,omitempty"`
	Pivot             string         `yaml:"pivot,omitempty"`
	Where             map[string]any `yaml:"where,omitempty"`
}

// SoftDelete is the soft delete column of an entity, or empty if rows are
// never soft deleted. In documents it is either a boolean, selecting the
// default deleted_at column, or a column name.
type SoftDelete string

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (s *SoftDelete) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("load: line %d: soft_delete must be a boolean or a column name", n.Line)
	}
	if n.Tag == "!!bool" {
		var on bool
		if err := n.Decode(&on); err != nil {
			return err
		}
		*s = ""
		if on {
			*s = mixin.DeletedAtColumn
		}
		return nil
	}
	*s = SoftDelete(n.Value)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (s SoftDelete) MarshalYAML() (any, error) {
	switch s {
	case "":
		return false, nil
	case mixin.DeletedAtColumn:
		return true, nil
	default:
		return string(s), nil
	}
}

// UnmarshalSchema decodes a schema document. Unknown keys are rejected.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("load: decode schema: %w", err)
	}
	return s, nil
}

// MarshalSchema encodes s as a YAML document.
func MarshalSchema(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("load: encode schema: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse decodes a schema document and builds its registry.
func Parse(buf []byte) (*schema.Registry, error) {
	s, err := UnmarshalSchema(buf)
	if err != nil {
		return nil, err
	}
	return s.Registry()
}

// Load reads and parses the schema file at path.
func Load(path string) (*schema.Registry, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	reg, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Registry builds the registry the document describes. Entities are created
// first so relations may reference entities declared later in the file.
// Referential problems that do not prevent declaration, such as a through
// relation over undeclared hops, are left to schema.Registry.Validate.
func (s *Schema) Registry() (*schema.Registry, error) {
	reg := schema.NewRegistry()
	for i, d := range s.Entities {
		if d.Name == "" {
			return nil, fmt.Errorf("load: entity #%d: missing name", i+1)
		}
		if err := reg.Register(d.entity()); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
	}
	for _, d := range s.Entities {
		e, err := reg.Entity(d.Name)
		if err != nil {
			return nil, err
		}
		for _, r := range d.Relations {
			if err := r.declare(reg, e); err != nil {
				return nil, fmt.Errorf("load: entity %q relation %q: %w", d.Name, r.Name, err)
			}
		}
	}
	return reg, nil
}

func (d *Entity) entity() *schema.Entity {
	var opts []schema.Option
	if d.Table != "" {
		opts = append(opts, schema.Table(d.Table))
	}
	if d.Key != "" {
		opts = append(opts, schema.Key(d.Key))
	}
	if d.SoftDelete != "" {
		opts = append(opts, mixin.SoftDeleteColumn(string(d.SoftDelete)))
	}
	return schema.NewEntity(d.Name, opts...)
}

func (r *Relation) declare(reg *schema.Registry, e *schema.Entity) error {
	if r.Name == "" {
		return errors.New("missing name")
	}
	if e.HasRelation(r.Name) {
		return errors.New("declared twice")
	}
	opts := r.options()
	switch r.Kind {
	case schema.KindThrough:
		if r.Via == "" || r.Then == "" {
			return errors.New("through relations need via and then")
		}
		e.Through(r.Name, r.Via, r.Then, opts...)
		return nil
	case schema.KindHasMany, schema.KindHasOne, schema.KindBelongsTo,
		schema.KindHasManyThrough, schema.KindHasOneThrough, schema.KindBelongsToMany:
	case "":
		return errors.New("missing kind")
	default:
		return fmt.Errorf("unknown kind %q", r.Kind)
	}
	if r.Target == "" {
		return errors.New("missing target")
	}
	target, err := reg.Entity(r.Target)
	if err != nil {
		return err
	}
	switch r.Kind {
	case schema.KindHasMany:
		e.HasMany(r.Name, target, opts...)
	case schema.KindHasOne:
		e.HasOne(r.Name, target, opts...)
	case schema.KindBelongsTo:
		e.BelongsTo(r.Name, target, opts...)
	case schema.KindBelongsToMany:
		e.BelongsToMany(r.Name, target, r.Pivot, opts...)
	default:
		if r.Through == "" {
			return errors.New("missing through")
		}
		through, err := reg.Entity(r.Through)
		if err != nil {
			return err
		}
		if r.Kind == schema.KindHasOneThrough {
			e.HasOneThrough(r.Name, target, through, opts...)
		} else {
			e.HasManyThrough(r.Name, target, through, opts...)
		}
	}
	return nil
}

func (r *Relation) options() []schema.RelationOption {
	var opts []schema.RelationOption
	if r.ForeignKey != "" {
		opts = append(opts, schema.ForeignKey(r.ForeignKey))
	}
	if r.LocalKey != "" {
		opts = append(opts, schema.LocalKey(r.LocalKey))
	}
	if r.ThroughForeignKey != "" {
		opts = append(opts, schema.ThroughForeignKey(r.ThroughForeignKey))
	}
	if r.ThroughLocalKey != "" {
		opts = append(opts, schema.ThroughLocalKey(r.ThroughLocalKey))
	}
	columns := make([]string, 0, len(r.Where))
	for c := range r.Where {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	for _, c := range columns {
		opts = append(opts, schema.Constraint(whereColumn(c, r.Where[c])))
	}
	return opts
}

// whereColumn returns an equality constraint on column. A null value
// matches NULL columns.
func whereColumn(column string, value any) func(schema.View) *sql.Predicate {
	return func(v schema.View) *sql.Predicate {
		if value == nil {
			return sql.IsNull(v.C(column))
		}
		return sql.EQ(v.C(column), value)
	}
}
