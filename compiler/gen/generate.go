// Package gen generates Go constants for the entities and relation names of
// a schema registry, so application code can write
//
//	c.JoinRelation(q, blogschema.BlogComments)
//
// instead of repeating string literals.
package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/veloxjoin/schema"
)

// Header is the comment generated files start with.
const Header = "Code generated by veloxjoin. DO NOT EDIT."

// entitiesVar is the name of the generated entity list.
const entitiesVar = "Entities"

// decl is a generated constant.
type decl struct {
	name  string
	value string
}

// entityDecls holds the constants generated for one entity.
type entityDecls struct {
	entity    *schema.Entity
	names     []decl // Entity<Name>, Table<Name>, Key<Name>
	relations []decl // <Name><Relation>
}

// Pascal returns the exported Go identifier for an entity or relation name:
// "blog_post" and "blogPost" both become "BlogPost".
func Pascal(name string) string {
	return inflect.Camelize(inflect.Underscore(name))
}

// collect assigns an identifier to every constant of the registry and fails
// if two of them collide.
func collect(reg *schema.Registry) ([]*entityDecls, error) {
	seen := map[string]string{entitiesVar: "the entity list"}
	var all []*entityDecls
	for _, e := range reg.Entities() {
		d := &entityDecls{entity: e}
		add := func(list *[]decl, name, value, what string) error {
			if prev, ok := seen[name]; ok {
				return NewGenerationError(e.Name(), "", fmt.Sprintf("identifier %s of %s collides with %s", name, what, prev), nil)
			}
			seen[name] = what
			*list = append(*list, decl{name: name, value: value})
			return nil
		}
		p := Pascal(e.Name())
		if err := add(&d.names, "Entity"+p, e.Name(), "entity "+e.Name()); err != nil {
			return nil, err
		}
		if err := add(&d.names, "Table"+p, e.Table(), "table of "+e.Name()); err != nil {
			return nil, err
		}
		if err := add(&d.names, "Key"+p, e.Key(), "key of "+e.Name()); err != nil {
			return nil, err
		}
		for _, r := range e.Relations() {
			if err := add(&d.relations, p+Pascal(r), r, "relation "+e.Name()+"."+r); err != nil {
				return nil, err
			}
		}
		all = append(all, d)
	}
	return all, nil
}

// Generate renders one Go file in package pkg holding the constants of
// every entity of the registry.
func Generate(reg *schema.Registry, pkg string) ([]byte, error) {
	all, err := collect(reg)
	if err != nil {
		return nil, err
	}
	f := newFile(pkg)
	genEntities(f, all)
	for _, d := range all {
		genEntity(f, d)
	}
	return render(f, "")
}

func newFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(Header)
	return f
}

func render(f *jen.File, name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("", name, "render", err)
	}
	return buf.Bytes(), nil
}

// genEntities emits the list of entity names.
func genEntities(f *jen.File, all []*entityDecls) {
	f.Comment(entitiesVar + " lists the entity names in registration order.")
	f.Var().Id(entitiesVar).Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, d := range all {
			g.Id(d.names[0].name)
		}
	})
}

// genEntity emits the name and relation constants of one entity.
func genEntity(f *jen.File, d *entityDecls) {
	f.Line()
	f.Comment(fmt.Sprintf("Names of the %s entity.", d.entity.Name()))
	f.Const().DefsFunc(func(defs *jen.Group) {
		for _, c := range d.names {
			defs.Id(c.name).Op("=").Lit(c.value)
		}
	})
	if len(d.relations) == 0 {
		return
	}
	f.Line()
	f.Comment(fmt.Sprintf("Relations declared on %s.", d.entity.Name()))
	f.Const().DefsFunc(func(defs *jen.Group) {
		for _, c := range d.relations {
			defs.Id(c.name).Op("=").Lit(c.value)
		}
	})
}
