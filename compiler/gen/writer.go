package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/veloxjoin/schema"
)

// EntitiesFile is the file WriteDir writes the entity list to.
const EntitiesFile = "entities.go"

// fileTask is a single file to render and write.
type fileTask struct {
	name   string // file name, relative to the output directory
	entity string
	build  func(f *jen.File)
}

// WriteDir writes the constants of reg as package pkg into dir: the entity
// list to entities.go and one <entity>.go file per entity. Files are written
// in parallel and formatted with goimports.
func WriteDir(ctx context.Context, reg *schema.Registry, pkg, dir string) error {
	all, err := collect(reg)
	if err != nil {
		return err
	}
	tasks := []fileTask{{
		name:  EntitiesFile,
		build: func(f *jen.File) { genEntities(f, all) },
	}}
	names := map[string]string{EntitiesFile: ""}
	for _, d := range all {
		d := d
		name := inflect.Underscore(d.entity.Name()) + ".go"
		if _, ok := names[name]; ok {
			return NewGenerationError(d.entity.Name(), name, "file name already in use", nil)
		}
		names[name] = d.entity.Name()
		tasks = append(tasks, fileTask{
			name:   name,
			entity: d.entity.Name(),
			build:  func(f *jen.File) { genEntity(f, d) },
		})
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, t := range tasks {
		t := t
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return writeFile(pkg, dir, t)
			}
		})
	}
	return eg.Wait()
}

// writeFile renders the task, formats it with goimports and writes it.
func writeFile(pkg, dir string, t fileTask) error {
	f := newFile(pkg)
	t.build(f)
	buf, err := render(f, t.name)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, t.name)
	formatted, err := imports.Process(path, buf, nil)
	if err != nil {
		return NewGenerationError(t.entity, t.name, "format", err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError(t.entity, t.name, "write", err)
	}
	return nil
}
