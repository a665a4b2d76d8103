// Command veloxjoin compiles relationship joins declared in a YAML schema.
//
// The CLI supports:
//   - compile: print the SQL of a query with relation joins
//   - exec: run the compiled query against a database and print rows as JSON
//   - gen: generate Go constants for entity and relation names
//   - entities: list the entities and relations of the schema
//   - validate: check the schema for unresolvable relations
//
// Usage:
//
//	veloxjoin compile --entity blog --join comments.author --alias-relations
//	veloxjoin exec --entity blog --join comments --dialect sqlite --dsn blog.db
//	veloxjoin gen --out internal/blogschema
package main

import (
	"context"
	"io"
	"os"

	"github.com/syssam/veloxjoin/internal/cli"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return cli.Report(stderr, root.ExecuteContext(ctx))
}
