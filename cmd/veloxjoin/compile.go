package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxjoin/join"
	"github.com/syssam/veloxjoin/query"
	"github.com/syssam/veloxjoin/schema"
)

// querySpec describes the query the compile and exec commands build.
type querySpec struct {
	entity         string
	joins          []string
	many           []string
	one            []string
	alias          string
	aliasRelations bool
	kind           string
	withTrashed    bool
	columns        []string
	limit          int
}

func (s *querySpec) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&s.entity, "entity", "", "entity the query selects from (required)")
	fs.StringSliceVar(&s.joins, "join", nil, "relation path to join, e.g. comments.author (repeatable)")
	fs.StringSliceVar(&s.many, "many", nil, "entity to join as the many side (repeatable)")
	fs.StringSliceVar(&s.one, "one", nil, "entity to join as the one side (repeatable)")
	fs.StringVar(&s.alias, "alias", "", "alias of the last segment of the --join path (one path only)")
	fs.BoolVar(&s.aliasRelations, "alias-relations", false, "alias every joined table with its relation name")
	fs.StringVar(&s.kind, "kind", "inner", "join kind: inner, left, right, full")
	fs.BoolVar(&s.withTrashed, "with-trashed", false, "include soft deleted rows of the selected entity")
	fs.StringSliceVar(&s.columns, "select", nil, "columns to select (default *)")
	fs.IntVar(&s.limit, "limit", 0, "maximum number of rows")
	_ = cmd.MarkFlagRequired("entity")
}

// build compiles the described query.
func (s *querySpec) build(a *app, reg *schema.Registry) (*query.Query, error) {
	if s.alias != "" && len(s.joins) > 1 {
		return nil, fmt.Errorf("--alias applies to a single --join path, got %d", len(s.joins))
	}
	e, err := reg.Entity(s.entity)
	if err != nil {
		return nil, err
	}
	q := query.New(e, query.Dialect(a.cfg.Dialect)).Select(s.columns...)
	if s.withTrashed {
		q.WithTrashed()
	}
	if s.limit > 0 {
		q.Limit(s.limit)
	}
	c := join.New(join.WithLogger(a.log))
	pathOpts := []join.Option{join.Kind(s.kind)}
	if s.alias != "" {
		pathOpts = append(pathOpts, join.As(s.alias))
	}
	if s.aliasRelations {
		pathOpts = append(pathOpts, join.AliasAsRelations())
	}
	for _, path := range s.joins {
		if err := c.JoinRelation(q, path, pathOpts...); err != nil {
			return nil, err
		}
	}
	for _, name := range s.many {
		t, err := reg.Entity(name)
		if err != nil {
			return nil, err
		}
		if err := c.JoinMany(q, join.Entity(t), join.Kind(s.kind)); err != nil {
			return nil, err
		}
	}
	for _, name := range s.one {
		t, err := reg.Entity(name)
		if err != nil {
			return nil, err
		}
		if err := c.JoinOne(q, join.Entity(t), join.Kind(s.kind)); err != nil {
			return nil, err
		}
	}
	return q, nil
}

func (a *app) compileCmd() *cobra.Command {
	var spec querySpec
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the SQL of a query with relation joins",
		Example: `  # Join a relation path, aliasing each table by its relation name
  veloxjoin compile --entity blog --join comments.author --alias-relations

  # Join an entity directly as the many side
  veloxjoin compile --entity user --many blog --kind left`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			q, err := spec.build(a, reg)
			if err != nil {
				return err
			}
			if len(q.Joins()) == 0 {
				return errors.New("nothing to join: use --join, --many or --one")
			}
			sql, args := q.Query()
			fmt.Fprintln(cmd.OutOrStdout(), sql)
			if len(args) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "-- args: %v\n", args)
			}
			return nil
		},
	}
	spec.register(cmd)
	return cmd
}
