package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxjoin/schema"
)

func (a *app) entitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the entities and relations of the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			entities := [][]string{{"ENTITY", "TABLE", "KEY", "SCOPES"}}
			relations := [][]string{{"RELATION", "KIND", "TARGET"}}
			for _, e := range reg.Entities() {
				scopes := make([]string, 0, len(e.Scopes()))
				for _, s := range e.Scopes() {
					scopes = append(scopes, s.Name)
				}
				entities = append(entities, []string{e.Name(), e.Table(), e.Key(), orDash(strings.Join(scopes, ","))})
				for _, name := range e.Relations() {
					rel, err := e.Relation(name)
					if err != nil {
						relations = append(relations, []string{e.Name() + "." + name, "through", "error: " + err.Error()})
						continue
					}
					relations = append(relations, []string{e.Name() + "." + name, string(rel.Kind()), describeTarget(rel)})
				}
			}
			printTable(w, entities)
			if len(relations) > 1 {
				fmt.Fprintln(w)
				printTable(w, relations)
			}
			return nil
		},
	}
}

func describeTarget(rel *schema.Relationship) string {
	switch {
	case rel.Kind() == schema.KindThrough:
		via, then := rel.Path()
		return fmt.Sprintf("%s (via %s.%s)", rel.Target().Name(), via, then)
	case rel.Through() != nil:
		return fmt.Sprintf("%s (through %s)", rel.Target().Name(), rel.Through().Name())
	case rel.Pivot() != "":
		return fmt.Sprintf("%s (pivot %s)", rel.Target().Name(), rel.Pivot())
	default:
		return rel.Target().Name()
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printTable writes rows as left aligned columns separated by two spaces.
func printTable(w io.Writer, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
		}
		fmt.Fprintln(w, b.String())
	}
}
