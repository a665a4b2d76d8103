package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxjoin/internal/cli"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the schema for unresolvable relations",
		Long: `Check that every relation targets a declared entity and that through
relations resolve. Errors make the command exit non-zero; warnings do not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			res := reg.Validate()
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(res.String(), "\n"))
			if res.HasErrors() {
				return cli.ValidationError(fmt.Sprintf("schema has %d errors", len(res.Errors)), nil)
			}
			return nil
		},
	}
}
