package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxjoin/compiler/gen"
)

func (a *app) genCmd() *cobra.Command {
	var (
		out    string
		pkg    string
		stdout bool
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate Go constants for entity and relation names",
		Example: `  # Write one file per entity into internal/blogschema
  veloxjoin gen --out internal/blogschema

  # Print a single file
  veloxjoin gen --stdout --package blogschema`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			if pkg == "" {
				pkg = filepath.Base(out)
			}
			if stdout {
				buf, err := gen.Generate(reg, pkg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(buf)
				return err
			}
			if err := gen.WriteDir(cmd.Context(), reg, pkg, out); err != nil {
				return err
			}
			a.log.Info("constants generated", "dir", out, "package", pkg, "entities", reg.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", reg.Len()+1, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "veloxjoinschema", "output directory")
	cmd.Flags().StringVar(&pkg, "package", "", "package name (default: base name of --out)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print a single file instead of writing --out")
	return cmd
}
