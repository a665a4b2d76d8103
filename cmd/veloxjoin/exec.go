package main

import (
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/syssam/veloxjoin/dialect"
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/internal/cli"
)

func (a *app) execCmd() *cobra.Command {
	var (
		spec querySpec
		dsn  string
	)
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Run a compiled query and print the rows as JSON",
		Example: `  # Query a SQLite database file
  veloxjoin exec --dialect sqlite --dsn blog.db --entity blog --join comments

  # Use the database settings of veloxjoin.yaml
  veloxjoin exec --entity user --join blogs --select users.name,blogs.title`,
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
			source := dsn
			if source == "" {
				if source, err = a.cfg.ResolvedDSN(); err != nil {
					return cli.ConfigError("resolving dsn", err)
				}
			}
			drv, err := sql.Open(a.cfg.Driver(), source)
			if err != nil {
				return cli.DBConnectError("opening database", err)
			}
			defer drv.Close()
			var conn dialect.Querier = drv
			if a.verbose || a.cfg.Verbose {
				conn = sql.NewDebugDriver(drv, sql.DebugWithLogger(a.log))
			}
			rows, err := sql.QueryContext(cmd.Context(), conn, q)
			if err != nil {
				return err
			}
			records, err := sql.ScanMaps(rows)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	spec.register(cmd)
	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name (default: from configuration)")
	return cmd
}
