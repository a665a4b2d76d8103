package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxjoin/compiler/load"
	"github.com/syssam/veloxjoin/dialect"
	"github.com/syssam/veloxjoin/internal/cli"
	"github.com/syssam/veloxjoin/schema"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	// Persistent flags
	cfgFile    string
	schemaPath string
	dialect    string
	verbose    bool

	// Set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "veloxjoin",
		Short: "Compile relationship joins from a YAML schema",
		Long: `veloxjoin - relationship join compiler

veloxjoin reads entities and relationships from a YAML schema and compiles
relation names and dotted relation paths into SQL joins, carrying the default
scopes of joined entities into the join conditions.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: auto-discover veloxjoin.yaml)")
	pf.StringVar(&a.schemaPath, "schema", "", "path of the YAML entity schema")
	pf.StringVar(&a.dialect, "dialect", "", "SQL dialect: sqlite, mysql or postgres")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		a.compileCmd(),
		a.execCmd(),
		a.genCmd(),
		a.entitiesCmd(),
		a.validateCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	var err error
	a.cfg, a.configPath, err = cli.LoadConfig(a.cfgFile)
	if err != nil {
		return cli.ConfigError("loading configuration", err)
	}
	if a.dialect != "" {
		if !dialect.Known(a.dialect) {
			return cli.ConfigError(fmt.Sprintf("unknown dialect %q", a.dialect), nil)
		}
		a.cfg.Dialect = a.dialect
	}
	level := slog.LevelInfo
	if a.verbose || a.cfg.Verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.log.Debug("configuration loaded", "config", a.configPath, "schema", a.schema(), "dialect", a.cfg.Dialect)
	return nil
}

// schema returns the schema path: flag > config > default.
func (a *app) schema() string {
	return resolveString(a.schemaPath, a.cfg.Schema)
}

// registry loads the configured schema.
func (a *app) registry() (*schema.Registry, error) {
	reg, err := load.Load(a.schema())
	if err != nil {
		return nil, cli.SchemaError("loading schema", err)
	}
	a.log.Debug("schema loaded", "path", a.schema(), "entities", reg.Len())
	return reg, nil
}

// resolveString returns the first non-empty string from the provided values.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
