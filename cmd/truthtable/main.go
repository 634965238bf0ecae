// Package main is the entry point for the truthtable CLI and server.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lemonberrylabs/truthtable/pkg/config"
	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/render"
	"github.com/lemonberrylabs/truthtable/pkg/repl"
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:          "truthtable",
	Short:        "Propositional logic truth table generator",
	SilenceUsage: true,
	RunE:         runREPL,
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Prompt for expressions and print their truth tables",
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Print the truth table of a single expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

var checkCmd = &cobra.Command{
	Use:   "check <expression>",
	Short: "Validate an expression without evaluating it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API, web UI and gRPC API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("truthtable version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML config file (env TRUTHTABLE_CONFIG)")
	pf.Int("max-variables", 0, "Maximum number of distinct variables (default 5, env TRUTHTABLE_MAX_VARIABLES)")
	pf.Int("column-width", 0, "Table column width (default 15, env TRUTHTABLE_COLUMN_WIDTH)")
	pf.StringP("output", "o", "", "Output format: text, json or yaml (env TRUTHTABLE_OUTPUT)")

	rootCmd.Flags().Bool("continuous", false, "Keep prompting after a table was printed")
	replCmd.Flags().Bool("continuous", false, "Keep prompting after a table was printed")

	serveCmd.Flags().Int("port", 0, "HTTP server port (default 8787, env PORT)")
	serveCmd.Flags().Int("grpc-port", 0, "gRPC server port (default 8788, env GRPC_PORT)")
	serveCmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")

	rootCmd.AddCommand(replCmd, evalCmd, checkCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config chain and applies any flags set on cmd.
// Flags win over everything else.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := os.Getenv("TRUTHTABLE_CONFIG")
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetInt("max-variables"); v != 0 {
		cfg.MaxVariables = v
	}
	if v, _ := flags.GetInt("column-width"); v != 0 {
		cfg.ColumnWidth = v
	}
	if v, _ := flags.GetString("output"); v != "" {
		cfg.Output = v
	}
	if flags.Lookup("port") != nil {
		if v, _ := flags.GetInt("port"); v != 0 {
			cfg.Port = v
		}
		if v, _ := flags.GetInt("grpc-port"); v != 0 {
			cfg.GRPCPort = v
		}
		if v, _ := flags.GetString("host"); v != "" {
			cfg.Host = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	continuous, _ := cmd.Flags().GetBool("continuous")

	return repl.Run(cmd.InOrStdin(), cmd.OutOrStdout(), engine.New(cfg.MaxVariables), repl.Options{
		ColumnWidth: cfg.ColumnWidth,
		Format:      format,
		Continuous:  continuous,
	})
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	res, err := engine.New(cfg.MaxVariables).Evaluate(args[0])
	if err != nil {
		return describe(err)
	}
	return render.Write(cmd.OutOrStdout(), format, res, cfg.ColumnWidth)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	canonical, err := engine.New(cfg.MaxVariables).Validate(args[0])
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "valid: %s\n", canonical)
	return nil
}

// describe turns an engine error into the message the CLI reports.
func describe(err error) error {
	var ee *types.EngineError
	if !errors.As(err, &ee) {
		return err
	}
	switch {
	case ee.HasTag(types.TagSyntaxError):
		return fmt.Errorf("%s (%s: %s)", repl.InvalidMessage, ee.Rule, ee.Message)
	case ee.HasTag(types.TagVariableLimitExceeded):
		return errors.New(ee.Message)
	default:
		return fmt.Errorf("internal error: %w", err)
	}
}
