// The crablint command checks Rust crates against the lint rule catalogue.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crablint/crablint"
	"github.com/crablint/crablint/runner"
)

func main() {
	var findings int
	cmd := newRootCommand(&findings)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "crablint:", err)
		os.Exit(2)
	}
	if findings > 0 {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	enable     []string
	verbose    bool
	exitZero   bool
}

func newRootCommand(findings *int) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "crablint [flags] CRATE_DIR...",
		Short: "crablint checks Rust crates for unstructured error types and other lint rules",
		Long: "crablint analyses the declared function signatures of Rust crates.\n" +
			"All rules are opt-in: enable them via --enable or a " + runner.DefaultConfigName + " file.\n" +
			"Findings are reported as notes; the non-zero exit code is a CI convenience\n" +
			"and can be suppressed with --exit-zero.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := run(opts, args, cmd.OutOrStdout())
			if !opts.exitZero {
				*findings = n
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a config file (default: "+runner.DefaultConfigName+" in the working directory, if present)")
	cmd.Flags().StringSliceVar(&opts.enable, "enable", nil, "rule to enable, repeatable")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.exitZero, "exit-zero", false, "exit 0 even when findings were reported")

	cmd.AddCommand(newRulesCommand())
	return cmd
}

func run(opts options, dirs []string, out io.Writer) (int, error) {
	log := zap.NewNop().Sugar()
	if opts.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return 0, err
		}
		defer logger.Sync()
		log = logger.Sugar()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return 0, err
	}
	for _, name := range opts.enable {
		if err := cfg.Enable(name); err != nil {
			return 0, err
		}
	}

	findings := 0
	for _, dir := range dirs {
		diags, err := runner.LintCrate(dir, runner.Options{Config: cfg, Log: log})
		if err != nil {
			return findings, err
		}
		runner.Render(out, diags)
		findings += len(diags)
	}
	return findings, nil
}

func loadConfig(opts options) (*runner.Config, error) {
	if opts.configPath != "" {
		return runner.LoadConfig(opts.configPath)
	}
	if _, err := os.Stat(runner.DefaultConfigName); err == nil {
		return runner.LoadConfig(runner.DefaultConfigName)
	}
	return &runner.Config{}, nil
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalogue",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, r := range crablint.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, since %s)\n    %s\n", r.Name, r.Group, r.Since, r.Doc)
			}
		},
	}
}
