package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spikermint/vet"
)

type scanOptions struct {
	configPath   string
	baselinePath string
	severity     string
	noAST        bool
}

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan one or more paths for secrets",
		Long: `scan walks the given paths (default: current directory) and reports
every un-suppressed finding, one per line, as path:line: pattern_id.

This prints a plain summary only; structured output (JSON, SARIF) is the
job of a caller using the vet library directly, not this command.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}
			return runScan(cmd, roots, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", ".vet.toml", "path to .vet.toml config")
	cmd.Flags().StringVar(&opts.baselinePath, "baseline", "", "path to .vet-baseline.json")
	cmd.Flags().StringVar(&opts.severity, "severity", "", "minimum severity to report (overrides config)")
	cmd.Flags().BoolVar(&opts.noAST, "no-ast", false, "disable structural (AST) extraction")

	return cmd
}

func runScan(cmd *cobra.Command, roots []string, opts *scanOptions) error {
	scanOpts := vet.DefaultScanOptions()

	if data, err := os.ReadFile(opts.configPath); err == nil {
		scanOpts, err = vet.LoadConfig(scanOpts, data)
		if err != nil {
			return fmt.Errorf("load config %s: %w", opts.configPath, err)
		}
	}

	if opts.baselinePath != "" {
		data, err := os.ReadFile(opts.baselinePath)
		if err != nil {
			return fmt.Errorf("read baseline %s: %w", opts.baselinePath, err)
		}
		baseline, err := vet.LoadBaseline(data)
		if err != nil {
			return fmt.Errorf("load baseline %s: %w", opts.baselinePath, err)
		}
		scanOpts.Baseline = baseline
	}

	if opts.severity != "" {
		scanOpts.SeverityFloor = opts.severity
	}
	if opts.noAST {
		scanOpts.ASTEnabled = false
	}

	result, err := vet.Scan(cmd.Context(), roots, scanOpts)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	for _, f := range result.Findings {
		loc := f.Locations[0]
		fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: %s [%s]\n", shortPath(loc.Path), loc.Line, f.PatternID.String(), f.Severity.String())
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", d)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d finding(s)\n", len(result.Findings))
	return nil
}

func shortPath(p string) string {
	if rel, err := filepath.Rel(".", p); err == nil {
		return rel
	}
	return p
}
