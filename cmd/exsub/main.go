// Command exsub delimits species from a forest of rooted trees whose
// internal nodes are labeled with integer support values, using exhaustive
// subdivision. The delimited species are written to standard output as a
// single Newick tree.
//
// Usage:
//
//	exsub [flags] [tree-file ...]
//
// With no files, or with "-", trees are read from standard input. Files may
// be in Newick or NEXUS format, and may be gzipped.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TuftsBCB/exsub/config"
	"github.com/TuftsBCB/exsub/subdiv"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	minSupport int
	format     string
	workers    int
	strict     bool
	report     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "exsub [flags] [tree-file ...]",
		Short: "Delimit species from support-annotated trees by exhaustive subdivision",
		Long: `exsub collects every clade of the input trees, summing the integer
support labels of identical clades across all trees. Each taxon is then
assigned to the smallest clade containing it whose support is at least the
minimum support, and clades nested inside a chosen clade are discarded.

The result is written to standard output as a Newick tree in which every
delimited clade is labeled with its summed support, e.g.

  ((A,B,C)3,(D,E)2,F);

Trees are read from the named files, or from standard input when no file
(or "-") is given. Newick and NEXUS input is accepted, and files ending
with ".gz" are decompressed.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return run(cmd.Context(), cfg, args, cmd.InOrStdin(), cmd.OutOrStdout(), log)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.IntVarP(&opts.minSupport, "min-support", "s", 1, "Minimum summed support of a delimited clade")
	flags.StringVarP(&opts.format, "format", "f", config.FormatAuto, "Input format: auto, newick or nexus")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Trees processed concurrently (default: number of CPUs)")
	flags.BoolVar(&opts.strict, "strict", false, "Reject internal nodes without a support label")
	flags.StringVar(&opts.report, "report", "", "Write a YAML report of the delimited clades to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every step at debug level")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "exsub version %s\n", version)
		},
	})
	return cmd
}

// resolveConfig loads the configuration file (if any) and applies the flags
// that were given explicitly.
func resolveConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("min-support") {
		cfg.MinSupport = opts.minSupport
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if flags.Changed("report") {
		cfg.Report = opts.report
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	zcfg.Encoding = "console"
	zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

func run(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	trees, err := readForest(args, cfg.Format, stdin, log)
	if err != nil {
		return err
	}

	res, err := subdiv.Delimit(ctx, trees, subdiv.Options{
		MinSupport: cfg.MinSupport,
		Workers:    cfg.Workers,
		Strict:     cfg.Strict,
		Logger:     log,
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(stdout, res.Tree); err != nil {
		return err
	}

	if cfg.Report != "" {
		if err := writeReport(cfg.Report, res); err != nil {
			return err
		}
		log.Info("Wrote report", zap.String("path", cfg.Report))
	}
	return nil
}

func writeReport(name string, res *subdiv.Result) error {
	report, err := res.Report()
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := report.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
