package main

import (
	"bytes"
	"fmt"
	"go/token"
	"io"
	"log/slog"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/skosovsky/tplocate"
	"github.com/skosovsky/tplocate/config"
)

type genOptions struct {
	roots   []string
	config  string
	ext     string
	pkg     string
	out     string
	verbose bool
}

func newRootCommand() *cobra.Command {
	var opts genOptions
	cmd := &cobra.Command{
		Use:   "tplocate-gen",
		Short: "Generate Go constants for template names",
		Long: `tplocate-gen enumerates templates under the given roots (or the roots of a
YAML locator config) and writes a Go file with a constant per template name
plus an All slice in sorted order.

Roots are searched in the order given; a name present under several roots
is emitted once.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return run(cmd.OutOrStdout(), logger, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringArrayVar(&opts.roots, "root", nil, "template root directory, repeatable, searched in order")
	flags.StringVar(&opts.config, "config", "", "YAML locator config file")
	flags.StringVar(&opts.ext, "ext", "", "template extension (default: tpl, or the config's)")
	flags.StringVar(&opts.pkg, "pkg", "templates", "package name of the generated file")
	flags.StringVarP(&opts.out, "out", "o", "-", "output file, - for stdout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log locator activity")
	cmd.MarkFlagsMutuallyExclusive("root", "config")
	cmd.MarkFlagsOneRequired("root", "config")
	return cmd
}

func run(stdout io.Writer, logger *slog.Logger, opts genOptions) error {
	if !token.IsIdentifier(opts.pkg) {
		return fmt.Errorf("invalid package name %q", opts.pkg)
	}
	loc, err := newLocator(logger, opts)
	if err != nil {
		return err
	}
	names, err := loc.ListExt(opts.ext)
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}
	var buf bytes.Buffer
	if err := generate(&buf, opts.pkg, names); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if opts.out == "" || opts.out == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := atomic.WriteFile(opts.out, &buf); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	logger.Info("generated template names", "out", opts.out, "count", len(names))
	return nil
}

func newLocator(logger *slog.Logger, opts genOptions) (*tplocate.Locator, error) {
	if opts.config != "" {
		return config.Load(opts.config, tplocate.WithLogger(logger))
	}
	return tplocate.New(opts.roots, tplocate.WithLogger(logger))
}
