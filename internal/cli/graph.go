package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/cargo-dep/pkg/config"
	"github.com/matzehuels/cargo-dep/pkg/errors"
	"github.com/matzehuels/cargo-dep/pkg/observability"
	"github.com/matzehuels/cargo-dep/pkg/pipeline"
)

// addGraphFlags registers the flags of the graph command. Flag names are the
// config keys, so every flag can also come from the environment or the
// config file.
func addGraphFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.String("manifest-path", "", "path to Cargo.toml")
	f.String("metadata-file", "", "read `cargo metadata` JSON from a file instead of running cargo (- for stdin)")
	f.String("graph-file", "", "render a graph exported with --format json or yaml instead of running cargo (- for JSON on stdin)")
	f.StringSliceP("package", "p", nil, "package to start from (repeatable; default: all workspace members)")
	f.StringSlice("exclude", nil, "package to leave out along with everything only reachable through it (repeatable)")
	f.StringP("format", "f", config.FormatDOT, "output format: "+strings.Join(config.Formats, ", "))
	f.StringP("output", "o", "", "write output to a file instead of stdout")
	f.String("cargo", config.DefaultCargo, "cargo binary to run")
	f.Bool("no-cache", false, "do not read or write the metadata cache")
	f.Bool("refresh", false, "ignore cached metadata but store the fresh result")
	f.Duration("cache-ttl", config.DefaultCacheTTL, "how long cached metadata stays valid (0 keeps it until cleared)")
	f.Bool("pruned-edges", false, "keep edges that point into excluded packages (json and yaml list their targets as excluded)")
	f.Bool("edge-kinds", false, "draw dev-dependency edges dashed and build-dependency edges dotted (json and yaml always carry kinds)")
	f.String("config", "", "config file (default: ./"+config.FileName+" if present)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.MarkFlagsMutuallyExclusive("manifest-path", "metadata-file", "graph-file")
}

// runGraph loads configuration, runs the pipeline and writes its output.
// Nothing is written unless every stage succeeded.
func (c *CLI) runGraph(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cmd.Flags(), configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	if cfg.Output == "" && cfg.IsBinary() && isTerminal(cmd.OutOrStdout()) {
		return errors.New(errors.ErrCodeInvalidInput, "refusing to write %s output to a terminal; use --output or redirect stdout", cfg.Format)
	}

	observability.SetPipelineHooks(logHooks{logger})
	observability.SetCacheHooks(logHooks{logger})
	defer observability.Reset()

	runner, err := c.newRunner(cfg.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.FromConfig(cfg)
	opts.Refresh, _ = cmd.Flags().GetBool("refresh")
	opts.Stdin = cmd.InOrStdin()
	opts.Logger = logger

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		_, err := cmd.OutOrStdout().Write(result.Output)
		return err
	}
	if err := os.WriteFile(cfg.Output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	prog.done("Wrote %d of %d packages to %s", result.Stats.Included, result.Stats.Packages, cfg.Output)
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
