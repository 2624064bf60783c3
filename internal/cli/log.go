// Package cli implements the cargo-dep command-line interface.
//
// The root command renders the dependency graph of a cargo workspace. The
// CLI is built using cobra; flags are layered with the environment and an
// optional config file through pkg/config.
//
// # Commands
//
// The commands are:
//   - cargo-dep: Render the workspace dependency graph (DOT by default)
//   - cache: Manage the cargo metadata cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr so that stdout carries only the graph. Loggers are passed through
// context.Context.
//
// # Example
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the stderr logger of a run. Timestamps use centiseconds
// because a whole run usually takes well under a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress reports the end of a run that wrote its graph to a file.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the formatted message at info level with the time elapsed since
// newProgress, rounded to the millisecond:
//
//	INFO Wrote 42 of 97 packages to deps.dot elapsed=12ms
func (p *progress) done(format string, args ...any) {
	p.logger.Info(fmt.Sprintf(format, args...), "elapsed", time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

// withLogger attaches l to ctx for the subcommands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger. Commands run
// without the root's pre-run hook get an info-level logger on stderr.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
