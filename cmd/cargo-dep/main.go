package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/cargo-dep/internal/cli"
	deperrors "github.com/matzehuels/cargo-dep/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}

// printError writes err and each of its causes on its own line.
func printError(w io.Writer, err error) {
	for i, msg := range deperrors.Causes(err) {
		if i == 0 {
			fmt.Fprintf(w, "Error: %s\n", msg)
			continue
		}
		fmt.Fprintf(w, "Caused by: %s\n", msg)
	}
}
