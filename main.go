// ./main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/voxarm/voxarm-cli/cmd"
	"github.com/voxarm/voxarm-cli/internal/observability"
)

// main is the entry point for the voxarm CLI.
func main() {
	// Interrupt signals cancel the context; the command loop drains and
	// shuts the pipeline down before the process exits.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()
	if err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}
