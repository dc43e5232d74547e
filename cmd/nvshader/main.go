// Package main is the entry point for the nvshader CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/nvshader/cmd/nvshader/commands"
	"go.trai.ch/nvshader/internal/app"
	"go.trai.ch/nvshader/internal/core/domain"
	_ "go.trai.ch/nvshader/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.App.Shutdown(context.Background()) }, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is part of the components, so report directly.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		components.Logger.Error(err)
		return exitCode(err)
	}
	return 0
}

// exitPartial is the status of a command that finished with some cache units
// left unprocessed.
const exitPartial = 8

// exitCode maps the error kind to a process status. Unclassified errors
// exit with 1.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrPartialFailure) {
		return exitPartial
	}
	code := domain.CodeOf(err)
	if code == domain.CodeUnknown || code == domain.CodeSuccess {
		return 1
	}
	return int(-code)
}
