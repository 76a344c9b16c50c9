package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tzoee/personal-finance-manager-sub001/internal/app"
	"github.com/tzoee/personal-finance-manager-sub001/internal/cli"
	"github.com/tzoee/personal-finance-manager-sub001/internal/log"
)

// openApp builds and loads the full application container for a one-shot
// command invocation. The caller owns Close.
func openApp(ctx context.Context) (*app.App, error) {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.Initialize(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
