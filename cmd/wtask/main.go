// Package main is the entry point for the wtask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"wtask/internal/cli"
	"wtask/internal/commands"
	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/logging"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(cfg *config.Config) (*dashboard.Dashboard, error) {
		log := logging.New(os.Stderr, cfg.Debug)
		return dashboard.New(cfg, log, dashboard.Options{}), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
