// lexigen - Main entry point
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oyin-bo/lexigen/internal/cli"
	"github.com/oyin-bo/lexigen/internal/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// Set up signal handling; output only replaces its target on success
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logging.Logger().Warn("Received shutdown signal, cancelling")
		cancel()
	}()

	registry := cli.NewDefaultRegistry()
	runner := cli.NewRunner(registry)
	runner.RegisterAll()
	runner.RegisterServeCommand()

	code := runner.Run(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}
