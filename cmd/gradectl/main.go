package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/gradewise-dev/gradewise/internal/client"
	"github.com/gradewise-dev/gradewise/internal/config"
	"github.com/gradewise-dev/gradewise/internal/logger"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Configure(cfg.LogLevel, "text")

	session, err := client.LoadSession(cfg.SessionPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !term.IsTerminal(int(syscall.Stdin)) {
		readPasswordFunc = stdinPassword
	}

	cli := commandLine{
		api: client.New(cfg.APIURL, session, client.WithLogger(logger.Log)),
		out: os.Stdout,
	}

	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			logger.Log.Errorf("%s", err)
		}
		stop()
		os.Exit(1)
	}
}
