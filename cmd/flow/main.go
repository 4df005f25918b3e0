package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/celerix-dev/flowclient/internal/buildinfo"
	"github.com/celerix-dev/flowclient/internal/client/cli"
	"github.com/celerix-dev/flowclient/internal/client/config"
	"github.com/celerix-dev/flowclient/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
