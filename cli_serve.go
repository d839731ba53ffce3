package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/config"
	"github.com/lazharichir/holdem/server"
)

type ServeCmd struct {
	Addr string `short:"a" help:"Server address to bind to (overrides config)"`
}

func (c *ServeCmd) Run(cfg *config.Config, logger *log.Logger) error {
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}

	service, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	created, err := service.Provision(ctx, cfg.TableSettings())
	if err != nil {
		return err
	}

	logger.Info("Starting Holdem Server",
		"addr", cfg.Server.Address,
		"dataDir", cfg.Server.DataDir,
		"tables", len(cfg.Tables),
		"created", created,
	)

	return server.NewServer(service, logger).Run(ctx, cfg.Server.Address)
}
