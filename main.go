package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/accounts"
	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/config"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/game"
	"github.com/lazharichir/holdem/store"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"holdem.hcl" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level (overrides config)"`
	DataDir  string           `short:"d" help:"Directory for table and event files (overrides config)"`

	Serve ServeCmd `cmd:"" help:"Run the table server"`
	Table TableCmd `cmd:"" help:"Manage tables in the data directory"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Multi-seat Texas Hold'em cash tables"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	cfg, err := cli.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	level, _ := log.ParseLevel(cfg.Server.LogLevel)
	logger.SetLevel(level)

	ctx.Bind(cfg, logger)
	ctx.FatalIfErrorf(ctx.Run())
}

// load reads the config file and applies command line overrides.
func (c *CLI) load() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if c.DataDir != "" {
		cfg.Server.DataDir = c.DataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// stores opens file-backed stores under the data directory, or in-memory
// ones when none is configured.
func stores(cfg *config.Config) (store.Store, events.EventStore, error) {
	if cfg.Server.DataDir == "" {
		return store.NewMemory(), events.NewInMemoryEventStore(), nil
	}

	tables, err := store.NewFiles(filepath.Join(cfg.Server.DataDir, "tables"))
	if err != nil {
		return nil, nil, err
	}
	audit, err := events.NewFileEventStore(filepath.Join(cfg.Server.DataDir, "events"))
	if err != nil {
		return nil, nil, err
	}
	return tables, audit, nil
}

// newService wires the engine, stores and bank described by cfg.
func newService(cfg *config.Config, logger *log.Logger) (*game.Service, error) {
	tables, audit, err := stores(cfg)
	if err != nil {
		return nil, err
	}

	picker := cards.RandomPicker()
	if cfg.Server.Seed != 0 {
		logger.Info("Using deterministic seed", "seed", cfg.Server.Seed)
		picker = cards.NewSeededPicker(cfg.Server.Seed)
	}

	bank := accounts.NewLedger(cfg.Server.StartingBalance)
	engine := domain.NewEngine(bank, domain.WithPicker(picker))
	return game.NewService(engine, tables, logger, game.WithAudit(audit)), nil
}
