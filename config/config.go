// Package config loads the HCL server configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lazharichir/holdem/accounts"
	"github.com/lazharichir/holdem/domain"
)

// Config represents the complete configuration file
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Tables []TableConfig   `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address         string `hcl:"address,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	DataDir         string `hcl:"data_dir,optional"`
	Seed            int64  `hcl:"seed,optional"`
	StartingBalance int    `hcl:"starting_balance,optional"`
}

// TableConfig defines a table created at startup when none with the same
// name exists yet.
type TableConfig struct {
	Name       string `hcl:"name,label"`
	Seats      int    `hcl:"seats,optional"`
	BuyIn      int    `hcl:"buy_in,optional"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
}

const (
	DefaultAddress  = "localhost:7777"
	DefaultLogLevel = "info"
	DefaultSeats    = 6
)

// Default returns the configuration used when no file is present: in-memory
// storage, no preset tables.
func Default() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:         DefaultAddress,
			LogLevel:        DefaultLogLevel,
			StartingBalance: accounts.DefaultStartingBalance,
		},
	}
}

// Load reads filename. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.Server.StartingBalance == 0 {
		c.Server.StartingBalance = accounts.DefaultStartingBalance
	}

	for i := range c.Tables {
		if c.Tables[i].Seats == 0 {
			c.Tables[i].Seats = DefaultSeats
		}
		if c.Tables[i].BuyIn == 0 {
			c.Tables[i].BuyIn = c.Tables[i].BigBlind * 100
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server == nil {
		return errors.New("missing server settings")
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	if c.Server.StartingBalance < 0 {
		return fmt.Errorf("starting balance must not be negative: %d", c.Server.StartingBalance)
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if seen[table.Name] {
			return fmt.Errorf("table %s: declared twice", table.Name)
		}
		seen[table.Name] = true

		if err := table.Settings().Validate(); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
	}
	return nil
}

// Settings converts the block into domain table settings.
func (t TableConfig) Settings() domain.TableSettings {
	return domain.TableSettings{
		Name:       t.Name,
		Seats:      t.Seats,
		BuyIn:      t.BuyIn,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
	}
}

// TableSettings returns the settings of every configured table.
func (c *Config) TableSettings() []domain.TableSettings {
	out := make([]domain.TableSettings, 0, len(c.Tables))
	for _, t := range c.Tables {
		out = append(out, t.Settings())
	}
	return out
}
