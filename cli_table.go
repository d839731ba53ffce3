package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/config"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/game"
)

var errNoDataDir = errors.New("table commands need a data directory (--data-dir or server.data_dir)")

type TableCmd struct {
	Create TableCreateCmd `cmd:"" help:"Create a table"`
	List   TableListCmd   `cmd:"" help:"List tables"`
	Show   TableShowCmd   `cmd:"" help:"Show one table"`
}

type TableCreateCmd struct {
	Name       string `arg:"" help:"Table name"`
	Seats      int    `default:"6" help:"Number of seats"`
	BuyIn      int    `name:"buyin" default:"100" help:"Chips bought on joining"`
	SmallBlind int    `name:"sblind" default:"1" help:"Small blind"`
	BigBlind   int    `name:"bblind" default:"2" help:"Big blind"`
}

func (c *TableCreateCmd) Run(cfg *config.Config, logger *log.Logger) error {
	service, err := offlineService(cfg, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	view, err := service.CreateTable(context.Background(), domain.TableSettings{
		Name:       c.Name,
		Seats:      c.Seats,
		BuyIn:      c.BuyIn,
		SmallBlind: c.SmallBlind,
		BigBlind:   c.BigBlind,
	})
	if err != nil {
		return err
	}
	fmt.Println(view.ID)
	return nil
}

type TableListCmd struct{}

func (c *TableListCmd) Run(cfg *config.Config, logger *log.Logger) error {
	service, err := offlineService(cfg, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	views, err := service.ListTables(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, renderTableList(views))
	return nil
}

type TableShowCmd struct {
	ID string `arg:"" help:"Table id"`
}

func (c *TableShowCmd) Run(cfg *config.Config, logger *log.Logger) error {
	service, err := offlineService(cfg, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	view, err := service.Table(context.Background(), c.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, renderTable(view))
	return nil
}

func offlineService(cfg *config.Config, logger *log.Logger) (*game.Service, error) {
	if cfg.Server.DataDir == "" {
		return nil, errNoDataDir
	}
	return newService(cfg, logger)
}
