package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/game"
	"github.com/lazharichir/holdem/server/connection"
)

// CommandRouter decodes websocket commands and hands them to the game service
type CommandRouter struct {
	service *game.Service
	connMgr *connection.Manager
	logger  *log.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(service *game.Service, connMgr *connection.Manager, logger *log.Logger) *CommandRouter {
	return &CommandRouter{
		service: service,
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleCommand processes an incoming command message. A malformed message
// yields an error; a rejected command yields an unsuccessful Response.
func (r *CommandRouter) HandleCommand(ctx context.Context, client *connection.Client, message []byte) (game.Response, error) {
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return game.Response{}, fmt.Errorf("decode command: %w", err)
	}
	baseCmd.Name = strings.ToUpper(baseCmd.Name)

	if baseCmd.Name == (commands.Identify{}).Name() {
		var cmd commands.Identify
		if err := json.Unmarshal(message, &cmd); err != nil {
			return game.Response{}, fmt.Errorf("decode %s: %w", baseCmd.Name, err)
		}
		return r.handleIdentify(ctx, client, domain.PlayerID(cmd.PlayerID)), nil
	}

	cmd, err := decode(baseCmd.Name, message)
	if err != nil {
		return game.Response{}, fmt.Errorf("decode %s: %w", baseCmd.Name, err)
	}

	player := r.connMgr.PlayerOf(client.ID)
	resp, err := r.service.Handle(ctx, game.Request{Player: player, Command: cmd})
	if err != nil {
		return resp, nil
	}

	// a client watches every table it has touched successfully
	r.connMgr.AddTableToClient(client.ID, cmd.TableID)
	return resp, nil
}

func (r *CommandRouter) handleIdentify(ctx context.Context, client *connection.Client, player domain.PlayerID) game.Response {
	resp, err := r.service.Handle(ctx, game.Request{
		Player:  player,
		Command: game.Command{Name: commands.Identify{}.Name()},
	})
	if err != nil {
		return resp
	}
	r.connMgr.Identify(client.ID, player)
	r.logger.Info("Client identified", "client", client.ID, "player", player)
	return resp
}

// decode turns a named message into a game.Command.
func decode(name string, message []byte) (game.Command, error) {
	switch name {
	case commands.Join{}.Name():
		var cmd commands.Join
		if err := json.Unmarshal(message, &cmd); err != nil {
			return game.Command{}, err
		}
		return game.Command{Name: name, TableID: cmd.TableID, Seat: cmd.Seat}, nil

	case commands.Leave{}.Name():
		var cmd commands.Leave
		if err := json.Unmarshal(message, &cmd); err != nil {
			return game.Command{}, err
		}
		return game.Command{Name: name, TableID: cmd.TableID, Seat: cmd.Seat}, nil

	case commands.Start{}.Name():
		var cmd commands.Start
		if err := json.Unmarshal(message, &cmd); err != nil {
			return game.Command{}, err
		}
		return game.Command{Name: name, TableID: cmd.TableID}, nil

	case commands.Bet{}.Name():
		var cmd commands.Bet
		if err := json.Unmarshal(message, &cmd); err != nil {
			return game.Command{}, err
		}
		return game.Command{Name: name, TableID: cmd.TableID, Seat: cmd.Seat, Amount: cmd.Amount}, nil

	case commands.Check{}.Name():
		var cmd commands.Check
		if err := json.Unmarshal(message, &cmd); err != nil {
			return game.Command{}, err
		}
		return game.Command{Name: name, TableID: cmd.TableID, Seat: cmd.Seat}, nil

	case commands.Fold{}.Name():
		var cmd commands.Fold
		if err := json.Unmarshal(message, &cmd); err != nil {
			return game.Command{}, err
		}
		return game.Command{Name: name, TableID: cmd.TableID, Seat: cmd.Seat}, nil

	case commands.Refresh{}.Name():
		var cmd commands.Refresh
		if err := json.Unmarshal(message, &cmd); err != nil {
			return game.Command{}, err
		}
		return game.Command{Name: name, TableID: cmd.TableID}, nil
	}

	return game.Command{}, fmt.Errorf("unknown command type %q", name)
}
