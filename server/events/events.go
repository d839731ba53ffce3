package events

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/game"
	"github.com/lazharichir/holdem/server/connection"
)

const (
	TableState   = "table_state"
	PlayerState  = "player_state"
	CommandReply = "response"
)

// EventEnvelope wraps a payload with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Encode builds the wire form of an envelope.
func Encode(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(EventEnvelope{Name: name, Payload: data})
}

// Dispatcher routes table and player views to connected clients. It
// implements game.Broadcaster.
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *log.Logger
}

var _ game.Broadcaster = (*Dispatcher)(nil)

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger,
	}
}

// BroadcastTable sends the public view to everyone observing the table.
func (d *Dispatcher) BroadcastTable(tableID string, view domain.PublicView) {
	data, err := Encode(TableState, view)
	if err != nil {
		d.logger.Error("Failed to encode table state", "table", tableID, "error", err)
		return
	}
	sent := d.connMgr.SendToTable(tableID, data)
	d.logger.Debug("Dispatched table state", "table", tableID, "clients", sent)
}

// SendPlayer sends a private view to the player's connection only.
func (d *Dispatcher) SendPlayer(tableID string, player domain.PlayerID, view domain.PrivateView) {
	data, err := Encode(PlayerState, view)
	if err != nil {
		d.logger.Error("Failed to encode player state", "table", tableID, "player", player, "error", err)
		return
	}
	if !d.connMgr.SendToPlayer(player, data) {
		d.logger.Debug("Player not connected", "table", tableID, "player", player)
	}
}

// Reply sends a command response back to the client that issued it.
func (d *Dispatcher) Reply(clientID string, resp game.Response) {
	data, err := Encode(CommandReply, resp)
	if err != nil {
		d.logger.Error("Failed to encode response", "client", clientID, "error", err)
		return
	}
	d.connMgr.SendToClient(clientID, data)
}
