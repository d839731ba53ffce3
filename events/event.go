// Package events keeps the per-table audit log: one Record per domain event,
// appended after each successful command.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	domainevents "github.com/lazharichir/holdem/domain/events"
)

// Record is a stored audit entry.
type Record struct {
	TableID    string          `json:"tableId"`
	PlayerID   string          `json:"playerId,omitempty"`
	HandNumber int             `json:"hand,omitempty"`
	Name       string          `json:"name"`
	Content    json.RawMessage `json:"content"`
	At         time.Time       `json:"at"`
}

// FromDomain converts a domain event into a Record stamped with at.
func FromDomain(event domainevents.Event, at time.Time) (Record, error) {
	tableID := domainevents.ExtractTableID(event)
	if tableID == "" {
		return Record{}, fmt.Errorf("event %s has no tableID", event.Name())
	}

	content, err := json.Marshal(event)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s: %w", event.Name(), err)
	}

	return Record{
		TableID:    tableID,
		PlayerID:   domainevents.ExtractPlayerID(event),
		HandNumber: domainevents.ExtractHandNumber(event),
		Name:       event.Name(),
		Content:    content,
		At:         at,
	}, nil
}
