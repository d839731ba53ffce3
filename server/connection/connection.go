package connection

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lazharichir/holdem/domain"
)

// Client represents a connected websocket
type Client struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	PlayerID domain.PlayerID // set by IDENTIFY
	TableIDs []string        // tables the client observes
}

// NewClient creates a client with a buffered send queue.
func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
}

// Manager handles all client connections
type Manager struct {
	clients   map[string]*Client         // connection id -> client
	playerMap map[domain.PlayerID]string // player id -> connection id
	mutex     sync.RWMutex
	logger    *log.Logger
}

// NewManager creates a new connection manager
func NewManager(logger *log.Logger) *Manager {
	return &Manager{
		clients:   make(map[string]*Client),
		playerMap: make(map[domain.PlayerID]string),
		logger:    logger,
	}
}

// Add registers a client
func (m *Manager) Add(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.clients[client.ID] = client
	if !client.PlayerID.IsZero() {
		m.playerMap[client.PlayerID] = client.ID
	}
}

// Remove unregisters a client and closes its send queue
func (m *Manager) Remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; !ok {
		return
	}
	if connID, ok := m.playerMap[client.PlayerID]; ok && connID == client.ID {
		delete(m.playerMap, client.PlayerID)
	}
	delete(m.clients, client.ID)
	close(client.Send)
}

// Close removes every client, closing their send queues.
func (m *Manager) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, client := range m.clients {
		close(client.Send)
		delete(m.clients, id)
	}
	clear(m.playerMap)
}

// Identify binds player to the client. A later connection for the same
// player takes over private messages.
func (m *Manager) Identify(clientID string, player domain.PlayerID) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	if connID, ok := m.playerMap[client.PlayerID]; ok && connID == clientID {
		delete(m.playerMap, client.PlayerID)
	}
	client.PlayerID = player
	m.playerMap[player] = clientID
	return true
}

// PlayerOf returns the identity bound to a client, if any.
func (m *Manager) PlayerOf(clientID string) domain.PlayerID {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if client, ok := m.clients[clientID]; ok {
		return client.PlayerID
	}
	return ""
}

// SendToPlayer sends a message to a specific player
func (m *Manager) SendToPlayer(player domain.PlayerID, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if connID, exists := m.playerMap[player]; exists {
		if client, ok := m.clients[connID]; ok {
			return m.enqueue(client, message)
		}
	}
	return false
}

// SendToClient sends a message to one connection
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if client, ok := m.clients[clientID]; ok {
		return m.enqueue(client, message)
	}
	return false
}

// SendToTable sends a message to every client observing a table and returns
// how many were reached.
func (m *Manager) SendToTable(tableID string, message []byte) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	sent := 0
	for _, client := range m.clients {
		if slices.Contains(client.TableIDs, tableID) && m.enqueue(client, message) {
			sent++
		}
	}
	return sent
}

// enqueue never blocks; a client whose queue is full misses the message.
// Callers hold the read lock so Send is not closed underneath us.
func (m *Manager) enqueue(client *Client, message []byte) bool {
	select {
	case client.Send <- message:
		return true
	default:
		m.logger.Warn("Dropping message for slow client", "client", client.ID, "player", client.PlayerID)
		return false
	}
}

// AddTableToClient adds a table ID to a client's tables
func (m *Manager) AddTableToClient(clientID string, tableID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		if !slices.Contains(client.TableIDs, tableID) {
			client.TableIDs = append(client.TableIDs, tableID)
		}
		return true
	}
	return false
}

// RemoveTableFromClient removes a table ID from a client's tables
func (m *Manager) RemoveTableFromClient(clientID string, tableID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		if i := slices.Index(client.TableIDs, tableID); i >= 0 {
			client.TableIDs = slices.Delete(client.TableIDs, i, i+1)
			return true
		}
	}
	return false
}

// IsClientAtTable checks if a client is at a specific table
func (m *Manager) IsClientAtTable(clientID string, tableID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if client, ok := m.clients[clientID]; ok {
		return slices.Contains(client.TableIDs, tableID)
	}
	return false
}

// Count returns the number of registered clients.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}
