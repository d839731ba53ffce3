package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/game"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/server/events"
	"github.com/lazharichir/holdem/server/handlers"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 8192

	// PlayerHeader carries the caller's identity on HTTP commands.
	PlayerHeader = "X-Player-ID"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server exposes the game service over HTTP and websockets
type Server struct {
	service    *game.Service
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	clock      quartz.Clock
	logger     *log.Logger
	mux        *http.ServeMux
	baseCtx    context.Context
}

type Option func(*Server)

// WithClock sets the clock driving websocket keep-alive pings.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// TableResponse represents a table in lobby listings
type TableResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Seats      int      `json:"seats"`
	Players    []string `json:"players"`
	Status     string   `json:"status"`
	SmallBlind int      `json:"sblind"`
	BigBlind   int      `json:"bblind"`
	BuyIn      int      `json:"buyin"`
	HandNumber int      `json:"handNumber"`
}

// CreateTableRequest represents the request to create a new table
type CreateTableRequest struct {
	Name       string `json:"name"`
	Seats      int    `json:"seats"`
	BuyIn      int    `json:"buyin"`
	SmallBlind int    `json:"sblind"`
	BigBlind   int    `json:"bblind"`
}

// ActionRequest is the optional body of POST /api/tables/{id}/{action}
type ActionRequest struct {
	Seat   int `json:"seat"`
	Amount int `json:"amount"`
}

func summarize(view domain.PublicView) TableResponse {
	players := make([]string, 0, len(view.Seats))
	for _, seat := range view.Seats {
		if seat.Player != "" {
			players = append(players, seat.Player.String())
		}
	}
	return TableResponse{
		ID:         view.ID,
		Name:       view.Name,
		Seats:      len(view.Seats),
		Players:    players,
		Status:     string(view.Status),
		SmallBlind: view.SmallBlind,
		BigBlind:   view.BigBlind,
		BuyIn:      view.BuyIn,
		HandNumber: view.HandNumber,
	}
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+PlayerHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// NewServer wires the websocket transport to service. The server's
// dispatcher is registered as one of the service's broadcasters.
func NewServer(service *game.Service, logger *log.Logger, opts ...Option) *Server {
	connMgr := connection.NewManager(logger)
	dispatcher := events.NewDispatcher(connMgr, logger)
	cmdRouter := handlers.NewCommandRouter(service, connMgr, logger)

	service.AddBroadcaster(dispatcher)

	s := &Server{
		service:    service,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
		clock:      quartz.NewReal(),
		logger:     logger,
		mux:        http.NewServeMux(),
		baseCtx:    context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/api/tables", corsMiddleware(s.handleGetTables))
	s.mux.HandleFunc("/api/tables/create", corsMiddleware(s.handleCreateTable))
	s.mux.HandleFunc("/api/tables/{id}", corsMiddleware(s.handleGetTable))
	s.mux.HandleFunc("/api/tables/{id}/history", corsMiddleware(s.handleHistory))
	s.mux.HandleFunc("/api/tables/{id}/{action}", corsMiddleware(s.handleAction))

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.baseCtx = ctx
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting server", "addr", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.connMgr.Close()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade to WebSocket", "error", err)
		return
	}

	client := connection.NewClient(uuid.NewString(), conn)
	s.logger.Info("New client connected", "remote", r.RemoteAddr, "client", client.ID)

	if player := domain.PlayerID(r.Header.Get(PlayerHeader)); !player.IsZero() {
		client.PlayerID = player
	}
	s.connMgr.Add(client)

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads commands from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Remove(client)
		_ = client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket error", "client", client.ID, "error", err)
			}
			return
		}

		resp, err := s.cmdRouter.HandleCommand(s.baseCtx, client, message)
		if err != nil {
			s.logger.Debug("Failed to handle command", "client", client.ID, "error", err)
			resp = game.Response{Success: false, Message: err.Error()}
		}
		s.dispatcher.Reply(client.ID, resp)
	}
}

// writePump sends queued messages and keep-alive pings
func (s *Server) writePump(client *connection.Client) {
	ticker := s.clock.NewTicker(pingPeriod, "server", "ping")
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Error("Failed to write message", "client", client.ID, "error", err)
				return
			}

		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleGetTables returns a summary of all tables
func (s *Server) handleGetTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	views, err := s.service.ListTables(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	tables := make([]TableResponse, 0, len(views))
	for _, view := range views {
		tables = append(tables, summarize(view))
	}
	s.writeJSON(w, http.StatusOK, tables)
}

// handleCreateTable creates a new table
func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var createReq CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if createReq.Seats == 0 {
		createReq.Seats = 6
	}

	view, err := s.service.CreateTable(r.Context(), domain.TableSettings{
		Name:       createReq.Name,
		Seats:      createReq.Seats,
		BuyIn:      createReq.BuyIn,
		SmallBlind: createReq.SmallBlind,
		BigBlind:   createReq.BigBlind,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, summarize(view))
}

// handleGetTable is the HTTP form of REFRESH
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.handle(w, r, game.Command{Name: "REFRESH", TableID: r.PathValue("id")})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")
	if _, err := s.service.Table(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	records, err := s.service.History(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

// handleAction runs a table command named by the last path segment
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body ActionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	s.handle(w, r, game.Command{
		Name:    r.PathValue("action"),
		TableID: r.PathValue("id"),
		Seat:    body.Seat,
		Amount:  body.Amount,
	})
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request, cmd game.Command) {
	player := domain.PlayerID(r.Header.Get(PlayerHeader))
	resp, err := s.service.Handle(r.Context(), game.Request{Player: player, Command: cmd})
	s.writeJSON(w, statusFor(err), resp)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), game.Response{Success: false, Message: game.ErrorMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

// statusFor maps a service error onto an HTTP status code.
func statusFor(err error) int {
	switch game.Kind(err) {
	case game.KindNone:
		return http.StatusOK
	case game.KindNotFound:
		return http.StatusNotFound
	case game.KindUnauthenticated:
		return http.StatusUnauthorized
	case game.KindUnauthorized:
		return http.StatusForbidden
	case game.KindIllegalAction, game.KindInvalid:
		return http.StatusBadRequest
	case game.KindInsufficientChips:
		return http.StatusUnprocessableEntity
	case game.KindSeatConflict, game.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
