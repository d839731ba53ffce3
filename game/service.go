// Package game runs table commands: load, validate, mutate, save, broadcast.
package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/sanity-io/litter"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	domainevents "github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/store"
	"github.com/lazharichir/holdem/table"
)

// Broadcaster delivers views after a table changed. Implementations must not
// block.
type Broadcaster interface {
	BroadcastTable(tableID string, view domain.PublicView)
	SendPlayer(tableID string, player domain.PlayerID, view domain.PrivateView)
}

// Service is the single entry point for table commands.
type Service struct {
	engine *domain.Engine
	store  store.Store
	audit  events.EventStore
	loops  *table.Registry
	clock  quartz.Clock
	logger *log.Logger

	broadcasters []Broadcaster
	mutex        sync.RWMutex
}

type Option func(*Service)

// WithAudit records every domain event in audit.
func WithAudit(audit events.EventStore) Option {
	return func(s *Service) { s.audit = audit }
}

func WithClock(clock quartz.Clock) Option {
	return func(s *Service) { s.clock = clock }
}

func NewService(engine *domain.Engine, st store.Store, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		engine: engine,
		store:  st,
		audit:  events.NewInMemoryEventStore(),
		loops:  table.NewRegistry(logger),
		clock:  quartz.NewReal(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddBroadcaster registers b to receive views after every successful command.
func (s *Service) AddBroadcaster(b Broadcaster) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.broadcasters = append(s.broadcasters, b)
}

// Close stops every table loop. Commands handled afterwards fail.
func (s *Service) Close() {
	s.loops.Stop()
}

// Handle runs one command. The returned Response is always populated; the
// error, if any, is what caused Success to be false.
func (s *Service) Handle(ctx context.Context, req Request) (Response, error) {
	resp, err := s.handle(ctx, req)
	if err != nil {
		s.logger.Debug("Command rejected",
			"player", req.Player,
			"command", litter.Sdump(req.Command),
			"kind", Kind(err),
			"error", err,
		)
		if Kind(err) == KindInternal {
			s.logger.Error("Command failed", "table", req.Command.TableID, "error", err)
		}
		return Response{Success: false, Message: ErrorMessage(err)}, err
	}
	return resp, nil
}

func (s *Service) handle(ctx context.Context, req Request) (Response, error) {
	name, ok := normalizeName(req.Command.Name)
	if !ok {
		return Response{}, fmt.Errorf("unknown command %q: %w", req.Command.Name, domain.ErrIllegalAction)
	}
	cmd := req.Command
	cmd.Name = name

	switch name {
	case commands.Identify{}.Name():
		if req.Player.IsZero() {
			return Response{}, domain.ErrUnauthenticated
		}
		return Response{Success: true, Message: fmt.Sprintf("identified as %s", req.Player)}, nil
	case commands.Refresh{}.Name():
		return s.refresh(ctx, req.Player, cmd.TableID)
	}

	if req.Player.IsZero() {
		return Response{}, domain.ErrUnauthenticated
	}
	if cmd.TableID == "" {
		return Response{}, fmt.Errorf("missing table id: %w", domain.ErrTableNotFound)
	}

	// Loops are never evicted, so only a table that exists gets one.
	if !s.loops.Has(cmd.TableID) {
		if _, err := s.store.Load(ctx, cmd.TableID); err != nil {
			return Response{}, err
		}
	}

	var resp Response
	err := s.loops.Do(ctx, cmd.TableID, func(ctx context.Context) error {
		var err error
		resp, err = s.execute(ctx, req.Player, cmd)
		return err
	})
	return resp, err
}

// execute runs on the table's loop. Nothing is saved or sent unless the
// command succeeds as a whole.
func (s *Service) execute(ctx context.Context, player domain.PlayerID, cmd Command) (Response, error) {
	t, err := s.store.Load(ctx, cmd.TableID)
	if err != nil {
		return Response{}, err
	}
	t.RegisterEventHandler(func(event domainevents.Event) {
		s.logger.Debug("Event", "table", t.ID, "name", event.Name())
	})

	if err := s.apply(ctx, t, player, cmd); err != nil {
		return Response{}, err
	}

	emitted := t.DrainEvents()
	if err := s.store.Save(ctx, t); err != nil {
		return Response{}, fmt.Errorf("save table %s: %w", t.ID, err)
	}

	s.record(emitted)
	s.broadcast(t)

	s.logger.Info("Command applied",
		"table", t.ID,
		"player", player,
		"command", cmd.Name,
		"events", len(emitted),
		"version", t.Version,
	)
	return respond(t, player, fmt.Sprintf("%s accepted", cmd.Name)), nil
}

func (s *Service) apply(ctx context.Context, t *domain.Table, player domain.PlayerID, cmd Command) error {
	switch cmd.Name {
	case commands.Join{}.Name():
		return s.engine.Join(ctx, t, cmd.Seat, player)
	case commands.Leave{}.Name():
		return s.engine.Leave(ctx, t, cmd.Seat, player)
	case commands.Start{}.Name():
		return s.engine.Start(ctx, t)
	case commands.Bet{}.Name():
		return s.engine.Bet(t, cmd.Seat, player, cmd.Amount)
	case commands.Check{}.Name():
		return s.engine.Check(t, cmd.Seat, player)
	case commands.Fold{}.Name():
		return s.engine.Fold(t, cmd.Seat, player)
	}
	return fmt.Errorf("command %s: %w", cmd.Name, domain.ErrIllegalAction)
}

// refresh reads the last saved snapshot without queueing on the table loop.
func (s *Service) refresh(ctx context.Context, player domain.PlayerID, tableID string) (Response, error) {
	t, err := s.store.Load(ctx, tableID)
	if err != nil {
		return Response{}, err
	}
	return respond(t, player, "ok"), nil
}

func respond(t *domain.Table, player domain.PlayerID, msg string) Response {
	public := domain.BuildPublicView(t)
	resp := Response{Success: true, Message: msg, Table: &public}
	if !player.IsZero() {
		if private, ok := domain.BuildPrivateView(t, player); ok {
			resp.Player = &private
		}
	}
	return resp
}

// record appends emitted events to the audit log. Failures are logged and
// never fail the command, which is already saved.
func (s *Service) record(emitted []domainevents.Event) {
	at := s.clock.Now()
	for _, event := range emitted {
		rec, err := events.FromDomain(event, at)
		if err == nil {
			err = s.audit.Append(rec)
		}
		if err != nil {
			s.logger.Warn("Failed to record event", "event", event.Name(), "error", err)
		}
	}
}

func (s *Service) broadcast(t *domain.Table) {
	s.mutex.RLock()
	targets := s.broadcasters
	s.mutex.RUnlock()
	if len(targets) == 0 {
		return
	}

	public := domain.BuildPublicView(t)
	for _, b := range targets {
		b.BroadcastTable(t.ID, public)
	}
	for _, seat := range t.Seats {
		if !seat.Occupied() {
			continue
		}
		private, ok := domain.BuildPrivateView(t, seat.Player)
		if !ok {
			continue
		}
		for _, b := range targets {
			b.SendPlayer(t.ID, seat.Player, private)
		}
	}
}

// CreateTable validates settings and stores a new open table.
func (s *Service) CreateTable(ctx context.Context, settings domain.TableSettings) (domain.PublicView, error) {
	t, err := domain.NewTable(settings, s.clock.Now())
	if err != nil {
		return domain.PublicView{}, err
	}
	if err := s.store.Save(ctx, t); err != nil {
		return domain.PublicView{}, fmt.Errorf("save table %s: %w", t.ID, err)
	}
	s.logger.Info("Table created", "table", t.ID, "name", t.Name, "seats", len(t.Seats))
	return domain.BuildPublicView(t), nil
}

// Provision creates a table for every settings entry whose name is not in
// use yet. It returns the number of tables created.
func (s *Service) Provision(ctx context.Context, settings []domain.TableSettings) (int, error) {
	existing, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	names := make(map[string]bool, len(existing))
	for _, t := range existing {
		names[t.Name] = true
	}

	created := 0
	for _, ts := range settings {
		if names[ts.Name] {
			continue
		}
		if _, err := s.CreateTable(ctx, ts); err != nil {
			return created, fmt.Errorf("provision %q: %w", ts.Name, err)
		}
		names[ts.Name] = true
		created++
	}
	return created, nil
}

func (s *Service) ListTables(ctx context.Context) ([]domain.PublicView, error) {
	tables, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.PublicView, 0, len(tables))
	for _, t := range tables {
		views = append(views, domain.BuildPublicView(t))
	}
	return views, nil
}

// Table returns the public view of one table.
func (s *Service) Table(ctx context.Context, id string) (domain.PublicView, error) {
	t, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.PublicView{}, err
	}
	return domain.BuildPublicView(t), nil
}

// History returns the audit records of a table.
func (s *Service) History(tableID string) ([]events.Record, error) {
	records, err := s.audit.LoadEvents(tableID)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", tableID, err)
	}
	return records, nil
}
