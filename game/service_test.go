package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/holdem/accounts"
	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/store"
)

const (
	alice = domain.PlayerID("alice")
	bob   = domain.PlayerID("bob")
)

// recorder is a Broadcaster that keeps everything it was sent.
type recorder struct {
	mutex   sync.Mutex
	tables  []domain.PublicView
	players map[domain.PlayerID][]domain.PrivateView
}

func newRecorder() *recorder {
	return &recorder{players: make(map[domain.PlayerID][]domain.PrivateView)}
}

func (r *recorder) BroadcastTable(_ string, view domain.PublicView) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.tables = append(r.tables, view)
}

func (r *recorder) SendPlayer(_ string, player domain.PlayerID, view domain.PrivateView) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.players[player] = append(r.players[player], view)
}

func (r *recorder) lastPrivate(player domain.PlayerID) (domain.PrivateView, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	views := r.players[player]
	if len(views) == 0 {
		return domain.PrivateView{}, false
	}
	return views[len(views)-1], true
}

type fixture struct {
	service *Service
	ledger  *accounts.Ledger
	audit   *events.InMemoryEventStore
	rec     *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	ledger := accounts.NewLedger(1_000)
	engine := domain.NewEngine(ledger,
		domain.WithPicker(cards.NewSeededPicker(7)),
		domain.WithClock(clock),
	)
	audit := events.NewInMemoryEventStore()
	service := NewService(engine, store.NewMemory(), log.New(io.Discard),
		WithAudit(audit),
		WithClock(clock),
	)
	t.Cleanup(service.Close)

	rec := newRecorder()
	service.AddBroadcaster(rec)

	return &fixture{service: service, ledger: ledger, audit: audit, rec: rec}
}

func (f *fixture) createTable(t *testing.T) string {
	t.Helper()
	view, err := f.service.CreateTable(context.Background(), domain.TableSettings{
		Name:       "main",
		Seats:      6,
		BuyIn:      100,
		SmallBlind: 5,
		BigBlind:   10,
	})
	require.NoError(t, err)
	return view.ID
}

func (f *fixture) do(t *testing.T, player domain.PlayerID, cmd Command) (Response, error) {
	t.Helper()
	return f.service.Handle(context.Background(), Request{Player: player, Command: cmd})
}

func (f *fixture) must(t *testing.T, player domain.PlayerID, cmd Command) Response {
	t.Helper()
	resp, err := f.do(t, player, cmd)
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)
	return resp
}

// startHeadsUp seats alice at 0 and bob at 1 and starts the first hand.
func (f *fixture) startHeadsUp(t *testing.T) (string, Response) {
	t.Helper()
	id := f.createTable(t)
	f.must(t, alice, Command{Name: "JOIN", TableID: id, Seat: 0})
	f.must(t, bob, Command{Name: "join", TableID: id, Seat: 1})
	return id, f.must(t, alice, Command{Name: "START", TableID: id})
}

func playerAt(view *domain.PublicView, seat int) domain.PlayerID {
	return view.Seats[seat].Player
}

func TestCreateAndListTables(t *testing.T) {
	f := newFixture(t)
	id := f.createTable(t)

	tables, err := f.service.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, id, tables[0].ID)
	assert.Equal(t, domain.TableStatusOpen, tables[0].Status)
	assert.Len(t, tables[0].Seats, 6)

	view, err := f.service.Table(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "main", view.Name)
}

func TestCreateTableRejectsInvalidSettings(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.CreateTable(context.Background(), domain.TableSettings{
		Name:       "broken",
		Seats:      1,
		BuyIn:      100,
		SmallBlind: 5,
		BigBlind:   10,
	})
	assert.Equal(t, KindInvalid, Kind(err))
}

func TestProvisionSkipsExistingNames(t *testing.T) {
	f := newFixture(t)
	f.createTable(t)

	created, err := f.service.Provision(context.Background(), []domain.TableSettings{
		{Name: "main", Seats: 6, BuyIn: 100, SmallBlind: 5, BigBlind: 10},
		{Name: "high", Seats: 2, BuyIn: 1000, SmallBlind: 50, BigBlind: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	tables, err := f.service.ListTables(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables, 2)
}

func TestHandleRejections(t *testing.T) {
	f := newFixture(t)
	id := f.createTable(t)

	tests := []struct {
		name   string
		player domain.PlayerID
		cmd    Command
		kind   ErrorKind
	}{
		{"anonymous join", "", Command{Name: "JOIN", TableID: id, Seat: 0}, KindUnauthenticated},
		{"unknown command", alice, Command{Name: "RAISE", TableID: id}, KindIllegalAction},
		{"unknown table", alice, Command{Name: "JOIN", TableID: "nope", Seat: 0}, KindNotFound},
		{"missing table", alice, Command{Name: "JOIN", Seat: 0}, KindNotFound},
		{"bad seat", alice, Command{Name: "JOIN", TableID: id, Seat: 9}, KindNotFound},
		{"start alone", alice, Command{Name: "START", TableID: id}, KindIllegalAction},
		{"bet while open", alice, Command{Name: "BET", TableID: id, Seat: 0, Amount: 10}, KindUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.do(t, tt.player, tt.cmd)
			require.Error(t, err)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
			assert.Nil(t, resp.Table)
			assert.Equal(t, tt.kind, Kind(err))
		})
	}
}

func TestUnknownTablesDoNotStartLoops(t *testing.T) {
	f := newFixture(t)
	id := f.createTable(t)
	f.must(t, alice, Command{Name: "JOIN", TableID: id, Seat: 0})
	require.Equal(t, 1, f.service.loops.Len())

	for i := 0; i < 50; i++ {
		_, err := f.do(t, alice, Command{Name: "CHECK", TableID: fmt.Sprintf("bogus-%d", i)})
		require.Error(t, err)
		assert.Equal(t, KindNotFound, Kind(err))
	}
	assert.Equal(t, 1, f.service.loops.Len())
}

func TestRejectedCommandLeavesTableUnchanged(t *testing.T) {
	f := newFixture(t)
	id := f.createTable(t)
	f.must(t, alice, Command{Name: "JOIN", TableID: id, Seat: 0})

	before, err := f.service.Table(context.Background(), id)
	require.NoError(t, err)

	_, err = f.do(t, bob, Command{Name: "JOIN", TableID: id, Seat: 0})
	assert.Equal(t, KindSeatConflict, Kind(err))

	after, err := f.service.Table(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStartDealsAndBroadcasts(t *testing.T) {
	f := newFixture(t)
	id, resp := f.startHeadsUp(t)

	require.NotNil(t, resp.Table)
	assert.Equal(t, domain.TableStatusStarted, resp.Table.Status)
	assert.Equal(t, 1, resp.Table.HandNumber)
	assert.Equal(t, 15, resp.Table.Pot+resp.Table.Seats[0].Bet+resp.Table.Seats[1].Bet)
	assert.GreaterOrEqual(t, resp.Table.ActiveSeat, 0)

	require.NotNil(t, resp.Player)
	assert.Equal(t, alice, resp.Player.Player)
	assert.Len(t, resp.Player.Hand, 2)

	for _, p := range []domain.PlayerID{alice, bob} {
		view, ok := f.rec.lastPrivate(p)
		require.True(t, ok, "no private view for %s", p)
		assert.Equal(t, id, view.TableID)
		assert.Len(t, view.Hand, 2)
	}
	assert.NotEmpty(t, f.rec.tables)

	balance, err := f.ledger.Balance(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 900, balance)
}

func TestOnlyActiveSeatMayAct(t *testing.T) {
	f := newFixture(t)
	id, resp := f.startHeadsUp(t)

	active := resp.Table.ActiveSeat
	waiting := 1 - active

	_, err := f.do(t, playerAt(resp.Table, waiting), Command{Name: "FOLD", TableID: id, Seat: waiting})
	assert.Equal(t, KindUnauthorized, Kind(err))

	// the seat owner check comes before the turn check
	_, err = f.do(t, playerAt(resp.Table, waiting), Command{Name: "FOLD", TableID: id, Seat: active})
	assert.Equal(t, KindUnauthorized, Kind(err))
}

func TestFoldAwardsPotAndDealsNextHand(t *testing.T) {
	f := newFixture(t)
	id, resp := f.startHeadsUp(t)

	active := resp.Table.ActiveSeat
	folder := playerAt(resp.Table, active)
	resp = f.must(t, folder, Command{Name: "FOLD", TableID: id, Seat: active})

	assert.Equal(t, 2, resp.Table.HandNumber)
	assert.Equal(t, domain.TableStatusStarted, resp.Table.Status)

	total := resp.Table.Pot
	for _, s := range resp.Table.Seats {
		total += s.Chips + s.Bet
	}
	assert.Equal(t, 200, total)

	records, err := f.service.History(id)
	require.NoError(t, err)
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.Contains(t, names, "PLAYER_JOINED_TABLE")
	assert.Contains(t, names, "PLAYER_FOLDED")
	assert.Contains(t, names, "POT_AWARDED")
}

func TestPlayHandToShowdown(t *testing.T) {
	f := newFixture(t)
	id, resp := f.startHeadsUp(t)

	// call, then check every street
	for i := 0; i < 20 && resp.Table.HandNumber == 1; i++ {
		seat := resp.Table.ActiveSeat
		require.GreaterOrEqual(t, seat, 0)
		player := playerAt(resp.Table, seat)

		toCall := resp.Table.HighestBet - resp.Table.Seats[seat].Bet
		if toCall > 0 {
			resp = f.must(t, player, Command{Name: "BET", TableID: id, Seat: seat, Amount: toCall})
		} else {
			resp = f.must(t, player, Command{Name: "CHECK", TableID: id, Seat: seat})
		}
	}
	require.Equal(t, 2, resp.Table.HandNumber)

	records, err := f.service.History(id)
	require.NoError(t, err)
	var showdowns int
	for _, r := range records {
		if r.Name == "SHOWDOWN_RESOLVED" {
			showdowns++
		}
	}
	assert.Equal(t, 1, showdowns)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	id, _ := f.startHeadsUp(t)

	resp := f.must(t, bob, Command{Name: "REFRESH", TableID: id})
	require.NotNil(t, resp.Table)
	require.NotNil(t, resp.Player)
	assert.Equal(t, 1, resp.Player.Seat)

	resp = f.must(t, "", Command{Name: "refresh", TableID: id})
	require.NotNil(t, resp.Table)
	assert.Nil(t, resp.Player)
}

func TestIdentify(t *testing.T) {
	f := newFixture(t)

	resp := f.must(t, alice, Command{Name: "IDENTIFY"})
	assert.Contains(t, resp.Message, "alice")

	_, err := f.do(t, "", Command{Name: "IDENTIFY"})
	assert.Equal(t, KindUnauthenticated, Kind(err))
}

func TestConcurrentJoins(t *testing.T) {
	f := newFixture(t)
	id := f.createTable(t)

	var wg sync.WaitGroup
	errs := make([]error, 12)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			player := domain.PlayerID(fmt.Sprintf("p%d", i))
			_, errs[i] = f.service.Handle(context.Background(), Request{
				Player:  player,
				Command: Command{Name: "JOIN", TableID: id, Seat: i % 6},
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch Kind(err) {
		case KindNone:
			ok++
		case KindSeatConflict:
			conflicts++
		}
	}
	assert.Equal(t, 6, ok)
	assert.Equal(t, 6, conflicts)

	view, err := f.service.Table(context.Background(), id)
	require.NoError(t, err)
	for _, s := range view.Seats {
		assert.NotEmpty(t, s.Player)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{nil, KindNone},
		{domain.ErrTableNotFound, KindNotFound},
		{fmt.Errorf("wrapped: %w", domain.ErrNotYourTurn), KindUnauthorized},
		{domain.ErrInsufficientBalance, KindInsufficientChips},
		{domain.ErrAlreadySeated, KindSeatConflict},
		{cards.ErrInsufficientCards, KindInsufficientCards},
		{store.ErrConflict, KindConflict},
		{fmt.Errorf("disk full"), KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, Kind(tt.err), "%v", tt.err)
	}

	assert.Equal(t, "internal error", ErrorMessage(fmt.Errorf("disk full")))
	assert.Equal(t, "table changed, try again", ErrorMessage(store.ErrConflict))
}
