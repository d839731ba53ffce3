package commands

type Command interface {
	Name() string
}

// Identify binds a player identity to the connection.
type Identify struct {
	PlayerID string `json:"playerId"`
}

func (i Identify) Name() string { return "IDENTIFY" }

type Join struct {
	TableID string `json:"tableId"`
	Seat    int    `json:"seat"`
}

func (j Join) Name() string { return "JOIN" }

type Leave struct {
	TableID string `json:"tableId"`
	Seat    int    `json:"seat"`
}

func (l Leave) Name() string { return "LEAVE" }

type Start struct {
	TableID string `json:"tableId"`
}

func (s Start) Name() string { return "START" }

type Bet struct {
	TableID string `json:"tableId"`
	Seat    int    `json:"seat"`
	Amount  int    `json:"amount"`
}

func (b Bet) Name() string { return "BET" }

type Check struct {
	TableID string `json:"tableId"`
	Seat    int    `json:"seat"`
}

func (c Check) Name() string { return "CHECK" }

type Fold struct {
	TableID string `json:"tableId"`
	Seat    int    `json:"seat"`
}

func (f Fold) Name() string { return "FOLD" }

type Refresh struct {
	TableID string `json:"tableId"`
}

func (r Refresh) Name() string { return "REFRESH" }

// Lookup returns the zero command registered under name.
func Lookup(name string) (Command, bool) {
	for _, c := range All() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

func All() []Command {
	return []Command{Identify{}, Join{}, Leave{}, Start{}, Bet{}, Check{}, Fold{}, Refresh{}}
}
