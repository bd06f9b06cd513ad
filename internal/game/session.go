package game

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/lox/scorekeeper/internal/gameid"
)

// ErrMalformedSession marks a stored record that cannot be reconstructed
// even defensively (no id, or players is not an array).
var ErrMalformedSession = errors.New("malformed saved game")

// Session is one complete game: roster, ledger, counters and display
// preference. It is the unit of persistence; the id is generated once at
// creation and every save updates the same record in place.
type Session struct {
	ID             string    `json:"id"`
	UpdatedAt      time.Time `json:"date"`
	Players        []*Player `json:"players"`
	CurrentRound   int       `json:"round"`
	ShowScoreTable bool      `json:"showScoreTable"`
	Finished       bool      `json:"finished"`
}

// NewSession wraps a validated roster into a fresh session starting at
// round one.
func NewSession(players []*Player, showScoreTable bool) *Session {
	return &Session{
		ID:             gameid.Generate(),
		Players:        players,
		CurrentRound:   1,
		ShowScoreTable: showScoreTable,
	}
}

// AdvanceRound moves to the next round. Callers must only invoke it once
// every player has received exactly one entry for the current round.
func (s *Session) AdvanceRound() {
	s.CurrentRound++
}

// ResetScores clears every player's points and history and rewinds to round
// one, keeping the roster and the session id for a rematch.
func (s *Session) ResetScores() {
	for _, p := range s.Players {
		p.Reset()
	}
	s.CurrentRound = 1
}

// PlayerNames returns roster names in turn order.
func (s *Session) PlayerNames() []string {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	return names
}

// UnmarshalJSON reconstructs a session from untrusted stored data. Field
// contents are coerced to safe defaults where possible; only a missing id or
// a players field that is not an array make the record unloadable. The date
// field accepts both RFC 3339 strings and millisecond timestamps written by
// the older storage schema.
func (s *Session) UnmarshalJSON(data []byte) error {
	var w struct {
		ID             json.RawMessage `json:"id"`
		Date           json.RawMessage `json:"date"`
		Players        json.RawMessage `json:"players"`
		Round          json.RawMessage `json:"round"`
		ShowScoreTable json.RawMessage `json:"showScoreTable"`
		Finished       json.RawMessage `json:"finished"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var id string
	if json.Unmarshal(w.ID, &id) != nil || id == "" {
		return ErrMalformedSession
	}
	s.ID = id

	var players []*Player
	if w.Players == nil || json.Unmarshal(w.Players, &players) != nil {
		return ErrMalformedSession
	}
	s.Players = players

	s.UpdatedAt = time.Time{}
	var ts time.Time
	var ms float64
	if json.Unmarshal(w.Date, &ts) == nil {
		s.UpdatedAt = ts
	} else if json.Unmarshal(w.Date, &ms) == nil && !math.IsNaN(ms) && !math.IsInf(ms, 0) {
		s.UpdatedAt = time.UnixMilli(int64(ms))
	}

	s.CurrentRound = 1
	var round float64
	if json.Unmarshal(w.Round, &round) == nil && round >= 1 {
		s.CurrentRound = int(math.Floor(round))
	}

	s.ShowScoreTable = true
	var show bool
	if w.ShowScoreTable != nil && json.Unmarshal(w.ShowScoreTable, &show) == nil {
		s.ShowScoreTable = show
	}

	s.Finished = false
	var finished bool
	if w.Finished != nil && json.Unmarshal(w.Finished, &finished) == nil {
		s.Finished = finished
	}

	return nil
}
