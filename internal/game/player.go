package game

import (
	"encoding/json"
	"math"
)

// placeholderName replaces a missing or unreadable stored name.
const placeholderName = "Player"

// Player is one participant in a session. Identity (name, color, icon) is
// fixed for the lifetime of the roster; points and history only grow through
// ApplyRound and ApplyManual, keeping Points equal to the sum of all deltas.
type Player struct {
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	Icon    string  `json:"icon"`
	Points  int     `json:"points"`
	History []Entry `json:"history"`
}

// ApplyRound records a point delta for the given round and updates the
// running total. Negative deltas are permitted.
func (p *Player) ApplyRound(round, delta int) {
	p.History = append(p.History, Entry{Round: round, Delta: delta})
	p.Points += delta
}

// ApplyManual records an out-of-band point adjustment.
func (p *Player) ApplyManual(delta int) {
	p.History = append(p.History, Entry{Round: ManualRound, Delta: delta})
	p.Points += delta
}

// Reset clears points and history while keeping identity, for replaying with
// the same roster.
func (p *Player) Reset() {
	p.Points = 0
	p.History = nil
}

// UnmarshalJSON reconstructs a player from untrusted stored data. Missing or
// malformed fields fall back to safe defaults instead of failing the load:
// the name becomes a placeholder, color and icon fall back to the first
// palette entries, unreadable points become zero and a non-array history
// becomes empty.
func (p *Player) UnmarshalJSON(data []byte) error {
	p.Name = placeholderName
	p.Color = DefaultPalette[0]
	p.Icon = DefaultIcons[0]
	p.Points = 0
	p.History = nil

	var w struct {
		Name    json.RawMessage `json:"name"`
		Color   json.RawMessage `json:"color"`
		Icon    json.RawMessage `json:"icon"`
		Points  json.RawMessage `json:"points"`
		History json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		// Not an object at all; keep the placeholder player.
		return nil
	}

	var s string
	if json.Unmarshal(w.Name, &s) == nil && s != "" {
		p.Name = s
	}
	if json.Unmarshal(w.Color, &s) == nil && s != "" {
		p.Color = s
	}
	if json.Unmarshal(w.Icon, &s) == nil && s != "" {
		p.Icon = s
	}

	var points float64
	if json.Unmarshal(w.Points, &points) == nil && !math.IsNaN(points) && !math.IsInf(points, 0) {
		p.Points = int(math.Floor(points))
	}

	var rawEntries []json.RawMessage
	if json.Unmarshal(w.History, &rawEntries) == nil {
		for _, raw := range rawEntries {
			var e Entry
			if err := json.Unmarshal(raw, &e); err != nil {
				continue
			}
			p.History = append(p.History, e)
		}
	}

	return nil
}
