package game

import (
	"encoding/json"
	"math"
)

// ManualRound tags an entry recorded outside a round.
const ManualRound = 0

// manualSentinel is how manual entries encode the round field on disk.
const manualSentinel = "manual-entry"

// Entry is one recorded point change for a player. Entries are append-only;
// once added to a player's history they are never mutated or removed.
type Entry struct {
	Round int // ManualRound for manual entries, otherwise >= 1
	Delta int
}

// Manual reports whether the entry is an out-of-band adjustment.
func (e Entry) Manual() bool {
	return e.Round <= ManualRound
}

type entryWire struct {
	Round any `json:"round"`
	Delta int `json:"delta"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	w := entryWire{Delta: e.Delta}
	if e.Manual() {
		w.Round = manualSentinel
	} else {
		w.Round = e.Round
	}
	return json.Marshal(w)
}

// UnmarshalJSON tolerates malformed stored entries: anything that is not a
// positive round number is treated as a manual entry, and a broken delta
// becomes zero. Saved files may have been hand-edited or written by an older
// schema, so decoding must not fail on bad field contents.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w struct {
		Round json.RawMessage `json:"round"`
		Delta json.RawMessage `json:"delta"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	e.Round = ManualRound
	var round float64
	if json.Unmarshal(w.Round, &round) == nil && round >= 1 {
		e.Round = int(math.Floor(round))
	}

	e.Delta = 0
	var delta float64
	if json.Unmarshal(w.Delta, &delta) == nil && !math.IsNaN(delta) && !math.IsInf(delta, 0) {
		e.Delta = int(math.Floor(delta))
	}

	return nil
}
