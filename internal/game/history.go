package game

import "sort"

// HistoryRow is one ledger entry paired with the player it belongs to, for
// global history views.
type HistoryRow struct {
	Player *Player
	Entry  Entry
}

// HistoryView flattens every player's history into one sequence ordered for
// display: manual entries first, then rounds in descending order. The sort is
// stable so equal rows keep their insertion order between renders.
func HistoryView(players []*Player) []HistoryRow {
	var rows []HistoryRow
	for _, p := range players {
		for _, e := range p.History {
			rows = append(rows, HistoryRow{Player: p, Entry: e})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Entry, rows[j].Entry
		if a.Manual() != b.Manual() {
			return a.Manual()
		}
		if a.Manual() {
			return false
		}
		return a.Round > b.Round
	})

	return rows
}

// Leaderboard returns players ordered by points descending. Ties keep the
// original roster order; a stable order avoids visual churn when the board
// re-renders.
func Leaderboard(players []*Player) []*Player {
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})
	return sorted
}
