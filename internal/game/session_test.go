package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/scorekeeper/internal/gameid"
)

func newTestSession(t *testing.T, n int) *Session {
	t.Helper()
	players, err := NewRoster(setupEntries(n), nil)
	require.NoError(t, err)
	return NewSession(players, true)
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, 4)

	assert.NoError(t, gameid.Validate(s.ID))
	assert.Equal(t, 1, s.CurrentRound)
	assert.True(t, s.ShowScoreTable)
	assert.False(t, s.Finished)
}

func TestResetScoresKeepsIdentity(t *testing.T) {
	s := newTestSession(t, 3)
	id := s.ID

	s.Players[0].ApplyRound(1, 10)
	s.Players[1].ApplyRound(1, 5)
	s.Players[2].ApplyManual(-2)
	s.AdvanceRound()

	s.ResetScores()

	assert.Equal(t, id, s.ID)
	assert.Equal(t, 1, s.CurrentRound)
	for i, p := range s.Players {
		assert.Zero(t, p.Points)
		assert.Empty(t, p.History)
		assert.Equal(t, DefaultPalette[i], p.Color)
		assert.Equal(t, DefaultIcons[i], p.Icon)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestSession(t, 4)
	s.Players[0].ApplyRound(1, 10)
	s.Players[1].ApplyManual(-4)
	s.AdvanceRound()
	s.UpdatedAt = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var got Session
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.CurrentRound, got.CurrentRound)
	assert.Equal(t, s.ShowScoreTable, got.ShowScoreTable)
	assert.Equal(t, s.Finished, got.Finished)
	require.Len(t, got.Players, 4)
	for i := range s.Players {
		assert.Equal(t, s.Players[i].Name, got.Players[i].Name)
		assert.Equal(t, s.Players[i].Color, got.Players[i].Color)
		assert.Equal(t, s.Players[i].Icon, got.Players[i].Icon)
		assert.Equal(t, s.Players[i].Points, got.Players[i].Points)
		assert.Equal(t, len(s.Players[i].History), len(got.Players[i].History))
	}
}

func TestSessionUnmarshalDefensive(t *testing.T) {
	raw := `{
		"id": "abc",
		"date": 1756700000000,
		"players": [
			{"name": "Alice", "color": "#f94144", "icon": "cat", "points": 12,
			 "history": [{"round": 1, "delta": 12}]},
			{"points": "twelve", "history": "nope"},
			"garbage"
		],
		"round": 2.7,
		"showScoreTable": false
	}`

	var s Session
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, 2, s.CurrentRound)
	assert.False(t, s.ShowScoreTable)
	assert.False(t, s.Finished)
	assert.Equal(t, time.UnixMilli(1756700000000), s.UpdatedAt)

	require.Len(t, s.Players, 3)
	assert.Equal(t, "Alice", s.Players[0].Name)
	assert.Equal(t, 12, s.Players[0].Points)

	// Broken fields fall back to safe defaults.
	assert.Equal(t, placeholderName, s.Players[1].Name)
	assert.Equal(t, DefaultPalette[0], s.Players[1].Color)
	assert.Equal(t, DefaultIcons[0], s.Players[1].Icon)
	assert.Zero(t, s.Players[1].Points)
	assert.Empty(t, s.Players[1].History)

	// A non-object player entry still yields a placeholder.
	assert.Equal(t, placeholderName, s.Players[2].Name)
}

func TestSessionUnmarshalDefaults(t *testing.T) {
	var s Session
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","players":[]}`), &s))

	assert.Equal(t, 1, s.CurrentRound)
	assert.True(t, s.ShowScoreTable, "showScoreTable defaults to true when absent")
	assert.False(t, s.Finished)
	assert.True(t, s.UpdatedAt.IsZero())
}

func TestSessionUnmarshalMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing id", raw: `{"players":[]}`},
		{name: "empty id", raw: `{"id":"","players":[]}`},
		{name: "missing players", raw: `{"id":"x"}`},
		{name: "players not an array", raw: `{"id":"x","players":{"a":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Session
			assert.ErrorIs(t, json.Unmarshal([]byte(tt.raw), &s), ErrMalformedSession)
		})
	}
}
