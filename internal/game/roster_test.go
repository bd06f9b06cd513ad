package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/scorekeeper/internal/randutil"
)

func setupEntries(n int) []SetupEntry {
	names := []string{"Alice", "Bob", "Carol", "Dan", "Erin", "Frank"}
	entries := make([]SetupEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = SetupEntry{
			Name:  names[i],
			Color: DefaultPalette[i],
			Icon:  DefaultIcons[i],
		}
	}
	return entries
}

func TestNewRoster(t *testing.T) {
	players, err := NewRoster(setupEntries(4), nil)
	require.NoError(t, err)
	require.Len(t, players, 4)

	for i, p := range players {
		assert.Zero(t, p.Points)
		assert.Empty(t, p.History)
		assert.Equal(t, DefaultPalette[i], p.Color)
		assert.Equal(t, DefaultIcons[i], p.Icon)
	}
}

func TestNewRosterValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func([]SetupEntry)
		wantField  string
		wantReason string
	}{
		{
			name:       "missing name",
			mutate:     func(e []SetupEntry) { e[2].Name = "   " },
			wantField:  "name",
			wantReason: "missing name",
		},
		{
			name:       "duplicate name case-insensitive",
			mutate:     func(e []SetupEntry) { e[1].Name = "aLiCe" },
			wantField:  "name",
			wantReason: "duplicate name",
		},
		{
			name:       "name too long",
			mutate:     func(e []SetupEntry) { e[0].Name = "averyverylongplayername" },
			wantField:  "name",
			wantReason: "name too long",
		},
		{
			name:       "missing color",
			mutate:     func(e []SetupEntry) { e[3].Color = "" },
			wantField:  "color",
			wantReason: "missing color",
		},
		{
			name:       "duplicate color",
			mutate:     func(e []SetupEntry) { e[3].Color = e[0].Color },
			wantField:  "color",
			wantReason: "duplicate color",
		},
		{
			name:       "missing icon",
			mutate:     func(e []SetupEntry) { e[1].Icon = "" },
			wantField:  "icon",
			wantReason: "missing icon",
		},
		{
			name:       "duplicate icon",
			mutate:     func(e []SetupEntry) { e[2].Icon = e[1].Icon },
			wantField:  "icon",
			wantReason: "duplicate icon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := setupEntries(4)
			tt.mutate(entries)

			_, err := NewRoster(entries, nil)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantReason, verr.Reason)
		})
	}
}

func TestNewRosterAllowedCounts(t *testing.T) {
	_, err := NewRoster(setupEntries(3), []int{4, 5, 6})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "players", verr.Field)

	_, err = NewRoster(setupEntries(4), []int{4, 5, 6})
	assert.NoError(t, err)
}

func TestNewRosterTrimsNames(t *testing.T) {
	entries := setupEntries(3)
	entries[0].Name = "  Alice  "

	players, err := NewRoster(entries, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice", players[0].Name)
}

func TestShuffle(t *testing.T) {
	players, err := NewRoster(setupEntries(6), nil)
	require.NoError(t, err)

	original := make([]*Player, len(players))
	copy(original, players)

	Shuffle(players, randutil.New(42))

	// Same players, membership unchanged.
	assert.ElementsMatch(t, original, players)

	// Same seed reproduces the same permutation.
	again := make([]*Player, len(original))
	copy(again, original)
	Shuffle(again, randutil.New(42))
	assert.Equal(t, players, again)

	// Some seed must actually move things around.
	moved := false
	for seed := int64(0); seed < 10 && !moved; seed++ {
		trial := make([]*Player, len(original))
		copy(trial, original)
		Shuffle(trial, randutil.New(seed))
		for i := range trial {
			if trial[i] != original[i] {
				moved = true
				break
			}
		}
	}
	assert.True(t, moved, "shuffle never changed the order")
}
