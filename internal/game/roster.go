package game

import (
	"errors"
	rand "math/rand/v2"
	"strings"

	"github.com/lox/scorekeeper/internal/validate"
)

// DefaultPalette holds the player colors offered during setup.
var DefaultPalette = []string{
	"#f94144", "#f3722c", "#53b3ab", "#577590", "#1c5e99", "#8c3479",
}

// DefaultIcons holds the player icons offered during setup.
var DefaultIcons = []string{
	"hippo", "fish", "frog", "dove", "dog", "crow", "cat", "otter", "shrimp",
}

// SetupEntry is one player's candidate identity collected during setup.
type SetupEntry struct {
	Name  string
	Color string
	Icon  string
}

// ValidationError reports the first setup violation found. Validation errors
// are recoverable; callers re-prompt rather than failing the game.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// NewRoster validates setup entries and builds the ordered player roster.
// Names must be present and unique case-insensitively, colors and icons must
// be present and unique. The first violation wins. When allowedCounts is
// non-empty the number of entries must be one of them. Membership of the
// returned roster never changes for the lifetime of the session.
func NewRoster(entries []SetupEntry, allowedCounts []int) ([]*Player, error) {
	if len(allowedCounts) > 0 {
		ok := false
		for _, n := range allowedCounts {
			if len(entries) == n {
				ok = true
				break
			}
		}
		if !ok {
			return nil, &ValidationError{Field: "players", Reason: "player count not allowed"}
		}
	}

	names := make(map[string]bool, len(entries))
	colors := make(map[string]bool, len(entries))
	icons := make(map[string]bool, len(entries))

	players := make([]*Player, 0, len(entries))
	for _, entry := range entries {
		name, err := validate.SanitizeName(entry.Name)
		switch {
		case errors.Is(err, validate.ErrEmptyName):
			return nil, &ValidationError{Field: "name", Reason: "missing name"}
		case errors.Is(err, validate.ErrNameTooLong):
			return nil, &ValidationError{Field: "name", Reason: "name too long"}
		case err != nil:
			return nil, err
		}

		key := strings.ToLower(name)
		if names[key] {
			return nil, &ValidationError{Field: "name", Reason: "duplicate name"}
		}
		if entry.Color == "" {
			return nil, &ValidationError{Field: "color", Reason: "missing color"}
		}
		if colors[entry.Color] {
			return nil, &ValidationError{Field: "color", Reason: "duplicate color"}
		}
		if entry.Icon == "" {
			return nil, &ValidationError{Field: "icon", Reason: "missing icon"}
		}
		if icons[entry.Icon] {
			return nil, &ValidationError{Field: "icon", Reason: "duplicate icon"}
		}

		names[key] = true
		colors[entry.Color] = true
		icons[entry.Icon] = true

		players = append(players, &Player{
			Name:  name,
			Color: entry.Color,
			Icon:  entry.Icon,
		})
	}

	return players, nil
}

// Shuffle permutes turn order in place with a Fisher-Yates shuffle. It is
// only ever invoked explicitly, before the first save, after the user
// confirms they want a random order.
func Shuffle(players []*Player, rng *rand.Rand) {
	for i := len(players) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		players[i], players[j] = players[j], players[i]
	}
}
