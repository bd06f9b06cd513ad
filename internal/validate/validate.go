// Package validate parses and checks user-supplied point values and player
// names. Functions here are pure; callers decide how to react to failures.
package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the maximum number of runes allowed in a player name.
const MaxNameLength = 15

var (
	ErrEmptyInput  = errors.New("enter a value")
	ErrNotANumber  = errors.New("enter a valid number")
	ErrNegative    = errors.New("points cannot be negative")
	ErrEmptyName   = errors.New("missing name")
	ErrNameTooLong = errors.New("name too long")
)

// ParsePoints converts raw user input into a point delta. Surrounding
// whitespace is tolerated. Decimal input is floored to an integer, matching
// how stored points are coerced on load. NaN and infinities are rejected.
func ParsePoints(raw string, allowNegative bool) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrEmptyInput
	}

	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, ErrNotANumber
	}

	if !allowNegative && num < 0 {
		return 0, ErrNegative
	}

	return int(math.Floor(num)), nil
}

// SanitizeName trims and normalizes a candidate player name for display.
// Control characters are stripped so stored names render safely anywhere.
// Uniqueness against other names is the caller's job.
func SanitizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}

	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)

	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}

	return name, nil
}
