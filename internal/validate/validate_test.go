package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		allowNegative bool
		want          int
		wantErr       error
	}{
		{name: "plain integer", raw: "12", want: 12},
		{name: "zero", raw: "0", want: 0},
		{name: "surrounding whitespace", raw: "  42  ", want: 42},
		{name: "tab and newline padding", raw: "\t7\n", want: 7},
		{name: "explicit plus sign", raw: "+5", want: 5},
		{name: "negative allowed", raw: "-3", allowNegative: true, want: -3},
		{name: "negative rejected", raw: "-3", wantErr: ErrNegative},
		{name: "decimal floored", raw: "2.9", want: 2},
		{name: "negative decimal floored", raw: "-2.5", allowNegative: true, want: -3},
		{name: "empty", raw: "", wantErr: ErrEmptyInput},
		{name: "whitespace only", raw: "   ", wantErr: ErrEmptyInput},
		{name: "words", raw: "ten", wantErr: ErrNotANumber},
		{name: "trailing garbage", raw: "12abc", wantErr: ErrNotANumber},
		{name: "NaN", raw: "NaN", wantErr: ErrNotANumber},
		{name: "positive infinity", raw: "Inf", wantErr: ErrNotANumber},
		{name: "negative infinity", raw: "-Inf", allowNegative: true, wantErr: ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePoints(tt.raw, tt.allowNegative)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeName(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		name, err := SanitizeName("  Alice  ")
		require.NoError(t, err)
		assert.Equal(t, "Alice", name)
	})

	t.Run("strips control characters", func(t *testing.T) {
		name, err := SanitizeName("Bob\x1b[31m")
		require.NoError(t, err)
		assert.Equal(t, "Bob[31m", name)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := SanitizeName("   ")
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("rejects control-only input", func(t *testing.T) {
		_, err := SanitizeName("\x00\x01")
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("rejects names over the limit", func(t *testing.T) {
		_, err := SanitizeName("abcdefghijklmnop") // 16 runes
		assert.ErrorIs(t, err, ErrNameTooLong)
	})

	t.Run("allows exactly the limit", func(t *testing.T) {
		name, err := SanitizeName("abcdefghijklmno") // 15 runes
		require.NoError(t, err)
		assert.Len(t, name, 15)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		name, err := SanitizeName("пятнадцатьбуквы") // 15 cyrillic runes
		require.NoError(t, err)
		assert.Equal(t, "пятнадцатьбуквы", name)
	})
}
