package gameid

import (
	"strings"
	"testing"
	"time"
)

type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return f.v % n }

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != IDLength {
		t.Fatalf("expected %d characters, got %d", IDLength, len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated id failed validation: %v", err)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, Generate())
		time.Sleep(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("ids not time-sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestGenerateWithRandSource(t *testing.T) {
	id := New(fixedSource{v: 3}).Generate()
	if err := Validate(id); err != nil {
		t.Errorf("id from injected source failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid", id: "01h5n0et5q6mt3v7ms1234abcd", wantErr: false},
		{name: "too short", id: "01h5n0et5q", wantErr: true},
		{name: "too long", id: "01h5n0et5q6mt3v7ms1234abcdef", wantErr: true},
		{name: "first char out of range", id: "91h5n0et5q6mt3v7ms1234abcd", wantErr: true},
		{name: "invalid character", id: "01h5n0et5q6mt3v7ms1234abcu", wantErr: true},
		{name: "uppercase rejected", id: "01H5N0ET5Q6MT3V7MS1234ABCD", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
