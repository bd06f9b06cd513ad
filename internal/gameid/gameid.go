// Package gameid generates opaque, time-sortable identifiers for saved games.
// An id is a UUIDv7 rendered as 26 characters of Crockford base32, so ids
// created later always sort after earlier ones.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// IDLength is the length of every generated identifier.
const IDLength = 26

// RandSource supplies random bytes, injectable for deterministic tests.
type RandSource interface {
	Intn(n int) int
}

// Generator produces identifiers. The zero value is not usable; call New.
type Generator struct {
	src RandSource
}

// New returns a Generator. When src is nil, crypto/rand is used.
func New(src RandSource) *Generator {
	return &Generator{src: src}
}

// Generate returns a fresh identifier using crypto/rand.
func Generate() string {
	return New(nil).Generate()
}

// Generate returns a fresh identifier.
func (g *Generator) Generate() string {
	var u [16]byte

	ms := time.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		u[i] = byte(ms >> (40 - 8*i))
	}

	if g.src != nil {
		for i := 6; i < 16; i++ {
			u[i] = byte(g.src.Intn(256))
		}
	} else if _, err := rand.Read(u[6:]); err != nil {
		panic("gameid: rand read failed: " + err.Error())
	}

	u[6] = (u[6] & 0x0f) | 0x70 // version 7
	u[8] = (u[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encode(u)
}

// encode renders 128 bits as 26 base32 characters, 5 bits per character.
func encode(u [16]byte) string {
	var b strings.Builder
	b.Grow(IDLength)

	for i := 0; i < IDLength; i++ {
		bit := i * 5
		idx := bit / 8
		off := bit % 8

		var v byte
		if off <= 3 {
			v = (u[idx] >> (3 - off)) & 0x1f
		} else {
			v = (u[idx] << (off - 3)) & 0x1f
			if idx+1 < 16 {
				v |= u[idx+1] >> (11 - off)
			}
		}
		b.WriteByte(alphabet[v])
	}

	return b.String()
}

// Validate reports whether id has the shape of a generated identifier.
func Validate(id string) error {
	if len(id) != IDLength {
		return fmt.Errorf("game id must be %d characters, got %d", IDLength, len(id))
	}
	// The first character carries the timestamp's top bits, which stay zero
	// for any realistic clock, so it never exceeds '7'.
	if id[0] > '7' {
		return fmt.Errorf("game id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
