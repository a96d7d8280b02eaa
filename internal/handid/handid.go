// Package handid issues compact identifiers for hands: a UUID rendered as 26
// characters of lowercase Crockford base32.
package handid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generator issues hand ids. Without a reader ids are time-ordered UUIDv7;
// with one they are random UUIDv4 drawn from it, so a seeded reader gives a
// reproducible sequence.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading randomness from r, or using
// time-ordered ids when r is nil.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Next returns a fresh id.
func (g *Generator) Next() (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewRandomFromReader(g.rand)
	}
	if err != nil {
		return "", fmt.Errorf("generate hand id: %w", err)
	}
	return Encode(id), nil
}

// Encode renders id as 26 base32 characters: two zero bits followed by the 128
// id bits, five bits per character.
func Encode(id uuid.UUID) string {
	var out [26]byte
	for i := range out {
		v := 0
		for b := range 5 {
			v <<= 1
			if bit := i*5 + b - 2; bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Parse decodes an id produced by Encode.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if len(s) != 26 {
		return id, fmt.Errorf("hand id must be 26 characters, got %d", len(s))
	}
	if s[0] > '7' {
		return id, fmt.Errorf("hand id first character must be 0-7, got %c", s[0])
	}
	for i := range len(s) {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return id, fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
		for b := range 5 {
			bit := i*5 + b - 2
			if bit >= 0 && v&(0x10>>b) != 0 {
				id[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return id, nil
}

// Validate checks that s is a well-formed hand id.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}
