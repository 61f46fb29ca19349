package ident

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the width of every generated identifier.
const Length = 16

// New returns a fresh identifier. The random source is cryptographic and the
// alphabet mapping is rejection-sampled, so ids are uniform over the
// 62-character alphabet.
func New() string {
	// Largest multiple of len(alphabet) that fits in a byte; bytes at or
	// above it would bias the low end of the alphabet.
	const limit = byte(len(alphabet) * (256 / len(alphabet)))

	out := make([]byte, 0, Length)
	buf := make([]byte, Length)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			panic(fmt.Sprintf("ident: read random source: %v", err))
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out)
}

// Valid reports whether value has the shape of a document identifier.
func Valid(value string) bool {
	if len(value) != Length {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
