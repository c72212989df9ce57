// Package token resolves per-row capability tokens: an existing token is
// kept verbatim, a missing one is minted from a random source.
package token

import (
	"math/rand"
	"strings"
)

// Alphabet is the character set for generated tokens. Tokens are
// case-sensitive; generation only ever emits uppercase.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the generated token length when the caller does not
// configure one.
const DefaultLength = 8

// New returns a random token of the given length drawn from Alphabet.
// The rand source is an explicit parameter so callers can inject a
// deterministic one.
func New(length int, rng *rand.Rand) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[rng.Intn(len(Alphabet))]
	}
	return string(b)
}

// Present reports whether raw holds a real token. A token is missing when
// it is empty after trimming or equals the textual null marker "nan" that
// spreadsheet exports produce for blank cells. No wider set of null markers
// is recognized.
func Present(raw string) bool {
	v := strings.TrimSpace(raw)
	return v != "" && !strings.EqualFold(v, "nan")
}

// Resolve returns the trimmed existing token when one is present, otherwise
// a freshly generated token of the given length. The second return value
// reports whether a new token was minted. Resolve never fails.
func Resolve(raw string, length int, rng *rand.Rand) (string, bool) {
	if Present(raw) {
		return strings.TrimSpace(raw), false
	}
	return New(length, rng), true
}
