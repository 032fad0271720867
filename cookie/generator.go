// Package cookie generates the 48-byte reservation cookie described in
// spec.md §4.6, off-by-one included: the decimal prefix's last digit is
// overwritten by the random fill, by design of the reference contract.
package cookie

import (
	stdrand "math/rand"
	"strconv"

	"ticketserver/rand"
)

// Size is the fixed cookie length.
const Size = 48

const (
	printableMin = 33
	printableMax = 126
)

// Generator produces cookies from a seeded, injectable source so a
// server run with the same seed and request sequence is reproducible.
type Generator struct {
	src *stdrand.Rand
}

// NewGenerator wraps an already-seeded source.
func NewGenerator(src *stdrand.Rand) *Generator {
	return &Generator{src: src}
}

// Generate produces the cookie for a just-assigned reservation id.
func (g *Generator) Generate(reservationID uint32) [Size]byte {
	var out [Size]byte
	prefix := strconv.FormatUint(uint64(reservationID), 10)
	l := copy(out[:], prefix)

	for i := l - 1; i < Size; i++ {
		out[i] = byte(rand.IntBetweenInclusive(g.src, printableMin, printableMax, true, true))
	}
	return out
}
