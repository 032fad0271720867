package cookie

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ticketserver/rand"
)

const referenceSeed = 2137

func TestGenerateWritesDecimalPrefixMinusLastDigit(t *testing.T) {
	g := NewGenerator(rand.NewSource(referenceSeed))
	out := g.Generate(1000000)
	// "1000000" has 7 digits; per the off-by-one, only the first 6 are
	// left untouched, the 7th (index 6) is overwritten by the random fill.
	assert.Equal(t, "100000", string(out[:6]))
}

func TestGenerateFillsRemainderWithPrintableASCII(t *testing.T) {
	g := NewGenerator(rand.NewSource(referenceSeed))
	out := g.Generate(42)
	for i, b := range out[1:] { // id "42" has L=2, random fill starts at index L-1=1
		assert.GreaterOrEqualf(t, b, byte(33), "out[%d] outside printable ASCII range", i+1)
		assert.LessOrEqualf(t, b, byte(126), "out[%d] outside printable ASCII range", i+1)
	}
}

func TestGenerateIsDeterministicForSameSeedAndSequence(t *testing.T) {
	g1 := NewGenerator(rand.NewSource(referenceSeed))
	g2 := NewGenerator(rand.NewSource(referenceSeed))
	a := g1.Generate(1000000)
	b := g2.Generate(1000000)
	assert.Equal(t, a, b)
}

func TestGenerateProducesFullSize(t *testing.T) {
	g := NewGenerator(rand.NewSource(referenceSeed))
	out := g.Generate(7)
	assert.Len(t, out, Size)
}
