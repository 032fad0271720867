// Package rand provides a small seedable integer-range helper shared by
// the cookie generator and tests. It wraps math/rand rather than
// crypto/rand because reproducibility under a fixed seed is a hard
// requirement here (see package cookie), which a CSPRNG cannot give.
package rand

import "math/rand"

// NewSource returns a *rand.Rand seeded deterministically, so repeated
// runs with the same seed and the same request sequence produce
// byte-identical output.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// IntBetweenInclusive draws from src a value in a range whose endpoints
// may each be included or excluded.
func IntBetweenInclusive(src *rand.Rand, min, max int, isMinInclusive, isMaxInclusive bool) int {
	if min > max {
		panic("min must be <= max")
	}

	if isMinInclusive && isMaxInclusive {
		return src.Intn(max-min+1) + min
	}

	if isMinInclusive {
		if max-min < 1 {
			panic("need min < max for [min, max)")
		}
		return src.Intn(max-min) + min
	}

	if isMaxInclusive {
		if max-min < 1 {
			panic("need min < max for (min, max]")
		}
		return src.Intn(max-min) + (min + 1)
	}

	if max-min < 2 {
		panic("need max-min >= 2 for (min, max)")
	}
	return src.Intn(max-min-1) + (min + 1)
}
