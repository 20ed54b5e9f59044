package chip8

import "math/rand/v2"

// RandomSource provides the entropy for the rnd instruction.
// *rand.Rand from math/rand/v2 satisfies this interface.
type RandomSource interface {
	Uint32() uint32
}

// NewSeededRandom returns a deterministic random source for the given seed.
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// globalRandom uses the automatically seeded global generator.
type globalRandom struct{}

func (globalRandom) Uint32() uint32 {
	return rand.Uint32()
}
