package qstab

import "math/rand/v2"

/*
RandomBits is the random-bit stream a StabilizerState samples measurement
outcomes from. A state and every state derived from it share one stream, so
repeated measurements on copies keep drawing fresh bits, and Seed makes the
whole family reproducible.
*/
type RandomBits struct {
	source *rand.PCG
	rng    *rand.Rand
}

// NewRandomBits returns a stream seeded deterministically from seed.
func NewRandomBits(seed uint64) *RandomBits {
	source := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)

	return &RandomBits{
		source: source,
		rng:    rand.New(source),
	}
}

// newEntropyBits returns a stream seeded from the runtime's entropy.
func newEntropyBits() *RandomBits {
	return NewRandomBits(rand.Uint64())
}

// Seed resets the stream to the sequence produced by NewRandomBits(seed).
func (bits *RandomBits) Seed(seed uint64) {
	bits.source.Seed(seed, seed^0x9e3779b97f4a7c15)
}

// Bits draws count independent fair bits.
func (bits *RandomBits) Bits(count int) []uint8 {
	out := make([]uint8, count)
	for i := range out {
		out[i] = uint8(bits.rng.Uint64() & 1)
	}

	return out
}
