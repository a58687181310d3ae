package behaviortree

import "math/rand"

// RNG is the minimal randomness capability the engine consumes. It is
// supplied by the caller per tick, never owned or constructed by the
// engine; determinism of tree outcomes follows determinism of this source.
// Implementations may optionally satisfy Uint64Source/ByteFiller for their
// own purposes, but the engine itself draws only whole u32 values.
type RNG interface {
	// NextUint32 returns the next pseudo-random 32-bit value.
	NextUint32() uint32
}

// Uint64Source is an optional capability an RNG may additionally expose.
type Uint64Source interface {
	NextUint64() uint64
}

// ByteFiller is an optional capability an RNG may additionally expose.
type ByteFiller interface {
	FillBytes([]byte)
}

// unitFromUint32 converts a raw draw into a floating value in [0, 1), via
// next_u32() / (2^32) as specified for WeightedRandom.
func unitFromUint32(draw uint32) float64 {
	return float64(draw) / float64(uint64(1)<<32)
}

// MathRandRNG adapts the standard library's *rand.Rand to the RNG
// interface, for callers who don't need a custom source.
type MathRandRNG struct {
	src *rand.Rand
}

// NewMathRandRNG wraps src. A nil src uses the package-level source.
func NewMathRandRNG(src *rand.Rand) *MathRandRNG {
	return &MathRandRNG{src: src}
}

// NextUint32 returns the next pseudo-random 32-bit value.
func (m *MathRandRNG) NextUint32() uint32 {
	if m.src == nil {
		return rand.Uint32()
	}
	return m.src.Uint32()
}

// NextUint64 returns the next pseudo-random 64-bit value.
func (m *MathRandRNG) NextUint64() uint64 {
	if m.src == nil {
		return rand.Uint64()
	}
	return m.src.Uint64()
}

// FixedRNG replays a pre-loaded sequence of u32 draws, looping once
// exhausted. It gives deterministic tests of WeightedSelector,
// RandomSelector, and Reasoner.WeightedRandom/TopN control over the exact
// draw sequence a tick sees.
type FixedRNG struct {
	draws []uint32
	pos   int
}

// NewFixedRNG returns a FixedRNG that yields draws in order, then repeats.
func NewFixedRNG(draws ...uint32) *FixedRNG {
	return &FixedRNG{draws: draws}
}

// NextUint32 returns the next queued draw, wrapping around.
func (f *FixedRNG) NextUint32() uint32 {
	if len(f.draws) == 0 {
		return 0
	}
	v := f.draws[f.pos%len(f.draws)]
	f.pos++
	return v
}
