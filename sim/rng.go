package sim

import (
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible replication.
// Two replications with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical passenger wait sequences.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemArrivals drives interarrival draws of the arrival generator.
	// Uses the master seed directly.
	SubsystemArrivals = "arrivals"

	// SubsystemScan drives personal-scan service durations.
	SubsystemScan = "scan"
)

// RandomSource is the narrow view of a random stream used by model components.
type RandomSource interface {
	// Uniform returns a value drawn uniformly from [low, high).
	Uniform(low, high float64) float64
	// Exponential returns a non-negative value with the given mean.
	Exponential(mean float64) float64
}

// === RandomStream ===

// RandomStream is a seeded source of uniform and exponential variates.
// Identical seed and identical call order yield an identical sequence.
//
// Thread-safety: NOT thread-safe. Owned by exactly one replication.
type RandomStream struct {
	rng *rand.Rand
}

// NewRandomStream returns a stream seeded with seed.
func NewRandomStream(seed int64) *RandomStream {
	return &RandomStream{rng: rand.New(rand.NewSource(seed))}
}

// Seed resets the stream to the start of the sequence for value.
func (s *RandomStream) Seed(value int64) {
	s.rng = rand.New(rand.NewSource(value))
}

// Uniform returns a value drawn uniformly from [low, high).
// low == high returns low.
func (s *RandomStream) Uniform(low, high float64) float64 {
	return low + (high-low)*s.rng.Float64()
}

// Exponential returns an exponentially distributed value with the given mean.
func (s *RandomStream) Exponential(mean float64) float64 {
	return s.rng.ExpFloat64() * mean
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated streams per subsystem, so
// that extra draws in one subsystem never shift the sequence seen by another.
//
// Derivation formula:
//   - For SubsystemArrivals: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*RandomStream
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*RandomStream),
	}
}

// ForSubsystem returns a deterministically-seeded stream for the named subsystem.
// The same subsystem name always returns the same *RandomStream (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *RandomStream {
	if s, ok := p.subsystems[name]; ok {
		return s
	}

	derivedSeed := int64(p.key)
	if name != SubsystemArrivals {
		derivedSeed ^= fnv1a64(name)
	}

	s := NewRandomStream(derivedSeed)
	p.subsystems[name] = s
	return s
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
