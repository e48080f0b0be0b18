package systems

import "math/rand"

// Jitter supplies the random draws consumed by one agent step.
type Jitter interface {
	// Unit returns a uniform value in [0, 1).
	Unit() float32
	// Tri returns -1, 0 or 1 with equal probability.
	Tri() int
}

// RandJitter draws from a math/rand source. Not safe for concurrent use;
// give each worker chunk its own.
type RandJitter struct {
	rng *rand.Rand
}

// NewRandJitter creates a jitter source seeded with seed.
func NewRandJitter(seed int64) *RandJitter {
	return &RandJitter{rng: rand.New(rand.NewSource(seed))}
}

func (j *RandJitter) Unit() float32 { return j.rng.Float32() }
func (j *RandJitter) Tri() int      { return j.rng.Intn(3) - 1 }

// SequenceJitter replays fixed draws, cycling when exhausted.
// An empty sequence yields 0.5 for Unit (zero steering jitter) and 0 for Tri.
type SequenceJitter struct {
	Units []float32
	Tris  []int

	ui, ti int
}

func (s *SequenceJitter) Unit() float32 {
	if len(s.Units) == 0 {
		return 0.5
	}
	v := s.Units[s.ui%len(s.Units)]
	s.ui++
	return v
}

func (s *SequenceJitter) Tri() int {
	if len(s.Tris) == 0 {
		return 0
	}
	v := s.Tris[s.ti%len(s.Tris)]
	s.ti++
	return v
}
