package cards

import (
	rand "math/rand/v2"
	"sync"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// RandomPicker returns a picker backed by the runtime-seeded global source.
func RandomPicker() Picker {
	return globalPicker{}
}

// SeededPicker is a deterministic picker safe for concurrent use.
type SeededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededPicker returns a picker whose sequence is fully determined by seed.
func NewSeededPicker(seed int64) *SeededPicker {
	u := uint64(seed)
	return &SeededPicker{rng: rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))}
}

func (p *SeededPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
