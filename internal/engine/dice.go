package engine

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// Roller is the single source of randomness: die faces and shuffle indices.
type Roller interface {
	// Roll returns a uniform face in 1..sides.
	Roll(sides int) int
	// Intn returns a uniform integer in 0..n-1.
	Intn(n int) int
}

// NewSeed returns a fresh seed from the operating system's entropy source.
func NewSeed() uint64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// SeededRoller is a deterministic Roller; equal seeds give equal games.
type SeededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller creates a Roller backed by a PCG generator.
func NewSeededRoller(seed uint64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *SeededRoller) Roll(sides int) int {
	if sides <= 0 {
		return 0
	}
	return r.rng.IntN(sides) + 1
}

func (r *SeededRoller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// ScriptedRoller returns queued faces from Roll before falling back to a seeded generator.
// Shuffles always use the fallback.
type ScriptedRoller struct {
	faces    []int
	fallback *SeededRoller
}

// NewScriptedRoller prepares a sequence of deterministic results for the next calls to Roll
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces, fallback: NewSeededRoller(1)}
}

// Push appends faces to the queue.
func (r *ScriptedRoller) Push(faces ...int) {
	r.faces = append(r.faces, faces...)
}

// Pending returns how many queued faces are left.
func (r *ScriptedRoller) Pending() int { return len(r.faces) }

func (r *ScriptedRoller) Roll(sides int) int {
	if len(r.faces) > 0 {
		f := r.faces[0]
		r.faces = r.faces[1:]
		return f
	}
	return r.fallback.Roll(sides)
}

func (r *ScriptedRoller) Intn(n int) int {
	return r.fallback.Intn(n)
}
