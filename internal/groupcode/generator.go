package groupcode

import (
	"math/rand/v2"
	"regexp"
	"strconv"
)

// Length is the fixed length of a group code.
const Length = 8

// Pattern matches a well-formed group code.
var Pattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// Generator defines the interface for generating group codes
type Generator interface {
	// Generate returns a new group code
	Generate() string
}

// RandomGenerator generates 8-character lowercase-alphanumeric codes from a
// base-36 random number. Codes are not collision-checked; at this system's
// scale the 36^8 space makes collisions a non-concern.
type RandomGenerator struct {
	src *rand.Rand
}

// New creates a new random group code generator
func New() *RandomGenerator {
	return &RandomGenerator{}
}

// NewSeeded creates a generator with a deterministic source (for testing)
func NewSeeded(seed uint64) *RandomGenerator {
	return &RandomGenerator{
		src: rand.New(rand.NewPCG(seed, seed)),
	}
}

// Generate returns a new 8-character group code
func (g *RandomGenerator) Generate() string {
	code := ""
	for len(code) < Length {
		var n uint64
		if g.src != nil {
			n = g.src.Uint64()
		} else {
			n = rand.Uint64()
		}
		code += strconv.FormatUint(n, 36)
	}
	return code[:Length]
}

// Ensure RandomGenerator implements Generator interface
var _ Generator = (*RandomGenerator)(nil)
