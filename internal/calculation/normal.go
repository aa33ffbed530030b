package calculation

import (
	"math"
	"math/rand"
)

// UniformSource yields uniform samples in [0,1). *math/rand.Rand satisfies it.
type UniformSource interface {
	Float64() float64
}

// NormalGenerator draws standard-normal variates with the Box-Muller transform.
// It is not safe for concurrent use; give each goroutine its own generator.
type NormalGenerator struct {
	src UniformSource
}

// NewNormalGenerator wraps an injected uniform source.
func NewNormalGenerator(src UniformSource) *NormalGenerator {
	return &NormalGenerator{src: src}
}

// NewSeededNormalGenerator returns a generator over a private math/rand source.
func NewSeededNormalGenerator(seed int64) *NormalGenerator {
	return NewNormalGenerator(rand.New(rand.NewSource(seed)))
}

// Next returns one sample with mean 0 and variance 1.
func (g *NormalGenerator) Next() float64 {
	u := g.openUniform()
	v := g.openUniform()
	return boxMullerTransform(u, v)
}

// openUniform redraws until the sample is inside (0,1) so log(u) stays finite.
func (g *NormalGenerator) openUniform() float64 {
	for {
		if u := g.src.Float64(); u > 0 {
			return u
		}
	}
}

func boxMullerTransform(u1, u2 float64) float64 {
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
