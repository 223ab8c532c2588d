package egreedy

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/rlbasics/utils/floatutils"
)

const (
	// DecayRate is the per-step multiplicative decay of a decaying ε
	DecayRate float64 = 0.99

	// DecayFloor is the smallest value that a decaying ε reaches
	DecayFloor float64 = 0.01
)

// Schedule determines the exploration rate ε on each timestep
type Schedule interface {
	// At returns ε on the 0-based timestep t
	At(t int) float64
}

// Constant is a Schedule with a fixed ε
type Constant float64

// At returns ε, which is the same on all timesteps
func (c Constant) At(int) float64 {
	return float64(c)
}

func (c Constant) String() string {
	return fmt.Sprintf("ε = %v", float64(c))
}

// Decay is a Schedule which decays ε geometrically from an initial
// value, ε_t = max(Floor, Initial * Rate^t). ε never exceeds 1.
type Decay struct {
	Initial float64
	Rate    float64
	Floor   float64
}

// NewDecay returns a new Decay schedule starting at initial and
// decaying at the default rate to the default floor
func NewDecay(initial float64) Decay {
	return Decay{Initial: initial, Rate: DecayRate, Floor: DecayFloor}
}

// At returns ε on timestep t
func (d Decay) At(t int) float64 {
	e := d.Initial * math.Pow(d.Rate, float64(t))
	return floatutils.Clip(e, d.Floor, 1.0)
}

func (d Decay) String() string {
	return "ε decaying"
}
