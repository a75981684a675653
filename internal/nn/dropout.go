package nn

import (
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/mixer/internal/tensor"
)

// Dropout randomly zeroes elements during training.
//
// In Train mode each element is kept with probability 1-p and survivors are
// scaled by 1/(1-p), so the expected value is unchanged. In Eval mode, and
// whenever p is 0, Forward returns its input unchanged.
//
// The random source is owned by the layer and guarded by a mutex, so one
// Dropout may serve concurrent forward passes. Masks then depend on call
// interleaving.
//
// Example:
//
//	drop := nn.NewDropout[Backend](0.1, rand.NewSource(7))
//	y := drop.Forward(x, nn.Train)
type Dropout[B tensor.Backend] struct {
	p float64

	mu   sync.Mutex
	keep distuv.Bernoulli
}

// NewDropout creates a dropout layer with drop probability p drawn from src.
// Panics unless 0 <= p < 1.
func NewDropout[B tensor.Backend](p float64, src rand.Source) *Dropout[B] {
	if !(p >= 0 && p < 1) {
		panic(fmt.Sprintf("dropout: probability must be in [0, 1), got %g", p))
	}
	return &Dropout[B]{
		p:    p,
		keep: distuv.Bernoulli{P: 1 - p, Src: src},
	}
}

// Forward applies dropout in Train mode and is the identity otherwise.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B], mode Mode) *tensor.Tensor[float32, B] {
	if mode != Train || d.p == 0 {
		return input
	}

	mask := tensor.Zeros[float32](input.Shape(), input.Backend())
	data := mask.Data()

	d.mu.Lock()
	for i := range data {
		data[i] = float32(d.keep.Rand())
	}
	d.mu.Unlock()

	// Survivors are rescaled so the expected activation is unchanged.
	return input.Mul(mask).MulScalar(float32(1 / (1 - d.p)))
}

// P returns the drop probability.
func (d *Dropout[B]) P() float64 {
	return d.p
}

// Parameters returns nil (Dropout has no trainable parameters).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns a string representation of the layer.
func (d *Dropout[B]) String() string {
	return fmt.Sprintf("Dropout(p=%g)", d.p)
}
