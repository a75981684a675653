package nn

import (
	"github.com/born-ml/mixer/internal/tensor"
)

// GELU is a Gaussian Error Linear Unit activation module.
//
// Applies the exact element-wise function: f(x) = x * Φ(x), where Φ is the
// standard normal CDF.
//
// Example:
//
//	gelu := nn.NewGELU[Backend]()
//	output := gelu.Forward(input, nn.Eval)
type GELU[B tensor.Backend] struct{}

// NewGELU creates a new GELU activation module.
func NewGELU[B tensor.Backend]() *GELU[B] {
	return &GELU[B]{}
}

// Forward applies GELU activation.
func (g *GELU[B]) Forward(input *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	return input.GELU()
}

// Parameters returns nil (GELU has no trainable parameters).
func (g *GELU[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns a string representation of the layer.
func (g *GELU[B]) String() string {
	return "GELU()"
}
