package nn

import (
	"github.com/born-ml/mixer/internal/tensor"
)

// Parameter is a named weight tensor owned by exactly one layer.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

// NewParameter creates a parameter wrapping t.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// NumElements returns the number of scalar values in the parameter.
func (p *Parameter[B]) NumElements() int {
	return p.tensor.NumElements()
}

// CountParameters returns the total number of scalar values in params.
// Every parameter is learnable, so this is the trainable parameter count.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	total := 0
	for _, p := range params {
		total += p.NumElements()
	}
	return total
}
