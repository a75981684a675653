package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/mixer/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, and the mode is
// passed to every module unchanged.
//
// Example:
//
//	ffn := nn.NewSequential[Backend](
//	    nn.NewLinear(196, 256, src, backend),
//	    nn.NewGELU[Backend](),
//	    nn.NewLinear(256, 196, src, backend),
//	)
//
//	output := ffn.Forward(input, nn.Eval)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B], mode Mode) *tensor.Tensor[float32, B] {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output, mode)
	}
	return output
}

// Parameters returns the parameters of all modules in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// String lists the contained modules, one per line.
func (s *Sequential[B]) String() string {
	var sb strings.Builder
	sb.WriteString("Sequential(\n")
	for i, module := range s.modules {
		fmt.Fprintf(&sb, "  (%d): %v\n", i, module)
	}
	sb.WriteString(")")
	return sb.String()
}
