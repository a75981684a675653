// Package nn implements the neural network layers the Mixer classifier is
// assembled from.
//
// This package provides:
//   - Module interface: Forward with an explicit Mode, plus Parameters
//   - Parameter: named tensor owned by one layer
//   - Linear, LayerNorm, Conv2D: layers with learnable weights
//   - GELU, Dropout: parameter-free layers
//   - Sequential: container for stacking layers
//
// Layers panic on programmer errors such as a wrong feature size. Callers
// that accept user input validate shapes before calling Forward.
package nn

import (
	"github.com/born-ml/mixer/internal/tensor"
)

// Mode selects training or evaluation behavior for a forward pass.
//
// Only stochastic layers (Dropout) look at the mode. The zero value is Eval.
type Mode int

const (
	// Eval disables stochastic layers; forward passes are deterministic.
	Eval Mode = iota
	// Train enables stochastic layers such as Dropout.
	Train
)

// String returns "train" or "eval".
func (m Mode) String() string {
	switch m {
	case Train:
		return "train"
	case Eval:
		return "eval"
	default:
		return "unknown"
	}
}

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger networks:
//
//	ffn := nn.NewSequential[Backend](
//	    nn.NewLinear(512, 2048, src, backend),
//	    nn.NewGELU[Backend](),
//	    nn.NewDropout[Backend](0.1, src),
//	    nn.NewLinear(2048, 512, src, backend),
//	)
//	y := ffn.Forward(x, nn.Eval)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module for input in the given mode.
	// Inputs are never modified.
	Forward(input *tensor.Tensor[float32, B], mode Mode) *tensor.Tensor[float32, B]

	// Parameters returns the module's parameters, including those of nested
	// modules. Parameter-free modules return nil.
	Parameters() []*Parameter[B]
}
