// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/tensor"
)

// Mode selects training or evaluation behavior for a forward pass.
//
// The zero value is Eval.
type Mode = nn.Mode

// Forward pass modes.
const (
	Eval  = nn.Eval
	Train = nn.Train
)

// Module is the base interface for all neural network components.
//
// Every module implements:
//   - Forward: compute the output for an input in the given Mode
//   - Parameters: return all parameters, including nested ones
//
// Modules are composed with Sequential:
//
//	src := rand.NewSource(1)
//	mlp := nn.NewSequential[*cpu.Backend](
//	    nn.NewLinear(512, 2048, src, backend),
//	    nn.NewGELU[*cpu.Backend](),
//	    nn.NewLinear(2048, 512, src, backend),
//	)
//
// Forward never modifies module state other than dropout randomness, so a
// module may serve concurrent calls.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a named tensor owned by a module.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// CountParameters returns the number of trainable scalars in params.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	return nn.CountParameters(params)
}
