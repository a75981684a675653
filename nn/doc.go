// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network layers the mixer model is built
// from.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Conv2D, LayerNorm
//   - Activations: GELU
//   - Regularization: Dropout
//   - Utilities: Sequential, Module interface, Parameter, Mode
//   - Initialization: Xavier
//
// # Basic Usage
//
//	import (
//	    "golang.org/x/exp/rand"
//
//	    "github.com/born-ml/mixer/backend/cpu"
//	    "github.com/born-ml/mixer/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    src := rand.NewSource(0)
//
//	    mlp := nn.NewSequential[*cpu.Backend](
//	        nn.NewLinear(512, 2048, src, backend),
//	        nn.NewGELU[*cpu.Backend](),
//	        nn.NewDropout[*cpu.Backend](0.1, src),
//	        nn.NewLinear(2048, 512, src, backend),
//	    )
//
//	    output := mlp.Forward(input, nn.Eval)
//	}
//
// # Modes
//
// Every Forward takes a Mode. Dropout is active only in Train mode; all
// other layers ignore the mode.
//
// # Errors
//
// Layers panic on programmer errors such as a wrong feature size. The mixer
// package validates user input and returns errors instead.
package nn
