// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the typed tensors consumed by the mixer model.
//
// # Overview
//
// Tensors are generic over an element type and a compute backend:
//
//	Tensor[T DType, B Backend]
//
// T is float32 or float64. B is usually *cpu.Backend. Storage is always
// contiguous and row-major, and every dimension is positive.
//
// # Basic Usage
//
//	import (
//	    "golang.org/x/exp/rand"
//
//	    "github.com/born-ml/mixer/backend/cpu"
//	    "github.com/born-ml/mixer/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    w := tensor.Randn[float32](tensor.Shape{4, 3}, rand.NewSource(1), backend)
//	    y := x.MatMul(w.T()) // (2, 4)
//	}
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend) // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)  // (3, 4)
//	c := a.Add(b)                                           // (3, 4)
//
// # Randomness
//
// Random constructors take an explicit rand.Source so results are
// reproducible from a seed. Sources are not safe for concurrent use.
//
// # Errors
//
// Constructors that take user data (FromSlice, NewRaw) return errors.
// Operations on tensors with incompatible shapes panic with a message of the
// form "<op>: ...".
package tensor
