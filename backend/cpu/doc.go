// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - gonum BLAS for matrix multiplication
//   - Im2col algorithm for convolutions
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/mixer/backend/cpu"
//	    "github.com/born-ml/mixer/mixer"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    model, err := mixer.New(mixer.BaseConfig(), backend)
//	    ...
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Kernels never mutate their
// inputs and always allocate their outputs.
//
// NewSequential returns a backend that runs every kernel on the caller's
// goroutine, which is useful when the caller already parallelizes.
package cpu
