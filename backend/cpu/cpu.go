// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/mixer/internal/backend/cpu"
	"github.com/born-ml/mixer/internal/parallel"
	"github.com/born-ml/mixer/tensor"
)

// Backend represents the CPU backend implementation.
//
// Matrix products go through gonum BLAS and convolutions through im2col.
// Large element loops are split across goroutines.
type Backend = internalcpu.CPUBackend

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend that uses every available core.
//
// Example:
//
//	import (
//	    "github.com/born-ml/mixer/backend/cpu"
//	    "github.com/born-ml/mixer/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// NewSequential creates a CPU backend whose kernels never spawn goroutines.
func NewSequential() *Backend {
	return internalcpu.NewWithConfig(parallel.Sequential())
}

// DefaultParallelConfig returns the settings used by New.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
