// Package cpu implements the tensor backend on the CPU, using gonum BLAS for
// matrix products and goroutine fan-out for large element loops.
package cpu

import (
	"fmt"

	"github.com/born-ml/mixer/internal/parallel"
	"github.com/born-ml/mixer/internal/tensor"
)

// CPUBackend implements tensor.Backend on the CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a CPU backend that parallelizes across all available cores.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
// Use parallel.Config{Enabled: false} for strictly single-threaded kernels.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// alloc creates a result tensor or panics with the op name.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// Compile-time check.
var _ tensor.Backend = (*CPUBackend)(nil)
