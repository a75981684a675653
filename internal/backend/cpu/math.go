package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/mixer/internal/parallel"
	"github.com/born-ml/mixer/internal/tensor"
)

// MulScalar multiplies every element by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.unary("mulscalar", x, func(v float64) float64 { return v * scalar })
}

// AddScalar adds scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.unary("addscalar", x, func(v float64) float64 { return v + scalar })
}

// Rsqrt computes element-wise reciprocal square root: 1/sqrt(x).
// Panics on non-positive input, which in LayerNorm means a missing epsilon.
func (cpu *CPUBackend) Rsqrt(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		requirePositive("rsqrt", x.AsFloat32())
	case tensor.Float64:
		requirePositive("rsqrt", x.AsFloat64())
	}
	return cpu.unary("rsqrt", x, func(v float64) float64 {
		return 1 / math.Sqrt(v)
	})
}

// requirePositive runs on the calling goroutine so the panic is recoverable.
func requirePositive[T float](op string, data []T) {
	for i, v := range data {
		if v <= 0 {
			panic(fmt.Sprintf("%s: non-positive value at index %d: %f", op, i, float64(v)))
		}
	}
}

// GELU applies the exact Gaussian Error Linear Unit: x * Φ(x), where Φ is
// the standard normal CDF.
func (cpu *CPUBackend) GELU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("gelu", x, func(v float64) float64 {
		return v * distuv.UnitNormal.CDF(v)
	})
}

// unary applies fn element-wise. Values are evaluated in float64 and rounded
// back to the tensor's dtype.
func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, fn func(float64) float64) *tensor.RawTensor {
	result := cpu.alloc(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		mapElements(result.AsFloat32(), x.AsFloat32(), fn, cpu.parallel)
	case tensor.Float64:
		mapElements(result.AsFloat64(), x.AsFloat64(), fn, cpu.parallel)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}

	return result
}

func mapElements[T float](dst, src []T, fn func(float64) float64, cfg parallel.Config) {
	parallel.For(len(src), func(i int) {
		dst[i] = T(fn(float64(src[i])))
	}, cfg)
}
