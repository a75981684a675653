package cpu

import (
	"fmt"

	"github.com/born-ml/mixer/internal/tensor"
)

// float is the element constraint shared by the generic kernels.
type float interface {
	~float32 | ~float64
}

func add[T float](x, y T) T { return x + y }
func sub[T float](x, y T) T { return x - y }
func mul[T float](x, y T) T { return x * y }

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, add[float32], add[float64])
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, sub[float32], sub[float64])
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, mul[float32], mul[float64])
}

func (cpu *CPUBackend) binary(
	op string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := cpu.alloc(op, outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		applyBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, needsBroadcast, f32)
	case tensor.Float64:
		applyBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, needsBroadcast, f64)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}

	return result
}

// applyBinary writes fn(a, b) into dst. When broadcasting, it walks the
// output with an odometer over coordinates so no per-element division is
// needed.
func applyBinary[T float](dst, a, b []T, aShape, bShape, outShape tensor.Shape, broadcast bool, fn func(x, y T) T) {
	if !broadcast {
		for i := range dst {
			dst[i] = fn(a[i], b[i])
		}
		return
	}

	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	ndim := len(outShape)
	coords := make([]int, ndim)

	ai, bi := 0, 0
	for i := range dst {
		dst[i] = fn(a[ai], b[bi])

		for d := ndim - 1; d >= 0; d-- {
			coords[d]++
			ai += aStrides[d]
			bi += bStrides[d]
			if coords[d] < outShape[d] {
				break
			}
			ai -= aStrides[d] * outShape[d]
			bi -= bStrides[d] * outShape[d]
			coords[d] = 0
		}
	}
}

// broadcastStrides returns strides of inShape aligned to outShape, with 0 for
// every padded or size-1 (broadcast) dimension.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	offset := outDim - len(inShape)
	orig := inShape.ComputeStrides()

	strides := make([]int, outDim)
	for i := range strides {
		inIdx := i - offset
		if inIdx < 0 || inShape[inIdx] == 1 {
			continue
		}
		strides[i] = orig[inIdx]
	}
	return strides
}
