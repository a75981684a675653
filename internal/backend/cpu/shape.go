package cpu

import (
	"fmt"

	"github.com/born-ml/mixer/internal/parallel"
	"github.com/born-ml/mixer/internal/tensor"
)

// Reshape returns a view of t with a new shape. The element count must match.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.View(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view
}

// Transpose permutes dimensions and materializes the result.
// With no axes the dimension order is reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result := cpu.alloc("transpose", newShape, t.DType())

	switch t.DType() {
	case tensor.Float32:
		transpose(result.AsFloat32(), t.AsFloat32(), shape, newShape, axes, cpu.parallel)
	case tensor.Float64:
		transpose(result.AsFloat64(), t.AsFloat64(), shape, newShape, axes, cpu.parallel)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return result
}

// transpose gathers src into dst. Each output row (last axis) is written by
// one worker; rows are independent so the result is deterministic.
func transpose[T float](dst, src []T, srcShape, dstShape tensor.Shape, axes []int, cfg parallel.Config) {
	ndim := len(dstShape)
	if ndim == 0 {
		dst[0] = src[0]
		return
	}
	if len(dst) == 0 {
		return
	}

	srcStrides := srcShape.ComputeStrides()
	// permuted[i] is the source stride for destination axis i.
	permuted := make([]int, ndim)
	for i, ax := range axes {
		permuted[i] = srcStrides[ax]
	}

	rowLen := dstShape[ndim-1]
	innerStride := permuted[ndim-1]
	numRows := dstShape.NumElements() / rowLen

	parallel.For(numRows, func(row int) {
		// Decode the row index into destination coordinates of the outer axes.
		base := 0
		rem := row
		for d := ndim - 2; d >= 0; d-- {
			coord := rem % dstShape[d]
			rem /= dstShape[d]
			base += coord * permuted[d]
		}

		out := dst[row*rowLen : (row+1)*rowLen]
		for j := range out {
			out[j] = src[base+j*innerStride]
		}
	}, cfg)
}
