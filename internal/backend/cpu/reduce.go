package cpu

import (
	"fmt"

	"github.com/born-ml/mixer/internal/tensor"
)

// MeanDim averages tensor elements along dim.
//
// Parameters:
//   - dim: dimension to reduce (negative values count from the end)
//   - keepDim: keep the reduced dimension with size 1 instead of removing it
//
// Example:
//
//	x := ... // [2, 196, 512]
//	y := backend.MeanDim(x, -1, true)  // [2, 196, 1] (LayerNorm statistics)
//	z := backend.MeanDim(x, 1, false)  // [2, 512]    (pooling over patches)
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	const op = "meandim"
	shape := x.Shape()
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	outShape := reducedShape(shape, dim, keepDim)
	result := cpu.alloc(op, outShape, x.DType())

	// View x as [outer, size, inner] and reduce the middle axis.
	outer := shape[:dim].NumElements()
	size := shape[dim]
	inner := shape[dim+1:].NumElements()

	switch x.DType() {
	case tensor.Float32:
		meanMiddle(result.AsFloat32(), x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		meanMiddle(result.AsFloat64(), x.AsFloat64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}

	return result
}

func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	out = append(out, shape[:dim]...)
	return append(out, shape[dim+1:]...)
}

// meanMiddle averages the middle axis of a [outer, size, inner] buffer into
// [outer, inner], accumulating in source order.
func meanMiddle[T float](dst, src []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		acc := dst[o*inner : (o+1)*inner]
		for s := 0; s < size; s++ {
			row := src[(o*size+s)*inner : (o*size+s+1)*inner]
			for i, v := range row {
				acc[i] += v
			}
		}
		n := T(size)
		for i := range acc {
			acc[i] /= n
		}
	}
}
