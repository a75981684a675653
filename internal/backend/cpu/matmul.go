package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/mixer/internal/tensor"
)

// MatMul performs matrix multiplication of 2D tensors: (M, K) @ (K, N) -> (M, N).
// The product is computed by gonum's SGEMM/DGEMM.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := cpu.alloc("matmul", tensor.Shape{m, n}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		gemm32(blas.NoTrans, blas.NoTrans, m, n, k, a.AsFloat32(), b.AsFloat32(), result.AsFloat32())
	case tensor.Float64:
		gemm64(blas.NoTrans, blas.NoTrans, m, n, k, a.AsFloat64(), b.AsFloat64(), result.AsFloat64())
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// gemm32 computes c = op(a) @ op(b) for row-major buffers where op(a) is
// (m, k) and op(b) is (k, n). c is overwritten.
func gemm32(tA, tB blas.Transpose, m, n, k int, a, b, c []float32) {
	blas32.Gemm(tA, tB, 1,
		general32(a, m, k, tA),
		general32(b, k, n, tB),
		0,
		blas32.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}

func gemm64(tA, tB blas.Transpose, m, n, k int, a, b, c []float64) {
	blas64.Gemm(tA, tB, 1,
		general64(a, m, k, tA),
		general64(b, k, n, tB),
		0,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}

// general32 describes a row-major buffer whose logical (post-transpose)
// shape is rows x cols.
func general32(data []float32, rows, cols int, t blas.Transpose) blas32.General {
	if t == blas.Trans {
		rows, cols = cols, rows
	}
	return blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}

func general64(data []float64, rows, cols int, t blas.Transpose) blas64.General {
	if t == blas.Trans {
		rows, cols = cols, rows
	}
	return blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}
