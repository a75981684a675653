package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"

	"github.com/born-ml/mixer/internal/parallel"
	"github.com/born-ml/mixer/internal/tensor"
)

// Conv2D performs 2D convolution using im2col followed by one GEMM.
//
// Input shape:  [N, C_in, H, W]
// Kernel shape: [C_out, C_in, K_h, K_w]
// Output shape: [N, C_out, H_out, W_out]
//
// where H_out = (H + 2*padding - K_h)/stride + 1 (same for W).
//
// With kernel size equal to stride and no padding (patch embedding) every
// input pixel lands in exactly one im2col row.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if input.DType() != kernel.DType() {
		panic(fmt.Sprintf("conv2d: dtype mismatch %s vs %s", input.DType(), kernel.DType()))
	}
	if stride <= 0 || padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %d / padding %d", stride, padding))
	}

	g := convGeometry{
		N: inputShape[0], CIn: inputShape[1], H: inputShape[2], W: inputShape[3],
		COut: kernelShape[0], KH: kernelShape[2], KW: kernelShape[3],
		Stride: stride, Padding: padding,
	}
	if g.CIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", g.CIn, kernelShape[1]))
	}

	g.HOut = (g.H+2*padding-g.KH)/stride + 1
	g.WOut = (g.W+2*padding-g.KW)/stride + 1
	if g.HOut <= 0 || g.WOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", g.HOut, g.WOut))
	}

	output := cpu.alloc("conv2d", tensor.Shape{g.N, g.COut, g.HOut, g.WOut}, input.DType())

	switch input.DType() {
	case tensor.Float32:
		conv2d(g, output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), gemm32, cpu.parallel)
	case tensor.Float64:
		conv2d(g, output.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), gemm64, cpu.parallel)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return output
}

// convGeometry holds the sizes of one convolution call.
type convGeometry struct {
	N, CIn, H, W    int
	COut, KH, KW    int
	HOut, WOut      int
	Stride, Padding int
}

func (g convGeometry) colWidth() int  { return g.CIn * g.KH * g.KW }
func (g convGeometry) positions() int { return g.HOut * g.WOut }

// conv2d runs im2col, multiplies by the flattened kernel and scatters the
// [N*H_out*W_out, C_out] product into NCHW order.
func conv2d[T float](
	g convGeometry,
	out, in, kernel []T,
	gemm func(tA, tB blas.Transpose, m, n, k int, a, b, c []T),
	cfg parallel.Config,
) {
	rows := g.N * g.positions()
	width := g.colWidth()

	cols := make([]T, rows*width)
	parallel.For(rows, func(row int) {
		im2colRow(g, cols[row*width:(row+1)*width], in, row)
	}, cfg)

	// [rows, width] @ [C_out, width]^T = [rows, C_out]
	product := make([]T, rows*g.COut)
	gemm(blas.NoTrans, blas.Trans, rows, g.COut, width, cols, kernel, product)

	positions := g.positions()
	parallel.ForBatch(g.N, g.COut, func(n, c int) {
		dst := out[(n*g.COut+c)*positions : (n*g.COut+c+1)*positions]
		src := product[n*positions*g.COut:]
		for p := range dst {
			dst[p] = src[p*g.COut+c]
		}
	}, cfg)
}

// im2colRow fills one im2col row: the flattened [C_in, K_h, K_w] receptive
// field of output position row (batch-major). Out-of-bounds taps are zero.
func im2colRow[T float](g convGeometry, dst, in []T, row int) {
	n := row / g.positions()
	pos := row % g.positions()
	hStart := (pos/g.WOut)*g.Stride - g.Padding
	wStart := (pos%g.WOut)*g.Stride - g.Padding

	i := 0
	for c := 0; c < g.CIn; c++ {
		plane := in[(n*g.CIn+c)*g.H*g.W:]
		for kh := 0; kh < g.KH; kh++ {
			h := hStart + kh
			for kw := 0; kw < g.KW; kw++ {
				w := wStart + kw
				if h >= 0 && h < g.H && w >= 0 && w < g.W {
					dst[i] = plane[h*g.W+w]
				} else {
					dst[i] = 0
				}
				i++
			}
		}
	}
}
