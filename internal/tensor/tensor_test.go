package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/backend/cpu"
	"github.com/born-ml/mixer/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, tensor.CPU, x.Device())
	assert.Equal(t, 6, x.NumElements())
	assert.Equal(t, float32(6), x.At(1, 2))
	assert.Equal(t, "Tensor[float32][2 3] on CPU", x.String())

	_, err = tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend)
	assert.Error(t, err)
}

func TestSetAndClone(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros[float64](tensor.Shape{2, 2}, backend)

	x.Set(3.5, 0, 1)
	c := x.Clone()
	c.Set(-1, 0, 1)

	assert.Equal(t, 3.5, x.At(0, 1))
	assert.Equal(t, -1.0, c.At(0, 1))
	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	ones := tensor.Ones[float32](tensor.Shape{3}, backend)
	assert.Equal(t, []float32{1, 1, 1}, ones.Data())

	full := tensor.Full[float32](tensor.Shape{2}, 1e-5, backend)
	assert.Equal(t, []float32{1e-5, 1e-5}, full.Data())

	u := tensor.Uniform[float64](tensor.Shape{1000}, -0.5, 0.5, rand.NewSource(1), backend)
	for _, v := range u.Data() {
		require.GreaterOrEqual(t, v, -0.5)
		require.Less(t, v, 0.5)
	}

	r := tensor.Rand[float32](tensor.Shape{100}, rand.NewSource(2), backend)
	for _, v := range r.Data() {
		require.GreaterOrEqual(t, v, float32(0))
		require.Less(t, v, float32(1))
	}
}

func TestRandn_Seeded(t *testing.T) {
	backend := cpu.New()
	shape := tensor.Shape{2, 3, 4, 4}

	a := tensor.Randn[float32](shape, rand.NewSource(42), backend)
	b := tensor.Randn[float32](shape, rand.NewSource(42), backend)
	c := tensor.Randn[float32](shape, rand.NewSource(43), backend)

	assert.Equal(t, a.Data(), b.Data())
	assert.NotEqual(t, a.Data(), c.Data())
}

func TestOps(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	bias, err := tensor.FromSlice([]float32{1, 0, -1}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	assert.Equal(t, []float32{2, 2, 2, 5, 5, 5}, x.Add(bias).Data())
	assert.Equal(t, []float32{0, 2, 4, 3, 5, 7}, x.Sub(bias).Data())
	assert.Equal(t, []float32{1, 0, -3, 4, 0, -6}, x.Mul(bias).Data())
	assert.Equal(t, []float32{2, 4, 6, 8, 10, 12}, x.MulScalar(2).Data())
	assert.Equal(t, []float32{0, 1, 2, 3, 4, 5}, x.AddScalar(-1).Data())

	xt := x.T()
	assert.Equal(t, tensor.Shape{3, 2}, xt.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, xt.Data())

	// [2, 3] @ [3, 2] = x @ x^T
	gram := x.MatMul(xt)
	assert.InDeltaSlice(t, []float32{14, 32, 32, 77}, gram.Data(), 1e-5)

	assert.Equal(t, tensor.Shape{3, 2}, x.Reshape(3, 2).Shape())
	assert.Equal(t, []float32{2, 5}, x.MeanDim(1, false).Data())
	assert.InDeltaSlice(t, []float32{2.5, 3.5, 4.5}, x.MeanDim(0, false).Data(), 1e-6)

	assert.Panics(t, func() { x.Reshape(1, 2, 3).T() })
}

func TestTensor_Transpose3D(t *testing.T) {
	backend := cpu.New()

	data := make([]float32, 2*3*4)
	for i := range data {
		data[i] = float32(i)
	}
	x, err := tensor.FromSlice(data, tensor.Shape{2, 3, 4}, backend)
	require.NoError(t, err)

	y := x.Transpose(0, 2, 1)

	require.Equal(t, tensor.Shape{2, 4, 3}, y.Shape())
	for b := 0; b < 2; b++ {
		for p := 0; p < 3; p++ {
			for c := 0; c < 4; c++ {
				assert.Equal(t, x.At(b, p, c), y.At(b, c, p))
			}
		}
	}
}
