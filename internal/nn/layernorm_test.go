package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/backend/cpu"
	"github.com/born-ml/mixer/internal/tensor"
)

func TestLayerNorm_Basic(t *testing.T) {
	backend := cpu.New()
	layernorm := NewLayerNorm[Backend](3, 1e-5, backend)

	input := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	output := layernorm.Forward(input, Eval)

	// Row [1, 2, 3]: mean 2, variance 2/3, so normalized = [-1.2247, 0, 1.2247].
	// Row [4, 5, 6] normalizes to the same values.
	require.Equal(t, tensor.Shape{2, 3}, output.Shape())
	assert.InDeltaSlice(t, []float32{-1.2247357, 0, 1.2247357, -1.2247357, 0, 1.2247357}, output.Data(), 1e-4)
}

func TestLayerNorm_GammaAndBeta(t *testing.T) {
	backend := cpu.New()
	layernorm := NewLayerNorm[Backend](2, 1e-5, backend)

	copy(layernorm.Gamma.Tensor().Data(), []float32{2, 3})
	copy(layernorm.Beta.Tensor().Data(), []float32{0.5, 1})

	input := fromSlice(t, []float32{2, 4}, tensor.Shape{1, 2}, backend)
	output := layernorm.Forward(input, Eval)

	// normalized = [-1, 1]; scaled = [-1*2 + 0.5, 1*3 + 1]
	assert.InDeltaSlice(t, []float32{-1.5, 4.0}, output.Data(), 1e-4)
}

func TestLayerNorm_3D(t *testing.T) {
	backend := cpu.New()
	layernorm := NewLayerNorm[Backend](8, DefaultLayerNormEpsilon, backend)

	input := tensor.Randn[float32](tensor.Shape{2, 3, 8}, rand.NewSource(11), backend)
	output := layernorm.Forward(input, Eval)

	require.Equal(t, tensor.Shape{2, 3, 8}, output.Shape())

	data := output.Data()
	for row := 0; row < 6; row++ {
		var sum, sumSq float64
		for _, v := range data[row*8 : (row+1)*8] {
			sum += float64(v)
			sumSq += float64(v) * float64(v)
		}
		mean := sum / 8
		variance := sumSq/8 - mean*mean

		assert.InDelta(t, 0, mean, 1e-5, "row %d mean", row)
		assert.InDelta(t, 1, variance, 1e-3, "row %d variance", row)
	}
}

func TestLayerNorm_ConstantInput(t *testing.T) {
	backend := cpu.New()
	layernorm := NewLayerNorm[Backend](4, 1e-5, backend)

	// Zero variance: epsilon keeps rsqrt finite and the output is zero.
	input := tensor.Full[float32](tensor.Shape{1, 4}, 7, backend)
	output := layernorm.Forward(input, Eval)

	for _, v := range output.Data() {
		assert.False(t, math.IsNaN(float64(v)))
		assert.InDelta(t, 0, v, 1e-6)
	}
}

func TestLayerNorm_Parameters(t *testing.T) {
	backend := cpu.New()
	layernorm := NewLayerNorm[Backend](10, 1e-5, backend)

	params := layernorm.Parameters()

	require.Len(t, params, 2)
	assert.Equal(t, "gamma", params[0].Name())
	assert.Equal(t, "beta", params[1].Name())
	assert.Equal(t, 20, CountParameters(params))
	assert.Equal(t, "LayerNorm((10,), eps=1e-05)", layernorm.String())
}

func TestLayerNorm_WrongSize(t *testing.T) {
	backend := cpu.New()
	layernorm := NewLayerNorm[Backend](4, 1e-5, backend)

	assert.Panics(t, func() {
		layernorm.Forward(tensor.Zeros[float32](tensor.Shape{2, 3}, backend), Eval)
	})
	assert.Panics(t, func() { NewLayerNorm[Backend](4, 0, backend) })
}
