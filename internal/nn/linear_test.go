package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/backend/cpu"
	"github.com/born-ml/mixer/internal/tensor"
)

// setLinear overwrites a layer's weights with known values.
func setLinear(l *Linear[Backend], weight, bias []float32) {
	copy(l.Weight().Tensor().Data(), weight)
	copy(l.Bias().Tensor().Data(), bias)
}

func TestLinear_Forward2D(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear(3, 2, rand.NewSource(1), backend)

	// W = [[1, 0, -1], [2, 1, 0]], b = [0.5, -1]
	setLinear(layer, []float32{1, 0, -1, 2, 1, 0}, []float32{0.5, -1})

	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	y := layer.Forward(x, Eval)

	require.Equal(t, tensor.Shape{2, 2}, y.Shape())
	// Row 0: [1-3+0.5, 2+2-1] = [-1.5, 3]; row 1: [4-6+0.5, 8+5-1] = [-1.5, 12]
	assert.InDeltaSlice(t, []float32{-1.5, 3, -1.5, 12}, y.Data(), 1e-5)
}

func TestLinear_ForwardKeepsLeadingDims(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear(4, 6, rand.NewSource(2), backend)

	x := tensor.Randn[float32](tensor.Shape{2, 3, 4}, rand.NewSource(3), backend)
	y := layer.Forward(x, Eval)

	require.Equal(t, tensor.Shape{2, 3, 6}, y.Shape())

	// Each row matches the 2D result for the same row.
	flat := layer.Forward(x.Reshape(6, 4), Eval)
	assert.Equal(t, flat.Data(), y.Data())
}

func TestLinear_Init(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear(16, 8, rand.NewSource(4), backend)

	assert.Equal(t, 16, layer.InFeatures())
	assert.Equal(t, 8, layer.OutFeatures())
	assert.Equal(t, tensor.Shape{8, 16}, layer.Weight().Tensor().Shape())
	assert.Equal(t, make([]float32, 8), layer.Bias().Tensor().Data())
	assert.Equal(t, "Linear(in_features=16, out_features=8, bias=true)", layer.String())

	same := NewLinear(16, 8, rand.NewSource(4), backend)
	assert.Equal(t, layer.Weight().Tensor().Data(), same.Weight().Tensor().Data())
}

func TestLinear_InvalidInput(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear(3, 2, rand.NewSource(1), backend)

	assert.PanicsWithValue(t, "linear: expected input with 3 features, got 4", func() {
		layer.Forward(tensor.Zeros[float32](tensor.Shape{2, 4}, backend), Eval)
	})
	assert.Panics(t, func() {
		layer.Forward(tensor.Zeros[float32](tensor.Shape{3}, backend), Eval)
	})
	assert.Panics(t, func() { NewLinear(0, 2, rand.NewSource(1), backend) })
}
