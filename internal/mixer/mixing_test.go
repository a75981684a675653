package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/backend/cpu"
	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/internal/tensor"
)

type Backend = *cpu.CPUBackend

// randTokens returns a [batch, n, d] tensor of N(0, 1) samples.
func randTokens(batch, n, d int, seed uint64, backend Backend) *tensor.Tensor[float32, Backend] {
	return tensor.Randn[float32](tensor.Shape{batch, n, d}, rand.NewSource(seed), backend)
}

// tokenRow returns a copy of the d values of token p in batch element b.
func tokenRow(x *tensor.Tensor[float32, Backend], b, p int) []float32 {
	shape := x.Shape()
	n, d := shape[1], shape[2]
	start := (b*n + p) * d
	return append([]float32(nil), x.Data()[start:start+d]...)
}

func TestFeedForward(t *testing.T) {
	backend := cpu.New()
	ff := NewFeedForward(6, 10, 0, rand.NewSource(1), backend)

	x := randTokens(2, 3, 6, 2, backend)
	y, err := ff.Forward(x, nn.Eval)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3, 6}, y.Shape())

	// Two linear layers with weights and biases.
	assert.Equal(t, 6*10+10+10*6+6, nn.CountParameters(ff.Parameters()))
	assert.Equal(t, "FeedForward(6 -> 10 -> 6, dropout=0)", ff.String())

	_, err = ff.Forward(randTokens(2, 3, 5, 2, backend), nn.Eval)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, []int{-1, -1, 6}, shapeErr.Expected)
	assert.Equal(t, []int{2, 3, 5}, shapeErr.Got)
}

func TestMixing_ShapePreserving(t *testing.T) {
	backend := cpu.New()

	shapes := []struct{ batch, n, d int }{
		{1, 4, 8},
		{2, 16, 16},
		{3, 9, 5},
	}

	for _, s := range shapes {
		src := rand.NewSource(3)
		token := NewTokenMixing(s.n, s.d, 7, 0.5, src, backend)
		channel := NewChannelMixing(s.n, s.d, 11, 0.5, src, backend)
		x := randTokens(s.batch, s.n, s.d, 4, backend)

		for _, mode := range []nn.Mode{nn.Eval, nn.Train} {
			y, err := token.Forward(x, mode)
			require.NoError(t, err)
			assert.Equal(t, x.Shape(), y.Shape(), "token mixing %v %v", s, mode)

			z, err := channel.Forward(x, mode)
			require.NoError(t, err)
			assert.Equal(t, x.Shape(), z.Shape(), "channel mixing %v %v", s, mode)
		}
	}
}

func TestMixing_WrongShape(t *testing.T) {
	backend := cpu.New()
	src := rand.NewSource(5)
	token := NewTokenMixing(4, 8, 6, 0, src, backend)
	channel := NewChannelMixing(4, 8, 6, 0, src, backend)

	for _, x := range []*tensor.Tensor[float32, Backend]{
		randTokens(2, 5, 8, 1, backend),
		randTokens(2, 4, 7, 1, backend),
		tensor.Zeros[float32](tensor.Shape{4, 8}, backend),
	} {
		_, err := token.Forward(x, nn.Eval)
		assert.ErrorIs(t, err, ErrShapeMismatch, "token mixing %v", x.Shape())

		_, err = channel.Forward(x, nn.Eval)
		assert.ErrorIs(t, err, ErrShapeMismatch, "channel mixing %v", x.Shape())
	}
}

func TestMixing_Axes(t *testing.T) {
	backend := cpu.New()
	const n, d = 5, 6
	src := rand.NewSource(8)
	token := NewTokenMixing(n, d, 4, 0, src, backend)
	channel := NewChannelMixing(n, d, 4, 0, src, backend)

	x := randTokens(1, n, d, 9, backend)
	perturbed := x.Clone()
	perturbed.Set(perturbed.At(0, 0, 0)+3, 0, 0, 0)

	// Channel mixing treats every patch on its own.
	c1, err := channel.Forward(x, nn.Eval)
	require.NoError(t, err)
	c2, err := channel.Forward(perturbed, nn.Eval)
	require.NoError(t, err)
	assert.NotEqual(t, tokenRow(c1, 0, 0), tokenRow(c2, 0, 0))
	for p := 1; p < n; p++ {
		assert.Equal(t, tokenRow(c1, 0, p), tokenRow(c2, 0, p), "patch %d", p)
	}

	// Token mixing spreads a change at one patch to the others.
	t1, err := token.Forward(x, nn.Eval)
	require.NoError(t, err)
	t2, err := token.Forward(perturbed, nn.Eval)
	require.NoError(t, err)
	for p := 1; p < n; p++ {
		assert.NotEqual(t, tokenRow(t1, 0, p), tokenRow(t2, 0, p), "patch %d", p)
	}
}

func TestMixing_Residual(t *testing.T) {
	backend := cpu.New()
	const n, d = 3, 4
	channel := NewChannelMixing(n, d, 5, 0, rand.NewSource(1), backend)

	// Zeroing the last projection makes the sub-layer the identity.
	last := channel.ff.fc2
	clear(last.Weight().Tensor().Data())
	clear(last.Bias().Tensor().Data())

	x := randTokens(2, n, d, 2, backend)
	y, err := channel.Forward(x, nn.Eval)
	require.NoError(t, err)
	assert.Equal(t, x.Data(), y.Data())
}

func TestBlock(t *testing.T) {
	backend := cpu.New()
	cfg := TinyConfig()
	block := NewBlock(cfg, rand.NewSource(1), backend)

	x := randTokens(2, cfg.NumPatches(), cfg.Dim, 3, backend)
	y, err := block.Forward(x, nn.Eval)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), y.Shape())

	// Block equals channel mixing applied after token mixing.
	mid, err := block.TokenMixing().Forward(x, nn.Eval)
	require.NoError(t, err)
	want, err := block.ChannelMixing().Forward(mid, nn.Eval)
	require.NoError(t, err)
	assert.Equal(t, want.Data(), y.Data())
}
