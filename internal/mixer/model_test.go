package mixer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/backend/cpu"
	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/internal/tensor"
)

// randImages returns a [batch, channels, size, size] batch of U[0, 1) pixels.
func randImages(cfg Config, batch int, seed uint64, backend Backend) *tensor.Tensor[float32, Backend] {
	shape := tensor.Shape{batch, cfg.InChannels, cfg.ImageSize, cfg.ImageSize}
	return tensor.Rand[float32](shape, rand.NewSource(seed), backend)
}

// expectedParameters counts the trainable parameters of cfg by hand.
func expectedParameters(cfg Config) int {
	n, d := cfg.NumPatches(), cfg.Dim
	patch := cfg.InChannels*cfg.PatchSize*cfg.PatchSize*d + d
	token := 2*d + n*cfg.TokenDim + cfg.TokenDim + cfg.TokenDim*n + n
	channel := 2*d + d*cfg.ChannelDim + cfg.ChannelDim + cfg.ChannelDim*d + d
	head := 2*d + d*cfg.NumClasses + cfg.NumClasses
	return patch + cfg.Depth*(token+channel) + head
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := BaseConfig()
	cfg.PatchSize = 15

	model, err := New(cfg, cpu.New())

	assert.Nil(t, model)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestModel_OutputShape(t *testing.T) {
	backend := cpu.New()

	variants := map[string]func(c *Config){
		"tiny":         func(*Config) {},
		"depth0":       func(c *Config) { c.Depth = 0 },
		"deep":         func(c *Config) { c.Depth = 4 },
		"wideToken":    func(c *Config) { c.TokenDim = 40 },
		"narrowChan":   func(c *Config) { c.ChannelDim = 3 },
		"onePatch":     func(c *Config) { c.PatchSize = 16 },
		"pixelPatches": func(c *Config) { c.PatchSize = 1; c.ImageSize = 6 },
		"grayscale":    func(c *Config) { c.InChannels = 1 },
	}

	for name, modify := range variants {
		t.Run(name, func(t *testing.T) {
			cfg := TinyConfig()
			modify(&cfg)

			model, err := New(cfg, backend)
			require.NoError(t, err)

			for _, batch := range []int{1, 3} {
				logits, err := model.Forward(randImages(cfg, batch, 1, backend), nn.Eval)
				require.NoError(t, err)
				assert.Equal(t, tensor.Shape{batch, cfg.NumClasses}, logits.Shape())
			}
			assert.Equal(t, expectedParameters(cfg), model.NumParameters())
		})
	}
}

func TestModel_DepthZeroIsHeadOfPatchEmbedding(t *testing.T) {
	backend := cpu.New()
	cfg := TinyConfig()
	cfg.Depth = 0

	model, err := New(cfg, backend)
	require.NoError(t, err)
	assert.Empty(t, model.Blocks())

	images := randImages(cfg, 2, 5, backend)
	logits, err := model.Forward(images, nn.Eval)
	require.NoError(t, err)

	tokens, err := model.PatchEmbedding().Forward(images, nn.Eval)
	require.NoError(t, err)
	want, err := model.Head().Forward(tokens, nn.Eval)
	require.NoError(t, err)

	assert.Equal(t, want.Data(), logits.Data())
}

func TestModel_PipelineOrder(t *testing.T) {
	backend := cpu.New()
	cfg := TinyConfig()

	model, err := New(cfg, backend)
	require.NoError(t, err)
	require.Len(t, model.Blocks(), cfg.Depth)

	images := randImages(cfg, 2, 6, backend)
	logits, err := model.Forward(images, nn.Eval)
	require.NoError(t, err)

	x, err := model.PatchEmbedding().Forward(images, nn.Eval)
	require.NoError(t, err)
	for _, block := range model.Blocks() {
		x, err = block.Forward(x, nn.Eval)
		require.NoError(t, err)
	}
	want, err := model.Head().Forward(x, nn.Eval)
	require.NoError(t, err)

	assert.Equal(t, want.Data(), logits.Data())
}

func TestModel_ZeroDropoutIsDeterministic(t *testing.T) {
	backend := cpu.New()
	cfg := TinyConfig()

	model, err := New(cfg, backend)
	require.NoError(t, err)
	images := randImages(cfg, 2, 7, backend)

	for _, mode := range []nn.Mode{nn.Eval, nn.Train} {
		a, err := model.Forward(images, mode)
		require.NoError(t, err)
		b, err := model.Forward(images, mode)
		require.NoError(t, err)
		assert.Equal(t, a.Data(), b.Data(), "mode %v", mode)
	}
}

func TestModel_DropoutModes(t *testing.T) {
	backend := cpu.New()
	cfg := TinyConfig()
	cfg.Dropout = 0.5

	model, err := New(cfg, backend)
	require.NoError(t, err)
	images := randImages(cfg, 2, 8, backend)

	eval1, err := model.Forward(images, nn.Eval)
	require.NoError(t, err)
	eval2, err := model.Forward(images, nn.Eval)
	require.NoError(t, err)
	assert.Equal(t, eval1.Data(), eval2.Data(), "eval mode must ignore dropout")

	train1, err := model.Forward(images, nn.Train)
	require.NoError(t, err)
	train2, err := model.Forward(images, nn.Train)
	require.NoError(t, err)
	assert.NotEqual(t, train1.Data(), train2.Data(), "train mode must resample dropout masks")
	assert.NotEqual(t, eval1.Data(), train1.Data())

	// Inputs are never modified.
	assert.Equal(t, randImages(cfg, 2, 8, backend).Data(), images.Data())
}

func TestModel_SeedReproducible(t *testing.T) {
	backend := cpu.New()
	cfg := TinyConfig()
	cfg.Seed = 123
	images := randImages(cfg, 1, 9, backend)

	m1, err := New(cfg, backend)
	require.NoError(t, err)
	m2, err := New(cfg, backend)
	require.NoError(t, err)

	l1, err := m1.Forward(images, nn.Eval)
	require.NoError(t, err)
	l2, err := m2.Forward(images, nn.Eval)
	require.NoError(t, err)
	assert.Equal(t, l1.Data(), l2.Data())

	cfg.Seed = 124
	m3, err := New(cfg, backend)
	require.NoError(t, err)
	l3, err := m3.Forward(images, nn.Eval)
	require.NoError(t, err)
	assert.NotEqual(t, l1.Data(), l3.Data())
}

func TestModel_ShapeMismatch(t *testing.T) {
	backend := cpu.New()
	cfg := TinyConfig()

	model, err := New(cfg, backend)
	require.NoError(t, err)

	tests := []struct {
		name  string
		shape tensor.Shape
	}{
		{"WrongChannels", tensor.Shape{2, 1, 16, 16}},
		{"WrongHeight", tensor.Shape{2, 3, 20, 16}},
		{"WrongWidth", tensor.Shape{2, 3, 16, 12}},
		{"MissingBatch", tensor.Shape{3, 16, 16}},
		{"Flat", tensor.Shape{2, 768}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := tensor.Zeros[float32](tt.shape, backend)

			logits, err := model.Forward(images, nn.Eval)

			assert.Nil(t, logits)
			require.ErrorIs(t, err, ErrShapeMismatch)
			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, "patch_embedding", shapeErr.Op)
			assert.Equal(t, []int{-1, 3, 16, 16}, shapeErr.Expected)
			assert.Equal(t, []int(tt.shape), shapeErr.Got)
		})
	}
}

func TestModel_ConcurrentForward(t *testing.T) {
	backend := cpu.New()
	cfg := TinyConfig()
	cfg.Dropout = 0.2

	model, err := New(cfg, backend)
	require.NoError(t, err)
	images := randImages(cfg, 2, 10, backend)
	want, err := model.Forward(images, nn.Eval)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got, err := model.Forward(images, nn.Eval)
			if assert.NoError(t, err) {
				assert.Equal(t, want.Data(), got.Data())
			}
		}()
		go func() {
			defer wg.Done()
			_, err := model.Forward(images, nn.Train)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestModel_Accessors(t *testing.T) {
	cfg := TinyConfig()
	model, err := New(cfg, cpu.New())
	require.NoError(t, err)

	assert.Equal(t, cfg, model.Config())
	assert.Equal(t, 16, model.NumPatches())
	assert.Len(t, model.Parameters(), 2+cfg.Depth*12+4)

	summary := model.String()
	assert.Contains(t, summary, "MLPMixer(")
	assert.Contains(t, summary, "Conv2D(in_channels=3, out_channels=16, kernel_size=(4, 4), stride=4, padding=0, bias=true)")
	assert.Contains(t, summary, "(blocks): 2 x Block(")
	assert.Contains(t, summary, "FeedForward(16 -> 8 -> 16, dropout=0)")
	assert.Contains(t, summary, "FeedForward(16 -> 32 -> 16, dropout=0)")
	assert.Contains(t, summary, "Linear(in_features=16, out_features=10, bias=true)")
}

func TestModel_BaseConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the full 18.5M parameter model")
	}

	backend := cpu.New()
	cfg := BaseConfig()

	model, err := New(cfg, backend)
	require.NoError(t, err)

	assert.Equal(t, 196, model.NumPatches())
	assert.Equal(t, 18_528_264, model.NumParameters())
	assert.Equal(t, expectedParameters(cfg), model.NumParameters())

	images := tensor.Randn[float32](tensor.Shape{2, 3, 224, 224}, rand.NewSource(0), backend)
	logits, err := model.Forward(images, nn.Eval)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1000}, logits.Shape())
}
