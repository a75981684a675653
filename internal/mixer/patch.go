package mixer

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/internal/tensor"
)

// PatchEmbedding cuts an image into non-overlapping patch_size x patch_size
// tiles and projects each tile to a dim-wide token.
//
// The projection is a convolution whose kernel size and stride both equal
// patch_size, followed by the rearrangement b c h w -> b (h w) c.
type PatchEmbedding[B tensor.Backend] struct {
	inChannels int
	imageSize  int
	dim        int
	grid       int
	conv       *nn.Conv2D[B]
}

// NewPatchEmbedding creates the patch projection for cfg. The caller
// validates cfg first.
func NewPatchEmbedding[B tensor.Backend](cfg Config, src rand.Source, backend B) *PatchEmbedding[B] {
	p := cfg.PatchSize
	return &PatchEmbedding[B]{
		inChannels: cfg.InChannels,
		imageSize:  cfg.ImageSize,
		dim:        cfg.Dim,
		grid:       cfg.GridSize(),
		conv:       nn.NewConv2D(cfg.InChannels, cfg.Dim, p, p, p, 0, true, src, backend),
	}
}

// Forward maps [batch, in_channels, image_size, image_size] images to
// [batch, num_patches, dim] tokens. Patches are ordered row by row.
func (p *PatchEmbedding[B]) Forward(images *tensor.Tensor[float32, B], mode nn.Mode) (*tensor.Tensor[float32, B], error) {
	expected := []int{-1, p.inChannels, p.imageSize, p.imageSize}
	if err := checkShape("patch_embedding", expected, images.Shape().Clone()); err != nil {
		return nil, err
	}

	batch := images.Shape()[0]
	x := p.conv.Forward(images, mode)          // [b, dim, g, g]
	x = x.Reshape(batch, p.dim, p.grid*p.grid) // [b, dim, n]
	return x.Transpose(0, 2, 1), nil           // [b, n, dim]
}

// Conv returns the projection convolution.
func (p *PatchEmbedding[B]) Conv() *nn.Conv2D[B] {
	return p.conv
}

// Parameters returns the convolution kernel and bias.
func (p *PatchEmbedding[B]) Parameters() []*nn.Parameter[B] {
	return p.conv.Parameters()
}

// String returns a string representation of the layer.
func (p *PatchEmbedding[B]) String() string {
	return fmt.Sprintf("PatchEmbedding(%v, rearrange b c h w -> b (h w) c)", p.conv)
}
