package mixer

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/internal/tensor"
)

// TokenMixing lets every channel aggregate information across all patch
// positions.
//
//	y = x + T(FeedForward_n(T(LayerNorm(x))))
//
// where T swaps the patch and channel axes, so the FeedForward runs along the
// patch axis with hidden width token_dim.
type TokenMixing[B tensor.Backend] struct {
	numPatches int
	dim        int
	norm       *nn.LayerNorm[B]
	ff         *FeedForward[B]
}

// NewTokenMixing creates a token-mixing sub-layer for [batch, numPatches, dim]
// inputs.
func NewTokenMixing[B tensor.Backend](numPatches, dim, tokenDim int, dropout float64, src rand.Source, backend B) *TokenMixing[B] {
	return &TokenMixing[B]{
		numPatches: numPatches,
		dim:        dim,
		norm:       nn.NewLayerNorm[B](dim, nn.DefaultLayerNormEpsilon, backend),
		ff:         NewFeedForward(numPatches, tokenDim, dropout, src, backend),
	}
}

// Forward maps [batch, num_patches, dim] to the same shape.
func (t *TokenMixing[B]) Forward(x *tensor.Tensor[float32, B], mode nn.Mode) (*tensor.Tensor[float32, B], error) {
	if err := checkShape("token_mixing", []int{-1, t.numPatches, t.dim}, x.Shape().Clone()); err != nil {
		return nil, err
	}

	y := t.norm.Forward(x, mode).Transpose(0, 2, 1) // [b, dim, n]
	y, err := t.ff.Forward(y, mode)
	if err != nil {
		return nil, fmt.Errorf("token_mixing: %w", err)
	}
	return x.Add(y.Transpose(0, 2, 1)), nil
}

// Parameters returns the LayerNorm and FeedForward parameters.
func (t *TokenMixing[B]) Parameters() []*nn.Parameter[B] {
	return append(t.norm.Parameters(), t.ff.Parameters()...)
}

// String returns a string representation of the layer.
func (t *TokenMixing[B]) String() string {
	return fmt.Sprintf("TokenMixing(%v, transpose, %v, transpose)", t.norm, t.ff)
}

// ChannelMixing lets every patch position aggregate information across
// channels.
//
//	y = x + FeedForward_d(LayerNorm(x))
type ChannelMixing[B tensor.Backend] struct {
	numPatches int
	dim        int
	norm       *nn.LayerNorm[B]
	ff         *FeedForward[B]
}

// NewChannelMixing creates a channel-mixing sub-layer for
// [batch, numPatches, dim] inputs.
func NewChannelMixing[B tensor.Backend](numPatches, dim, channelDim int, dropout float64, src rand.Source, backend B) *ChannelMixing[B] {
	return &ChannelMixing[B]{
		numPatches: numPatches,
		dim:        dim,
		norm:       nn.NewLayerNorm[B](dim, nn.DefaultLayerNormEpsilon, backend),
		ff:         NewFeedForward(dim, channelDim, dropout, src, backend),
	}
}

// Forward maps [batch, num_patches, dim] to the same shape.
func (c *ChannelMixing[B]) Forward(x *tensor.Tensor[float32, B], mode nn.Mode) (*tensor.Tensor[float32, B], error) {
	if err := checkShape("channel_mixing", []int{-1, c.numPatches, c.dim}, x.Shape().Clone()); err != nil {
		return nil, err
	}

	y, err := c.ff.Forward(c.norm.Forward(x, mode), mode)
	if err != nil {
		return nil, fmt.Errorf("channel_mixing: %w", err)
	}
	return x.Add(y), nil
}

// Parameters returns the LayerNorm and FeedForward parameters.
func (c *ChannelMixing[B]) Parameters() []*nn.Parameter[B] {
	return append(c.norm.Parameters(), c.ff.Parameters()...)
}

// String returns a string representation of the layer.
func (c *ChannelMixing[B]) String() string {
	return fmt.Sprintf("ChannelMixing(%v, %v)", c.norm, c.ff)
}

// Block is one Mixer layer: token mixing followed by channel mixing, each
// with its own parameters.
type Block[B tensor.Backend] struct {
	token   *TokenMixing[B]
	channel *ChannelMixing[B]
}

// NewBlock creates a mixer block from cfg, drawing weights from src.
func NewBlock[B tensor.Backend](cfg Config, src rand.Source, backend B) *Block[B] {
	n := cfg.NumPatches()
	return &Block[B]{
		token:   NewTokenMixing(n, cfg.Dim, cfg.TokenDim, cfg.Dropout, src, backend),
		channel: NewChannelMixing(n, cfg.Dim, cfg.ChannelDim, cfg.Dropout, src, backend),
	}
}

// Forward applies token mixing then channel mixing.
func (b *Block[B]) Forward(x *tensor.Tensor[float32, B], mode nn.Mode) (*tensor.Tensor[float32, B], error) {
	x, err := b.token.Forward(x, mode)
	if err != nil {
		return nil, err
	}
	return b.channel.Forward(x, mode)
}

// TokenMixing returns the block's token-mixing sub-layer.
func (b *Block[B]) TokenMixing() *TokenMixing[B] {
	return b.token
}

// ChannelMixing returns the block's channel-mixing sub-layer.
func (b *Block[B]) ChannelMixing() *ChannelMixing[B] {
	return b.channel
}

// Parameters returns the token-mixing then channel-mixing parameters.
func (b *Block[B]) Parameters() []*nn.Parameter[B] {
	return append(b.token.Parameters(), b.channel.Parameters()...)
}
