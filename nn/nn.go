// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/tensor"
)

// Layers

// Linear represents a fully connected layer: y = x @ W^T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization drawn from
// src.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(512, 1000, rand.NewSource(0), backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, src rand.Source, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, src, backend)
}

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(3, 512, 16, 16, 16, 0, true, src, backend) // 16x16 patches
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	src rand.Source,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, src, backend)
}

// Normalization

// LayerNorm normalizes over the last dimension with a learnable scale and
// shift.
type LayerNorm[B tensor.Backend] = nn.LayerNorm[B]

// DefaultLayerNormEpsilon is the epsilon used by the mixer model.
const DefaultLayerNormEpsilon = nn.DefaultLayerNormEpsilon

// NewLayerNorm creates a LayerNorm over the last dimension of size n.
func NewLayerNorm[B tensor.Backend](n int, epsilon float32, backend B) *LayerNorm[B] {
	return nn.NewLayerNorm(n, epsilon, backend)
}

// Activations and regularization

// GELU applies the exact Gaussian Error Linear Unit element-wise.
type GELU[B tensor.Backend] = nn.GELU[B]

// NewGELU creates a GELU activation layer.
func NewGELU[B tensor.Backend]() *GELU[B] {
	return nn.NewGELU[B]()
}

// Dropout zeroes elements with probability p in Train mode.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a dropout layer drawing its masks from src.
// It panics unless 0 <= p < 1.
func NewDropout[B tensor.Backend](p float64, src rand.Source) *Dropout[B] {
	return nn.NewDropout[B](p, src)
}

// Containers

// Sequential applies modules in order.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a container running modules in the given order.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Initialization

// Xavier returns a tensor drawn from the Glorot uniform distribution.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, src rand.Source, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, src, backend)
}
