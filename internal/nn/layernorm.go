package nn

import (
	"fmt"

	"github.com/born-ml/mixer/internal/tensor"
)

// DefaultLayerNormEpsilon is the variance epsilon used by the Mixer layers.
const DefaultLayerNormEpsilon = 1e-5

// LayerNorm applies Layer Normalization over an input tensor along the last dimension.
//
// Formula: Y = gamma * (X - mean(X)) / sqrt(var(X) + eps) + beta
//
// Where:
//   - gamma is the learnable scale parameter [d_model]
//   - beta is the learnable shift parameter [d_model]
//   - mean and variance (biased) are computed along the last dimension
//   - eps is a small value to avoid division by zero
//
// Example:
//
//	norm := nn.NewLayerNorm[Backend](512, nn.DefaultLayerNormEpsilon, backend)
//	output := norm.Forward(hidden, nn.Eval) // [..., 512] -> [..., 512]
type LayerNorm[B tensor.Backend] struct {
	Gamma   *Parameter[B] // learnable scale [d_model]
	Beta    *Parameter[B] // learnable shift [d_model]
	Epsilon float32       // numerical stability constant
	size    int
}

// NewLayerNorm creates a new LayerNorm layer.
//
// Parameters:
//   - normalizedShape: size of the last dimension (feature dimension)
//   - epsilon: small constant for numerical stability (typically 1e-5 or 1e-6)
//   - backend: computation backend
//
// The gamma parameter is initialized to ones, beta to zeros.
func NewLayerNorm[B tensor.Backend](normalizedShape int, epsilon float32, backend B) *LayerNorm[B] {
	if normalizedShape <= 0 {
		panic(fmt.Sprintf("layernorm: invalid normalized shape %d", normalizedShape))
	}
	if epsilon <= 0 {
		panic(fmt.Sprintf("layernorm: epsilon must be positive, got %g", epsilon))
	}

	return &LayerNorm[B]{
		Gamma:   NewParameter("gamma", Ones(tensor.Shape{normalizedShape}, backend)),
		Beta:    NewParameter("beta", Zeros(tensor.Shape{normalizedShape}, backend)),
		Epsilon: epsilon,
		size:    normalizedShape,
	}
}

// Forward applies LayerNorm to the input tensor.
//
// Shapes:
//   - input: [..., d_model]
//   - output: [..., d_model]
//
// Algorithm:
//  1. mean = mean(x) along last dimension (keepdim=true)
//  2. x_centered = x - mean
//  3. variance = mean(x_centered^2) along last dimension
//  4. x_norm = x_centered * rsqrt(variance + epsilon)
//  5. output = gamma * x_norm + beta
func (l *LayerNorm[B]) Forward(x *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) == 0 || shape[len(shape)-1] != l.size {
		panic(fmt.Sprintf("layernorm: expected last dimension %d, got shape %v", l.size, shape))
	}

	mean := x.MeanDim(-1, true)
	xCentered := x.Sub(mean)
	variance := xCentered.Mul(xCentered).MeanDim(-1, true)
	rsqrt := variance.AddScalar(l.Epsilon).Rsqrt()

	// gamma and beta are [d_model]; broadcasting aligns them with the last axis.
	return xCentered.Mul(rsqrt).Mul(l.Gamma.Tensor()).Add(l.Beta.Tensor())
}

// Parameters returns the learnable parameters (gamma and beta).
func (l *LayerNorm[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.Gamma, l.Beta}
}

// String returns a string representation of the layer.
func (l *LayerNorm[B]) String() string {
	return fmt.Sprintf("LayerNorm((%d,), eps=%g)", l.size, l.Epsilon)
}
