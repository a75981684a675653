package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [..., in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [..., out_features]
//
// Leading dimensions are flattened into one batch axis for the matrix
// product and restored afterwards, so [B, P, C] inputs work directly.
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(512, 2048, rand.NewSource(0), backend)
//	output := layer.Forward(input, nn.Eval) // [2, 196, 512] -> [2, 196, 2048]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features]
}

// NewLinear creates a new Linear layer with weights drawn from src.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, src rand.Source, backend B) *Linear[B] {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("linear: invalid features in=%d, out=%d", inFeatures, outFeatures))
	}

	weightTensor := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, src, backend)
	biasTensor := Zeros(tensor.Shape{outFeatures}, backend)

	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weightTensor),
		bias:        NewParameter("bias", biasTensor),
	}
}

// Forward computes y = x @ W.T + b over the last dimension of input.
//
// Panics if input has fewer than 2 dimensions or its last dimension is not
// in_features.
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) < 2 {
		panic(fmt.Sprintf("linear: expected input with at least 2 dims [..., features], got shape %v", inputShape))
	}
	if inputShape[len(inputShape)-1] != l.inFeatures {
		panic(fmt.Sprintf("linear: expected input with %d features, got %d", l.inFeatures, inputShape[len(inputShape)-1]))
	}

	rows := input.NumElements() / l.inFeatures
	x := input
	if len(inputShape) > 2 {
		x = input.Reshape(rows, l.inFeatures)
	}

	// [rows, in] @ [in, out] = [rows, out]
	output := x.MatMul(l.weight.Tensor().T())
	output = output.Add(l.bias.Tensor())

	if len(inputShape) > 2 {
		outShape := make([]int, len(inputShape))
		copy(outShape, inputShape)
		outShape[len(outShape)-1] = l.outFeatures
		output = output.Reshape(outShape...)
	}

	return output
}

// Parameters returns [weight, bias].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}

// String returns a string representation of the layer.
func (l *Linear[B]) String() string {
	return fmt.Sprintf("Linear(in_features=%d, out_features=%d, bias=true)", l.inFeatures, l.outFeatures)
}
