package mixer

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/internal/tensor"
)

// FeedForward is the two-layer MLP used inside both mixing sub-layers:
//
//	Linear(dim -> hidden) -> GELU -> Dropout -> Linear(hidden -> dim) -> Dropout
//
// It acts on the last axis of its input, so the same type mixes tokens or
// channels depending on how the caller lays out the tensor.
type FeedForward[B tensor.Backend] struct {
	dim     int
	hidden  int
	dropout float64
	fc1     *nn.Linear[B]
	fc2     *nn.Linear[B]
	net     *nn.Sequential[B]
}

// NewFeedForward creates a FeedForward with weights drawn from src. Each
// dropout layer gets its own random source seeded from src.
func NewFeedForward[B tensor.Backend](dim, hidden int, dropout float64, src rand.Source, backend B) *FeedForward[B] {
	f := &FeedForward[B]{
		dim:     dim,
		hidden:  hidden,
		dropout: dropout,
		fc1:     nn.NewLinear(dim, hidden, src, backend),
	}
	drop1 := nn.NewDropout[B](dropout, rand.NewSource(src.Uint64()))
	f.fc2 = nn.NewLinear(hidden, dim, src, backend)
	drop2 := nn.NewDropout[B](dropout, rand.NewSource(src.Uint64()))

	f.net = nn.NewSequential[B](f.fc1, nn.NewGELU[B](), drop1, f.fc2, drop2)
	return f
}

// Forward maps [..., dim] to [..., dim]. Dropout is active only in
// nn.Train mode.
func (f *FeedForward[B]) Forward(x *tensor.Tensor[float32, B], mode nn.Mode) (*tensor.Tensor[float32, B], error) {
	shape := x.Shape()
	if len(shape) < 2 || shape[len(shape)-1] != f.dim {
		expected := make([]int, max(len(shape), 2))
		for i := range expected {
			expected[i] = -1
		}
		expected[len(expected)-1] = f.dim
		return nil, &ShapeError{Op: "feed_forward", Expected: expected, Got: shape.Clone()}
	}
	return f.net.Forward(x, mode), nil
}

// Parameters returns the weights and biases of both linear layers.
func (f *FeedForward[B]) Parameters() []*nn.Parameter[B] {
	return f.net.Parameters()
}

// String returns a string representation of the layer.
func (f *FeedForward[B]) String() string {
	return fmt.Sprintf("FeedForward(%d -> %d -> %d, dropout=%g)", f.dim, f.hidden, f.dim, f.dropout)
}
