package mixer

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/internal/tensor"
)

// Head turns the final tokens into class logits: LayerNorm over channels,
// mean over the patch axis, then a linear projection.
type Head[B tensor.Backend] struct {
	numPatches int
	dim        int
	norm       *nn.LayerNorm[B]
	fc         *nn.Linear[B]
}

// NewHead creates the classification head for cfg.
func NewHead[B tensor.Backend](cfg Config, src rand.Source, backend B) *Head[B] {
	return &Head[B]{
		numPatches: cfg.NumPatches(),
		dim:        cfg.Dim,
		norm:       nn.NewLayerNorm[B](cfg.Dim, nn.DefaultLayerNormEpsilon, backend),
		fc:         nn.NewLinear(cfg.Dim, cfg.NumClasses, src, backend),
	}
}

// Forward maps [batch, num_patches, dim] tokens to [batch, num_classes]
// logits.
func (h *Head[B]) Forward(x *tensor.Tensor[float32, B], mode nn.Mode) (*tensor.Tensor[float32, B], error) {
	if err := checkShape("head", []int{-1, h.numPatches, h.dim}, x.Shape().Clone()); err != nil {
		return nil, err
	}

	pooled := h.norm.Forward(x, mode).MeanDim(1, false) // [b, dim]
	return h.fc.Forward(pooled, mode), nil
}

// Parameters returns the LayerNorm then Linear parameters.
func (h *Head[B]) Parameters() []*nn.Parameter[B] {
	return append(h.norm.Parameters(), h.fc.Parameters()...)
}

// String returns a string representation of the layer.
func (h *Head[B]) String() string {
	return fmt.Sprintf("Head(%v, mean over patches, %v)", h.norm, h.fc)
}
