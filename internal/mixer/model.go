package mixer

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/nn"
	"github.com/born-ml/mixer/internal/tensor"
)

// step is one stage of the forward pipeline.
type step[B tensor.Backend] func(x *tensor.Tensor[float32, B], mode nn.Mode) (*tensor.Tensor[float32, B], error)

// Model is an MLP-Mixer image classifier.
//
// The pipeline is fixed at construction:
//
//	images -> PatchEmbedding -> Block x depth -> Head -> logits
//
// Parameters are never modified by Forward, so a Model may serve concurrent
// calls.
//
// Example:
//
//	backend := cpu.New()
//	model, err := mixer.New(mixer.BaseConfig(), backend)
//	if err != nil {
//	    return err
//	}
//	logits, err := model.Forward(images, nn.Eval) // [2, 3, 224, 224] -> [2, 1000]
type Model[B tensor.Backend] struct {
	cfg    Config
	patch  *PatchEmbedding[B]
	blocks []*Block[B]
	head   *Head[B]
	steps  []step[B]
}

// New validates cfg and builds a model with freshly initialized parameters.
// Weights are drawn from a source seeded with cfg.Seed, so equal configs
// produce identical models.
func New[B tensor.Backend](cfg Config, backend B) (*Model[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := rand.NewSource(cfg.Seed)

	m := &Model[B]{
		cfg:   cfg,
		patch: NewPatchEmbedding(cfg, src, backend),
	}
	m.blocks = make([]*Block[B], cfg.Depth)
	for i := range m.blocks {
		m.blocks[i] = NewBlock(cfg, src, backend)
	}
	m.head = NewHead(cfg, src, backend)

	m.steps = make([]step[B], 0, cfg.Depth+2)
	m.steps = append(m.steps, m.patch.Forward)
	for _, block := range m.blocks {
		m.steps = append(m.steps, block.Forward)
	}
	m.steps = append(m.steps, m.head.Forward)

	return m, nil
}

// Forward runs images through the pipeline and returns logits.
//
// images must be float32 with shape [batch, in_channels, image_size,
// image_size]; any other shape returns an error matching ErrShapeMismatch.
// mode selects whether dropout is active.
func (m *Model[B]) Forward(images *tensor.Tensor[float32, B], mode nn.Mode) (*tensor.Tensor[float32, B], error) {
	x := images
	for _, run := range m.steps {
		var err error
		if x, err = run(x, mode); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Config returns the configuration the model was built from.
func (m *Model[B]) Config() Config {
	return m.cfg
}

// NumPatches returns the number of tokens per image.
func (m *Model[B]) NumPatches() int {
	return m.cfg.NumPatches()
}

// PatchEmbedding returns the patch projection stage.
func (m *Model[B]) PatchEmbedding() *PatchEmbedding[B] {
	return m.patch
}

// Blocks returns the mixer blocks in pipeline order.
func (m *Model[B]) Blocks() []*Block[B] {
	return m.blocks
}

// Head returns the classification head.
func (m *Model[B]) Head() *Head[B] {
	return m.head
}

// Parameters returns every parameter in pipeline order.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	params := m.patch.Parameters()
	for _, b := range m.blocks {
		params = append(params, b.Parameters()...)
	}
	return append(params, m.head.Parameters()...)
}

// NumParameters returns the number of trainable scalar parameters.
func (m *Model[B]) NumParameters() int {
	return nn.CountParameters(m.Parameters())
}

// String returns an architecture summary.
func (m *Model[B]) String() string {
	var sb strings.Builder
	sb.WriteString("MLPMixer(\n")
	fmt.Fprintf(&sb, "  (patch_embedding): %v\n", m.patch)
	if len(m.blocks) > 0 {
		b := m.blocks[0]
		fmt.Fprintf(&sb, "  (blocks): %d x Block(\n", len(m.blocks))
		fmt.Fprintf(&sb, "    (token_mixing): %v\n", b.token)
		fmt.Fprintf(&sb, "    (channel_mixing): %v\n", b.channel)
		sb.WriteString("  )\n")
	}
	fmt.Fprintf(&sb, "  (head): %v\n", m.head)
	sb.WriteString(")\n")
	fmt.Fprintf(&sb, "Patches: %d, Trainable Parameters: %d", m.NumPatches(), m.NumParameters())
	return sb.String()
}
