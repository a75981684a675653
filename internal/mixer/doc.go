// Package mixer implements the MLP-Mixer image classifier.
//
// A Mixer cuts an image into patches, embeds each patch as a token, and then
// alternates two kinds of residual MLP sub-layers:
//   - token mixing, which mixes information across patch positions
//   - channel mixing, which mixes information across feature channels
//
// A LayerNorm, a mean over patches and a linear layer produce the logits.
//
// Construction validates the Config and returns ErrInvalidConfig on failure.
// Forward validates input shapes and returns ErrShapeMismatch on failure.
// Training and evaluation behavior is selected per call with nn.Train and
// nn.Eval.
package mixer
