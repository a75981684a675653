package nn

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// Values are drawn from src, so the same seed reproduces the same weights.
//
// Parameters:
//   - fanIn: Number of input units
//   - fanOut: Number of output units
//   - shape: Shape of the weight tensor
//   - src: Random source
//   - backend: Backend to use for tensor creation
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, src rand.Source, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.Uniform[float32](shape, -bound, bound, src, backend)
}

// Zeros creates a float32 tensor filled with zeros. Used for biases and
// LayerNorm shifts.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a float32 tensor filled with ones. Used for LayerNorm scales.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}
