package tensor

// Backend defines the kernels a compute backend must provide.
//
// Kernels never mutate their inputs and always return a freshly allocated
// result (Reshape may return a view). Misuse such as
// incompatible shapes is a programmer error and panics with a message of the
// form "<op>: ...".
type Backend interface {
	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MatMul multiplies 2D matrices: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Conv2D convolves [N, C_in, H, W] with [C_out, C_in, K_h, K_w].
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Scalar operations.
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	AddScalar(x *RawTensor, scalar float64) *RawTensor

	// Element-wise math.
	Rsqrt(x *RawTensor) *RawTensor
	GELU(x *RawTensor) *RawTensor

	// Reduction along one dimension (negative dims count from the end).
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
