package tensor

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 196, 512}, backend)
//	bias := tensor.Ones[float32](Shape{512}, backend)
//	y := x.Add(bias) // [2, 196, 512]
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Mul(t.raw, other.raw), t.backend)
}

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) → (M, N).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.MatMul(t.raw, other.raw), t.backend)
}

// Reshape returns a tensor with the same elements and a new shape.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 512, 14, 14}, backend)
//	y := x.Reshape(2, 512, 196)
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Reshape(t.raw, Shape(newShape)), t.backend)
}

// Transpose permutes the tensor's dimensions.
// With no axes all dimensions are reversed.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 196, 512}, backend)
//	y := x.Transpose(0, 2, 1) // [2, 512, 196]
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Transpose(t.raw, axes...), t.backend)
}

// T swaps rows and columns of a 2D tensor.
// Panics if the tensor is not 2D.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	if len(t.Shape()) != 2 {
		panic("T() only works for 2D tensors")
	}
	return t.Transpose(1, 0)
}

// MulScalar multiplies every element by s.
func (t *Tensor[T, B]) MulScalar(s T) *Tensor[T, B] {
	return New[T, B](t.backend.MulScalar(t.raw, float64(s)), t.backend)
}

// AddScalar adds s to every element.
func (t *Tensor[T, B]) AddScalar(s T) *Tensor[T, B] {
	return New[T, B](t.backend.AddScalar(t.raw, float64(s)), t.backend)
}

// Rsqrt computes 1/sqrt(x) element-wise.
func (t *Tensor[T, B]) Rsqrt() *Tensor[T, B] {
	return New[T, B](t.backend.Rsqrt(t.raw), t.backend)
}

// GELU applies the Gaussian Error Linear Unit x * Φ(x) element-wise.
func (t *Tensor[T, B]) GELU() *Tensor[T, B] {
	return New[T, B](t.backend.GELU(t.raw), t.backend)
}

// MeanDim averages along dim. Negative dims count from the end.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 196, 512}, backend)
//	pooled := x.MeanDim(1, false) // [2, 512]
func (t *Tensor[T, B]) MeanDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T, B](t.backend.MeanDim(t.raw, dim, keepDim), t.backend)
}
