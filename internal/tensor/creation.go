package tensor

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with value.
//
// Example:
//
//	eps := tensor.Full[float32](Shape{2, 196, 1}, 1e-5, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with samples from N(0, 1) drawn from src.
// The same seed always yields the same tensor.
//
// Example:
//
//	src := rand.NewSource(42)
//	x := tensor.Randn[float32](Shape{2, 3, 224, 224}, src, backend)
func Randn[T DType, B Backend](shape Shape, src rand.Source, b B) *Tensor[T, B] {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	return sample[T, B](shape, dist.Rand, b)
}

// Rand creates a tensor with samples from U[0, 1) drawn from src.
func Rand[T DType, B Backend](shape Shape, src rand.Source, b B) *Tensor[T, B] {
	dist := distuv.Uniform{Min: 0, Max: 1, Src: src}
	return sample[T, B](shape, dist.Rand, b)
}

// Uniform creates a tensor with samples from U[low, high) drawn from src.
func Uniform[T DType, B Backend](shape Shape, low, high float64, src rand.Source, b B) *Tensor[T, B] {
	dist := distuv.Uniform{Min: low, Max: high, Src: src}
	return sample[T, B](shape, dist.Rand, b)
}

func sample[T DType, B Backend](shape Shape, draw func() float64, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = T(draw())
	}
	return t
}
