// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/internal/tensor"
)

// DType is the constraint for tensor element types (float32 or float64).
type DType = tensor.DType

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// Device represents the compute device a tensor lives on.
type Device = tensor.Device

// CPU is the only supported device.
const CPU = tensor.CPU

// Shape represents tensor dimensions. Every dimension must be positive.
type Shape = tensor.Shape

// RawTensor is the untyped, contiguous storage behind a Tensor.
type RawTensor = tensor.RawTensor

// Backend is the set of kernels a compute backend provides.
type Backend = tensor.Backend

// Tensor is a typed tensor bound to a backend.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// NewRaw allocates a zero-filled raw tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// New wraps an existing raw tensor.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T](raw, b)
}

// FromSlice copies data into a new tensor of the given shape.
//
// Example:
//
//	backend := cpu.New()
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, b)
}

// BroadcastShapes returns the NumPy-style broadcast of a and b.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T](shape, b)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full(shape, value, b)
}

// Randn creates a tensor of N(0, 1) samples drawn from src.
//
// Example:
//
//	images := tensor.Randn[float32](tensor.Shape{2, 3, 224, 224}, rand.NewSource(0), backend)
func Randn[T DType, B Backend](shape Shape, src rand.Source, b B) *Tensor[T, B] {
	return tensor.Randn[T](shape, src, b)
}

// Rand creates a tensor of U[0, 1) samples drawn from src.
func Rand[T DType, B Backend](shape Shape, src rand.Source, b B) *Tensor[T, B] {
	return tensor.Rand[T](shape, src, b)
}

// Uniform creates a tensor of U[low, high) samples drawn from src.
func Uniform[T DType, B Backend](shape Shape, low, high float64, src rand.Source, b B) *Tensor[T, B] {
	return tensor.Uniform[T](shape, low, high, src, b)
}
