package infer

import "math"

func Add(output, a, b *Tensor) {
	for i := 0; i < output.Numel; i++ {
		output.Array[i] = a.Array[i] + b.Array[i]
	}
}

func Subtract(output, a, b *Tensor) {
	for i := 0; i < output.Numel; i++ {
		output.Array[i] = a.Array[i] - b.Array[i]
	}
}

func Multiply(output, a, b *Tensor) {
	for i := 0; i < output.Numel; i++ {
		output.Array[i] = a.Array[i] * b.Array[i]
	}
}

func Average(output, a, b *Tensor) {
	for i := 0; i < output.Numel; i++ {
		output.Array[i] = (a.Array[i] + b.Array[i]) * 0.5
	}
}

func Maximum(output, a, b *Tensor) {
	for i := 0; i < output.Numel; i++ {
		output.Array[i] = math.Max(a.Array[i], b.Array[i])
	}
}

func Minimum(output, a, b *Tensor) {
	for i := 0; i < output.Numel; i++ {
		output.Array[i] = math.Min(a.Array[i], b.Array[i])
	}
}

// Concatenate joins a and b along axis, which must be non-negative.
func Concatenate(output, a, b *Tensor, axis int) {
	inner := 1
	for i := axis + 1; i < output.Ndim; i++ {
		inner *= output.Shape[i]
	}
	na := a.Shape[axis] * inner
	nb := b.Shape[axis] * inner
	outer := output.Numel / (na + nb)
	to := output.Array
	for i := 0; i < outer; i++ {
		to = to[copy(to, a.Array[i*na:i*na+na]):]
		to = to[copy(to, b.Array[i*nb:i*nb+nb]):]
	}
}
