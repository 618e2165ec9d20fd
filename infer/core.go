package infer

import "math"

func last(t *Tensor) int {
	return t.Shape[t.Ndim-1]
}

// Activate copies input to output and applies act along the last axis.
func Activate(output, input *Tensor, act Activation) {
	copy(output.Array[:output.Numel], input.Array[:input.Numel])
	Rows(act, output.Array[:output.Numel], last(output))
}

// Dense contracts the last axis of input with kernel (in x units) and
// adds bias (units). Leading axes are treated as rows.
func Dense(output, input, kernel, bias *Tensor, act Activation) {
	inner, units := kernel.Shape[0], kernel.Shape[1]
	rows := input.Numel / inner
	affine(output.Array, input.Array, kernel.Array, bias.Array, rows, units, inner)
	Rows(act, output.Array[:rows*units], units)
}

func Flatten(output, input *Tensor) {
	copy(output.Array[:input.Numel], input.Array[:input.Numel])
}

// Reshape copies the elements; output already carries the new shape.
func Reshape(output, input *Tensor) {
	copy(output.Array[:input.Numel], input.Array[:input.Numel])
}

// Permute reorders axes: output axis i is input axis dims[i].
func Permute(output, input *Tensor, dims []int) {
	var in, out [MaxNdim]int
	n := input.Ndim
	ishape := input.Shape[:n]
	oshape := output.Shape[:n]
	for i := 0; i < input.Numel; i++ {
		idx2sub(i, in[:n], ishape)
		for j, d := range dims {
			out[j] = in[d]
		}
		output.Array[sub2idx(out[:n], oshape)] = input.Array[i]
	}
}

// RepeatVector turns a vector of width w into an n x w matrix.
func RepeatVector(output, input *Tensor, n int) {
	w := input.Numel
	for i := 0; i < n; i++ {
		copy(output.Array[i*w:i*w+w], input.Array[:w])
	}
}

// Embedding maps each input value, truncated to an index, to a kernel row.
// Indices outside the vocabulary are clamped.
func Embedding(output, input, kernel *Tensor) {
	vocab, units := kernel.Shape[0], kernel.Shape[1]
	for i := 0; i < input.Numel; i++ {
		k := int(input.Array[i])
		if k < 0 {
			k = 0
		} else if k >= vocab {
			k = vocab - 1
		}
		copy(output.Array[i*units:i*units+units], kernel.Array[k*units:k*units+units])
	}
}

// BatchNorm normalizes along the last axis with frozen statistics.
func BatchNorm(output, input, mean, variance, scale, shift *Tensor, epsilon float64) {
	c := last(input)
	for i := 0; i < input.Numel; i++ {
		j := i % c
		x := (input.Array[i] - mean.Array[j]) / math.Sqrt(variance.Array[j]+epsilon)
		output.Array[i] = x*scale.Array[j] + shift.Array[j]
	}
}
