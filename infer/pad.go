package infer

// ZeroPad1D surrounds steps x channels input with before and after rows
// of zeros.
func ZeroPad1D(output, input *Tensor, before, after int) {
	head := before * input.Shape[1]
	n := input.Numel
	clear(output.Array[:head])
	copy(output.Array[head:head+n], input.Array[:n])
	clear(output.Array[head+n : output.Numel])
}

// ZeroPad2D surrounds rows x cols x channels input with zero rows above
// and below and zero columns left and right.
func ZeroPad2D(output, input *Tensor, top, bottom, left, right int) {
	rows, cols, channels := input.Shape[0], input.Shape[1], input.Shape[2]
	stride := output.Shape[1] * channels
	line := cols * channels
	clear(output.Array[:output.Numel])
	for y := 0; y < rows; y++ {
		at := (y+top)*stride + left*channels
		copy(output.Array[at:at+line], input.Array[y*line:(y+1)*line])
	}
}
