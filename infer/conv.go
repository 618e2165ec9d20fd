package infer

// Conv1D is a valid (unpadded) channels-last convolution. input is
// steps x channels, kernel is width x channels x filters.
func Conv1D(output, input, kernel, bias *Tensor, stride, dilation int, act Activation) {
	steps, filters := output.Shape[0], output.Shape[1]
	width, channels := kernel.Shape[0], kernel.Shape[1]
	out := output.Array[:output.Numel]
	zero(out)
	for t := 0; t < steps; t++ {
		orow := out[t*filters : t*filters+filters]
		for z := 0; z < width; z++ {
			at := (t*stride + z*dilation) * channels
			for q := 0; q < channels; q++ {
				x := input.Array[at+q]
				krow := kernel.Array[(z*channels+q)*filters:]
				for k := range orow {
					orow[k] += x * krow[k]
				}
			}
		}
	}
	biasAdd(out, bias.Array[:filters])
	Rows(act, out, filters)
}

// Conv2D is a valid channels-last convolution. input is
// rows x cols x channels, kernel is kh x kw x channels x filters.
func Conv2D(output, input, kernel, bias *Tensor, strideH, strideW, dilationH, dilationW int, act Activation) {
	rows, cols, filters := output.Shape[0], output.Shape[1], output.Shape[2]
	kh, kw, channels := kernel.Shape[0], kernel.Shape[1], kernel.Shape[2]
	inCols := input.Shape[1]
	out := output.Array[:output.Numel]
	zero(out)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			orow := out[(y*cols+x)*filters:][:filters]
			for zy := 0; zy < kh; zy++ {
				iy := y*strideH + zy*dilationH
				for zx := 0; zx < kw; zx++ {
					ix := x*strideW + zx*dilationW
					at := (iy*inCols + ix) * channels
					for q := 0; q < channels; q++ {
						v := input.Array[at+q]
						krow := kernel.Array[((zy*kw+zx)*channels+q)*filters:]
						for k := range orow {
							orow[k] += v * krow[k]
						}
					}
				}
			}
		}
	}
	biasAdd(out, bias.Array[:filters])
	Rows(act, out, filters)
}
