package infer

// MaxPool1D pools steps x channels input over windows of size pool.
func MaxPool1D(output, input *Tensor, pool, stride int) {
	pool1D(output, input, pool, stride, true)
}

func AvgPool1D(output, input *Tensor, pool, stride int) {
	pool1D(output, input, pool, stride, false)
}

func pool1D(output, input *Tensor, pool, stride int, max bool) {
	steps, channels := output.Shape[0], output.Shape[1]
	inv := 1 / float64(pool)
	for t := 0; t < steps; t++ {
		for c := 0; c < channels; c++ {
			at := t * stride * channels
			acc := input.Array[at+c]
			if !max {
				acc = 0
			}
			for z := 0; z < pool; z++ {
				v := input.Array[at+z*channels+c]
				switch {
				case !max:
					acc += v
				case v > acc:
					acc = v
				}
			}
			if !max {
				acc *= inv
			}
			output.Array[t*channels+c] = acc
		}
	}
}

// MaxPool2D pools rows x cols x channels input over ph x pw windows.
func MaxPool2D(output, input *Tensor, ph, pw, strideH, strideW int) {
	pool2D(output, input, ph, pw, strideH, strideW, true)
}

func AvgPool2D(output, input *Tensor, ph, pw, strideH, strideW int) {
	pool2D(output, input, ph, pw, strideH, strideW, false)
}

func pool2D(output, input *Tensor, ph, pw, strideH, strideW int, max bool) {
	rows, cols, channels := output.Shape[0], output.Shape[1], output.Shape[2]
	inCols := input.Shape[1]
	inv := 1 / float64(ph*pw)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			for c := 0; c < channels; c++ {
				at := (y*strideH*inCols + x*strideW) * channels
				acc := input.Array[at+c]
				if !max {
					acc = 0
				}
				for zy := 0; zy < ph; zy++ {
					for zx := 0; zx < pw; zx++ {
						v := input.Array[at+(zy*inCols+zx)*channels+c]
						switch {
						case !max:
							acc += v
						case v > acc:
							acc = v
						}
					}
				}
				if !max {
					acc *= inv
				}
				output.Array[(y*cols+x)*channels+c] = acc
			}
		}
	}
}

// GlobalMaxPool reduces every axis but the last.
func GlobalMaxPool(output, input *Tensor) {
	c := last(input)
	copy(output.Array[:c], input.Array[:c])
	for i := c; i < input.Numel; i += c {
		for j, v := range input.Array[i : i+c] {
			if v > output.Array[j] {
				output.Array[j] = v
			}
		}
	}
}

func GlobalAvgPool(output, input *Tensor) {
	c := last(input)
	out := output.Array[:c]
	zero(out)
	for i := 0; i < input.Numel; i += c {
		for j, v := range input.Array[i : i+c] {
			out[j] += v
		}
	}
	inv := float64(c) / float64(input.Numel)
	for j := range out {
		out[j] *= inv
	}
}
