package infer

// Recurrent kernels read a steps x features input. Weights are stored gate
// by gate: kernel is gates x features x units, recurrent is
// gates x units x units and bias is gates x units. LSTM gates are ordered
// input, forget, cell, output. GRU gates are ordered update, reset, new.
//
// state carries the hidden state (and, for LSTM, the cell state after it)
// from one call to the next. work is scratch space owned by the caller.

func project(dst, x, kernel, bias []float64, gates, in, units int) {
	for g := 0; g < gates; g++ {
		w := kernel[g*in*units : (g+1)*in*units]
		affine(dst[g*units:], x, w, bias[g*units:], 1, units, in)
	}
}

func recur(dst, h, recurrent []float64, gates, units int) {
	for g := 0; g < gates; g++ {
		u := recurrent[g*units*units : (g+1)*units*units]
		matmul(dst[g*units:], h, u, 1, units, units)
	}
}

func step(t, steps int, goBackwards bool) int {
	if goBackwards {
		return steps - 1 - t
	}
	return t
}

// SimpleRNN needs state of numel units and work of numel 2*units.
func SimpleRNN(output, input, kernel, recurrent, bias, state, work *Tensor,
	returnSequences, goBackwards bool, act Activation) {
	steps, in := input.Shape[0], input.Shape[1]
	units := kernel.Shape[1]
	h := state.Array[:units]
	xw, hu := work.Array[:units], work.Array[units:2*units]
	for t := 0; t < steps; t++ {
		x := input.Array[step(t, steps, goBackwards)*in:][:in]
		affine(xw, x, kernel.Array, bias.Array, 1, units, in)
		matmul(hu, h, recurrent.Array, 1, units, units)
		for j := range h {
			h[j] = xw[j] + hu[j]
		}
		act(h)
		if returnSequences {
			copy(output.Array[t*units:], h)
		}
	}
	if !returnSequences {
		copy(output.Array[:units], h)
	}
}

// LSTM needs state of numel 2*units and work of numel 8*units.
func LSTM(output, input, kernel, recurrent, bias, state, work *Tensor,
	returnSequences, goBackwards bool, act, recurrentAct Activation) {
	steps, in := input.Shape[0], input.Shape[1]
	units := kernel.Shape[2]
	h, c := state.Array[:units], state.Array[units:2*units]
	xw, hu := work.Array[:4*units], work.Array[4*units:8*units]
	for t := 0; t < steps; t++ {
		x := input.Array[step(t, steps, goBackwards)*in:][:in]
		project(xw, x, kernel.Array, bias.Array, 4, in, units)
		recur(hu, h, recurrent.Array, 4, units)
		for j := range xw {
			xw[j] += hu[j]
		}
		i, f := xw[:units], xw[units:2*units]
		cc, o := xw[2*units:3*units], xw[3*units:]
		recurrentAct(i)
		recurrentAct(f)
		act(cc)
		recurrentAct(o)
		for j := range c {
			c[j] = f[j]*c[j] + i[j]*cc[j]
		}
		copy(h, c)
		act(h)
		for j := range h {
			h[j] *= o[j]
		}
		if returnSequences {
			copy(output.Array[t*units:], h)
		}
	}
	if !returnSequences {
		copy(output.Array[:units], h)
	}
}

// GRU needs state of numel units and work of numel 6*units. With
// resetAfter the bias is 2 x 3 x units (input bias, then recurrent bias)
// and the reset gate is applied after the recurrent projection.
func GRU(output, input, kernel, recurrent, bias, state, work *Tensor,
	returnSequences, goBackwards, resetAfter bool, act, recurrentAct Activation) {
	steps, in := input.Shape[0], input.Shape[1]
	units := kernel.Shape[2]
	h := state.Array[:units]
	xw, hu := work.Array[:3*units], work.Array[3*units:6*units]
	for t := 0; t < steps; t++ {
		x := input.Array[step(t, steps, goBackwards)*in:][:in]
		project(xw, x, kernel.Array, bias.Array, 3, in, units)
		z, r, hh := xw[:units], xw[units:2*units], xw[2*units:]
		if resetAfter {
			recur(hu, h, recurrent.Array, 3, units)
			biasAdd(hu, bias.Array[3*units:6*units])
			for j := 0; j < 2*units; j++ {
				xw[j] += hu[j]
			}
			recurrentAct(z)
			recurrentAct(r)
			for j := range hh {
				hh[j] += r[j] * hu[2*units+j]
			}
		} else {
			recur(hu, h, recurrent.Array, 2, units)
			for j := 0; j < 2*units; j++ {
				xw[j] += hu[j]
			}
			recurrentAct(z)
			recurrentAct(r)
			rh := hu[:units]
			for j := range rh {
				rh[j] = r[j] * h[j]
			}
			u := recurrent.Array[2*units*units : 3*units*units]
			matmul(hu[units:2*units], rh, u, 1, units, units)
			for j := range hh {
				hh[j] += hu[units+j]
			}
		}
		act(hh)
		for j := range h {
			h[j] = z[j]*h[j] + (1-z[j])*hh[j]
		}
		if returnSequences {
			copy(output.Array[t*units:], h)
		}
	}
	if !returnSequences {
		copy(output.Array[:units], h)
	}
}
