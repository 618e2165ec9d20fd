package infer

import "math"

// Activation rewrites x in place.
type Activation func(x []float64)

func Linear(x []float64) {}

func ReLU(x []float64) {
	for i, v := range x {
		if v <= 0 {
			x[i] = 0
		}
	}
}

func Sigmoid(x []float64) {
	for i, v := range x {
		x[i] = 1 / (1 + math.Exp(-v))
	}
}

func HardSigmoid(x []float64) {
	for i, v := range x {
		switch {
		case v <= -2.5:
			x[i] = 0
		case v >= 2.5:
			x[i] = 1
		default:
			x[i] = 0.2*v + 0.5
		}
	}
}

func Tanh(x []float64) {
	for i, v := range x {
		x[i] = math.Tanh(v)
	}
}

// Softmax normalizes all of x. Kernels that need a per-row softmax call
// it once per row.
func Softmax(x []float64) {
	if len(x) == 0 {
		return
	}
	max := x[0]
	for _, v := range x[1:] {
		if v > max {
			max = v
		}
	}
	sum := 0.0
	for i, v := range x {
		e := math.Exp(v - max)
		x[i] = e
		sum += e
	}
	inv := 1 / sum
	for i := range x {
		x[i] *= inv
	}
}

func Softplus(x []float64) {
	for i, v := range x {
		x[i] = math.Log1p(math.Exp(v))
	}
}

func Softsign(x []float64) {
	for i, v := range x {
		x[i] = v / (1 + math.Abs(v))
	}
}

func Exponential(x []float64) {
	for i, v := range x {
		x[i] = math.Exp(v)
	}
}

func LeakyReLU(alpha float64) Activation {
	return func(x []float64) {
		for i, v := range x {
			if v < 0 {
				x[i] = alpha * v
			}
		}
	}
}

func ELU(alpha float64) Activation {
	return func(x []float64) {
		for i, v := range x {
			if v < 0 {
				x[i] = alpha * math.Expm1(v)
			}
		}
	}
}

// Rows applies act to every row of width n in x. A softmax that follows
// a Dense layer on a sequence normalizes each timestep separately.
func Rows(act Activation, x []float64, n int) {
	for i := 0; i+n <= len(x); i += n {
		act(x[i : i+n])
	}
}
