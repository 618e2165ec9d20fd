package infer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tensor(array []float64, shape ...int) *Tensor {
	t := View(array, shape...)
	return &t
}

func TestMakeAndView(t *testing.T) {
	m := Make(2, 3)
	assert.Equal(t, 2, m.Ndim)
	assert.Equal(t, 6, m.Numel)
	assert.Equal(t, []int{2, 3}, m.Dims())
	assert.Len(t, m.Array, 6)

	backing := []float64{1, 2, 3, 4, 5, 6, 7}
	v := View(backing, 3, 2)
	v.Array[0] = 9
	assert.Equal(t, 9.0, backing[0])
	assert.Len(t, v.Array, 6)

	v.Fill(0.5)
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 7}, backing)
}

func TestDenseOverRows(t *testing.T) {
	in := tensor([]float64{1, 2, 3, 4}, 2, 2)
	kernel := tensor([]float64{1, 0, -1, 0, 1, 1}, 2, 3)
	bias := tensor([]float64{0.5, 0, -0.5}, 3)
	out := Make(2, 3)
	Dense(&out, in, kernel, bias, ReLU)
	assert.Equal(t, []float64{1.5, 2, 0.5, 3.5, 4, 0.5}, out.Array)
}

func TestSoftmaxPerRow(t *testing.T) {
	x := []float64{0, 0, 1, 1}
	Rows(Softmax, x, 2)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5, 0.5}, x, 1e-15)

	y := []float64{1000, 0}
	Softmax(y)
	assert.InDelta(t, 1, y[0], 1e-15)
	assert.False(t, math.IsNaN(y[1]))
}

func TestActivations(t *testing.T) {
	x := []float64{-1, 0, 3}
	HardSigmoid(x)
	assert.InDeltaSlice(t, []float64{0.3, 0.5, 1}, x, 1e-15)

	x = []float64{-2, 2}
	LeakyReLU(0.5)(x)
	assert.Equal(t, []float64{-1, 2}, x)

	x = []float64{-1, 1}
	ELU(1)(x)
	assert.InDeltaSlice(t, []float64{math.Expm1(-1), 1}, x, 1e-15)

	x = []float64{3}
	Softsign(x)
	assert.Equal(t, 0.75, x[0])
}

func TestConv1DStrideDilation(t *testing.T) {
	in := tensor([]float64{1, 2, 3, 4, 5, 6}, 6, 1)
	kernel := tensor([]float64{1, 10}, 2, 1, 1)
	bias := tensor([]float64{0}, 1)
	out := Make(2, 1)
	Conv1D(&out, in, kernel, bias, 2, 2, Linear)
	// windows start at 0 and 2 and read x[t] and x[t+2]
	assert.Equal(t, []float64{1 + 30, 3 + 50}, out.Array)
}

func TestConv2D(t *testing.T) {
	in := tensor([]float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, 3, 3, 1)
	kernel := tensor([]float64{1, 0, 0, 1}, 2, 2, 1, 1)
	bias := tensor([]float64{1}, 1)
	out := Make(2, 2, 1)
	Conv2D(&out, in, kernel, bias, 1, 1, 1, 1, Linear)
	assert.Equal(t, []float64{7, 9, 13, 15}, out.Array)
}

func TestPooling(t *testing.T) {
	in := tensor([]float64{1, -1, 3, -3, 2, -2, 4, -4}, 4, 2)
	out := Make(2, 2)
	MaxPool1D(&out, in, 2, 2)
	assert.Equal(t, []float64{3, -1, 4, -2}, out.Array)
	AvgPool1D(&out, in, 2, 2)
	assert.Equal(t, []float64{2, -2, 3, -3}, out.Array)

	g := Make(2)
	GlobalMaxPool(&g, in)
	assert.Equal(t, []float64{4, -1}, g.Array)
	GlobalAvgPool(&g, in)
	assert.Equal(t, []float64{2.5, -2.5}, g.Array)

	img := tensor([]float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}, 2, 4, 1)
	p := Make(1, 2, 1)
	MaxPool2D(&p, img, 2, 2, 2, 2)
	assert.Equal(t, []float64{6, 8}, p.Array)
	AvgPool2D(&p, img, 2, 2, 2, 2)
	assert.Equal(t, []float64{3.5, 5.5}, p.Array)
}

func TestPermuteAndRepeat(t *testing.T) {
	in := tensor([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	out := Make(3, 2)
	Permute(&out, in, []int{1, 0})
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, out.Array)

	rep := Make(3, 2)
	RepeatVector(&rep, tensor([]float64{7, 8}, 2), 3)
	assert.Equal(t, []float64{7, 8, 7, 8, 7, 8}, rep.Array)
}

func TestZeroPad(t *testing.T) {
	seq := tensor([]float64{1, 2, 3, 4}, 2, 2)
	out := View([]float64{9, 9, 9, 9, 9, 9, 9, 9, 9, 9}, 5, 2)
	ZeroPad1D(&out, seq, 1, 2)
	assert.Equal(t, []float64{0, 0, 1, 2, 3, 4, 0, 0, 0, 0}, out.Array)

	img := tensor([]float64{1, 2, 3, 4}, 2, 2, 1)
	padded := View(make([]float64, 12), 3, 4, 1)
	padded.Fill(9)
	ZeroPad2D(&padded, img, 0, 1, 1, 1)
	assert.Equal(t, []float64{
		0, 1, 2, 0,
		0, 3, 4, 0,
		0, 0, 0, 0,
	}, padded.Array)
}

func TestConcatenate(t *testing.T) {
	a := tensor([]float64{1, 2, 3, 4}, 2, 2)
	b := tensor([]float64{5, 6}, 2, 1)
	out := Make(2, 3)
	Concatenate(&out, a, b, 1)
	assert.Equal(t, []float64{1, 2, 5, 3, 4, 6}, out.Array)

	c := Make(3, 2)
	Concatenate(&c, a, tensor([]float64{7, 8}, 1, 2), 0)
	assert.Equal(t, []float64{1, 2, 3, 4, 7, 8}, c.Array)
}

func TestMerges(t *testing.T) {
	a := tensor([]float64{1, 5}, 2)
	b := tensor([]float64{3, 2}, 2)
	out := Make(2)
	for _, tc := range []struct {
		name string
		call func(output, a, b *Tensor)
		want []float64
	}{
		{"add", Add, []float64{4, 7}},
		{"subtract", Subtract, []float64{-2, 3}},
		{"multiply", Multiply, []float64{3, 10}},
		{"average", Average, []float64{2, 3.5}},
		{"maximum", Maximum, []float64{3, 5}},
		{"minimum", Minimum, []float64{1, 2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tc.call(&out, a, b)
			assert.Equal(t, tc.want, out.Array)
		})
	}
}

func TestEmbeddingClamps(t *testing.T) {
	kernel := tensor([]float64{0, 0, 1, 1, 2, 2}, 3, 2)
	out := Make(3, 2)
	Embedding(&out, tensor([]float64{1.7, -4, 99}, 3), kernel)
	assert.Equal(t, []float64{1, 1, 0, 0, 2, 2}, out.Array)
}

func TestBatchNorm(t *testing.T) {
	in := tensor([]float64{1, 2, 3, 4}, 2, 2)
	mean := tensor([]float64{1, 0}, 2)
	variance := tensor([]float64{4, 1}, 2)
	scale := tensor([]float64{2, 1}, 2)
	shift := tensor([]float64{0, 1}, 2)
	out := Make(2, 2)
	BatchNorm(&out, in, mean, variance, scale, shift, 0)
	assert.Equal(t, []float64{0, 3, 2, 5}, out.Array)
}

func TestSimpleRNNCarriesState(t *testing.T) {
	in := tensor([]float64{1, 1, 1}, 3, 1)
	kernel := tensor([]float64{1}, 1, 1)
	recurrent := tensor([]float64{1}, 1, 1)
	bias := tensor([]float64{0}, 1)
	state, work := Make(1), Make(2)
	out := Make(3, 1)
	SimpleRNN(&out, in, kernel, recurrent, bias, &state, &work, true, false, Linear)
	assert.Equal(t, []float64{1, 2, 3}, out.Array)

	last := Make(1)
	SimpleRNN(&last, in, kernel, recurrent, bias, &state, &work, false, false, Linear)
	assert.Equal(t, []float64{6}, last.Array)

	state.Fill(0)
	SimpleRNN(&last, in, kernel, recurrent, bias, &state, &work, false, true, Linear)
	assert.Equal(t, []float64{3}, last.Array)
}

func TestLSTMZeroWeights(t *testing.T) {
	const units = 2
	in := tensor([]float64{0.3, -0.7}, 2, 1)
	kernel := Make(4, 1, units)
	recurrent := Make(4, units, units)
	bias := Make(4, units)
	state, work := Make(2*units), Make(8*units)
	out := Make(units)
	LSTM(&out, in, &kernel, &recurrent, &bias, &state, &work, false, false, Tanh, Sigmoid)
	// every gate is 0.5 and the candidate is 0, so c and h stay 0
	assert.Equal(t, []float64{0, 0}, out.Array)

	// cell bias 1: c1 = 0.5*tanh(1), c2 = 0.5*c1 + 0.5*tanh(1)
	for j := 0; j < units; j++ {
		bias.Array[2*units+j] = 1
	}
	state.Fill(0)
	LSTM(&out, in, &kernel, &recurrent, &bias, &state, &work, false, false, Tanh, Sigmoid)
	c := 0.5 * math.Tanh(1)
	c = 0.5*c + 0.5*math.Tanh(1)
	want := 0.5 * math.Tanh(c)
	assert.InDeltaSlice(t, []float64{want, want}, out.Array, 1e-15)
	assert.InDelta(t, c, state.Array[units], 1e-15)
}

func TestGRUVariantsAgreeWithoutRecurrence(t *testing.T) {
	in := tensor([]float64{0.5, -1.5}, 2, 1)
	kernel := tensor([]float64{1, 2, -1}, 3, 1, 1)
	recurrent := Make(3, 1, 1)
	before := tensor([]float64{0.1, 0.2, 0.3}, 3, 1)
	after := tensor([]float64{0.1, 0.2, 0.3, 0, 0, 0}, 2, 3, 1)

	var got [2][]float64
	for i, resetAfter := range []bool{false, true} {
		bias := before
		if resetAfter {
			bias = after
		}
		state, work := Make(1), Make(6)
		out := Make(2, 1)
		GRU(&out, in, kernel, &recurrent, bias, &state, &work, true, false, resetAfter, Tanh, Sigmoid)
		got[i] = out.Array
	}
	require.Len(t, got[0], 2)
	assert.InDeltaSlice(t, got[0], got[1], 1e-15)
	assert.NotEqual(t, 0.0, got[0][1])
}
