package model

import (
	"errors"
	"fmt"

	"nn2go/internal/raw"
)

func clone(a []int) []int {
	return append([]int(nil), a...)
}

func rank(shape []int, want int, what string) error {
	if len(shape) != want {
		return fmt.Errorf("%s must have rank %d (have %s)", what, want, dims(shape))
	}
	return nil
}

// window is the number of positions of a filter of the given undilated
// size on an axis of length n.
func window(n, size, stride, dilation int) int {
	span := n - (1 + (size-1)*dilation)
	if span < 0 {
		return 0
	}
	return span/stride + 1
}

func replaceLast(shape []int, last int) []int {
	s := clone(shape)
	s[len(s)-1] = last
	return s
}

// shapeOf returns the shapes of the tensors node produces and of the
// parameter tensors it reads, in ToTensors and ParamTensors order.
func shapeOf(node raw.Node, shapes map[string][]int) (outs, params [][]int, err error) {
	from := func(tensor string) []int { return shapes[tensor] }
	one := func(s []int) [][]int { return [][]int{s} }
	switch at := node.(type) {
	case *raw.Input:
		return one(clone(at.Shape)), nil, nil
	case *raw.Activation:
		return one(clone(from(at.FromTensor))), nil, nil
	case *raw.Dense:
		in := from(at.FromTensor)
		c := in[len(in)-1]
		outs = one(replaceLast(in, at.Units))
		params = [][]int{{c, at.Units}, {at.Units}}
	case *raw.BatchNorm:
		in := from(at.FromTensor)
		c := []int{in[len(in)-1]}
		outs = one(clone(in))
		params = [][]int{c, c, c, c}
	case *raw.Conv1D:
		in := from(at.FromTensor)
		if err = rank(in, 2, "FromTensor"); err != nil {
			return
		}
		steps := window(in[0], at.Width, at.Stride, at.Dilation)
		outs = one([]int{steps, at.Filters})
		params = [][]int{{at.Width, in[1], at.Filters}, {at.Filters}}
	case *raw.Conv2D:
		in := from(at.FromTensor)
		if err = rank(in, 3, "FromTensor"); err != nil {
			return
		}
		h := window(in[0], at.FilterH, at.StrideH, at.DilationH)
		w := window(in[1], at.FilterW, at.StrideW, at.DilationW)
		outs = one([]int{h, w, at.Filters})
		params = [][]int{{at.FilterH, at.FilterW, in[2], at.Filters}, {at.Filters}}
	case *raw.Pool1D:
		in := from(at.FromTensor)
		if err = rank(in, 2, "FromTensor"); err != nil {
			return
		}
		outs = one([]int{window(in[0], at.Size, at.Stride, 1), in[1]})
	case *raw.Pool2D:
		in := from(at.FromTensor)
		if err = rank(in, 3, "FromTensor"); err != nil {
			return
		}
		h := window(in[0], at.SizeH, at.StrideH, 1)
		w := window(in[1], at.SizeW, at.StrideW, 1)
		outs = one([]int{h, w, in[2]})
	case *raw.GlobalPool:
		in := from(at.FromTensor)
		if len(in) < 2 {
			err = errors.New("FromTensor must have rank 2 or more")
			return
		}
		outs = one([]int{in[len(in)-1]})
	case *raw.ZeroPad1D:
		in := from(at.FromTensor)
		if err = rank(in, 2, "FromTensor"); err != nil {
			return
		}
		outs = one([]int{at.Before + in[0] + at.After, in[1]})
	case *raw.ZeroPad2D:
		in := from(at.FromTensor)
		if err = rank(in, 3, "FromTensor"); err != nil {
			return
		}
		outs = one([]int{at.Top + in[0] + at.Bottom, at.Left + in[1] + at.Right, in[2]})
	case *raw.Flatten:
		outs = one([]int{Numel(from(at.FromTensor))})
	case *raw.Reshape:
		in := from(at.FromTensor)
		if Numel(in) != Numel(at.Shape) {
			err = fmt.Errorf("cannot reshape %s to %s", dims(in), dims(at.Shape))
			return
		}
		outs = one(clone(at.Shape))
	case *raw.Permute:
		in := from(at.FromTensor)
		if len(at.Dims) != len(in) {
			err = fmt.Errorf("Dims must have %d axes", len(in))
			return
		}
		seen := make([]bool, len(in))
		out := make([]int, len(in))
		for i, d := range at.Dims {
			if d >= len(in) || seen[d] {
				err = errors.New("Dims is not a permutation")
				return
			}
			seen[d] = true
			out[i] = in[d]
		}
		outs = one(out)
	case *raw.RepeatVector:
		in := from(at.FromTensor)
		if err = rank(in, 1, "FromTensor"); err != nil {
			return
		}
		outs = one([]int{at.N, in[0]})
	case *raw.Embedding:
		in := from(at.FromTensor)
		outs = one(append(clone(in), at.Units))
		params = [][]int{{at.Vocab, at.Units}}
	case *raw.Merge:
		a, b := from(at.FromTensor1), from(at.FromTensor2)
		if !equal(a, b) {
			err = fmt.Errorf("FromTensor1 is %s but FromTensor2 is %s", dims(a), dims(b))
			return
		}
		outs = one(clone(a))
	case *raw.Concat:
		a, b := from(at.FromTensor1), from(at.FromTensor2)
		if len(a) != len(b) {
			err = fmt.Errorf("FromTensor1 is %s but FromTensor2 is %s", dims(a), dims(b))
			return
		}
		axis := at.Axis
		if axis < 0 {
			axis += len(a)
		}
		if axis < 0 || axis >= len(a) {
			err = fmt.Errorf("Axis %d is out of range for rank %d", at.Axis, len(a))
			return
		}
		out := clone(a)
		for i := range a {
			if i != axis && a[i] != b[i] {
				err = fmt.Errorf("FromTensor1 is %s but FromTensor2 is %s", dims(a), dims(b))
				return
			}
		}
		out[axis] += b[axis]
		outs = one(out)
	case *raw.SimpleRNN:
		return recurrentShapes(&at.Recurrent, from(at.FromTensor), 1, [][]int{{at.Units}})
	case *raw.LSTM:
		return recurrentShapes(&at.Recurrent, from(at.FromTensor), 4, [][]int{{4, at.Units}})
	case *raw.GRU:
		bias := []int{3, at.Units}
		if at.ResetAfter {
			bias = []int{2, 3, at.Units}
		}
		return recurrentShapes(&at.Recurrent, from(at.FromTensor), 3, [][]int{bias})
	default:
		panic("bug")
	}
	return
}

func recurrentShapes(r *raw.Recurrent, in []int, gates int, bias [][]int) (outs, params [][]int, err error) {
	if err = rank(in, 2, "FromTensor"); err != nil {
		return
	}
	u := r.Units
	out := []int{u}
	if r.ReturnSequences {
		out = []int{in[0], u}
	}
	kernel := []int{gates, in[1], u}
	recurrent := []int{gates, u, u}
	if gates == 1 {
		kernel, recurrent = kernel[1:], recurrent[1:]
	}
	return [][]int{out}, [][]int{kernel, recurrent, bias[0]}, nil
}
