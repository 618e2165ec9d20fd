// Package eval interprets a validated model with the infer kernels. It is
// the reference that generated code is checked against.
package eval

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"nn2go/infer"
	"nn2go/internal/model"
	"nn2go/internal/raw"
)

type Mode int

const (
	// Float64 evaluates exactly as the generated code does.
	Float64 Mode = iota
	// Float32 rounds parameters, inputs and every intermediate tensor to
	// float32, which is how most training frameworks compute.
	Float32
)

var ModeStrings = []string{
	Float64: "float64",
	Float32: "float32",
}

func (m Mode) String() string {
	return ModeStrings[m]
}

// ParseMode accepts the strings of ModeStrings.
func ParseMode(s string) (Mode, error) {
	for i, x := range ModeStrings {
		if x == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown eval mode %q (want float64 or float32)", s)
}

// Evaluator holds the recurrent state of stateful layers between calls to
// Predict. The model itself is never mutated.
type Evaluator struct {
	m      *model.Model
	mode   Mode
	params map[string]*infer.Tensor
	states map[string]*infer.Tensor
	order  []string
}

func New(m *model.Model, mode Mode) *Evaluator {
	e := &Evaluator{
		m:      m,
		mode:   mode,
		params: make(map[string]*infer.Tensor, len(m.Params)),
		states: make(map[string]*infer.Tensor),
	}
	for name, p := range m.Params {
		t := infer.Make(p.Shape...)
		copy(t.Array, p.Data)
		e.round(&t)
		e.params[name] = &t
	}
	for _, node := range m.Layers {
		if r := model.Recurrent(node); r != nil && r.Stateful {
			t := infer.Make(model.StateSize(node))
			e.states[r.ToTensor] = &t
			e.order = append(e.order, r.ToTensor)
		}
	}
	return e
}

// Reset zeroes the state of every stateful layer.
func (e *Evaluator) Reset() {
	for _, t := range e.states {
		clear(t.Array)
	}
}

// Snapshot copies the state of every stateful layer.
func (e *Evaluator) Snapshot() [][]float64 {
	snap := make([][]float64, len(e.order))
	for i, name := range e.order {
		snap[i] = append([]float64(nil), e.states[name].Array...)
	}
	return snap
}

// Restore puts back state taken by Snapshot.
func (e *Evaluator) Restore(snap [][]float64) {
	for i, name := range e.order {
		copy(e.states[name].Array, snap[i])
	}
}

// Predict evaluates one sample. There is one flat slice per model input,
// in graph-file order, and the result has one per model output.
func (e *Evaluator) Predict(ctx context.Context, inputs [][]float64) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(inputs) != len(e.m.Inputs) {
		return nil, errors.Errorf("have %d inputs but the model takes %d",
			len(inputs), len(e.m.Inputs))
	}
	tensors := make(map[string]*infer.Tensor)
	for i, in := range e.m.Inputs {
		t := infer.Make(in.Shape...)
		if len(inputs[i]) != t.Numel {
			return nil, errors.Errorf("input %s has %d values but needs %d",
				in.ToTensor, len(inputs[i]), t.Numel)
		}
		copy(t.Array, inputs[i])
		e.round(&t)
		tensors[in.ToTensor] = &t
	}
	for _, node := range e.m.Layers {
		to := node.ToTensors()[0]
		t := infer.Make(e.m.Shapes[to]...)
		e.run(node, &t, tensors)
		e.round(&t)
		if s, ok := e.states[to]; ok {
			e.round(s)
		}
		tensors[to] = &t
	}
	outs := make([][]float64, len(e.m.Outputs))
	for i, out := range e.m.Outputs {
		outs[i] = append([]float64(nil), tensors[out.FromTensor].Array...)
	}
	return outs, nil
}

func (e *Evaluator) round(t *infer.Tensor) {
	if e.mode != Float32 {
		return
	}
	for i, v := range t.Array {
		t.Array[i] = float64(float32(v))
	}
}

// Activation returns the kernel activation for a fused activation of a
// layer, which uses the default alphas.
func Activation(kind raw.ActivationKind) infer.Activation {
	switch kind {
	case raw.LeakyReLU:
		return infer.LeakyReLU(raw.LeakyReLUAlpha)
	case raw.ELU:
		return infer.ELU(raw.ELUAlpha)
	}
	return activationWith(kind, 0)
}

func activationWith(kind raw.ActivationKind, alpha float64) infer.Activation {
	switch kind {
	case raw.Linear:
		return infer.Linear
	case raw.ReLU:
		return infer.ReLU
	case raw.Sigmoid:
		return infer.Sigmoid
	case raw.HardSigmoid:
		return infer.HardSigmoid
	case raw.Tanh:
		return infer.Tanh
	case raw.Softmax:
		return infer.Softmax
	case raw.Softplus:
		return infer.Softplus
	case raw.Softsign:
		return infer.Softsign
	case raw.Exponential:
		return infer.Exponential
	case raw.LeakyReLU:
		return infer.LeakyReLU(alpha)
	case raw.ELU:
		return infer.ELU(alpha)
	}
	panic("bug")
}

func (e *Evaluator) run(node raw.Node, out *infer.Tensor, tensors map[string]*infer.Tensor) {
	p := func(name string) *infer.Tensor { return e.params[name] }
	switch at := node.(type) {
	case *raw.Activation:
		infer.Activate(out, tensors[at.FromTensor], activationWith(at.Kind, at.Param))
	case *raw.Dense:
		infer.Dense(out, tensors[at.FromTensor], p(at.WeightsTensor), p(at.BiasesTensor),
			Activation(at.Activation))
	case *raw.BatchNorm:
		infer.BatchNorm(out, tensors[at.FromTensor], p(at.MeansTensor), p(at.VariancesTensor),
			p(at.ScalesTensor), p(at.ShiftsTensor), at.Epsilon)
	case *raw.Conv1D:
		infer.Conv1D(out, tensors[at.FromTensor], p(at.WeightsTensor), p(at.BiasesTensor),
			at.Stride, at.Dilation, Activation(at.Activation))
	case *raw.Conv2D:
		infer.Conv2D(out, tensors[at.FromTensor], p(at.WeightsTensor), p(at.BiasesTensor),
			at.StrideH, at.StrideW, at.DilationH, at.DilationW, Activation(at.Activation))
	case *raw.Pool1D:
		in := tensors[at.FromTensor]
		if at.Kind == raw.Max {
			infer.MaxPool1D(out, in, at.Size, at.Stride)
		} else {
			infer.AvgPool1D(out, in, at.Size, at.Stride)
		}
	case *raw.Pool2D:
		in := tensors[at.FromTensor]
		if at.Kind == raw.Max {
			infer.MaxPool2D(out, in, at.SizeH, at.SizeW, at.StrideH, at.StrideW)
		} else {
			infer.AvgPool2D(out, in, at.SizeH, at.SizeW, at.StrideH, at.StrideW)
		}
	case *raw.GlobalPool:
		in := tensors[at.FromTensor]
		if at.Kind == raw.Max {
			infer.GlobalMaxPool(out, in)
		} else {
			infer.GlobalAvgPool(out, in)
		}
	case *raw.ZeroPad1D:
		infer.ZeroPad1D(out, tensors[at.FromTensor], at.Before, at.After)
	case *raw.ZeroPad2D:
		infer.ZeroPad2D(out, tensors[at.FromTensor], at.Top, at.Bottom, at.Left, at.Right)
	case *raw.Flatten:
		infer.Flatten(out, tensors[at.FromTensor])
	case *raw.Reshape:
		infer.Reshape(out, tensors[at.FromTensor])
	case *raw.Permute:
		infer.Permute(out, tensors[at.FromTensor], at.Dims)
	case *raw.RepeatVector:
		infer.RepeatVector(out, tensors[at.FromTensor], at.N)
	case *raw.Embedding:
		infer.Embedding(out, tensors[at.FromTensor], p(at.WeightsTensor))
	case *raw.Merge:
		a, b := tensors[at.FromTensor1], tensors[at.FromTensor2]
		Merge(at.Kind)(out, a, b)
	case *raw.Concat:
		a, b := tensors[at.FromTensor1], tensors[at.FromTensor2]
		axis := at.Axis
		if axis < 0 {
			axis += a.Ndim
		}
		infer.Concatenate(out, a, b, axis)
	case *raw.SimpleRNN, *raw.LSTM, *raw.GRU:
		e.recurrent(node, out, tensors)
	default:
		panic("bug")
	}
}

// Merge returns the kernel of a merge kind.
func Merge(kind raw.MergeKind) func(output, a, b *infer.Tensor) {
	switch kind {
	case raw.Add:
		return infer.Add
	case raw.Subtract:
		return infer.Subtract
	case raw.Multiply:
		return infer.Multiply
	case raw.Average:
		return infer.Average
	case raw.Maximum:
		return infer.Maximum
	case raw.Minimum:
		return infer.Minimum
	}
	panic("bug")
}

func (e *Evaluator) recurrent(node raw.Node, out *infer.Tensor, tensors map[string]*infer.Tensor) {
	r := model.Recurrent(node)
	state, ok := e.states[r.ToTensor]
	if !ok {
		t := infer.Make(model.StateSize(node))
		state = &t
	}
	work := infer.Make(model.WorkSize(node))
	in := tensors[r.FromTensor]
	kernel, rec, bias := e.params[r.WeightsTensor], e.params[r.RecurrentWeightsTensor],
		e.params[r.BiasesTensor]
	act := Activation(r.Activation)
	switch at := node.(type) {
	case *raw.SimpleRNN:
		infer.SimpleRNN(out, in, kernel, rec, bias, state, &work,
			r.ReturnSequences, r.GoBackwards, act)
	case *raw.LSTM:
		infer.LSTM(out, in, kernel, rec, bias, state, &work,
			r.ReturnSequences, r.GoBackwards, act, Activation(r.RecurrentActivation))
	case *raw.GRU:
		infer.GRU(out, in, kernel, rec, bias, state, &work,
			r.ReturnSequences, r.GoBackwards, at.ResetAfter, act, Activation(r.RecurrentActivation))
	}
}
