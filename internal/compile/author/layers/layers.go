// Package layers writes the body of the generated function: one runtime
// call per layer, in execution order.
package layers

import (
	"nn2go/internal/compile/author/act"
	"nn2go/internal/compile/author/gogen"
	"nn2go/internal/compile/author/weights"
	"nn2go/internal/model"
	"nn2go/internal/raw"
)

type ctx struct {
	rt string
	st *weights.Storage
}

func (c *ctx) data(tensor string) gogen.Gen {
	return gogen.Addr{Expr: gogen.Vb(c.st.Data[tensor])}
}

func (c *ctx) param(tensor string) gogen.Gen {
	return gogen.Addr{Expr: gogen.Vb(c.st.Param[tensor])}
}

func (c *ctx) call(fn string, args ...gogen.Gen) gogen.Gen {
	return gogen.Call{
		Func: gogen.Selector{Pkg: c.rt, Name: fn},
		Args: gogen.CommaSpaced(args),
	}
}

func (c *ctx) fused(kind raw.ActivationKind) gogen.Gen {
	return act.Fused(c.rt, kind)
}

func ints(a ...int) []gogen.Gen {
	gs := make([]gogen.Gen, len(a))
	for i, x := range a {
		gs[i] = gogen.IntLit(x)
	}
	return gs
}

func flag(b bool) gogen.Gen {
	if b {
		return gogen.Vb("true")
	}
	return gogen.Vb("false")
}

var mergeFuncs = []string{
	raw.Add:      "Add",
	raw.Subtract: "Subtract",
	raw.Multiply: "Multiply",
	raw.Average:  "Average",
	raw.Maximum:  "Maximum",
	raw.Minimum:  "Minimum",
}

// Compile returns the layer calls. Every tensor and parameter they name is
// declared by st.
func Compile(m *model.Model, st *weights.Storage, rt string) gogen.Gen {
	c := &ctx{rt: rt, st: st}
	stmts := make(gogen.Stmts, 0, len(m.Layers))
	for _, node := range m.Layers {
		stmts = append(stmts, c.layer(node, m))
	}
	return stmts
}

func (c *ctx) layer(node raw.Node, m *model.Model) gogen.Gen {
	out := c.data(node.ToTensors()[0])
	switch at := node.(type) {
	case *raw.Activation:
		return c.call("Activate", out, c.data(at.FromTensor), act.Gen(c.rt, at.Kind, at.Param))
	case *raw.Dense:
		return c.call("Dense", out, c.data(at.FromTensor),
			c.param(at.WeightsTensor), c.param(at.BiasesTensor), c.fused(at.Activation))
	case *raw.BatchNorm:
		return c.call("BatchNorm", out, c.data(at.FromTensor),
			c.param(at.MeansTensor), c.param(at.VariancesTensor),
			c.param(at.ScalesTensor), c.param(at.ShiftsTensor), gogen.FloatLit(at.Epsilon))
	case *raw.Conv1D:
		args := []gogen.Gen{out, c.data(at.FromTensor),
			c.param(at.WeightsTensor), c.param(at.BiasesTensor)}
		args = append(args, ints(at.Stride, at.Dilation)...)
		return c.call("Conv1D", append(args, c.fused(at.Activation))...)
	case *raw.Conv2D:
		args := []gogen.Gen{out, c.data(at.FromTensor),
			c.param(at.WeightsTensor), c.param(at.BiasesTensor)}
		args = append(args, ints(at.StrideH, at.StrideW, at.DilationH, at.DilationW)...)
		return c.call("Conv2D", append(args, c.fused(at.Activation))...)
	case *raw.Pool1D:
		fn := raw.PoolingStrings[at.Kind] + "Pool1D"
		return c.call(fn, append([]gogen.Gen{out, c.data(at.FromTensor)}, ints(at.Size, at.Stride)...)...)
	case *raw.Pool2D:
		fn := raw.PoolingStrings[at.Kind] + "Pool2D"
		args := []gogen.Gen{out, c.data(at.FromTensor)}
		args = append(args, ints(at.SizeH, at.SizeW, at.StrideH, at.StrideW)...)
		return c.call(fn, args...)
	case *raw.GlobalPool:
		fn := "Global" + raw.PoolingStrings[at.Kind] + "Pool"
		return c.call(fn, out, c.data(at.FromTensor))
	case *raw.ZeroPad1D:
		args := []gogen.Gen{out, c.data(at.FromTensor)}
		return c.call("ZeroPad1D", append(args, ints(at.Before, at.After)...)...)
	case *raw.ZeroPad2D:
		args := []gogen.Gen{out, c.data(at.FromTensor)}
		return c.call("ZeroPad2D", append(args, ints(at.Top, at.Bottom, at.Left, at.Right)...)...)
	case *raw.Flatten:
		return c.call("Flatten", out, c.data(at.FromTensor))
	case *raw.Reshape:
		return c.call("Reshape", out, c.data(at.FromTensor))
	case *raw.Permute:
		dims := gogen.Composite{Type: gogen.IntSlice, Elems: gogen.CommaSpaced(ints(at.Dims...))}
		return c.call("Permute", out, c.data(at.FromTensor), dims)
	case *raw.RepeatVector:
		return c.call("RepeatVector", out, c.data(at.FromTensor), gogen.IntLit(at.N))
	case *raw.Embedding:
		return c.call("Embedding", out, c.data(at.FromTensor), c.param(at.WeightsTensor))
	case *raw.Merge:
		return c.call(mergeFuncs[at.Kind], out, c.data(at.FromTensor1), c.data(at.FromTensor2))
	case *raw.Concat:
		axis := at.Axis
		if axis < 0 {
			axis += len(m.Shapes[at.FromTensor1])
		}
		return c.call("Concatenate", out, c.data(at.FromTensor1), c.data(at.FromTensor2),
			gogen.IntLit(axis))
	case *raw.SimpleRNN:
		return c.recurrent("SimpleRNN", &at.Recurrent, out, c.fused(at.Activation))
	case *raw.LSTM:
		return c.recurrent("LSTM", &at.Recurrent, out,
			c.fused(at.Activation), c.fused(at.RecurrentActivation))
	case *raw.GRU:
		return c.recurrent("GRU", &at.Recurrent, out, flag(at.ResetAfter),
			c.fused(at.Activation), c.fused(at.RecurrentActivation))
	}
	panic("bug")
}

// recurrent puts tail after the flags that every recurrent kernel takes.
func (c *ctx) recurrent(fn string, r *raw.Recurrent, out gogen.Gen, tail ...gogen.Gen) gogen.Gen {
	args := []gogen.Gen{
		out, c.data(r.FromTensor),
		c.param(r.WeightsTensor), c.param(r.RecurrentWeightsTensor), c.param(r.BiasesTensor),
		gogen.Addr{Expr: gogen.Vb(c.st.State[r.ToTensor])},
		gogen.Addr{Expr: gogen.Vb(c.st.Work[r.ToTensor])},
		flag(r.ReturnSequences), flag(r.GoBackwards),
	}
	return c.call(fn, append(args, tail...)...)
}
