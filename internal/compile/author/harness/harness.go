// Package harness writes the test file: one go test that feeds randomly
// sampled inputs to the generated function and compares its outputs with
// the outputs of the reference evaluator.
package harness

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"nn2go/internal/compile/author/gogen"
	"nn2go/internal/compile/author/imports"
	"nn2go/internal/compile/author/ioname"
	"nn2go/internal/compile/author/sect"
	"nn2go/internal/compile/author/tobuild"
	"nn2go/internal/compile/author/weights"
	"nn2go/internal/fail"
	"nn2go/internal/metrics"
	"nn2go/internal/model"
	"nn2go/internal/nmsrc"
)

const (
	DefaultTests     = 10
	DefaultTolerance = 1e-3

	// MaxAttempts is how many samples in a row may give a non-finite
	// output before the model is declared unfit for random testing.
	MaxAttempts = 20

	sampleLo = -2
	sampleHi = 2
)

// Evaluator is the reference model. Snapshot and Restore let a rejected
// sample leave no trace in the recurrent state.
type Evaluator interface {
	Predict(ctx context.Context, inputs [][]float64) ([][]float64, error)
	Reset()
	Snapshot() [][]float64
	Restore(snap [][]float64)
}

type Options struct {
	// NumTests is the number of test cases. The default is DefaultTests.
	NumTests int

	// Stateful makes the test keep recurrent state across calls and
	// reset it at the start and halfway through.
	Stateful bool

	// Tol is the largest max-abs error that passes. Nil means
	// DefaultTolerance; zero demands an exact match.
	Tol *float64

	Seed    int64
	Runtime string
	Log     *zap.Logger
	Metrics *metrics.Recorder
}

// Emit samples the test cases and generates the test file in memory.
// Nothing is returned unless every case was sampled.
func Emit(ctx context.Context, m *model.Model, ev Evaluator, function, pkg string, opts Options) ([]byte, error) {
	st := &state{
		ctx:  ctx,
		m:    m,
		ev:   ev,
		fn:   function,
		pkg:  pkg,
		opts: opts,
		nms:  nmsrc.New(),
	}
	if st.opts.NumTests <= 0 {
		st.opts.NumTests = DefaultTests
	}
	st.tol = DefaultTolerance
	if st.opts.Tol != nil {
		st.tol = *st.opts.Tol
		if !(st.tol >= 0) || math.IsInf(st.tol, 0) {
			return nil, fail.Validation("tolerance must be non-negative and finite, not %g", st.tol)
		}
	}
	if st.opts.Runtime == "" {
		st.opts.Runtime = imports.DefaultRuntime
	}
	if st.opts.Log == nil {
		st.opts.Log = zap.NewNop()
	}
	for _, stage := range &stages {
		if err := stage(st); err != nil {
			return nil, err
		}
	}
	return st.sections.Test()
}

// HelperName is the max-abs-error function of the test file.
func HelperName(fn string) string {
	return "maxAbs" + tobuild.TestName(fn)[len("Test"):]
}

type testCase struct {
	ins, goldens, gots []string
}

type state struct {
	ctx      context.Context
	m        *model.Model
	ev       Evaluator
	fn, pkg  string
	opts     Options
	tol      float64
	nms      nmsrc.Src
	sections sect.Sections
	ins      []string
	outs     []string
	cases    []testCase
	literals gogen.Stmts

	errs, start, elapsed, worst, e string
}

var stages = [...]func(*state) error{
	(*state).stage1,
	(*state).stage2,
	(*state).stage3,
	(*state).stage4,
	(*state).stage5,
}

// stage1 collects the test cases.
func (st *state) stage1() error {
	if err := model.CheckIdent(st.fn); err != nil {
		return err
	}
	if err := model.CheckIdent(st.pkg); err != nil {
		return err
	}
	st.ins, st.outs = ioname.Resolve(st.m)
	st.nms.Claim(
		st.fn, weights.ResetName(st.fn), tobuild.TestName(st.fn), HelperName(st.fn),
		imports.Name, "math", "testing", "time", "t",
	)
	rng := rand.New(rand.NewSource(st.opts.Seed))
	n := st.opts.NumTests
	st.ev.Reset()
	for k := 0; k < n; k++ {
		if st.opts.Stateful && k == n/2 {
			st.ev.Reset()
		}
		inputs, outputs, err := st.sample(rng, k+1)
		if err != nil {
			return err
		}
		st.declare(k+1, inputs, outputs)
	}
	return nil
}

// sample draws inputs until every output is finite.
func (st *state) sample(rng *rand.Rand, number int) (inputs, outputs [][]float64, err error) {
	for attempt := 1; ; attempt++ {
		if err := st.ctx.Err(); err != nil {
			return nil, nil, err
		}
		snap := st.ev.Snapshot()
		inputs = make([][]float64, len(st.ins))
		for i, name := range st.ins {
			inputs[i] = draw(rng, model.Numel(st.m.Shapes[name]), st.m.Vocab(name))
		}
		st.opts.Metrics.SampleDrawn()
		begin := time.Now()
		outputs, err = st.ev.Predict(st.ctx, inputs)
		st.opts.Metrics.ObserveEval(time.Since(begin))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "evaluate case %d", number)
		}
		if finite(outputs) {
			st.opts.Log.Debug("sampled test case",
				zap.Int("case", number), zap.Int("attempts", attempt))
			return inputs, outputs, nil
		}
		st.ev.Restore(snap)
		st.opts.Metrics.SampleRejected()
		st.opts.Log.Warn("rejected sample with a non-finite output",
			zap.Int("case", number), zap.Int("attempt", attempt))
		if attempt == MaxAttempts {
			return nil, nil, fail.Exhausted(
				"case %d: %d samples in a row gave a non-finite output; "+
					"the model cannot be checked with random inputs",
				number, MaxAttempts)
		}
	}
}

// draw samples float32 values from [sampleLo, sampleHi), or token ids
// from [0, vocab) when vocab is positive.
func draw(rng *rand.Rand, n, vocab int) []float64 {
	x := make([]float64, n)
	for i := range x {
		if vocab > 0 {
			x[i] = float64(rng.Intn(vocab))
			continue
		}
		v := sampleLo + (sampleHi-sampleLo)*rng.Float64()
		x[i] = float64(float32(v))
	}
	return x
}

func finite(arrays [][]float64) bool {
	for _, a := range arrays {
		for _, v := range a {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// shape is the shape of a literal: the declared shape for a stateful
// test, one sample otherwise.
func (st *state) shape(name string) []int {
	if st.opts.Stateful {
		return st.m.DeclaredShape(name)
	}
	return st.m.Shapes[name]
}

func (st *state) declare(number int, inputs, outputs [][]float64) {
	rt := imports.Name
	var tc testCase
	k := strconv.Itoa(number)
	for i, name := range st.ins {
		id := st.nms.Unique("test" + k + name)
		tc.ins = append(tc.ins, id)
		st.literals = append(st.literals, gogen.Define{
			Expr1: gogen.Vb(id),
			Expr2: weights.Literal(rt, inputs[i], st.shape(name)),
		})
	}
	for i, name := range st.outs {
		golden := st.nms.Unique("golden" + k + name)
		got := st.nms.Unique("got" + k + name)
		tc.goldens = append(tc.goldens, golden)
		tc.gots = append(tc.gots, got)
		st.literals = append(st.literals,
			gogen.Define{
				Expr1: gogen.Vb(golden),
				Expr2: weights.Literal(rt, outputs[i], st.shape(name)),
			},
			gogen.Define{
				Expr1: gogen.Vb(got),
				Expr2: weights.Make(rt, st.shape(name)),
			},
		)
	}
	st.cases = append(st.cases, tc)
}

// stage2 writes the header, the helper and the literals.
func (st *state) stage2() error {
	st.errs = st.nms.Unique("errs")
	st.start = st.nms.Unique("start")
	st.elapsed = st.nms.Unique("elapsed")
	st.worst = st.nms.Unique("worst")
	st.e = st.nms.Unique("e")

	st.sections.Append(sect.TestHeader, tobuild.Header())
	st.sections.Append(sect.TestPackage, gogen.Package(st.pkg), gogen.Newline)
	st.sections.Append(sect.TestImports, imports.Test(st.opts.Runtime))
	st.sections.Append(sect.TestHelper, helper(st.fn), gogen.Newline)
	st.sections.Append(sect.TestSignature,
		gogen.Spaced{
			gogen.Vb("func"),
			gogen.Call{
				Func: gogen.Vb(tobuild.TestName(st.fn)),
				Args: gogen.Param{
					What: gogen.Vb("t"),
					Type: gogen.Ptr{Type: gogen.Selector{Pkg: "testing", Name: "T"}},
				},
			},
			gogen.Vb("{\n"),
		},
	)
	st.sections.Append(sect.TestLiterals, st.literals, gogen.Newline)
	return nil
}

// stage3 writes the calls. The resets match the resets of the evaluator
// in stage1.
func (st *state) stage3() error {
	n := st.opts.NumTests
	reset := gogen.Call{Func: gogen.Vb(weights.ResetName(st.fn))}
	stmts := gogen.Stmts{
		gogen.Var{
			What: gogen.Vb(st.errs),
			Type: gogen.ArrayType{Len: gogen.IntLit(n * len(st.outs)), Elem: gogen.Float64},
		},
	}
	if st.opts.Stateful {
		stmts = append(stmts, reset)
	}
	stmts = append(stmts, gogen.Define{
		Expr1: gogen.Vb(st.start),
		Expr2: gogen.Call{Func: gogen.Selector{Pkg: "time", Name: "Now"}},
	})
	for k, tc := range st.cases {
		if st.opts.Stateful && k == n/2 {
			stmts = append(stmts, reset)
		}
		stmts = append(stmts, gogen.Call{
			Func: gogen.Vb(st.fn),
			Args: ioname.Args(tc.ins, tc.gots),
		})
	}
	stmts = append(stmts,
		gogen.Define{
			Expr1: gogen.Vb(st.elapsed),
			Expr2: gogen.Call{
				Func: gogen.Selector{Pkg: "time", Name: "Since"},
				Args: gogen.Vb(st.start),
			},
		},
		logf(gogen.DoubleQuoted("average time per call: %v"),
			gogen.Quo{
				Expr1: gogen.Vb(st.elapsed),
				Expr2: gogen.Call{
					Func: gogen.Selector{Pkg: "time", Name: "Duration"},
					Args: gogen.IntLit(n),
				},
			},
		),
	)
	st.sections.Append(sect.TestCalls, stmts, gogen.Newline)
	return nil
}

// stage4 writes the error of every case and output and reduces them.
func (st *state) stage4() error {
	var stmts gogen.Stmts
	helperName := HelperName(st.fn)
	i := 0
	for k, tc := range st.cases {
		for j, name := range st.outs {
			elem := gogen.Elem{Arr: gogen.Vb(st.errs), Idx: gogen.IntLit(i)}
			stmts = append(stmts,
				gogen.Assign{
					Expr1: elem,
					Expr2: gogen.Call{
						Func: gogen.Vb(helperName),
						Args: gogen.CommaSpaced{
							gogen.Addr{Expr: gogen.Vb(tc.goldens[j])},
							gogen.Addr{Expr: gogen.Vb(tc.gots[j])},
						},
					},
				},
				logf(gogen.DoubleQuoted("case "+strconv.Itoa(k+1)+", output "+name+
					": max abs error %g"), elem),
			)
			i++
		}
	}
	stmts = append(stmts,
		gogen.Define{Expr1: gogen.Vb(st.worst), Expr2: gogen.ZeroF},
		gogen.Range{
			Value: gogen.Vb(st.e),
			Expr:  gogen.Vb(st.errs),
			Body: gogen.Stmts{
				gogen.If{
					Cond: gogen.CmpG{Expr1: gogen.Vb(st.e), Expr2: gogen.Vb(st.worst)},
					Then: gogen.Stmts{
						gogen.Assign{Expr1: gogen.Vb(st.worst), Expr2: gogen.Vb(st.e)},
					},
				},
			},
		},
	)
	st.sections.Append(sect.TestErrors, stmts, gogen.Newline)
	return nil
}

// stage5 writes the assertion.
func (st *state) stage5() error {
	tol := gogen.FloatLit(st.tol)
	st.sections.Append(sect.TestAssert, gogen.Stmts{
		gogen.If{
			Cond: gogen.CmpG{Expr1: gogen.Vb(st.worst), Expr2: tol},
			Then: gogen.Stmts{
				gogen.Call{
					Func: gogen.Selector{Pkg: "t", Name: "Fatalf"},
					Args: gogen.CommaSpaced{
						gogen.DoubleQuoted("max abs error %g exceeds tolerance %g"),
						gogen.Vb(st.worst), tol,
					},
				},
			},
		},
		logf(gogen.DoubleQuoted("passed %d cases in %v with max abs error %g"),
			gogen.IntLit(st.opts.NumTests), gogen.Vb(st.elapsed), gogen.Vb(st.worst)),
	})
	st.sections.Append(sect.TestClose, gogen.Vb("}\n"))
	return nil
}

func logf(args ...gogen.Gen) gogen.Gen {
	return gogen.Call{
		Func: gogen.Selector{Pkg: "t", Name: "Logf"},
		Args: gogen.CommaSpaced(args),
	}
}

// helper is a function that returns the largest absolute difference of
// two tensors, or +Inf if they differ in size or a difference is NaN.
func helper(fn string) gogen.Gen {
	rt := imports.Name
	tensor := gogen.Ptr{Type: gogen.Selector{Pkg: rt, Name: "Tensor"}}
	inf := gogen.Return{Expr: gogen.Call{
		Func: gogen.Selector{Pkg: "math", Name: "Inf"},
		Args: gogen.IntLit(1),
	}}
	a, b, i, d, worst := gogen.Vb("a"), gogen.Vb("b"), gogen.Vb("i"), gogen.Vb("d"), gogen.Vb("worst")
	numel := func(x gogen.Gen) gogen.Gen { return gogen.Dot{Expr: x, Name: "Numel"} }
	at := func(x gogen.Gen) gogen.Gen {
		return gogen.Elem{Arr: gogen.Dot{Expr: x, Name: "Array"}, Idx: i}
	}
	return gogen.Gens{
		gogen.Comment{
			HelperName(fn) + " returns the largest absolute difference between a and b,",
			"or +Inf if they differ in size or any difference is NaN.",
		},
		gogen.FuncDef{
			Name: HelperName(fn),
			Params: gogen.CommaSpaced{
				gogen.Param{What: a, Type: tensor},
				gogen.Param{What: b, Type: tensor},
			},
			Results: gogen.Float64,
			Body: gogen.Stmts{
				gogen.If{
					Cond: gogen.Spaced{numel(a), gogen.Vb("!="), numel(b)},
					Then: gogen.Stmts{inf},
				},
				gogen.Define{Expr1: worst, Expr2: gogen.ZeroF},
				gogen.For{
					Init: gogen.Define{Expr1: i, Expr2: gogen.Zero},
					Cond: gogen.CmpL{Expr1: i, Expr2: numel(a)},
					Post: gogen.IncPost{Expr: i},
					Body: gogen.Stmts{
						gogen.Define{
							Expr1: d,
							Expr2: gogen.Call{
								Func: gogen.Selector{Pkg: "math", Name: "Abs"},
								Args: gogen.Sub{Expr1: at(a), Expr2: at(b)},
							},
						},
						gogen.If{
							Cond: gogen.Call{
								Func: gogen.Selector{Pkg: "math", Name: "IsNaN"},
								Args: d,
							},
							Then: gogen.Stmts{inf},
						},
						gogen.If{
							Cond: gogen.CmpG{Expr1: d, Expr2: worst},
							Then: gogen.Stmts{gogen.Assign{Expr1: worst, Expr2: d}},
						},
					},
				},
				gogen.Return{Expr: worst},
			},
		},
	}
}
