// Package compile turns a graph file into the two generated files and
// publishes them.
package compile

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"nn2go/internal/artifact"
	"nn2go/internal/compile/author/emit"
	"nn2go/internal/compile/author/harness"
	"nn2go/internal/eval"
	"nn2go/internal/metrics"
	"nn2go/internal/model"
)

type Options struct {
	// Dir receives the files. The default is the working directory.
	Dir string

	// Function names the generated function and the files. The default
	// is the Name of the Config line.
	Function string

	// Package is the package clause of both files. The default is the
	// base name of Dir if that is an identifier, else "main".
	Package string

	NumTests int
	Tol      *float64
	Seed     int64
	Mode     eval.Mode
	Runtime  string
	Log      *zap.Logger
	Metrics  *metrics.Recorder
}

type Result struct {
	Function string
	Stateful bool
	CodePath string
	TestPath string
	Code     []byte
	Test     []byte
}

// Compile parses text and generates both files in memory. It fails before
// any generation work if either file already exists.
func Compile(ctx context.Context, text string, opts Options) (*Result, error) {
	m, err := model.Parse(text)
	if err != nil {
		return nil, errors.WithMessage(err, "compile failed")
	}
	return Model(ctx, m, opts)
}

// Model is Compile for a model that is already parsed.
func Model(ctx context.Context, m *model.Model, opts Options) (*Result, error) {
	st := &state{
		ctx:  ctx,
		m:    m,
		opts: opts,
	}
	for _, stage := range &stages {
		if err := stage(st); err != nil {
			return nil, errors.WithMessage(err, "compile failed")
		}
	}
	return st.res, nil
}

// Write publishes both files of res, or neither.
func Write(res *Result, rec *metrics.Recorder) error {
	err := artifact.Write(
		artifact.File{Path: res.CodePath, Data: res.Code},
		artifact.File{Path: res.TestPath, Data: res.Test},
	)
	if err != nil {
		return err
	}
	rec.ArtifactWritten("code")
	rec.ArtifactWritten("test")
	return nil
}

type state struct {
	ctx  context.Context
	m    *model.Model
	opts Options
	log  *zap.Logger
	res  *Result
}

var stages = [...]func(*state) error{
	(*state).stage1,
	(*state).stage2,
	(*state).stage3,
	(*state).stage4,
}

// stage1 fills in the defaults.
func (st *state) stage1() error {
	o := &st.opts
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Function == "" {
		o.Function = st.m.Config.Name
	}
	if o.Package == "" {
		o.Package = "main"
		if abs, err := filepath.Abs(o.Dir); err == nil {
			if base := filepath.Base(abs); model.CheckIdent(base) == nil {
				o.Package = base
			}
		}
	}
	st.log = o.Log
	if st.log == nil {
		st.log = zap.NewNop()
	}
	st.log = st.log.With(zap.String("function", o.Function))
	st.res = &Result{
		Function: o.Function,
		CodePath: filepath.Join(o.Dir, o.Function+".go"),
		TestPath: filepath.Join(o.Dir, o.Function+"_test.go"),
	}
	return nil
}

// stage2 refuses to start when a file is in the way.
func (st *state) stage2() error {
	return artifact.Check(st.res.CodePath, st.res.TestPath)
}

// stage3 generates the code file.
func (st *state) stage3() error {
	a, err := emit.Emit(st.m, st.opts.Function, st.opts.Package,
		emit.Config{Runtime: st.opts.Runtime})
	if err != nil {
		return err
	}
	st.res.Code = a.Code
	st.res.Stateful = a.Stateful
	st.log.Info("generated code",
		zap.Int("layers", len(st.m.Layers)),
		zap.Int("params", len(st.m.Params)),
		zap.Bool("stateful", a.Stateful),
		zap.Int("bytes", len(a.Code)))
	return nil
}

// stage4 samples the reference model and generates the test file.
func (st *state) stage4() error {
	ev := eval.New(st.m, st.opts.Mode)
	test, err := harness.Emit(st.ctx, st.m, ev, st.opts.Function, st.opts.Package, harness.Options{
		NumTests: st.opts.NumTests,
		Stateful: st.res.Stateful,
		Tol:      st.opts.Tol,
		Seed:     st.opts.Seed,
		Runtime:  st.opts.Runtime,
		Log:      st.log,
		Metrics:  st.opts.Metrics,
	})
	if err != nil {
		return err
	}
	st.res.Test = test
	st.log.Info("generated test",
		zap.Stringer("evalMode", st.opts.Mode),
		zap.Int64("seed", st.opts.Seed),
		zap.Int("bytes", len(test)))
	return nil
}
