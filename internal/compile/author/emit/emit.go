// Package emit writes the code file: the inference function and, for a
// stateful model, its reset function.
package emit

import (
	"strconv"
	"strings"

	"nn2go/internal/compile/author/gogen"
	"nn2go/internal/compile/author/imports"
	"nn2go/internal/compile/author/ioname"
	"nn2go/internal/compile/author/layers"
	"nn2go/internal/compile/author/sect"
	"nn2go/internal/compile/author/tobuild"
	"nn2go/internal/compile/author/weights"
	"nn2go/internal/model"
	"nn2go/internal/nmsrc"
)

type Config struct {
	// Runtime is the import path of the runtime package. The default is
	// imports.DefaultRuntime.
	Runtime string
}

type Artifact struct {
	Code     []byte
	Stateful bool
}

// Emit generates the code file in memory. It fails with a validation error
// if function or pkg cannot be used as a Go identifier or if a tensor name
// would collide with a generated one.
func Emit(m *model.Model, function, pkg string, cfg Config) (*Artifact, error) {
	st := &state{
		m:   m,
		fn:  function,
		pkg: pkg,
		rt:  cfg.Runtime,
		nms: nmsrc.New(),
	}
	if st.rt == "" {
		st.rt = imports.DefaultRuntime
	}
	for _, stage := range &stages {
		if err := stage(st); err != nil {
			return nil, err
		}
	}
	code, err := st.sections.Code()
	if err != nil {
		return nil, err
	}
	return &Artifact{Code: code, Stateful: st.stateful}, nil
}

// ResetFunction returns the signature and body of the function that zeroes
// every byte of the persistent state of function.
func ResetFunction(function string) (signature, body gogen.Gen) {
	signature = gogen.Spaced{
		gogen.Vb("func"),
		gogen.Call{Func: gogen.Vb(weights.ResetName(function))},
	}
	body = gogen.Stmts{
		gogen.Assign{
			Expr1: gogen.Vb(weights.StateVar(function)),
			Expr2: gogen.Composite{Type: gogen.Vb(weights.StateType(function))},
		},
	}
	return
}

type state struct {
	m        *model.Model
	fn, pkg  string
	rt       string
	nms      nmsrc.Src
	sections sect.Sections
	ins      []string
	outs     []string
	storage  *weights.Storage
	stateful bool
}

var stages = [...]func(*state) error{
	(*state).stage1,
	(*state).stage2,
	(*state).stage3,
	(*state).stage4,
}

// stage1 checks the names and writes everything above the declarations.
func (st *state) stage1() error {
	if err := model.CheckIdent(st.fn); err != nil {
		return err
	}
	if err := model.CheckIdent(st.pkg); err != nil {
		return err
	}
	st.sections.Append(sect.CodeHeader, tobuild.Gen(st.fn))
	st.sections.Append(sect.CodePackage, gogen.Package(st.pkg), gogen.Newline)
	st.sections.Append(sect.CodeImports, imports.Code(st.rt))
	return nil
}

// stage2 declares the parameters and the persistent state.
func (st *state) stage2() error {
	st.ins, st.outs = ioname.Resolve(st.m)
	storage, err := weights.Compile(st.m, st.fn, imports.Name, st.nms)
	if err != nil {
		return err
	}
	st.storage = storage
	st.stateful = storage.Persistent != nil
	st.sections.Append(sect.CodeState, storage.Persistent)
	st.sections.Append(sect.CodeParams, storage.Params)
	return nil
}

// stage3 writes the inference function.
func (st *state) stage3() error {
	params := ioname.Params(imports.Name, st.ins, st.outs)
	st.sections.Append(sect.CodeSignature,
		st.doc(),
		gogen.Spaced{
			gogen.Vb("func"),
			gogen.Call{Func: gogen.Vb(st.fn), Args: params},
			gogen.Vb("{\n"),
		},
	)
	st.sections.Append(sect.CodeTransient, st.storage.Transient, gogen.Newline)
	st.sections.Append(sect.CodeBody, layers.Compile(st.m, st.storage, imports.Name))
	st.sections.Append(sect.CodeClose, gogen.Vb("}\n"))
	return nil
}

// stage4 writes the reset function of a stateful model.
func (st *state) stage4() error {
	if !st.stateful {
		return nil
	}
	signature, body := ResetFunction(st.fn)
	st.sections.Append(sect.CodeReset,
		gogen.Newline,
		gogen.Comment{
			weights.ResetName(st.fn) + " clears the recurrent state, so that the next call of",
			st.fn + " behaves like the first one.",
		},
		signature, gogen.Vb(" "), gogen.Block{Inner: body}, gogen.Newline,
	)
	return nil
}

func (st *state) doc() gogen.Gen {
	lines := gogen.Comment{
		st.fn + " runs the model on one sample. Each argument must hold exactly as many",
		"values as its shape has elements:",
		"",
	}
	arg := func(name, role string) string {
		shape := st.m.Shapes[name]
		if st.stateful {
			shape = st.m.DeclaredShape(name)
		}
		dims := make([]string, len(shape))
		for i, d := range shape {
			dims[i] = strconv.Itoa(d)
		}
		return "\t" + name + " (" + role + ") " + strings.Join(dims, "x")
	}
	for _, name := range st.ins {
		lines = append(lines, arg(name, "input"))
	}
	for _, name := range st.outs {
		lines = append(lines, arg(name, "output"))
	}
	return lines
}
