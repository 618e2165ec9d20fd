// Package weights declares the storage of generated code: parameter
// tensors as package-level literals, the persistent state of stateful
// layers, and the tensors each call works in.
package weights

import (
	"sort"
	"strconv"

	"nn2go/internal/compile/author/gogen"
	"nn2go/internal/fail"
	"nn2go/internal/model"
	"nn2go/internal/nmsrc"
	"nn2go/internal/raw"
)

type Storage struct {
	// Params declares one package-level variable per parameter tensor.
	Params gogen.Gen

	// Persistent declares the state type and variable. It is nil iff no
	// layer is stateful.
	Persistent gogen.Gen

	// Transient declares, at the top of the function body, a view of each
	// input and output, each intermediate tensor and the recurrent state
	// and scratch of each call.
	Transient gogen.Gen

	// Data maps each data tensor to its local variable.
	Data map[string]string

	// Param maps each parameter tensor to its package-level variable.
	Param map[string]string

	// State and Work map each recurrent layer, by ToTensor, to the local
	// variables of its state and its scratch space.
	State map[string]string
	Work  map[string]string
}

// StateVar is the package-level variable holding persistent state.
func StateVar(fn string) string {
	return fn + "State"
}

// StateType is the type of StateVar.
func StateType(fn string) string {
	return fn + "States"
}

// ResetName is the function that zeroes StateVar.
func ResetName(fn string) string {
	return fn + "ResetStates"
}

// ParamVar is the package-level variable of a parameter tensor.
func ParamVar(fn, tensor string) string {
	return fn + upper(tensor)
}

func upper(s string) string {
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// Literal renders a tensor literal. The same array and shape always give
// the same text, and every value parses back to the same float64.
func Literal(rt string, array []float64, shape []int) gogen.Gen {
	dims := make(gogen.CommaSpaced, len(shape))
	for i, d := range shape {
		dims[i] = gogen.IntLit(d)
	}
	key := func(k string, v gogen.Gen) gogen.Gen {
		return gogen.KeyValue{Key: gogen.Vb(k), Value: v}
	}
	return gogen.Composite{
		Type: gogen.Selector{Pkg: rt, Name: "Tensor"},
		Elems: gogen.CommaLines{
			key("Array", gogen.Floats(array)),
			key("Ndim", gogen.IntLit(len(shape))),
			key("Numel", gogen.IntLit(model.Numel(shape))),
			key("Shape", gogen.Composite{
				Type:  gogen.ArrayType{Len: gogen.Selector{Pkg: rt, Name: "MaxNdim"}, Elem: gogen.Int},
				Elems: dims,
			}),
		},
	}
}

// Make is a call of the runtime's allocator.
func Make(rt string, shape []int) gogen.Gen {
	args := make(gogen.CommaSpaced, len(shape))
	for i, d := range shape {
		args[i] = gogen.IntLit(d)
	}
	return gogen.Call{Func: gogen.Selector{Pkg: rt, Name: "Make"}, Args: args}
}

func view(rt string, array gogen.Gen, shape []int) gogen.Gen {
	args := gogen.CommaSpaced{array}
	for _, d := range shape {
		args = append(args, gogen.IntLit(d))
	}
	return gogen.Call{Func: gogen.Selector{Pkg: rt, Name: "View"}, Args: args}
}

type state struct {
	m       *model.Model
	fn, rt  string
	nms     nmsrc.Src
	st      *Storage
	table   gogen.Table
	globals map[string]bool
}

// Compile names and declares all storage. The names of data tensors and
// of every package-level identifier are claimed in nms; a data tensor
// whose name is already a package-level identifier is an error.
func Compile(m *model.Model, fn, rt string, nms nmsrc.Src) (*Storage, error) {
	s := &state{
		m:   m,
		fn:  fn,
		rt:  rt,
		nms: nms,
		st: &Storage{
			Data:  make(map[string]string),
			Param: make(map[string]string),
			State: make(map[string]string),
			Work:  make(map[string]string),
		},
		table: gogen.Table{Cols: 2},
	}
	if err := s.claim(); err != nil {
		return nil, err
	}
	s.params()
	s.persistent()
	s.transient()
	return s.st, nil
}

func (s *state) claim() error {
	s.globals = map[string]bool{
		s.fn:            true,
		StateVar(s.fn):  true,
		StateType(s.fn): true,
		ResetName(s.fn): true,
	}
	for tensor := range s.m.Params {
		s.globals[ParamVar(s.fn, tensor)] = true
	}
	for name := range s.globals {
		s.nms.Claim(name)
	}
	for _, in := range s.m.Inputs {
		if err := s.data(in.ToTensor, in.LineNum); err != nil {
			return err
		}
	}
	for _, node := range s.m.Layers {
		for _, tensor := range node.ToTensors() {
			if err := s.data(tensor, node.LineNumber()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *state) data(tensor string, line int) error {
	if s.globals[tensor] {
		return fail.Validation("line %d: %s: tensor name is taken by a generated identifier", line, tensor)
	}
	s.nms.Claim(tensor)
	return nil
}

func (s *state) params() {
	names := make([]string, 0, len(s.m.Params))
	for tensor := range s.m.Params {
		names = append(names, tensor)
	}
	sort.Strings(names)
	var gs gogen.Gens
	for _, tensor := range names {
		p := s.m.Params[tensor]
		name := ParamVar(s.fn, tensor)
		s.st.Param[tensor] = name
		gs = append(gs,
			gogen.Comment{tensor + " " + dims(p.Shape)},
			gogen.Var{What: gogen.Vb(name), Init: Literal(s.rt, p.Data, p.Shape)},
			gogen.Newline, gogen.Newline,
		)
	}
	s.st.Params = gs
}

func (s *state) persistent() {
	table := gogen.Table{Cols: 3}
	for _, node := range s.m.Layers {
		r := model.Recurrent(node)
		if r == nil || !r.Stateful {
			continue
		}
		table.Flat = append(table.Flat,
			gogen.Vb(r.ToTensor),
			gogen.ArrayType{Len: gogen.IntLit(model.StateSize(node)), Elem: gogen.Float64},
			gogen.Comment{kind(node) + " at line " + itoa(r.LineNum)},
		)
	}
	if len(table.Flat) == 0 {
		return
	}
	name := StateVar(s.fn)
	s.st.Persistent = gogen.Gens{
		gogen.Comment{StateType(s.fn) + " carries recurrent state from one call to the next."},
		gogen.TypeDef{Name: StateType(s.fn), Type: gogen.StructType{Fields: table}},
		gogen.Newline,
		gogen.Var{What: gogen.Vb(name), Type: gogen.Vb(StateType(s.fn))},
		gogen.Newline, gogen.Newline,
	}
}

func (s *state) decl(name string, init gogen.Gen, note string) {
	s.table.Flat = append(s.table.Flat,
		gogen.Define{Expr1: gogen.Vb(name), Expr2: init},
		gogen.Comment{note},
	)
}

func (s *state) transient() {
	arr := func(x string) gogen.Gen { return gogen.Dot{Expr: gogen.Vb(x), Name: "Array"} }
	for _, in := range s.m.Inputs {
		name := s.nms.Unique(in.ToTensor + "View")
		s.st.Data[in.ToTensor] = name
		s.decl(name, view(s.rt, arr(in.ToTensor), s.m.Shapes[in.ToTensor]), "input")
	}
	for _, out := range s.m.Outputs {
		name := s.nms.Unique(out.FromTensor + "View")
		s.st.Data[out.FromTensor] = name
		s.decl(name, view(s.rt, arr(out.FromTensor), s.m.Shapes[out.FromTensor]), "output")
	}
	for _, node := range s.m.Layers {
		for _, tensor := range node.ToTensors() {
			if _, ok := s.st.Data[tensor]; ok {
				continue
			}
			s.st.Data[tensor] = tensor
			note := kind(node) + " at line " + itoa(node.LineNumber())
			s.decl(tensor, Make(s.rt, s.m.Shapes[tensor]), note)
		}
	}
	for _, node := range s.m.Layers {
		r := model.Recurrent(node)
		if r == nil {
			continue
		}
		to := r.ToTensor
		stateName := s.nms.Unique(to + "State")
		workName := s.nms.Unique(to + "Work")
		s.st.State[to], s.st.Work[to] = stateName, workName
		n := model.StateSize(node)
		if r.Stateful {
			field := gogen.SliceExpr{Expr: gogen.Dot{Expr: gogen.Vb(StateVar(s.fn)), Name: to}}
			s.decl(stateName, view(s.rt, field, []int{n}), "persistent state")
		} else {
			s.decl(stateName, Make(s.rt, []int{n}), "state of this call")
		}
		s.decl(workName, Make(s.rt, []int{model.WorkSize(node)}), "scratch")
	}
	s.st.Transient = s.table
}

func kind(node raw.Node) string {
	return raw.HeadOf(node)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func dims(shape []int) string {
	s := ""
	for i, d := range shape {
		if i != 0 {
			s += "x"
		}
		s += itoa(d)
	}
	return s
}
