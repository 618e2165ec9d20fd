// Package model validates parsed graph language and derives everything the
// code generator needs: the execution schedule, the shape of every data
// tensor and the trained parameters.
package model

import (
	"fmt"
	"go/token"
	"math"

	"nn2go/internal/fail"
	"nn2go/internal/raw"
)

type Model struct {
	Config  *raw.Config
	Inputs  []*raw.Input
	Outputs []*raw.Output

	// Layers excludes Input and Output nodes and is in execution order.
	Layers []raw.Node

	Params map[string]*raw.Param

	// Shapes maps each data tensor to the shape of one sample.
	Shapes map[string][]int

	// ParamShapes maps each parameter tensor to the shape its layer expects.
	ParamShapes map[string][]int

	consumers map[string][]raw.Node
}

// Parse runs raw.Parse and Build.
func Parse(text string) (*Model, error) {
	nodes, err := raw.Parse(text)
	if err != nil {
		return nil, err
	}
	return Build(nodes)
}

func Build(nodes []raw.Node) (*Model, error) {
	st := &state{nodes: nodes}
	for _, stage := range &stages {
		if err := stage(st); err != nil {
			return nil, err
		}
	}
	return st.model(), nil
}

// Expect returns the shape of every parameter tensor that the layers of
// nodes read. Param nodes are not needed and not checked.
func Expect(nodes []raw.Node) (map[string][]int, error) {
	st := &state{nodes: nodes}
	for _, stage := range stages[:5] {
		if err := stage(st); err != nil {
			return nil, err
		}
	}
	return st.expect, nil
}

// Stateful reports whether any layer carries state from call to call.
func (m *Model) Stateful() bool {
	for _, node := range m.Layers {
		if r := Recurrent(node); r != nil && r.Stateful {
			return true
		}
	}
	return false
}

// DeclaredShape is the shape of tensor with the leading batch axis, which
// is 0 when the batch size is unknown.
func (m *Model) DeclaredShape(tensor string) []int {
	return append([]int{m.Config.Batch}, m.Shapes[tensor]...)
}

// Vocab returns the vocabulary size of the Embedding that reads the given
// input directly, or 0 if no Embedding does. When several do, the smallest
// vocabulary wins.
func (m *Model) Vocab(input string) int {
	vocab := 0
	for _, node := range m.consumers[input] {
		if e, ok := node.(*raw.Embedding); ok {
			if vocab == 0 || e.Vocab < vocab {
				vocab = e.Vocab
			}
		}
	}
	return vocab
}

// Recurrent returns the recurrent fields of node, or nil.
func Recurrent(node raw.Node) *raw.Recurrent {
	switch at := node.(type) {
	case *raw.SimpleRNN:
		return &at.Recurrent
	case *raw.LSTM:
		return &at.Recurrent
	case *raw.GRU:
		return &at.Recurrent
	}
	return nil
}

// StateSize is the number of values a recurrent layer carries from step
// to step: the hidden state, then for LSTM the cell state.
func StateSize(node raw.Node) int {
	switch at := node.(type) {
	case *raw.LSTM:
		return 2 * at.Units
	case *raw.SimpleRNN:
		return at.Units
	case *raw.GRU:
		return at.Units
	}
	return 0
}

// WorkSize is the scratch space a recurrent layer needs per call.
func WorkSize(node raw.Node) int {
	switch at := node.(type) {
	case *raw.LSTM:
		return 8 * at.Units
	case *raw.SimpleRNN:
		return 2 * at.Units
	case *raw.GRU:
		return 6 * at.Units
	}
	return 0
}

// Numel is the product of dims.
func Numel(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

func anError(msg, tensor string, lines ...int) error {
	var pre string
	switch n := len(lines); {
	case n == 0:
	case n == 1 || lines[0] == lines[1]:
		pre = fmt.Sprintf("line %d: ", lines[0])
	default:
		l0, l1 := lines[0], lines[1]
		if l0 > l1 {
			l0, l1 = l1, l0
		}
		pre = fmt.Sprintf("lines %d and %d: ", l0, l1)
	}
	if tensor != "" {
		pre += tensor + ": "
	}
	return fail.Validation("%s%s", pre, msg)
}

type arc struct {
	tensor string
	attach int
}

type state struct {
	nodes   []raw.Node
	config  *raw.Config
	params  map[string]*raw.Param
	inputs  []int
	outputs []int
	fanins  [][]arc
	order   []int
	shapes  map[string][]int
	expect  map[string][]int
	lines   map[string]int
}

var stages = [...]func(*state) error{
	(*state).stage1,
	(*state).stage2,
	(*state).stage3,
	(*state).stage4,
	(*state).stage5,
	(*state).stage6,
	(*state).stage7,
}

// stage1 separates the Config node and the Param nodes from the graph.
func (st *state) stage1() error {
	st.params = make(map[string]*raw.Param)
	graph := st.nodes[:0:0]
	for _, node := range st.nodes {
		switch at := node.(type) {
		case *raw.Config:
			if st.config != nil {
				return anError("second Config", "", st.config.LineNum, at.LineNum)
			}
			st.config = at
		case *raw.Param:
			if prev, ok := st.params[at.Tensor]; ok {
				return anError("second Param", at.Tensor, prev.LineNum, at.LineNum)
			}
			st.params[at.Tensor] = at
		default:
			graph = append(graph, node)
		}
	}
	if st.config == nil {
		return anError("no Config", "")
	}
	st.nodes = graph
	return nil
}

// stage2 finds the inputs and outputs.
func (st *state) stage2() error {
	const directly = "Input is directly connected to Output"
	seen := make(map[string]int)
	for i, node := range st.nodes {
		switch at := node.(type) {
		case *raw.Input:
			to := at.ToTensor
			if prev := seen[to]; prev == 0 {
				seen[to] = -at.LineNum
				st.inputs = append(st.inputs, i)
			} else if prev < 0 {
				return anError("Inputs have the same ToTensor", to, -prev, at.LineNum)
			} else {
				return anError(directly, to, prev, at.LineNum)
			}
		case *raw.Output:
			from := at.FromTensor
			if prev := seen[from]; prev == 0 {
				seen[from] = at.LineNum
				st.outputs = append(st.outputs, i)
			} else if prev < 0 {
				return anError(directly, from, -prev, at.LineNum)
			} else {
				return anError("Outputs have the same FromTensor", from, prev, at.LineNum)
			}
		}
	}
	if len(st.inputs) == 0 {
		return anError("no Input", "")
	}
	if len(st.outputs) == 0 {
		return anError("no Output", "")
	}
	return nil
}

// stage3 wires every consumed tensor to the node that produces it and
// rejects names that cannot be Go identifiers in generated code.
func (st *state) stage3() error {
	n := len(st.nodes)
	gen := make(map[string]int, n)
	st.lines = make(map[string]int, n)
	for i, node := range st.nodes {
		for _, tensor := range node.ToTensors() {
			if j, ok := gen[tensor]; ok {
				ii, jj := node.LineNumber(), st.nodes[j].LineNumber()
				return anError("tensor is produced more than once", tensor, ii, jj)
			}
			if err := checkIdent(tensor); err != nil {
				return anError(err.Error(), tensor, node.LineNumber())
			}
			gen[tensor] = i
			st.lines[tensor] = node.LineNumber()
		}
	}
	st.fanins = make([][]arc, n)
	for i, node := range st.nodes {
		for _, tensor := range node.FromTensors() {
			j, ok := gen[tensor]
			if !ok {
				line := node.LineNumber()
				return anError("tensor is consumed but never produced", tensor, line)
			}
			if i == j {
				return anError("self-loop", tensor, node.LineNumber())
			}
			z := arc{tensor, j}
			dup := false
			for _, have := range st.fanins[i] {
				dup = dup || have == z
			}
			if !dup {
				st.fanins[i] = append(st.fanins[i], z)
			}
		}
	}
	return nil
}

// stage4 walks back from the outputs, rejecting cycles and nodes that
// reach no output. The postorder of the walk is the execution order.
func (st *state) stage4() error {
	const (
		white byte = iota
		gray
		black
	)
	type frame struct {
		to   []arc
		from int
	}
	n := len(st.nodes)
	color := make([]byte, n)
	stack := make([]frame, n)
	for _, i := range st.outputs {
		color[i] = gray
		stack[0] = frame{st.fanins[i], i}
		for j := 0; j >= 0; {
			top := &stack[j]
			if len(top.to) == 0 {
				color[top.from] = black
				st.order = append(st.order, top.from)
				j -= 1
				continue
			}
			arc0 := top.to[0]
			top.to = top.to[1:]
			k := arc0.attach
			if color[k] == white {
				color[k] = gray
				j += 1
				stack[j] = frame{st.fanins[k], k}
				continue
			}
			if color[k] == black {
				continue
			}
			prev := st.nodes[k].LineNumber()
			curr := st.nodes[top.from].LineNumber()
			return anError("circular dependency", arc0.tensor, prev, curr)
		}
	}
	if len(st.order) == n {
		return nil
	}
	for i := n - 1; ; i-- {
		if color[i] == white {
			node := st.nodes[i]
			line := node.LineNumber()
			if _, ok := node.(*raw.Input); ok {
				return anError("Input has no path to an Output", node.ToTensors()[0], line)
			}
			return anError("no path to an Output", node.ToTensors()[0], line)
		}
	}
}

// stage5 infers the shape of every tensor in execution order.
func (st *state) stage5() error {
	st.shapes = make(map[string][]int)
	st.expect = make(map[string][]int)
	for _, i := range st.order {
		node := st.nodes[i]
		if _, ok := node.(*raw.Output); ok {
			continue
		}
		outs, params, err := shapeOf(node, st.shapes)
		if err != nil {
			return anError(err.Error(), node.ToTensors()[0], node.LineNumber())
		}
		for k, tensor := range node.ToTensors() {
			if err := checkShape(outs[k]); err != nil {
				return anError(err.Error(), tensor, node.LineNumber())
			}
			st.shapes[tensor] = outs[k]
		}
		for k, tensor := range node.ParamTensors() {
			st.expect[tensor] = params[k]
		}
	}
	return nil
}

// stage6 matches Param nodes to the parameter tensors the layers expect.
func (st *state) stage6() error {
	for _, i := range st.order {
		node := st.nodes[i]
		for _, tensor := range node.ParamTensors() {
			param, ok := st.params[tensor]
			if !ok {
				return anError("no Param", tensor, node.LineNumber())
			}
			want := st.expect[tensor]
			if !equal(param.Shape, want) {
				msg := fmt.Sprintf("Param shape is %s but the layer needs %s",
					dims(param.Shape), dims(want))
				return anError(msg, tensor, param.LineNum, node.LineNumber())
			}
			if len(param.Data) != Numel(want) {
				msg := fmt.Sprintf("Param has %d values but shape %s needs %d",
					len(param.Data), dims(want), Numel(want))
				return anError(msg, tensor, param.LineNum)
			}
			for _, v := range param.Data {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return anError("Param value is not finite", tensor, param.LineNum)
				}
			}
		}
	}
	for tensor, param := range st.params {
		if _, ok := st.expect[tensor]; !ok {
			return anError("Param is not used by any layer", tensor, param.LineNum)
		}
	}
	return nil
}

// stage7 checks the batch size against stateful layers.
func (st *state) stage7() error {
	for _, i := range st.order {
		node := st.nodes[i]
		if r := Recurrent(node); r != nil && r.Stateful && st.config.Batch != 1 {
			msg := fmt.Sprintf("stateful layer needs Config Batch=1 (have %d)", st.config.Batch)
			return anError(msg, r.ToTensor, r.LineNum, st.config.LineNum)
		}
	}
	return nil
}

func (st *state) model() *Model {
	m := &Model{
		Config:      st.config,
		Params:      st.params,
		Shapes:      st.shapes,
		ParamShapes: st.expect,
		consumers:   make(map[string][]raw.Node),
	}
	for _, i := range st.inputs {
		m.Inputs = append(m.Inputs, st.nodes[i].(*raw.Input))
	}
	for _, i := range st.outputs {
		m.Outputs = append(m.Outputs, st.nodes[i].(*raw.Output))
	}
	for _, i := range st.order {
		node := st.nodes[i]
		switch node.(type) {
		case *raw.Input, *raw.Output:
			continue
		}
		m.Layers = append(m.Layers, node)
		for _, tensor := range node.FromTensors() {
			m.consumers[tensor] = append(m.consumers[tensor], node)
		}
	}
	return m
}

// universe holds the predeclared identifiers and the package names that
// generated code refers to.
var universe = map[string]bool{
	"any": true, "append": true, "bool": true, "byte": true, "cap": true,
	"clear": true, "close": true, "comparable": true, "complex": true,
	"complex128": true, "complex64": true, "copy": true, "delete": true,
	"error": true, "false": true, "float32": true, "float64": true,
	"imag": true, "int": true, "int16": true, "int32": true, "int64": true,
	"int8": true, "iota": true, "len": true, "make": true, "max": true,
	"min": true, "new": true, "nil": true, "panic": true, "print": true,
	"println": true, "real": true, "recover": true, "rune": true,
	"string": true, "true": true, "uint": true, "uint16": true,
	"uint32": true, "uint64": true, "uint8": true, "uintptr": true,
	"infer": true, "math": true, "testing": true, "time": true,
}

func checkIdent(name string) error {
	if token.IsKeyword(name) {
		return fmt.Errorf("%q is a Go keyword", name)
	}
	if universe[name] {
		return fmt.Errorf("%q is reserved in generated code", name)
	}
	return nil
}

// CheckIdent reports whether name can be used as a function or package
// name in generated code.
func CheckIdent(name string) error {
	if !token.IsIdentifier(name) {
		return fail.Validation("%q is not a Go identifier", name)
	}
	if err := checkIdent(name); err != nil {
		return fail.Validation("%s", err.Error())
	}
	return nil
}

func checkShape(shape []int) error {
	if len(shape) > raw.MaxRank {
		return fmt.Errorf("rank %d exceeds %d", len(shape), raw.MaxRank)
	}
	x := 1
	for _, y := range shape {
		if y <= 0 {
			return fmt.Errorf("tensor is empty")
		}
		xy := x * y
		if xy/x != y || xy >= 1<<31 {
			return fmt.Errorf("tensor is too large")
		}
		x = xy
	}
	return nil
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dims(shape []int) string {
	s := ""
	for i, d := range shape {
		if i != 0 {
			s += "x"
		}
		s += fmt.Sprint(d)
	}
	return s
}
