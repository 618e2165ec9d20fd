// Package ioname is the single source of the input and output identifiers
// that appear in generated signatures and call sites.
package ioname

import (
	"nn2go/internal/compile/author/gogen"
	"nn2go/internal/model"
)

// Resolve returns the Input tensors and the Output tensors, each in
// graph-file order.
func Resolve(m *model.Model) (ins, outs []string) {
	for _, in := range m.Inputs {
		ins = append(ins, in.ToTensor)
	}
	for _, out := range m.Outputs {
		outs = append(outs, out.FromTensor)
	}
	return
}

// Params declares one *Tensor parameter per input, then one per output.
func Params(rt string, ins, outs []string) gogen.Gen {
	typ := gogen.Ptr{Type: gogen.Selector{Pkg: rt, Name: "Tensor"}}
	var cs gogen.CommaSpaced
	for _, name := range ins {
		cs = append(cs, gogen.Param{What: gogen.Vb(name), Type: typ})
	}
	for _, name := range outs {
		cs = append(cs, gogen.Param{What: gogen.Vb(name), Type: typ})
	}
	return cs
}

// Args passes the addresses of one tensor per input, then one per output.
func Args(ins, outs []string) gogen.Gen {
	var cs gogen.CommaSpaced
	for _, name := range ins {
		cs = append(cs, gogen.Addr{Expr: gogen.Vb(name)})
	}
	for _, name := range outs {
		cs = append(cs, gogen.Addr{Expr: gogen.Vb(name)})
	}
	return cs
}
