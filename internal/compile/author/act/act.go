package act

import (
	"nn2go/internal/compile/author/gogen"
	"nn2go/internal/raw"
)

// Gen is the runtime expression for an activation. LeakyReLU and ELU
// take alpha, the other kinds ignore it.
func Gen(rt string, kind raw.ActivationKind, alpha float64) gogen.Gen {
	fn := gogen.Selector{Pkg: rt, Name: raw.ActivationStrings[kind]}
	switch kind {
	case raw.LeakyReLU, raw.ELU:
		return gogen.Call{Func: fn, Args: gogen.FloatLit(alpha)}
	}
	return fn
}

// Fused is the activation a layer applies to its own result.
func Fused(rt string, kind raw.ActivationKind) gogen.Gen {
	switch kind {
	case raw.LeakyReLU:
		return Gen(rt, kind, raw.LeakyReLUAlpha)
	case raw.ELU:
		return Gen(rt, kind, raw.ELUAlpha)
	}
	return Gen(rt, kind, 0)
}
