package gogen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func text(g Gen) string {
	return string(g.Append(nil))
}

func TestExpressions(t *testing.T) {
	call := Call{
		Func: Selector{"infer", "Dense"},
		Args: CommaSpaced{Addr{Vb("y")}, Addr{Vb("x")}, nil, Selector{"infer", "ReLU"}},
	}
	assert.Equal(t, "infer.Dense(&y, &x, infer.ReLU)", text(call))
	assert.Equal(t, "a[:]", text(SliceExpr{Vb("a")}))
	assert.Equal(t, "[4]float64", text(ArrayType{IntLit(4), Float64}))
	assert.Equal(t, `"nn2go/infer"`, text(DoubleQuoted("nn2go/infer")))
	assert.Equal(t, "var s States", text(Var{Vb("s"), Vb("States"), nil}))
}

func TestFloatLitRoundTrips(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-1.5, "-1.5"},
		{0.1, "0.1"},
		{1e-7, "1e-07"},
		{float64(float32(0.1)), "0.10000000149011612"},
	} {
		assert.Equal(t, tc.want, text(FloatLit(tc.in)))
	}
}

func TestFloats(t *testing.T) {
	assert.Equal(t, "[]float64{}", text(Floats(nil)))
	f := make(Floats, 9)
	f[8] = 2
	assert.Equal(t, "[]float64{\n0, 0, 0, 0, 0, 0, 0, 0,\n2,\n}", text(f))
}

func TestStatements(t *testing.T) {
	fn := FuncDef{
		Name:   "reset",
		Params: nil,
		Body: Stmts{
			Assign{Vb("s"), Composite{Vb("States"), nil}},
			If{
				Cond: CmpG{Vb("a"), Vb("b")},
				Then: Stmts{Return{nil}},
			},
		},
	}
	assert.Equal(t, "func reset() {\ns = States{}\nif a > b {\nreturn\n}\n}\n", text(fn))

	loop := Range{Value: Vb("e"), Expr: Vb("errs"), Body: Stmts{IncPost{Vb("n")}}}
	assert.Equal(t, "for _, e := range errs {\nn++\n}", text(loop))
}

func TestImports(t *testing.T) {
	is := Imports{Import{Path: "math"}, nil, Import{Alias: "rt", Path: "example.com/infer"}}
	assert.Equal(t, "import (\n\"math\"\n\n"+`rt "example.com/infer"`+"\n)\n", text(is))
}

func TestTableAligns(t *testing.T) {
	table := Table{
		Flat: []Gen{Vb("a"), Vb("int"), Comment{"x"}, Vb("long"), Vb("int"), Comment{"y"}},
		Cols: 3,
	}
	assert.Equal(t, "a    int // x\nlong int // y\n", text(table))
}

func TestCommaLines(t *testing.T) {
	lit := Composite{Vb("T"), CommaLines{KeyValue{Vb("A"), IntLit(1)}, nil, KeyValue{Vb("B"), IntLit(2)}}}
	assert.Equal(t, "T{\nA: 1,\nB: 2,\n}", text(lit))
}
