package gogen

import "strconv"

const (
	ampersand      = "&"
	asterisk       = "*"
	assign         = "="
	brace1         = "{"
	brace2         = "}"
	cmpG           = ">"
	cmpL           = "<"
	colon          = ":"
	comma          = ","
	define         = ":="
	dot            = "."
	else_          = "else"
	empty          = ""
	for_           = "for"
	func_          = "func"
	if_            = "if"
	import_        = "import"
	inc            = "++"
	minus          = "-"
	newline        = "\n"
	package_       = "package"
	paren1         = "("
	paren2         = ")"
	range_         = "range"
	return_        = "return"
	semicolon      = ";"
	slash          = "/"
	slashes        = "//"
	space          = " "
	squareBracket1 = "["
	squareBracket2 = "]"
	struct_        = "struct"
	type_          = "type"
	var_           = "var"
)

type Gen interface {
	Append(to []byte) []byte
}

type Gens []Gen

func (gs Gens) Append(to []byte) []byte {
	for _, gen := range gs {
		if gen != nil {
			to = gen.Append(to)
		}
	}
	return to
}

type Addr struct {
	Expr Gen
}

func (a Addr) Append(to []byte) []byte {
	to = append(to, ampersand...)
	to = a.Expr.Append(to)
	return to
}

type ArrayType struct {
	Len, Elem Gen
}

func (a ArrayType) Append(to []byte) []byte {
	to = append(to, squareBracket1...)
	to = a.Len.Append(to)
	to = append(to, squareBracket2...)
	to = a.Elem.Append(to)
	return to
}

type Assign struct {
	Expr1, Expr2 Gen
}

func (a Assign) Append(to []byte) []byte {
	to = a.Expr1.Append(to)
	to = append(to, space+assign+space...)
	to = a.Expr2.Append(to)
	return to
}

type Block struct {
	Inner Gen
}

func (b Block) Append(to []byte) []byte {
	to = append(to, brace1+newline...)
	to = Maybe{b.Inner}.Append(to)
	to = append(to, brace2...)
	return to
}

type Call struct {
	Func, Args Gen
}

func (c Call) Append(to []byte) []byte {
	to = c.Func.Append(to)
	to = Paren{c.Args}.Append(to)
	return to
}

type CmpG struct {
	Expr1, Expr2 Gen
}

func (c CmpG) Append(to []byte) []byte {
	to = c.Expr1.Append(to)
	to = append(to, space+cmpG+space...)
	to = c.Expr2.Append(to)
	return to
}

type CmpL struct {
	Expr1, Expr2 Gen
}

func (c CmpL) Append(to []byte) []byte {
	to = c.Expr1.Append(to)
	to = append(to, space+cmpL+space...)
	to = c.Expr2.Append(to)
	return to
}

// CommaLines puts each element on its own line. Go requires the comma
// after the last one too.
type CommaLines []Gen

func (c CommaLines) Append(to []byte) []byte {
	first := true
	for _, gen := range c {
		if gen == nil {
			continue
		}
		if first {
			first = false
			to = append(to, newline...)
		}
		to = gen.Append(to)
		to = append(to, comma+newline...)
	}
	return to
}

type CommaSpaced []Gen

func (c CommaSpaced) Append(to []byte) []byte {
	first := true
	for _, gen := range c {
		if gen == nil {
			continue
		}
		if first {
			first = false
		} else {
			to = append(to, comma+space...)
		}
		to = gen.Append(to)
	}
	return to
}

type Comment []string

func (c Comment) Append(to []byte) []byte {
	for _, line := range c {
		switch line {
		case empty:
			to = append(to, slashes+newline...)
		default:
			to = append(to, slashes+space...)
			to = append(to, line...)
			to = append(to, newline...)
		}
	}
	return to
}

// Composite is a composite literal. Elems is usually CommaSpaced or
// CommaLines.
type Composite struct {
	Type, Elems Gen
}

func (c Composite) Append(to []byte) []byte {
	to = c.Type.Append(to)
	to = append(to, brace1...)
	to = Maybe{c.Elems}.Append(to)
	to = append(to, brace2...)
	return to
}

type Define struct {
	Expr1, Expr2 Gen
}

func (d Define) Append(to []byte) []byte {
	to = d.Expr1.Append(to)
	to = append(to, space+define+space...)
	to = d.Expr2.Append(to)
	return to
}

type Dot struct {
	Expr Gen
	Name string
}

func (d Dot) Append(to []byte) []byte {
	to = d.Expr.Append(to)
	to = append(to, dot...)
	to = append(to, d.Name...)
	return to
}

type DoubleQuoted string

func (d DoubleQuoted) Append(to []byte) []byte {
	return strconv.AppendQuote(to, string(d))
}

type Elem struct {
	Arr, Idx Gen
}

func (e Elem) Append(to []byte) []byte {
	to = e.Arr.Append(to)
	to = append(to, squareBracket1...)
	to = Maybe{e.Idx}.Append(to)
	to = append(to, squareBracket2...)
	return to
}

// FloatLit prints the shortest text that parses back to the same float64.
type FloatLit float64

func (f FloatLit) Append(to []byte) []byte {
	return strconv.AppendFloat(to, float64(f), 'g', -1, 64)
}

// Floats is a []float64 literal with a fixed number of values per line.
type Floats []float64

const floatsPerLine = 8

func (f Floats) Append(to []byte) []byte {
	to = SliceType{Float64}.Append(to)
	to = append(to, brace1...)
	for i, x := range f {
		switch {
		case i%floatsPerLine == 0:
			to = append(to, newline...)
		default:
			to = append(to, space...)
		}
		to = FloatLit(x).Append(to)
		to = append(to, comma...)
	}
	if len(f) != 0 {
		to = append(to, newline...)
	}
	to = append(to, brace2...)
	return to
}

type For struct {
	Init, Cond, Post, Body Gen
}

func (f For) Append(to []byte) []byte {
	to = append(to, for_+space...)
	to = Maybe{f.Init}.Append(to)
	to = append(to, semicolon+space...)
	to = Maybe{f.Cond}.Append(to)
	to = append(to, semicolon+space...)
	to = Maybe{f.Post}.Append(to)
	to = append(to, space...)
	to = Block{f.Body}.Append(to)
	return to
}

type FuncDef struct {
	Name    string
	Params  Gen
	Results Gen
	Body    Gen
}

func (f FuncDef) Append(to []byte) []byte {
	var g1, g2, g3, g4 Gen
	g1 = Vb(func_)
	g2 = Call{Vb(f.Name), f.Params}
	g3 = f.Results
	g4 = Block{f.Body}
	to = Spaced{g1, g2, g3, g4}.Append(to)
	to = append(to, newline...)
	return to
}

type If struct {
	Cond Gen
	Then Stmts
	Else Stmts
}

func (i If) Append(to []byte) []byte {
	to = append(to, if_+space...)
	to = i.Cond.Append(to)
	to = append(to, space...)
	to = Block{i.Then}.Append(to)
	if len(i.Else) != 0 {
		to = append(to, space+else_+space...)
		to = Block{i.Else}.Append(to)
	}
	return to
}

type Import struct {
	Alias, Path string
}

func (i Import) Append(to []byte) []byte {
	if i.Alias != "" {
		to = append(to, i.Alias+space...)
	}
	to = DoubleQuoted(i.Path).Append(to)
	to = append(to, newline...)
	return to
}

// Imports is an import declaration. A nil element separates groups.
type Imports []Gen

func (is Imports) Append(to []byte) []byte {
	to = append(to, import_+space+paren1+newline...)
	for _, gen := range is {
		if gen == nil {
			to = append(to, newline...)
			continue
		}
		to = gen.Append(to)
	}
	to = append(to, paren2+newline...)
	return to
}

type IncPost struct {
	Expr Gen
}

func (i IncPost) Append(to []byte) []byte {
	to = i.Expr.Append(to)
	to = append(to, inc...)
	return to
}

type IntLit int

func (i IntLit) Append(to []byte) []byte {
	return strconv.AppendInt(to, int64(i), 10)
}

type KeyValue struct {
	Key, Value Gen
}

func (k KeyValue) Append(to []byte) []byte {
	to = k.Key.Append(to)
	to = append(to, colon+space...)
	to = k.Value.Append(to)
	return to
}

type Maybe struct {
	What Gen
}

func (m Maybe) Append(to []byte) []byte {
	if m.What != nil {
		to = m.What.Append(to)
	}
	return to
}

type Package string

func (p Package) Append(to []byte) []byte {
	to = append(to, package_+space...)
	to = append(to, p...)
	to = append(to, newline...)
	return to
}

type Paren struct {
	Inner Gen
}

func (p Paren) Append(to []byte) []byte {
	to = append(to, paren1...)
	to = Maybe{p.Inner}.Append(to)
	to = append(to, paren2...)
	return to
}

// Param is one function parameter. Adjacent parameters of the same type
// are fine to print in full.
type Param struct {
	What, Type Gen
}

func (p Param) Append(to []byte) []byte {
	to = p.What.Append(to)
	to = append(to, space...)
	to = p.Type.Append(to)
	return to
}

type Ptr struct {
	Type Gen
}

func (p Ptr) Append(to []byte) []byte {
	to = append(to, asterisk...)
	to = p.Type.Append(to)
	return to
}

type Quo struct {
	Expr1, Expr2 Gen
}

func (q Quo) Append(to []byte) []byte {
	to = q.Expr1.Append(to)
	to = append(to, space+slash+space...)
	to = q.Expr2.Append(to)
	return to
}

type Range struct {
	Key, Value, Expr, Body Gen
}

func (r Range) Append(to []byte) []byte {
	to = append(to, for_+space...)
	key := r.Key
	if key == nil {
		key = Blank
	}
	to = key.Append(to)
	if r.Value != nil {
		to = append(to, comma+space...)
		to = r.Value.Append(to)
	}
	to = append(to, space+define+space+range_+space...)
	to = r.Expr.Append(to)
	to = append(to, space...)
	to = Block{r.Body}.Append(to)
	return to
}

type Return struct {
	Expr Gen
}

func (r Return) Append(to []byte) []byte {
	to = append(to, return_...)
	if r.Expr != nil {
		to = append(to, space...)
		to = r.Expr.Append(to)
	}
	return to
}

type Selector struct {
	Pkg, Name string
}

func (s Selector) Append(to []byte) []byte {
	to = append(to, s.Pkg...)
	to = append(to, dot...)
	to = append(to, s.Name...)
	return to
}

type SliceExpr struct {
	Expr Gen
}

func (s SliceExpr) Append(to []byte) []byte {
	to = s.Expr.Append(to)
	to = append(to, squareBracket1+colon+squareBracket2...)
	return to
}

type SliceType struct {
	Elem Gen
}

func (s SliceType) Append(to []byte) []byte {
	to = append(to, squareBracket1+squareBracket2...)
	to = s.Elem.Append(to)
	return to
}

type Spaced []Gen

func (s Spaced) Append(to []byte) []byte {
	first := true
	for _, gen := range s {
		if gen == nil {
			continue
		}
		if first {
			first = false
		} else {
			to = append(to, space...)
		}
		to = gen.Append(to)
	}
	return to
}

// Stmts ends every statement with a newline.
type Stmts []Gen

func (s Stmts) Append(to []byte) []byte {
	for _, gen := range s {
		if gen == nil {
			continue
		}
		n1 := len(to)
		to = gen.Append(to)
		n2 := len(to)
		if n1 < n2 && to[n2-1] != newline[0] {
			to = append(to, newline...)
		}
	}
	return to
}

type StructType struct {
	Fields Gen
}

func (s StructType) Append(to []byte) []byte {
	to = append(to, struct_+space...)
	to = Block{s.Fields}.Append(to)
	return to
}

type Sub struct {
	Expr1, Expr2 Gen
}

func (s Sub) Append(to []byte) []byte {
	to = s.Expr1.Append(to)
	to = append(to, space+minus+space...)
	to = s.Expr2.Append(to)
	return to
}

type Table struct {
	Flat []Gen
	Cols int
}

func (t Table) Append(to []byte) []byte {
	last := t.Cols - 1
	if last < 0 {
		return to
	}
	var text []byte
	sizes := make([]int, 0, len(t.Flat))
	maxes := make([]int, last)
	col := 0
	for i := range t.Flat {
		if col == last {
			col = 0
			continue
		}
		was := len(text)
		if gen := t.Flat[i]; gen != nil {
			text = gen.Append(text)
		}
		size := len(text) - was
		sizes = append(sizes, size)
		if maxes[col] < size {
			maxes[col] = size
		}
		col += 1
	}
	most := 0
	for _, max := range maxes {
		if most < max {
			most = max
		}
	}
	sp, nl := space[0], newline[0]
	spaces := make([]byte, most+1)
	for i := range spaces {
		spaces[i] = sp
	}
	for i := range t.Flat {
		if col == last {
			was := len(to)
			if gen := t.Flat[i]; gen != nil {
				to = gen.Append(to)
			}
			now := len(to)
			if was >= now || to[now-1] != nl {
				to = append(to, nl)
			}
			col = 0
			continue
		}
		size := sizes[0]
		sizes = sizes[1:]
		to = append(to, text[:size]...)
		text = text[size:]
		fill := maxes[col] - size + 1
		to = append(to, spaces[:fill]...)
		col += 1
	}
	return to
}

type TypeDef struct {
	Name string
	Type Gen
}

func (t TypeDef) Append(to []byte) []byte {
	to = append(to, type_+space...)
	to = append(to, t.Name...)
	to = append(to, space...)
	to = t.Type.Append(to)
	to = append(to, newline...)
	return to
}

type Var struct {
	What, Type, Init Gen
}

func (v Var) Append(to []byte) []byte {
	to = append(to, var_+space...)
	to = v.What.Append(to)
	if v.Type != nil {
		to = append(to, space...)
		to = v.Type.Append(to)
	}
	if v.Init != nil {
		to = append(to, space+assign+space...)
		to = v.Init.Append(to)
	}
	return to
}

type Vb string

func (v Vb) Append(to []byte) []byte {
	return append(to, v...)
}

var (
	Blank    Gen = Vb("_")
	Float64  Gen = Vb("float64")
	Int      Gen = Vb("int")
	Newline  Gen = Vb(newline)
	Nil      Gen = Vb("nil")
	Zero     Gen = Vb("0")
	ZeroF    Gen = Vb("0.0")
	IntSlice Gen = SliceType{Int}
)
