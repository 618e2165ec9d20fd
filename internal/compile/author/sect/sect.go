// Package sect collects the generated code and test files section by
// section, so the layout of each file is fixed by the Section order rather
// than by the order in which generators run.
package sect

import (
	"go/format"

	"github.com/pkg/errors"

	"nn2go/internal/compile/author/gogen"
)

type Section int

const (
	CodeFirst Section = iota
	CodeHeader
	CodePackage
	CodeImports
	CodeState
	CodeParams
	CodeSignature
	CodeTransient
	CodeBody
	CodeClose
	CodeReset
	CodeLast
	TestFirst
	TestHeader
	TestPackage
	TestImports
	TestHelper
	TestSignature
	TestLiterals
	TestCalls
	TestErrors
	TestAssert
	TestClose
	TestLast
	sectionCount
)

type Sections struct {
	a [sectionCount][]byte
}

func (s *Sections) Append(to Section, from ...gogen.Gen) {
	for _, gen := range from {
		if gen != nil {
			s.a[to] = gen.Append(s.a[to])
		}
	}
}

// Len is the number of bytes in a section so far.
func (s *Sections) Len(of Section) int {
	return len(s.a[of])
}

// Code joins the sections of the code file and formats the result.
func (s *Sections) Code() ([]byte, error) {
	return gofmt(s.join(CodeFirst, CodeLast))
}

// Test joins the sections of the test file and formats the result.
func (s *Sections) Test() ([]byte, error) {
	return gofmt(s.join(TestFirst, TestLast))
}

func gofmt(src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, errors.Wrap(err, "formatting generated code")
	}
	return out, nil
}

func (s *Sections) join(first, last Section) (to []byte) {
	const (
		brace1  = '{'
		brace2  = '}'
		newline = '\n'
		paren1  = '('
		paren2  = ')'
		tab     = '\t'
	)
	var prev byte
	var indent []byte
	for _, from := range s.a[first : last+1] {
		for _, curr := range from {
			switch curr {
			case newline:
				if prev == brace1 || prev == paren1 {
					indent = append(indent, tab)
				}
			default:
				if prev == newline {
					if (curr == brace2 || curr == paren2) && len(indent) != 0 {
						indent = indent[:len(indent)-1]
					}
					to = append(to, indent...)
				}
			}
			to = append(to, curr)
			prev = curr
		}
	}
	return
}
