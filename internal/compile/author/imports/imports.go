// Package imports writes the import declarations of generated files.
package imports

import (
	"path"

	"nn2go/internal/compile/author/gogen"
)

// DefaultRuntime is the import path of the runtime package.
const DefaultRuntime = "nn2go/infer"

// Name is the identifier generated code uses for the runtime package,
// whatever its import path.
const Name = "infer"

var alwaysTest = [...]string{
	"math",
	"testing",
	"time",
}

func runtime(importPath string) gogen.Gen {
	imp := gogen.Import{Path: importPath}
	if path.Base(importPath) != Name {
		imp.Alias = Name
	}
	return imp
}

func Code(importPath string) gogen.Gen {
	return gogen.Gens{
		gogen.Imports{runtime(importPath)},
		gogen.Newline,
	}
}

func Test(importPath string) gogen.Gen {
	var is gogen.Imports
	for _, name := range &alwaysTest {
		is = append(is, gogen.Import{Path: name})
	}
	is = append(is, nil, runtime(importPath))
	return gogen.Gens{is, gogen.Newline}
}
