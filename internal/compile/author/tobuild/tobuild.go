package tobuild

import (
	"nn2go/internal/compile/author/gogen"
)

// Marker is recognized by go vet and by editors as the sign of a file that
// must not be edited by hand.
const Marker = "Code generated by nn2go. DO NOT EDIT."

// Gen is the header of the code file: the marker and how to run the
// generated test.
func Gen(fn string) gogen.Gen {
	return gogen.Gens{
		gogen.Comment{
			Marker,
			"",
			"To check this file against the model it was compiled from:",
			"go test -run '^" + TestName(fn) + "$' .",
		},
		gogen.Newline,
	}
}

// Header is the header of the test file.
func Header() gogen.Gen {
	return gogen.Gens{
		gogen.Comment{Marker},
		gogen.Newline,
	}
}

// TestName is the name of the generated test function.
func TestName(fn string) string {
	return "Test" + upper(fn)
}

func upper(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
