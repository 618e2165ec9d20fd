// Package doc renders the reference of the graph language from the same
// Guide the parser runs on, so the two cannot drift apart.
package doc

import (
	"strings"
	"unicode"

	"nn2go/internal/raw"
)

const (
	empty   = ""
	space   = " "
	dash    = "-"
	newline = "\n"
	indent  = space + space + space + space
	divider = dash + dash + dash + dash + newline
	width   = 80
)

const preamble = "A graph file has one node per line. Each line is a head followed by " +
	"Label" + raw.Binder + "value segments, all of them required and in the order shown. " +
	"Nodes may appear in any order as long as the data tensors form an acyclic graph. " +
	"The file must end with a newline."

func line(to []byte, dent, text string) []byte {
	to = append(to, dent...)
	to = append(to, text...)
	to = append(to, newline...)
	return to
}

// para wraps text at width, counting runes.
func para(to []byte, dent, text string) []byte {
	to = append(to, newline...)
	fit := width - len(dent)
	var i, j, ij, ik int
	for k, r := range text {
		if unicode.IsSpace(r) {
			if ik > fit && ij != 0 {
				to = line(to, dent, text[i:j])
				i = j + 1
				ik -= ij + 1
			}
			j, ij = k, ik
		}
		ik++
	}
	if ik > fit && ij != 0 {
		to = line(to, dent, text[i:j])
		i = j + 1
		ik -= ij + 1
	}
	if ik != 0 {
		to = line(to, dent, text[i:])
	}
	return to
}

func segDoc(seg *raw.Seg) string {
	text := seg.Label + raw.Binder + space + seg.Doc
	if len(seg.Choices) != 0 {
		text += " One of: " + strings.Join(seg.Choices, ", ") + "."
	}
	return text
}

func Bytes() (to []byte) {
	to = para(to, empty, preamble)[1:]
	for _, head := range raw.Heads() {
		tail := raw.Guide[head]
		to = append(to, newline+divider+newline...)
		to = append(to, head...)
		for _, seg := range tail.Segs {
			to = append(to, space+seg.Label+raw.Binder+seg.Default...)
		}
		to = append(to, newline...)
		to = para(to, empty, tail.Doc)
		for _, seg := range tail.Segs {
			to = para(to, indent, segDoc(seg))
		}
	}
	return
}
