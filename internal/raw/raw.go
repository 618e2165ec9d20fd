// Package raw parses the graph language. Each node is a head word followed
// by every one of its Label=value segments, in order, separated by white
// space. Nodes may span lines.
package raw

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"nn2go/internal/fail"
)

type Node interface {
	LineNumber() int
	FromTensors() []string
	ToTensors() []string
	ParamTensors() []string
}

type Seg struct {
	Doc     string
	Label   string
	Default string
	Choices []string
	Parse   func(string) (interface{}, error)
}

type Tail struct {
	Doc   string
	Segs  []*Seg
	Parse func(int, []interface{}) Node
}

var Guide = make(map[string]*Tail)

const Binder = "="

func Parse(text string) ([]Node, error) {
	const (
		wln = "line %d: "
		eg  = wln + "expected %s" + Binder + "%s (for example)"
	)
	if n := len(text); n == 0 {
		return nil, nil
	} else if text[n-1] != '\n' {
		return nil, fail.Validation("expected final newline")
	}
	var nodes []Node
	const (
		headSpace int = iota
		headToken
		tailSpace
		tailToken
	)
	phase := headSpace
	i, lineHead, line := 0, 0, 1
	var tail *Tail
	var vals []interface{}
	for j, jj := range text {
		if !unicode.IsSpace(jj) {
			if phase == headSpace {
				phase, i, lineHead = headToken, j, line
			} else if phase == tailSpace {
				phase, i = tailToken, j
			}
			continue
		}
		if phase == headToken {
			phase = tailSpace
			if tail = Guide[text[i:j]]; tail == nil {
				return nil, fail.Validation(wln+"%s", line, errExpected(Heads()))
			}
			if len(tail.Segs) == 0 {
				nodes = append(nodes, tail.Parse(lineHead, nil))
				phase = headSpace
			}
		} else if phase == tailToken {
			seg := tail.Segs[len(vals)]
			label, value, ok := strings.Cut(text[i:j], Binder)
			if !ok || label != seg.Label {
				return nil, fail.Validation(eg, line, seg.Label, seg.Default)
			}
			val, err := seg.Parse(value)
			if err != nil {
				return nil, fail.Validation(wln+"%s: %s", line, seg.Label, err)
			}
			vals = append(vals, val)
			if len(vals) == len(tail.Segs) {
				nodes = append(nodes, tail.Parse(lineHead, vals))
				phase, vals = headSpace, vals[:0]
			} else {
				phase = tailSpace
			}
		}
		if jj == '\n' {
			line += 1
		}
	}
	if phase == tailSpace {
		seg := tail.Segs[len(vals)]
		return nil, fail.Validation(eg, line, seg.Label, seg.Default)
	}
	return nodes, nil
}

// Heads lists the node heads in sorted order.
func Heads() []string {
	heads := make([]string, 0, len(Guide))
	for head := range Guide {
		heads = append(heads, head)
	}
	sort.Strings(heads)
	return heads
}

// HeadOf is the head of the line that node was parsed from.
func HeadOf(node Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

const (
	identStr  = `^[a-zA-Z][a-zA-Z0-9]*$`
	nonNegStr = `^(0|[1-9][0-9]*)$`
	posIntStr = `^[1-9][0-9]*$`
	intStr    = `^-?(0|[1-9][0-9]*)$`
	floatStr  = `^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`
	shapeStr  = `^[1-9][0-9]*(x[1-9][0-9]*)*$`
	axesStr   = `^(0|[1-9][0-9]*)(,(0|[1-9][0-9]*))*$`
)

var (
	identRE  = regexp.MustCompile(identStr)
	nonNegRE = regexp.MustCompile(nonNegStr)
	posIntRE = regexp.MustCompile(posIntStr)
	intRE    = regexp.MustCompile(intStr)
	floatRE  = regexp.MustCompile(floatStr)
	shapeRE  = regexp.MustCompile(shapeStr)
	axesRE   = regexp.MustCompile(axesStr)
)

const (
	identDoc  = "Must be a letter followed by zero or more letters/digits: " + identStr
	nonNegDoc = "Must be a non-negative integer: " + nonNegStr
	posIntDoc = "Must be a positive integer: " + posIntStr
	intDoc    = "Must be an integer: " + intStr
	floatDoc  = "Must be a decimal float: " + floatStr
	shapeDoc  = "Positive dimensions separated by x, outermost first: " + shapeStr
	axesDoc   = "Zero-based axis numbers separated by commas: " + axesStr
	boolDoc   = "Must be true or false."
)

// MaxRank bounds the rank of every data tensor, excluding the batch axis.
const MaxRank = 4

var (
	errGap      = errors.New("unexpected gap after " + Binder)
	errRejected = errors.New("rejected")
	errPartial  = errors.New("partial float32 value")
)

func errMatch(a string) error {
	return errors.New("does not match " + a)
}

func errExpected(a []string) error {
	return errors.New("expected " + strings.Join(a, " or "))
}

func ident(a string) (interface{}, error) {
	if !identRE.MatchString(a) {
		if a == "" {
			return nil, errGap
		}
		return nil, errMatch(identStr)
	}
	return a, nil
}

func nonNeg(a string, r int) (interface{}, error) {
	if !nonNegRE.MatchString(a) {
		if a == "" {
			return nil, errGap
		}
		return nil, errMatch(nonNegStr)
	}
	n, err := strconv.Atoi(a)
	if err != nil {
		return nil, err
	}
	if n >= r {
		return nil, errRejected
	}
	return n, nil
}

func posInt(a string, r int) (interface{}, error) {
	if !posIntRE.MatchString(a) {
		if a == "" {
			return nil, errGap
		}
		return nil, errMatch(posIntStr)
	}
	n, err := strconv.Atoi(a)
	if err != nil {
		return nil, err
	}
	if n >= r {
		return nil, errRejected
	}
	return n, nil
}

func integer(a string, lo, hi int) (interface{}, error) {
	if !intRE.MatchString(a) {
		if a == "" {
			return nil, errGap
		}
		return nil, errMatch(intStr)
	}
	n, err := strconv.Atoi(a)
	if err != nil {
		return nil, err
	}
	if n < lo || n >= hi {
		return nil, errRejected
	}
	return n, nil
}

func float(a string) (interface{}, error) {
	if !floatRE.MatchString(a) {
		if a == "" {
			return nil, errGap
		}
		return nil, errMatch(floatStr)
	}
	n, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func boolean(a string) (interface{}, error) {
	switch a {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "":
		return nil, errGap
	}
	return nil, errExpected([]string{"true", "false"})
}

func shape(a string) (interface{}, error) {
	if !shapeRE.MatchString(a) {
		if a == "" {
			return nil, errGap
		}
		return nil, errMatch(shapeStr)
	}
	parts := strings.Split(a, "x")
	if len(parts) > MaxRank {
		return nil, errRejected
	}
	dims := make([]int, len(parts))
	for i, part := range parts {
		n, err := posInt(part, 1<<31)
		if err != nil {
			return nil, err
		}
		dims[i] = n.(int)
	}
	return dims, nil
}

func axes(a string) (interface{}, error) {
	if !axesRE.MatchString(a) {
		if a == "" {
			return nil, errGap
		}
		return nil, errMatch(axesStr)
	}
	parts := strings.Split(a, ",")
	if len(parts) > MaxRank {
		return nil, errRejected
	}
	dims := make([]int, len(parts))
	for i, part := range parts {
		n, err := nonNeg(part, MaxRank)
		if err != nil {
			return nil, err
		}
		dims[i] = n.(int)
	}
	return dims, nil
}

func choice(a string, choices []string) (interface{}, error) {
	for i, s := range choices {
		if a == s {
			return i, nil
		}
	}
	if a == "" {
		return nil, errGap
	}
	return nil, errExpected(choices)
}

// EncodeData renders parameter values as the Data of a Param node:
// little-endian float32 in unpadded standard base64.
func EncodeData(values []float64) string {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(float32(v)))
	}
	return base64.RawStdEncoding.EncodeToString(buf)
}

func data(a string) (interface{}, error) {
	if a == "" {
		return nil, errGap
	}
	buf, err := base64.RawStdEncoding.DecodeString(a)
	if err != nil {
		return nil, err
	}
	if len(buf)%4 != 0 {
		return nil, errPartial
	}
	values := make([]float64, len(buf)/4)
	for i := range values {
		bits := binary.LittleEndian.Uint32(buf[4*i:])
		values[i] = float64(math.Float32frombits(bits))
	}
	return values, nil
}
