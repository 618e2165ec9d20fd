package example

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"nn2go/internal/example/pcg"
	"nn2go/internal/model"
	"nn2go/internal/nmsrc"
	"nn2go/internal/raw"
)

type state struct {
	text []byte
	nms  nmsrc.Src
	src  *pcg.Src
}

func newState(name string, batch int, seed uint64) *state {
	st := &state{
		nms: nmsrc.New(),
		src: pcg.New(seed, seed*31),
	}
	st.line("Config Name=" + name + " Batch=" + strconv.Itoa(batch))
	return st
}

func (st *state) line(a string) {
	st.text = append(st.text, a...)
	st.text = append(st.text, '\n')
}

func shape(dims ...int) string {
	s := make([]string, len(dims))
	for i, d := range dims {
		s[i] = strconv.Itoa(d)
	}
	return strings.Join(s, "x")
}

func (st *state) input(prefix string, dims ...int) string {
	t := st.nms.Name(prefix)
	st.line("Input ToTensor=" + t + " Shape=" + shape(dims...))
	return t
}

func (st *state) output(t string) {
	st.line("Output FromTensor=" + t)
}

func (st *state) dense(t1 string, units int, act raw.ActivationKind) string {
	t2 := st.nms.Name("dense")
	st.line("Dense FromTensor=" + t1 + " ToTensor=" + t2 + " Units=" + strconv.Itoa(units) +
		" Activation=" + raw.ActivationStrings[act])
	return t2
}

func (st *state) bn(t1 string) string {
	t2 := st.nms.Name("bn")
	st.line("BatchNorm FromTensor=" + t1 + " ToTensor=" + t2 + " Epsilon=0.001")
	return t2
}

// params appends one Param node per parameter tensor, sized by the
// layers. Weights are scaled by the fan-in so that activations stay near
// unit size, and variances are kept positive.
func (st *state) params() []byte {
	nodes, err := raw.Parse(string(st.text))
	if err != nil {
		panic(err)
	}
	expect, err := model.Expect(nodes)
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(expect))
	for name := range expect {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		dims := expect[name]
		data := make([]float64, model.Numel(dims))
		fanIn := len(data) / dims[len(dims)-1]
		limit := 1 / math.Sqrt(float64(max(fanIn, 1)))
		for i := range data {
			if strings.HasSuffix(name, "Variances") {
				data[i] = st.src.Float(0.5, 1.5)
			} else {
				data[i] = st.src.Float(-limit, limit)
			}
		}
		st.line("Param Tensor=" + name + " Shape=" + shape(dims...) + " Data=" + raw.EncodeData(data))
	}
	return st.text
}
