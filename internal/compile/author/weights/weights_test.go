package weights

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nn2go/internal/fail"
	"nn2go/internal/model"
	"nn2go/internal/nmsrc"
	"nn2go/internal/raw"
)

func text(g interface{ Append([]byte) []byte }) string {
	if g == nil {
		return ""
	}
	return string(g.Append(nil))
}

// floats parses a literal and returns every float it holds, in order.
func floats(t *testing.T, src string) []float64 {
	expr, err := parser.ParseExpr(src)
	require.NoError(t, err)
	var got []float64
	ast.Inspect(expr, func(n ast.Node) bool {
		switch at := n.(type) {
		case *ast.KeyValueExpr:
			if id, ok := at.Key.(*ast.Ident); ok && id.Name != "Array" {
				return false
			}
		case *ast.UnaryExpr:
			lit := at.X.(*ast.BasicLit)
			v, err := strconv.ParseFloat(at.Op.String()+lit.Value, 64)
			require.NoError(t, err)
			got = append(got, v)
			return false
		case *ast.BasicLit:
			if at.Kind == token.INT || at.Kind == token.FLOAT {
				v, err := strconv.ParseFloat(at.Value, 64)
				require.NoError(t, err)
				got = append(got, v)
			}
		}
		return true
	})
	return got
}

func TestLiteralIsDeterministicAndExact(t *testing.T) {
	array := []float64{0, -1.5, math.Pi, 1e-300, -math.MaxFloat64, 0.1, 2, 3, 4}
	shape := []int{3, 3}
	a := text(Literal("infer", array, shape))
	b := text(Literal("infer", append([]float64(nil), array...), []int{3, 3}))
	assert.Equal(t, a, b)
	assert.Contains(t, a, "Ndim: 2,")
	assert.Contains(t, a, "Numel: 9,")
	assert.Contains(t, a, "Shape: [infer.MaxNdim]int{3, 3},")
	assert.Equal(t, array, floats(t, a))
}

func param(tensor, shape string, data ...float64) string {
	return "Param Tensor=" + tensor + " Shape=" + shape + " Data=" + raw.EncodeData(data) + "\n"
}

const lstmGraph = "Config Name=seq Batch=1\n" +
	"Input ToTensor=x Shape=3x2\n" +
	"LSTM FromTensor=x ToTensor=y Units=1 Activation=Tanh RecurrentActivation=Sigmoid " +
	"ReturnSequences=false GoBackwards=false Stateful=true\n" +
	"Output FromTensor=y\n"

func lstmParams() string {
	return param("yWeights", "4x2x1", 1, 2, 3, 4, 5, 6, 7, 8) +
		param("yRecurrentWeights", "4x1x1", 1, 1, 1, 1) +
		param("yBiases", "4x1", 0, 1, 0, 0)
}

func TestStatefulStorage(t *testing.T) {
	m, err := model.Parse(lstmGraph + lstmParams())
	require.NoError(t, err)
	st, err := Compile(m, "seq", "infer", nmsrc.New())
	require.NoError(t, err)

	persistent := text(st.Persistent)
	assert.Contains(t, persistent, "type seqStates struct {\ny [2]float64 // LSTM at line 3\n}\n")
	assert.Contains(t, persistent, "var seqState seqStates")

	transient := text(st.Transient)
	assert.Contains(t, transient, "xView := infer.View(x.Array, 3, 2)")
	assert.Contains(t, transient, "yView := infer.View(y.Array, 1)")
	assert.Contains(t, transient, "yState := infer.View(seqState.y[:], 2)")
	assert.Contains(t, transient, "yWork := infer.Make(8)")
	assert.Equal(t, "xView", st.Data["x"])
	assert.Equal(t, "yView", st.Data["y"])
	assert.Equal(t, "seqYWeights", st.Param["yWeights"])

	params := text(st.Params)
	assert.Less(t, strings.Index(params, "var seqYBiases"), strings.Index(params, "var seqYRecurrentWeights"))
	assert.Contains(t, params, "// yWeights 4x2x1\n")
}

func TestStatelessStorage(t *testing.T) {
	m, err := model.Parse("Config Name=mlp Batch=0\n" +
		"Input ToTensor=x Shape=2\n" +
		"Dense FromTensor=x ToTensor=hidden Units=2 Activation=ReLU\n" +
		"Dense FromTensor=hidden ToTensor=y Units=1 Activation=Linear\n" +
		"Output FromTensor=y\n" +
		param("hiddenWeights", "2x2", 1, 0, 0, 1) + param("hiddenBiases", "2", 0, 0) +
		param("yWeights", "2x1", 1, 1) + param("yBiases", "1", 0))
	require.NoError(t, err)
	nms := nmsrc.New()
	nms.Claim("xView")
	st, err := Compile(m, "mlp", "infer", nms)
	require.NoError(t, err)
	assert.Nil(t, st.Persistent)
	assert.Empty(t, st.State)
	assert.Equal(t, "xView1", st.Data["x"])
	assert.Equal(t, "hidden", st.Data["hidden"])
	transient := text(st.Transient)
	assert.Contains(t, transient, "hidden := infer.Make(2)")
	assert.Contains(t, transient, "// Dense at line 3\n")
}

func TestTensorNameCollision(t *testing.T) {
	m, err := model.Parse(strings.NewReplacer(
		"Input ToTensor=x", "Input ToTensor=seqState",
		"FromTensor=x", "FromTensor=seqState",
	).Replace(lstmGraph) + lstmParams())
	require.NoError(t, err)
	_, err = Compile(m, "seq", "infer", nmsrc.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fail.ErrValidation))
	assert.Contains(t, err.Error(), "line 2: seqState: tensor name is taken")
}
