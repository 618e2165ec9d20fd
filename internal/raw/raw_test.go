package raw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nn2go/internal/fail"
)

func TestParseNodes(t *testing.T) {
	text := "Config Name=mlp Batch=0\n" +
		"Input ToTensor=x Shape=4\n" +
		"Dense FromTensor=x ToTensor=hidden\n" +
		"\tUnits=3 Activation=ReLU\n" +
		"Param Tensor=hiddenWeights Shape=4x3 Data=" + EncodeData(make([]float64, 12)) + "\n" +
		"LSTM FromTensor=seq ToTensor=lstm Units=2 Activation=Tanh RecurrentActivation=HardSigmoid " +
		"ReturnSequences=true GoBackwards=false Stateful=true\n" +
		"GRU FromTensor=seq ToTensor=gru Units=2 Activation=Tanh RecurrentActivation=Sigmoid " +
		"ReturnSequences=false GoBackwards=true Stateful=false ResetAfter=true\n" +
		"Concat FromTensor1=a FromTensor2=b ToTensor=c Axis=-1\n" +
		"Output FromTensor=hidden\n"
	nodes, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, nodes, 8)

	cfg := nodes[0].(*Config)
	assert.Equal(t, "mlp", cfg.Name)
	assert.Equal(t, 0, cfg.Batch)

	in := nodes[1].(*Input)
	assert.Equal(t, []int{4}, in.Shape)
	assert.Equal(t, []string{"x"}, in.ToTensors())

	dense := nodes[2].(*Dense)
	assert.Equal(t, 3, dense.LineNum)
	assert.Equal(t, ReLU, dense.Activation)
	assert.Equal(t, []string{"hiddenWeights", "hiddenBiases"}, dense.ParamTensors())

	param := nodes[3].(*Param)
	assert.Equal(t, 5, param.LineNum)
	assert.Equal(t, []int{4, 3}, param.Shape)
	assert.Len(t, param.Data, 12)

	lstm := nodes[4].(*LSTM)
	assert.Equal(t, HardSigmoid, lstm.RecurrentActivation)
	assert.True(t, lstm.ReturnSequences)
	assert.True(t, lstm.Stateful)
	assert.Equal(t, "lstmRecurrentWeights", lstm.RecurrentWeightsTensor)

	gru := nodes[5].(*GRU)
	assert.True(t, gru.GoBackwards)
	assert.True(t, gru.ResetAfter)
	assert.False(t, gru.Stateful)

	assert.Equal(t, -1, nodes[6].(*Concat).Axis)
	assert.Equal(t, "GRU", HeadOf(nodes[5]))
	assert.Equal(t, "Param", HeadOf(nodes[3]))
	assert.Equal(t, []string{"hidden"}, nodes[7].FromTensors())
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name, text, msg string
	}{
		{"final newline", "Config Name=a Batch=0", "expected final newline"},
		{"unknown head", "Config Name=a Batch=0\nBogus\n", "line 2: expected Activation or BatchNorm"},
		{"wrong label", "Input Shape=4 ToTensor=x\n", "line 1: expected ToTensor=x (for example)"},
		{"bad ident", "Output FromTensor=2y\n", "line 1: FromTensor: does not match"},
		{"gap", "Output FromTensor=\n", "line 1: FromTensor: unexpected gap after ="},
		{"missing segment", "Flatten FromTensor=a\n", "line 2: expected ToTensor=to (for example)"},
		{"rank", "Input ToTensor=x Shape=1x2x3x4x5\n", "line 1: Shape: rejected"},
		{"choice", "GlobalPool FromTensor=a ToTensor=b Kind=Sum\n", "line 1: Kind: expected Max or Avg"},
		{"positive", "RepeatVector FromTensor=a ToTensor=b N=0\n", "line 1: N: does not match"},
		{"epsilon", "BatchNorm FromTensor=a ToTensor=b Epsilon=0\n", "line 1: Epsilon: rejected"},
		{"data", "Param Tensor=w Shape=1 Data=AAA\n", "line 1: Data: partial float32 value"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, fail.ErrValidation))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestEncodeDataRoundTrip(t *testing.T) {
	values := []float64{1, -0.5, 0.25, 3e-5}
	assert.Equal(t, "AACAPw", EncodeData([]float64{1}))
	got, err := data(EncodeData(values))
	require.NoError(t, err)
	want := make([]float64, len(values))
	for i, v := range values {
		want[i] = float64(float32(v))
	}
	assert.Equal(t, want, got)
}

func TestParseZeroPad(t *testing.T) {
	nodes, err := Parse("ZeroPad2D FromTensor=a ToTensor=b Top=0 Bottom=1 Left=2 Right=3\n" +
		"ZeroPad1D FromTensor=b ToTensor=c Before=4 After=0\n")
	require.NoError(t, err)
	assert.Equal(t, &ZeroPad2D{LineNum: 1, FromTensor: "a", ToTensor: "b",
		Top: 0, Bottom: 1, Left: 2, Right: 3}, nodes[0])
	assert.Equal(t, &ZeroPad1D{LineNum: 2, FromTensor: "b", ToTensor: "c",
		Before: 4, After: 0}, nodes[1])

	_, err = Parse("ZeroPad1D FromTensor=a ToTensor=b Before=-1 After=0\n")
	assert.ErrorContains(t, err, "line 1: Before: does not match")
}

func TestGuideDefaultsParse(t *testing.T) {
	for _, head := range Heads() {
		for _, seg := range Guide[head].Segs {
			_, err := seg.Parse(seg.Default)
			assert.NoError(t, err, "%s %s", head, seg.Label)
		}
	}
}
