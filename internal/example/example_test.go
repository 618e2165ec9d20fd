package example

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nn2go/internal/compile"
	"nn2go/internal/model"
)

func TestEveryExampleIsValid(t *testing.T) {
	for _, name := range Names() {
		text := Generate(name)
		require.NotNil(t, text, name)
		m, err := model.Parse(string(text))
		require.NoError(t, err, "%s\n%s", name, text)
		assert.Equal(t, name == "LSTM", m.Stateful(), name)
	}
	assert.Nil(t, Generate("ResNet50"))
}

func TestExamplesAreFixed(t *testing.T) {
	for _, name := range Names() {
		assert.True(t, bytes.Equal(Generate(name), Generate(name)), name)
	}
}

func TestExamplesCompile(t *testing.T) {
	for _, name := range Names() {
		res, err := compile.Compile(context.Background(), string(Generate(name)),
			compile.Options{Dir: t.TempDir(), NumTests: 4})
		require.NoError(t, err, name)
		assert.NotEmpty(t, res.Code)
		assert.NotEmpty(t, res.Test)
	}
}

func TestMergeHasTwoOutputs(t *testing.T) {
	m, err := model.Parse(string(Merge()))
	require.NoError(t, err)
	require.Len(t, m.Outputs, 2)
	assert.Equal(t, []int{2}, m.Shapes[m.Outputs[0].FromTensor])
	assert.Equal(t, []int{6}, m.Shapes[m.Outputs[1].FromTensor])
}

func TestConvNetKeepsImageSize(t *testing.T) {
	m, err := model.Parse(string(ConvNet()))
	require.NoError(t, err)
	assert.Equal(t, []int{14, 14, 1}, m.Shapes["padded1"])
	assert.Equal(t, []int{12, 12, 4}, m.Shapes["conv1"])
}
