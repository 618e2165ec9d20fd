package tobuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGen(t *testing.T) {
	assert.Equal(t, "// "+Marker+"\n//\n"+
		"// To check this file against the model it was compiled from:\n"+
		"// go test -run '^TestMlp$' .\n\n", string(Gen("mlp").Append(nil)))
}

func TestTestName(t *testing.T) {
	assert.Equal(t, "TestMlp", TestName("mlp"))
	assert.Equal(t, "TestPredict", TestName("Predict"))
	assert.Equal(t, "Test_x", TestName("_x"))
}
