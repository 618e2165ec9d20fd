package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "import (\n\"nn2go/infer\"\n)\n\n", string(Code(DefaultRuntime).Append(nil)))
	assert.Equal(t, "import (\ninfer \"example.com/rt/v2\"\n)\n\n",
		string(Code("example.com/rt/v2").Append(nil)))
}

func TestTest(t *testing.T) {
	assert.Equal(t, "import (\n\"math\"\n\"testing\"\n\"time\"\n\n\"nn2go/infer\"\n)\n\n",
		string(Test(DefaultRuntime).Append(nil)))
}
