package ioname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nn2go/internal/model"
)

func TestResolveFollowsFileOrder(t *testing.T) {
	m, err := model.Parse("Config Name=two Batch=0\n" +
		"Output FromTensor=sum\n" +
		"Input ToTensor=b Shape=3\n" +
		"Output FromTensor=diff\n" +
		"Input ToTensor=a Shape=3\n" +
		"Merge FromTensor1=a FromTensor2=b ToTensor=diff Kind=Subtract\n" +
		"Merge FromTensor1=a FromTensor2=b ToTensor=sum Kind=Add\n")
	require.NoError(t, err)
	ins, outs := Resolve(m)
	assert.Equal(t, []string{"b", "a"}, ins)
	assert.Equal(t, []string{"sum", "diff"}, outs)

	assert.Equal(t, "b *infer.Tensor, a *infer.Tensor, sum *infer.Tensor, diff *infer.Tensor",
		string(Params("infer", ins, outs).Append(nil)))
	assert.Equal(t, "&x1, &y1", string(Args([]string{"x1"}, []string{"y1"}).Append(nil)))
}
