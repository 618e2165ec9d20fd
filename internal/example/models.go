package example

import (
	"strconv"

	"nn2go/internal/raw"
)

// MLP is a classifier over eight features.
func MLP() []byte {
	st := newState("mlp", 0, 1)
	x := st.input("features", 8)
	h := st.bn(st.dense(x, 16, raw.ReLU))
	h = st.dense(h, 16, raw.ELU)
	st.output(st.dense(h, 4, raw.Softmax))
	return st.params()
}

// ConvNet classifies 12x12 grayscale images.
func ConvNet() []byte {
	st := newState("convnet", 0, 2)
	img := st.input("image", 12, 12, 1)
	conv := func(t1 string, filters, size int) string {
		t2 := st.nms.Name("conv")
		n, s := strconv.Itoa(filters), strconv.Itoa(size)
		st.line("Conv2D FromTensor=" + t1 + " ToTensor=" + t2 + " Filters=" + n +
			" FilterH=" + s + " FilterW=" + s + " StrideH=1 StrideW=1 DilationH=1 DilationW=1" +
			" Activation=ReLU")
		return t2
	}
	padded := st.nms.Name("padded")
	st.line("ZeroPad2D FromTensor=" + img + " ToTensor=" + padded + " Top=1 Bottom=1 Left=1 Right=1")
	t := conv(padded, 4, 3)
	pool := st.nms.Name("pool")
	st.line("Pool2D FromTensor=" + t + " ToTensor=" + pool + " Kind=Max SizeH=2 SizeW=2 StrideH=2 StrideW=2")
	t = conv(pool, 8, 2)
	global := st.nms.Name("global")
	st.line("GlobalPool FromTensor=" + t + " ToTensor=" + global + " Kind=Avg")
	st.output(st.dense(global, 3, raw.Softmax))
	return st.params()
}

// LSTM forecasts from a window of six steps and keeps its state between
// calls, so consecutive windows form one long sequence.
func LSTM() []byte {
	st := newState("forecast", 1, 3)
	x := st.input("window", 6, 3)
	lstm := st.nms.Name("lstm")
	st.line("LSTM FromTensor=" + x + " ToTensor=" + lstm + " Units=4 Activation=Tanh " +
		"RecurrentActivation=Sigmoid ReturnSequences=false GoBackwards=false Stateful=true")
	st.output(st.dense(lstm, 2, raw.Linear))
	return st.params()
}

// GRU scores a sequence of seven tokens from a vocabulary of twenty.
func GRU() []byte {
	st := newState("sentiment", 0, 4)
	ids := st.input("tokens", 7)
	emb := st.nms.Name("embed")
	st.line("Embedding FromTensor=" + ids + " ToTensor=" + emb + " Vocab=20 Units=4")
	gru := st.nms.Name("gru")
	st.line("GRU FromTensor=" + emb + " ToTensor=" + gru + " Units=5 Activation=Tanh " +
		"RecurrentActivation=HardSigmoid ReturnSequences=true GoBackwards=true Stateful=false " +
		"ResetAfter=true")
	global := st.nms.Name("global")
	st.line("GlobalPool FromTensor=" + gru + " ToTensor=" + global + " Kind=Max")
	st.output(st.dense(global, 1, raw.Sigmoid))
	return st.params()
}

// Merge has two inputs and two outputs.
func Merge() []byte {
	st := newState("merge", 0, 5)
	a := st.dense(st.input("left", 4), 6, raw.Tanh)
	b := st.dense(st.input("right", 4), 6, raw.Tanh)
	prod := st.nms.Name("product")
	st.line("Merge FromTensor1=" + a + " FromTensor2=" + b + " ToTensor=" + prod + " Kind=Multiply")
	cat := st.nms.Name("concat")
	st.line("Concat FromTensor1=" + prod + " FromTensor2=" + a + " ToTensor=" + cat + " Axis=-1")
	st.output(st.dense(cat, 2, raw.Linear))
	st.output(prod)
	return st.params()
}
