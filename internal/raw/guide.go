package raw

const (
	affixWeights          = "Weights"
	affixRecurrentWeights = "RecurrentWeights"
	affixBiases           = "Biases"
	affixMeans            = "Means"
	affixVariances        = "Variances"
	affixScales           = "Scales"
	affixShifts           = "Shifts"
)

const paramsDoc = "Parameter tensors are supplied by Param nodes whose Tensor is this name with "

func fromTensor(x, y string) *Seg {
	return &Seg{
		Doc: "Read from a pre-existing data tensor with this name. " + x +
			identDoc,
		Label:   "FromTensor" + y,
		Default: "from" + y,
		Parse:   ident,
	}
}

func toTensor(x string) *Seg {
	return &Seg{
		Doc: "Write to a new data tensor with this name. " + x +
			identDoc,
		Label:   "ToTensor",
		Default: "to",
		Parse:   ident,
	}
}

func activation(label, d, x string) *Seg {
	return &Seg{
		Doc: x + "Fused LeakyReLU uses alpha 0.3 and fused ELU uses alpha 1. " +
			"Softmax normalizes along the last axis.",
		Label:   label,
		Default: d,
		Choices: ActivationStrings,
		Parse: func(a string) (interface{}, error) {
			i, err := choice(a, ActivationStrings)
			if err != nil {
				return nil, err
			}
			return ActivationKind(i.(int)), nil
		},
	}
}

func pooling(d string) *Seg {
	return &Seg{
		Doc: "The kind of pooling. " +
			PoolingStrings[Max] + " takes the largest value in each window and " +
			PoolingStrings[Avg] + " takes the mean.",
		Label:   "Kind",
		Default: d,
		Choices: PoolingStrings,
		Parse: func(a string) (interface{}, error) {
			i, err := choice(a, PoolingStrings)
			if err != nil {
				return nil, err
			}
			return PoolingKind(i.(int)), nil
		},
	}
}

func positive(label, d, x string, r int) *Seg {
	return &Seg{
		Doc:     x + posIntDoc,
		Label:   label,
		Default: d,
		Parse: func(a string) (interface{}, error) {
			return posInt(a, r)
		},
	}
}

func nonNegative(label, d, x string, r int) *Seg {
	return &Seg{
		Doc:     x + nonNegDoc,
		Label:   label,
		Default: d,
		Parse: func(a string) (interface{}, error) {
			return nonNeg(a, r)
		},
	}
}

func flag(label, x string) *Seg {
	return &Seg{
		Doc:     x + boolDoc,
		Label:   label,
		Default: "false",
		Choices: []string{"false", "true"},
		Parse:   boolean,
	}
}

func initConfig() {
	Guide["Config"] = &Tail{
		Doc: "Settings for the code generator. Exactly one Config node is required.",
		Segs: []*Seg{
			{
				Doc: "The default name of the generated inference function. " +
					"The command line can override it. " + identDoc,
				Label:   "Name",
				Default: "model",
				Parse:   ident,
			},
			{
				Doc: "The batch size the model was built with, or 0 if unknown. " +
					"The generated code always processes one sample per call. " +
					"A model with a stateful recurrent layer must have a batch size of 1. " +
					nonNegDoc,
				Label:   "Batch",
				Default: "0",
				Parse: func(a string) (interface{}, error) {
					return nonNeg(a, 1<<31)
				},
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Config{
				LineNum: l,
				Name:    a[0].(string),
				Batch:   a[1].(int),
			}
		},
	}
}

func initInput() {
	Guide["Input"] = &Tail{
		Doc: "Declare an input data tensor parameter for the generated inference function. " +
			"Input parameters appear in the same order as the Input nodes. " +
			"The inference code reads the input tensor memory but never writes to it.",
		Segs: []*Seg{
			{
				Doc: "A name for this input data tensor. The corresponding inference function " +
					"parameter in the generated code has the same name. " + identDoc,
				Label:   "ToTensor",
				Default: "x",
				Parse:   ident,
			},
			{
				Doc: "The shape of one sample, without the batch axis. " +
					"Data is row-major (the last dimension is innermost). " + shapeDoc,
				Label:   "Shape",
				Default: "8x4",
				Parse:   shape,
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Input{
				LineNum:  l,
				ToTensor: a[0].(string),
				Shape:    a[1].([]int),
			}
		},
	}
}

func initOutput() {
	Guide["Output"] = &Tail{
		Doc: "Declare an output data tensor parameter for the generated inference function. " +
			"Output parameters follow the input parameters, in the same order as the Output nodes. " +
			"The caller allocates the output tensor and the inference function writes into it.",
		Segs: []*Seg{
			{
				Doc: "The name of a data tensor that will be written back to the caller. " +
					"Must not be the name of an input tensor and must not be the same as another output. " +
					identDoc,
				Label:   "FromTensor",
				Default: "y",
				Parse:   ident,
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Output{
				LineNum:    l,
				FromTensor: a[0].(string),
			}
		},
	}
}

func initParam() {
	Guide["Param"] = &Tail{
		Doc: "Supply the trained values of one parameter tensor. Every parameter tensor " +
			"named by a layer must be supplied exactly once, with the shape the layer expects. " +
			"Every value must be finite.",
		Segs: []*Seg{
			{
				Doc:     "The parameter tensor name, for example dense1Weights. " + identDoc,
				Label:   "Tensor",
				Default: "dense1Weights",
				Parse:   ident,
			},
			{
				Doc:     "The shape of the parameter tensor. " + shapeDoc,
				Label:   "Shape",
				Default: "4x3",
				Parse:   shape,
			},
			{
				Doc: "The values in row-major order as little-endian 32-bit floats, " +
					"encoded in standard base64 without padding.",
				Label:   "Data",
				Default: "AACAPw",
				Parse:   data,
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Param{
				LineNum: l,
				Tensor:  a[0].(string),
				Shape:   a[1].([]int),
				Data:    a[2].([]float64),
			}
		},
	}
}

func initActivation() {
	Guide["Activation"] = &Tail{
		Doc: "Apply an activation function. ToTensor has the shape of FromTensor.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			activation("Kind", ActivationStrings[ReLU], "The activation function. "),
			{
				Doc: "The alpha of " + ActivationStrings[LeakyReLU] + " and " +
					ActivationStrings[ELU] + ". Ignored by the other kinds. " + floatDoc,
				Label:   "Param",
				Default: "0",
				Parse:   float,
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Activation{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				Kind:       a[2].(ActivationKind),
				Param:      a[3].(float64),
			}
		},
	}
}

func initDense() {
	Guide["Dense"] = &Tail{
		Doc: "A fully connected layer applied along the last axis of FromTensor. " +
			"If FromTensor has shape ...xC then ToTensor has shape ...xUnits. " +
			"The weight tensor has shape CxUnits and the bias tensor has shape Units.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(paramsDoc + "\"" + affixWeights + "\" and \"" + affixBiases + "\" appended. "),
			positive("Units", "16", "The size of the last axis of ToTensor. ", 1<<24),
			activation("Activation", ActivationStrings[Linear], "The activation applied to the result. "),
		},
		Parse: func(l int, a []interface{}) Node {
			t := a[1].(string)
			return &Dense{
				LineNum:       l,
				FromTensor:    a[0].(string),
				ToTensor:      t,
				WeightsTensor: t + affixWeights,
				BiasesTensor:  t + affixBiases,
				Units:         a[2].(int),
				Activation:    a[3].(ActivationKind),
			}
		},
	}
}

func initBatchNorm() {
	Guide["BatchNorm"] = &Tail{
		Doc: "Batch normalization along the last axis with frozen statistics. " +
			"Each element X selects, by its last-axis coordinate, a mean M, a variance V, " +
			"a scale S and a shift H. Then Y=S*(X-M)/SQRT(V+E)+H where E is epsilon.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(paramsDoc + "\"" + affixMeans + "\", \"" + affixVariances + "\", \"" +
				affixScales + "\" and \"" + affixShifts + "\" appended, " +
				"each with one value per last-axis channel. "),
			{
				Doc:     "A small positive number added to the variance. " + floatDoc,
				Label:   "Epsilon",
				Default: "0.001",
				Parse: func(a string) (interface{}, error) {
					f, err := float(a)
					if err == nil && f.(float64) <= 0 {
						return nil, errRejected
					}
					return f, err
				},
			},
		},
		Parse: func(l int, a []interface{}) Node {
			t := a[1].(string)
			return &BatchNorm{
				LineNum:         l,
				FromTensor:      a[0].(string),
				ToTensor:        t,
				MeansTensor:     t + affixMeans,
				VariancesTensor: t + affixVariances,
				ScalesTensor:    t + affixScales,
				ShiftsTensor:    t + affixShifts,
				Epsilon:         a[2].(float64),
			}
		},
	}
}

func initConv1D() {
	Guide["Conv1D"] = &Tail{
		Doc: "One-dimensional cross-correlation without padding. FromTensor has shape StepsxC. " +
			"ToTensor has shape ((Steps-(1+(Width-1)*Dilation))/Stride+1)xFilters, where the " +
			"division truncates and the dividend must not be negative. The weight tensor has shape " +
			"WidthxCxFilters and the bias tensor has shape Filters.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(paramsDoc + "\"" + affixWeights + "\" and \"" + affixBiases + "\" appended. "),
			positive("Filters", "8", "The number of filters. ", 1<<24),
			positive("Width", "3", "The undilated filter width. ", 1<<24),
			positive("Stride", "1", "The step between adjacent filter positions. ", 1<<24),
			positive("Dilation", "1", "The filter dilation factor. 1 means no dilation. ", 1<<24),
			activation("Activation", ActivationStrings[Linear], "The activation applied to the result. "),
		},
		Parse: func(l int, a []interface{}) Node {
			t := a[1].(string)
			return &Conv1D{
				LineNum:       l,
				FromTensor:    a[0].(string),
				ToTensor:      t,
				WeightsTensor: t + affixWeights,
				BiasesTensor:  t + affixBiases,
				Filters:       a[2].(int),
				Width:         a[3].(int),
				Stride:        a[4].(int),
				Dilation:      a[5].(int),
				Activation:    a[6].(ActivationKind),
			}
		},
	}
}

func initConv2D() {
	Guide["Conv2D"] = &Tail{
		Doc: "Two-dimensional cross-correlation without padding. FromTensor has shape HxWxC. " +
			"The height of ToTensor is (H-(1+(FilterH-1)*DilationH))/StrideH+1 and the width is " +
			"analogous. ToTensor has Filters channels. The weight tensor has shape " +
			"FilterHxFilterWxCxFilters and the bias tensor has shape Filters.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(paramsDoc + "\"" + affixWeights + "\" and \"" + affixBiases + "\" appended. "),
			positive("Filters", "8", "The number of filters. ", 1<<24),
			positive("FilterH", "3", "The undilated filter height. ", 1<<24),
			positive("FilterW", "3", "The undilated filter width. ", 1<<24),
			positive("StrideH", "1", "The heightwise step between filter positions. ", 1<<24),
			positive("StrideW", "1", "The widthwise step between filter positions. ", 1<<24),
			positive("DilationH", "1", "The heightwise dilation factor. ", 1<<24),
			positive("DilationW", "1", "The widthwise dilation factor. ", 1<<24),
			activation("Activation", ActivationStrings[Linear], "The activation applied to the result. "),
		},
		Parse: func(l int, a []interface{}) Node {
			t := a[1].(string)
			return &Conv2D{
				LineNum:       l,
				FromTensor:    a[0].(string),
				ToTensor:      t,
				WeightsTensor: t + affixWeights,
				BiasesTensor:  t + affixBiases,
				Filters:       a[2].(int),
				FilterH:       a[3].(int),
				FilterW:       a[4].(int),
				StrideH:       a[5].(int),
				StrideW:       a[6].(int),
				DilationH:     a[7].(int),
				DilationW:     a[8].(int),
				Activation:    a[9].(ActivationKind),
			}
		},
	}
}

func initPool1D() {
	Guide["Pool1D"] = &Tail{
		Doc: "Window pooling over the steps of a StepsxC tensor, without padding. " +
			"ToTensor has shape ((Steps-Size)/Stride+1)xC.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			pooling(PoolingStrings[Max]),
			positive("Size", "2", "The window size. ", 1<<24),
			positive("Stride", "2", "The step between windows. ", 1<<24),
		},
		Parse: func(l int, a []interface{}) Node {
			return &Pool1D{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				Kind:       a[2].(PoolingKind),
				Size:       a[3].(int),
				Stride:     a[4].(int),
			}
		},
	}
}

func initPool2D() {
	Guide["Pool2D"] = &Tail{
		Doc: "Window pooling over the rows and columns of an HxWxC tensor, without padding. " +
			"ToTensor has height (H-SizeH)/StrideH+1, an analogous width, and C channels.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			pooling(PoolingStrings[Max]),
			positive("SizeH", "2", "The window height. ", 1<<24),
			positive("SizeW", "2", "The window width. ", 1<<24),
			positive("StrideH", "2", "The heightwise step between windows. ", 1<<24),
			positive("StrideW", "2", "The widthwise step between windows. ", 1<<24),
		},
		Parse: func(l int, a []interface{}) Node {
			return &Pool2D{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				Kind:       a[2].(PoolingKind),
				SizeH:      a[3].(int),
				SizeW:      a[4].(int),
				StrideH:    a[5].(int),
				StrideW:    a[6].(int),
			}
		},
	}
}

func initGlobalPool() {
	Guide["GlobalPool"] = &Tail{
		Doc: "Pool over every axis but the last. If FromTensor has shape ...xC then ToTensor has shape C.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			pooling(PoolingStrings[Avg]),
		},
		Parse: func(l int, a []interface{}) Node {
			return &GlobalPool{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				Kind:       a[2].(PoolingKind),
			}
		},
	}
}

func initZeroPad1D() {
	Guide["ZeroPad1D"] = &Tail{
		Doc: "Add rows of zeros before and after the steps of a StepsxC tensor. " +
			"ToTensor has shape (Before+Steps+After)xC.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			nonNegative("Before", "1", "The number of zero steps added in front. ", 1<<24),
			nonNegative("After", "1", "The number of zero steps added behind. ", 1<<24),
		},
		Parse: func(l int, a []interface{}) Node {
			return &ZeroPad1D{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				Before:     a[2].(int),
				After:      a[3].(int),
			}
		},
	}
}

func initZeroPad2D() {
	Guide["ZeroPad2D"] = &Tail{
		Doc: "Add zeros around the rows and columns of an HxWxC tensor. ToTensor has shape " +
			"(Top+H+Bottom)x(Left+W+Right)xC. A convolution with same padding is a ZeroPad2D " +
			"followed by a Conv2D.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			nonNegative("Top", "1", "The number of zero rows added above. ", 1<<24),
			nonNegative("Bottom", "1", "The number of zero rows added below. ", 1<<24),
			nonNegative("Left", "1", "The number of zero columns added on the left. ", 1<<24),
			nonNegative("Right", "1", "The number of zero columns added on the right. ", 1<<24),
		},
		Parse: func(l int, a []interface{}) Node {
			return &ZeroPad2D{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				Top:        a[2].(int),
				Bottom:     a[3].(int),
				Left:       a[4].(int),
				Right:      a[5].(int),
			}
		},
	}
}

func initFlatten() {
	Guide["Flatten"] = &Tail{
		Doc: "Collapse FromTensor into one axis.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
		},
		Parse: func(l int, a []interface{}) Node {
			return &Flatten{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
			}
		},
	}
}

func initReshape() {
	Guide["Reshape"] = &Tail{
		Doc: "Give FromTensor a new shape with the same number of elements.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			{
				Doc:     "The shape of ToTensor. " + shapeDoc,
				Label:   "Shape",
				Default: "4x2",
				Parse:   shape,
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Reshape{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				Shape:      a[2].([]int),
			}
		},
	}
}

func initPermute() {
	Guide["Permute"] = &Tail{
		Doc: "Reorder the axes of FromTensor. Axis i of ToTensor is axis Dims[i] of FromTensor.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			{
				Doc:     "A permutation of the axes of FromTensor. " + axesDoc,
				Label:   "Dims",
				Default: "1,0",
				Parse:   axes,
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Permute{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				Dims:       a[2].([]int),
			}
		},
	}
}

func initRepeatVector() {
	Guide["RepeatVector"] = &Tail{
		Doc: "Repeat a one-dimensional FromTensor of size C, giving ToTensor shape NxC.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(""),
			positive("N", "4", "The number of repetitions. ", 1<<24),
		},
		Parse: func(l int, a []interface{}) Node {
			return &RepeatVector{
				LineNum:    l,
				FromTensor: a[0].(string),
				ToTensor:   a[1].(string),
				N:          a[2].(int),
			}
		},
	}
}

func initEmbedding() {
	Guide["Embedding"] = &Tail{
		Doc: "Look up a row of the weight tensor (shape VocabxUnits) for every element of FromTensor. " +
			"Elements are truncated to integers and clamped to the vocabulary. " +
			"If FromTensor has shape S then ToTensor has shape SxUnits.",
		Segs: []*Seg{
			fromTensor("", ""),
			toTensor(paramsDoc + "\"" + affixWeights + "\" appended. "),
			positive("Vocab", "100", "The number of rows in the weight tensor. ", 1<<24),
			positive("Units", "8", "The size of each row. ", 1<<24),
		},
		Parse: func(l int, a []interface{}) Node {
			t := a[1].(string)
			return &Embedding{
				LineNum:       l,
				FromTensor:    a[0].(string),
				ToTensor:      t,
				WeightsTensor: t + affixWeights,
				Vocab:         a[2].(int),
				Units:         a[3].(int),
			}
		},
	}
}

func initMerge() {
	Guide["Merge"] = &Tail{
		Doc: "Combine two data tensors of identical shape element by element.",
		Segs: []*Seg{
			fromTensor("", "1"),
			fromTensor("", "2"),
			toTensor(""),
			{
				Doc:     "How corresponding elements are combined.",
				Label:   "Kind",
				Default: MergeStrings[Add],
				Choices: MergeStrings,
				Parse: func(a string) (interface{}, error) {
					i, err := choice(a, MergeStrings)
					if err != nil {
						return nil, err
					}
					return MergeKind(i.(int)), nil
				},
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Merge{
				LineNum:     l,
				FromTensor1: a[0].(string),
				FromTensor2: a[1].(string),
				ToTensor:    a[2].(string),
				Kind:        a[3].(MergeKind),
			}
		},
	}
}

func initConcat() {
	Guide["Concat"] = &Tail{
		Doc: "Concatenate two data tensors along one axis. Every other axis must match.",
		Segs: []*Seg{
			fromTensor("Its elements come first along the axis. ", "1"),
			fromTensor("Its elements come second along the axis. ", "2"),
			toTensor(""),
			{
				Doc: "The axis to join along, counting from zero. Negative values count " +
					"back from the last axis (-1 is the last axis). " + intDoc,
				Label:   "Axis",
				Default: "-1",
				Parse: func(a string) (interface{}, error) {
					return integer(a, -MaxRank, MaxRank)
				},
			},
		},
		Parse: func(l int, a []interface{}) Node {
			return &Concat{
				LineNum:     l,
				FromTensor1: a[0].(string),
				FromTensor2: a[1].(string),
				ToTensor:    a[2].(string),
				Axis:        a[3].(int),
			}
		},
	}
}

func recurrentSegs(gates string, recurrentAct bool) []*Seg {
	segs := []*Seg{
		fromTensor("It must have shape StepsxC. ", ""),
		toTensor(paramsDoc + "\"" + affixWeights + "\", \"" + affixRecurrentWeights +
			"\" and \"" + affixBiases + "\" appended. " + gates),
		positive("Units", "16", "The size of the hidden state. ", 1<<24),
		activation("Activation", ActivationStrings[Tanh], "The activation of the hidden state. "),
	}
	if recurrentAct {
		segs = append(segs, activation("RecurrentActivation", ActivationStrings[Sigmoid],
			"The activation of the gates. "))
	}
	return append(segs,
		flag("ReturnSequences", "If true, ToTensor has shape StepsxUnits and holds every hidden state. "+
			"Otherwise ToTensor has shape Units and holds the last hidden state. "),
		flag("GoBackwards", "If true, the steps are processed last to first. "),
		flag("Stateful", "If true, the hidden state carries over from one call of the generated "+
			"function to the next, and a reset function is generated. "),
	)
}

func recurrent(l int, a []interface{}, recurrentAct bool) (r Recurrent, rest []interface{}) {
	t := a[1].(string)
	r = Recurrent{
		LineNum:                l,
		FromTensor:             a[0].(string),
		ToTensor:               t,
		WeightsTensor:          t + affixWeights,
		RecurrentWeightsTensor: t + affixRecurrentWeights,
		BiasesTensor:           t + affixBiases,
		Units:                  a[2].(int),
		Activation:             a[3].(ActivationKind),
	}
	a = a[4:]
	if recurrentAct {
		r.RecurrentActivation = a[0].(ActivationKind)
		a = a[1:]
	}
	r.ReturnSequences = a[0].(bool)
	r.GoBackwards = a[1].(bool)
	r.Stateful = a[2].(bool)
	return r, a[3:]
}

func initSimpleRNN() {
	Guide["SimpleRNN"] = &Tail{
		Doc: "A fully connected recurrent layer: H=A(X*W+H*U+B).",
		Segs: recurrentSegs("The weights have shapes CxUnits, UnitsxUnits and Units. ", false),
		Parse: func(l int, a []interface{}) Node {
			r, _ := recurrent(l, a, false)
			return &SimpleRNN{r}
		},
	}
}

func initLSTM() {
	Guide["LSTM"] = &Tail{
		Doc: "A long short-term memory layer.",
		Segs: recurrentSegs("The weights have shapes 4xCxUnits, 4xUnitsxUnits and 4xUnits, "+
			"with gates in the order input, forget, cell, output. ", true),
		Parse: func(l int, a []interface{}) Node {
			r, _ := recurrent(l, a, true)
			return &LSTM{r}
		},
	}
}

func initGRU() {
	segs := recurrentSegs("The weights have shapes 3xCxUnits and 3xUnitsxUnits, "+
		"with gates in the order update, reset, new. The biases have shape 2x3xUnits "+
		"if ResetAfter is true (input biases, then recurrent biases) and 3xUnits otherwise. ", true)
	segs = append(segs, flag("ResetAfter", "If true, the reset gate is applied after the "+
		"recurrent projection. "))
	Guide["GRU"] = &Tail{
		Doc:  "A gated recurrent unit layer.",
		Segs: segs,
		Parse: func(l int, a []interface{}) Node {
			r, rest := recurrent(l, a, true)
			return &GRU{
				Recurrent:  r,
				ResetAfter: rest[0].(bool),
			}
		},
	}
}

func init() {
	initConfig()
	initInput()
	initOutput()
	initParam()
	initActivation()
	initDense()
	initBatchNorm()
	initConv1D()
	initConv2D()
	initPool1D()
	initPool2D()
	initGlobalPool()
	initZeroPad1D()
	initZeroPad2D()
	initFlatten()
	initReshape()
	initPermute()
	initRepeatVector()
	initEmbedding()
	initMerge()
	initConcat()
	initSimpleRNN()
	initLSTM()
	initGRU()
}
