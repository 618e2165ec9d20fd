package raw

type Config struct {
	LineNum int
	Name    string
	Batch   int
}

func (c *Config) LineNumber() int        { return c.LineNum }
func (c *Config) FromTensors() []string  { return nil }
func (c *Config) ToTensors() []string    { return nil }
func (c *Config) ParamTensors() []string { return nil }

type Input struct {
	LineNum  int
	ToTensor string
	Shape    []int
}

func (i *Input) LineNumber() int        { return i.LineNum }
func (i *Input) FromTensors() []string  { return nil }
func (i *Input) ToTensors() []string    { return []string{i.ToTensor} }
func (i *Input) ParamTensors() []string { return nil }

type Output struct {
	LineNum    int
	FromTensor string
}

func (o *Output) LineNumber() int        { return o.LineNum }
func (o *Output) FromTensors() []string  { return []string{o.FromTensor} }
func (o *Output) ToTensors() []string    { return nil }
func (o *Output) ParamTensors() []string { return nil }

// Param holds the trained values of one parameter tensor. Data is
// row-major with the given shape.
type Param struct {
	LineNum int
	Tensor  string
	Shape   []int
	Data    []float64
}

func (p *Param) LineNumber() int        { return p.LineNum }
func (p *Param) FromTensors() []string  { return nil }
func (p *Param) ToTensors() []string    { return nil }
func (p *Param) ParamTensors() []string { return nil }

type ActivationKind int

const (
	Linear ActivationKind = iota
	ReLU
	Sigmoid
	HardSigmoid
	Tanh
	Softmax
	Softplus
	Softsign
	Exponential
	LeakyReLU
	ELU
)

var ActivationStrings = []string{
	Linear:      "Linear",
	ReLU:        "ReLU",
	Sigmoid:     "Sigmoid",
	HardSigmoid: "HardSigmoid",
	Tanh:        "Tanh",
	Softmax:     "Softmax",
	Softplus:    "Softplus",
	Softsign:    "Softsign",
	Exponential: "Exponential",
	LeakyReLU:   "LeakyReLU",
	ELU:         "ELU",
}

// Default alphas when LeakyReLU or ELU is fused into a layer.
const (
	LeakyReLUAlpha = 0.3
	ELUAlpha       = 1.0
)

type Activation struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	Kind       ActivationKind
	Param      float64
}

func (a *Activation) LineNumber() int        { return a.LineNum }
func (a *Activation) FromTensors() []string  { return []string{a.FromTensor} }
func (a *Activation) ToTensors() []string    { return []string{a.ToTensor} }
func (a *Activation) ParamTensors() []string { return nil }

type Dense struct {
	LineNum       int
	FromTensor    string
	ToTensor      string
	WeightsTensor string
	BiasesTensor  string
	Units         int
	Activation    ActivationKind
}

func (d *Dense) LineNumber() int        { return d.LineNum }
func (d *Dense) FromTensors() []string  { return []string{d.FromTensor} }
func (d *Dense) ToTensors() []string    { return []string{d.ToTensor} }
func (d *Dense) ParamTensors() []string { return []string{d.WeightsTensor, d.BiasesTensor} }

type BatchNorm struct {
	LineNum         int
	FromTensor      string
	ToTensor        string
	MeansTensor     string
	VariancesTensor string
	ScalesTensor    string
	ShiftsTensor    string
	Epsilon         float64
}

func (b *BatchNorm) LineNumber() int       { return b.LineNum }
func (b *BatchNorm) FromTensors() []string { return []string{b.FromTensor} }
func (b *BatchNorm) ToTensors() []string   { return []string{b.ToTensor} }

func (b *BatchNorm) ParamTensors() []string {
	return []string{
		b.MeansTensor,
		b.VariancesTensor,
		b.ScalesTensor,
		b.ShiftsTensor,
	}
}

type Conv1D struct {
	LineNum       int
	FromTensor    string
	ToTensor      string
	WeightsTensor string
	BiasesTensor  string
	Filters       int
	Width         int
	Stride        int
	Dilation      int
	Activation    ActivationKind
}

func (c *Conv1D) LineNumber() int        { return c.LineNum }
func (c *Conv1D) FromTensors() []string  { return []string{c.FromTensor} }
func (c *Conv1D) ToTensors() []string    { return []string{c.ToTensor} }
func (c *Conv1D) ParamTensors() []string { return []string{c.WeightsTensor, c.BiasesTensor} }

type Conv2D struct {
	LineNum       int
	FromTensor    string
	ToTensor      string
	WeightsTensor string
	BiasesTensor  string
	Filters       int
	FilterH       int
	FilterW       int
	StrideH       int
	StrideW       int
	DilationH     int
	DilationW     int
	Activation    ActivationKind
}

func (c *Conv2D) LineNumber() int        { return c.LineNum }
func (c *Conv2D) FromTensors() []string  { return []string{c.FromTensor} }
func (c *Conv2D) ToTensors() []string    { return []string{c.ToTensor} }
func (c *Conv2D) ParamTensors() []string { return []string{c.WeightsTensor, c.BiasesTensor} }

type PoolingKind int

const (
	Max PoolingKind = iota
	Avg
)

var PoolingStrings = []string{
	Max: "Max",
	Avg: "Avg",
}

type Pool1D struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	Kind       PoolingKind
	Size       int
	Stride     int
}

func (p *Pool1D) LineNumber() int        { return p.LineNum }
func (p *Pool1D) FromTensors() []string  { return []string{p.FromTensor} }
func (p *Pool1D) ToTensors() []string    { return []string{p.ToTensor} }
func (p *Pool1D) ParamTensors() []string { return nil }

type Pool2D struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	Kind       PoolingKind
	SizeH      int
	SizeW      int
	StrideH    int
	StrideW    int
}

func (p *Pool2D) LineNumber() int        { return p.LineNum }
func (p *Pool2D) FromTensors() []string  { return []string{p.FromTensor} }
func (p *Pool2D) ToTensors() []string    { return []string{p.ToTensor} }
func (p *Pool2D) ParamTensors() []string { return nil }

type GlobalPool struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	Kind       PoolingKind
}

func (g *GlobalPool) LineNumber() int        { return g.LineNum }
func (g *GlobalPool) FromTensors() []string  { return []string{g.FromTensor} }
func (g *GlobalPool) ToTensors() []string    { return []string{g.ToTensor} }
func (g *GlobalPool) ParamTensors() []string { return nil }

type ZeroPad1D struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	Before     int
	After      int
}

func (z *ZeroPad1D) LineNumber() int        { return z.LineNum }
func (z *ZeroPad1D) FromTensors() []string  { return []string{z.FromTensor} }
func (z *ZeroPad1D) ToTensors() []string    { return []string{z.ToTensor} }
func (z *ZeroPad1D) ParamTensors() []string { return nil }

type ZeroPad2D struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	Top        int
	Bottom     int
	Left       int
	Right      int
}

func (z *ZeroPad2D) LineNumber() int        { return z.LineNum }
func (z *ZeroPad2D) FromTensors() []string  { return []string{z.FromTensor} }
func (z *ZeroPad2D) ToTensors() []string    { return []string{z.ToTensor} }
func (z *ZeroPad2D) ParamTensors() []string { return nil }

type Flatten struct {
	LineNum    int
	FromTensor string
	ToTensor   string
}

func (f *Flatten) LineNumber() int        { return f.LineNum }
func (f *Flatten) FromTensors() []string  { return []string{f.FromTensor} }
func (f *Flatten) ToTensors() []string    { return []string{f.ToTensor} }
func (f *Flatten) ParamTensors() []string { return nil }

type Reshape struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	Shape      []int
}

func (r *Reshape) LineNumber() int        { return r.LineNum }
func (r *Reshape) FromTensors() []string  { return []string{r.FromTensor} }
func (r *Reshape) ToTensors() []string    { return []string{r.ToTensor} }
func (r *Reshape) ParamTensors() []string { return nil }

type Permute struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	Dims       []int
}

func (p *Permute) LineNumber() int        { return p.LineNum }
func (p *Permute) FromTensors() []string  { return []string{p.FromTensor} }
func (p *Permute) ToTensors() []string    { return []string{p.ToTensor} }
func (p *Permute) ParamTensors() []string { return nil }

type RepeatVector struct {
	LineNum    int
	FromTensor string
	ToTensor   string
	N          int
}

func (r *RepeatVector) LineNumber() int        { return r.LineNum }
func (r *RepeatVector) FromTensors() []string  { return []string{r.FromTensor} }
func (r *RepeatVector) ToTensors() []string    { return []string{r.ToTensor} }
func (r *RepeatVector) ParamTensors() []string { return nil }

type Embedding struct {
	LineNum       int
	FromTensor    string
	ToTensor      string
	WeightsTensor string
	Vocab         int
	Units         int
}

func (e *Embedding) LineNumber() int        { return e.LineNum }
func (e *Embedding) FromTensors() []string  { return []string{e.FromTensor} }
func (e *Embedding) ToTensors() []string    { return []string{e.ToTensor} }
func (e *Embedding) ParamTensors() []string { return []string{e.WeightsTensor} }

type MergeKind int

const (
	Add MergeKind = iota
	Subtract
	Multiply
	Average
	Maximum
	Minimum
)

var MergeStrings = []string{
	Add:      "Add",
	Subtract: "Subtract",
	Multiply: "Multiply",
	Average:  "Average",
	Maximum:  "Maximum",
	Minimum:  "Minimum",
}

type Merge struct {
	LineNum     int
	FromTensor1 string
	FromTensor2 string
	ToTensor    string
	Kind        MergeKind
}

func (m *Merge) LineNumber() int        { return m.LineNum }
func (m *Merge) FromTensors() []string  { return []string{m.FromTensor1, m.FromTensor2} }
func (m *Merge) ToTensors() []string    { return []string{m.ToTensor} }
func (m *Merge) ParamTensors() []string { return nil }

type Concat struct {
	LineNum     int
	FromTensor1 string
	FromTensor2 string
	ToTensor    string
	Axis        int
}

func (c *Concat) LineNumber() int        { return c.LineNum }
func (c *Concat) FromTensors() []string  { return []string{c.FromTensor1, c.FromTensor2} }
func (c *Concat) ToTensors() []string    { return []string{c.ToTensor} }
func (c *Concat) ParamTensors() []string { return nil }

// Recurrent holds the fields shared by SimpleRNN, LSTM and GRU.
type Recurrent struct {
	LineNum                int
	FromTensor             string
	ToTensor               string
	WeightsTensor          string
	RecurrentWeightsTensor string
	BiasesTensor           string
	Units                  int
	Activation             ActivationKind
	RecurrentActivation    ActivationKind
	ReturnSequences        bool
	GoBackwards            bool
	Stateful               bool
}

func (r *Recurrent) LineNumber() int       { return r.LineNum }
func (r *Recurrent) FromTensors() []string { return []string{r.FromTensor} }
func (r *Recurrent) ToTensors() []string   { return []string{r.ToTensor} }

func (r *Recurrent) ParamTensors() []string {
	return []string{
		r.WeightsTensor,
		r.RecurrentWeightsTensor,
		r.BiasesTensor,
	}
}

// SimpleRNN ignores RecurrentActivation.
type SimpleRNN struct {
	Recurrent
}

type LSTM struct {
	Recurrent
}

type GRU struct {
	Recurrent
	ResetAfter bool
}
