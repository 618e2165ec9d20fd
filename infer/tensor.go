// Package infer is the runtime imported by code that nn2go generates.
//
// Every kernel reads and writes Tensor handles, each a flat row-major
// float64 buffer plus its rank, element count and shape. Kernels never
// allocate. Callers own all storage, including scratch space.
package infer

const MaxNdim = 5

type Tensor struct {
	Array []float64
	Ndim  int
	Numel int
	Shape [MaxNdim]int
}

// Make allocates a zeroed tensor.
func Make(shape ...int) Tensor {
	t := Tensor{Ndim: len(shape), Numel: 1}
	for i, dim := range shape {
		t.Shape[i] = dim
		t.Numel *= dim
	}
	t.Array = make([]float64, t.Numel)
	return t
}

// View returns a tensor that shares array and has the given shape.
func View(array []float64, shape ...int) Tensor {
	t := Tensor{Ndim: len(shape), Numel: 1}
	for i, dim := range shape {
		t.Shape[i] = dim
		t.Numel *= dim
	}
	t.Array = array[:t.Numel]
	return t
}

func (t *Tensor) Fill(value float64) {
	a := t.Array[:t.Numel]
	for i := range a {
		a[i] = value
	}
}

func (t *Tensor) Dims() []int {
	return t.Shape[:t.Ndim]
}

func zero(a []float64) {
	for i := range a {
		a[i] = 0
	}
}

// matmul computes c = a*b for row-major a (rows x inner) and
// b (inner x cols).
func matmul(c, a, b []float64, rows, cols, inner int) {
	zero(c[:rows*cols])
	for i := 0; i < rows; i++ {
		crow := c[i*cols : i*cols+cols]
		arow := a[i*inner : i*inner+inner]
		for k, x := range arow {
			brow := b[k*cols : k*cols+cols]
			for j, y := range brow {
				crow[j] += x * y
			}
		}
	}
}

// affine computes c = a*b + d with d broadcast over every row.
func affine(c, a, b, d []float64, rows, cols, inner int) {
	for i := 0; i < rows; i++ {
		crow := c[i*cols : i*cols+cols]
		arow := a[i*inner : i*inner+inner]
		for j := range crow {
			sum := 0.0
			for k, x := range arow {
				sum += x * b[k*cols+j]
			}
			crow[j] = sum + d[j]
		}
	}
}

func sub2idx(sub, shape []int) int {
	idx := 0
	for i := range shape {
		idx = idx*shape[i] + sub[i]
	}
	return idx
}

func idx2sub(idx int, sub, shape []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		sub[i] = idx % shape[i]
		idx /= shape[i]
	}
}

func biasAdd(a []float64, bias []float64) {
	n := len(bias)
	for i := 0; i < len(a); i += n {
		row := a[i : i+n]
		for j, b := range bias {
			row[j] += b
		}
	}
}
