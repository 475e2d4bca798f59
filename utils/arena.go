package utils

import "fmt"

// Arena is a contiguous buffer holding a multi-dimensional numeric table
// as a single flat allocation, addressed by a computed linear offset.
// The last dimension varies fastest.
type Arena[T int32 | float64] struct {
	dims    []int
	strides []int
	data    []T
}

func NewArena[T int32 | float64](dims ...int) (a *Arena[T]) {
	if len(dims) == 0 {
		panic("arena needs at least one dimension")
	}
	size := 1
	for _, d := range dims {
		if d < 1 {
			panic(fmt.Sprintf("arena dimension %d < 1", d))
		}
		size *= d
	}
	a = &Arena[T]{
		dims:    append([]int{}, dims...),
		strides: make([]int, len(dims)),
		data:    make([]T, size),
	}
	stride := 1
	for i := len(dims) - 1; i >= 0; i-- {
		a.strides[i] = stride
		stride *= dims[i]
	}
	return
}

// Offset computes the linear offset of an index tuple, bounds-checking
// every axis
func (a *Arena[T]) Offset(idx ...int) (off int) {
	if len(idx) != len(a.dims) {
		panic(fmt.Sprintf("arena rank mismatch: got %d indices, need %d",
			len(idx), len(a.dims)))
	}
	for i, ix := range idx {
		if ix < 0 || ix >= a.dims[i] {
			panic(fmt.Sprintf("arena index out of range: axis %d, index %d, dim %d",
				i, ix, a.dims[i]))
		}
		off += ix * a.strides[i]
	}
	return
}

func (a *Arena[T]) At(idx ...int) T {
	return a.data[a.Offset(idx...)]
}

func (a *Arena[T]) Set(val T, idx ...int) {
	a.data[a.Offset(idx...)] = val
}

// Dims returns a copy of the arena dimensions
func (a *Arena[T]) Dims() []int {
	return append([]int{}, a.dims...)
}

// Len returns the total number of elements
func (a *Arena[T]) Len() int {
	return len(a.data)
}

// Data exposes the flat backing slice for bulk traversal; indexing
// through Offset keeps bulk writers bounds-safe
func (a *Arena[T]) Data() []T {
	return a.data
}
