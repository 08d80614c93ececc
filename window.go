package tensorcpu

// WindowDimension describes the iteration range of one tensor dimension:
// the half-open interval [Start, End) walked in increments of Step.
type WindowDimension struct {
	Start int
	End   int
	Step  int
}

// NumIterations returns the number of steps taken along this dimension
func (d WindowDimension) NumIterations() int {
	if d.End <= d.Start || d.Step <= 0 {
		return 0
	}
	return (d.End - d.Start + d.Step - 1) / d.Step
}

// Window is a multi-dimensional iteration-domain descriptor, ordered
// innermost-first like TensorDescriptor.Shape. A full window and any set of
// sub-windows produced by Split partition the iteration space exactly: no
// element is visited twice or skipped.
type Window struct {
	Dims []WindowDimension
}

// WindowFromShape builds the full iteration window over a descriptor's shape
func WindowFromShape(desc *TensorDescriptor) Window {
	dims := make([]WindowDimension, len(desc.Shape))
	for i, extent := range desc.Shape {
		dims[i] = WindowDimension{Start: 0, End: extent, Step: 1}
	}
	return Window{Dims: dims}
}

// NumElements returns the total number of iteration points
func (w Window) NumElements() int {
	if len(w.Dims) == 0 {
		return 0
	}
	n := 1
	for _, d := range w.Dims {
		n *= d.NumIterations()
	}
	return n
}

// Dim returns dimension i, or a degenerate single-iteration range when the
// window has fewer dimensions.
func (w Window) Dim(i int) WindowDimension {
	if i >= len(w.Dims) {
		return WindowDimension{Start: 0, End: 1, Step: 1}
	}
	return w.Dims[i]
}

// Clone returns a deep copy of the window
func (w Window) Clone() Window {
	dims := make([]WindowDimension, len(w.Dims))
	copy(dims, w.Dims)
	return Window{Dims: dims}
}

// splitDimension picks the dimension Split divides along: the outermost
// dimension with more than one iteration, falling back to the innermost.
func (w Window) splitDimension() int {
	for i := len(w.Dims) - 1; i >= 0; i-- {
		if w.Dims[i].NumIterations() > 1 {
			return i
		}
	}
	return 0
}

// MaxSplits returns the largest number of non-empty sub-windows Split can
// produce, i.e. the iteration count of the split dimension.
func (w Window) MaxSplits() int {
	if len(w.Dims) == 0 {
		return 1
	}
	n := w.Dims[w.splitDimension()].NumIterations()
	if n < 1 {
		return 1
	}
	return n
}

// Split partitions the window into total disjoint sub-windows and returns
// sub-window id (0 <= id < total). The split runs along the outermost
// dimension with more than one iteration; iterations divide as evenly as
// possible, with the remainder spread over the leading sub-windows. The
// resulting sub-windows cover the window exactly.
//
// Panics on id out of range; that is caller scheduling gone wrong.
func (w Window) Split(total, id int) Window {
	if total <= 0 || id < 0 || id >= total {
		panic("tensorcpu: window split index out of range")
	}
	sub := w.Clone()
	if total == 1 {
		return sub
	}

	axis := w.splitDimension()
	d := w.Dims[axis]
	iters := d.NumIterations()

	per := iters / total
	rem := iters % total

	first := id * per
	if id < rem {
		first += id
	} else {
		first += rem
	}
	count := per
	if id < rem {
		count++
	}

	sub.Dims[axis] = WindowDimension{
		Start: d.Start + first*d.Step,
		End:   d.Start + (first+count)*d.Step,
		Step:  d.Step,
	}
	// An over-split window yields empty trailing pieces; keep End >= Start
	if sub.Dims[axis].End < sub.Dims[axis].Start {
		sub.Dims[axis].End = sub.Dims[axis].Start
	}
	return sub
}

// Contains reports whether sub is fully inside w with compatible steps.
// Used to enforce the run-time precondition that a dispatched sub-window
// never escapes the configured window.
func (w Window) Contains(sub Window) bool {
	if len(sub.Dims) != len(w.Dims) {
		return false
	}
	for i, d := range w.Dims {
		s := sub.Dims[i]
		if s.Start < d.Start || s.End > d.End || s.Step != d.Step {
			return false
		}
		if (s.Start-d.Start)%d.Step != 0 {
			return false
		}
	}
	return true
}

// Valid reports whether every dimension is a well-formed range
func (w Window) Valid() bool {
	if len(w.Dims) == 0 {
		return false
	}
	for _, d := range w.Dims {
		if d.Step <= 0 || d.End < d.Start {
			return false
		}
	}
	return true
}

// forEachRow walks every iteration point of the window except dimension 0,
// resolving each outer coordinate to a linear offset in a contiguous buffer
// of the given shape, and hands the callback the offset of the row's first
// element plus the inner extent [xStart, xEnd).
//
// This is the elementwise-kernel workhorse: routines loop [xStart, xEnd)
// over typed slices starting at the returned offset.
func (w Window) forEachRow(shape []int, fn func(rowOffset, xStart, xEnd int)) {
	ndim := len(w.Dims)
	if ndim == 0 {
		return
	}

	// Contiguous innermost-first strides
	strides := make([]int, len(shape))
	stride := 1
	for i, extent := range shape {
		strides[i] = stride
		stride *= extent
	}

	x := w.Dim(0)
	if x.NumIterations() == 0 {
		return
	}

	coords := make([]int, ndim)
	for i := 1; i < ndim; i++ {
		coords[i] = w.Dims[i].Start
		if w.Dims[i].NumIterations() == 0 {
			return
		}
	}

	for {
		offset := 0
		for i := 1; i < ndim && i < len(strides); i++ {
			offset += coords[i] * strides[i]
		}
		fn(offset, x.Start, x.End)

		// Advance outer coordinates, innermost-outer first
		carry := true
		for i := 1; i < ndim && carry; i++ {
			coords[i] += w.Dims[i].Step
			if coords[i] < w.Dims[i].End {
				carry = false
			} else {
				coords[i] = w.Dims[i].Start
			}
		}
		if carry {
			return
		}
	}
}
