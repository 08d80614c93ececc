package tensorcpu

// OffsetContributionKernel adds the zero-point offset-correction term to a
// quantized matrix multiply's int32 accumulator, strictly in place:
//
//	mm_result[i][j] += vector_sum_col[j]*a_offset +
//	                   vector_sum_row[i]*b_offset +
//	                   a_offset*b_offset*k
//
// optionally multiplying the whole correction by a scale when the
// accumulator has already been rescaled to float32.
type OffsetContributionKernel struct {
	aOffset   int32
	bOffset   int32
	k         int32
	scale     float32
	slideCols bool
	isFloat   bool
	window    Window
	name      string

	configured bool
}

// ValidateOffsetContribution checks shapes, dtypes and the null/offset
// contract before any state is committed. Pure and side-effect free.
//
// vectorSumCol may be nil only when aOffset == 0; vectorSumRow may be nil
// only when bOffset == 0.
func ValidateOffsetContribution(mmResult, vectorSumCol, vectorSumRow *TensorDescriptor, aOffset, bOffset int32) error {
	const op = "ValidateOffsetContribution"

	if mmResult == nil {
		return NewInvalidArgError(op, "mm_result descriptor is nil")
	}
	if mmResult.DType != DTypeS32 && mmResult.DType != DTypeF32 {
		return NewUnsupportedError(op, "mm_result must be S32 or rescaled F32, got "+mmResult.DType.String())
	}

	if aOffset != 0 && vectorSumCol == nil {
		return NewInvalidArgError(op, "vector_sum_col may be nil only when a_offset == 0")
	}
	if bOffset != 0 && vectorSumRow == nil {
		return NewInvalidArgError(op, "vector_sum_row may be nil only when b_offset == 0")
	}

	if vectorSumCol != nil {
		if vectorSumCol.DType != DTypeS32 {
			return NewInvalidArgError(op, "vector_sum_col must be S32")
		}
		if vectorSumCol.Dim(0) != mmResult.Dim(0) {
			return NewInvalidArgError(op, "vector_sum_col length does not match mm_result columns")
		}
	}

	if vectorSumRow != nil {
		if vectorSumRow.DType != DTypeS32 {
			return NewInvalidArgError(op, "vector_sum_row must be S32")
		}
		if vectorSumRow.Dim(0) != mmResult.Dim(1) {
			return NewInvalidArgError(op, "vector_sum_row length does not match mm_result rows")
		}
		if b := vectorSumRow.Dim(1); b != 1 && b != mmResult.Dim(2) {
			return NewInvalidArgError(op, "vector_sum_row batch count does not match mm_result batches")
		}
	}

	return nil
}

// Configure fixes the kernel's parameters and execution window. vectorSumCol
// and vectorSumRow follow the same contract as ValidateOffsetContribution;
// whether the column sums slide per batch is derived from vectorSumCol's
// shape: a batched (multi-dimensional) column-sum vector is re-indexed per
// outer batch, a flat one is reused identically across all batches (shared
// right-hand matrix).
func (o *OffsetContributionKernel) Configure(mmResult, vectorSumCol, vectorSumRow *TensorDescriptor, k, aOffset, bOffset int32, scale float32) error {
	const op = "OffsetContributionKernel.Configure"

	if err := ValidateOffsetContribution(mmResult, vectorSumCol, vectorSumRow, aOffset, bOffset); err != nil {
		return err
	}

	isFloat := mmResult.DType == DTypeF32
	if !isFloat && scale != 1.0 {
		return NewInvalidArgError(op, "scale must be 1.0 unless mm_result has been rescaled to F32")
	}

	o.aOffset = aOffset
	o.bOffset = bOffset
	o.k = k
	o.scale = scale
	o.isFloat = isFloat
	o.slideCols = vectorSumCol == nil || len(vectorSumCol.Shape) > 1
	o.window = WindowFromShape(mmResult)
	if o.isFloat {
		o.name = "OffsetContributionKernel/fp32"
	} else {
		o.name = "OffsetContributionKernel/int32"
	}
	o.configured = true
	return nil
}

// SetAOffset replaces the matrix A offset. Warning: a nonzero a_offset
// requires RoleVectorSumCol to be present at run time; run Validate or
// Configure again if unsure.
func (o *OffsetContributionKernel) SetAOffset(aOffset int32) {
	o.aOffset = aOffset
}

// SetBOffset replaces the matrix B offset. Warning: a nonzero b_offset
// requires RoleVectorSumRow to be present at run time; run Validate or
// Configure again if unsure.
func (o *OffsetContributionKernel) SetBOffset(bOffset int32) {
	o.bOffset = bOffset
}

// SetScale replaces the correction scale applied when the accumulator has
// already been rescaled to float32.
func (o *OffsetContributionKernel) SetScale(scale float32) {
	o.scale = scale
}

// Run applies the offset correction in place over one sub-window.
// The pack binds RoleDst to the accumulator and, as the offsets require,
// RoleVectorSumCol / RoleVectorSumRow. Precondition violations panic.
func (o *OffsetContributionKernel) Run(pack *TensorPack, window Window, info ThreadInfo) {
	if !o.configured {
		panic("tensorcpu: Run called on unconfigured OffsetContributionKernel")
	}
	if !o.window.Contains(window) {
		panic("tensorcpu: sub-window escapes the configured window")
	}
	if pack == nil || pack.Empty() {
		panic("tensorcpu: OffsetContributionKernel run with an empty tensor pack")
	}

	mm := pack.Get(RoleDst)
	vsc := pack.Get(RoleVectorSumCol)
	vsr := pack.Get(RoleVectorSumRow)
	if mm == nil {
		panic("tensorcpu: OffsetContributionKernel run without an accumulator tensor")
	}
	// The offset setters can break the nil contract after Configure
	if o.aOffset != 0 && vsc == nil {
		panic("tensorcpu: nonzero a_offset requires vector_sum_col")
	}
	if o.bOffset != 0 && vsr == nil {
		panic("tensorcpu: nonzero b_offset requires vector_sum_row")
	}

	if o.isFloat {
		o.runFloat(mm, vsc, vsr, window)
	} else {
		o.runInt32(mm, vsc, vsr, window)
	}
}

// correctionAt computes the full correction term for element (x, y, z).
// colStride/rowStride are the per-batch strides into the sum vectors, zero
// when a vector is shared across batches.
func (o *OffsetContributionKernel) correctionAt(vscData, vsrData []int32, colStride, rowStride, x, y, z int) int32 {
	corr := o.aOffset * o.bOffset * o.k
	if o.aOffset != 0 {
		corr += vscData[z*colStride+x] * o.aOffset
	}
	if o.bOffset != 0 {
		corr += vsrData[z*rowStride+y] * o.bOffset
	}
	return corr
}

func (o *OffsetContributionKernel) runInt32(mm, vsc, vsr *Tensor, window Window) {
	data := mm.Int32()
	numCols := mm.Desc.Dim(0)
	numRows := mm.Desc.Dim(1)

	vscData, vsrData, colStride, rowStride := o.sumVectors(vsc, vsr, numCols, numRows)
	o.forEachElement(window, numCols, numRows, func(idx, x, y, z int) {
		data[idx] += o.correctionAt(vscData, vsrData, colStride, rowStride, x, y, z)
	})
}

func (o *OffsetContributionKernel) runFloat(mm, vsc, vsr *Tensor, window Window) {
	data := mm.Float32()
	numCols := mm.Desc.Dim(0)
	numRows := mm.Desc.Dim(1)

	vscData, vsrData, colStride, rowStride := o.sumVectors(vsc, vsr, numCols, numRows)
	o.forEachElement(window, numCols, numRows, func(idx, x, y, z int) {
		corr := o.correctionAt(vscData, vsrData, colStride, rowStride, x, y, z)
		data[idx] += float32(corr) * o.scale
	})
}

// sumVectors resolves the sum-vector slices and their per-batch strides.
// Column sums slide per batch only when the slide flag is set; row sums
// slide whenever the vector actually carries a batch dimension.
func (o *OffsetContributionKernel) sumVectors(vsc, vsr *Tensor, numCols, numRows int) (vscData, vsrData []int32, colStride, rowStride int) {
	if vsc != nil {
		vscData = vsc.Int32()
		if o.slideCols && vsc.Desc.Dim(1) > 1 {
			colStride = numCols
		}
	}
	if vsr != nil {
		vsrData = vsr.Int32()
		if vsr.Desc.Dim(1) > 1 {
			rowStride = numRows
		}
	}
	return vscData, vsrData, colStride, rowStride
}

// forEachElement walks the sub-window in accumulator coordinates
// (x = column, y = row, z = batch) and hands the callback the linear index.
func (o *OffsetContributionKernel) forEachElement(window Window, numCols, numRows int, fn func(idx, x, y, z int)) {
	xd := window.Dim(0)
	yd := window.Dim(1)
	zd := window.Dim(2)
	for z := zd.Start; z < zd.End; z += zd.Step {
		for y := yd.Start; y < yd.End; y += yd.Step {
			base := z*numRows*numCols + y*numCols
			for x := xd.Start; x < xd.End; x += xd.Step {
				fn(base+x, x, y, z)
			}
		}
	}
}

// Window returns the full execution window fixed at configure time
func (o *OffsetContributionKernel) Window() Window {
	return o.window
}

// MWS returns the smallest per-thread element count worth splitting off
func (o *OffsetContributionKernel) MWS() int {
	if !o.configured {
		return mwsDefaultSingleThread
	}
	return mwsOffsetContribution
}

// Name returns the stable diagnostic name "<KernelKind>/<VariantName>"
func (o *OffsetContributionKernel) Name() string {
	return o.name
}
