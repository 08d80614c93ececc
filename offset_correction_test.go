package tensorcpu

import (
	"testing"
)

func s32Tensor(data []int32, shape ...int) *Tensor {
	t := NewTensor(NewTensorDescriptor(DTypeS32, shape...))
	copy(t.Int32(), data)
	return t
}

// Literal case from the kernel contract: 1x1 accumulator, k=1, a_offset=2,
// b_offset=3, vector_sum_col=[5], vector_sum_row=[7], mm_result=[10]:
// 10 + 5*2 + 7*3 + 2*3*1 = 47.
func TestOffsetContributionLiteral(t *testing.T) {
	mm := s32Tensor([]int32{10}, 1, 1)
	vsc := s32Tensor([]int32{5}, 1)
	vsr := s32Tensor([]int32{7}, 1)

	k := &OffsetContributionKernel{}
	if err := k.Configure(mm.Desc, vsc.Desc, vsr.Desc, 1, 2, 3, 1.0); err != nil {
		t.Fatalf("configure: %v", err)
	}

	pack := NewTensorPack()
	pack.Add(RoleDst, mm)
	pack.Add(RoleVectorSumCol, vsc)
	pack.Add(RoleVectorSumRow, vsr)
	k.Run(pack, k.Window(), ThreadInfo{NumThreads: 1})

	if got := mm.Int32()[0]; got != 47 {
		t.Errorf("corrected accumulator = %d, want 47", got)
	}
}

func TestOffsetContributionFullMatrix(t *testing.T) {
	const cols, rows = 3, 2
	mm := s32Tensor([]int32{
		1, 2, 3,
		4, 5, 6,
	}, cols, rows)
	vsc := s32Tensor([]int32{10, 20, 30}, cols)
	vsr := s32Tensor([]int32{100, 200}, rows)

	const aOff, bOff, kLen = 2, -1, 4

	k := &OffsetContributionKernel{}
	if err := k.Configure(mm.Desc, vsc.Desc, vsr.Desc, kLen, aOff, bOff, 1.0); err != nil {
		t.Fatalf("configure: %v", err)
	}

	pack := NewTensorPack()
	pack.Add(RoleDst, mm)
	pack.Add(RoleVectorSumCol, vsc)
	pack.Add(RoleVectorSumRow, vsr)
	k.Run(pack, k.Window(), ThreadInfo{NumThreads: 1})

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			orig := int32(y*cols + x + 1)
			want := orig +
				vsc.Int32()[x]*aOff +
				vsr.Int32()[y]*bOff +
				aOff*bOff*kLen
			if got := mm.Int32()[y*cols+x]; got != want {
				t.Errorf("(%d,%d): got %d, want %d", y, x, got, want)
			}
		}
	}
}

// a_offset == 0 allows a nil column-sum vector; the row term still applies
func TestOffsetContributionNilColumnSums(t *testing.T) {
	mm := s32Tensor([]int32{10, 20}, 1, 2)
	vsr := s32Tensor([]int32{3, 5}, 2)

	k := &OffsetContributionKernel{}
	if err := k.Configure(mm.Desc, nil, vsr.Desc, 7, 0, 2, 1.0); err != nil {
		t.Fatalf("configure: %v", err)
	}

	pack := NewTensorPack()
	pack.Add(RoleDst, mm)
	pack.Add(RoleVectorSumRow, vsr)
	k.Run(pack, k.Window(), ThreadInfo{NumThreads: 1})

	// correction = row[i]*2 + 0*2*7
	if got := mm.Int32()[0]; got != 10+3*2 {
		t.Errorf("row 0: got %d, want %d", got, 10+3*2)
	}
	if got := mm.Int32()[1]; got != 20+5*2 {
		t.Errorf("row 1: got %d, want %d", got, 20+5*2)
	}
}

func TestOffsetContributionValidate(t *testing.T) {
	mmDesc := NewTensorDescriptor(DTypeS32, 4, 2)
	colDesc := NewTensorDescriptor(DTypeS32, 4)
	rowDesc := NewTensorDescriptor(DTypeS32, 2)

	cases := []struct {
		name    string
		col     *TensorDescriptor
		row     *TensorDescriptor
		aOff    int32
		bOff    int32
		wantErr bool
	}{
		{"both present", colDesc, rowDesc, 1, 1, false},
		{"nil col with zero a_offset", nil, rowDesc, 0, 1, false},
		{"nil row with zero b_offset", colDesc, nil, 1, 0, false},
		{"nil col with nonzero a_offset", nil, rowDesc, 1, 1, true},
		{"nil row with nonzero b_offset", colDesc, nil, 1, 1, true},
		{"col length mismatch", NewTensorDescriptor(DTypeS32, 3), rowDesc, 1, 1, true},
		{"row length mismatch", colDesc, NewTensorDescriptor(DTypeS32, 5), 1, 1, true},
	}
	for _, tc := range cases {
		err := ValidateOffsetContribution(mmDesc, tc.col, tc.row, tc.aOff, tc.bOff)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected rejection", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestOffsetContributionScaleRequiresFloat(t *testing.T) {
	mmDesc := NewTensorDescriptor(DTypeS32, 2, 2)
	k := &OffsetContributionKernel{}
	if err := k.Configure(mmDesc, nil, nil, 1, 0, 0, 0.5); err == nil {
		t.Fatal("scale != 1 on an S32 accumulator: expected configure to fail")
	}
}

// When the accumulator was already rescaled to float32 the whole correction
// is multiplied by the scale.
func TestOffsetContributionFloatScale(t *testing.T) {
	desc := NewTensorDescriptor(DTypeF32, 1, 1)
	mm := NewTensor(desc)
	mm.Float32()[0] = 10

	vsc := s32Tensor([]int32{5}, 1)
	vsr := s32Tensor([]int32{7}, 1)

	k := &OffsetContributionKernel{}
	if err := k.Configure(desc, vsc.Desc, vsr.Desc, 1, 2, 3, 0.5); err != nil {
		t.Fatalf("configure: %v", err)
	}

	pack := NewTensorPack()
	pack.Add(RoleDst, mm)
	pack.Add(RoleVectorSumCol, vsc)
	pack.Add(RoleVectorSumRow, vsr)
	k.Run(pack, k.Window(), ThreadInfo{NumThreads: 1})

	// (5*2 + 7*3 + 2*3*1) * 0.5 = 18.5
	if got := mm.Float32()[0]; got != 28.5 {
		t.Errorf("scaled correction: got %v, want 28.5", got)
	}
}

// Batched GEMM: a multi-batch column-sum vector slides per batch, a flat
// one is reused across every batch.
func TestOffsetContributionBatchedColumnSums(t *testing.T) {
	const cols, rows, batches = 2, 1, 2
	run := func(vsc *Tensor) []int32 {
		mm := s32Tensor(make([]int32, cols*rows*batches), cols, rows, batches)
		k := &OffsetContributionKernel{}
		if err := k.Configure(mm.Desc, vsc.Desc, nil, 1, 1, 0, 1.0); err != nil {
			t.Fatalf("configure: %v", err)
		}
		pack := NewTensorPack()
		pack.Add(RoleDst, mm)
		pack.Add(RoleVectorSumCol, vsc)
		k.Run(pack, k.Window(), ThreadInfo{NumThreads: 1})
		return mm.Int32()
	}

	// Sliding: batch 1 reads the second half of the column sums
	sliding := run(s32Tensor([]int32{1, 2, 30, 40}, cols, batches))
	wantSliding := []int32{1, 2, 30, 40}
	for i := range wantSliding {
		if sliding[i] != wantSliding[i] {
			t.Errorf("sliding col sums: element %d got %d, want %d", i, sliding[i], wantSliding[i])
		}
	}

	// Shared right-hand matrix: every batch reuses the same column sums
	shared := run(s32Tensor([]int32{1, 2}, cols))
	wantShared := []int32{1, 2, 1, 2}
	for i := range wantShared {
		if shared[i] != wantShared[i] {
			t.Errorf("shared col sums: element %d got %d, want %d", i, shared[i], wantShared[i])
		}
	}
}

// Partitioning the accumulator window must yield results identical to a
// whole-window run.
func TestOffsetContributionPartitionEquivalence(t *testing.T) {
	const cols, rows, batches = 5, 4, 3
	base := make([]int32, cols*rows*batches)
	for i := range base {
		base[i] = int32(i * 3)
	}
	colSums := make([]int32, cols)
	rowSums := make([]int32, rows*batches)
	for i := range colSums {
		colSums[i] = int32(10 + i)
	}
	for i := range rowSums {
		rowSums[i] = int32(100 - i)
	}

	run := func(pieces int) []int32 {
		mm := s32Tensor(append([]int32(nil), base...), cols, rows, batches)
		vsc := s32Tensor(colSums, cols)
		vsr := s32Tensor(rowSums, rows, batches)

		k := &OffsetContributionKernel{}
		if err := k.Configure(mm.Desc, vsc.Desc, vsr.Desc, 9, 2, 3, 1.0); err != nil {
			t.Fatalf("configure: %v", err)
		}
		pack := NewTensorPack()
		pack.Add(RoleDst, mm)
		pack.Add(RoleVectorSumCol, vsc)
		pack.Add(RoleVectorSumRow, vsr)
		for id := 0; id < pieces; id++ {
			k.Run(pack, k.Window().Split(pieces, id), ThreadInfo{ThreadID: id, NumThreads: pieces})
		}
		return mm.Int32()
	}

	whole := run(1)
	for _, pieces := range []int{2, 3} {
		split := run(pieces)
		for i := range whole {
			if split[i] != whole[i] {
				t.Fatalf("%d-way split: element %d got %d, want %d", pieces, i, split[i], whole[i])
			}
		}
	}
}

func TestOffsetContributionSetOffsetContract(t *testing.T) {
	mm := s32Tensor([]int32{1}, 1, 1)
	k := &OffsetContributionKernel{}
	if err := k.Configure(mm.Desc, nil, nil, 1, 0, 0, 1.0); err != nil {
		t.Fatalf("configure: %v", err)
	}

	// Raising a_offset after configure without supplying column sums must
	// trip the run-time contract check.
	k.SetAOffset(5)
	pack := NewTensorPack()
	pack.Add(RoleDst, mm)
	defer func() {
		if recover() == nil {
			t.Error("expected panic: nonzero a_offset without vector_sum_col")
		}
	}()
	k.Run(pack, k.Window(), ThreadInfo{NumThreads: 1})
}
