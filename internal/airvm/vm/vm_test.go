package vm

import (
	"testing"

	"github.com/vybium/airvm/internal/airvm/compile"
	"github.com/vybium/airvm/internal/airvm/domain"
	"github.com/vybium/airvm/internal/airvm/field"
	"github.com/vybium/airvm/internal/airvm/program"
	"github.com/vybium/airvm/internal/airvm/ref"
	"github.com/vybium/airvm/internal/airvm/starkinfo"
)

func flatInfo(nbits, nbitsExt uint) *starkinfo.StarkInfo {
	return &starkinfo.StarkInfo{
		NBits:      nbits,
		NBitsExt:   nbitsExt,
		NConstants: 4,
		QDim:       1,
		CmN:        []uint32{0},
		Cm2ns:      []uint32{0},
		TmpExpN:    []uint32{},
		VarPolMap: []starkinfo.VarPolMap{
			{Section: "cm1_n", SectionPos: 0, Dim: 1},
		},
		MapSectionsN: map[string]uint32{
			"const_n":   4,
			"const_2ns": 4,
			"cm1_n":     1,
			"cm1_2ns":   1,
		},
	}
}

func newScalarBuf(n int) []field.Fv {
	buf := make([]field.Fv, n)
	for i := range buf {
		buf[i] = field.FvZero
	}
	return buf
}

// S1: add base/base.
func TestS1AddBaseBase(t *testing.T) {
	info := flatInfo(3, 3) // N=8
	code := compile.Code{
		{
			Op: compile.OpAdd,
			Src: []ref.Node{
				{Kind: ref.KindNumber, Value: "3"},
				{Kind: ref.KindNumber, Value: "5"},
			},
			Dest: ref.Node{Kind: ref.KindTmp, ID: 0},
		},
	}
	block, err := compile.Compile(info, code, domain.Base, true, "s1")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx := NewContext(nil)
	_ = ctx.SetSection("tmp", newScalarBuf(1))

	got, err := Eval(block, ctx, 0)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := field.FvFromBase(field.NewBase(8))
	if !got.Equal(want) {
		t.Errorf("S1: got %v, want %v", got.AsElements(), want.AsElements())
	}
	tmpBuf, _ := ctx.section("tmp")
	if !tmpBuf[0].Equal(want) {
		t.Errorf("S1: ctx.tmp[0] = %v, want %v", tmpBuf[0].AsElements(), want.AsElements())
	}
}

// S2: row rotation via prime.
func TestS2Rotation(t *testing.T) {
	info := flatInfo(2, 2) // N=4
	code := compile.Code{
		{
			Op:   compile.OpCopy,
			Src:  []ref.Node{{Kind: ref.KindCm, ID: 0, Prime: true}},
			Dest: ref.Node{Kind: ref.KindTmp, ID: 0},
		},
	}
	block, err := compile.Compile(info, code, domain.Base, true, "s2")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx := NewContext(nil)
	cm1n := make([]field.Fv, 4)
	for j := range cm1n {
		cm1n[j] = field.FvFromBase(field.NewBase(uint64(j)))
	}
	_ = ctx.SetSection("cm1_n", cm1n)
	_ = ctx.SetSection("tmp", newScalarBuf(1))

	got, err := Eval(block, ctx, 2)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := field.FvFromBase(field.NewBase(3))
	if !got.Equal(want) {
		t.Errorf("S2: got %v, want %v", got.AsElements(), want.AsElements())
	}
}

// S3: extension multiplication, widened tmp storage.
func TestS3ExtensionMul(t *testing.T) {
	info := flatInfo(1, 1) // N=2
	code := compile.Code{
		{
			Op: compile.OpMul,
			Src: []ref.Node{
				{Kind: ref.KindChallenge, ID: 0},
				{Kind: ref.KindNumber, Value: "2"},
			},
			Dest: ref.Node{Kind: ref.KindTmp, ID: 0},
		},
	}
	block, err := compile.Compile(info, code, domain.Base, true, "s3")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx := NewContext(nil)
	challenge := make([]field.Fv, 1)
	challenge[0] = field.FvFromExt3(field.NewExt3(field.NewBase(1), field.NewBase(2), field.NewBase(3)))
	_ = ctx.SetSection("challenge", challenge)
	_ = ctx.SetSection("tmp", newScalarBuf(1))

	got, err := Eval(block, ctx, 0)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := field.FvFromExt3(field.NewExt3(field.NewBase(2), field.NewBase(4), field.NewBase(6)))
	if !got.Equal(want) {
		t.Errorf("S3: got %v, want %v", got.AsElements(), want.AsElements())
	}
	if got.Dim() != 3 {
		t.Errorf("S3: expected dim=3 result, got dim=%d", got.Dim())
	}

	tmpBuf, _ := ctx.section("tmp")
	if !tmpBuf[0].Equal(want) || tmpBuf[0].Dim() != 3 {
		t.Errorf("S3: ctx.tmp[0] must hold the full widened extension value, got %v dim=%d", tmpBuf[0].AsElements(), tmpBuf[0].Dim())
	}
}

// S4: modular wrap addressing for a const reference.
func TestS4ModularWrap(t *testing.T) {
	idx, err := domain.Index(0, 1, 16, 4, 15)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if idx != 0 {
		t.Errorf("S4: got index %d, want 0", idx)
	}
}

// S5: Zi closure.
func TestS5Zi(t *testing.T) {
	info := flatInfo(3, 3) // N=8
	code := compile.Code{
		{
			Op:   compile.OpCopy,
			Src:  []ref.Node{{Kind: ref.KindZi}},
			Dest: ref.Node{Kind: ref.KindTmp, ID: 0},
		},
	}
	block, err := compile.Compile(info, code, domain.Base, true, "s5")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	zi := func(i uint64) field.Base { return field.NewBase(i + 1) }
	ctx := NewContext(zi)
	_ = ctx.SetSection("tmp", newScalarBuf(1))

	got, err := Eval(block, ctx, 5)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := field.FvFromBase(field.NewBase(6))
	if !got.Equal(want) {
		t.Errorf("S5: got %v, want %v", got.AsElements(), want.AsElements())
	}
}

// S6: eval_map dim=3 addressing.
func TestS6EvalMapDim3(t *testing.T) {
	info := &starkinfo.StarkInfo{
		NBits:    3, // 2^3 = 8, so nbits_ext=8 gives rotation=2^(8-3)=32... pick smaller
		NBitsExt: 5, // N=32, rotation=2^(5-3)=4
		QDim:     1,
		Cm2ns:    []uint32{99},
		VarPolMap: func() []starkinfo.VarPolMap {
			m := make([]starkinfo.VarPolMap, 100)
			m[99] = starkinfo.VarPolMap{Section: "cm3_2ns", SectionPos: 7, Dim: 3}
			return m
		}(),
		MapSectionsN: map[string]uint32{"cm3_2ns": 12},
	}
	ext, err := domain.Derive(domain.Extended, info.NBits, info.NBitsExt)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if ext.N != 32 || ext.Rotation != 4 {
		t.Fatalf("unexpected domain params: %+v", ext)
	}

	op, err := ref.Resolve(ref.Node{Kind: ref.KindCm, ID: 0, Prime: false}, domain.Extended, ext, info)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	d := op.Refer
	idx, err := domain.Index(d.Offset, d.Next, d.Modulus, d.Stride, 10)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if idx != 127 {
		t.Fatalf("S6: got base index %d, want 127", idx)
	}

	ctx := NewContext(nil)
	buf := make([]field.Fv, 132)
	buf[127] = field.FvFromBase(field.NewBase(70))
	buf[128] = field.FvFromBase(field.NewBase(80))
	buf[129] = field.FvFromBase(field.NewBase(90))
	_ = ctx.SetSection("cm3_2ns", buf)

	v, err := load(ctx, d, 10)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := field.FvFromExt3(field.NewExt3(field.NewBase(70), field.NewBase(80), field.NewBase(90)))
	if !v.Equal(want) {
		t.Errorf("S6: got %v, want %v", v.AsElements(), want.AsElements())
	}
}

// Universal invariant 1: row rotation equivalence.
func TestRotationEquivalence(t *testing.T) {
	n, stride, offset := uint64(8), uint64(1), uint64(0)
	rotation := uint64(1)
	for i := uint64(0); i < n; i++ {
		withPrime, err := domain.Index(offset, rotation, n, stride, i)
		if err != nil {
			t.Fatalf("Index: %v", err)
		}
		withoutPrime, err := domain.Index(offset, 0, n, stride, (i+rotation)%n)
		if err != nil {
			t.Fatalf("Index: %v", err)
		}
		if withPrime != withoutPrime {
			t.Errorf("row %d: prime-rotated index %d != shifted-row index %d", i, withPrime, withoutPrime)
		}
	}
}

// Universal invariant 2: dim-1 embedding.
func TestDimOneEmbedding(t *testing.T) {
	a := field.NewBase(11)
	b := field.NewBase(13)

	scalarSum := field.FvFromBase(a).Add(field.FvFromBase(b))
	liftedSum := field.FvFromExt3(field.NewExt3FromBase(a)).Add(field.FvFromExt3(field.NewExt3FromBase(b)))

	if !field.FvFromBase(scalarSum.Base()).Equal(field.FvFromBase(liftedSum.AsExt3().ToBase())) {
		t.Errorf("dim-1 embedding broken: scalar=%v lifted=%v", scalarSum.AsElements(), liftedSum.AsElements())
	}
}

// Universal invariant 3: write-read round trip, including a dim=3 value
// stored in a regular (non-tmp) section.
func TestWriteReadRoundTrip(t *testing.T) {
	ctx := NewContext(nil)
	buf := make([]field.Fv, 6)
	_ = ctx.SetSection("cm1_n", buf)

	d := program.Descriptor{Section: "cm1_n", Offset: 0, Next: 0, Modulus: 4, Stride: 3, Dim: 3}
	v := field.FvFromExt3(field.NewExt3(field.NewBase(4), field.NewBase(5), field.NewBase(6)))

	if err := store(ctx, d, 1, v); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, err := load(ctx, d, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Equal(v) {
		t.Errorf("round trip: got %v, want %v", got.AsElements(), v.AsElements())
	}
}

func TestEvalReturnsZeroWithoutRet(t *testing.T) {
	block := &program.Block{
		Namespace: "no-ret",
		Instructions: []program.Instruction{
			{Kind: program.InstrVari, Args: []program.Operand{program.VariOperand(field.FvFromBase(field.NewBase(42)))}},
		},
	}
	ctx := NewContext(nil)
	got, err := Eval(block, ctx, 0)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !got.Equal(field.FvZero) {
		t.Errorf("expected zero when block ends without Ret, got %v", got.AsElements())
	}
}

func TestEvalStackUnderflow(t *testing.T) {
	block := &program.Block{
		Namespace: "underflow",
		Instructions: []program.Instruction{
			{Kind: program.InstrRet},
		},
	}
	ctx := NewContext(nil)
	if _, err := Eval(block, ctx, 0); err == nil {
		t.Fatalf("expected a stack underflow error")
	}
}

func TestEvalRowsMatchesSequentialEval(t *testing.T) {
	info := flatInfo(3, 3)
	code := compile.Code{
		{
			Op: compile.OpAdd,
			Src: []ref.Node{
				{Kind: ref.KindCm, ID: 0},
				{Kind: ref.KindNumber, Value: "1"},
			},
			Dest: ref.Node{Kind: ref.KindTmp, ID: 0},
		},
	}
	block, err := compile.Compile(info, code, domain.Base, true, "parallel")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	newCtx := func() *Context {
		ctx := NewContext(nil)
		cm1n := make([]field.Fv, 8)
		for j := range cm1n {
			cm1n[j] = field.FvFromBase(field.NewBase(uint64(j * 2)))
		}
		_ = ctx.SetSection("cm1_n", cm1n)
		_ = ctx.SetSection("tmp", newScalarBuf(1))
		return ctx
	}

	sequential := make([]field.Fv, 8)
	seqCtx := newCtx()
	for i := uint64(0); i < 8; i++ {
		v, err := Eval(block, seqCtx, i)
		if err != nil {
			t.Fatalf("Eval row %d: %v", i, err)
		}
		sequential[i] = v
	}

	parallelCtx := newCtx()
	parallel, err := EvalRows(block, parallelCtx, 0, 8, 4)
	if err != nil {
		t.Fatalf("EvalRows: %v", err)
	}
	for i := range sequential {
		if !sequential[i].Equal(parallel[i]) {
			t.Errorf("row %d: sequential=%v parallel=%v", i, sequential[i].AsElements(), parallel[i].AsElements())
		}
	}
}
