package transcript

import (
	"testing"

	"github.com/vybium/airvm/internal/airvm/field"
)

func TestTranscriptIsDeterministic(t *testing.T) {
	run := func() (field.Base, field.Ext3, []uint64) {
		tr := New()
		tr.Absorb([]field.Base{field.NewBase(1), field.NewBase(2), field.NewBase(3)})
		b := tr.ChallengeBase()
		e := tr.Challenge()
		idx, err := tr.SampleIndices(4, 5)
		if err != nil {
			t.Fatalf("SampleIndices: %v", err)
		}
		return b, e, idx
	}

	b1, e1, idx1 := run()
	b2, e2, idx2 := run()

	if !b1.Equal(b2) {
		t.Errorf("ChallengeBase not deterministic: %v != %v", b1, b2)
	}
	if !e1.Equal(e2) {
		t.Errorf("Challenge not deterministic")
	}
	if len(idx1) != len(idx2) {
		t.Fatalf("SampleIndices length mismatch")
	}
	for i := range idx1 {
		if idx1[i] != idx2[i] {
			t.Errorf("index %d differs: %d != %d", i, idx1[i], idx2[i])
		}
	}
}

func TestTranscriptDivergesOnDifferentAbsorb(t *testing.T) {
	tr1 := New()
	tr1.Absorb([]field.Base{field.NewBase(1)})
	c1 := tr1.ChallengeBase()

	tr2 := New()
	tr2.Absorb([]field.Base{field.NewBase(2)})
	c2 := tr2.ChallengeBase()

	if c1.Equal(c2) {
		t.Errorf("different absorbed data produced the same challenge")
	}
}

func TestSampleIndicesRespectsBitWidth(t *testing.T) {
	tr := New()
	tr.Absorb([]field.Base{field.NewBase(42)})
	indices, err := tr.SampleIndices(32, 4)
	if err != nil {
		t.Fatalf("SampleIndices: %v", err)
	}
	for _, idx := range indices {
		if idx >= 16 {
			t.Errorf("index %d exceeds 2^4-1", idx)
		}
	}
}

func TestSampleIndicesRejectsInvalidBitWidth(t *testing.T) {
	tr := New()
	if _, err := tr.SampleIndices(1, 64); err == nil {
		t.Fatalf("expected an error for nbits=64")
	}
}
