package airvm

import (
	"github.com/vybium/airvm/internal/airvm/field"
	"github.com/vybium/airvm/internal/airvm/merkle"
)

// MerkleTree is the commitment capability the surrounding prover supplies;
// the interpreter itself never calls it. internal/airvm/merkle.Tree is a
// reference implementation satisfying this shape (modulo Go's lack of a
// parameterless New — use merkle.Commit).
type MerkleTree interface {
	Root() merkle.Digest
	Element(idx, sub int) (field.Base, error)
	Proof(idx int) ([]field.Base, []merkle.PathNode, error)
}

// Transcript is the Fiat-Shamir capability the surrounding prover supplies.
// internal/airvm/transcript.Transcript satisfies this shape.
type Transcript interface {
	Absorb(values []field.Base)
	Challenge() field.Ext3
	ChallengeBase() field.Base
	SampleIndices(n, nbits int) ([]uint64, error)
}

// FieldExtension is the algebraic capability Fv and Ext3 already satisfy
// directly; it is named here only so external collaborators (a prover's
// LDE/FRI layer) can depend on the shape without importing internal/airvm.
type FieldExtension interface {
	Dim() int
	AsElements() [3]field.Base
}
