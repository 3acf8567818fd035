// Package merkle is a reference adapter for the MerkleTree capability spec
// §6 leaves external to the VM: committing a row-major buffer of field
// values and opening leaves against a root. It is grounded on the teacher's
// core/merkle.go tree-building shape (leaf hashing, level construction,
// sibling-path proof), reworked to hash field.Base rows directly with
// vybium-crypto's own field-native hash, the way protocols/claim.go and
// protocols/master_table.go hash row/claim data before committing it,
// instead of the byte-oriented sha256/sha3 path core/merkle.go falls back
// to for non-field payloads.
package merkle

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"

	"github.com/vybium/airvm/internal/airvm/field"
)

// Digest is a single field-native hash output. vybium-crypto's PoseidonHash
// folds an arbitrary number of Base elements into one, so a tree node's
// hash is itself a Base rather than a byte array.
type Digest = field.Base

// Tree is a binary Merkle tree over a row-major buffer of field.Base
// cells: height rows of width cells each, one leaf hash per row.
type Tree struct {
	width  int
	height int
	rows   [][]field.Base
	leaves []Digest
	levels [][]Digest
}

// hashRow hashes one row's cells into a leaf digest.
func hashRow(row []field.Base) Digest {
	return hash.PoseidonHash(row)
}

func hashPair(a, b Digest) Digest {
	return hash.PoseidonHash([]field.Base{a, b})
}

// Commit builds a Tree over buf, interpreted as height rows of width cells
// each (buf must have length width*height).
func Commit(buf []field.Base, width, height int) (*Tree, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("merkle: width and height must be positive, got %d x %d", width, height)
	}
	if len(buf) != width*height {
		return nil, fmt.Errorf("merkle: buffer length %d does not match width*height=%d", len(buf), width*height)
	}

	rows := make([][]field.Base, height)
	leaves := make([]Digest, height)
	for row := 0; row < height; row++ {
		rows[row] = buf[row*width : (row+1)*width]
		leaves[row] = hashRow(rows[row])
	}

	levels := [][]Digest{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([]Digest, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, hashPair(current[i], current[i+1]))
			} else {
				next = append(next, hashPair(current[i], current[i]))
			}
		}
		levels = append(levels, next)
		current = next
	}

	return &Tree{width: width, height: height, rows: rows, leaves: leaves, levels: levels}, nil
}

// Root returns the tree's root digest.
func (t *Tree) Root() Digest {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Element returns the raw (un-hashed) cell at row idx, column sub.
func (t *Tree) Element(idx, sub int) (field.Base, error) {
	if idx < 0 || idx >= len(t.rows) {
		return field.ZeroBase, fmt.Errorf("merkle: row index %d out of range [0, %d)", idx, len(t.rows))
	}
	if sub < 0 || sub >= t.width {
		return field.ZeroBase, fmt.Errorf("merkle: column index %d out of range [0, %d)", sub, t.width)
	}
	return t.rows[idx][sub], nil
}

// PathNode is one sibling digest encountered walking from a leaf to the
// root, tagged with which side it sits on.
type PathNode struct {
	Hash    Digest
	IsRight bool
}

// Proof returns the leaf's row and its authentication path to the root.
func (t *Tree) Proof(idx int) ([]field.Base, []PathNode, error) {
	if idx < 0 || idx >= len(t.leaves) {
		return nil, nil, fmt.Errorf("merkle: leaf index %d out of range [0, %d)", idx, len(t.leaves))
	}
	var path []PathNode
	cur := idx
	for level := 0; level < len(t.levels)-1; level++ {
		row := t.levels[level]
		if cur%2 == 0 {
			sib := cur + 1
			if sib >= len(row) {
				// Commit pairs an unpaired last node with itself.
				sib = cur
			}
			path = append(path, PathNode{Hash: row[sib], IsRight: true})
		} else {
			path = append(path, PathNode{Hash: row[cur-1], IsRight: false})
		}
		cur /= 2
	}
	leaf := append([]field.Base(nil), t.rows[idx]...)
	return leaf, path, nil
}

// Verify checks that leaf (the raw row returned by Proof), combined with
// path, reproduces root.
func Verify(root Digest, leaf []field.Base, path []PathNode) bool {
	h := hashRow(leaf)
	for _, node := range path {
		if node.IsRight {
			h = hashPair(h, node.Hash)
		} else {
			h = hashPair(node.Hash, h)
		}
	}
	return h.Equal(root)
}
