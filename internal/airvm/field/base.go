// Package field implements the numeric value types the interpreter operates
// on: the Goldilocks base field, its degree-3 extension, and the runtime
// dim-tagged value that the stack VM actually pushes and pops.
package field

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// Base is an element of the Goldilocks prime field (p = 2^64 - 2^32 + 1).
// It is a thin alias over the teacher's own field-element type so every
// other package in this module talks to the same arithmetic the rest of
// the vybium-crypto dependency surface uses.
type Base = field.Element

// Modulus is the Goldilocks prime p.
const Modulus = field.P

// ZeroBase and OneBase are the additive and multiplicative identities.
var (
	ZeroBase = field.Zero
	OneBase  = field.One
)

// NewBase builds a Base element from a uint64, reducing mod p.
func NewBase(v uint64) Base {
	return field.New(v)
}
