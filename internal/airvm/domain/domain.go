// Package domain derives the evaluation-domain sizing and row-rotation
// distance the Address Resolver and Code Compiler need, adapted from the
// teacher's protocols.ArithmeticDomain/DeriveProverDomains (base/extended
// domain split, power-of-two bookkeeping) but reduced to the bookkeeping
// this interpreter actually needs: this package has no FFT/LDE machinery,
// since that is explicitly out of scope (spec §1).
package domain

import "fmt"

// Kind selects which of the two domains a compilation targets.
type Kind int

const (
	// Base is the un-extended evaluation domain, size 2^nbits.
	Base Kind = iota
	// Extended is the low-degree-extension coset, size 2^nbits_ext.
	Extended
)

// String renders the domain the way the original interpreter's string
// keys did ("n" / "2ns"), kept for diagnostics and the CLI disassembler.
func (k Kind) String() string {
	switch k {
	case Base:
		return "n"
	case Extended:
		return "2ns"
	default:
		return "unknown"
	}
}

// IsPowerOfTwo reports whether n is an exact power of two.
func IsPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}

// Params is the resolved sizing for one compilation: the row count N and
// the rotation distance `next` a `prime: true` reference node applies.
type Params struct {
	Kind     Kind
	N        uint64
	Rotation uint64
}

// Derive computes Params for the given domain from StarkInfo's bit widths.
//
//	N = 2^nbits        (base domain)
//	N = 2^nbits_ext     (extended domain)
//	rotation = 1                           (base domain)
//	rotation = 2^(nbits_ext - nbits)        (extended domain)
func Derive(kind Kind, nbits, nbitsExt uint) (Params, error) {
	if nbitsExt < nbits {
		return Params{}, fmt.Errorf("domain: nbits_ext (%d) must be >= nbits (%d)", nbitsExt, nbits)
	}

	switch kind {
	case Base:
		return Params{Kind: Base, N: uint64(1) << nbits, Rotation: 1}, nil
	case Extended:
		return Params{
			Kind:     Extended,
			N:        uint64(1) << nbitsExt,
			Rotation: uint64(1) << (nbitsExt - nbits),
		}, nil
	default:
		return Params{}, fmt.Errorf("domain: unknown domain kind %d", kind)
	}
}

// Index computes the row-rotated, column-strided address:
//
//	offset + ((i + next) mod N) * stride
//
// next is 0 for a non-rotated reference, or the domain's Rotation for a
// `prime: true` one (x and Zi references ignore prime entirely, so callers
// pass 0 for those regardless of the node's prime flag).
func Index(offset, next, n, stride uint64, i uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("domain: modulus N must be positive")
	}
	return offset + ((i+next)%n)*stride, nil
}
