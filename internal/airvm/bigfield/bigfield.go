// Package bigfield parses arbitrary-precision decimal literals into
// Goldilocks base-field elements. It is the one place in this module that
// still reaches for math/big, adapted from the teacher's own
// core.Field/core.FieldElement (NewElement: "normalized := new(big.Int).Mod(value, f.modulus)")
// for the single step that still needs it: a `number` reference node's
// decimal value string can exceed 64 bits before it is reduced mod p.
package bigfield

import (
	"fmt"
	"math/big"

	airfield "github.com/vybium/airvm/internal/airvm/field"
)

var modulus = new(big.Int).SetUint64(airfield.Modulus)

// Parse reduces an unsigned decimal string modulo the Goldilocks prime and
// returns the resulting Base element.
func Parse(decimal string) (airfield.Base, error) {
	v, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return airfield.ZeroBase, fmt.Errorf("bigfield: invalid decimal literal %q", decimal)
	}
	if v.Sign() < 0 {
		return airfield.ZeroBase, fmt.Errorf("bigfield: negative literal %q not permitted", decimal)
	}

	reduced := new(big.Int).Mod(v, modulus)
	return airfield.NewBase(reduced.Uint64()), nil
}
