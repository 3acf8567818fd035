package field

// Fv is the polymorphic value the stack interpreter pushes and pops: a
// runtime dim-tagged union of a Base scalar and an Ext3 triple. All
// arithmetic is defined over Fv x Fv, auto-lifting a dim=1 operand into the
// extension whenever it is combined with a dim=3 one.
type Fv struct {
	dim int
	ext Ext3
}

// FvFromBase wraps a Base scalar as a dim=1 value.
func FvFromBase(b Base) Fv {
	return Fv{dim: 1, ext: NewExt3FromBase(b)}
}

// FvFromExt3 wraps an extension element as a dim=3 value.
func FvFromExt3(e Ext3) Fv {
	return Fv{dim: 3, ext: e}
}

// FvZero is the dim=1 zero value.
var FvZero = FvFromBase(ZeroBase)

// Dim returns 1 or 3.
func (v Fv) Dim() int {
	return v.dim
}

// Base returns the scalar representation. It is only meaningful when
// Dim() == 1; callers that accept dim=3 values too should use AsExt3.
func (v Fv) Base() Base {
	return v.ext.C0
}

// AsExt3 returns the value lifted into the extension regardless of its
// own dim tag.
func (v Fv) AsExt3() Ext3 {
	return v.ext
}

// AsElements returns the three coordinates, with the upper two forced to
// zero when the value is dim=1 (they already are, by construction).
func (v Fv) AsElements() [3]Base {
	return v.ext.AsElements()
}

// IsZero reports whether the value is the additive identity in whichever
// dimension it currently carries.
func (v Fv) IsZero() bool {
	return v.ext.IsZero()
}

// Equal reports whether two values represent the same field element,
// independent of their dim tags (a dim=1 zero equals a dim=3 zero).
func (v Fv) Equal(o Fv) bool {
	return v.ext.Equal(o.ext)
}

// widen returns the result dim for a pair of operands: dim=1 only when both
// operands are dim=1, else 3 (the arithmetic itself always runs in the
// extension).
func widen(a, b Fv) int {
	if a.dim == 1 && b.dim == 1 {
		return 1
	}
	return 3
}

// Add returns a + b, auto-lifting a dim=1 operand when the other is dim=3.
func (v Fv) Add(o Fv) Fv {
	return Fv{dim: widen(v, o), ext: v.ext.Add(o.ext)}
}

// Sub returns a - b.
func (v Fv) Sub(o Fv) Fv {
	return Fv{dim: widen(v, o), ext: v.ext.Sub(o.ext)}
}

// Mul returns a * b.
func (v Fv) Mul(o Fv) Fv {
	return Fv{dim: widen(v, o), ext: v.ext.Mul(o.ext)}
}
