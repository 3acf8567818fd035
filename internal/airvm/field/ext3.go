package field

// Ext3 is an element of the degree-3 extension of the Goldilocks field,
// represented as the ordered triple (c0, c1, c2) of coefficients of
// 1, x, x^2 respectively, reduced modulo the irreducible cubic
// x^3 - x - 1. This is the cubic extension used across the Goldilocks
// STARK ecosystem (the one starky's F3G and vybium-crypto's xfield
// package both target).
//
// An Ext3 with c1 = c2 = 0 is equal to the Base element c0; NewExt3FromBase
// performs that embedding.
type Ext3 struct {
	C0, C1, C2 Base
}

// ZeroExt3 and OneExt3 are the additive and multiplicative identities.
var (
	ZeroExt3 = Ext3{ZeroBase, ZeroBase, ZeroBase}
	OneExt3  = Ext3{OneBase, ZeroBase, ZeroBase}
)

// NewExt3 builds an extension element from its three coordinates.
func NewExt3(c0, c1, c2 Base) Ext3 {
	return Ext3{C0: c0, C1: c1, C2: c2}
}

// NewExt3FromBase lifts a base-field element into the extension.
func NewExt3FromBase(b Base) Ext3 {
	return Ext3{C0: b, C1: ZeroBase, C2: ZeroBase}
}

// IsBase reports whether the upper two coordinates are zero, i.e. whether
// this element is equal to a plain Base value.
func (e Ext3) IsBase() bool {
	return e.C1.Equal(ZeroBase) && e.C2.Equal(ZeroBase)
}

// ToBase projects the element onto its constant coordinate. Callers that
// need to assert the upper coordinates are zero should check IsBase first.
func (e Ext3) ToBase() Base {
	return e.C0
}

// AsElements returns the coordinates as a 3-element slice, in the order
// they are written to a row-major context buffer.
func (e Ext3) AsElements() [3]Base {
	return [3]Base{e.C0, e.C1, e.C2}
}

// FromElements is the inverse of AsElements.
func FromElements(c [3]Base) Ext3 {
	return Ext3{C0: c[0], C1: c[1], C2: c[2]}
}

// Add returns e + o.
func (e Ext3) Add(o Ext3) Ext3 {
	return Ext3{e.C0.Add(o.C0), e.C1.Add(o.C1), e.C2.Add(o.C2)}
}

// Sub returns e - o.
func (e Ext3) Sub(o Ext3) Ext3 {
	return Ext3{e.C0.Sub(o.C0), e.C1.Sub(o.C1), e.C2.Sub(o.C2)}
}

// Mul returns e * o, reduced modulo x^3 - x - 1.
//
// Expanding (a0+a1x+a2x^2)(b0+b1x+b2x^2) and substituting x^3 = x+1,
// x^4 = x^2+x yields:
//
//	c0 = a0b0 + (a1b2 + a2b1)
//	c1 = a0b1 + a1b0 + (a1b2 + a2b1) + a2b2
//	c2 = a0b2 + a1b1 + a2b0 + a2b2
func (e Ext3) Mul(o Ext3) Ext3 {
	a0, a1, a2 := e.C0, e.C1, e.C2
	b0, b1, b2 := o.C0, o.C1, o.C2

	cross := a1.Mul(b2).Add(a2.Mul(b1))

	c0 := a0.Mul(b0).Add(cross)
	c1 := a0.Mul(b1).Add(a1.Mul(b0)).Add(cross).Add(a2.Mul(b2))
	c2 := a0.Mul(b2).Add(a1.Mul(b1)).Add(a2.Mul(b0)).Add(a2.Mul(b2))

	return Ext3{c0, c1, c2}
}

// MulBase returns e scaled by a base-field scalar.
func (e Ext3) MulBase(s Base) Ext3 {
	return Ext3{e.C0.Mul(s), e.C1.Mul(s), e.C2.Mul(s)}
}

// Neg returns -e.
func (e Ext3) Neg() Ext3 {
	return ZeroExt3.Sub(e)
}

// IsZero reports whether e is the additive identity.
func (e Ext3) IsZero() bool {
	return e.C0.Equal(ZeroBase) && e.C1.Equal(ZeroBase) && e.C2.Equal(ZeroBase)
}

// Equal reports whether e and o have identical coordinates.
func (e Ext3) Equal(o Ext3) bool {
	return e.C0.Equal(o.C0) && e.C1.Equal(o.C1) && e.C2.Equal(o.C2)
}

// Dim returns 3, satisfying the FieldExtension capability (§6).
func (e Ext3) Dim() int {
	return 3
}
