// Package starkinfo holds the layout metadata consumed by the Address
// Resolver: StarkInfo describes where committed/temporary polynomials live
// in the per-domain context buffers. It is produced upstream (the layout
// table producer is explicitly out of scope, per spec §1/§6) and consumed
// here as a plain read-only value.
package starkinfo

import "fmt"

// VarPolMap describes where a single polynomial's evaluations live: which
// named context section, at what column offset within a row, and whether
// the polynomial is base (dim=1) or extension-valued (dim=3).
type VarPolMap struct {
	Section    string
	SectionPos uint32
	Dim        int
}

// StarkInfo is the layout metadata table the Address Resolver consumes to
// translate a cm/tmpExp reference node into a concrete descriptor.
type StarkInfo struct {
	// NBits and NBitsExt give the base and extended domain sizes as
	// log2(N); N = 1<<NBits resp. 1<<NBitsExt.
	NBits    uint
	NBitsExt uint

	// NConstants is the column stride of the const_n/const_2ns sections.
	NConstants uint32

	// QDim is the dimension of the quotient polynomial's q_2ns section:
	// must be 1 or 3.
	QDim int

	// CmN and Cm2ns map a `cm` reference node's id to a polynomial id in
	// VarPolMap, for the base and extended domains respectively.
	CmN   []uint32
	Cm2ns []uint32

	// TmpExpN maps a `tmpExp` reference node's id to a polynomial id in
	// VarPolMap. tmpExp is only defined in the base domain.
	TmpExpN []uint32

	// VarPolMap maps a polynomial id (as referenced by CmN/Cm2ns/TmpExpN)
	// to its section/offset/dim.
	VarPolMap []VarPolMap

	// MapSectionsN maps a section name to its column stride (the number
	// of Base cells a single row occupies in that section).
	MapSectionsN map[string]uint32
}

// Validate checks the structural invariants the resolver relies on.
func (si *StarkInfo) Validate() error {
	if si.NBitsExt < si.NBits {
		return fmt.Errorf("starkinfo: extended domain (nbits_ext=%d) smaller than base domain (nbits=%d)", si.NBitsExt, si.NBits)
	}
	if si.QDim != 1 && si.QDim != 3 {
		return fmt.Errorf("starkinfo: q_dim must be 1 or 3, got %d", si.QDim)
	}
	return nil
}

// PolMap resolves a polynomial id, returning a structural error for an
// out-of-range id (corrupt metadata, per spec §7).
func (si *StarkInfo) PolMap(polID uint32) (VarPolMap, error) {
	if int(polID) >= len(si.VarPolMap) {
		return VarPolMap{}, fmt.Errorf("starkinfo: polynomial id %d out of range (have %d)", polID, len(si.VarPolMap))
	}
	return si.VarPolMap[polID], nil
}

// SectionStride looks up a section's column stride, defaulting structural
// lookups that miss to an explicit error rather than a silent zero.
func (si *StarkInfo) SectionStride(section string) (uint32, error) {
	stride, ok := si.MapSectionsN[section]
	if !ok {
		return 0, fmt.Errorf("starkinfo: unknown section %q in map_sectionsN", section)
	}
	return stride, nil
}

// CmPolID resolves a `cm` reference node's id to a polynomial id for the
// given domain ("n" or "2ns", selected by the caller via the domain
// package's constants to avoid stringly-typed call sites elsewhere).
func (si *StarkInfo) CmPolID(id uint32, extended bool) (uint32, error) {
	table := si.CmN
	name := "cm_n"
	if extended {
		table = si.Cm2ns
		name = "cm_2ns"
	}
	if int(id) >= len(table) {
		return 0, fmt.Errorf("starkinfo: %s id %d out of range (have %d)", name, id, len(table))
	}
	return table[id], nil
}

// TmpExpPolID resolves a `tmpExp` reference node's id. tmpExp is only valid
// in the base domain; callers must check that before calling this.
func (si *StarkInfo) TmpExpPolID(id uint32) (uint32, error) {
	if int(id) >= len(si.TmpExpN) {
		return 0, fmt.Errorf("starkinfo: tmpexp_n id %d out of range (have %d)", id, len(si.TmpExpN))
	}
	return si.TmpExpN[id], nil
}
