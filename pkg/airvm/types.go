// Package airvm is the public surface of the arithmetic expression
// interpreter: Address Resolver, Code Compiler, and Stack Interpreter
// layers, composed behind a small stable API. Implementation details live
// in internal/airvm and may change without notice; only what this package
// exports is a compatibility boundary.
package airvm

import (
	"github.com/vybium/airvm/internal/airvm/compile"
	"github.com/vybium/airvm/internal/airvm/domain"
	"github.com/vybium/airvm/internal/airvm/field"
	"github.com/vybium/airvm/internal/airvm/program"
	"github.com/vybium/airvm/internal/airvm/ref"
	"github.com/vybium/airvm/internal/airvm/starkinfo"
	"github.com/vybium/airvm/internal/airvm/vm"
)

// Base is an element of the Goldilocks prime field.
type Base = field.Base

// Ext3 is an element of the degree-3 extension field.
type Ext3 = field.Ext3

// Fv is the polymorphic dim-tagged value the interpreter pushes, pops,
// loads, and stores.
type Fv = field.Fv

// Domain selects which of the two evaluation domains a compilation and
// its context target.
type Domain = domain.Kind

const (
	// BaseDomain is the un-extended evaluation domain, size 2^nbits.
	BaseDomain Domain = domain.Base
	// ExtendedDomain is the low-degree-extension coset, size 2^nbits_ext.
	ExtendedDomain Domain = domain.Extended
)

// NodeKind enumerates the reference-node kinds a Code section may name.
type NodeKind = ref.Kind

// Re-exported NodeKind constants, for callers building Code programmatically.
const (
	KindTmp         = ref.KindTmp
	KindConst       = ref.KindConst
	KindCm          = ref.KindCm
	KindTmpExp      = ref.KindTmpExp
	KindQ           = ref.KindQ
	KindF           = ref.KindF
	KindNumber      = ref.KindNumber
	KindPublic      = ref.KindPublic
	KindChallenge   = ref.KindChallenge
	KindEval        = ref.KindEval
	KindXDivXSubXi  = ref.KindXDivXSubXi
	KindXDivXSubWXi = ref.KindXDivXSubWXi
	KindX           = ref.KindX
	KindZi          = ref.KindZi
)

// Node is a symbolic reference to a committed polynomial, constant,
// public input, challenge, temporary, or domain-derived helper.
type Node = ref.Node

// Op names a three-address operation a Section requests.
type Op = compile.Op

const (
	OpAdd  = compile.OpAdd
	OpSub  = compile.OpSub
	OpMul  = compile.OpMul
	OpCopy = compile.OpCopy
)

// Section is one three-address statement: dest = op(src...).
type Section = compile.Section

// Code is the ordered list of sections a compilation walks.
type Code = compile.Code

// Block is the flat, re-entrant program the compiler emits and the
// interpreter runs.
type Block = program.Block

// VarPolMap describes where one polynomial's evaluations live.
type VarPolMap = starkinfo.VarPolMap

// StarkInfo is the layout metadata the Address Resolver consumes.
type StarkInfo = starkinfo.StarkInfo

// Context holds the named row buffers a Block reads and writes.
type Context = vm.Context

// ZiFunc is the vanishing-polynomial-inverse closure, keyed by row index.
type ZiFunc = vm.ZiFunc

// NewBase wraps a uint64 as a Base field element.
func NewBase(v uint64) Base { return field.NewBase(v) }

// FvFromBase wraps a Base scalar as a dim=1 Fv.
func FvFromBase(b Base) Fv { return field.FvFromBase(b) }

// FvFromExt3 wraps an extension element as a dim=3 Fv.
func FvFromExt3(e Ext3) Fv { return field.FvFromExt3(e) }
