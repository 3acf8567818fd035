// Package program is the flat intermediate representation the Code
// Compiler emits and the Stack Interpreter consumes: Descriptor (a closed
// address form), Operand (an inline Vari-or-Refer operand), Instruction
// (the tagged union from spec §3), and Block (an ordered instruction list
// plus a namespace).
//
// This mirrors starky/src/interpreter.rs's Expr/Block pair, where one
// struct does double duty as both the top-level instruction list and the
// inline operand trees nested inside arithmetic instructions (operand
// nesting never exceeds depth 1, since the source `code` is already
// three-address).
package program

import (
	"fmt"
	"strings"

	"github.com/vybium/airvm/internal/airvm/field"
)

// Descriptor is the closed address form: offset + ((i+next) mod N) * stride,
// scoped to a named context section, with a dim tag of 1 or 3.
type Descriptor struct {
	Section string
	Offset  uint64
	Next    uint64
	Modulus uint64
	Stride  uint64
	Dim     int
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s[%d + ((i+%d)%%%d)*%d] dim=%d", d.Section, d.Offset, d.Next, d.Modulus, d.Stride, d.Dim)
}

// OperandKind distinguishes an inline immediate value from an inline
// memory reference.
type OperandKind int

const (
	OperandVari OperandKind = iota
	OperandRefer
)

// Operand is an inline arithmetic operand: either an immediate Fv or a
// Descriptor to be loaded on demand.
type Operand struct {
	Kind  OperandKind
	Vari  field.Fv
	Refer Descriptor
}

// VariOperand wraps an immediate value.
func VariOperand(v field.Fv) Operand { return Operand{Kind: OperandVari, Vari: v} }

// ReferOperand wraps a memory reference.
func ReferOperand(d Descriptor) Operand { return Operand{Kind: OperandRefer, Refer: d} }

func (o Operand) String() string {
	if o.Kind == OperandVari {
		return fmt.Sprintf("vari(%v)", o.Vari.AsElements())
	}
	return fmt.Sprintf("refer(%s)", o.Refer)
}

// Op names the arithmetic instructions.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	default:
		return "unknown-op"
	}
}

// InstrKind tags which instruction variant this is, per spec §3:
// Vari(Fv) | Add | Sub | Mul | Copy | Write | Refer(section, defs, dim) | Ret.
type InstrKind int

const (
	InstrVari InstrKind = iota
	InstrArith
	InstrCopy
	InstrWrite
	InstrRefer
	InstrRet
)

// Instruction is one entry in a compiled Block.
//
//   - InstrVari:  push Vari.
//   - InstrArith: combine Args[0] and Args[1] under Op, push the result.
//   - InstrCopy:  push Args[0]'s value unchanged.
//   - InstrWrite: pop one value and store it at Dest.
//   - InstrRefer: load from Dest and push it.
//   - InstrRet:   pop and return.
type Instruction struct {
	Kind InstrKind
	Op   Op
	Args []Operand
	Dest Descriptor
}

func (in Instruction) String() string {
	switch in.Kind {
	case InstrVari:
		return fmt.Sprintf("vari %v", in.Args[0])
	case InstrArith:
		return fmt.Sprintf("%s %s %s", in.Op, in.Args[0], in.Args[1])
	case InstrCopy:
		return fmt.Sprintf("copy %s", in.Args[0])
	case InstrWrite:
		return fmt.Sprintf("write %s", in.Dest)
	case InstrRefer:
		return fmt.Sprintf("refer %s", in.Dest)
	case InstrRet:
		return "ret"
	default:
		return "unknown"
	}
}

// Block is the flat program compiled for one constraint group over one
// domain: a namespace label (informational, kept from the teacher's own
// "ctx" namespace convention) plus the ordered instruction list.
type Block struct {
	Namespace    string
	Instructions []Instruction
}

// String renders a disassembly of the block, used by cmd/aircompile's
// dump mode and by tests asserting on compiled-program shape.
func (b *Block) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ns: %s\n", b.Namespace)
	for _, in := range b.Instructions {
		fmt.Fprintf(&sb, "\t%s\n", in)
	}
	return sb.String()
}
