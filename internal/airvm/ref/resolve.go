package ref

import (
	"fmt"

	"github.com/vybium/airvm/internal/airvm/bigfield"
	"github.com/vybium/airvm/internal/airvm/domain"
	"github.com/vybium/airvm/internal/airvm/field"
	"github.com/vybium/airvm/internal/airvm/program"
	"github.com/vybium/airvm/internal/airvm/starkinfo"
)

// next returns the row-rotation distance for a reference that honors the
// node's prime flag: 0 when prime is false, params.Rotation otherwise.
func next(prime bool, params domain.Params) uint64 {
	if prime {
		return params.Rotation
	}
	return 0
}

// evalMap resolves a cm/tmpExp-style polynomial id to a Descriptor via the
// layout table, grounded on interpreter.rs's eval_map helper.
func evalMap(info *starkinfo.StarkInfo, polID uint32, prime bool, params domain.Params) (program.Descriptor, error) {
	pm, err := info.PolMap(polID)
	if err != nil {
		return program.Descriptor{}, err
	}
	stride, err := info.SectionStride(pm.Section)
	if err != nil {
		return program.Descriptor{}, err
	}
	return program.Descriptor{
		Section: pm.Section,
		Offset:  uint64(pm.SectionPos),
		Next:    next(prime, params),
		Modulus: params.N,
		Stride:  uint64(stride),
		Dim:     pm.Dim,
	}, nil
}

// resolve implements the full per-kind mapping table of spec §4.1. Both
// Resolve and ResolveDest call this; they differ only in which kinds they
// permit.
func resolve(node Node, dom domain.Kind, params domain.Params, info *starkinfo.StarkInfo) (program.Operand, error) {
	extended := dom == domain.Extended

	switch node.Kind {
	case KindNumber:
		v, err := bigfield.Parse(node.Value)
		if err != nil {
			return program.Operand{}, fmt.Errorf("ref: number node: %w", err)
		}
		return program.VariOperand(field.FvFromBase(v)), nil

	case KindTmp:
		return program.ReferOperand(program.Descriptor{
			Section: "tmp",
			Offset:  uint64(node.ID),
			Next:    next(node.Prime, params),
			Modulus: params.N,
			Stride:  0,
			Dim:     1,
		}), nil

	case KindPublic:
		return program.ReferOperand(program.Descriptor{
			Section: "publics",
			Offset:  uint64(node.ID),
			Next:    next(node.Prime, params),
			Modulus: params.N,
			Stride:  0,
			Dim:     1,
		}), nil

	case KindChallenge:
		return program.ReferOperand(program.Descriptor{
			Section: "challenge",
			Offset:  uint64(node.ID),
			Next:    next(node.Prime, params),
			Modulus: params.N,
			Stride:  0,
			Dim:     1,
		}), nil

	case KindEval:
		return program.ReferOperand(program.Descriptor{
			Section: "evals",
			Offset:  uint64(node.ID),
			Next:    next(node.Prime, params),
			Modulus: params.N,
			Stride:  0,
			Dim:     1,
		}), nil

	case KindConst:
		section := "const_n"
		if extended {
			section = "const_2ns"
		}
		return program.ReferOperand(program.Descriptor{
			Section: section,
			Offset:  uint64(node.ID),
			Next:    next(node.Prime, params),
			Modulus: params.N,
			Stride:  uint64(info.NConstants),
			Dim:     1,
		}), nil

	case KindCm:
		polID, err := info.CmPolID(node.ID, extended)
		if err != nil {
			return program.Operand{}, err
		}
		d, err := evalMap(info, polID, node.Prime, params)
		if err != nil {
			return program.Operand{}, err
		}
		return program.ReferOperand(d), nil

	case KindTmpExp:
		if extended {
			return program.Operand{}, fmt.Errorf("ref: tmpExp reference is only valid in the base domain")
		}
		polID, err := info.TmpExpPolID(node.ID)
		if err != nil {
			return program.Operand{}, err
		}
		d, err := evalMap(info, polID, node.Prime, params)
		if err != nil {
			return program.Operand{}, err
		}
		return program.ReferOperand(d), nil

	case KindQ:
		if !extended {
			return program.Operand{}, fmt.Errorf("ref: q reference is only valid in the extended domain")
		}
		return program.ReferOperand(program.Descriptor{
			Section: "q_2ns",
			Offset:  uint64(node.ID),
			Next:    0,
			Modulus: params.N,
			Stride:  0,
			Dim:     info.QDim,
		}), nil

	case KindF:
		if !extended {
			return program.Operand{}, fmt.Errorf("ref: f reference is only valid in the extended domain")
		}
		return program.ReferOperand(program.Descriptor{
			Section: "f_2ns",
			Offset:  uint64(node.ID),
			Next:    0,
			Modulus: params.N,
			Stride:  0,
			Dim:     3,
		}), nil

	case KindX:
		section := "x_n"
		if extended {
			section = "x_2ns"
		}
		return program.ReferOperand(program.Descriptor{
			Section: section,
			Offset:  0,
			Next:    0,
			Modulus: params.N,
			Stride:  1,
			Dim:     1,
		}), nil

	case KindZi:
		return program.ReferOperand(program.Descriptor{
			Section: "Zi",
			Offset:  0,
			Next:    0,
			Modulus: params.N,
			Stride:  1,
			Dim:     1,
		}), nil

	case KindXDivXSubXi:
		if !extended {
			return program.Operand{}, fmt.Errorf("ref: xDivXSubXi reference is only valid in the extended domain")
		}
		return program.ReferOperand(program.Descriptor{
			Section: "xDivXSubXi",
			Offset:  0,
			Next:    0,
			Modulus: params.N,
			Stride:  3,
			Dim:     3,
		}), nil

	case KindXDivXSubWXi:
		if !extended {
			return program.Operand{}, fmt.Errorf("ref: xDivXSubWXi reference is only valid in the extended domain")
		}
		return program.ReferOperand(program.Descriptor{
			Section: "xDivXSubWXi",
			Offset:  0,
			Next:    0,
			Modulus: params.N,
			Stride:  3,
			Dim:     3,
		}), nil

	default:
		return program.Operand{}, fmt.Errorf("ref: unknown reference kind %d", node.Kind)
	}
}

// Resolve translates a source (read) reference node into an Operand,
// implementing the get_ref half of spec §4.1. Every kind is permitted here;
// domain-incompatible kinds (tmpExp in the extended domain; q, f,
// xDivXSubXi, xDivXSubWXi in the base domain) produce an error.
func Resolve(node Node, dom domain.Kind, params domain.Params, info *starkinfo.StarkInfo) (program.Operand, error) {
	return resolve(node, dom, params, info)
}

// destKinds is the set of kinds a write target may name, matching
// interpreter.rs's set_ref: a destination is always a mutable slot, so
// constants, public inputs, challenges, evaluation points, x, Zi, and the
// two division helpers — all read-only or purely domain-derived — are
// rejected.
var destKinds = map[Kind]bool{
	KindTmp:    true,
	KindCm:     true,
	KindTmpExp: true,
	KindQ:      true,
	KindF:      true,
}

// ResolveDest translates a destination (write) reference node into a
// Descriptor, implementing the set_ref half of spec §4.1. Only tmp, cm,
// tmpExp, q, and f may be written to.
func ResolveDest(node Node, dom domain.Kind, params domain.Params, info *starkinfo.StarkInfo) (program.Descriptor, error) {
	if !destKinds[node.Kind] {
		return program.Descriptor{}, fmt.Errorf("ref: kind %s is not a valid write target", node.Kind)
	}
	operand, err := resolve(node, dom, params, info)
	if err != nil {
		return program.Descriptor{}, err
	}
	if operand.Kind != program.OperandRefer {
		return program.Descriptor{}, fmt.Errorf("ref: kind %s did not resolve to a memory reference", node.Kind)
	}
	return operand.Refer, nil
}
