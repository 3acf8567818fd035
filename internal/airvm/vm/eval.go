package vm

import (
	"fmt"

	"github.com/vybium/airvm/internal/airvm/domain"
	"github.com/vybium/airvm/internal/airvm/field"
	"github.com/vybium/airvm/internal/airvm/program"
)

// Eval executes block against ctx at row i, implementing spec §4.3's
// stack discipline. If the instruction list is exhausted without a Ret, it
// returns the dim=1 zero value, matching the reference interpreter.
func Eval(block *program.Block, ctx *Context, i uint64) (field.Fv, error) {
	stack := make([]field.Fv, 0, 2)

	pop := func(site string) (field.Fv, error) {
		if len(stack) == 0 {
			return field.Fv{}, fmt.Errorf("vm: stack underflow at %s", site)
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	operandValue := func(op program.Operand) (field.Fv, error) {
		if op.Kind == program.OperandVari {
			return op.Vari, nil
		}
		return load(ctx, op.Refer, i)
	}

	for idx, instr := range block.Instructions {
		switch instr.Kind {
		case program.InstrVari:
			stack = append(stack, instr.Args[0].Vari)

		case program.InstrArith:
			lhs, err := operandValue(instr.Args[0])
			if err != nil {
				return field.Fv{}, fmt.Errorf("vm: instruction %d: %w", idx, err)
			}
			rhs, err := operandValue(instr.Args[1])
			if err != nil {
				return field.Fv{}, fmt.Errorf("vm: instruction %d: %w", idx, err)
			}
			var result field.Fv
			switch instr.Op {
			case program.OpAdd:
				result = lhs.Add(rhs)
			case program.OpSub:
				result = lhs.Sub(rhs)
			case program.OpMul:
				result = lhs.Mul(rhs)
			default:
				return field.Fv{}, fmt.Errorf("vm: instruction %d: unknown arithmetic op %v", idx, instr.Op)
			}
			stack = append(stack, result)

		case program.InstrCopy:
			v, err := operandValue(instr.Args[0])
			if err != nil {
				return field.Fv{}, fmt.Errorf("vm: instruction %d: %w", idx, err)
			}
			stack = append(stack, v)

		case program.InstrRefer:
			v, err := load(ctx, instr.Dest, i)
			if err != nil {
				return field.Fv{}, fmt.Errorf("vm: instruction %d: %w", idx, err)
			}
			stack = append(stack, v)

		case program.InstrWrite:
			v, err := pop("write")
			if err != nil {
				return field.Fv{}, fmt.Errorf("vm: instruction %d: %w", idx, err)
			}
			if err := store(ctx, instr.Dest, i, v); err != nil {
				return field.Fv{}, fmt.Errorf("vm: instruction %d: %w", idx, err)
			}

		case program.InstrRet:
			return pop("ret")

		default:
			return field.Fv{}, fmt.Errorf("vm: instruction %d: unknown instruction kind %v", idx, instr.Kind)
		}
	}

	return field.FvZero, nil
}

// load fetches the value a Descriptor names at row i, implementing the
// reference interpreter's get_value. Zi is evaluated via its closure
// instead of indexed; xDivXSubXi and xDivXSubWXi are dedicated dim=3
// buffers rather than string-keyed sections.
func load(ctx *Context, d program.Descriptor, i uint64) (field.Fv, error) {
	if d.Section == "Zi" {
		return field.FvFromBase(ctx.zi(i)), nil
	}

	idx, err := domain.Index(d.Offset, d.Next, d.Modulus, d.Stride, i)
	if err != nil {
		return field.Fv{}, err
	}

	switch d.Section {
	case "xDivXSubXi":
		return loadTriple(ctx.xDivXSubXi, idx, d.Section)
	case "xDivXSubWXi":
		return loadTriple(ctx.xDivXSubWXi, idx, d.Section)
	case "tmp":
		buf, err := ctx.section(d.Section)
		if err != nil {
			return field.Fv{}, err
		}
		if idx >= uint64(len(buf)) {
			return field.Fv{}, fmt.Errorf("vm: index %d out of bounds for section %q (len %d)", idx, d.Section, len(buf))
		}
		return buf[idx], nil
	default:
		buf, err := ctx.section(d.Section)
		if err != nil {
			return field.Fv{}, err
		}
		if d.Dim == 1 {
			if idx >= uint64(len(buf)) {
				return field.Fv{}, fmt.Errorf("vm: index %d out of bounds for section %q (len %d)", idx, d.Section, len(buf))
			}
			return buf[idx], nil
		}
		return loadTriple(buf, idx, d.Section)
	}
}

func loadTriple(buf []field.Fv, idx uint64, section string) (field.Fv, error) {
	if idx+2 >= uint64(len(buf)) {
		return field.Fv{}, fmt.Errorf("vm: index %d out of bounds for dim=3 section %q (len %d)", idx, section, len(buf))
	}
	elems := buf[idx].AsElements()
	e1 := buf[idx+1].AsElements()
	e2 := buf[idx+2].AsElements()
	return field.FvFromExt3(field.NewExt3(elems[0], e1[0], e2[0])), nil
}

// store writes v into the cell(s) Descriptor names at row i, implementing
// the reference interpreter's Write handling. A scalar value, or any value
// written to the "tmp" section, is stored in a single cell without
// truncation — a dim=3 value targeting "tmp" is kept whole rather than
// having its upper coordinates discarded, per spec §7's prohibition on
// truncating nonzero extension coordinates. Any other dim=3 value is split
// across three consecutive cells.
func store(ctx *Context, d program.Descriptor, i uint64, v field.Fv) error {
	idx, err := domain.Index(d.Offset, d.Next, d.Modulus, d.Stride, i)
	if err != nil {
		return err
	}
	buf, err := ctx.section(d.Section)
	if err != nil {
		return err
	}

	if v.Dim() == 1 || d.Section == "tmp" {
		if idx >= uint64(len(buf)) {
			return fmt.Errorf("vm: index %d out of bounds for section %q (len %d)", idx, d.Section, len(buf))
		}
		buf[idx] = v
		return nil
	}

	if idx+2 >= uint64(len(buf)) {
		return fmt.Errorf("vm: index %d out of bounds for dim=3 section %q (len %d)", idx, d.Section, len(buf))
	}
	elems := v.AsElements()
	buf[idx] = field.FvFromBase(elems[0])
	buf[idx+1] = field.FvFromBase(elems[1])
	buf[idx+2] = field.FvFromBase(elems[2])
	return nil
}
