// Package compile implements the Code Compiler (spec §4.2): it walks an
// ordered list of three-address sections and emits a flat program.Block by
// resolving every source and destination node through package ref, grounded
// on starky/src/interpreter.rs's Program::new.
package compile

import (
	"fmt"

	"github.com/vybium/airvm/internal/airvm/domain"
	"github.com/vybium/airvm/internal/airvm/program"
	"github.com/vybium/airvm/internal/airvm/ref"
	"github.com/vybium/airvm/internal/airvm/starkinfo"
)

// Op names the three-address operation a Section requests. Unlike
// program.Op, it also admits "copy", which the compiler lowers to an
// InstrCopy rather than an InstrArith.
type Op string

const (
	OpAdd  Op = "add"
	OpSub  Op = "sub"
	OpMul  Op = "mul"
	OpCopy Op = "copy"
)

// Section is one three-address statement: dest = op(src[0], src[1]?).
// Copy takes exactly one source; add/sub/mul take exactly two.
type Section struct {
	Op   Op
	Src  []ref.Node
	Dest ref.Node
}

// Code is the ordered list of sections the compiler walks, in source order.
type Code []Section

// Compile translates Code into a flat program.Block for the given domain.
// When ret is true, the final section's destination is additionally
// appended as a trailing Refer+Ret pair, so the block leaves that value on
// the stack for the caller instead of only writing it back to context.
func Compile(info *starkinfo.StarkInfo, code Code, dom domain.Kind, ret bool, namespace string) (*program.Block, error) {
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("compile: invalid layout metadata: %w", err)
	}
	params, err := domain.Derive(dom, info.NBits, info.NBitsExt)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	block := &program.Block{Namespace: namespace}

	var lastDest program.Descriptor
	haveLastDest := false

	for idx, section := range code {
		args := make([]program.Operand, 0, 2)
		for _, src := range section.Src {
			op, err := ref.Resolve(src, dom, params, info)
			if err != nil {
				return nil, fmt.Errorf("compile: section %d: resolving source %s[%d]: %w", idx, src.Kind, src.ID, err)
			}
			args = append(args, op)
		}

		var instr program.Instruction
		switch section.Op {
		case OpAdd:
			if len(args) != 2 {
				return nil, fmt.Errorf("compile: section %d: add requires 2 sources, got %d", idx, len(args))
			}
			instr = program.Instruction{Kind: program.InstrArith, Op: program.OpAdd, Args: args}
		case OpSub:
			if len(args) != 2 {
				return nil, fmt.Errorf("compile: section %d: sub requires 2 sources, got %d", idx, len(args))
			}
			instr = program.Instruction{Kind: program.InstrArith, Op: program.OpSub, Args: args}
		case OpMul:
			if len(args) != 2 {
				return nil, fmt.Errorf("compile: section %d: mul requires 2 sources, got %d", idx, len(args))
			}
			instr = program.Instruction{Kind: program.InstrArith, Op: program.OpMul, Args: args}
		case OpCopy:
			if len(args) != 1 {
				return nil, fmt.Errorf("compile: section %d: copy requires 1 source, got %d", idx, len(args))
			}
			instr = program.Instruction{Kind: program.InstrCopy, Args: args}
		default:
			return nil, fmt.Errorf("compile: section %d: unknown op %q", idx, section.Op)
		}
		block.Instructions = append(block.Instructions, instr)

		dest, err := ref.ResolveDest(section.Dest, dom, params, info)
		if err != nil {
			return nil, fmt.Errorf("compile: section %d: resolving destination %s[%d]: %w", idx, section.Dest.Kind, section.Dest.ID, err)
		}
		block.Instructions = append(block.Instructions, program.Instruction{Kind: program.InstrWrite, Dest: dest})

		lastDest = dest
		haveLastDest = true
	}

	if ret {
		if !haveLastDest {
			return nil, fmt.Errorf("compile: ret requested but code has no sections to return from")
		}
		block.Instructions = append(block.Instructions,
			program.Instruction{Kind: program.InstrRefer, Dest: lastDest},
			program.Instruction{Kind: program.InstrRet},
		)
	}

	return block, nil
}
