package airvm

import (
	"github.com/vybium/airvm/internal/airvm/compile"
	"github.com/vybium/airvm/internal/airvm/vm"
)

// Compile translates code into a flat Block for the given StarkInfo layout
// and Options, implementing the Code Compiler (spec §4.2). Compile-time
// structural errors (unknown kind, domain-incompatible kind, unknown op,
// malformed number literal, invalid q_dim) are reported as *VMError.
func Compile(info *StarkInfo, code Code, opts *Options) (*Block, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, wrap(ErrUnknown, "invalid options", err)
	}
	block, err := compile.Compile(info, code, opts.Domain, opts.Ret, opts.Namespace)
	if err != nil {
		return nil, classifyCompileError(err)
	}
	return block, nil
}

// Eval executes block against ctx at row i, implementing the Stack
// Interpreter (spec §4.3). Runtime errors (stack underflow, out-of-bounds
// index) are reported as *VMError.
func Eval(block *Block, ctx *Context, i uint64) (Fv, error) {
	v, err := vm.Eval(block, ctx, i)
	if err != nil {
		return Fv{}, classifyRuntimeError(err)
	}
	return v, nil
}

// EvalAllRows evaluates block for every row in [0, N), splitting the work
// across opts.Workers goroutines, per SPEC_FULL §5's row-parallel schedule.
func EvalAllRows(block *Block, ctx *Context, n uint64, opts *Options) ([]Fv, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	results, err := vm.EvalRows(block, ctx, 0, n, workers)
	if err != nil {
		return nil, classifyRuntimeError(err)
	}
	return results, nil
}

// NewContext builds an empty evaluation Context around the given Zi
// closure; populate its sections via Context.SetSection before evaluating.
func NewContext(zi ZiFunc) *Context {
	return vm.NewContext(zi)
}
