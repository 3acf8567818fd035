// Package airvm provides the arithmetic expression interpreter at the
// heart of a STARK prover: a compiler from a declarative polynomial-
// constraint description into a flat stack program, and a virtual machine
// that evaluates that program at every row of an evaluation domain.
//
// # Architecture
//
// Three layers cooperate:
//
//   - Address Resolver (internal/airvm/ref): translates a symbolic
//     reference node into a numeric address descriptor.
//   - Code Compiler (internal/airvm/compile): walks a list of
//     three-address sections and emits a flat Block using the resolver.
//   - Stack Interpreter (internal/airvm/vm): executes a Block against a
//     Context at a given row index.
//
// This package composes the three behind Compile, Eval, EvalAllRows, and
// NewContext.
//
// # Quick Start
//
//	info := &airvm.StarkInfo{ /* ... */ }
//	code := airvm.Code{
//		{
//			Op: airvm.OpAdd,
//			Src: []airvm.Node{
//				{Kind: airvm.KindNumber, Value: "3"},
//				{Kind: airvm.KindNumber, Value: "5"},
//			},
//			Dest: airvm.Node{Kind: airvm.KindTmp, ID: 0},
//		},
//	}
//	block, err := airvm.Compile(info, code, airvm.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := airvm.NewContext(nil)
//	ctx.SetSection("tmp", make([]airvm.Fv, 1))
//	result, err := airvm.Eval(block, ctx, 0)
//
// # Architecture notes
//
//   - pkg/airvm/: public API (this package)
//   - internal/airvm/: private implementation (not importable)
//
// Implementation details in internal/ can be refactored without breaking
// the public API.
//
// # Capabilities
//
// The Merkle commitment scheme and the Fiat-Shamir transcript are external
// collaborators from this package's point of view (see capabilities.go);
// internal/airvm/merkle and internal/airvm/transcript provide reference
// implementations a surrounding prover may use directly, or replace.
package airvm
