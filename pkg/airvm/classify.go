package airvm

import "strings"

// classifyCompileError maps an internal compile-time error to a VMError
// with the appropriate ErrorCode, by matching against the message
// substrings internal/airvm/ref and internal/airvm/compile are known to
// produce. Errors that don't match any known substring are reported as
// ErrUnknown rather than guessed at.
func classifyCompileError(err error) *VMError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unknown reference kind"):
		return wrap(ErrUnknownKind, "unknown reference kind", err)
	case strings.Contains(msg, "is only valid in the"):
		return wrap(ErrDomainMismatch, "reference kind incompatible with the chosen domain", err)
	case strings.Contains(msg, "unknown op"):
		return wrap(ErrUnknownOp, "unknown operation", err)
	case strings.Contains(msg, "invalid decimal literal") || strings.Contains(msg, "number node"):
		return wrap(ErrBadNumberLiteral, "malformed number literal", err)
	case strings.Contains(msg, "q_dim must be"):
		return wrap(ErrInvalidQDim, "invalid q_dim", err)
	case strings.Contains(msg, "is not a valid write target"):
		return wrap(ErrUnknownKind, "kind is not writable", err)
	default:
		return wrap(ErrUnknown, "compilation failed", err)
	}
}

// classifyRuntimeError maps an internal evaluation-time error to a VMError
// with the appropriate ErrorCode.
func classifyRuntimeError(err error) *VMError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "stack underflow"):
		return wrap(ErrStackUnderflow, "stack underflow", err)
	case strings.Contains(msg, "out of bounds"):
		return wrap(ErrIndexOutOfBounds, "index out of bounds after modular reduction", err)
	default:
		return wrap(ErrUnknown, "evaluation failed", err)
	}
}
