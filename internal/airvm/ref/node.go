// Package ref implements the Address Resolver (spec §4.1): translating a
// symbolic reference Node into either an immediate Operand (for `number`)
// or a fully populated Descriptor (for everything else), grounded on
// starky/src/interpreter.rs's get_ref/set_ref/eval_map.
package ref

import "fmt"

// Kind enumerates the reference-node kinds spec §3 defines.
type Kind int

const (
	KindTmp Kind = iota
	KindConst
	KindCm
	KindTmpExp
	KindQ
	KindF
	KindNumber
	KindPublic
	KindChallenge
	KindEval
	KindXDivXSubXi
	KindXDivXSubWXi
	KindX
	KindZi
)

var kindNames = map[Kind]string{
	KindTmp:         "tmp",
	KindConst:       "const",
	KindCm:          "cm",
	KindTmpExp:      "tmpExp",
	KindQ:           "q",
	KindF:           "f",
	KindNumber:      "number",
	KindPublic:      "public",
	KindChallenge:   "challenge",
	KindEval:        "eval",
	KindXDivXSubXi:  "xDivXSubXi",
	KindXDivXSubWXi: "xDivXSubWXi",
	KindX:           "x",
	KindZi:          "Zi",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind parses the wire/JSON string form of a kind, used by the CLI
// and by any code that deserializes a Code section.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ref: unknown reference kind %q", s)
}

// Node is the compiler's input: a symbolic reference to a committed
// polynomial, constant, public input, challenge, temporary, or one of the
// handful of domain-derived helpers (x, Zi, xDivXSubXi, xDivXSubWXi).
type Node struct {
	Kind Kind
	// ID selects which instance of Kind this is (e.g. which tmp slot,
	// which committed polynomial). Unused by number/x/Zi/xDivXSubXi/
	// xDivXSubWXi.
	ID uint32
	// Prime marks a reference to the next row (a rotation by one row in
	// the base domain, or by the coset blowup factor in the extended
	// domain). Ignored by x, Zi, xDivXSubXi, and xDivXSubWXi (see
	// resolve.go).
	Prime bool
	// Value holds the decimal literal for a `number` node.
	Value string
}
