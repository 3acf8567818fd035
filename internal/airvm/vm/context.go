// Package vm is the Stack Interpreter (spec §4.3): Context holds the named
// row buffers a compiled program.Block reads and writes, and Eval executes
// one Block at one row index, grounded on starky/src/interpreter.rs's
// Block::eval / StarkContext.
package vm

import (
	"fmt"

	"github.com/vybium/airvm/internal/airvm/field"
)

// ZiFunc is the vanishing-polynomial-inverse closure the context exposes
// for the "Zi" section, keyed by row index rather than a flat buffer.
type ZiFunc func(i uint64) field.Base

// namedSections is the closed enumeration spec §4.4 allows a string-keyed
// lookup to name. xDivXSubXi, xDivXSubWXi, and Zi are deliberately absent:
// they are distinct typed members of Context, never looked up by name.
var namedSections = map[string]bool{
	"tmp":       true,
	"cm1_n":     true,
	"cm1_2ns":   true,
	"cm2_n":     true,
	"cm2_2ns":   true,
	"cm3_n":     true,
	"cm3_2ns":   true,
	"cm4_n":     true,
	"cm4_2ns":   true,
	"q_2ns":     true,
	"f_2ns":     true,
	"publics":   true,
	"challenge": true,
	"exps_n":    true,
	"exps_2ns":  true,
	"const_n":   true,
	"const_2ns": true,
	"evals":     true,
	"x_n":       true,
	"x_2ns":     true,
}

// Context is the shared, row-indexable state a Block evaluates against. A
// single Context is built once per invocation and re-entered for every row;
// every named buffer is a flat cell array, one field.Fv per Base-width
// cell (a dim=3 polynomial occupies three consecutive dim=1 cells, except
// "tmp", whose single scalar slot instead stores the full Fv in place —
// see Write in eval.go).
type Context struct {
	sections    map[string][]field.Fv
	xDivXSubXi  []field.Fv
	xDivXSubWXi []field.Fv
	zi          ZiFunc
}

// NewContext builds an empty Context around the given Zi closure. Callers
// populate the named sections and the two division-helper buffers with
// SetSection / SetXDivXSubXi / SetXDivXSubWXi before evaluating any Block.
func NewContext(zi ZiFunc) *Context {
	return &Context{sections: make(map[string][]field.Fv), zi: zi}
}

// SetSection installs the flat cell buffer for one of the enumerated
// sections. name must be one of the keys §4.4 lists; anything else is a
// fatal configuration error, caught here rather than surfacing later as a
// confusing "unknown section" at eval time.
func (c *Context) SetSection(name string, buf []field.Fv) error {
	if !namedSections[name] {
		return fmt.Errorf("vm: %q is not a valid context section name", name)
	}
	c.sections[name] = buf
	return nil
}

// SetXDivXSubXi installs the dim=3 xDivXSubXi buffer.
func (c *Context) SetXDivXSubXi(buf []field.Fv) { c.xDivXSubXi = buf }

// SetXDivXSubWXi installs the dim=3 xDivXSubWXi buffer.
func (c *Context) SetXDivXSubWXi(buf []field.Fv) { c.xDivXSubWXi = buf }

// section resolves a string-keyed section, and is also used internally to
// fetch a Write destination's backing buffer.
func (c *Context) section(name string) ([]field.Fv, error) {
	if !namedSections[name] {
		return nil, fmt.Errorf("vm: %q is not a valid context section name", name)
	}
	buf, ok := c.sections[name]
	if !ok {
		return nil, fmt.Errorf("vm: context section %q was never populated", name)
	}
	return buf, nil
}

// clonePrivateTmp returns a shallow copy of c for one EvalRows worker: every
// section buffer is shared with c except "tmp", which gets its own backing
// array. "tmp" descriptors always compile with Stride: 0 (tmp is not
// row-indexed), so domain.Index resolves every tmp access to the same
// cell(s) regardless of row — concurrent workers sharing one "tmp" buffer
// would race reading and writing those cells for different rows. tmp never
// carries a value across rows (every read follows a write earlier in the
// same row's instruction sequence), so handing each worker a fresh,
// zero-valued "tmp" buffer of the same length is safe.
func (c *Context) clonePrivateTmp() *Context {
	sections := make(map[string][]field.Fv, len(c.sections))
	for name, buf := range c.sections {
		if name == "tmp" {
			sections[name] = make([]field.Fv, len(buf))
			continue
		}
		sections[name] = buf
	}
	return &Context{
		sections:    sections,
		xDivXSubXi:  c.xDivXSubXi,
		xDivXSubWXi: c.xDivXSubWXi,
		zi:          c.zi,
	}
}
