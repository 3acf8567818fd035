package airvm

import "fmt"

// Options configures one compilation: which domain to target and whether
// the resulting Block should leave its final write on the stack (ret).
type Options struct {
	// Domain selects the base or extended evaluation domain.
	Domain Domain

	// Ret, when true, appends a trailing Refer+Ret pair returning the
	// last section's written value.
	Ret bool

	// Namespace is an informational label carried on the compiled Block,
	// surfaced in diagnostics and disassembly.
	Namespace string

	// Workers bounds how many goroutines EvalAllRows may use; 0 selects a
	// single worker.
	Workers int
}

// DefaultOptions returns the common case: base domain, returning the last
// write, single-threaded evaluation, namespace label "ctx".
func DefaultOptions() *Options {
	return &Options{
		Domain:    BaseDomain,
		Ret:       true,
		Namespace: "ctx",
		Workers:   1,
	}
}

// WithDomain sets which evaluation domain a compilation targets.
func (o *Options) WithDomain(d Domain) *Options {
	o.Domain = d
	return o
}

// WithRet sets whether the compiled Block returns its final write.
func (o *Options) WithRet(ret bool) *Options {
	o.Ret = ret
	return o
}

// WithNamespace sets the compiled Block's informational label.
func (o *Options) WithNamespace(ns string) *Options {
	o.Namespace = ns
	return o
}

// WithWorkers sets the goroutine count EvalAllRows uses.
func (o *Options) WithWorkers(n int) *Options {
	o.Workers = n
	return o
}

// Validate checks the structural invariants Compile and EvalAllRows rely on.
func (o *Options) Validate() error {
	if o.Domain != BaseDomain && o.Domain != ExtendedDomain {
		return fmt.Errorf("airvm: unknown domain %v", o.Domain)
	}
	if o.Workers < 0 {
		return fmt.Errorf("airvm: workers must be non-negative, got %d", o.Workers)
	}
	return nil
}
