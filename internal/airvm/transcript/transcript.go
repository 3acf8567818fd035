// Package transcript is a reference adapter for the Transcript (Fiat-Shamir)
// capability spec §6 leaves external to the VM. It is grounded on the
// teacher's utils/channel.go Channel type (running state, absorb/squeeze
// discipline, an append-only proof log), reworked into a field-native
// duplex sponge over vybium-crypto's PoseidonHash — the same hash
// protocols/claim.go and vm/vm_instructions.go use for digesting
// field-element sequences — rather than the byte-oriented sha3 Channel
// falls back to for non-field payloads.
package transcript

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"

	"github.com/vybium/airvm/internal/airvm/field"
)

// Transcript is a minimal duplex sponge: one running Base-valued state,
// absorbed and squeezed through PoseidonHash, plus an append-only log of
// every absorb/challenge event, mirroring the teacher's Channel.
type Transcript struct {
	state   field.Base
	counter uint64
	log     []string
}

// New starts an empty transcript.
func New() *Transcript {
	return &Transcript{state: field.ZeroBase, log: make([]string, 0, 16)}
}

// mix folds elems into the running state via a single PoseidonHash call,
// the same "hash everything collected so far" idiom protocols/claim.go's
// Hash and protocols/master_table.go's hashRow use.
func (t *Transcript) mix(elems []field.Base) {
	in := make([]field.Base, 0, len(elems)+1)
	in = append(in, t.state)
	in = append(in, elems...)
	t.state = hash.PoseidonHash(in)
}

// Absorb folds a sequence of base-field values into the transcript state.
func (t *Transcript) Absorb(values []field.Base) {
	t.log = append(t.log, fmt.Sprintf("absorb:%d values", len(values)))
	t.mix(values)
}

// AbsorbExt folds a sequence of extension-field values into the
// transcript state, one coordinate triple at a time.
func (t *Transcript) AbsorbExt(values []field.Ext3) {
	for _, v := range values {
		elems := v.AsElements()
		t.Absorb(elems[:])
	}
}

// draw advances the duplex by one domain-separated step (each call mixes a
// fresh counter value so successive draws are independent) and returns the
// resulting state as the squeeze output.
func (t *Transcript) draw() field.Base {
	t.counter++
	t.mix([]field.Base{field.NewBase(t.counter)})
	return t.state
}

// ChallengeBase draws a single base-field challenge.
func (t *Transcript) ChallengeBase() field.Base {
	v := t.draw()
	t.log = append(t.log, "challenge_base")
	return v
}

// Challenge draws a single extension-field challenge, as three
// independent base draws.
func (t *Transcript) Challenge() field.Ext3 {
	c0 := t.draw()
	c1 := t.draw()
	c2 := t.draw()
	t.log = append(t.log, "challenge_ext")
	return field.NewExt3(c0, c1, c2)
}

// SampleIndices draws n row indices in [0, 2^nbits), each reduced from an
// independent base-field draw.
func (t *Transcript) SampleIndices(n, nbits int) ([]uint64, error) {
	if n < 0 || nbits < 0 || nbits > 63 {
		return nil, fmt.Errorf("transcript: invalid sample request n=%d nbits=%d", n, nbits)
	}
	mask := (uint64(1) << uint(nbits)) - 1
	indices := make([]uint64, n)
	for i := 0; i < n; i++ {
		indices[i] = t.draw().Value() & mask
	}
	t.log = append(t.log, fmt.Sprintf("sample_indices:%d@%d bits", n, nbits))
	return indices, nil
}

// State returns the current transcript state, for diagnostics and tests.
func (t *Transcript) State() field.Base {
	return t.state
}

// Log returns a defensive copy of the absorb/challenge event log.
func (t *Transcript) Log() []string {
	return append([]string(nil), t.log...)
}
