package rassert

import (
	"bytes"
	"sync"
	"testing"
)

// operator stands in for a debugger user: each Break applies the next
// scripted outcome, Abort records that the process would have stopped.
type operator struct {
	mu     sync.Mutex
	script []Outcome
	breaks int
	aborts int
}

func (o *operator) Break(out *Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.breaks < len(o.script) {
		*out = o.script[o.breaks]
	} else {
		out.Ignore = true
	}
	o.breaks++
}

func (o *operator) Abort() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.aborts++
}

// recorder counts reported failures.
type recorder struct {
	mu       sync.Mutex
	failures []Failure
}

func (r *recorder) Report(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures)
}

type probeCounter struct {
	mu       sync.Mutex
	attached bool
	calls    int
}

func (p *probeCounter) Attached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.attached
}

type fixture struct {
	a     *Asserter
	op    *operator
	rec   *recorder
	probe *probeCounter
	out   *bytes.Buffer
}

func newFixture(t *testing.T, attached bool, script ...Outcome) *fixture {
	t.Helper()
	f := &fixture{
		op:    &operator{script: script},
		rec:   &recorder{},
		probe: &probeCounter{attached: attached},
		out:   &bytes.Buffer{},
	}
	f.a = New(
		WithReporter(f.rec),
		WithOutput(f.out),
		WithProber(f.probe),
		WithTrap(f.op),
	)
	return f
}

// site drives fail the way the exported assertion functions do, in every
// build mode. Its method names match the ones whose conditions are recovered
// from source.
type site struct {
	a *Asserter
}

func (s site) That(cond bool) {
	if !cond {
		s.a.fail(callerPC(), "")
	}
}

func (s site) Thatf(cond bool, format string, args ...any) {
	if !cond {
		s.a.fail(callerPC(), format, args...)
	}
}
