// Package protocol decides what happens after an assertion fails: hard stop
// when no debugger is attached, otherwise a resumable trap whose outcome the
// debugger operator sets before continuing.
package protocol

import (
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/rassert/internal/registry"
)

// Prober reports whether a debugger is attached.
type Prober interface {
	Attached() bool
}

// Trap halts the calling goroutine.
//
// Break must return only once the debugger resumes execution; the Outcome it
// receives is the storage the operator edits. Abort must never return in
// production implementations.
type Trap interface {
	Break(o *Outcome)
	Abort()
}

// EventKind classifies protocol events.
type EventKind string

const (
	EventPrompted EventKind = "prompted"
	EventResolved EventKind = "resolved"
	EventAborted  EventKind = "aborted"
)

// Event is emitted at each protocol step.
type Event struct {
	Kind    EventKind
	Site    *registry.Site
	Outcome Outcome
}

// Observer receives protocol events synchronously on the failing goroutine.
type Observer func(Event)

// Protocol resolves assertion failures against one registry.
type Protocol struct {
	reg      *registry.Registry
	probe    Prober
	trap     Trap
	out      io.Writer
	variant  Variant
	observer Observer
}

// Option configures a Protocol at creation time.
type Option func(*Protocol)

// WithProber replaces the debugger probe.
func WithProber(p Prober) Option {
	return func(pr *Protocol) { pr.probe = p }
}

// WithTrap replaces the trap primitive.
func WithTrap(t Trap) Option {
	return func(pr *Protocol) { pr.trap = t }
}

// WithOutput sets where operator instructions are written.
func WithOutput(w io.Writer) Option {
	return func(pr *Protocol) { pr.out = w }
}

// WithVariant selects the retry or single-shot behaviour.
func WithVariant(v Variant) Option {
	return func(pr *Protocol) { pr.variant = v }
}

// WithObserver installs an event observer.
func WithObserver(o Observer) Option {
	return func(pr *Protocol) { pr.observer = o }
}

// New creates a Protocol bound to reg. Defaults: native probe and trap,
// instructions on stderr, Retry variant.
func New(reg *registry.Registry, opts ...Option) *Protocol {
	p := &Protocol{
		reg:     reg,
		probe:   NativeProber(),
		trap:    NativeTrap(),
		out:     os.Stderr,
		variant: Retry,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Variant returns the configured variant.
func (p *Protocol) Variant() Variant {
	return p.variant
}

// Resolve runs the decision protocol for a failed assertion at site.
// It blocks until the operator resumes the trap, and does not return at all
// when no debugger is attached.
func (p *Protocol) Resolve(site *registry.Site) {
	if p.reg.Suppressed(site) {
		return
	}

	for {
		if !p.probe.Attached() {
			p.emit(Event{Kind: EventAborted, Site: site})
			p.trap.Abort()
			return
		}

		p.emit(Event{Kind: EventPrompted, Site: site})
		fmt.Fprint(p.out, Instructions(p.variant))

		var outcome Outcome
		p.trap.Break(&outcome)

		if outcome.Disable {
			p.reg.Disable(site)
		}
		if outcome.Unleash {
			p.reg.DisableAll()
		}
		p.emit(Event{Kind: EventResolved, Site: site, Outcome: outcome})

		if p.variant == SingleShot || outcome.Decided() {
			return
		}
	}
}

func (p *Protocol) emit(e Event) {
	if p.observer != nil {
		p.observer(e)
	}
}

// Instructions returns the operator message printed before each trap.
// The outcome field names are the contract with the operator.
func Instructions(v Variant) string {
	if v == SingleShot {
		return "\nType one of the following dlv commands in the protocol.(*Protocol).Resolve frame\n" +
			"(find it with `stack`, select it with `frame <n>`), then `continue`:\n" +
			"set outcome.Disable = true  # disable this assert permanently\n" +
			"set outcome.Unleash = true  # disable all asserts permanently\n" +
			"Continuing without a change ignores this failure.\n"
	}
	return "\nType one of the following dlv commands in the protocol.(*Protocol).Resolve frame\n" +
		"(find it with `stack`, select it with `frame <n>`), then `continue`:\n" +
		"set outcome.Ignore = true   # ignore this assert this time\n" +
		"set outcome.Disable = true  # disable this assert permanently\n" +
		"set outcome.Unleash = true  # disable all asserts permanently\n"
}
