package rassert

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ppiankov/rassert/internal/config"
	"github.com/ppiankov/rassert/internal/journal"
	"github.com/ppiankov/rassert/internal/protocol"
	"github.com/ppiankov/rassert/internal/registry"
	"github.com/ppiankov/rassert/internal/report"
	"github.com/ppiankov/rassert/internal/source"
	"github.com/ppiankov/rassert/internal/trap"
)

type (
	// Failure describes one failed assertion as handed to a Reporter.
	Failure = report.Failure
	// Reporter receives failures synchronously, before the trap fires.
	Reporter = report.Reporter
	// ReporterFunc adapts a function to Reporter.
	ReporterFunc = report.Func
	// Outcome holds the operator's decision for one trap.
	Outcome = protocol.Outcome
	// Variant selects retry or single-shot trapping.
	Variant = protocol.Variant
	// Prober reports whether a debugger is attached.
	Prober = protocol.Prober
	// Trap halts the failing goroutine. See protocol.Trap.
	Trap = protocol.Trap
	// Event is a protocol step, passed to observers.
	Event = protocol.Event
	// SiteInfo is a snapshot of one call site.
	SiteInfo = registry.SiteInfo
)

const (
	Retry      = protocol.Retry
	SingleShot = protocol.SingleShot
)

// unknownCondition is reported when the call site source is not available.
const unknownCondition = "(condition source unavailable)"

// ProberFunc adapts a function to Prober.
type ProberFunc func() bool

// Attached calls f.
func (f ProberFunc) Attached() bool {
	return f()
}

// Asserter owns one set of suppression flags and the protocol that resolves
// failures against them. Safe for concurrent use.
type Asserter struct {
	reg      *registry.Registry
	proto    *protocol.Protocol
	reporter Reporter
	conds    *source.Cache
	journal  *journal.Log
	observer func(Event)
	errOut   io.Writer
}

// Option configures an Asserter at creation time.
type Option func(*options)

type options struct {
	reporters  []Reporter
	out        io.Writer
	variant    Variant
	prober     Prober
	trap       Trap
	journal    *journal.Log
	suppress   []string
	disableAll bool
	observer   func(Event)
}

// WithReporter adds a reporter. Failures go to every added reporter in
// order; the plain-text reporter is used only when none is added.
func WithReporter(r Reporter) Option {
	return func(o *options) { o.reporters = append(o.reporters, r) }
}

// WithOutput sets where operator instructions and the default report go.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithVariant selects Retry (default) or SingleShot.
func WithVariant(v Variant) Option {
	return func(o *options) { o.variant = v }
}

// WithProber replaces the operating system debugger probe.
func WithProber(p Prober) Option {
	return func(o *options) { o.prober = p }
}

// WithTrap replaces the breakpoint and abort primitives, e.g. to script the
// operator in tests.
func WithTrap(t Trap) Option {
	return func(o *options) { o.trap = t }
}

// withJournal records failures and decisions to an open journal. The
// Asserter closes it on Close. Callers outside the package set a journal
// path in the config file instead.
func withJournal(l *journal.Log) Option {
	return func(o *options) { o.journal = l }
}

// WithSuppressed silences the given file:line keys from the start.
func WithSuppressed(keys ...string) Option {
	return func(o *options) { o.suppress = append(o.suppress, keys...) }
}

// WithAllDisabled silences every assertion from the start.
func WithAllDisabled() Option {
	return func(o *options) { o.disableAll = true }
}

// WithObserver receives every protocol event on the failing goroutine.
func WithObserver(fn func(Event)) Option {
	return func(o *options) { o.observer = fn }
}

// New creates an Asserter with fresh suppression state.
func New(opts ...Option) *Asserter {
	o := options{out: os.Stderr, variant: Retry}
	for _, fn := range opts {
		fn(&o)
	}

	a := &Asserter{
		reg:      registry.New(),
		conds:    source.New("That", "Thatf", "Func", "Funcf"),
		journal:  o.journal,
		observer: o.observer,
		errOut:   os.Stderr,
	}
	switch len(o.reporters) {
	case 0:
		a.reporter = report.NewPlain(o.out)
	case 1:
		a.reporter = o.reporters[0]
	default:
		a.reporter = report.Multi(o.reporters)
	}

	popts := []protocol.Option{
		protocol.WithOutput(o.out),
		protocol.WithVariant(o.variant),
		protocol.WithObserver(a.observe),
	}
	if o.prober != nil {
		popts = append(popts, protocol.WithProber(o.prober))
	}
	if o.trap != nil {
		popts = append(popts, protocol.WithTrap(o.trap))
	}
	a.proto = protocol.New(a.reg, popts...)

	for _, key := range o.suppress {
		a.reg.DisableKey(key)
	}
	if o.disableAll {
		a.reg.DisableAll()
	}
	return a
}

// NewFromConfig creates an Asserter from a config file (see config.Load for
// how an empty path is resolved). opts are applied after the file settings;
// reporters in opts are added to the one the file selects.
func NewFromConfig(path string, opts ...Option) (*Asserter, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	base, err := configOptions(cfg)
	if err != nil {
		return nil, err
	}
	return New(append(base, opts...)...), nil
}

func configOptions(cfg *config.Config) ([]Option, error) {
	var out io.Writer = os.Stderr
	if cfg.Output == config.OutputStdout {
		out = os.Stdout
	}

	opts := []Option{
		WithOutput(out),
		WithVariant(cfg.ProtocolVariant()),
		WithSuppressed(cfg.Suppress...),
	}
	switch cfg.Format {
	case config.FormatZap:
		opts = append(opts, WithReporter(report.NewZapWriter(out, false)))
	case config.FormatJSON:
		opts = append(opts, WithReporter(report.NewZapWriter(out, true)))
	}
	if cfg.DisableAll {
		opts = append(opts, WithAllDisabled())
	}
	if cfg.Journal != "" {
		l, err := journal.Open(cfg.Journal)
		if err != nil {
			return nil, err
		}
		opts = append(opts, withJournal(l))
	}
	return opts, nil
}

var (
	defaultAsserter atomic.Pointer[Asserter]
	defaultInit     sync.Mutex
)

// Default returns the process-wide Asserter, building it from the discovered
// config file on first use. A broken config falls back to built-in defaults
// with a warning on stderr.
func Default() *Asserter {
	if a := defaultAsserter.Load(); a != nil {
		return a
	}

	defaultInit.Lock()
	defer defaultInit.Unlock()

	if a := defaultAsserter.Load(); a != nil {
		return a
	}
	a, err := NewFromConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "rassert: %v; using defaults\n", err)
		a = New()
	}
	defaultAsserter.Store(a)
	return a
}

// SetDefault replaces the process-wide Asserter. Suppression state of the
// previous one is not carried over.
func SetDefault(a *Asserter) {
	defaultAsserter.Store(a)
}

// DebugTrap executes the resumable breakpoint without any protocol around it.
// It is compiled in every build mode.
func DebugTrap() {
	trap.Break()
}

// fail handles a false condition at the call site identified by pc.
func (a *Asserter) fail(pc uintptr, format string, args ...any) {
	site := a.reg.Site(pc)
	if a.reg.Suppressed(site) {
		return
	}

	f := Failure{
		File:      site.File,
		Function:  site.Function,
		Line:      site.Line,
		Condition: a.condition(site),
	}
	if format != "" {
		f.Message = fmt.Sprintf(format, args...)
	}

	a.reporter.Report(f)
	a.record(journal.Entry{
		Event:     journal.EventFailure,
		Site:      site.Key,
		Function:  site.Function,
		Condition: f.Condition,
		Message:   f.Message,
	})
	a.proto.Resolve(site)
}

func (a *Asserter) condition(site *registry.Site) string {
	if text, ok := a.conds.Condition(site.File, site.Line); ok && text != "" {
		return text
	}
	return unknownCondition
}

func (a *Asserter) observe(e Event) {
	entry := journal.Entry{
		Event:    string(e.Kind),
		Site:     e.Site.Key,
		Function: e.Site.Function,
	}
	if e.Kind == protocol.EventResolved {
		entry.Outcome = e.Outcome.String()
	}
	a.record(entry)

	if a.observer != nil {
		a.observer(e)
	}
}

func (a *Asserter) record(e journal.Entry) {
	if a.journal == nil {
		return
	}
	if err := a.journal.Record(e); err != nil {
		fmt.Fprintf(a.errOut, "rassert: journal %s: %v\n", a.journal.Path(), err)
	}
}

// Variant returns the protocol variant in use.
func (a *Asserter) Variant() Variant {
	return a.proto.Variant()
}

// Sites returns a snapshot of every call site that has failed at least once.
func (a *Asserter) Sites() []SiteInfo {
	return a.reg.Sites()
}

// AllDisabled reports whether every assertion has been silenced.
func (a *Asserter) AllDisabled() bool {
	return a.reg.AllDisabled()
}

// Disabled reports whether assertions at file:line are silenced. file may be
// a path suffix.
func (a *Asserter) Disabled(key string) bool {
	return a.reg.AllDisabled() || a.reg.KeyDisabled(key)
}

// Suppress silences the sites matching a file:line key.
func (a *Asserter) Suppress(key string) {
	a.reg.DisableKey(key)
}

// Watch applies suppressions from a config file whenever it changes. Only
// additions take effect: removing a key does not re-enable its site. Blocks
// until ctx is cancelled.
func (a *Asserter) Watch(ctx context.Context, path string) error {
	w, err := config.NewWatcher(config.ResolvePath(path), a.applyConfig)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func (a *Asserter) applyConfig(cfg *config.Config) {
	for _, key := range cfg.Suppress {
		a.reg.DisableKey(key)
	}
	if cfg.DisableAll {
		a.reg.DisableAll()
	}
}

// Close releases the journal, if any.
func (a *Asserter) Close() error {
	if a.journal == nil {
		return nil
	}
	return a.journal.Close()
}

// callerPC returns the program counter of the code calling the exported
// assertion function that called callerPC.
func callerPC() uintptr {
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	return pcs[0]
}
