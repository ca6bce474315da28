// Package report renders failed assertions to a diagnostic destination.
// Every Reporter writes synchronously so the message is visible before the
// trap fires.
package report

import (
	"fmt"
	"io"
	"strconv"
	"sync"
)

// Failure describes one failed assertion.
type Failure struct {
	File      string
	Function  string
	Line      int
	Condition string
	Message   string
}

// Location returns file:line.
func (f Failure) Location() string {
	return f.File + ":" + strconv.Itoa(f.Line)
}

// Reporter receives failed assertions.
type Reporter interface {
	Report(f Failure)
}

// Func adapts a function to Reporter.
type Func func(f Failure)

// Report calls fn(f).
func (fn Func) Report(f Failure) {
	fn(f)
}

// Plain writes the classic three-line layout:
//
//	file:function:line
//	condition
//	message
type Plain struct {
	w  io.Writer
	mu sync.Mutex
}

// NewPlain creates a Plain reporter writing to w.
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

// Report writes f to the underlying writer.
func (p *Plain) Report(f Failure) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "%s:%s:%d\n%s\n", f.File, f.Function, f.Line, f.Condition)
	if f.Message != "" {
		fmt.Fprintln(p.w, f.Message)
	}
}

// Multi fans a failure out to several reporters in order.
type Multi []Reporter

// Report forwards f to every non-nil reporter.
func (m Multi) Report(f Failure) {
	for _, r := range m {
		if r != nil {
			r.Report(f)
		}
	}
}
