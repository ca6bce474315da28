package protocol

import (
	"runtime"

	"github.com/ppiankov/rassert/internal/probe"
	"github.com/ppiankov/rassert/internal/trap"
)

// NativeProber returns the operating system debugger probe.
func NativeProber() Prober {
	return probe.System{}
}

// NativeTrap returns the architecture breakpoint and the process abort.
func NativeTrap() Trap {
	return nativeTrap{}
}

type nativeTrap struct{}

func (nativeTrap) Break(o *Outcome) {
	trap.Break()
	// o must stay in addressable memory until the operator has resumed.
	runtime.KeepAlive(o)
}

func (nativeTrap) Abort() {
	trap.Abort()
}
