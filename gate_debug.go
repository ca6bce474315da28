//go:build debug

package rassert

// Enabled reports whether assertions are compiled in (debug build tag).
const Enabled = true

// That fails when cond is false.
func That(cond bool) {
	if !cond {
		Default().fail(callerPC(), "")
	}
}

// Thatf fails with a formatted message when cond is false.
func Thatf(cond bool, format string, args ...any) {
	if !cond {
		Default().fail(callerPC(), format, args...)
	}
}

// Func fails when cond returns false. cond is called exactly once.
func Func(cond func() bool) {
	if !cond() {
		Default().fail(callerPC(), "")
	}
}

// Funcf fails with a formatted message when cond returns false.
func Funcf(cond func() bool, format string, args ...any) {
	if !cond() {
		Default().fail(callerPC(), format, args...)
	}
}

// That fails when cond is false.
func (a *Asserter) That(cond bool) {
	if !cond {
		a.fail(callerPC(), "")
	}
}

// Thatf fails with a formatted message when cond is false.
func (a *Asserter) Thatf(cond bool, format string, args ...any) {
	if !cond {
		a.fail(callerPC(), format, args...)
	}
}

// Func fails when cond returns false. cond is called exactly once.
func (a *Asserter) Func(cond func() bool) {
	if !cond() {
		a.fail(callerPC(), "")
	}
}

// Funcf fails with a formatted message when cond returns false.
func (a *Asserter) Funcf(cond func() bool, format string, args ...any) {
	if !cond() {
		a.fail(callerPC(), format, args...)
	}
}
