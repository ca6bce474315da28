//go:build !debug

package rassert

// Enabled reports whether assertions are compiled in (debug build tag).
const Enabled = false

// That is a no-op without the debug build tag.
func That(bool) {}

// Thatf is a no-op without the debug build tag.
func Thatf(bool, string, ...any) {}

// Func is a no-op without the debug build tag; cond is never called.
func Func(func() bool) {}

// Funcf is a no-op without the debug build tag; cond is never called.
func Funcf(func() bool, string, ...any) {}

// That is a no-op without the debug build tag.
func (*Asserter) That(bool) {}

// Thatf is a no-op without the debug build tag.
func (*Asserter) Thatf(bool, string, ...any) {}

// Func is a no-op without the debug build tag; cond is never called.
func (*Asserter) Func(func() bool) {}

// Funcf is a no-op without the debug build tag; cond is never called.
func (*Asserter) Funcf(func() bool, string, ...any) {}
