// Package trap provides the resumable breakpoint used by failed assertions
// and the unresumable stop used when nobody can resume it.
//
// Exactly one Break implementation is compiled per target. Debug builds for
// architectures without one fail to compile; release builds fall back to
// runtime.Breakpoint, reachable only through an explicit debug trap.
package trap

// abortExitCode matches the Go runtime's exit status for fatal signals.
const abortExitCode = 2

// Break halts the calling thread at a breakpoint. Under a debugger, continuing
// resumes right after the trap. Without one the process stops hard.
func Break() {
	breakpoint()
}

// Kind names the active breakpoint primitive.
func Kind() string {
	return kind
}
