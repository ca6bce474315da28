//go:build debug && !((386 || amd64 || arm || arm64) && unix)

package trap

// No resumable trap exists for this target. The undefined identifier below
// makes a debug build fail instead of silently compiling assertions that
// cannot be resumed.
var _ = resumable_trap_is_not_supported_on_this_target
