//go:build !debug && !((386 || amd64 || arm || arm64) && unix)

package trap

import "runtime"

// Release builds never fail an assertion, so this only serves DebugTrap.
const kind = "runtime"

func breakpoint() {
	runtime.Breakpoint()
}
