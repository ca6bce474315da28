//go:build (386 || amd64) && unix

package trap

import "runtime"

const kind = "int3"

func breakpoint() {
	runtime.Breakpoint()
}
