//go:build !unix

package trap

import "os"

// Abort stops the process and never returns.
func Abort() {
	os.Exit(abortExitCode)
}
