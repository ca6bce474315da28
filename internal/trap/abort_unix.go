//go:build unix

package trap

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// abortGrace bounds how long Abort waits for SIGABRT to take the process down.
const abortGrace = 2 * time.Second

// Abort stops the process and never returns. The Go runtime handles SIGABRT
// by dumping goroutines and exiting; os.Exit covers the case where delivery
// lands on another thread and has not killed us within abortGrace.
func Abort() {
	_ = unix.Kill(unix.Getpid(), unix.SIGABRT)
	time.Sleep(abortGrace)
	os.Exit(abortExitCode)
}
