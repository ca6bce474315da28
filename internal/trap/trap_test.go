//go:build unix

package trap

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.Contains(t, []string{"int3", "sigstop", "runtime"}, Kind())
}

func TestAbortTerminatesProcess(t *testing.T) {
	if os.Getenv("RASSERT_TEST_ABORT") == "1" {
		Abort()
		// Reaching here means Abort returned.
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAbortTerminatesProcess$")
	cmd.Env = append(os.Environ(), "RASSERT_TEST_ABORT=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "Abort must not let the process continue")
	assert.NotEqual(t, 0, exitErr.ExitCode())
}

func TestBreakWithoutDebuggerIsHardStop(t *testing.T) {
	if Kind() != "int3" {
		t.Skip("SIGSTOP suspends the child instead of killing it")
	}
	if os.Getenv("RASSERT_TEST_BREAK") == "1" {
		Break()
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestBreakWithoutDebuggerIsHardStop$")
	cmd.Env = append(os.Environ(), "RASSERT_TEST_BREAK=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "an unattached breakpoint must not be resumed")
}
