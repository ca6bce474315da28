package rassert

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goTool(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("builds binaries")
	}
	path, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not on PATH")
	}
	return path
}

func goRun(t *testing.T, goBin string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(goBin, args...)
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runtimeSymbols counts symbols of the trap, probe, protocol and report
// packages in a gatecheck binary built with the given tags.
func runtimeSymbols(t *testing.T, goBin string, tags string) int {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "gatecheck")
	args := []string{"build", "-o", bin}
	if tags != "" {
		args = append(args, "-tags", tags)
	}
	args = append(args, "./testdata/gatecheck")

	out, err := goRun(t, goBin, nil, args...)
	require.NoError(t, err, out)

	syms, err := goRun(t, goBin, nil, "tool", "nm", bin)
	require.NoError(t, err, syms)

	n := 0
	for _, line := range strings.Split(syms, "\n") {
		for _, pkg := range []string{"trap.", "probe.", "protocol.", "report."} {
			if strings.Contains(line, "rassert/internal/"+pkg) {
				n++
				break
			}
		}
	}
	return n
}

func TestReleaseBinaryLinksNoAssertionRuntime(t *testing.T) {
	goBin := goTool(t)

	assert.Zero(t, runtimeSymbols(t, goBin, ""))
	assert.Positive(t, runtimeSymbols(t, goBin, "debug"))
}

func TestReleaseBuildOnTargetsWithoutTrap(t *testing.T) {
	goBin := goTool(t)

	for _, target := range [][2]string{{"windows", "amd64"}, {"linux", "riscv64"}} {
		env := []string{"GOOS=" + target[0], "GOARCH=" + target[1], "CGO_ENABLED=0"}
		out, err := goRun(t, goBin, env, "build", "./...")
		assert.NoError(t, err, "%s/%s: %s", target[0], target[1], out)
	}

	env := []string{"GOOS=linux", "GOARCH=riscv64", "CGO_ENABLED=0"}
	out, err := goRun(t, goBin, env, "build", "-tags", "debug", ".")
	require.Error(t, err)
	assert.Contains(t, out, "resumable_trap_is_not_supported_on_this_target")
}
