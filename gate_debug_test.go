//go:build debug

package rassert

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDefault(t *testing.T, a *Asserter) {
	t.Helper()
	prev := defaultAsserter.Load()
	SetDefault(a)
	t.Cleanup(func() { defaultAsserter.Store(prev) })
}

func TestEnabledInDebugBuild(t *testing.T) {
	assert.True(t, Enabled)
}

func TestPackageThatIgnoredOnce(t *testing.T) {
	f := newFixture(t, true, Outcome{Ignore: true})
	useDefault(t, f.a)

	n := 3
	That(n < 0)

	require.Equal(t, 1, f.rec.count())
	assert.Equal(t, "n < 0", f.rec.failures[0].Condition)
	assert.Equal(t, 1, f.op.breaks)

	That(n < 0)
	assert.Equal(t, 2, f.rec.count(), "ignore keeps the site armed")
}

func TestPackageThatfMessage(t *testing.T) {
	f := newFixture(t, true, Outcome{Disable: true})
	useDefault(t, f.a)

	for i := 0; i < 3; i++ {
		Thatf(i > 5, "index %d", i)
	}

	require.Equal(t, 1, f.rec.count())
	assert.Equal(t, "i > 5", f.rec.failures[0].Condition)
	assert.Equal(t, "index 0", f.rec.failures[0].Message)
}

func TestFuncEvaluatesConditionOnce(t *testing.T) {
	f := newFixture(t, true, Outcome{Ignore: true})
	useDefault(t, f.a)

	calls := 0
	next := func() int {
		calls++
		return calls
	}
	Func(func() bool { return next() > 1 })

	assert.Equal(t, 1, calls)
	require.Equal(t, 1, f.rec.count())
	assert.Equal(t, "next() > 1", f.rec.failures[0].Condition)

	calls = 0
	Funcf(func() bool { calls++; return true }, "unused")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, f.rec.count())
}

func TestAsserterMethods(t *testing.T) {
	f := newFixture(t, true, Outcome{Unleash: true})
	limit := 4

	f.a.That(limit == 0)
	f.a.Thatf(false, "x")
	f.a.Func(func() bool { return false })
	f.a.Funcf(func() bool { return false }, "y")

	require.Equal(t, 1, f.rec.count())
	assert.Equal(t, "limit == 0", f.rec.failures[0].Condition)
	assert.True(t, f.a.AllDisabled())
}

func TestPackageThatTerminatesWithoutDebugger(t *testing.T) {
	if os.Getenv("RASSERT_TEST_PACKAGE_STOP") == "1" {
		SetDefault(New(WithProber(ProberFunc(func() bool { return false }))))
		That(1 == 2)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestPackageThatTerminatesWithoutDebugger$")
	cmd.Env = append(os.Environ(), "RASSERT_TEST_PACKAGE_STOP=1")
	var stderr strings.Builder
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.NotEqual(t, 0, exitErr.ExitCode())
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n1 == 2\n"), stderr.String())
}

func checkDepth(a *Asserter, depth int) {
	a.That(depth < 8)
}

func descendLeft(a *Asserter)  { checkDepth(a, 9) }
func descendRight(a *Asserter) { checkDepth(a, 10) }

func TestDisableCoversEveryInlinedCopy(t *testing.T) {
	f := newFixture(t, true, Outcome{Disable: true})

	descendLeft(f.a)
	descendRight(f.a)

	assert.Equal(t, 1, f.op.breaks)
	assert.Equal(t, 1, f.rec.count())
	require.Len(t, f.a.Sites(), 1)
	assert.Equal(t, "depth < 8", f.rec.failures[0].Condition)
}
