// Package rassert provides resumable assertions: checks that, when they fail
// under a debugger, stop at a breakpoint and let the operator decide what
// happens next instead of crashing the process.
//
// Assertions are compiled in only with the debug build tag:
//
//	go build -tags debug ./...
//	dlv debug --build-flags="-tags debug" ./cmd/myapp
//
// Usage:
//
//	rassert.That(len(key) > 0)
//	rassert.Thatf(n <= cap(buf), "write of %d bytes into %d", n, cap(buf))
//	rassert.Func(func() bool { return tree.Balanced() })
//
// When a condition is false the failure is reported (file, function, line,
// the condition's source text and the formatted message) and then:
//
//   - if the site or the whole process has been silenced, nothing else happens;
//   - if no debugger is attached, the process stops hard (SIGABRT);
//   - otherwise instructions are printed and the goroutine halts at a
//     breakpoint. In the protocol.(*Protocol).Resolve frame the operator sets
//     one of outcome.Ignore, outcome.Disable or outcome.Unleash with Delve's
//     set command and continues.
//
// Disable silences that call site and Unleash silences every assertion, both
// for the rest of the process lifetime. With the default Retry variant,
// continuing without setting anything traps again; the SingleShot variant
// treats it as ignore.
//
// # Build hazard
//
// Without the debug tag every function here has an empty body, but Go still
// evaluates arguments before calling them: rassert.That(expensive()) calls
// expensive() in release builds. Use Func, which never calls its argument in
// release builds, or guard the check so the compiler drops it entirely:
//
//	if rassert.Enabled {
//		rassert.That(expensive())
//	}
//
// # Configuration
//
// The process-wide Asserter returned by Default reads ~/.rassert/config.yaml
// (or the file named by RASSERT_CONFIG, YAML or TOML) for the protocol
// variant, report format, startup suppressions and an optional failure
// journal. Tests and libraries that need isolated state construct their own
// Asserter with New.
package rassert
