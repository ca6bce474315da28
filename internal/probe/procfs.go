package probe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultProcRoot = "/proc"

// Procfs reads tracer state from a procfs mount. Linux-only at runtime.
// Any tracer counts, so running under strace also reports attached.
type Procfs struct {
	Root string // defaults to /proc
}

// TracerPid returns the PID of the process tracing this one, 0 if none.
// Reads <root>/self/status.
func (p Procfs) TracerPid() (int, error) {
	root := p.Root
	if root == "" {
		root = defaultProcRoot
	}

	f, err := os.Open(filepath.Join(root, "self", "status"))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return ParseTracerPid(f)
}

// Attached reports whether TracerPid is non-zero. Read or parse errors
// report false.
func (p Procfs) Attached() bool {
	pid, err := p.TracerPid()
	return err == nil && pid != 0
}

// ParseTracerPid extracts the TracerPid field from /proc/<pid>/status content.
func ParseTracerPid(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || key != "TracerPid" {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("parse TracerPid %q: %w", strings.TrimSpace(value), err)
		}
		return pid, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read status: %w", err)
	}
	return 0, errors.New("TracerPid field not found")
}
