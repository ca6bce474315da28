package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "suppress: [a.go:1]\n")

	got := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { got <- cfg })
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("suppress: [a.go:1, b.go:2]\n"), 0o600))

	select {
	case cfg := <-got:
		assert.Equal(t, []string{"a.go:1", "b.go:2"}, cfg.Suppress)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "format: plain\n")

	got := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) { got <- cfg })
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	sibling := filepath.Join(filepath.Dir(path), "other.yaml")
	require.NoError(t, os.WriteFile(sibling, []byte("format: zap\n"), 0o600))

	select {
	case <-got:
		t.Fatal("sibling file must not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherReportsBadReload(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "format: plain\n")

	w, err := NewWatcher(path, func(*Config) { t.Error("invalid config must not be applied") })
	require.NoError(t, err)
	defer w.watcher.Close()
	var errOut bytes.Buffer
	w.errOut = &errOut

	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o600))
	w.reload()

	assert.Contains(t, errOut.String(), "config reload failed")
}
