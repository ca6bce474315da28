package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/rassert/internal/protocol"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv(EnvDisableAll, "")
	t.Setenv(EnvVariant, "")
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default().Variant, cfg.Variant)
	assert.Equal(t, FormatPlain, cfg.Format)
	assert.Equal(t, OutputStderr, cfg.Output)
	assert.Empty(t, cfg.Path)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
variant: single
format: json
output: stdout
suppress:
  - internal/store/cache.go:88
  - main.go:12
disable_all: false
journal: /tmp/rassert.jsonl
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, protocol.SingleShot, cfg.ProtocolVariant())
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, OutputStdout, cfg.Output)
	assert.Equal(t, []string{"internal/store/cache.go:88", "main.go:12"}, cfg.Suppress)
	assert.Equal(t, "/tmp/rassert.jsonl", cfg.Journal)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.toml", `
variant = "retry"
format = "zap"
suppress = ["handler.go:7"]
disable_all = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, protocol.Retry, cfg.ProtocolVariant())
	assert.Equal(t, FormatZap, cfg.Format)
	assert.Equal(t, OutputStderr, cfg.Output, "unset keys keep defaults")
	assert.Equal(t, []string{"handler.go:7"}, cfg.Suppress)
	assert.True(t, cfg.DisableAll)
}

func TestLoadEmptyYAML(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, "config.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, FormatPlain, cfg.Format)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	tests := map[string]string{
		"unknown variant": "variant: loop\n",
		"unknown format":  "format: xml\n",
		"unknown output":  "output: syslog\n",
		"bad key":         "suppress: [main.go]\n",
		"zero line":       "suppress: [main.go:0]\n",
		"unknown field":   "verbosity: 3\n",
		"bad yaml":        "{{invalid yaml",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", content))
			require.Error(t, err)
		})
	}

	_, err := Load(writeFile(t, "config.toml", "format = [\n"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "variant: retry\n")
	t.Setenv(EnvPath, path)
	t.Setenv(EnvDisableAll, "true")
	t.Setenv(EnvVariant, "single")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.True(t, cfg.DisableAll)
	assert.Equal(t, protocol.SingleShot, cfg.ProtocolVariant())
}

func TestEnvDisableAllCannotUnset(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDisableAll, "false")

	cfg, err := Load(writeFile(t, "config.yaml", "disable_all: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.DisableAll)
}

func TestEnvDisableAllInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDisableAll, "sometimes")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))

	t.Setenv(EnvPath, "/from-env.yaml")
	assert.Equal(t, "/from-env.yaml", ResolvePath(""))

	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath(), ResolvePath(""))
}
