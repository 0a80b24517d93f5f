package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
)

func setupConfigEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("BARSCAN_ENV_FILE", filepath.Join(tmp, "missing.env"))
	return tmp
}

func TestLoadDefaults(t *testing.T) {
	tmp := setupConfigEnv(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, SourceWedge, Get("source", ""))
	require.Equal(t, "memory", Get("history_backend", ""))
	require.Equal(t, filepath.Join(tmp, "config", "barscan"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(tmp, "state", "barscan"), Get("state_dir", ""))
	require.True(t, GetBool("feedback_bell", false))
	require.Equal(t, 750*time.Millisecond, GetDuration("capture_interval", 0))
	require.Equal(t, 128, GetInt("frame_cache_size", 0))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	tmp := setupConfigEnv(t)
	path := filepath.Join(tmp, "custom.toml")
	content := `
source = "dir"
history_backend = "sqlite"
theme = "light"
capture_interval = "2s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("BARSCAN_CONFIG_PATH", path)
	t.Setenv("BARSCAN_SOURCE", "command")

	Load()

	require.Equal(t, SourceCommand, Get("source", ""), "environment should win over file")
	require.Equal(t, "sqlite", Get("history_backend", ""))
	require.Equal(t, "light", Get("theme", ""))
	require.Equal(t, 2*time.Second, GetDuration("capture_interval", 0))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("BARSCAN_SOURCE", "bluetooth")
	t.Setenv("BARSCAN_FRAME_CACHE_SIZE", "-3")
	t.Setenv("BARSCAN_CAPTURE_INTERVAL", "soon")
	t.Setenv("BARSCAN_FEEDBACK_BELL", "maybe")

	Load()

	require.Equal(t, SourceWedge, Get("source", ""))
	require.Equal(t, 128, GetInt("frame_cache_size", 0))
	require.Equal(t, "750ms", Get("capture_interval", ""))
	require.True(t, GetBool("feedback_bell", false))
}

func TestBoolNormalization(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("BARSCAN_FEEDBACK_BELL", "off")
	t.Setenv("BARSCAN_LOGGING_ENABLED", "YES")

	Load()

	require.Equal(t, "false", Get("feedback_bell", ""))
	require.True(t, GetBool("logging_enabled", false))
}

func TestVerbosityOverridesLoggingLevel(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("BARSCAN_LOGGING_LEVEL", "warn")
	t.Setenv("BARSCAN_QUIET", "true")
	Load()
	require.Equal(t, "error", Get("logging_level", ""))

	t.Setenv("BARSCAN_DEBUG", "1")
	Load()
	require.Equal(t, "debug", Get("logging_level", ""), "debug wins over quiet")
}

func TestDotEnvFileIsLoaded(t *testing.T) {
	tmp := setupConfigEnv(t)
	envPath := filepath.Join(tmp, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("BARSCAN_FRAMES_DIR=/tmp/from-dotenv\n"), 0o644))
	t.Setenv("BARSCAN_ENV_FILE", envPath)
	t.Cleanup(func() { os.Unsetenv("BARSCAN_FRAMES_DIR") })

	Load()

	require.Equal(t, "/tmp/from-dotenv", Get("frames_dir", ""))
}

func TestSetValidatesValue(t *testing.T) {
	setupConfigEnv(t)
	Load()

	Set("source", "DIR")
	require.Equal(t, SourceDir, Get("source", ""))

	Set("source", "nope")
	require.Equal(t, SourceWedge, Get("source", ""))

	Set("device_path", "/dev/hidraw0")
	require.Equal(t, "/dev/hidraw0", Get("device_path", ""))
}

func TestWriteSample(t *testing.T) {
	tmp := setupConfigEnv(t)
	Load()
	path := filepath.Join(tmp, "out", "config.toml")

	require.NoError(t, WriteSample(path))
	require.Error(t, WriteSample(path), "existing file must not be overwritten")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, toml.Unmarshal(data, &raw))
	require.Equal(t, "wedge", raw["source"])
	require.Equal(t, true, raw["feedback_bell"])
	require.NotContains(t, raw, "config_dir")
}

func TestSearchAndHookKeys(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("BARSCAN_HISTORY_SEARCH", "REGEX")
	t.Setenv("BARSCAN_HOOKS_FAILURE_MODE", "explode")
	t.Setenv("BARSCAN_HOOKS_TIMEOUT", "-1s")
	Load()

	require.Equal(t, "regex", Get("history_search", ""))
	require.True(t, GetBool("search_case_insensitive", false))
	require.Equal(t, "warn", Get("hooks_failure_mode", ""))
	require.Equal(t, 30*time.Second, GetDuration("hooks_timeout", 0))
	require.Equal(t, 10, GetInt("hooks_max_async", 0))
	require.Equal(t, "plain", Get("output_format", ""))
}
