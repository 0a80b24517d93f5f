package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script under dir/point.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	pointDir := filepath.Join(dir, PointScan)
	require.NoError(t, os.MkdirAll(pointDir, 0o755))
	path := filepath.Join(pointDir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestNilRunnerIsNoop(t *testing.T) {
	var r *Runner
	assert.NoError(t, r.Run(context.Background(), PointScan, nil))
	assert.Nil(t, r.Scripts(PointScan))
	assert.False(t, r.Aborts())
	r.Wait()
}

func TestScriptsOrderAndFiltering(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "20-second.sh", "true")
	writeScript(t, dir, "10-first.sh", "true")
	require.NoError(t, os.WriteFile(filepath.Join(dir, PointScan, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, PointScan, "sub"), 0o755))

	r := New(Settings{Enabled: true, Dir: dir})
	scripts := r.Scripts(PointScan)
	require.Len(t, scripts, 2)
	assert.Equal(t, "10-first.sh", filepath.Base(scripts[0]))
	assert.Equal(t, "20-second.sh", filepath.Base(scripts[1]))

	disabled := New(Settings{Enabled: false, Dir: dir})
	assert.Empty(t, disabled.Scripts(PointScan))
	assert.Empty(t, r.Scripts("missing-point"))
}

func TestRunPassesScanEnvironment(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "env.txt")
	writeScript(t, dir, "record.sh",
		`echo "$BARSCAN_HOOK_POINT|$BARSCAN_TEXT|$BARSCAN_SYMBOLOGY|$BARSCAN_SOURCE|$BARSCAN_HISTORY_ID" > `+out)

	r := New(Settings{Enabled: true, Dir: dir})
	env := ScanEnv("0012345678905", "UPC-A", "wedge", 4)
	require.NoError(t, r.Run(context.Background(), PointScan, env))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "on-scan|0012345678905|UPC-A|wedge|4", strings.TrimSpace(string(data)))
}

func TestScanEnvOmitsUnknownFields(t *testing.T) {
	env := ScanEnv("123", "", "stdin", 0)
	assert.Equal(t, map[string]string{"BARSCAN_TEXT": "123", "BARSCAN_SOURCE": "stdin"}, env)
}

func TestFailureModes(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
		// whether the script after the failing one ran
		wantNext bool
	}{
		{FailureAbort, true, false},
		{FailureWarn, true, true},
		{FailureIgnore, false, true},
		{"bogus", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := t.TempDir()
			marker := filepath.Join(t.TempDir(), "ran")
			writeScript(t, dir, "10-fail.sh", "exit 3")
			writeScript(t, dir, "20-next.sh", "touch "+marker)

			r := New(Settings{Enabled: true, Dir: dir, FailureMode: tt.mode})
			err := r.Run(context.Background(), PointScan, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrHookFailed)
			} else {
				assert.NoError(t, err)
			}
			_, statErr := os.Stat(marker)
			assert.Equal(t, tt.wantNext, statErr == nil)
			assert.Equal(t, tt.mode == FailureAbort, r.Aborts())
		})
	}
}

func TestTimeoutKillsScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "slow.sh", "exec sleep 5")

	r := New(Settings{Enabled: true, Dir: dir, Timeout: 100 * time.Millisecond})
	start := time.Now()
	err := r.Run(context.Background(), PointScan, nil)
	assert.ErrorIs(t, err, ErrHookFailed)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestAsyncRunsInBackground(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(t.TempDir(), "done")
	writeScript(t, dir, "bg.sh", "sleep 0.2; touch "+marker)
	writeScript(t, dir, "fail.sh", "exit 1")

	r := New(Settings{Enabled: true, Dir: dir, Async: true})
	require.NoError(t, r.Run(context.Background(), PointScan, nil), "async failures are only logged")
	r.Wait()

	_, err := os.Stat(marker)
	assert.NoError(t, err)
}

func TestAsyncSkipsWhenSlotsAreFull(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(t.TempDir(), "count")
	writeScript(t, dir, "a.sh", "sleep 0.3; echo a >> "+marker)
	writeScript(t, dir, "b.sh", "sleep 0.3; echo b >> "+marker)

	r := New(Settings{Enabled: true, Dir: dir, Async: true, MaxAsync: 1})
	require.NoError(t, r.Run(context.Background(), PointScan, nil))
	r.Wait()

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data))
}

func TestSettingsFromConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("BARSCAN_HOOKS_FAILURE_MODE", "abort")
	t.Setenv("BARSCAN_HOOKS_ASYNC", "yes")
	config.Load()

	s := SettingsFromConfig()
	assert.True(t, s.Enabled)
	assert.Equal(t, filepath.Join(tmp, "barscan", "hooks"), s.Dir)
	assert.Equal(t, FailureAbort, s.FailureMode)
	assert.True(t, s.Async)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, 10, s.MaxAsync)

	t.Setenv("BARSCAN_HOOKS_DIR", "/opt/hooks")
	config.Load()
	assert.Equal(t, "/opt/hooks", SettingsFromConfig().Dir)
}
