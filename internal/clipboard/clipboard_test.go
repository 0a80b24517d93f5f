package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSC52WritesEscapeSequence(t *testing.T) {
	t.Setenv("TMUX", "")
	var buf bytes.Buffer

	require.NoError(t, NewOSC52(&buf).Copy("0012345678905"))

	out := buf.String()
	assert.Contains(t, out, "\x1b]52;c;")
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("0012345678905")))
}

func TestOSC52WrapsForTmux(t *testing.T) {
	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
	var buf bytes.Buffer

	require.NoError(t, NewOSC52(&buf).Copy("96385074"))
	assert.Contains(t, buf.String(), "\x1bPtmux;")
}

func TestCommandPipesText(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("sh not available")
	}
	out := filepath.Join(t.TempDir(), "clip")

	c := NewCommand("sh -c cat>" + out)
	require.NoError(t, c.Copy("5901234123457"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "5901234123457", string(data))
}

func TestCommandErrors(t *testing.T) {
	assert.Error(t, NewCommand("").Copy("x"))
	assert.Error(t, NewCommand("barscan-no-such-copy").Copy("x"))
}

func TestMultiJoinsErrors(t *testing.T) {
	ok := new(MockCopier)
	ok.On("Copy", "123").Return(nil)
	failing := new(MockCopier)
	failing.On("Copy", "123").Return(errors.New("no display"))

	err := Multi{failing, ok}.Copy("123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
	ok.AssertCalled(t, "Copy", "123")
	failing.AssertCalled(t, "Copy", "123")
}

func TestFromConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("BARSCAN_CONFIG_PATH", filepath.Join(tmp, "none.toml"))
	t.Setenv("BARSCAN_ENV_FILE", filepath.Join(tmp, "none.env"))
	t.Setenv("BARSCAN_CLIPBOARD_COMMAND", "wl-copy")
	config.Load()

	multi, ok := FromConfig(&bytes.Buffer{}).(Multi)
	require.True(t, ok)
	require.Len(t, multi, 2)
	assert.IsType(t, &OSC52{}, multi[0])
	assert.IsType(t, &Command{}, multi[1])
}
