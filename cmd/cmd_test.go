package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/barcode/barcodetest"
	"github.com/cristianoliveira/barscan/internal/camera"
	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/cristianoliveira/barscan/internal/feedback"
	"github.com/cristianoliveira/barscan/internal/hooks"
	"github.com/cristianoliveira/barscan/internal/tui/state"
	"github.com/cristianoliveira/barscan/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("BARSCAN_ENV_FILE", filepath.Join(tmp, "none.env"))
	t.Setenv("BARSCAN_CONFIG_PATH", "")
	return tmp
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

type staticVersion string

func (v staticVersion) Version() string { return string(v) }

func TestVersionCmd(t *testing.T) {
	c := NewVersionCmd(staticVersion("1.2.3+abc1234"))
	var out bytes.Buffer
	c.SetOut(&out)
	require.NoError(t, c.Execute())
	assert.Equal(t, "barscan version 1.2.3+abc1234\n", out.String())

	assert.Panics(t, func() { NewVersionCmd(nil) })
}

func TestRootVersionSubcommand(t *testing.T) {
	setupEnv(t)
	orig := version.Version
	t.Cleanup(func() { version.Version = orig })
	version.Version = "9.9.9"

	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "barscan version 9.9.9")
}

func TestScanCmdReadsStdinForWedge(t *testing.T) {
	setupEnv(t)
	t.Setenv("BARSCAN_FEEDBACK_BELL", "false")

	out, err := runCLI(t, "0012345678905\n0012345678905\n0099999999990\n", "scan")
	require.NoError(t, err)
	assert.Equal(t, "0012345678905\n0099999999990\n", out)
}

func TestScanCmdFlagsOverrideConfig(t *testing.T) {
	setupEnv(t)
	_, err := runCLI(t, "", "scan", "--source", "device")
	assert.Error(t, err, "device source without a path")
	assert.Equal(t, config.SourceDevice, config.Get("source", ""))
}

func TestRunScanJSONAndCount(t *testing.T) {
	capability := camera.NewStdin(strings.NewReader("96385074\n5901234123457\n123\n"))
	rings := 0
	var out bytes.Buffer

	err := runScan(context.Background(), capability, feedback.Func(func() { rings++ }), &out, &scanOptions{json: true, count: 2})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	var first scanLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "96385074", first.Text)
	assert.Equal(t, "stdin", first.Source)
	assert.Equal(t, 2, rings)
}

func TestRunScanPermissionDenied(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	err := runScan(context.Background(), camera.NewDir(file, 4, nil), feedback.Nop(), &bytes.Buffer{}, &scanOptions{})
	assert.ErrorIs(t, err, camera.ErrPermissionDenied)
}

func TestDecodeCmd(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	ean := filepath.Join(dir, "ean.png")
	barcodetest.WritePNG(t, ean, barcode.SymbologyEAN13, "5901234123457")

	out, err := runCLI(t, "", "decode", ean)
	require.NoError(t, err)
	assert.Equal(t, "5901234123457\n", out)

	upc := filepath.Join(dir, "upc.png")
	barcodetest.WritePNG(t, upc, barcode.SymbologyUPCA, "012345678905")
	out, err = runCLI(t, "", "decode", ean, upc)
	require.NoError(t, err)
	assert.Contains(t, out, ean+": 5901234123457 (EAN-13)")
	assert.Contains(t, out, upc+": 012345678905 (UPC-A)")
}

func TestDecodeCmdStdinAndFailures(t *testing.T) {
	setupEnv(t)
	blank := filepath.Join(t.TempDir(), "blank.png")
	require.NoError(t, os.WriteFile(blank, barcodetest.Blank(t), 0o644))
	stdin := string(barcodetest.PNG(t, barcode.SymbologyEAN8, "96385074"))

	out, err := runCLI(t, stdin, "decode", "--json", "-", blank)
	require.ErrorIs(t, err, errDecodeFailed)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var ok, bad decodeLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ok))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &bad))
	assert.Equal(t, decodeLine{File: "-", Text: "96385074", Symbology: "EAN-8"}, ok)
	assert.Equal(t, blank, bad.File)
	assert.NotEmpty(t, bad.Error)
}

func TestConfigInit(t *testing.T) {
	tmp := setupEnv(t)
	target := filepath.Join(tmp, "out", "config.toml")

	_, err := runCLI(t, "", "config", "init", "--path", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "history_backend")

	_, err = runCLI(t, "", "config", "init", "--path", target)
	assert.Error(t, err, "never overwrites")
}

type fakeTUIClient struct {
	created bool
	ran     bool
}

func (f *fakeTUIClient) CreateModel() (*state.Model, error) {
	f.created = true
	return nil, nil
}

func (f *fakeTUIClient) RunProgram(model *state.Model) error {
	f.ran = true
	return nil
}

func TestTUICmdUsesClient(t *testing.T) {
	client := &fakeTUIClient{}
	c := NewTUICmd(func() tuiClient { return client })
	c.SetArgs(nil)
	require.NoError(t, c.Execute())
	assert.True(t, client.created)
	assert.True(t, client.ran)

	assert.Panics(t, func() { NewTUICmd(nil) })
}

func writeHook(t *testing.T, dir, name, body string) {
	t.Helper()
	pointDir := filepath.Join(dir, hooks.PointScan)
	require.NoError(t, os.MkdirAll(pointDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pointDir, name), []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

func TestRunScanFormatAndHooks(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(t.TempDir(), "hook.log")
	writeHook(t, dir, "log.sh", `echo "$BARSCAN_TEXT $BARSCAN_SOURCE" >> `+log)

	runner := hooks.New(hooks.Settings{Enabled: true, Dir: dir})
	var out bytes.Buffer
	capability := camera.NewStdin(strings.NewReader("111\n222\n222\n"))
	err := runScan(context.Background(), capability, feedback.Nop(), &out, &scanOptions{format: "numbered", hooks: runner})
	require.NoError(t, err)

	assert.Equal(t, "1. 111\n2. 222\n", out.String())
	data, err := os.ReadFile(log)
	require.NoError(t, err)
	assert.Equal(t, "111 stdin\n222 stdin\n", string(data))
}

func TestRunScanAbortingHookStops(t *testing.T) {
	dir := t.TempDir()
	writeHook(t, dir, "fail.sh", "exit 2")

	runner := hooks.New(hooks.Settings{Enabled: true, Dir: dir, FailureMode: hooks.FailureAbort})
	var out bytes.Buffer
	capability := camera.NewStdin(strings.NewReader("111\n222\n"))
	err := runScan(context.Background(), capability, feedback.Nop(), &out, &scanOptions{hooks: runner})
	require.ErrorIs(t, err, hooks.ErrHookFailed)
	assert.Equal(t, "111\n", out.String())
}

func TestRunScanRejectsUnknownFormat(t *testing.T) {
	err := runScan(context.Background(), camera.NewStdin(strings.NewReader("")), feedback.Nop(), &bytes.Buffer{}, &scanOptions{format: "xml"})
	assert.ErrorContains(t, err, "unknown format")
}

func TestDecodeCmdFormat(t *testing.T) {
	setupEnv(t)
	file := filepath.Join(t.TempDir(), "ean8.png")
	barcodetest.WritePNG(t, file, barcode.SymbologyEAN8, "96385074")

	out, err := runCLI(t, "", "decode", "--format", "{{symbology}}={{text}}", file)
	require.NoError(t, err)
	assert.Equal(t, "EAN-8=96385074\n", out)
}

type recordingHandler struct {
	errors []string
}

func (r *recordingHandler) Error(msg string)   { r.errors = append(r.errors, msg) }
func (r *recordingHandler) Warning(msg string) {}
func (r *recordingHandler) Info(msg string)    {}
func (r *recordingHandler) Success(msg string) {}

func TestExecuteReportsFailures(t *testing.T) {
	setupEnv(t)
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"decode", filepath.Join(t.TempDir(), "missing.png")})
	h := &recordingHandler{}

	err := execute(root, h)
	require.Error(t, err)
	require.Len(t, h.errors, 1)
	assert.True(t, strings.HasPrefix(h.errors[0], "barscan decode: "), h.errors[0])

	root = NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"version"})
	h = &recordingHandler{}
	require.NoError(t, execute(root, h))
	assert.Empty(t, h.errors)
}
