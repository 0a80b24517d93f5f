package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/camera"
	"github.com/cristianoliveira/barscan/internal/history"
	"github.com/stretchr/testify/assert"
)

func TestThemeToggle(t *testing.T) {
	dark := NewTheme("anything")
	assert.Equal(t, ThemeDark, dark.Name)
	assert.Equal(t, ThemeLight, dark.Toggle().Name)
	assert.Equal(t, ThemeDark, dark.Toggle().Toggle().Name)
}

func TestHeaderFitsWidth(t *testing.T) {
	header := Header(NewTheme(ThemeDark), "Scanner", 40)
	assert.Contains(t, header, "Scanner")
	assert.Equal(t, 40, lipgloss.Width(header))
}

func TestScannerPermissionPrompt(t *testing.T) {
	view := Scanner(NewTheme(ThemeDark), ScannerState{Permission: camera.PermissionDenied})
	assert.Contains(t, view, PermissionMessage)
	assert.Contains(t, view, GrantAction)
	assert.NotContains(t, view, LastScannedTitle)
}

func TestScannerLastValue(t *testing.T) {
	th := NewTheme(ThemeDark)

	view := Scanner(th, ScannerState{Permission: camera.PermissionGranted, Active: true, Source: "dir", Spinner: "*"})
	assert.Contains(t, view, LastScannedTitle)
	assert.Contains(t, view, NoScanYet)
	assert.Contains(t, view, "scanning with dir")

	view = Scanner(th, ScannerState{Permission: camera.PermissionGranted, LastScan: "96385074"})
	assert.Contains(t, view, "96385074")
	assert.NotContains(t, view, NoScanYet)
	assert.NotContains(t, view, "scanning with")
}

func TestHistoryRows(t *testing.T) {
	th := NewTheme(ThemeDark)
	assert.Contains(t, History(th, nil, 0, 40), history.EmptyMessage)

	at := time.Date(2026, 10, 15, 14, 5, 9, 0, time.Local)
	entries := []history.Entry{
		{ID: 1, Text: "0012345678905", Symbology: barcode.SymbologyUPCA, ScannedAt: at},
		{ID: 3, Text: "96385074"},
	}
	view := History(th, entries, 1, 60)
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "0012345678905")
	assert.Contains(t, lines[0], "UPC-A")
	assert.Contains(t, lines[0], "14:05:09")
	assert.Contains(t, lines[1], "   3  96385074")
	assert.NotContains(t, lines[1], "unknown")
}

func TestDrawerMarksCurrent(t *testing.T) {
	view := Drawer(NewTheme(ThemeLight), []string{"Home", "Scanner", "History"}, 0, 2)
	assert.Contains(t, view, "• History")
	assert.Contains(t, view, "  Home")
}

func TestNoMatches(t *testing.T) {
	out := NoMatches(NewTheme(ThemeDark), "ean8")
	assert.Contains(t, out, `No scans match "ean8"`)
}
