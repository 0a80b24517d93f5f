package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/barscan/internal/camera"
	"github.com/cristianoliveira/barscan/internal/history"
)

const (
	PermissionMessage = "We need your permission to show the scanner"
	GrantAction       = "Grant Permission"
	RestartHint       = "Scanner stopped, press g to restart"
	LastScannedTitle  = "Last Barcode Scanned"
	NoScanYet         = "No barcode scanned yet"
	drawerWidth       = 16
)

// Header renders the title bar with the screen name and the theme toggle.
func Header(t Theme, title string, width int) string {
	left := t.Title.Render("☰ " + title)
	right := t.Muted.Render(t.ThemeIcon + " [t]")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// Drawer renders the navigation menu.
func Drawer(t Theme, items []string, cursor, current int) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		marker := "  "
		if i == current {
			marker = "• "
		}
		line := fmt.Sprintf("%s%-*s", marker, drawerWidth-2, item)
		if i == cursor {
			line = t.Selected.Render(line)
		} else {
			line = t.Text.Render(line)
		}
		lines = append(lines, line)
	}
	return t.Border.Render(strings.Join(lines, "\n"))
}

// Home renders the landing screen.
func Home(t Theme, lastScan string, historyLen int) string {
	lines := []string{
		t.Title.Render("Home Screen"),
		"",
		t.Text.Render("Scan EAN-13, EAN-8, UPC-A and UPC-E barcodes."),
		t.Muted.Render("Open the Scanner to start, the History to review."),
		"",
	}
	if lastScan != "" {
		lines = append(lines, t.Muted.Render(LastScannedTitle+": ")+t.Accent.Render(lastScan))
	}
	lines = append(lines, t.Muted.Render(fmt.Sprintf("%d scanned this session", historyLen)))
	return strings.Join(lines, "\n")
}

// ScannerState is what the scanner screen shows.
type ScannerState struct {
	Permission camera.Permission
	Active     bool
	Source     string
	LastScan   string
	Input      string
	Spinner    string
}

// Scanner renders the scanner screen.
func Scanner(t Theme, s ScannerState) string {
	if !s.Permission.Granted() {
		return strings.Join([]string{
			t.Text.Render(PermissionMessage),
			"",
			t.Accent.Render("[ " + GrantAction + " ]") + t.Muted.Render("  press g"),
		}, "\n")
	}

	var lines []string
	if s.Active {
		lines = append(lines, t.Border.Render(scannerFrame(t, s)))
	} else {
		lines = append(lines, t.Muted.Render(RestartHint))
	}
	last := s.LastScan
	if last == "" {
		last = NoScanYet
	}
	lines = append(lines, "", t.Title.Render(LastScannedTitle), t.Accent.Render(last))
	return strings.Join(lines, "\n")
}

func scannerFrame(t Theme, s ScannerState) string {
	if s.Input != "" {
		return s.Input
	}
	return fmt.Sprintf("%s %s", s.Spinner, t.Muted.Render("scanning with "+s.Source))
}

// History renders the entry rows, or the empty state.
func History(t Theme, entries []history.Entry, cursor, width int) string {
	if len(entries) == 0 {
		return t.Title.Render(history.EmptyMessage)
	}
	rows := make([]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, HistoryRow(t, e, i == cursor, width))
	}
	return strings.Join(rows, "\n")
}

// NoMatches renders the empty result of a history filter.
func NoMatches(t Theme, query string) string {
	return t.Muted.Render(fmt.Sprintf("No scans match %q", query))
}

// HistoryRow renders one entry.
func HistoryRow(t Theme, e history.Entry, selected bool, width int) string {
	sym := e.Symbology.String()
	if e.Symbology == "" {
		sym = ""
	}
	at := ""
	if !e.ScannedAt.IsZero() {
		at = e.ScannedAt.Format("15:04:05")
	}
	row := fmt.Sprintf("%4d  %-16s %-7s %s", e.ID, e.Text, sym, at)
	if width > 0 && lipgloss.Width(row) < width {
		row += strings.Repeat(" ", width-lipgloss.Width(row))
	}
	if selected {
		return t.Selected.Render(row)
	}
	return t.Text.Render(row)
}

// Status renders a status line message.
func Status(t Theme, text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Render(text)
}
