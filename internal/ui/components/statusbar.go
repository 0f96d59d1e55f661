package components

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/spots/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Kind       string
	Title      string
	Component  int // zero-based index of the focused component
	Components int
	Item       int // zero-based index of the selected item
	Items      int
	Offset     float64
	MaxOffset  float64
	Pending    int    // mutations whose completion has not run yet
	Message    string // transient info/error message
	IsError    bool
	Source     string
}

// RenderStatusBar renders the bottom status bar with clear visual sections
// separated by dim vertical bars.
//
// Wide (>= 60):    list  Inbox │ 2/5 │ 3/12 │ 40%            feed.json
// Medium (40-59):  list  Inbox │ 2/5 │ 3/12
// Narrow (< 40):   list  3/12
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sep := lipgloss.NewStyle().Foreground(t.Border).Faint(true).Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	left := " " + styles.KindBadge(data.Kind)
	if width >= 40 && data.Title != "" {
		left += " " + lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(ui.Truncate(data.Title, 24))
	}

	position := func(i, n int) string {
		if n == 0 {
			return "0/0"
		}
		return fmt.Sprintf("%d/%d", i+1, n)
	}
	if width >= 40 && data.Components > 0 {
		left += sep + lipgloss.NewStyle().Foreground(t.Secondary).Render(position(data.Component, data.Components))
	}
	items := lipgloss.NewStyle().Foreground(t.TextMuted).Render(position(data.Item, data.Items))
	if width >= 40 {
		left += sep + items
	} else {
		left += " " + items
	}

	if width >= 60 && data.MaxOffset > 0 {
		pct := int(data.Offset / data.MaxOffset * 100)
		left += sep + lipgloss.NewStyle().Foreground(t.TextSubtle).Render(fmt.Sprintf("%d%%", min(max(pct, 0), 100)))
	}
	if data.Pending > 0 {
		left += sep + lipgloss.NewStyle().Foreground(t.Warning).Render(fmt.Sprintf("⟳ %d", data.Pending))
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else if width >= 60 && data.Source != "" {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(data.Source) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	return styles.StatusBar.Width(width).MaxWidth(width).Render(ui.FitWidth(left+strings.Repeat(" ", gap)+right, width-2))
}
