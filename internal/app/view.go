package app

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/spots/internal/ui"
	"github.com/Akashdeep-Patra/spots/internal/ui/components"
)

// View renders the stitched components, the scrollbar and the status bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return components.RenderHelp(m.styles, "spots", m.keys.HelpEntries(), m.width, m.height)
	}

	viewW, viewH := m.viewWidth(), m.viewHeight()
	rows := m.canvas(viewW, viewH)

	bar := components.Scrollbar(m.styles, viewH,
		m.stack.ContentSize().Height, m.stack.Bounds().Height, m.stack.ContentOffset().Y)

	var b strings.Builder
	for i, row := range rows {
		b.WriteString(ui.FitWidth(row, viewW))
		if bar != nil {
			b.WriteString(bar[i])
		} else {
			b.WriteString(" ")
		}
		b.WriteByte('\n')
	}
	if m.search != nil {
		b.WriteString(m.searchBar())
		b.WriteByte('\n')
	}
	b.WriteString(components.RenderStatusBar(m.styles, m.statusData(), m.width))

	if m.dialog != nil && m.dialog.Visible() {
		return ui.PlaceCentre(m.width, m.height, m.dialog.View())
	}
	return b.String()
}

// canvas draws every pane's visible rows at its frame. Frames are laid out
// in the external scroll space, so the viewport origin is the external
// offset. Later panes overwrite earlier ones where frames overlap.
func (m Model) canvas(width, height int) []string {
	rows := make([]string, height)
	if len(m.entries) == 0 {
		rows[0] = m.styles.Muted.Render(ui.PadRight("  no components", width))
		return rows
	}
	ext := m.stack.ContentOffset().Y
	for _, e := range m.entries {
		frame := e.pane.Frame()
		top := int(frame.MinY() - ext)
		for n, line := range e.pane.Visible() {
			y := top + n
			if y < 0 || y >= height {
				continue
			}
			rows[y] = line
		}
	}
	return rows
}

func (m Model) searchBar() string {
	s := m.search
	line := s.input.View()
	if sum := s.summary(); sum != "" {
		line += "  " + m.styles.Muted.Render(sum)
	}
	if h, ok := s.current(); ok {
		line += "  " + m.styles.Match.Render(h.text)
	}
	return m.styles.SearchBar.Width(m.width).MaxWidth(m.width).Render(ui.FitWidth(line, m.width-2))
}

func (m Model) statusData() components.StatusBarData {
	d := components.StatusBarData{
		Components: len(m.entries),
		Component:  m.focus,
		Offset:     m.stack.ContentOffset().Y,
		MaxOffset:  m.stack.MaxOffset(),
	}
	if m.source != "" {
		d.Source = filepath.Base(m.source)
	}
	for _, e := range m.entries {
		d.Pending += e.comp.Pending()
	}
	if e, ok := m.focused(); ok {
		cm := e.comp.Model()
		d.Kind = string(cm.Kind)
		d.Title = cm.Title
		d.Item = e.pane.Selected()
		d.Items = e.pane.Len()
	}
	if m.status.msg != "" && time.Now().Before(m.status.exp) {
		d.Message = m.status.msg
		d.IsError = m.status.isErr
	}
	return d
}
