package app

import (
	"fmt"

	"github.com/Akashdeep-Patra/spots/internal/common"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Help overlay swallows everything except its own toggle and quit.
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Refresh):
		return m, common.CmdRefresh

	case key.Matches(msg, m.keys.Down):
		m.step(1)
	case key.Matches(msg, m.keys.Up):
		m.step(-1)
	case key.Matches(msg, m.keys.Right):
		m.sideways(1)
	case key.Matches(msg, m.keys.Left):
		m.sideways(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.stack.ScrollBy(m.stack.Bounds().Height)
	case key.Matches(msg, m.keys.PageUp):
		m.stack.ScrollBy(-m.stack.Bounds().Height)
	case key.Matches(msg, m.keys.Home):
		m.jumpTop()
	case key.Matches(msg, m.keys.End):
		m.jumpBottom()

	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)

	case key.Matches(msg, m.keys.Enter):
		return m, m.activate()

	case key.Matches(msg, m.keys.Append):
		e, ok := m.focused()
		if !ok {
			return m, nil
		}
		d := components.NewInputDialog(m.styles, "Append item", "title", "append").For(e.comp.Handle(), 0)
		m.dialog = &d
	case key.Matches(msg, m.keys.Delete):
		e, ok := m.focused()
		if !ok {
			return m, nil
		}
		it, ok := e.pane.SelectedItem()
		if !ok {
			return m, nil
		}
		if !m.cfg.ConfirmDestructive {
			m.deleteItem(e, e.pane.Selected())
			return m, nil
		}
		d := components.NewConfirmDialog(m.styles, "Delete item",
			fmt.Sprintf("Delete %q?", label(it)), "delete").For(e.comp.Handle(), e.pane.Selected())
		m.dialog = &d
	case key.Matches(msg, m.keys.MoveToTop):
		if e, ok := m.focused(); ok {
			m.moveToTop(e, e.pane.Selected())
		}

	case key.Matches(msg, m.keys.Search):
		m.openSearch()
	}
	return m, nil
}

// sideways moves between cards and cells; lists ignore it.
func (m *Model) sideways(delta int) {
	e, ok := m.focused()
	if !ok || e.pane.Kind() == model.KindList || e.pane.Kind() == model.KindCustom {
		return
	}
	if e.pane.Move(delta) {
		m.reveal()
	}
}

func (m *Model) jumpTop() {
	if len(m.entries) == 0 {
		return
	}
	m.setFocus(0)
	m.entries[0].pane.Select(0)
	m.stack.ScrollTo(0)
}

func (m *Model) jumpBottom() {
	if len(m.entries) == 0 {
		return
	}
	m.setFocus(len(m.entries) - 1)
	e := m.entries[m.focus]
	e.pane.Select(e.pane.Len() - 1)
	m.stack.ScrollTo(m.stack.MaxOffset())
}

func (m *Model) cycleFocus(delta int) {
	n := len(m.entries)
	if n == 0 {
		return
	}
	m.setFocus((m.focus + delta + n) % n)
	m.reveal()
}

// activate reports the action of the selected item.
func (m Model) activate() tea.Cmd {
	e, ok := m.focused()
	if !ok {
		return nil
	}
	it, ok := e.pane.SelectedItem()
	if !ok {
		return nil
	}
	m.logger.Info("item activated", "component", e.comp.Handle(), "index", it.Index, "action", it.Action)
	if it.Action == "" {
		return common.CmdInfo(fmt.Sprintf("%s has no action", label(it)))
	}
	return common.CmdInfo("→ " + it.Action)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	step := float64(max(1, m.cfg.ScrollStep))
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.stack.ScrollBy(-step)
	case tea.MouseButtonWheelDown:
		m.stack.ScrollBy(step)
	}
	return m, nil
}

// ── Search ─────────────────────────────────────────────────────────

func (m *Model) openSearch() {
	var c corpus
	for ci, e := range m.entries {
		for ii, it := range e.pane.Rows() {
			text := label(it)
			if it.Subtitle != "" {
				text += " " + it.Subtitle
			}
			c = append(c, hit{component: ci, item: ii, text: text})
		}
	}
	m.search = newSearch(c)
	m.stack.SetBounds(m.bounds())
}

func (m *Model) closeSearch() {
	m.search = nil
	m.stack.SetBounds(m.bounds())
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil
	case "enter":
		h, ok := m.search.current()
		m.closeSearch()
		if ok && h.component < len(m.entries) {
			m.setFocus(h.component)
			m.entries[h.component].pane.Select(h.item)
			m.reveal()
		}
		return m, nil
	case "down", "ctrl+n", "tab":
		m.search.move(1)
		return m, nil
	case "up", "ctrl+p", "shift+tab":
		m.search.move(-1)
		return m, nil
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	m.search.refresh()
	return m, cmd
}

func label(it model.Item) string {
	switch {
	case it.Title != "":
		return it.Title
	case it.Identifier != "":
		return it.Identifier
	}
	return fmt.Sprintf("item %d", it.Index)
}
