// Package app is the controller of the terminal UI. It owns the components
// decoded from a layout document, the pane that presents each of them and
// the compositor that stitches the panes into one scroll region.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Akashdeep-Patra/spots/internal/common"
	"github.com/Akashdeep-Patra/spots/internal/component"
	"github.com/Akashdeep-Patra/spots/internal/compositor"
	"github.com/Akashdeep-Patra/spots/internal/config"
	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/registry"
	"github.com/Akashdeep-Patra/spots/internal/ui"
	"github.com/Akashdeep-Patra/spots/internal/ui/components"
	"github.com/Akashdeep-Patra/spots/internal/ui/pane"
	"github.com/Akashdeep-Patra/spots/internal/ui/views"
	tea "github.com/charmbracelet/bubbletea"
)

// Initial viewport used until the first WindowSizeMsg arrives.
const (
	initialWidth  = 80
	initialHeight = 24
)

// Option configures a Model.
type Option func(*Model)

// WithScheduler replaces the event-loop scheduler, typically in tests.
func WithScheduler(s component.Scheduler) Option {
	return func(m *Model) {
		if s != nil {
			m.scheduler = s
			m.timers = nil
		}
	}
}

// WithRegistry replaces the renderer registry.
func WithRegistry(r *registry.Registry) Option {
	return func(m *Model) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// entry pairs a component with its pane. The app finds components by
// position; panes and components never refer back to the app.
type entry struct {
	comp *component.Component
	pane *pane.Pane
}

// status is the transient status bar message. It is shared by pointer so
// completions issued from earlier copies of the Model can write to it.
type status struct {
	msg   string
	isErr bool
	exp   time.Time
}

func (s *status) set(msg string, isErr bool, ttl time.Duration) {
	s.msg, s.isErr, s.exp = msg, isErr, time.Now().Add(ttl)
}

// Model is the top-level Bubbletea model that orchestrates the components.
type Model struct {
	cfg       *config.Config
	styles    ui.Styles
	keys      KeyMap
	logger    *slog.Logger
	registry  *registry.Registry
	scheduler component.Scheduler
	timers    *timers

	source  string
	entries []*entry
	stack   *compositor.Compositor
	focus   int

	width    int
	height   int
	showHelp bool
	status   *status
	dialog   *components.Dialog
	search   *search

	// loadSeq orders reload plans; a plan computed for an older document
	// is dropped.
	loadSeq int
}

// New creates the application model for the given components. source is
// the layout file, used for refreshes and shown in the status bar.
func New(cfg *config.Config, source string, models []model.ComponentModel, opts ...Option) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	t := newTimers()
	m := Model{
		cfg:       cfg,
		styles:    styles,
		keys:      NewKeyMap(cfg.Keys),
		logger:    slog.Default(),
		registry:  views.NewRegistry(styles),
		scheduler: t,
		timers:    t,
		source:    source,
		width:     initialWidth,
		height:    initialHeight,
		status:    &status{},
	}
	for _, o := range opts {
		o(&m)
	}
	m.stack = compositor.New(
		compositor.WithStretchLastChild(cfg.StretchLastComponent),
		compositor.WithBounds(m.bounds()),
		compositor.WithLogger(m.logger),
	)
	for _, cm := range models {
		if cfg.RemoveEmptyComponents && len(cm.Items) == 0 {
			continue
		}
		e := m.newEntry(cm)
		m.entries = append(m.entries, e)
		m.stack.Add(e.pane)
	}
	m.setFocus(0)
	m.stack.Layout()
	return m
}

// Bind connects deferred work to a running program. It must be called
// before Run so settle timers reach the event loop.
func (m Model) Bind(send func(tea.Msg)) {
	if m.timers != nil {
		m.timers.Bind(send)
	}
}

func (m Model) newEntry(cm model.ComponentModel) *entry {
	p := pane.New(m.registry, m.styles, cm, float64(m.viewWidth()),
		pane.WithScheduler(m.scheduler),
		pane.WithFlash(m.cfg.AnimationDuration),
	)
	c := component.New(cm,
		component.WithRegistry(m.registry),
		component.WithScheduler(m.scheduler),
		component.WithSettleInterval(m.cfg.SettleInterval),
		component.WithLogger(m.logger),
	)
	c.Attach(p)
	return &entry{comp: c, pane: p}
}

// Init sets the window title.
func (m Model) Init() tea.Cmd {
	title := "spots"
	if m.source != "" {
		title += ": " + filepath.Base(m.source)
	}
	return tea.SetWindowTitle(title)
}

// Update processes messages. Every turn ends with a single compositor
// layout, however many children changed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.stack.LayoutIfNeeded()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case timerMsg:
		if m.timers != nil {
			m.timers.fire(msg.id)
		}
		return m, nil

	case tea.KeyMsg:
		// Dialog and search prompt have exclusive keyboard input.
		if m.dialog != nil && m.dialog.Visible() {
			d, cmd := m.dialog.Update(msg)
			m.dialog = &d
			return m, cmd
		}
		if m.search != nil {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case common.RefreshMsg:
		if m.source == "" {
			return m, nil
		}
		return m, readFileCmd(m.source)

	case common.FileChangedMsg:
		m.loadSeq++
		return m, planCmd(m.loadSeq, msg.Data, m.models(), model.ParseKind(m.cfg.DefaultKind, model.KindList), m.cfg.RemoveEmptyComponents)

	case reloadMsg:
		if msg.seq != m.loadSeq {
			m.logger.Debug("dropping stale reload plan", "seq", msg.seq, "current", m.loadSeq)
			return m, nil
		}
		m.apply(msg.steps)
		return m, nil

	case common.ErrMsg:
		m.status.set(msg.Err.Error(), true, 5*time.Second)
		return m, nil

	case common.InfoMsg:
		m.status.set(msg.Text, false, 3*time.Second)
		return m, nil

	case common.ToggleHelpMsg:
		m.showHelp = !m.showHelp
		return m, nil

	case components.DialogResult:
		m.dialog = nil
		return m.handleDialogResult(msg)
	}

	// Forward anything else to an open input so its cursor blinks.
	if m.dialog != nil && m.dialog.Visible() {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}
	return m, nil
}

// ── Geometry ───────────────────────────────────────────────────────

// viewWidth leaves the last column to the scrollbar.
func (m Model) viewWidth() int { return max(1, m.width-1) }

// viewHeight leaves the last row to the status bar and one to the search
// prompt while it is open.
func (m Model) viewHeight() int {
	h := m.height - 1
	if m.search != nil {
		h--
	}
	return max(1, h)
}

func (m Model) bounds() geometry.Size {
	return geometry.Size{Width: float64(m.viewWidth()), Height: float64(m.viewHeight())}
}

func (m *Model) resize(width, height int) {
	oldWidth := m.viewWidth()
	m.width, m.height = width, height
	m.stack.SetBounds(m.bounds())
	if m.viewWidth() == oldWidth {
		return
	}
	// Items are measured against the width, so every component reloads.
	for _, e := range m.entries {
		e.pane.SetWidth(float64(m.viewWidth()))
		e.comp.Reload(nil, model.AnimationNone, nil)
	}
}

// ── Focus and selection ────────────────────────────────────────────

func (m Model) focused() (*entry, bool) {
	if m.focus < 0 || m.focus >= len(m.entries) {
		return nil, false
	}
	return m.entries[m.focus], true
}

func (m *Model) setFocus(i int) {
	if len(m.entries) == 0 {
		m.focus = 0
		return
	}
	m.focus = min(max(i, 0), len(m.entries)-1)
	for n, e := range m.entries {
		e.pane.SetFocused(n == m.focus)
	}
}

// step moves the selection vertically, crossing into the neighbouring
// component at the edges. Empty components are skipped.
func (m *Model) step(delta int) {
	e, ok := m.focused()
	if !ok {
		return
	}
	if e.pane.Kind() != model.KindCarousel && e.pane.Move(delta*e.pane.Columns()) {
		m.reveal()
		return
	}
	for i := m.focus + delta; i >= 0 && i < len(m.entries); i += delta {
		next := m.entries[i]
		if next.pane.Len() == 0 {
			continue
		}
		m.setFocus(i)
		if delta > 0 {
			next.pane.Select(0)
		} else {
			next.pane.Select(next.pane.Len() - 1)
		}
		m.reveal()
		return
	}
	// No neighbour left: scroll the remaining content into view instead.
	m.stack.ScrollBy(float64(delta))
}

// reveal scrolls the outer viewport so the selected item is visible.
func (m *Model) reveal() {
	e, ok := m.focused()
	if !ok {
		return
	}
	m.stack.LayoutIfNeeded()
	childY, ok := m.stack.OffsetOf(m.focus)
	if !ok {
		return
	}
	rect, ok := e.pane.ItemRect(e.pane.Selected())
	if !ok {
		m.stack.ScrollToChild(m.focus)
		return
	}
	top := childY + rect.MinY()
	bottom := top + rect.Size.Height
	view := m.stack.Bounds().Height
	off := m.stack.ContentOffset().Y
	switch {
	case top < off:
		m.stack.ScrollTo(top)
	case bottom > off+view:
		m.stack.ScrollTo(bottom - view)
	}
}

// ── Reload ─────────────────────────────────────────────────────────

// models snapshots the current component models.
func (m Model) models() []model.ComponentModel {
	out := make([]model.ComponentModel, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.comp.Model()
	}
	return out
}

// apply executes a reload plan on the UI loop.
func (m *Model) apply(steps []step) {
	counts := map[stepKind]int{}
	var removed []*entry
	for _, s := range steps {
		counts[s.kind]++
		switch s.kind {
		case stepItems:
			e := m.entries[s.index]
			e.comp.ApplyChanges(s.base, s.model.Items, s.changes, model.AnimationAutomatic, nil)
		case stepReplace:
			e := m.entries[s.index]
			if s.change.RequiresRebuild() {
				fresh := m.newEntry(s.model)
				m.stack.Remove(e.pane)
				m.stack.Insert(fresh.pane, s.index)
				m.entries[s.index] = fresh
				continue
			}
			e.pane.Present(s.model)
			e.comp.Replace(s.model, nil)
		case stepAdd:
			e := m.newEntry(s.model)
			m.entries = append(m.entries, e)
			m.stack.Add(e.pane)
		case stepRemove:
			removed = append(removed, m.entries[s.index])
		}
	}
	for _, e := range removed {
		m.stack.Remove(e.pane)
	}
	m.entries = m.entries[:len(m.entries)-len(removed)]
	m.setFocus(m.focus)

	m.logger.Info("layout reloaded",
		"components", len(m.entries),
		"items", counts[stepItems],
		"replaced", counts[stepReplace],
		"added", counts[stepAdd],
		"removed", counts[stepRemove],
	)
	if n := len(steps) - counts[stepKeep]; n > 0 {
		m.status.set(fmt.Sprintf("reloaded %d component(s)", n), false, 3*time.Second)
	}
}

// ── Mutations ──────────────────────────────────────────────────────

// newItemKind picks the renderer for items appended interactively.
func newItemKind(k model.Kind) string {
	switch k {
	case model.KindGrid:
		return views.KindCell
	case model.KindCarousel:
		return views.KindCard
	case model.KindCustom:
		return views.KindText
	}
	return views.KindRow
}

func (m Model) entryByHandle(handle string) (*entry, bool) {
	for _, e := range m.entries {
		if e.comp.Handle() == handle {
			return e, true
		}
	}
	return nil, false
}

func (m Model) appendItem(e *entry, title string) {
	it := model.Item{Kind: newItemKind(e.comp.Kind()), Title: title}
	st := m.status
	e.comp.AppendItem(it, model.AnimationAutomatic, func() {
		e.pane.Select(e.pane.Len() - 1)
		st.set(fmt.Sprintf("appended %q", title), false, 3*time.Second)
	})
}

func (m Model) deleteItem(e *entry, at int) {
	it, ok := e.comp.Item(at)
	if !ok {
		return
	}
	st := m.status
	e.comp.Delete(at, model.AnimationAutomatic, func() {
		st.set(fmt.Sprintf("deleted %q", it.Title), false, 3*time.Second)
	})
}

// moveToTop re-inserts the item at index 0 and deletes the original. The
// delete is serialized behind the insert, so it targets at+1.
func (m Model) moveToTop(e *entry, at int) {
	it, ok := e.comp.Item(at)
	if !ok || at == 0 {
		return
	}
	st := m.status
	e.comp.Insert(it, 0, model.AnimationAutomatic, nil)
	e.comp.Delete(at+1, model.AnimationAutomatic, func() {
		e.pane.Select(0)
		st.set(fmt.Sprintf("moved %q to top", it.Title), false, 3*time.Second)
	})
}

func (m Model) handleDialogResult(r components.DialogResult) (Model, tea.Cmd) {
	if !r.Confirmed {
		return m, nil
	}
	e, ok := m.entryByHandle(r.Target)
	if !ok {
		return m, common.CmdErr(fmt.Errorf("component is gone"))
	}
	switch r.Tag {
	case "append":
		m.appendItem(e, r.Value)
	case "delete":
		m.deleteItem(e, r.Index)
	}
	return m, nil
}
