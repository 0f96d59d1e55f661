// Package pane is the terminal viewport of one component. A Pane is the
// component's Surface, receiving its structural changes, and a compositor
// Child, receiving a frame and a content offset from the outer scroll.
package pane

import (
	"math"
	"slices"
	"time"

	"github.com/Akashdeep-Patra/spots/internal/component"
	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/registry"
	"github.com/Akashdeep-Patra/spots/internal/ui"
)

// DefaultFlash is how long inserted and reloaded rows stay highlighted.
const DefaultFlash = 250 * time.Millisecond

type mark int

const (
	markNone mark = iota
	markInserted
	markReloaded
)

type row struct {
	item  model.Item
	mark  mark
	token uint64
}

// Option configures a Pane.
type Option func(*Pane)

// WithScheduler sets the scheduler that ends highlight animations.
func WithScheduler(s component.Scheduler) Option {
	return func(p *Pane) {
		if s != nil {
			p.scheduler = s
		}
	}
}

// WithFlash overrides DefaultFlash. Zero disables highlighting.
func WithFlash(d time.Duration) Option {
	return func(p *Pane) {
		if d >= 0 {
			p.flash = d
		}
	}
}

// Pane renders one component's items.
type Pane struct {
	registry  *registry.Registry
	styles    ui.Styles
	scheduler component.Scheduler
	flash     time.Duration

	kind   model.Kind
	layout model.Layout
	header *model.Item
	footer *model.Item

	rows          []row
	width         float64
	contentHeight float64
	offset        geometry.Point
	frame         geometry.Rect

	subs    map[int]func()
	nextSub int
	tokens  uint64

	selected int
	focused  bool

	lines []string
	rects []geometry.Rect
}

// New creates a pane of the given width presenting m. Items arrive through
// the Surface calls.
func New(reg *registry.Registry, styles ui.Styles, m model.ComponentModel, width float64, opts ...Option) *Pane {
	p := &Pane{
		registry:  reg,
		styles:    styles,
		scheduler: component.Immediate,
		flash:     DefaultFlash,
		width:     width,
		subs:      make(map[int]func()),
	}
	for _, o := range opts {
		o(p)
	}
	p.Present(m)
	return p
}

// Present updates the presentation options taken from m: kind, layout,
// header and footer. Items are not touched.
func (p *Pane) Present(m model.ComponentModel) {
	p.kind = m.Kind
	p.layout = m.Layout
	p.header, p.footer = nil, nil
	if m.Header != nil {
		h := m.Header.Clone()
		p.header = &h
	}
	if m.Footer != nil {
		f := m.Footer.Clone()
		p.footer = &f
	}
	p.invalidate()
}

// ── Surface ────────────────────────────────────────────────────────

// InsertRows inserts items at the ascending indexes.
func (p *Pane) InsertRows(indexes []int, items []model.Item, anim model.Animation, done func()) {
	token := p.nextToken()
	for n, i := range indexes {
		if n >= len(items) {
			break
		}
		i = min(max(i, 0), len(p.rows))
		p.rows = slices.Insert(p.rows, i, row{item: items[n].Clone(), mark: markInserted, token: token})
		if i <= p.selected && len(p.rows) > 1 {
			p.selected++
		}
	}
	p.clampSelection()
	p.animate(token, anim, done)
}

// DeleteRows removes the rows at the ascending indexes.
func (p *Pane) DeleteRows(indexes []int, anim model.Animation, done func()) {
	for n := len(indexes) - 1; n >= 0; n-- {
		i := indexes[n]
		if i < 0 || i >= len(p.rows) {
			continue
		}
		p.rows = slices.Delete(p.rows, i, i+1)
		if i < p.selected {
			p.selected--
		}
	}
	p.clampSelection()
	p.animate(p.nextToken(), anim, done)
}

// ReloadRows replaces the rows at indexes with items.
func (p *Pane) ReloadRows(indexes []int, items []model.Item, anim model.Animation, done func()) {
	token := p.nextToken()
	for n, i := range indexes {
		if n >= len(items) || i < 0 || i >= len(p.rows) {
			continue
		}
		p.rows[i] = row{item: items[n].Clone(), mark: markReloaded, token: token}
	}
	p.animate(token, anim, done)
}

// ReloadData replaces every row and completes at once.
func (p *Pane) ReloadData(items []model.Item, done func()) {
	p.rows = make([]row, len(items))
	for i, it := range items {
		p.rows[i] = row{item: it.Clone()}
	}
	p.clampSelection()
	p.invalidate()
	p.notify()
	done()
}

// SetContentHeight publishes the component's measured height.
func (p *Pane) SetContentHeight(h float64) {
	if h == p.contentHeight {
		return
	}
	p.contentHeight = h
	p.invalidate()
	p.notify()
}

// Width is the width the component measures its items against.
func (p *Pane) Width() float64 { return p.width }

// animate highlights the rows carrying token until the flash elapses and
// then completes the structural change.
func (p *Pane) animate(token uint64, anim model.Animation, done func()) {
	p.invalidate()
	p.notify()
	if anim == model.AnimationNone || p.flash == 0 {
		p.clearMarks(token)
		done()
		return
	}
	p.scheduler.AfterFunc(p.flash, func() {
		p.clearMarks(token)
		p.notify()
		done()
	})
}

func (p *Pane) clearMarks(token uint64) {
	for i := range p.rows {
		if p.rows[i].token == token {
			p.rows[i].mark = markNone
			p.rows[i].token = 0
		}
	}
	p.invalidate()
}

func (p *Pane) nextToken() uint64 {
	p.tokens++
	return p.tokens
}

// ── Child ──────────────────────────────────────────────────────────

// ContentSize is the measured content height and, for carousels, the full
// width of the item strip.
func (p *Pane) ContentSize() geometry.Size {
	w := p.width
	if p.ScrollsHorizontally() {
		p.ensureRendered()
		for _, r := range p.rects {
			w = math.Max(w, r.Origin.X+r.Size.Width+p.layout.Inset.Right)
		}
	}
	return geometry.Size{Width: w, Height: p.contentHeight}
}

// ContentOffset returns the scroll position inside the content.
func (p *Pane) ContentOffset() geometry.Point { return p.offset }

// SetContentOffset scrolls inside the content.
func (p *Pane) SetContentOffset(o geometry.Point) {
	if o == p.offset {
		return
	}
	p.offset = o
	p.notify()
}

// Frame returns the frame assigned by the compositor.
func (p *Pane) Frame() geometry.Rect { return p.frame }

// SetFrame stores the frame assigned by the compositor.
func (p *Pane) SetFrame(r geometry.Rect) { p.frame = r }

// ScrollsHorizontally reports whether the pane is a carousel.
func (p *Pane) ScrollsHorizontally() bool { return p.kind.ScrollsHorizontally() }

// Subscribe registers fn for content size and offset changes.
func (p *Pane) Subscribe(fn func()) func() {
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() { delete(p.subs, id) }
}

func (p *Pane) notify() {
	for _, fn := range p.subs {
		fn()
	}
}

// ── Selection ──────────────────────────────────────────────────────

// Len returns the number of rows.
func (p *Pane) Len() int { return len(p.rows) }

// Rows returns a copy of the displayed items.
func (p *Pane) Rows() []model.Item {
	out := make([]model.Item, len(p.rows))
	for i, r := range p.rows {
		out[i] = r.item.Clone()
	}
	return out
}

// Kind returns the presented component kind.
func (p *Pane) Kind() model.Kind { return p.kind }

// Selected returns the selected row index.
func (p *Pane) Selected() int { return p.selected }

// Select moves the selection to i, clamped to the rows.
func (p *Pane) Select(i int) {
	p.selected = i
	p.clampSelection()
	p.revealSelection()
	p.invalidate()
}

// Move shifts the selection by delta rows. It reports false, leaving the
// selection alone, when the move would leave the pane.
func (p *Pane) Move(delta int) bool {
	next := p.selected + delta
	if p.wraps() && len(p.rows) > 1 {
		next = ((next % len(p.rows)) + len(p.rows)) % len(p.rows)
	}
	if next < 0 || next >= len(p.rows) || next == p.selected {
		return false
	}
	p.Select(next)
	return true
}

// wraps reports whether horizontal moves cycle past either end.
func (p *Pane) wraps() bool {
	return p.kind == model.KindCarousel && p.layout.InfiniteScrolling
}

// Columns is how many rows one vertical step skips.
func (p *Pane) Columns() int {
	switch p.kind {
	case model.KindGrid:
		return p.layout.Columns()
	case model.KindCarousel:
		return max(1, len(p.rows))
	}
	return 1
}

// Focused reports whether the pane owns the keyboard.
func (p *Pane) Focused() bool { return p.focused }

// SetFocused toggles the selection highlight.
func (p *Pane) SetFocused(v bool) {
	if v != p.focused {
		p.focused = v
		p.invalidate()
	}
}

// SelectedItem returns the selected item.
func (p *Pane) SelectedItem() (model.Item, bool) {
	if p.selected < 0 || p.selected >= len(p.rows) {
		return model.Item{}, false
	}
	return p.rows[p.selected].item.Clone(), true
}

// ItemRect returns the rectangle of row i in content coordinates.
func (p *Pane) ItemRect(i int) (geometry.Rect, bool) {
	p.ensureRendered()
	if i < 0 || i >= len(p.rects) {
		return geometry.Rect{}, false
	}
	return p.rects[i], true
}

func (p *Pane) clampSelection() {
	p.selected = min(max(p.selected, 0), max(len(p.rows)-1, 0))
}

// revealSelection scrolls a carousel sideways so the selected card shows.
func (p *Pane) revealSelection() {
	if !p.ScrollsHorizontally() {
		return
	}
	r, ok := p.ItemRect(p.selected)
	if !ok {
		return
	}
	o := p.offset
	switch {
	case r.Origin.X < o.X:
		o.X = r.Origin.X
	case r.Origin.X+r.Size.Width > o.X+p.width:
		o.X = r.Origin.X + r.Size.Width - p.width
	}
	p.SetContentOffset(geometry.Point{X: math.Max(0, o.X), Y: o.Y})
}

// SetWidth changes the measuring width. The owner reloads the component
// afterwards so items are measured again.
func (p *Pane) SetWidth(w float64) {
	if w == p.width {
		return
	}
	p.width = w
	p.offset.X = 0
	p.invalidate()
}
