package component

import (
	"math"

	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/registry"
)

// measure configures a renderer for the item and stores its preferred size.
// Children are measured first so composite renderers can rely on them.
func measure(reg *registry.Registry, it model.Item, width float64) model.Item {
	for i := range it.Children {
		it.Children[i] = measure(reg, it.Children[i], width)
	}
	r := reg.Make(it.Kind)
	r.Configure(it)
	it.Size = r.PreferredSize(it, width)
	return it
}

func measureAll(reg *registry.Registry, items []model.Item, width float64) []model.Item {
	for i := range items {
		items[i] = measure(reg, items[i], width)
	}
	return items
}

// Height computes the content height of a component model whose items
// already carry their sizes. Header and footer are measured on the fly.
func Height(reg *registry.Registry, m model.ComponentModel, width float64) float64 {
	if len(m.Items) == 0 && !m.Layout.ShowEmptyComponent {
		return 0
	}

	l := m.Layout
	h := l.Inset.Top + l.Inset.Bottom
	if m.Header != nil {
		h += measure(reg, m.Header.Clone(), width).Size.Height
	}
	if m.Footer != nil {
		h += measure(reg, m.Footer.Clone(), width).Size.Height
	}

	switch m.Kind {
	case model.KindCarousel:
		var tallest float64
		for _, it := range m.Items {
			tallest = math.Max(tallest, it.Size.Height)
		}
		h += tallest
	case model.KindGrid:
		cols := l.Columns()
		rows := 0
		for start := 0; start < len(m.Items); start += cols {
			var tallest float64
			for _, it := range m.Items[start:min(start+cols, len(m.Items))] {
				tallest = math.Max(tallest, it.Size.Height)
			}
			h += tallest
			rows++
		}
		if rows > 1 {
			h += l.LineSpacing * float64(rows-1)
		}
	case model.KindCustom:
		for _, it := range m.Items {
			h += it.Size.Height
		}
	default:
		for _, it := range m.Items {
			h += it.Size.Height
		}
		if n := len(m.Items); n > 1 {
			h += l.ItemSpacing * float64(n-1)
		}
	}
	return h
}

// Measure sizes every item of m for the given width and returns the
// measured copy together with its content height.
func Measure(reg *registry.Registry, m model.ComponentModel, width float64) (model.ComponentModel, float64) {
	out := m.Clone()
	measureAll(reg, out.Items, ItemWidth(out, width))
	return out, Height(reg, out, width)
}

// ItemWidth is the width available to one item of the component.
func ItemWidth(m model.ComponentModel, width float64) float64 {
	w := width - m.Layout.Inset.Left - m.Layout.Inset.Right
	if m.Kind == model.KindGrid {
		cols := float64(m.Layout.Columns())
		w = (w - m.Layout.ItemSpacing*(cols-1)) / cols
	}
	return math.Max(0, w)
}

// lineRenderer is the fallback used when no registry is supplied: every
// item is one line tall.
type lineRenderer struct{}

func (lineRenderer) Configure(model.Item) {}

func (lineRenderer) PreferredSize(_ model.Item, width float64) geometry.Size {
	return geometry.Size{Width: width, Height: 1}
}

func (lineRenderer) Render(int, bool) string { return "" }

func (lineRenderer) Reset() {}
