package model

import "strings"

// Kind selects how a component lays out its items.
type Kind string

const (
	KindList     Kind = "list"
	KindGrid     Kind = "grid"
	KindCarousel Kind = "carousel"
	KindCustom   Kind = "custom"
)

// ParseKind maps a string to a Kind. Unknown or empty values yield def.
func ParseKind(s string, def Kind) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindList:
		return KindList
	case KindGrid:
		return KindGrid
	case KindCarousel:
		return KindCarousel
	case KindCustom:
		return KindCustom
	}
	return def
}

// ScrollsHorizontally reports whether components of this kind scroll on the
// x axis inside the stitched stack.
func (k Kind) ScrollsHorizontally() bool { return k == KindCarousel }

// Inset is padding around a component's items.
type Inset struct {
	Top    float64 `json:"top,omitempty"`
	Left   float64 `json:"left,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Right  float64 `json:"right,omitempty"`
}

// Layout holds presentation options. It never affects item equality.
type Layout struct {
	Span               float64 `json:"span,omitempty"`
	ItemsPerRow        int     `json:"items-per-row,omitempty"`
	ItemSpacing        float64 `json:"item-spacing,omitempty"`
	LineSpacing        float64 `json:"line-spacing,omitempty"`
	Inset              Inset   `json:"inset"`
	InfiniteScrolling  bool    `json:"infinite-scrolling,omitempty"`
	ShowEmptyComponent bool    `json:"show-empty-component,omitempty"`
}

// DefaultLayout returns the layout used when none is given.
func DefaultLayout() Layout {
	return Layout{ItemsPerRow: 1}
}

// Columns returns how many items share a grid row.
func (l Layout) Columns() int {
	switch {
	case l.Span >= 1:
		return int(l.Span)
	case l.ItemsPerRow >= 1:
		return l.ItemsPerRow
	}
	return 1
}

// ComponentModel describes one independently scrolling region.
type ComponentModel struct {
	Identifier string
	Index      int
	Kind       Kind
	Title      string
	Header     *Item
	Footer     *Item
	Items      []Item
	Layout     Layout
	Meta       *Meta
	// AmountOfItemsToCache bounds how many items are serialized. Zero
	// serializes all of them.
	AmountOfItemsToCache int
}

// NewComponentModel builds a model with indexes already derived.
func NewComponentModel(kind Kind, title string, items ...Item) ComponentModel {
	return ComponentModel{
		Kind:   kind,
		Title:  title,
		Items:  RefreshIndexes(CloneItems(items)),
		Layout: DefaultLayout(),
	}
}

// Clone returns a deep copy of the model.
func (c ComponentModel) Clone() ComponentModel {
	out := c
	out.Items = CloneItems(c.Items)
	out.Meta = c.Meta.Clone()
	if c.Header != nil {
		h := c.Header.Clone()
		out.Header = &h
	}
	if c.Footer != nil {
		f := c.Footer.Clone()
		out.Footer = &f
	}
	return out
}

// Item returns the item at index i.
func (c ComponentModel) Item(i int) (Item, bool) {
	if i < 0 || i >= len(c.Items) {
		return Item{}, false
	}
	return c.Items[i], true
}

// OptionalItemsEqual compares two optional header/footer items.
func OptionalItemsEqual(a, b *Item) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	}
	return Equal(*a, *b)
}
