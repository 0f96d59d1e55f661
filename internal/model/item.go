// Package model defines the declarative data that drives a screen of
// components: items, component models, layout options and their JSON shape.
package model

import "github.com/Akashdeep-Patra/spots/internal/geometry"

// Item is the data behind one row or cell.
type Item struct {
	// Index mirrors the item's position in its component and is re-derived
	// after every mutation. It is never serialized.
	Index      int           `json:"-"`
	Identifier string        `json:"identifier,omitempty"`
	Kind       string        `json:"kind,omitempty"`
	Title      string        `json:"title,omitempty"`
	Subtitle   string        `json:"subtitle,omitempty"`
	Text       string        `json:"text,omitempty"`
	Image      string        `json:"image,omitempty"`
	Action     string        `json:"action,omitempty"`
	Size       geometry.Size `json:"size"`
	Meta       *Meta         `json:"meta,omitempty"`
	Children   []Item        `json:"children,omitempty"`
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.Meta = it.Meta.Clone()
	if it.Children != nil {
		out.Children = CloneItems(it.Children)
	}
	return out
}

// CloneItems deep-copies a slice of items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// Equal reports whether two items have the same identity and content.
// Size and Index are derived values and do not take part.
func Equal(a, b Item) bool {
	return a.Kind == b.Kind &&
		a.Identifier == b.Identifier &&
		a.Title == b.Title &&
		a.Subtitle == b.Subtitle &&
		a.Text == b.Text &&
		a.Image == b.Image &&
		a.Action == b.Action &&
		MetaEqual(a.Meta, b.Meta) &&
		ItemsEqual(a.Children, b.Children)
}

// ItemsEqual compares two item sequences element by element.
func ItemsEqual(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// RefreshIndexes sets every item's Index to its position and returns the
// same slice.
func RefreshIndexes(items []Item) []Item {
	for i := range items {
		items[i].Index = i
	}
	return items
}
