// Package diff decides what changed between two versions of a component's
// items and expresses it as a ChangeSet the mutation protocol can animate.
//
// The comparison is position aligned: index i of the old sequence is only
// ever compared with index i of the new one. A single insertion in the
// middle of a list therefore shows up as a run of reloads followed by one
// trailing insertion, and moves are never reported. Animations built on top
// of this package depend on that cascading shape.
package diff

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/spots/internal/model"
)

// FieldDiff classifies the first difference found between two items.
type FieldDiff int

const (
	None FieldDiff = iota
	Kind
	Children
	Identifier
	Title
	Subtitle
	Text
	Image
	Action
	Meta
	New
	Removed
)

var fieldNames = [...]string{
	None:       "none",
	Kind:       "kind",
	Children:   "children",
	Identifier: "identifier",
	Title:      "title",
	Subtitle:   "subtitle",
	Text:       "text",
	Image:      "image",
	Action:     "action",
	Meta:       "meta",
	New:        "new",
	Removed:    "removed",
}

func (f FieldDiff) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Compare returns the first field, in precedence order, that differs
// between old and new.
func Compare(old, new model.Item) FieldDiff {
	switch {
	case old.Kind != new.Kind:
		return Kind
	case !model.ItemsEqual(old.Children, new.Children):
		return Children
	case old.Identifier != new.Identifier:
		return Identifier
	case old.Title != new.Title:
		return Title
	case old.Subtitle != new.Subtitle:
		return Subtitle
	case old.Text != new.Text:
		return Text
	case old.Image != new.Image:
		return Image
	case old.Action != new.Action:
		return Action
	case !model.MetaEqual(old.Meta, new.Meta):
		return Meta
	}
	return None
}

// Evaluate classifies every index of the longer sequence. It returns nil
// when the sequences are equal, nested children included.
func Evaluate(old, new []model.Item) []FieldDiff {
	if model.ItemsEqual(old, new) {
		return nil
	}

	n := max(len(old), len(new))
	out := make([]FieldDiff, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(new):
			out[i] = Removed
		case i >= len(old):
			out[i] = New
		default:
			out[i] = Compare(old[i], new[i])
		}
	}
	return out
}

// Move relocates the item at From to To.
type Move struct {
	From int
	To   int
}

// ChangeSet is the set of structural operations that turns one item
// sequence into another. Every collection is sorted ascending. Deletion
// indexes refer to the old sequence; insertion, move targets and reload
// indexes refer to the new one.
type ChangeSet struct {
	Insertions []int
	Reloads    []int
	Deletions  []int
	Moves      []Move
	// ChildUpdates lists the reloads caused by nested children only.
	ChildUpdates []int
}

// Diff compares two item sequences. A nil result means nothing changed and
// no reload should be scheduled.
func Diff(old, new []model.Item) *ChangeSet {
	fields := Evaluate(old, new)
	if fields == nil {
		return nil
	}

	cs := &ChangeSet{}
	for i, f := range fields {
		switch f {
		case None:
		case New:
			cs.Insertions = append(cs.Insertions, i)
		case Removed:
			cs.Deletions = append(cs.Deletions, i)
		case Children:
			cs.ChildUpdates = append(cs.ChildUpdates, i)
			cs.Reloads = append(cs.Reloads, i)
		default:
			cs.Reloads = append(cs.Reloads, i)
		}
	}
	return cs
}

// Empty reports whether the change set carries no operations.
func (cs *ChangeSet) Empty() bool {
	return cs == nil || cs.Count() == 0
}

// Count returns the number of operations.
func (cs *ChangeSet) Count() int {
	if cs == nil {
		return 0
	}
	return len(cs.Insertions) + len(cs.Reloads) + len(cs.Deletions) + len(cs.Moves)
}

func (cs *ChangeSet) String() string {
	if cs == nil {
		return "no changes"
	}
	var parts []string
	add := func(label string, idx []int) {
		if len(idx) > 0 {
			parts = append(parts, fmt.Sprintf("%s %v", label, idx))
		}
	}
	add("insert", cs.Insertions)
	add("reload", cs.Reloads)
	add("delete", cs.Deletions)
	if len(cs.Moves) > 0 {
		moves := make([]string, len(cs.Moves))
		for i, m := range cs.Moves {
			moves[i] = fmt.Sprintf("%d→%d", m.From, m.To)
		}
		parts = append(parts, "move ["+strings.Join(moves, " ")+"]")
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

// Apply replays cs on a copy of old in canonical order (deletions,
// insertions, moves, reloads), taking inserted and reloaded content from
// new. For a change set produced by Diff(old, new) the result equals new.
func Apply(old, new []model.Item, cs *ChangeSet) []model.Item {
	out := model.CloneItems(old)
	if cs == nil {
		return out
	}

	for i := len(cs.Deletions) - 1; i >= 0; i-- {
		d := cs.Deletions[i]
		if d >= 0 && d < len(out) {
			out = append(out[:d], out[d+1:]...)
		}
	}
	for _, idx := range cs.Insertions {
		if idx < 0 || idx > len(out) || idx >= len(new) {
			continue
		}
		out = append(out, model.Item{})
		copy(out[idx+1:], out[idx:])
		out[idx] = new[idx].Clone()
	}
	if len(cs.Moves) > 0 {
		moved := model.CloneItems(out)
		for _, m := range cs.Moves {
			if m.From >= 0 && m.From < len(moved) && m.To >= 0 && m.To < len(out) {
				out[m.To] = moved[m.From]
			}
		}
	}
	for _, idx := range cs.Reloads {
		if idx >= 0 && idx < len(out) && idx < len(new) {
			out[idx] = new[idx].Clone()
		}
	}
	return model.RefreshIndexes(out)
}
