package component

import (
	"slices"

	"github.com/Akashdeep-Patra/spots/internal/diff"
	"github.com/Akashdeep-Patra/spots/internal/model"
)

// Append adds items to the end of the component.
func (c *Component) Append(items []model.Item, anim model.Animation, done func()) {
	if len(items) == 0 {
		c.enqueue(op{name: "append", done: done})
		return
	}
	c.insertAt(len(c.model.Items), items, "append", anim, done)
}

// AppendItem adds one item to the end of the component.
func (c *Component) AppendItem(item model.Item, anim model.Animation, done func()) {
	c.Append([]model.Item{item}, anim, done)
}

// Prepend adds items to the start of the component.
func (c *Component) Prepend(items []model.Item, anim model.Animation, done func()) {
	if len(items) == 0 {
		c.enqueue(op{name: "prepend", done: done})
		return
	}
	c.insertAt(0, items, "prepend", anim, done)
}

// Insert places item at index at. Inserting at Len() appends.
func (c *Component) Insert(item model.Item, at int, anim model.Animation, done func()) {
	if at < 0 || at > len(c.model.Items) {
		c.enqueue(op{name: "insert", done: done})
		return
	}
	c.insertAt(at, []model.Item{item}, "insert", anim, done)
}

func (c *Component) insertAt(at int, items []model.Item, name string, anim model.Animation, done func()) {
	wasEmpty := len(c.model.Items) == 0
	added := c.measureItems(model.CloneItems(items))

	c.model.Items = slices.Insert(c.model.Items, at, added...)
	model.RefreshIndexes(c.model.Items)

	indexes := span(at, len(added))
	inserted := c.pick(indexes)
	c.dispatch(name, anim, wasEmpty, func(s Surface, d func()) {
		s.InsertRows(indexes, inserted, anim, d)
	}, done)
}

// Update replaces the item at index at. An update that changes neither
// content nor measured size does not touch the surface.
func (c *Component) Update(item model.Item, at int, anim model.Animation, done func()) {
	old, ok := c.model.Item(at)
	if !ok {
		c.enqueue(op{name: "update", done: done})
		return
	}

	updated := c.measureItems([]model.Item{item.Clone()})[0]
	updated.Index = at
	c.model.Items[at] = updated

	change := diff.Compare(old, updated)
	if change == diff.None && old.Size == updated.Size {
		c.enqueue(op{name: "update", done: done})
		return
	}
	c.logger.Debug("item updated", "index", at, "change", change.String())

	reloaded := c.pick([]int{at})
	c.dispatch("update", anim, false, func(s Surface, d func()) {
		s.ReloadRows([]int{at}, reloaded, anim, d)
	}, done)
}

// Delete removes the item at index at.
func (c *Component) Delete(at int, anim model.Animation, done func()) {
	c.DeleteIndexes([]int{at}, anim, done)
}

// DeleteItem removes the first item equal to item.
func (c *Component) DeleteItem(item model.Item, anim model.Animation, done func()) {
	at := slices.IndexFunc(c.model.Items, func(it model.Item) bool { return model.Equal(it, item) })
	c.DeleteIndexes([]int{at}, anim, done)
}

// DeleteIndexes removes the items at the given indexes. Out of range and
// duplicate indexes are ignored.
func (c *Component) DeleteIndexes(indexes []int, anim model.Animation, done func()) {
	valid := c.validIndexes(indexes)
	if len(valid) == 0 {
		c.enqueue(op{name: "delete", done: done})
		return
	}

	for i := len(valid) - 1; i >= 0; i-- {
		c.model.Items = slices.Delete(c.model.Items, valid[i], valid[i]+1)
	}
	model.RefreshIndexes(c.model.Items)

	c.dispatch("delete", anim, false, func(s Surface, d func()) {
		s.DeleteRows(valid, anim, d)
	}, done)
}

// Reload re-renders the items at indexes. A nil slice, or AnimationNone,
// resets the whole data source instead.
func (c *Component) Reload(indexes []int, anim model.Animation, done func()) {
	model.RefreshIndexes(c.model.Items)
	if indexes == nil || anim == model.AnimationNone {
		c.measureItems(c.model.Items)
		c.dispatch("reload", model.AnimationNone, true, nil, done)
		return
	}

	valid := c.validIndexes(indexes)
	if len(valid) == 0 {
		c.enqueue(op{name: "reload", done: done})
		return
	}
	for _, i := range valid {
		c.model.Items[i] = c.measureItems([]model.Item{c.model.Items[i]})[0]
	}
	reloaded := c.pick(valid)
	c.dispatch("reload", anim, false, func(s Surface, d func()) {
		s.ReloadRows(valid, reloaded, anim, d)
	}, done)
}

// ReloadIfNeeded replaces the items with items when they differ and
// replays the difference on the surface. Equal items only complete.
func (c *Component) ReloadIfNeeded(items []model.Item, anim model.Animation, done func()) {
	base := c.model.Items
	c.ApplyChanges(base, items, diff.Diff(base, items), anim, done)
}

// ApplyChanges applies a change set computed elsewhere, typically off the
// UI loop, from base to items. If the component moved on since base was
// captured the change set is recomputed against the current items.
func (c *Component) ApplyChanges(base, items []model.Item, cs *diff.ChangeSet, anim model.Animation, done func()) {
	if !model.ItemsEqual(base, c.model.Items) {
		cs = diff.Diff(c.model.Items, items)
	}
	if cs == nil {
		c.enqueue(op{name: "reload-if-needed", done: done})
		return
	}

	wasEmpty := len(c.model.Items) == 0
	c.model.Items = model.RefreshIndexes(c.measureItems(model.CloneItems(items)))
	c.logger.Debug("applying change set", "changes", cs.String(), "nested", cs.ChildUpdates)

	var steps []func(s Surface, d func())
	if len(cs.Deletions) > 0 {
		deleted := slices.Clone(cs.Deletions)
		steps = append(steps, func(s Surface, d func()) { s.DeleteRows(deleted, anim, d) })
	}
	if len(cs.Insertions) > 0 {
		inserted, rows := slices.Clone(cs.Insertions), c.pick(cs.Insertions)
		steps = append(steps, func(s Surface, d func()) { s.InsertRows(inserted, rows, anim, d) })
	}
	if len(cs.Reloads) > 0 {
		reloaded, rows := slices.Clone(cs.Reloads), c.pick(cs.Reloads)
		steps = append(steps, func(s Surface, d func()) { s.ReloadRows(reloaded, rows, anim, d) })
	}
	c.dispatch("reload-if-needed", anim, wasEmpty, chain(steps), done)
}

// Replace swaps the whole component model, keeping the handle, and resets
// the surface.
func (c *Component) Replace(m model.ComponentModel, done func()) {
	c.model = m.Clone()
	model.RefreshIndexes(c.model.Items)
	c.measureItems(c.model.Items)
	c.dispatch("replace", model.AnimationNone, true, nil, done)
}

// dispatch queues a structural change. Animation None and reset both turn
// it into a data reload carrying a snapshot of the items.
func (c *Component) dispatch(name string, anim model.Animation, reset bool, run func(s Surface, done func()), done func()) {
	if reset || anim == model.AnimationNone || run == nil {
		snapshot := c.Items()
		c.enqueue(op{name: name, done: done, run: func(d func()) {
			c.surface.ReloadData(snapshot, d)
		}})
		return
	}
	c.enqueue(op{name: name, done: done, run: func(d func()) { run(c.surface, d) }})
}

func chain(steps []func(s Surface, d func())) func(s Surface, done func()) {
	return func(s Surface, done func()) {
		var step func(i int)
		step = func(i int) {
			if i == len(steps) {
				done()
				return
			}
			steps[i](s, func() { step(i + 1) })
		}
		step(0)
	}
}

// pick copies the items at indexes.
func (c *Component) pick(indexes []int) []model.Item {
	out := make([]model.Item, 0, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(c.model.Items) {
			out = append(out, c.model.Items[i].Clone())
		}
	}
	return out
}

// validIndexes returns the in-range indexes sorted and without duplicates.
func (c *Component) validIndexes(indexes []int) []int {
	out := make([]int, 0, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(c.model.Items) {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func span(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
