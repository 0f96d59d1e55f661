package component

import (
	"fmt"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/spots/internal/diff"
	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// call records one structural request received by fakeSurface.
type call struct {
	method  string
	indexes []int
	titles  []string
	anim    model.Animation
}

func (c call) String() string { return fmt.Sprintf("%s%v", c.method, c.indexes) }

// fakeSurface records structural calls. With hold set, completions are
// parked until release is called.
type fakeSurface struct {
	calls  []call
	held   []func()
	hold   bool
	height float64
	width  float64
}

func (f *fakeSurface) record(method string, indexes []int, items []model.Item, anim model.Animation, done func()) {
	c := call{method: method, indexes: indexes, anim: anim}
	for _, it := range items {
		c.titles = append(c.titles, it.Title)
	}
	f.calls = append(f.calls, c)
	if f.hold {
		f.held = append(f.held, done)
		return
	}
	done()
}

func (f *fakeSurface) InsertRows(idx []int, items []model.Item, anim model.Animation, done func()) {
	f.record("insert", idx, items, anim, done)
}

func (f *fakeSurface) DeleteRows(idx []int, anim model.Animation, done func()) {
	f.record("delete", idx, nil, anim, done)
}

func (f *fakeSurface) ReloadRows(idx []int, items []model.Item, anim model.Animation, done func()) {
	f.record("reload", idx, items, anim, done)
}

func (f *fakeSurface) ReloadData(items []model.Item, done func()) {
	f.record("reloadData", nil, items, model.AnimationNone, done)
}

func (f *fakeSurface) SetContentHeight(h float64) { f.height = h }

func (f *fakeSurface) Width() float64 { return f.width }

// release completes the oldest parked structural call.
func (f *fakeSurface) release() {
	done := f.held[0]
	f.held = f.held[1:]
	done()
}

func (f *fakeSurface) methods() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.String()
	}
	return out
}

// manualScheduler parks scheduled functions until fire is called.
type manualScheduler struct {
	tasks []*task
}

type task struct {
	fn      func()
	stopped bool
	ran     bool
}

func (m *manualScheduler) AfterFunc(_ time.Duration, fn func()) func() bool {
	t := &task{fn: fn}
	m.tasks = append(m.tasks, t)
	return func() bool {
		if t.ran || t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

// fire runs every live task and reports how many ran.
func (m *manualScheduler) fire() int {
	tasks := m.tasks
	m.tasks = nil
	n := 0
	for _, t := range tasks {
		if t.stopped || t.ran {
			continue
		}
		t.ran = true
		t.fn()
		n++
	}
	return n
}

type sizedRenderer struct{ item model.Item }

func (r *sizedRenderer) Configure(item model.Item) { r.item = item }

func (r *sizedRenderer) PreferredSize(item model.Item, width float64) geometry.Size {
	return geometry.Size{Width: width, Height: item.Meta.Float("height", 1)}
}

func (r *sizedRenderer) Render(int, bool) string { return r.item.Title }

func (r *sizedRenderer) Reset() { r.item = model.Item{} }

func newRegistry() *registry.Registry {
	return registry.New(func() registry.Renderer { return &sizedRenderer{} })
}

func titled(titles ...string) []model.Item {
	out := make([]model.Item, len(titles))
	for i, t := range titles {
		out[i] = model.Item{Title: t}
	}
	return out
}

func titles(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

type harness struct {
	c       *Component
	surface *fakeSurface
	sched   *manualScheduler
	heights []float64
}

func newHarness(t *testing.T, items ...model.Item) *harness {
	t.Helper()
	h := &harness{surface: &fakeSurface{width: 40}, sched: &manualScheduler{}}
	h.c = New(model.NewComponentModel(model.KindList, "test", items...),
		WithSurface(h.surface),
		WithScheduler(h.sched),
		WithRegistry(newRegistry()),
		WithHeightObserver(func(v float64) { h.heights = append(h.heights, v) }),
	)
	return h
}

func assertIndexes(t *testing.T, c *Component) {
	t.Helper()
	for i, it := range c.Items() {
		assert.Equal(t, i, it.Index)
	}
}

func TestMutationIsSynchronous(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a", "b")...)
	h.c.AppendItem(model.Item{Title: "c"}, model.AnimationFade, nil)
	assert.Equal(t, []string{"a", "b", "c"}, titles(h.c.Items()))

	h.c.Prepend(titled("z"), model.AnimationTop, nil)
	assert.Equal(t, []string{"z", "a", "b", "c"}, titles(h.c.Items()))

	h.c.Insert(model.Item{Title: "m"}, 2, model.AnimationFade, nil)
	assert.Equal(t, []string{"z", "a", "m", "b", "c"}, titles(h.c.Items()))

	h.c.Delete(0, model.AnimationFade, nil)
	h.c.Update(model.Item{Title: "B"}, 2, model.AnimationFade, nil)
	assert.Equal(t, []string{"a", "m", "B", "c"}, titles(h.c.Items()))
	assertIndexes(t, h.c)

	assert.Equal(t, []string{"insert[2]", "insert[0]", "insert[2]", "delete[0]", "reload[2]"}, h.surface.methods())
}

func TestCompletionRunsAfterSettle(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a")...)
	completed := false
	h.c.AppendItem(model.Item{Title: "b", Meta: model.NewMeta("height", 3.0)}, model.AnimationFade, func() {
		completed = true
		assert.Equal(t, 4.0, h.c.ComputedHeight())
	})

	assert.False(t, completed)
	assert.Equal(t, 1, h.c.Pending())
	require.Equal(t, 1, h.sched.fire())
	assert.True(t, completed)
	assert.Equal(t, 0, h.c.Pending())
	assert.Equal(t, 4.0, h.surface.height)
	assert.Equal(t, []float64{4}, h.heights)
}

func TestSerializationOrdering(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a", "b")...)
	h.surface.hold = true

	var order []string
	h.c.Insert(model.Item{Title: "x"}, 0, model.AnimationFade, func() { order = append(order, "insert") })
	h.c.Delete(0, model.AnimationFade, func() { order = append(order, "delete") })

	assert.Equal(t, []string{"a", "b"}, titles(h.c.Items()))
	require.Equal(t, []string{"insert[0]"}, h.surface.methods(), "delete must wait for the insert")
	assert.Equal(t, []string{"x"}, h.surface.calls[0].titles)
	assert.Equal(t, 2, h.c.Pending())

	h.surface.release()
	require.Equal(t, []string{"insert[0]", "delete[0]"}, h.surface.methods())

	h.surface.release()
	h.sched.fire()
	assert.Equal(t, []string{"insert", "delete"}, order)
	assert.Equal(t, []string{"a", "b"}, titles(h.c.Items()))
}

func TestSettleIsCoalesced(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a")...)
	var order []int
	for i := 0; i < 3; i++ {
		h.c.AppendItem(model.Item{Title: fmt.Sprint(i)}, model.AnimationFade, func() { order = append(order, i) })
	}
	assert.Equal(t, 1, h.sched.fire(), "earlier settle timers are stopped")
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Len(t, h.heights, 1)
}

func TestOutOfRangeIsNoOpThatCompletesInOrder(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a", "b")...)
	var order []string
	h.c.Delete(5, model.AnimationFade, func() { order = append(order, "delete 5") })
	h.c.Insert(model.Item{Title: "x"}, -1, model.AnimationFade, func() { order = append(order, "insert -1") })
	h.c.Update(model.Item{Title: "x"}, 2, model.AnimationFade, func() { order = append(order, "update 2") })
	h.c.Reload([]int{9}, model.AnimationFade, func() { order = append(order, "reload 9") })
	h.c.DeleteItem(model.Item{Title: "missing"}, model.AnimationFade, func() { order = append(order, "delete item") })

	assert.Empty(t, h.surface.calls)
	assert.Equal(t, []string{"a", "b"}, titles(h.c.Items()))
	h.sched.fire()
	assert.Equal(t, []string{"delete 5", "insert -1", "update 2", "reload 9", "delete item"}, order)
}

func TestAnimationNoneResetsData(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a")...)
	h.c.AppendItem(model.Item{Title: "b"}, model.AnimationNone, nil)
	h.c.Delete(0, model.AnimationNone, nil)
	h.c.Reload([]int{0}, model.AnimationNone, nil)

	require.Len(t, h.surface.calls, 3)
	assert.Equal(t, "reloadData", h.surface.calls[0].method)
	assert.Equal(t, []string{"a", "b"}, h.surface.calls[0].titles)
	assert.Equal(t, []string{"b"}, h.surface.calls[1].titles)
	assert.Equal(t, "reloadData", h.surface.calls[2].method)
}

func TestReloadNilResetsDataSource(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a", "b")...)
	h.c.Reload(nil, model.AnimationFade, nil)
	h.c.Reload([]int{1, 1, 0}, model.AnimationFade, nil)
	assert.Equal(t, []string{"reloadData[]", "reload[0 1]"}, h.surface.methods())
}

func TestAppendToEmptyResetsData(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.c.Append(titled("a", "b"), model.AnimationFade, nil)
	require.Len(t, h.surface.calls, 1)
	assert.Equal(t, "reloadData", h.surface.calls[0].method)
	assert.Equal(t, []string{"a", "b"}, h.surface.calls[0].titles)
}

func TestUpdateWithEqualItemSkipsSurface(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a", "b")...)
	done := false
	h.c.Update(model.Item{Title: "b"}, 1, model.AnimationFade, func() { done = true })
	assert.Empty(t, h.surface.calls)
	h.sched.fire()
	assert.True(t, done)

	h.c.Update(model.Item{Title: "b", Meta: model.NewMeta("height", 2.0)}, 1, model.AnimationFade, nil)
	assert.Equal(t, []string{"reload[1]"}, h.surface.methods())
}

func TestDeleteIndexesIgnoresInvalidAndDuplicates(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a", "b", "c", "d")...)
	h.c.DeleteIndexes([]int{3, 1, 1, 7, -2}, model.AnimationFade, nil)
	assert.Equal(t, []string{"a", "c"}, titles(h.c.Items()))
	assert.Equal(t, []string{"delete[1 3]"}, h.surface.methods())
	assertIndexes(t, h.c)

	h.c.DeleteItem(model.Item{Title: "c"}, model.AnimationFade, nil)
	assert.Equal(t, []string{"a"}, titles(h.c.Items()))
}

func TestReloadIfNeeded(t *testing.T) {
	t.Parallel()

	t.Run("equal items only complete", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, titled("a", "b")...)
		done := false
		h.c.ReloadIfNeeded(titled("a", "b"), model.AnimationFade, func() { done = true })
		assert.Empty(t, h.surface.calls)
		h.sched.fire()
		assert.True(t, done)
	})

	t.Run("change set is replayed in order", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, titled("a", "b", "c")...)
		h.surface.hold = true
		h.c.ReloadIfNeeded(titled("a", "B"), model.AnimationFade, nil)
		assert.Equal(t, []string{"a", "B"}, titles(h.c.Items()))

		require.Equal(t, []string{"delete[2]"}, h.surface.methods())
		h.surface.release()
		require.Equal(t, []string{"delete[2]", "reload[1]"}, h.surface.methods())
		assert.Equal(t, []string{"B"}, h.surface.calls[1].titles)
		h.surface.release()
		assert.Equal(t, 1, h.sched.fire())
	})

	t.Run("growth inserts the tail", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, titled("a")...)
		h.c.ReloadIfNeeded(titled("a", "b", "c"), model.AnimationFade, nil)
		assert.Equal(t, []string{"insert[1 2]"}, h.surface.methods())
		assertIndexes(t, h.c)
	})

	t.Run("none resets", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, titled("a")...)
		h.c.ReloadIfNeeded(titled("x", "y"), model.AnimationNone, nil)
		assert.Equal(t, []string{"reloadData[]"}, h.surface.methods())
	})
}

func TestApplyChangesRecomputesStaleChangeSet(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a", "b")...)
	base := h.c.Items()
	target := titled("a", "b", "c")
	cs := diff.Diff(base, target)

	h.c.AppendItem(model.Item{Title: "c"}, model.AnimationFade, nil)
	h.c.ApplyChanges(base, target, cs, model.AnimationFade, nil)

	assert.Equal(t, []string{"insert[2]"}, h.surface.methods(), "stale change set must not insert twice")
	assert.Equal(t, []string{"a", "b", "c"}, titles(h.c.Items()))
}

func TestReplaceKeepsHandle(t *testing.T) {
	t.Parallel()

	h := newHarness(t, titled("a")...)
	handle := h.c.Handle()
	h.c.Replace(model.NewComponentModel(model.KindGrid, "new", titled("x", "y")...), nil)

	assert.Equal(t, handle, h.c.Handle())
	assert.Equal(t, model.KindGrid, h.c.Kind())
	assert.Equal(t, "new", h.c.Model().Title)
	assert.Equal(t, []string{"reloadData[]"}, h.surface.methods())
}

func TestDetachedComponentCompletesImmediately(t *testing.T) {
	t.Parallel()

	c := New(model.NewComponentModel(model.KindList, "", titled("a")...))
	done := false
	c.AppendItem(model.Item{Title: "b"}, model.AnimationFade, func() { done = true })
	assert.True(t, done)
	assert.Equal(t, 2.0, c.ComputedHeight())
	assert.Equal(t, 0, c.Pending())
}

func TestCompletionMayIssueMutation(t *testing.T) {
	t.Parallel()

	c := New(model.NewComponentModel(model.KindList, "", titled("a")...))
	var order []string
	c.AppendItem(model.Item{Title: "b"}, model.AnimationFade, func() {
		order = append(order, "first")
		c.Delete(0, model.AnimationFade, func() { order = append(order, "nested") })
	})
	c.AppendItem(model.Item{Title: "c"}, model.AnimationFade, func() { order = append(order, "second") })

	assert.Equal(t, []string{"first", "nested", "second"}, order)
	assert.Equal(t, []string{"b", "c"}, titles(c.Items()))
}

func TestHeightByKind(t *testing.T) {
	t.Parallel()

	reg := newRegistry()
	sized := func(hs ...float64) []model.Item {
		out := make([]model.Item, len(hs))
		for i, h := range hs {
			out[i] = model.Item{Title: fmt.Sprint(i), Meta: model.NewMeta("height", h)}
		}
		return out
	}

	tests := []struct {
		name   string
		kind   model.Kind
		layout model.Layout
		items  []model.Item
		want   float64
	}{
		{"empty", model.KindList, model.DefaultLayout(), nil, 0},
		{"list", model.KindList, model.Layout{ItemSpacing: 1, Inset: model.Inset{Top: 1, Bottom: 2}}, sized(2, 3, 4), 9 + 2 + 3},
		{"grid", model.KindGrid, model.Layout{Span: 2, LineSpacing: 1}, sized(2, 5, 1, 1, 3), 5 + 1 + 3 + 2},
		{"carousel", model.KindCarousel, model.Layout{Inset: model.Inset{Top: 1}}, sized(2, 6, 3), 7},
		{"custom", model.KindCustom, model.Layout{ItemSpacing: 4}, sized(1, 1), 2},
		{"empty shown", model.KindList, model.Layout{ShowEmptyComponent: true, Inset: model.Inset{Top: 1}}, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := model.NewComponentModel(tt.kind, "", tt.items...)
			m.Layout = tt.layout
			_, h := Measure(reg, m, 40)
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestHeightIncludesHeaderAndFooter(t *testing.T) {
	t.Parallel()

	m := model.NewComponentModel(model.KindList, "", model.Item{Title: "a"})
	m.Header = &model.Item{Title: "h", Meta: model.NewMeta("height", 2.0)}
	m.Footer = &model.Item{Title: "f"}
	_, h := Measure(newRegistry(), m, 40)
	assert.Equal(t, 4.0, h)
}

func TestAttachLoadsSurface(t *testing.T) {
	t.Parallel()

	c := New(model.NewComponentModel(model.KindList, "late", titled("a", "b")...), WithRegistry(newRegistry()))
	s := &fakeSurface{width: 40}
	c.Attach(s)

	assert.Equal(t, []string{"reloadData[]"}, s.methods())
	assert.Equal(t, []string{"a", "b"}, s.calls[0].titles)
	assert.Equal(t, 2.0, s.height)
	assert.Zero(t, c.Pending())
}
