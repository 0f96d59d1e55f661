package compositor

import (
	"testing"

	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChild struct {
	size       geometry.Size
	offset     geometry.Point
	frame      geometry.Rect
	horizontal bool
	subs       map[int]func()
	nextSub    int
}

func newChild(height float64) *fakeChild {
	return &fakeChild{size: geometry.Size{Width: 80, Height: height}, subs: map[int]func(){}}
}

func (f *fakeChild) ContentSize() geometry.Size        { return f.size }
func (f *fakeChild) ContentOffset() geometry.Point     { return f.offset }
func (f *fakeChild) Frame() geometry.Rect              { return f.frame }
func (f *fakeChild) SetFrame(r geometry.Rect)          { f.frame = r }
func (f *fakeChild) ScrollsHorizontally() bool         { return f.horizontal }
func (f *fakeChild) SetContentOffset(p geometry.Point) { f.offset = p; f.notify() }

func (f *fakeChild) Subscribe(fn func()) func() {
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() { delete(f.subs, id) }
}

func (f *fakeChild) notify() {
	for _, fn := range f.subs {
		fn()
	}
}

func (f *fakeChild) resize(h float64) {
	f.size.Height = h
	f.notify()
}

func stack(t *testing.T, bounds geometry.Size, heights []float64, opts ...Option) (*Compositor, []*fakeChild) {
	t.Helper()
	c := New(append([]Option{WithBounds(bounds)}, opts...)...)
	children := make([]*fakeChild, len(heights))
	for i, h := range heights {
		children[i] = newChild(h)
		c.Add(children[i])
	}
	c.Layout()
	return c, children
}

func TestHeightSum(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 1000}, []float64{100, 150, 80})

	assert.Equal(t, 330.0, c.ContentSize().Height)
	assert.Equal(t, map[int]float64{0: 0, 1: 100, 2: 250}, c.SizeCache())
	for i, want := range []float64{0, 100, 250} {
		assert.Equal(t, want, children[i].frame.MinY(), "child %d origin", i)
		assert.Equal(t, children[i].size.Height, children[i].frame.Size.Height, "child %d height", i)
		assert.Equal(t, 80.0, children[i].frame.Size.Width)
	}
}

func TestStretchLast(t *testing.T) {
	t.Parallel()

	_, children := stack(t, geometry.Size{Width: 80, Height: 500}, []float64{100, 150, 80}, WithStretchLastChild(true))
	assert.Equal(t, 250.0, children[2].frame.Size.Height)
	assert.Equal(t, 250.0, children[2].frame.MinY())

	_, plain := stack(t, geometry.Size{Width: 80, Height: 500}, []float64{100, 150, 80})
	assert.Equal(t, 80.0, plain[2].frame.Size.Height)
}

func TestScrollRedistribution(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 200}, []float64{300, 300})
	c.SetContentOffset(geometry.Point{Y: 350})
	c.LayoutIfNeeded()

	assert.Equal(t, 350.0, children[0].frame.MinY())
	assert.Equal(t, 350.0, children[0].offset.Y)
	assert.Equal(t, 350.0, children[1].frame.MinY())
	assert.Equal(t, 50.0, children[1].offset.Y)
	assert.Equal(t, 200.0, children[1].frame.Size.Height)
	assert.Equal(t, 600.0, c.ContentSize().Height)
}

func TestScrolledPastChildOffsetClampsToContent(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 200}, []float64{300, 300})
	c.SetContentOffset(geometry.Point{Y: 350})
	c.Layout()

	assert.Equal(t, 300.0, ClampOffset(children[0].offset.Y, children[0].size.Height))
	assert.Equal(t, 0.0, ClampOffset(-4, 10))
	assert.Equal(t, 0.0, ClampOffset(5, -1))
}

func TestChildrenBelowOffsetStayUnscrolled(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 100}, []float64{150, 150, 150})
	c.SetContentOffset(geometry.Point{Y: 120})
	c.Layout()

	assert.Equal(t, 120.0, children[0].offset.Y)
	assert.Equal(t, 120.0, children[0].frame.MinY())
	assert.Equal(t, 0.0, children[1].offset.Y)
	assert.Equal(t, 150.0, children[1].frame.MinY())
	assert.Equal(t, 0.0, children[2].offset.Y)
	assert.Equal(t, 300.0, children[2].frame.MinY())
}

func TestSmallChildGuard(t *testing.T) {
	t.Parallel()

	// The child has more content than remains visible, so it keeps a full
	// viewport of height rather than being cut to the remainder.
	c, children := stack(t, geometry.Size{Width: 80, Height: 100}, []float64{50, 300})
	c.Layout()

	assert.Equal(t, 50.0, children[1].frame.MinY())
	assert.Equal(t, 100.0, children[1].frame.Size.Height)
}

func TestZeroHeightChild(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 100}, []float64{0, 40, 0})
	c.SetContentOffset(geometry.Point{Y: 0.5})
	c.Layout()

	assert.Equal(t, 0.0, children[0].frame.Size.Height)
	assert.Equal(t, 0.0, children[2].frame.Size.Height)
	assert.Equal(t, map[int]float64{0: 0, 1: 0, 2: 40}, c.SizeCache())
}

func TestFractionalFramesAreIntegral(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 100}, []float64{10.5, 20})
	c.Layout()

	assert.Equal(t, 11.0, children[0].frame.Size.Height)
	assert.Equal(t, 10.0, children[1].frame.MinY())
	assert.Equal(t, 21.0, children[1].frame.Size.Height)
}

func TestHorizontalChildIsNotScrolledVertically(t *testing.T) {
	t.Parallel()

	c := New(WithBounds(geometry.Size{Width: 80, Height: 100}))
	top := newChild(60)
	carousel := newChild(40)
	carousel.horizontal = true
	carousel.offset = geometry.Point{X: 25}
	tall := newChild(400)
	c.Add(top)
	c.Add(carousel)
	c.Add(tall)

	c.SetContentOffset(geometry.Point{Y: 80})
	c.Layout()

	assert.Equal(t, geometry.Point{X: 25, Y: 0}, carousel.offset)
	assert.Equal(t, 60.0, carousel.frame.MinY())
	assert.Equal(t, 40.0, carousel.frame.Size.Height)
	assert.Equal(t, 100.0, tall.frame.MinY())
	assert.Equal(t, 0.0, tall.offset.Y)
	assert.Equal(t, 500.0, c.ContentSize().Height)
}

func TestStretchLastAppliesToHorizontalChild(t *testing.T) {
	t.Parallel()

	c := New(WithBounds(geometry.Size{Width: 80, Height: 500}), WithStretchLastChild(true))
	c.Add(newChild(100))
	c.Add(newChild(150))
	carousel := newChild(80)
	carousel.horizontal = true
	c.Add(carousel)
	c.Layout()

	assert.Equal(t, 250.0, carousel.frame.MinY())
	assert.Equal(t, 250.0, carousel.frame.Size.Height)
	assert.Equal(t, 0.0, carousel.offset.Y)
}

func TestSingleChildAdoptsNaturalHeight(t *testing.T) {
	t.Parallel()

	c, _ := stack(t, geometry.Size{Width: 80, Height: 100}, []float64{42})
	assert.Equal(t, 42.0, c.ContentSize().Height)

	empty := New()
	empty.Layout()
	assert.Equal(t, 0.0, empty.ContentSize().Height)
	assert.Empty(t, empty.SizeCache())
}

func TestLayoutIsIdempotent(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 200}, []float64{300, 300})
	c.SetContentOffset(geometry.Point{Y: 120})
	c.Layout()
	first := []geometry.Rect{children[0].frame, children[1].frame}
	c.Layout()
	assert.Equal(t, first, []geometry.Rect{children[0].frame, children[1].frame})
	assert.False(t, c.NeedsLayout(), "writes during layout must not mark it dirty")
}

func TestSubscriptionsInvalidate(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 200}, []float64{100, 100})
	require.False(t, c.NeedsLayout())

	children[0].resize(150)
	assert.True(t, c.NeedsLayout())
	c.LayoutIfNeeded()
	assert.Equal(t, 250.0, c.ContentSize().Height)
	assert.Equal(t, 150.0, children[1].frame.MinY())
}

func TestRemoveUnsubscribes(t *testing.T) {
	t.Parallel()

	c, children := stack(t, geometry.Size{Width: 80, Height: 200}, []float64{100, 100})
	removed := children[0]
	require.Len(t, removed.subs, 1)

	c.Remove(removed)
	assert.Empty(t, removed.subs)
	assert.Equal(t, 1, c.Len())
	c.LayoutIfNeeded()
	assert.Equal(t, 0.0, children[1].frame.MinY())

	removed.resize(999)
	assert.False(t, c.NeedsLayout())

	c.RemoveAll()
	assert.Empty(t, children[1].subs)
	assert.Zero(t, c.Len())
}

func TestInsertOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	c := New(WithBounds(geometry.Size{Width: 80, Height: 100}))
	a, b, d := newChild(10), newChild(20), newChild(30)
	c.Add(a)
	c.Add(b)
	c.Insert(d, 0)
	c.Add(a)
	c.Layout()

	require.Equal(t, []Child{d, a, b}, c.Children())
	y, ok := c.OffsetOf(2)
	assert.True(t, ok)
	assert.Equal(t, 40.0, y)
	_, ok = c.OffsetOf(3)
	assert.False(t, ok)
}

func TestScrollClamping(t *testing.T) {
	t.Parallel()

	c, _ := stack(t, geometry.Size{Width: 80, Height: 100}, []float64{150, 150})
	c.ScrollBy(500)
	assert.Equal(t, 200.0, c.ContentOffset().Y)
	c.ScrollBy(-1000)
	assert.Equal(t, 0.0, c.ContentOffset().Y)

	c.ScrollToItem(1, 20)
	assert.Equal(t, 170.0, c.ContentOffset().Y)
	c.ScrollToChild(0)
	assert.Equal(t, 0.0, c.ContentOffset().Y)
	c.ScrollToChild(7)
	assert.Equal(t, 0.0, c.ContentOffset().Y)
}
