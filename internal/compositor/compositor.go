// Package compositor stitches independently scrolling children into one
// outer scroll region.
//
// The compositor owns every child's frame and vertical content offset.
// From a single external offset it decides, for each child, where its frame
// sits and how far the child is scrolled into its own content: children
// below the offset keep offset zero and sit at their running position, the
// child being scrolled through is pinned to the top of the viewport and
// scrolled internally, and children above are pinned and fully scrolled.
//
// The compositor is UI-affine. Children notify it through Subscribe; the
// notifications only mark it dirty, and the host calls LayoutIfNeeded once
// per event-loop turn.
package compositor

import (
	"log/slog"
	"math"
	"slices"

	"github.com/Akashdeep-Patra/spots/internal/geometry"
)

// Child is one viewport managed by the compositor.
type Child interface {
	ContentSize() geometry.Size
	ContentOffset() geometry.Point
	SetContentOffset(geometry.Point)
	Frame() geometry.Rect
	SetFrame(geometry.Rect)
	// ScrollsHorizontally marks children that scroll on their own x axis and
	// take no part in vertical offset redistribution.
	ScrollsHorizontally() bool
	// Subscribe registers fn to be called when content size or offset
	// changes.
	Subscribe(fn func()) (unsubscribe func())
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithStretchLastChild makes the last child fill the rest of the viewport
// regardless of its content height.
func WithStretchLastChild(v bool) Option {
	return func(c *Compositor) { c.stretchLast = v }
}

// WithBounds sets the initial viewport size.
func WithBounds(s geometry.Size) Option {
	return func(c *Compositor) { c.bounds = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

type entry struct {
	child       Child
	unsubscribe func()
}

// Compositor is the outer viewport.
type Compositor struct {
	children    []entry
	bounds      geometry.Size
	offset      geometry.Point
	contentSize geometry.Size
	sizeCache   []float64
	stretchLast bool
	logger      *slog.Logger

	needsLayout bool
	inLayout    bool
}

// New creates an empty compositor.
func New(opts ...Option) *Compositor {
	c := &Compositor{logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Add appends a child to the stack.
func (c *Compositor) Add(child Child) {
	c.Insert(child, len(c.children))
}

// Insert places a child at index at, clamped to the valid range.
func (c *Compositor) Insert(child Child, at int) {
	if child == nil || c.index(child) >= 0 {
		return
	}
	at = min(max(at, 0), len(c.children))
	e := entry{child: child, unsubscribe: child.Subscribe(c.SetNeedsLayout)}
	c.children = slices.Insert(c.children, at, e)
	c.SetNeedsLayout()
}

// Remove detaches a child and drops its subscription.
func (c *Compositor) Remove(child Child) {
	i := c.index(child)
	if i < 0 {
		return
	}
	if u := c.children[i].unsubscribe; u != nil {
		u()
	}
	c.children = slices.Delete(c.children, i, i+1)
	c.SetNeedsLayout()
}

// RemoveAll detaches every child.
func (c *Compositor) RemoveAll() {
	for _, e := range c.children {
		if e.unsubscribe != nil {
			e.unsubscribe()
		}
	}
	c.children = nil
	c.SetNeedsLayout()
}

func (c *Compositor) index(child Child) int {
	return slices.IndexFunc(c.children, func(e entry) bool { return e.child == child })
}

// Children returns the children in layout order.
func (c *Compositor) Children() []Child {
	out := make([]Child, len(c.children))
	for i, e := range c.children {
		out[i] = e.child
	}
	return out
}

// Len returns the number of children.
func (c *Compositor) Len() int { return len(c.children) }

// SetBounds resizes the viewport.
func (c *Compositor) SetBounds(s geometry.Size) {
	if s == c.bounds {
		return
	}
	c.bounds = s
	c.SetNeedsLayout()
}

// Bounds returns the viewport size.
func (c *Compositor) Bounds() geometry.Size { return c.bounds }

// SetStretchLastChild toggles stretch-last mode.
func (c *Compositor) SetStretchLastChild(v bool) {
	if v != c.stretchLast {
		c.stretchLast = v
		c.SetNeedsLayout()
	}
}

// SetContentOffset sets the external offset as is.
func (c *Compositor) SetContentOffset(p geometry.Point) {
	if p == c.offset {
		return
	}
	c.offset = p
	c.SetNeedsLayout()
}

// ContentOffset returns the external offset.
func (c *Compositor) ContentOffset() geometry.Point { return c.offset }

// ContentSize returns the stitched content size from the last layout.
func (c *Compositor) ContentSize() geometry.Size { return c.contentSize }

// MaxOffset is the largest vertical offset that still fills the viewport.
func (c *Compositor) MaxOffset() float64 {
	return math.Max(0, c.contentSize.Height-c.bounds.Height)
}

// ScrollTo moves the external offset to y, clamped to the content.
func (c *Compositor) ScrollTo(y float64) {
	c.LayoutIfNeeded()
	c.SetContentOffset(geometry.Point{X: c.offset.X, Y: ClampOffset(y, c.MaxOffset())})
}

// ScrollBy moves the external offset by dy, clamped to the content.
func (c *Compositor) ScrollBy(dy float64) {
	c.ScrollTo(c.offset.Y + dy)
}

// SizeCache maps each child index to its running offset at the last layout.
func (c *Compositor) SizeCache() map[int]float64 {
	out := make(map[int]float64, len(c.sizeCache))
	for i, y := range c.sizeCache {
		out[i] = y
	}
	return out
}

// OffsetOf returns the running offset of child i from the last layout.
func (c *Compositor) OffsetOf(i int) (float64, bool) {
	if i < 0 || i >= len(c.sizeCache) {
		return 0, false
	}
	return c.sizeCache[i], true
}

// ScrollToChild scrolls so that child i starts at the top of the viewport.
func (c *Compositor) ScrollToChild(i int) {
	c.ScrollToItem(i, 0)
}

// ScrollToItem scrolls to position itemY inside child i.
func (c *Compositor) ScrollToItem(i int, itemY float64) {
	c.LayoutIfNeeded()
	y, ok := c.OffsetOf(i)
	if !ok {
		return
	}
	c.ScrollTo(y + itemY)
}

// SetNeedsLayout marks the compositor dirty. Notifications raised by the
// compositor's own writes during a layout pass are ignored.
func (c *Compositor) SetNeedsLayout() {
	if c.inLayout {
		return
	}
	c.needsLayout = true
}

// NeedsLayout reports whether a layout is pending.
func (c *Compositor) NeedsLayout() bool { return c.needsLayout }

// LayoutIfNeeded runs a layout pass if one is pending.
func (c *Compositor) LayoutIfNeeded() {
	if c.needsLayout {
		c.Layout()
	}
}

// Layout redistributes the external offset across the children. It is
// idempotent.
func (c *Compositor) Layout() {
	c.needsLayout = false
	c.inLayout = true
	defer func() { c.inLayout = false }()

	ext := c.offset.Y
	viewportBottom := ext + c.bounds.Height
	last := len(c.children) - 1
	cache := make([]float64, len(c.children))

	var y float64
	for i, e := range c.children {
		child := e.child
		content := child.ContentSize()
		frame := geometry.Rect{
			Origin: geometry.Point{X: 0, Y: y},
			Size:   geometry.Size{Width: c.bounds.Width},
		}
		offset := child.ContentOffset()

		if child.ScrollsHorizontally() {
			offset.Y = 0
			frame.Size.Height = math.Min(c.bounds.Height, content.Height)
			if c.stretchLast && i == last {
				frame.Size.Height = c.bounds.Height - frame.MinY() + ext
			}
		} else {
			if ext < y {
				offset.Y = 0
			} else {
				offset.Y = ext - y
				frame.Origin.Y = ext
			}

			remainingViewport := math.Max(0, viewportBottom-frame.MinY())
			remainingContent := math.Max(0, content.Height-offset.Y)
			height := math.Ceil(math.Min(remainingViewport, remainingContent))
			if c.stretchLast && i == last {
				height = c.bounds.Height - frame.MinY() + ext
			}
			if height < c.bounds.Height && content.Height > height {
				height = math.Min(c.bounds.Height, content.Height)
			}
			frame.Size.Height = height
		}

		zero := frame.Size.Height <= 0
		frame = frame.Integral()
		if zero {
			frame.Size.Height = 0
		}

		child.SetFrame(frame)
		child.SetContentOffset(offset)

		cache[i] = y
		y += content.Height
	}

	c.sizeCache = cache
	c.contentSize = geometry.Size{Width: c.bounds.Width, Height: y}
	if len(c.children) == 1 {
		c.contentSize.Height = c.children[0].child.ContentSize().Height
	}
	c.logger.Debug("compositor layout", "children", len(c.children), "offset", ext, "content", c.contentSize.Height)
}

// ClampOffset limits an offset to [0, max(0, limit)].
func ClampOffset(offset, limit float64) float64 {
	return math.Min(math.Max(0, offset), math.Max(0, limit))
}
