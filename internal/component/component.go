// Package component implements the mutation protocol of a single component:
// it owns the authoritative item list, applies every mutation to it
// synchronously and replays the matching structural change on its Surface.
//
// Structural changes are strictly FIFO per component. A change is handed to
// the surface only after the previous one reported completion. Once a change
// completes, the component waits for a settle interval, remeasures its
// content height, publishes it and only then runs the caller's completions
// in the order the operations were issued. The settle timer is shared, so a
// burst of operations results in a single remeasure.
//
// A Component is UI-affine: all methods, surface callbacks and scheduled
// functions must run on the same event loop.
package component

import (
	"log/slog"
	"time"

	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/registry"
	"github.com/google/uuid"
)

// DefaultSettleInterval is the delay between a structural change finishing
// and the height remeasure.
const DefaultSettleInterval = 150 * time.Millisecond

// Option configures a Component.
type Option func(*Component)

// WithSurface attaches the viewport that presents the component.
func WithSurface(s Surface) Option {
	return func(c *Component) {
		if s != nil {
			c.surface = s
		}
	}
}

// WithScheduler sets the scheduler used for the settle timer.
func WithScheduler(s Scheduler) Option {
	return func(c *Component) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithRegistry sets the renderer registry used for measuring.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Component) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithSettleInterval overrides DefaultSettleInterval.
func WithSettleInterval(d time.Duration) Option {
	return func(c *Component) {
		if d >= 0 {
			c.settleInterval = d
		}
	}
}

// WithHeightObserver registers fn to receive every remeasured height.
func WithHeightObserver(fn func(h float64)) Option {
	return func(c *Component) { c.observer = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Component) {
		if l != nil {
			c.logger = l
		}
	}
}

// op is one queued structural change.
type op struct {
	name string
	// run hands the change to the surface. A nil run is a no-op that only
	// keeps the completion in sequence.
	run  func(done func())
	done func()
}

// Component is one independently managed list, grid or carousel.
type Component struct {
	handle string
	model  model.ComponentModel
	height float64

	surface        Surface
	scheduler      Scheduler
	registry       *registry.Registry
	settleInterval time.Duration
	observer       func(float64)
	logger         *slog.Logger

	queue       []op
	busy        bool
	completions []func()
	pending     int

	settleGen  uint64
	stopSettle func() bool
}

// New creates a component for m. Items are re-indexed and measured at once.
func New(m model.ComponentModel, opts ...Option) *Component {
	c := &Component{
		handle:         uuid.NewString(),
		model:          m.Clone(),
		surface:        detached{},
		scheduler:      Immediate,
		settleInterval: DefaultSettleInterval,
		logger:         slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.registry == nil {
		c.registry = registry.New(func() registry.Renderer { return lineRenderer{} })
	}
	c.logger = c.logger.With("component", c.handle[:8], "kind", string(c.model.Kind))

	model.RefreshIndexes(c.model.Items)
	c.measureItems(c.model.Items)
	c.height = Height(c.registry, c.model, c.surface.Width())
	return c
}

// Handle identifies the component to its owner without a back reference.
func (c *Component) Handle() string { return c.handle }

// Model returns a copy of the component model.
func (c *Component) Model() model.ComponentModel { return c.model.Clone() }

// Kind returns the component's kind.
func (c *Component) Kind() model.Kind { return c.model.Kind }

// Items returns a copy of the items.
func (c *Component) Items() []model.Item { return model.CloneItems(c.model.Items) }

// Len returns the number of items.
func (c *Component) Len() int { return len(c.model.Items) }

// Item returns the item at index i.
func (c *Component) Item(i int) (model.Item, bool) {
	it, ok := c.model.Item(i)
	if !ok {
		return model.Item{}, false
	}
	return it.Clone(), true
}

// ComputedHeight is the height published by the last remeasure.
func (c *Component) ComputedHeight() float64 { return c.height }

// Pending returns the number of operations whose completion has not run.
func (c *Component) Pending() int { return c.pending }

// Attach connects a surface after construction, for owners that build the
// viewport from the component. The surface is loaded with the current items
// and height at once.
func (c *Component) Attach(s Surface) {
	if s == nil {
		s = detached{}
	}
	c.surface = s
	c.measureItems(c.model.Items)
	c.height = Height(c.registry, c.model, c.surface.Width())
	c.surface.ReloadData(c.Items(), func() {})
	c.surface.SetContentHeight(c.height)
}

func (c *Component) measureItems(items []model.Item) []model.Item {
	return measureAll(c.registry, items, ItemWidth(c.model, c.surface.Width()))
}

func (c *Component) enqueue(o op) {
	c.pending++
	c.queue = append(c.queue, o)
	c.next()
}

func (c *Component) next() {
	for !c.busy && len(c.queue) > 0 {
		o := c.queue[0]
		c.queue = c.queue[1:]
		c.busy = true
		if o.run == nil {
			c.finish(o)
			continue
		}
		c.logger.Debug("dispatching structural change", "op", o.name, "queued", len(c.queue))
		fired := false
		o.run(func() {
			if fired {
				return
			}
			fired = true
			c.finish(o)
		})
	}
}

// finish runs when the surface reports a structural change as done.
func (c *Component) finish(o op) {
	c.busy = false
	c.completions = append(c.completions, o.done)
	c.scheduleSettle()
	c.next()
}

func (c *Component) scheduleSettle() {
	if c.stopSettle != nil {
		c.stopSettle()
	}
	c.settleGen++
	gen := c.settleGen
	stop := c.scheduler.AfterFunc(c.settleInterval, func() {
		if gen != c.settleGen {
			return
		}
		c.stopSettle = nil
		c.settle()
	})
	if gen == c.settleGen && len(c.completions) > 0 {
		c.stopSettle = stop
	}
}

// settle remeasures, publishes the height and drains completions.
func (c *Component) settle() {
	c.measureItems(c.model.Items)
	c.height = Height(c.registry, c.model, c.surface.Width())
	c.logger.Debug("remeasured", "height", c.height, "items", len(c.model.Items))
	c.surface.SetContentHeight(c.height)
	if c.observer != nil {
		c.observer(c.height)
	}

	done := c.completions
	c.completions = nil
	for _, fn := range done {
		c.pending--
		if fn != nil {
			fn()
		}
	}
}
