package component

import (
	"time"

	"github.com/Akashdeep-Patra/spots/internal/model"
)

// Surface is the on-screen list a component drives. Every structural call
// must eventually invoke done exactly once, on the UI loop.
type Surface interface {
	InsertRows(indexes []int, items []model.Item, anim model.Animation, done func())
	DeleteRows(indexes []int, anim model.Animation, done func())
	ReloadRows(indexes []int, items []model.Item, anim model.Animation, done func())
	ReloadData(items []model.Item, done func())
	SetContentHeight(h float64)
	Width() float64
}

// Scheduler defers fn by d. fn must run on the UI loop. The returned stop
// reports whether fn was prevented from running.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) func() bool

func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) func() bool { return f(d, fn) }

// Immediate runs fn synchronously and ignores the delay. It is the default
// for components that are not attached to an event loop.
var Immediate Scheduler = SchedulerFunc(func(_ time.Duration, fn func()) func() bool {
	fn()
	return func() bool { return false }
})

// detached is used until a real surface is attached: every structural
// operation completes at once.
type detached struct{ width float64 }

func (detached) InsertRows(_ []int, _ []model.Item, _ model.Animation, done func()) { done() }
func (detached) DeleteRows(_ []int, _ model.Animation, done func())                 { done() }
func (detached) ReloadRows(_ []int, _ []model.Item, _ model.Animation, done func()) { done() }
func (detached) ReloadData(_ []model.Item, done func())                             { done() }
func (detached) SetContentHeight(float64)                                           {}
func (d detached) Width() float64                                                   { return d.width }
