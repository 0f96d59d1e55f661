package app

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg fires a deferred function on the event loop.
type timerMsg struct{ id uint64 }

// timers implements component.Scheduler on top of the Bubble Tea loop: the
// wall clock runs in time.AfterFunc, the function itself runs when the
// resulting timerMsg reaches Update.
type timers struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	nextID  uint64
	pending map[uint64]pendingTimer
}

type pendingTimer struct {
	fn    func()
	timer *time.Timer
	due   bool // fired before Bind
}

func newTimers() *timers {
	return &timers{pending: make(map[uint64]pendingTimer)}
}

// Bind connects the scheduler to a running program. Timers that fire before
// Bind are delivered once it is called.
func (t *timers) Bind(send func(tea.Msg)) {
	t.mu.Lock()
	t.send = send
	var due []uint64
	for id, p := range t.pending {
		if p.due {
			due = append(due, id)
		}
	}
	t.mu.Unlock()
	for _, id := range due {
		send(timerMsg{id: id})
	}
}

func (t *timers) AfterFunc(d time.Duration, fn func()) func() bool {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.pending[id] = pendingTimer{fn: fn}
	t.mu.Unlock()

	timer := time.AfterFunc(d, func() { t.deliver(id) })

	t.mu.Lock()
	if p, ok := t.pending[id]; ok {
		p.timer = timer
		t.pending[id] = p
	}
	t.mu.Unlock()

	return func() bool {
		t.mu.Lock()
		defer t.mu.Unlock()
		p, ok := t.pending[id]
		if !ok {
			return false
		}
		delete(t.pending, id)
		if p.timer != nil {
			p.timer.Stop()
		}
		return true
	}
}

func (t *timers) deliver(id uint64) {
	t.mu.Lock()
	send := t.send
	if p, ok := t.pending[id]; ok && send == nil {
		p.due = true
		t.pending[id] = p
	}
	t.mu.Unlock()
	if send != nil {
		send(timerMsg{id: id})
	}
}

// fire runs the function behind id. It must be called on the event loop.
func (t *timers) fire(id uint64) {
	t.mu.Lock()
	p, ok := t.pending[id]
	delete(t.pending, id)
	t.mu.Unlock()
	if ok {
		p.fn()
	}
}
