// Package reveal models reveal-on-scroll elements. An element starts hidden,
// becomes pending when enough of it is in view, and becomes visible once its
// delay has elapsed. It never goes back.
package reveal

import (
	"sync"
	"time"
)

// DefaultThreshold is the visible fraction that triggers a reveal
const DefaultThreshold = 0.1

// State is the reveal state of an element
type State int

const (
	// Hidden elements have not intersected the viewport yet
	Hidden State = iota
	// Pending elements have intersected and are waiting out their delay
	Pending
	// Visible is terminal
	Visible
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Pending:
		return "pending"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Spec is the reveal configuration attached to a rendered element
type Spec struct {
	Threshold float64       `json:"threshold"`
	Delay     time.Duration `json:"-"`
	DelayMs   int64         `json:"delayMs"`
}

// NewSpec returns a spec with the default threshold
func NewSpec(delay time.Duration) Spec {
	return Spec{Threshold: DefaultThreshold, Delay: delay, DelayMs: delay.Milliseconds()}
}

// Staggered returns the spec for the index-th card of a section
func Staggered(index int, step time.Duration) Spec {
	return NewSpec(time.Duration(index) * step)
}

// Element is a single reveal state machine
type Element struct {
	Threshold float64
	Delay     time.Duration

	state    State
	observed bool
}

// NewElement creates a hidden element observing the viewport
func NewElement(spec Spec) *Element {
	threshold := spec.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Element{Threshold: threshold, Delay: spec.Delay, observed: true}
}

// State returns the current state
func (e *Element) State() State {
	return e.state
}

// Observing reports whether the element still listens for intersections
func (e *Element) Observing() bool {
	return e.observed
}

// Observe feeds an intersection ratio. The first ratio at or above the
// threshold stops observation and moves the element forward; the returned
// bool is true when that happened on this call.
func (e *Element) Observe(ratio float64) bool {
	if !e.observed || e.state != Hidden {
		return false
	}
	if ratio < e.Threshold {
		return false
	}

	e.observed = false
	if e.Delay <= 0 {
		e.state = Visible
	} else {
		e.state = Pending
	}
	return true
}

// Fire completes a pending reveal
func (e *Element) Fire() {
	if e.state == Pending {
		e.state = Visible
	}
}

// Clock schedules delayed callbacks
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled callback
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Observer tracks many elements by key
type Observer struct {
	mu       sync.Mutex
	clock    Clock
	elements map[string]*Element
	timers   map[string]Timer
}

// NewObserver creates an observer. A nil clock uses the wall clock.
func NewObserver(clock Clock) *Observer {
	if clock == nil {
		clock = realClock{}
	}
	return &Observer{
		clock:    clock,
		elements: make(map[string]*Element),
		timers:   make(map[string]Timer),
	}
}

// Track registers an element. Tracking an existing key is a no-op.
func (o *Observer) Track(key string, spec Spec) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.elements[key]; ok {
		return
	}
	o.elements[key] = NewElement(spec)
}

// Intersect feeds an intersection ratio for key and schedules the delayed
// completion when the element becomes pending
func (o *Observer) Intersect(key string, ratio float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	el, ok := o.elements[key]
	if !ok || !el.Observe(ratio) {
		return
	}
	if el.State() == Pending {
		o.timers[key] = o.clock.AfterFunc(el.Delay, func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			el.Fire()
			delete(o.timers, key)
		})
	}
}

// State returns the state for key, Hidden when unknown
func (o *Observer) State(key string) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if el, ok := o.elements[key]; ok {
		return el.State()
	}
	return Hidden
}

// Observing reports whether key still listens for intersections
func (o *Observer) Observing(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if el, ok := o.elements[key]; ok {
		return el.Observing()
	}
	return false
}

// Close cancels pending timers, leaving pending elements pending
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for key, t := range o.timers {
		t.Stop()
		delete(o.timers, key)
	}
}
