// Package scroll decides when a list has been scrolled far enough that its
// next page should be requested.
//
// A list places a sentinel after its last row. Whoever owns the viewport
// publishes the sentinel geometry on a Signal; a Trigger subscribed to that
// signal calls its load callback whenever the sentinel intersects the
// viewport (expanded by RootMargin) and the list can accept another page.
package scroll

import "sync"

// Entry describes the sentinel relative to the viewport. Top is the distance
// from the viewport's top edge to the sentinel's top edge.
type Entry struct {
	Top            float64
	Height         float64
	ViewportHeight float64
}

// Ratio returns the visible fraction of the sentinel inside the viewport
// grown by margin on every side, and whether the two touch at all.
func (e Entry) Ratio(margin float64) (float64, bool) {
	lo, hi := -margin, e.ViewportHeight+margin
	top, bottom := e.Top, e.Top+e.Height
	if bottom < lo || top > hi {
		return 0, false
	}
	if e.Height <= 0 {
		return 1, true
	}
	visible := min(bottom, hi) - max(top, lo)
	return visible / e.Height, true
}

type Options struct {
	// RootMargin grows the viewport in pixels so loading starts before the
	// sentinel is actually visible.
	RootMargin float64
	Threshold  float64
	Enabled    bool
}

func DefaultOptions() Options {
	return Options{RootMargin: 100, Threshold: 0.1, Enabled: true}
}

// Status is what a Trigger asks of its list before requesting more.
type Status struct {
	HasMore bool
	Loading bool
	Err     error
}

// Signal fans geometry updates out to subscribers.
type Signal struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Entry)
}

func NewSignal() *Signal {
	return &Signal{subs: make(map[int]func(Entry))}
}

// Subscribe registers fn and returns a function removing it again.
func (s *Signal) Subscribe(fn func(Entry)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Publish delivers e to every subscriber, outside the lock.
func (s *Signal) Publish(e Entry) {
	s.mu.Lock()
	fns := make([]func(Entry), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

type Trigger struct {
	opts   Options
	status func() Status
	load   func()

	mu           sync.Mutex
	unsubscribe  func()
	intersecting bool
	closed       bool
}

// Attach subscribes a trigger to sig. A disabled trigger never subscribes.
func Attach(sig *Signal, opts Options, status func() Status, load func()) *Trigger {
	t := &Trigger{opts: opts, status: status, load: load}
	if opts.Enabled {
		t.unsubscribe = sig.Subscribe(t.observe)
	}
	return t
}

func (t *Trigger) observe(e Entry) {
	ratio, touching := e.Ratio(t.opts.RootMargin)
	in := touching && ratio >= t.opts.Threshold

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.intersecting = in
	t.mu.Unlock()

	if !in {
		return
	}
	st := t.status()
	if st.HasMore && !st.Loading && st.Err == nil {
		t.load()
	}
}

// Intersecting reports whether the last observed entry intersected.
func (t *Trigger) Intersecting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.intersecting
}

// Close stops observation. It is safe to call more than once.
func (t *Trigger) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	if t.unsubscribe != nil {
		t.unsubscribe()
	}
}
