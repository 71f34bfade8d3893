// Package geomwatch reacts to container resizes and rendered-surface
// mutations, coalescing bursts into a single debounced recomputation.
// Correctness does not depend on the exact delay, only on converging to
// the correct window once changes settle.
package geomwatch

import (
	"sync"
	"time"

	"gridview/internal/grid/events"
)

// DefaultDebounce is the quiet interval before a burst is considered
// settled. Tuning constant, not an invariant.
const DefaultDebounce = 50 * time.Millisecond

// Service handles geometry change monitoring
type Service struct {
	mu       sync.Mutex
	bus      events.EventBus
	debounce time.Duration
	timer    *time.Timer

	width    int
	height   int
	inFlight bool
	rearmed  bool

	onSettled func(width, height int)
}

// NewService creates a new geometry monitor. A non-positive debounce
// fires on the next interval tick rather than synchronously, keeping
// notification handlers from re-entering the recompute path.
func NewService(bus events.EventBus, debounce time.Duration) *Service {
	if debounce <= 0 {
		debounce = time.Millisecond
	}
	return &Service{
		bus:      bus,
		debounce: debounce,
	}
}

// SetSettledHandler sets the callback run once a change burst settles.
// It receives the latest known geometry at fire time, not the geometry
// captured when the first notification of the burst arrived.
func (s *Service) SetSettledHandler(fn func(width, height int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSettled = fn
}

// Attach subscribes the monitor to a host observation source
func (s *Service) Attach(src Source) {
	src.OnResize(s.NotifyResize)
	src.OnMutation(s.NotifyMutation)
}

// Geometry returns the latest known container dimensions
func (s *Service) Geometry() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// NotifyResize records new container dimensions and schedules a settle
func (s *Service) NotifyResize(width, height int) {
	s.mu.Lock()
	s.width = width
	s.height = height
	s.mu.Unlock()
	s.schedule()
}

// NotifyMutation schedules a settle for a relevant rendered-surface
// change. Attribute churn is ignored to avoid redundant work.
func (s *Service) NotifyMutation(kind MutationKind) {
	if kind == MutationAttribute {
		return
	}
	s.schedule()
}

// Flush cancels any pending timer and runs the settle immediately.
// Used on shutdown and in tests.
func (s *Service) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.fire()
}

// schedule restarts the debounce timer. An in-progress timer is
// cancelled whenever a newer triggering event arrives before it fires,
// so only the trailing edge of a burst produces a recomputation.
func (s *Service) schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fire)
}

// fire runs the settled handler under a single-flight gate: a
// notification arriving while a recomputation is in progress defers one
// more run instead of re-entering it.
func (s *Service) fire() {
	s.mu.Lock()
	if s.inFlight {
		s.rearmed = true
		s.mu.Unlock()
		return
	}
	s.inFlight = true
	s.timer = nil

	for {
		width, height := s.width, s.height
		fn := s.onSettled
		s.mu.Unlock()

		if fn != nil {
			fn(width, height)
		}
		if s.bus != nil {
			s.bus.Publish(SettledEvent{Width: width, Height: height})
		}

		s.mu.Lock()
		if !s.rearmed {
			break
		}
		s.rearmed = false
	}
	s.inFlight = false
	s.mu.Unlock()
}
