// Package scrollsync keeps the header and body regions at an identical
// horizontal offset and confines vertical scrolling to the body.
package scrollsync

import (
	"gridview/internal/domain"
	"gridview/internal/grid/events"
)

// Service handles scroll synchronization between the two regions
type Service struct {
	state      *State
	bus        events.EventBus
	maxTopFn   func() int // largest useful vertical offset
	maxLeftFn  func() int // largest useful horizontal offset
	onVertical func(scrollTop int)
}

// NewService creates a new scroll synchronizer
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{},
		bus:   bus,
	}
}

// SetBounds sets the functions providing the current scroll limits.
// They are consulted at notification time, so the clamp always uses the
// latest geometry rather than geometry captured at wiring time.
func (s *Service) SetBounds(maxTop, maxLeft func() int) {
	s.maxTopFn = maxTop
	s.maxLeftFn = maxLeft
}

// SetVerticalHandler sets the callback run after a vertical offset
// change, used to trigger window recomputation
func (s *Service) SetVerticalHandler(fn func(scrollTop int)) {
	s.onVertical = fn
}

// ScrollTop returns the current vertical offset
func (s *Service) ScrollTop() int {
	return s.state.ScrollTop
}

// ScrollLeft returns the shared horizontal offset
func (s *Service) ScrollLeft() int {
	return s.state.BodyLeft
}

// RegionLeft returns the horizontal offset of one region
func (s *Service) RegionLeft(region domain.Region) int {
	if region == domain.RegionHeader {
		return s.state.HeaderLeft
	}
	return s.state.BodyLeft
}

// ScrollVertical applies a vertical scroll notification from the body.
// The offset is clamped into the valid range and the recompute handler
// runs with the exact value just stored, never a stale read.
func (s *Service) ScrollVertical(offset int) int {
	offset = s.clampTop(offset)
	if offset == s.state.ScrollTop {
		return offset
	}

	s.state.ScrollTop = offset
	if s.onVertical != nil {
		s.onVertical(offset)
	}
	if s.bus != nil {
		s.bus.Publish(VerticalScrolledEvent{ScrollTop: offset})
	}
	return offset
}

// ScrollVerticalBy applies a relative vertical scroll
func (s *Service) ScrollVerticalBy(delta int) int {
	return s.ScrollVertical(s.state.ScrollTop + delta)
}

// ScrollHorizontal applies a horizontal scroll notification from either
// region and propagates the resulting offset to the other region. The
// equality short-circuit is what prevents a propagated offset from
// re-triggering a propagation back: once both regions agree, the
// notification chain stops.
func (s *Service) ScrollHorizontal(source domain.Region, offset int) int {
	offset = s.clampLeft(offset)

	if s.RegionLeft(source) != offset {
		s.setRegionLeft(source, offset)
	}

	other := domain.RegionBody
	if source == domain.RegionBody {
		other = domain.RegionHeader
	}
	if s.RegionLeft(other) == offset {
		return offset
	}

	// Propagate by re-entering the same path the renderer would use; the
	// shortcut above terminates it.
	s.ScrollHorizontal(other, offset)

	if s.bus != nil {
		s.bus.Publish(HorizontalScrolledEvent{ScrollLeft: offset})
	}
	return offset
}

// ScrollHorizontalBy applies a relative horizontal scroll from a region
func (s *Service) ScrollHorizontalBy(source domain.Region, delta int) int {
	return s.ScrollHorizontal(source, s.RegionLeft(source)+delta)
}

// Reset zeroes all offsets. Called when the dataset is replaced so a
// stale offset from a differently-sized dataset is never reused.
func (s *Service) Reset() {
	s.state.ScrollTop = 0
	s.state.HeaderLeft = 0
	s.state.BodyLeft = 0
}

// Reclamp pulls offsets back into range after the bounds shrink, e.g.
// when a column narrows or the container grows
func (s *Service) Reclamp() {
	if top := s.clampTop(s.state.ScrollTop); top != s.state.ScrollTop {
		s.ScrollVertical(top)
	}
	if left := s.clampLeft(s.state.BodyLeft); left != s.state.BodyLeft {
		s.ScrollHorizontal(domain.RegionBody, left)
	}
}

func (s *Service) setRegionLeft(region domain.Region, offset int) {
	if region == domain.RegionHeader {
		s.state.HeaderLeft = offset
	} else {
		s.state.BodyLeft = offset
	}
}

func (s *Service) clampTop(offset int) int {
	if offset < 0 {
		return 0
	}
	if s.maxTopFn != nil {
		if max := s.maxTopFn(); offset > max {
			return max
		}
	}
	return offset
}

func (s *Service) clampLeft(offset int) int {
	if offset < 0 {
		return 0
	}
	if s.maxLeftFn != nil {
		if max := s.maxLeftFn(); offset > max {
			return max
		}
	}
	return offset
}
