package scrollsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridview/internal/domain"
	"gridview/internal/grid/events"
)

func newService(maxTop, maxLeft int) *Service {
	s := NewService(&events.NullBus{})
	s.SetBounds(func() int { return maxTop }, func() int { return maxLeft })
	return s
}

func TestScrollVerticalClampsToBounds(t *testing.T) {
	s := newService(100, 0)

	assert.Equal(t, 0, s.ScrollVertical(-5))
	assert.Equal(t, 40, s.ScrollVertical(40))
	assert.Equal(t, 100, s.ScrollVertical(250))
	assert.Equal(t, 100, s.ScrollTop())
}

func TestScrollVerticalHandlerGetsExactValue(t *testing.T) {
	s := newService(100, 0)

	var got []int
	s.SetVerticalHandler(func(scrollTop int) {
		got = append(got, scrollTop)
	})

	s.ScrollVertical(400) // clamped
	s.ScrollVertical(30)
	s.ScrollVertical(30) // no change, no callback

	assert.Equal(t, []int{100, 30}, got)
}

func TestScrollVerticalBy(t *testing.T) {
	s := newService(100, 0)

	s.ScrollVertical(50)
	assert.Equal(t, 53, s.ScrollVerticalBy(3))
	assert.Equal(t, 0, s.ScrollVerticalBy(-90))
}

func TestHorizontalScrollSyncsBothRegions(t *testing.T) {
	s := newService(0, 300)

	s.ScrollHorizontal(domain.RegionBody, 120)
	assert.Equal(t, 120, s.RegionLeft(domain.RegionBody))
	assert.Equal(t, 120, s.RegionLeft(domain.RegionHeader))

	s.ScrollHorizontal(domain.RegionHeader, 40)
	assert.Equal(t, 40, s.RegionLeft(domain.RegionBody))
	assert.Equal(t, 40, s.RegionLeft(domain.RegionHeader))
	assert.Equal(t, 40, s.ScrollLeft())
}

func TestHorizontalScrollPropagatesOnce(t *testing.T) {
	bus := events.NewBus()
	s := NewService(bus)
	s.SetBounds(func() int { return 0 }, func() int { return 300 })

	published := 0
	bus.Subscribe("scrollsync.HorizontalScrolledEvent", func(interface{}) {
		published++
	})

	// One notification crosses regions exactly once; a repeat at the same
	// offset is absorbed entirely.
	s.ScrollHorizontal(domain.RegionBody, 75)
	require.Equal(t, 1, published)

	s.ScrollHorizontal(domain.RegionHeader, 75)
	assert.Equal(t, 1, published)
}

func TestHorizontalScrollClamps(t *testing.T) {
	s := newService(0, 60)

	assert.Equal(t, 60, s.ScrollHorizontal(domain.RegionBody, 999))
	assert.Equal(t, 0, s.ScrollHorizontal(domain.RegionHeader, -3))
	assert.Equal(t, 0, s.RegionLeft(domain.RegionBody))
}

func TestScrollHorizontalBy(t *testing.T) {
	s := newService(0, 100)

	s.ScrollHorizontal(domain.RegionBody, 20)
	assert.Equal(t, 28, s.ScrollHorizontalBy(domain.RegionBody, 8))
	assert.Equal(t, 28, s.RegionLeft(domain.RegionHeader))
}

func TestReset(t *testing.T) {
	s := newService(100, 100)
	s.ScrollVertical(50)
	s.ScrollHorizontal(domain.RegionBody, 50)

	s.Reset()
	assert.Equal(t, 0, s.ScrollTop())
	assert.Equal(t, 0, s.ScrollLeft())
	assert.Equal(t, 0, s.RegionLeft(domain.RegionHeader))
}

func TestReclampAfterBoundsShrink(t *testing.T) {
	maxTop, maxLeft := 200, 200
	s := NewService(&events.NullBus{})
	s.SetBounds(func() int { return maxTop }, func() int { return maxLeft })

	s.ScrollVertical(180)
	s.ScrollHorizontal(domain.RegionBody, 150)

	var vertical []int
	s.SetVerticalHandler(func(scrollTop int) {
		vertical = append(vertical, scrollTop)
	})

	maxTop, maxLeft = 90, 40
	s.Reclamp()

	assert.Equal(t, 90, s.ScrollTop())
	assert.Equal(t, 40, s.ScrollLeft())
	assert.Equal(t, 40, s.RegionLeft(domain.RegionHeader))
	assert.Equal(t, []int{90}, vertical)
}

func TestReclampWithinBoundsIsNoop(t *testing.T) {
	s := newService(200, 200)
	s.ScrollVertical(10)

	called := false
	s.SetVerticalHandler(func(int) { called = true })

	s.Reclamp()
	assert.False(t, called)
	assert.Equal(t, 10, s.ScrollTop())
}
