package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSidebarController_Clamp(t *testing.T) {
	const viewport = 1920
	tests := []struct {
		name     string
		pointerX int
		want     int
	}{
		{"far left of viewport", viewport - 10000, MaxSidebarWidth},
		{"far right of viewport", viewport + 10000, MinSidebarWidth},
		{"in range", viewport - 400, 400},
		{"exact min", viewport - MinSidebarWidth, MinSidebarWidth},
		{"exact max", viewport - MaxSidebarWidth, MaxSidebarWidth},
		{"just under min", viewport - MinSidebarWidth + 1, MinSidebarWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLayout(t)
			c := NewSidebarController(l)
			c.Press()
			c.Move(tt.pointerX, viewport)
			c.Release()
			assert.Equal(t, tt.want, l.SidebarWidth())
		})
	}
}

func TestSidebarController_DeltaSequenceStaysInBounds(t *testing.T) {
	l := newTestLayout(t)
	c := NewSidebarController(l)
	c.Press()
	x := 1000
	for _, d := range []int{-5000, 300, 17, 9000, -120, -1, 4400, -8800, 60} {
		x += d
		c.Move(x, 1280)
		w := l.SidebarWidth()
		assert.GreaterOrEqual(t, w, MinSidebarWidth)
		assert.LessOrEqual(t, w, MaxSidebarWidth)
	}
	c.Release()
}

func TestSidebarController_IgnoresMoveWhenIdle(t *testing.T) {
	l := newTestLayout(t)
	c := NewSidebarController(l)

	c.Move(0, 1000)
	assert.Equal(t, DefaultSidebarWidth, l.SidebarWidth())

	c.Press()
	assert.True(t, c.Resizing())
	c.Move(1000-500, 1000)
	c.Release()
	assert.False(t, c.Resizing())

	// Events arriving after release must not mutate the width.
	c.Move(1000-300, 1000)
	assert.Equal(t, 500, l.SidebarWidth())
}

func TestSidebarController_CollapseDoesNotResetWidth(t *testing.T) {
	l := newTestLayout(t)
	c := NewSidebarController(l)
	c.Press()
	c.Move(1000-510, 1000)
	c.Release()

	l.ToggleSidebar()
	l.ToggleSidebar()
	assert.Equal(t, 510, l.SidebarWidth())
}
