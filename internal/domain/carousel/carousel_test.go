package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarousel_Wrap(t *testing.T) {
	c := New(3, 2)
	c.Next()
	assert.Equal(t, 0, c.Active())

	c.Prev()
	assert.Equal(t, 2, c.Active())
}

func TestCarousel_EmptyIsNoop(t *testing.T) {
	c := New(0, 0)
	assert.NotPanics(t, func() {
		c.Next()
		c.Prev()
		c.JumpTo(0)
		c.JumpTo(4)
	})
	assert.Equal(t, 0, c.Active())
	assert.Equal(t, 0, c.NextIndex())
	assert.Equal(t, 0, c.PrevIndex())
}

func TestCarousel_JumpTo(t *testing.T) {
	c := New(4, 0)

	c.JumpTo(3)
	assert.Equal(t, 3, c.Active())

	c.JumpTo(4)
	assert.Equal(t, 3, c.Active())

	c.JumpTo(-1)
	assert.Equal(t, 3, c.Active())
}

func TestCarousel_StartOutOfRange(t *testing.T) {
	assert.Equal(t, 0, New(3, 7).Active())
	assert.Equal(t, 0, New(-2, 1).Count())
}

func TestCarousel_PeekDoesNotMove(t *testing.T) {
	c := New(3, 1)
	assert.Equal(t, 2, c.NextIndex())
	assert.Equal(t, 0, c.PrevIndex())
	assert.Equal(t, 1, c.Active())
}
