// Package carousel implements the wrap-around index used by the testimonial slider.
package carousel

// Carousel tracks the active slide among count slides.
// A carousel with no slides ignores every move.
type Carousel struct {
	count  int
	active int
}

// New creates a carousel positioned at start. An out-of-range start is ignored.
func New(count, start int) *Carousel {
	if count < 0 {
		count = 0
	}
	c := &Carousel{count: count}
	c.JumpTo(start)
	return c
}

// Count returns the number of slides
func (c *Carousel) Count() int {
	return c.count
}

// Active returns the active slide index
func (c *Carousel) Active() int {
	return c.active
}

// Next advances one slide, wrapping to the first
func (c *Carousel) Next() {
	if c.count == 0 {
		return
	}
	c.active = (c.active + 1) % c.count
}

// Prev steps back one slide, wrapping to the last
func (c *Carousel) Prev() {
	if c.count == 0 {
		return
	}
	c.active = (c.active - 1 + c.count) % c.count
}

// JumpTo selects slide i. Out-of-range indexes are ignored.
func (c *Carousel) JumpTo(i int) {
	if i < 0 || i >= c.count {
		return
	}
	c.active = i
}

// NextIndex returns the index Next would select without moving
func (c *Carousel) NextIndex() int {
	n := *c
	n.Next()
	return n.active
}

// PrevIndex returns the index Prev would select without moving
func (c *Carousel) PrevIndex() int {
	p := *c
	p.Prev()
	return p.active
}
