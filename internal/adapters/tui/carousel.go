package tui

// Terminal widths at which the carousel shows more than one card.
const (
	wideWidth   = 120
	mediumWidth = 72
)

// visibleSlides returns how many cards fit at the given terminal width.
func visibleSlides(width int) int {
	switch {
	case width >= wideWidth:
		return 3
	case width >= mediumWidth:
		return 2
	default:
		return 1
	}
}

// carousel is an infinitely wrapping window over a record list. offset is the
// index of the leftmost card.
type carousel struct {
	offset int
}

func (c *carousel) next(length int) {
	if length == 0 {
		return
	}

	c.offset = (c.offset + 1) % length
}

func (c *carousel) prev(length int) {
	if length == 0 {
		return
	}

	c.offset = (c.offset - 1 + length) % length
}

// window returns the record indices of the n visible cards, wrapping past the
// end. It never returns an index twice.
func (c carousel) window(length, n int) []int {
	n = min(n, length)

	out := make([]int, n)
	for i := range out {
		out[i] = (c.offset + i) % length
	}

	return out
}
