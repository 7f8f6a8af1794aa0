package ui

// Cycle is a wrap-around cursor over n positions.
type Cycle struct {
	Index int
	Len   int
}

// NewCycle returns a cursor at i, normalised into range.
func NewCycle(i, n int) Cycle {
	c := Cycle{Len: n}
	c.Index = c.norm(i)
	return c
}

func (c Cycle) norm(i int) int {
	if c.Len <= 0 {
		return 0
	}
	i %= c.Len
	if i < 0 {
		i += c.Len
	}
	return i
}

// Next is the index after the current one, wrapping to 0.
func (c Cycle) Next() int { return c.norm(c.Index + 1) }

// Prev is the index before the current one, wrapping to the last.
func (c Cycle) Prev() int { return c.norm(c.Index - 1) }

// Position is the 1-based index for "3 / 5" counters.
func (c Cycle) Position() int { return c.Index + 1 }

// Carousel pages items perPage at a time with wrap-around navigation.
type Carousel[T any] struct {
	Cycle
	Items []T
}

// NewCarousel returns the carousel showing slide i.
func NewCarousel[T any](items []T, perPage, i int) Carousel[T] {
	if perPage <= 0 {
		perPage = 1
	}
	pages := (len(items) + perPage - 1) / perPage
	c := Carousel[T]{Cycle: NewCycle(i, pages)}
	if pages > 0 {
		start := c.Index * perPage
		c.Items = items[start:min(start+perPage, len(items))]
	}
	return c
}

// Dots returns one entry per slide, for the indicator row.
func (c Carousel[T]) Dots() []int {
	out := make([]int, c.Len)
	for i := range out {
		out[i] = i
	}
	return out
}

// Gallery is an image lightbox with wrap-around navigation and zoom.
type Gallery[T any] struct {
	Cycle
	Images []T
	Zoom   float64
}

const (
	minZoom  = 1.0
	maxZoom  = 3.0
	zoomStep = 0.5
)

// NewGallery opens the gallery at image i.
func NewGallery[T any](images []T, i int) Gallery[T] {
	return Gallery[T]{Cycle: NewCycle(i, len(images)), Images: images, Zoom: minZoom}
}

// Current returns the selected image.
func (g Gallery[T]) Current() (T, bool) {
	var zero T
	if len(g.Images) == 0 {
		return zero, false
	}
	return g.Images[g.Index], true
}

// ZoomIn increases zoom by one step up to the maximum.
func (g Gallery[T]) ZoomIn() float64 { return min(g.Zoom+zoomStep, maxZoom) }

// ZoomOut decreases zoom by one step down to 1.
func (g Gallery[T]) ZoomOut() float64 { return max(g.Zoom-zoomStep, minZoom) }
