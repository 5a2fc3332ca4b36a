// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package imagery

import (
	"fmt"
	"strings"
	"time"
)

// Direction of the slide animation in progress.
type Direction string

const (
	DirectionNone  Direction = "none"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

const (
	// transitionDuration matches the slide animation; navigation
	// commands issued inside the window are dropped, not queued.
	transitionDuration = 400 * time.Millisecond

	// maxLoadRetries immediate reloads with a cache-busting parameter
	// before an index is written off. No backoff between them.
	maxLoadRetries = 2
)

// Preloader receives best-effort requests to warm the neighbors of the
// current image. Implementations must not block; failures are ignored.
type Preloader interface {
	Preload(url string)
}

// Carousel tracks navigation state over a filtered image list: the
// current position, the indices known to have failed, and the transition
// window that serializes animations. It is not safe for concurrent use;
// the rendering layer drives it from a single goroutine.
type Carousel struct {
	images  []string
	current int
	failed  map[int]struct{}
	retries map[int]int

	direction      Direction
	transitionEnds time.Time

	preloader Preloader
	now       func() time.Time
}

// NewCarousel creates a carousel over an already-filtered image list.
func NewCarousel(images []string) *Carousel {
	return &Carousel{
		images:  images,
		failed:  make(map[int]struct{}),
		retries: make(map[int]int),
		now:     time.Now,
	}
}

// SetPreloader installs the neighbor preloader. Optional.
func (c *Carousel) SetPreloader(p Preloader) {
	c.preloader = p
}

// Len returns the total number of images, failed ones included.
func (c *Carousel) Len() int {
	return len(c.images)
}

// CurrentIndex returns the position in the full (filtered) list.
func (c *Carousel) CurrentIndex() int {
	return c.current
}

// CurrentURL returns the URL at the current position. ok is false in the
// placeholder state.
func (c *Carousel) CurrentURL() (string, bool) {
	if c.Exhausted() || c.current >= len(c.images) {
		return "", false
	}

	return c.images[c.current], true
}

// validIndices lists the positions not yet marked as failed, in order.
func (c *Carousel) validIndices() []int {
	valid := make([]int, 0, len(c.images))

	for i := range c.images {
		if _, bad := c.failed[i]; !bad {
			valid = append(valid, i)
		}
	}

	return valid
}

// ValidCount returns how many images are still displayable.
func (c *Carousel) ValidCount() int {
	return len(c.validIndices())
}

// Exhausted reports the terminal placeholder state: nothing left to show.
func (c *Carousel) Exhausted() bool {
	return c.ValidCount() == 0
}

// IsTransitioning reports whether a slide animation is in progress.
func (c *Carousel) IsTransitioning() bool {
	return c.now().Before(c.transitionEnds)
}

// Direction returns the direction of the animation in progress, or
// DirectionNone between transitions.
func (c *Carousel) Direction() Direction {
	if !c.IsTransitioning() {
		return DirectionNone
	}

	return c.direction
}

// Next advances to the next valid image, wrapping circularly. Returns
// false when the command is dropped: mid-transition, or with fewer than
// two valid images.
func (c *Carousel) Next() bool {
	return c.step(+1)
}

// Previous moves to the previous valid image, wrapping circularly.
func (c *Carousel) Previous() bool {
	return c.step(-1)
}

func (c *Carousel) step(delta int) bool {
	if c.IsTransitioning() {
		return false
	}

	valid := c.validIndices()
	if len(valid) < 2 {
		return false
	}

	pos := c.validPosition(valid)
	pos = (pos + delta + len(valid)) % len(valid)

	direction := DirectionLeft
	if delta < 0 {
		direction = DirectionRight
	}

	c.moveTo(valid[pos], direction)

	return true
}

// GoTo jumps to an absolute position in the full list. No-op when
// transitioning, out of range, or already there.
func (c *Carousel) GoTo(index int) bool {
	if c.IsTransitioning() || index == c.current || index < 0 || index >= len(c.images) {
		return false
	}

	direction := DirectionLeft
	if index < c.current {
		direction = DirectionRight
	}

	c.moveTo(index, direction)

	return true
}

// validPosition locates the current index inside the valid subsequence.
// When the current image itself has failed, the nearest following valid
// position is used.
func (c *Carousel) validPosition(valid []int) int {
	for pos, idx := range valid {
		if idx >= c.current {
			return pos
		}
	}

	return 0
}

func (c *Carousel) moveTo(index int, direction Direction) {
	c.current = index
	c.direction = direction
	c.transitionEnds = c.now().Add(transitionDuration)

	c.preloadNeighbors()
}

// OnLoadSuccess clears the retry budget for an index that rendered.
func (c *Carousel) OnLoadSuccess(index int) {
	delete(c.retries, index)
}

// OnLoadError records a load failure for an index. While the retry budget
// lasts it returns a cache-busted URL to reload and retry=true. Once the
// budget is spent the index joins the failed set and, if it was current,
// the carousel advances to the next valid index (wrapping to the first);
// an empty valid set leaves the carousel in the placeholder state.
func (c *Carousel) OnLoadError(index int) (retryURL string, retry bool) {
	if index < 0 || index >= len(c.images) {
		return "", false
	}

	if c.retries[index] < maxLoadRetries {
		c.retries[index]++

		return c.cacheBustURL(index), true
	}

	c.failed[index] = struct{}{}

	valid := c.validIndices()
	if len(valid) == 0 {
		return "", false
	}

	if index == c.current {
		c.current = c.nextValidAfter(index, valid)
		c.preloadNeighbors()
	}

	return "", false
}

// nextValidAfter scans forward from index, wrapping to the first valid
// position when nothing valid remains ahead.
func (c *Carousel) nextValidAfter(index int, valid []int) int {
	for _, idx := range valid {
		if idx > index {
			return idx
		}
	}

	return valid[0]
}

// cacheBustURL strips any existing query string and appends retry
// markers, forcing the renderer past its error cache.
func (c *Carousel) cacheBustURL(index int) string {
	base, _, _ := strings.Cut(c.images[index], "?")

	return fmt.Sprintf("%s?retry=%d&t=%d", base, c.retries[index], c.now().UnixMilli())
}

// preloadNeighbors warms the previous and next valid images so the next
// transition doesn't wait on the network. Best effort only.
func (c *Carousel) preloadNeighbors() {
	if c.preloader == nil {
		return
	}

	valid := c.validIndices()
	if len(valid) < 2 {
		return
	}

	pos := c.validPosition(valid)
	prev := valid[(pos-1+len(valid))%len(valid)]
	next := valid[(pos+1)%len(valid)]

	c.preloader.Preload(c.images[prev])

	if next != prev {
		c.preloader.Preload(c.images[next])
	}
}
