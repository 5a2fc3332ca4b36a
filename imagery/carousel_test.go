// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package imagery

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestCarousel(images ...string) (*Carousel, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)}

	c := NewCarousel(images)
	c.now = clock.Now

	return c, clock
}

func TestCarouselNextWrapsCircularly(t *testing.T) {
	c, clock := newTestCarousel("a", "b", "c")

	positions := []int{1, 2, 0, 1}
	for _, want := range positions {
		if !c.Next() {
			t.Fatalf("Next() dropped at position %d", c.CurrentIndex())
		}

		if c.CurrentIndex() != want {
			t.Fatalf("CurrentIndex() = %d, want %d", c.CurrentIndex(), want)
		}

		clock.Advance(transitionDuration)
	}
}

func TestCarouselPreviousWrapsCircularly(t *testing.T) {
	c, clock := newTestCarousel("a", "b", "c")

	positions := []int{2, 1, 0, 2}
	for _, want := range positions {
		if !c.Previous() {
			t.Fatalf("Previous() dropped at position %d", c.CurrentIndex())
		}

		if c.CurrentIndex() != want {
			t.Fatalf("CurrentIndex() = %d, want %d", c.CurrentIndex(), want)
		}

		clock.Advance(transitionDuration)
	}
}

func TestCarouselSingleImageDoesNotNavigate(t *testing.T) {
	c, _ := newTestCarousel("only")

	if c.Next() {
		t.Error("Next() should be dropped with one image")
	}

	if c.Previous() {
		t.Error("Previous() should be dropped with one image")
	}

	if url, ok := c.CurrentURL(); !ok || url != "only" {
		t.Errorf("CurrentURL() = %q, %v; want the single image", url, ok)
	}
}

func TestCarouselTransitionGuard(t *testing.T) {
	c, clock := newTestCarousel("a", "b", "c")

	if !c.Next() {
		t.Fatal("first Next() should be accepted")
	}

	if !c.IsTransitioning() {
		t.Error("IsTransitioning() should be true right after navigating")
	}

	if c.Direction() != DirectionLeft {
		t.Errorf("Direction() = %v, want left", c.Direction())
	}

	// Commands inside the animation window are dropped, not queued
	if c.Next() {
		t.Error("Next() during transition should be dropped")
	}

	if c.GoTo(2) {
		t.Error("GoTo() during transition should be dropped")
	}

	if c.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", c.CurrentIndex())
	}

	clock.Advance(transitionDuration)

	if c.IsTransitioning() {
		t.Error("IsTransitioning() should clear after the animation window")
	}

	if c.Direction() != DirectionNone {
		t.Errorf("Direction() = %v, want none between transitions", c.Direction())
	}

	if !c.Next() {
		t.Error("Next() should be accepted again after the window")
	}
}

func TestCarouselGoTo(t *testing.T) {
	c, clock := newTestCarousel("a", "b", "c", "d")

	if !c.GoTo(3) {
		t.Fatal("GoTo(3) should be accepted")
	}

	if c.Direction() != DirectionLeft {
		t.Errorf("Direction() = %v, want left for a forward jump", c.Direction())
	}

	clock.Advance(transitionDuration)

	if !c.GoTo(1) {
		t.Fatal("GoTo(1) should be accepted")
	}

	if c.Direction() != DirectionRight {
		t.Errorf("Direction() = %v, want right for a backward jump", c.Direction())
	}

	clock.Advance(transitionDuration)

	if c.GoTo(1) {
		t.Error("GoTo() to the current index should be a no-op")
	}

	if c.GoTo(-1) || c.GoTo(4) {
		t.Error("GoTo() out of range should be a no-op")
	}
}

func TestCarouselRetryThenFail(t *testing.T) {
	c, clock := newTestCarousel("https://cdn.example.com/a.jpg?w=800", "https://cdn.example.com/b.jpg")

	// Two immediate retries with a cache-busting query string
	url, retry := c.OnLoadError(0)
	if !retry {
		t.Fatal("first OnLoadError() should grant a retry")
	}

	want := fmt.Sprintf("https://cdn.example.com/a.jpg?retry=1&t=%d", clock.t.UnixMilli())
	if url != want {
		t.Errorf("retry URL = %q, want %q", url, want)
	}

	url, retry = c.OnLoadError(0)
	if !retry {
		t.Fatal("second OnLoadError() should grant a retry")
	}

	want = fmt.Sprintf("https://cdn.example.com/a.jpg?retry=2&t=%d", clock.t.UnixMilli())
	if url != want {
		t.Errorf("retry URL = %q, want %q", url, want)
	}

	// Budget spent: the index fails and the carousel moves off it
	if _, retry = c.OnLoadError(0); retry {
		t.Error("third OnLoadError() should not grant a retry")
	}

	if c.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 after the current image failed", c.CurrentIndex())
	}

	if c.ValidCount() != 1 {
		t.Errorf("ValidCount() = %d, want 1", c.ValidCount())
	}
}

func TestCarouselLoadSuccessResetsRetryBudget(t *testing.T) {
	c, _ := newTestCarousel("a", "b")

	if _, retry := c.OnLoadError(0); !retry {
		t.Fatal("first OnLoadError() should grant a retry")
	}

	c.OnLoadSuccess(0)

	// A fresh failure starts the budget over
	if _, retry := c.OnLoadError(0); !retry {
		t.Fatal("OnLoadError() after success should grant a retry")
	}

	if got := c.retries[0]; got != 1 {
		t.Errorf("retry count = %d, want 1 after reset", got)
	}
}

func TestCarouselSkipsFailedIndices(t *testing.T) {
	c, clock := newTestCarousel("a", "b", "c")

	// Exhaust index 1's budget so it joins the failed set
	for i := 0; i < 3; i++ {
		c.OnLoadError(1)
	}

	if !c.Next() {
		t.Fatal("Next() should be accepted")
	}

	if c.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2 (skipping the failed index)", c.CurrentIndex())
	}

	clock.Advance(transitionDuration)

	if !c.Next() {
		t.Fatal("Next() should wrap")
	}

	if c.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", c.CurrentIndex())
	}
}

func TestCarouselExhaustion(t *testing.T) {
	c, _ := newTestCarousel("only")

	for i := 0; i < 3; i++ {
		c.OnLoadError(0)
	}

	if !c.Exhausted() {
		t.Error("Exhausted() should be true once every image failed")
	}

	if _, ok := c.CurrentURL(); ok {
		t.Error("CurrentURL() should report the placeholder state")
	}

	if c.Next() || c.Previous() {
		t.Error("navigation should be dropped in the placeholder state")
	}
}

func TestCarouselOnLoadErrorOutOfRange(t *testing.T) {
	c, _ := newTestCarousel("a")

	if _, retry := c.OnLoadError(-1); retry {
		t.Error("OnLoadError(-1) should not grant a retry")
	}

	if _, retry := c.OnLoadError(5); retry {
		t.Error("OnLoadError(5) should not grant a retry")
	}
}

type recordingPreloader struct {
	urls []string
}

func (p *recordingPreloader) Preload(url string) {
	p.urls = append(p.urls, url)
}

func TestCarouselPreloadsNeighbors(t *testing.T) {
	c, _ := newTestCarousel("a", "b", "c", "d")

	preloader := &recordingPreloader{}
	c.SetPreloader(preloader)

	if !c.Next() {
		t.Fatal("Next() should be accepted")
	}

	// Now at index 1: neighbors are 0 and 2
	if diff := cmp.Diff([]string{"a", "c"}, preloader.urls); diff != "" {
		t.Errorf("preloaded URLs mismatch (-want +got):\n%s", diff)
	}
}

func TestCarouselPreloadSkipsFailedNeighbors(t *testing.T) {
	c, _ := newTestCarousel("a", "b", "c", "d")

	for i := 0; i < 3; i++ {
		c.OnLoadError(2)
	}

	preloader := &recordingPreloader{}
	c.SetPreloader(preloader)

	if !c.Next() {
		t.Fatal("Next() should be accepted")
	}

	// Now at index 1: index 2 failed, so the next valid neighbor is 3
	if diff := cmp.Diff([]string{"a", "d"}, preloader.urls); diff != "" {
		t.Errorf("preloaded URLs mismatch (-want +got):\n%s", diff)
	}
}
