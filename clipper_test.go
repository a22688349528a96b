package gui

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rowHeight = 20

// clipRun records what a clipper asked for while items were laid out as
// rowHeight high dummies.
type clipRun struct {
	ranges [][2]int
	endY   float32
}

func runClipper(ctx *Context, count int, opts ...Option) clipRun {
	return runClipperWith(ctx, count, nil, opts...)
}

func runClipperWith(ctx *Context, count int, beforeStep func(*ListClipper), opts ...Option) clipRun {
	var run clipRun
	var c ListClipper
	c.Begin(ctx, count, opts...)
	if beforeStep != nil {
		beforeStep(&c)
	}
	for c.Step() {
		run.ranges = append(run.ranges, [2]int{c.DisplayStart, c.DisplayEnd})
		for i := c.DisplayStart; i < c.DisplayEnd; i++ {
			ctx.Dummy(Vec2{X: 0, Y: rowHeight})
		}
	}
	run.endY = ctx.GetCursorPos().Y
	return run
}

// clipFrame runs fn in a frame whose root window only shows y in [100, 300).
func clipFrame(h *testHarness, fn func()) {
	h.frame(func() {
		h.ctx.CurrentWindow().ClipRect = Rect{X: 0, Y: 100, W: 800, H: 200}
		fn()
	})
}

func TestListClipperKnownHeight(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	clipFrame(h, func() { run = runClipper(h.ctx, 1000, WithItemHeight(rowHeight)) })

	assert.Equal(t, [][2]int{{5, 15}}, run.ranges)
	assert.Equal(t, float32(1000*rowHeight), run.endY, "cursor ends past the last item")
}

func TestListClipperMeasuresHeight(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	clipFrame(h, func() { run = runClipper(h.ctx, 1000) })

	assert.Equal(t, [][2]int{{0, 1}, {5, 15}}, run.ranges)
	assert.Equal(t, float32(1000*rowHeight), run.endY)
}

func TestListClipperFrozenItems(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	var seekY float32
	clipFrame(h, func() {
		var c ListClipper
		c.Begin(h.ctx, 1000, WithItemHeight(rowHeight), WithFrozenItems(2))
		for c.Step() {
			run.ranges = append(run.ranges, [2]int{c.DisplayStart, c.DisplayEnd})
			if c.DisplayStart == 5 {
				seekY = h.ctx.GetCursorPos().Y
			}
			for i := c.DisplayStart; i < c.DisplayEnd; i++ {
				h.ctx.Dummy(Vec2{Y: rowHeight})
			}
		}
		run.endY = h.ctx.GetCursorPos().Y
	})

	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {5, 15}}, run.ranges)
	assert.Equal(t, float32(100), seekY)
	assert.Equal(t, float32(1000*rowHeight), run.endY)
}

func TestListClipperLogSubmitsEverything(t *testing.T) {
	h := newTestHarness(t)
	h.ctx.LogToBuffer()
	var run clipRun
	clipFrame(h, func() { run = runClipper(h.ctx, 1000, WithItemHeight(rowHeight)) })
	h.ctx.LogFinish()

	assert.Equal(t, [][2]int{{0, 1000}}, run.ranges)
}

func TestListClipperIncludeItemsByIndex(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	clipFrame(h, func() {
		run = runClipperWith(h.ctx, 1000, func(c *ListClipper) {
			c.IncludeItemsByIndex(40, 42)
			c.IncludeItemsByIndex(7, 7)
		}, WithItemHeight(rowHeight))
	})

	assert.Equal(t, [][2]int{{5, 15}, {40, 42}}, run.ranges, "empty ranges are ignored")
	assert.Equal(t, float32(1000*rowHeight), run.endY)
}

func TestListClipperSkipsRangesAlreadySubmitted(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		min  int
		max  int
		want [][2]int
	}{
		{name: "measured item", min: 0, max: 1, want: [][2]int{{0, 1}, {5, 15}}},
		{
			name: "frozen items",
			opts: []Option{WithItemHeight(rowHeight), WithFrozenItems(2)},
			min:  0, max: 2,
			want: [][2]int{{0, 1}, {1, 2}, {5, 15}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			var run clipRun
			clipFrame(h, func() {
				run = runClipperWith(h.ctx, 1000, func(c *ListClipper) {
					c.IncludeItemsByIndex(tt.min, tt.max)
				}, tt.opts...)
			})
			assert.Equal(t, tt.want, run.ranges, "the visible rows still follow")
			assert.Equal(t, float32(1000*rowHeight), run.endY)
			assert.Zero(t, h.ctx.clipperTempDataStacked)
		})
	}
}

func TestListClipperIncludedRangeTouchingVisibleIsFused(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	clipFrame(h, func() {
		run = runClipperWith(h.ctx, 1000, func(c *ListClipper) {
			c.IncludeItemsByIndex(15, 18)
		}, WithItemHeight(rowHeight))
	})

	assert.Equal(t, [][2]int{{5, 18}}, run.ranges)
}

func TestListClipperNavMoveScoring(t *testing.T) {
	tests := []struct {
		name string
		dir  Dir
		want [][2]int
	}{
		{name: "down adds the next item", dir: DirDown, want: [][2]int{{5, 16}}},
		{name: "up adds the previous item", dir: DirUp, want: [][2]int{{4, 15}}},
		{name: "sideways", dir: DirLeft, want: [][2]int{{5, 15}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			var run clipRun
			clipFrame(h, func() {
				h.ctx.SetNavMoveScoring(true, Rect{X: 0, Y: 100, W: 800, H: 200}, tt.dir)
				run = runClipper(h.ctx, 1000, WithItemHeight(rowHeight))
			})
			assert.Equal(t, tt.want, run.ranges)
		})
	}
}

func TestListClipperKeepsNavItem(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	clipFrame(h, func() {
		h.ctx.SetNavID(42, Rect{X: 0, Y: 50 * rowHeight, W: 800, H: rowHeight})
		run = runClipper(h.ctx, 1000, WithItemHeight(rowHeight))
	})

	assert.Equal(t, [][2]int{{5, 15}, {50, 51}}, run.ranges)
}

func TestListClipperPastTheEnd(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	h.frame(func() {
		h.ctx.CurrentWindow().ClipRect = Rect{X: 0, Y: 50000, W: 800, H: 200}
		run = runClipper(h.ctx, 1000, WithItemHeight(rowHeight))
	})

	assert.Equal(t, [][2]int{{999, 1000}}, run.ranges, "a start past the end maps to the last item")
}

func TestListClipperNoItems(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	clipFrame(h, func() { run = runClipper(h.ctx, 0) })

	assert.Empty(t, run.ranges)
	assert.Zero(t, run.endY, "cursor does not move")
	assert.Zero(t, h.ctx.clipperTempDataStacked)
}

func TestListClipperUnbounded(t *testing.T) {
	h := newTestHarness(t)
	var run clipRun
	clipFrame(h, func() { run = runClipper(h.ctx, math.MaxInt, WithItemHeight(rowHeight)) })

	assert.Equal(t, [][2]int{{5, 15}}, run.ranges)
}

func TestListClipperEndIsIdempotent(t *testing.T) {
	h := newTestHarness(t)
	clipFrame(h, func() {
		var c ListClipper
		c.Begin(h.ctx, 100, WithItemHeight(rowHeight))
		require.True(t, c.Step())
		c.End()
		assert.NotPanics(t, c.End)
	})
	assert.Zero(t, h.ctx.clipperTempDataStacked)
}

func TestListClipperNested(t *testing.T) {
	h := newTestHarness(t)
	var outer clipRun
	var inner [][2]int
	clipFrame(h, func() {
		var c ListClipper
		c.Begin(h.ctx, 1000, WithItemHeight(rowHeight))
		for c.Step() {
			outer.ranges = append(outer.ranges, [2]int{c.DisplayStart, c.DisplayEnd})
			for i := c.DisplayStart; i < c.DisplayEnd; i++ {
				assert.Equal(t, 1, h.ctx.clipperTempDataStacked)
				run := runClipper(h.ctx, 1, WithItemHeight(rowHeight))
				inner = append(inner, run.ranges...)
			}
		}
		outer.endY = h.ctx.GetCursorPos().Y
	})

	assert.Equal(t, [][2]int{{5, 15}}, outer.ranges)
	assert.Len(t, inner, 10)
	for _, r := range inner {
		assert.Equal(t, [2]int{0, 1}, r)
	}
	assert.Equal(t, float32(1000*rowHeight), outer.endY)
	assert.Zero(t, h.ctx.clipperTempDataStacked)
}

func TestListClipperReusesTempData(t *testing.T) {
	h := newTestHarness(t)
	for range 3 {
		clipFrame(h, func() { runClipper(h.ctx, 100, WithItemHeight(rowHeight)) })
	}
	assert.Len(t, h.ctx.clipperTempData, 1)
}

func TestListClipperMisuse(t *testing.T) {
	h := newTestHarness(t)
	h.frame(func() {
		var c ListClipper
		assert.Panics(t, func() { c.Step() }, "Step without Begin")

		c.Begin(h.ctx, 10, WithItemHeight(rowHeight))
		assert.Panics(t, func() { c.IncludeItemsByIndex(5, 2) }, "inverted range")
		require.True(t, c.Step())
		assert.Panics(t, func() { c.IncludeItemsByIndex(1, 2) }, "after the first Step")
		c.End()
	})
}

func TestSortAndFuseRanges(t *testing.T) {
	tests := []struct {
		name   string
		in     [][2]int
		offset int
		want   [][2]int
	}{
		{name: "overlapping", in: [][2]int{{20, 25}, {5, 10}, {8, 12}}, want: [][2]int{{5, 12}, {20, 25}}},
		{name: "touching", in: [][2]int{{5, 8}, {0, 5}}, want: [][2]int{{0, 8}}},
		{name: "contained", in: [][2]int{{0, 10}, {2, 3}}, want: [][2]int{{0, 10}}},
		{name: "disjoint", in: [][2]int{{7, 9}, {1, 2}}, want: [][2]int{{1, 2}, {7, 9}}},
		{name: "offset leaves the head alone", in: [][2]int{{0, 1}, {20, 25}, {5, 10}}, offset: 1, want: [][2]int{{0, 1}, {5, 10}, {20, 25}}},
		{name: "single", in: [][2]int{{3, 4}}, want: [][2]int{{3, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := make([]clipperRange, len(tt.in))
			for i, r := range tt.in {
				ranges[i] = clipperRangeFromIndices(r[0], r[1])
			}
			ranges = sortAndFuseRanges(ranges, tt.offset)
			got := make([][2]int, len(ranges))
			for i, r := range ranges {
				got[i] = [2]int{r.Min, r.Max}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
