package gui

import "math"

// ListClipper virtualizes large lists of evenly spaced items: it tells the
// caller which item ranges are visible and moves the layout cursor over the
// ones that are skipped, so only a screenful of items is ever submitted.
//
// Usage:
//
//	var clipper gui.ListClipper
//	clipper.Begin(ctx, len(rows))
//	for clipper.Step() {
//	    for i := clipper.DisplayStart; i < clipper.DisplayEnd; i++ {
//	        ctx.Text(rows[i])
//	    }
//	}
//
// The first Step submits one item to measure the item height unless
// WithItemHeight is given. Step calls End when it returns false; calling End
// again is harmless. Pass math.MaxInt as the count for an unbounded list that
// the caller stops on its own.
type ListClipper struct {
	DisplayStart int // First item to submit this step
	DisplayEnd   int // End of the items to submit (exclusive)
	ItemsCount   int
	ItemsHeight  float32 // Known or measured item height, <= 0 until measured
	StartPosY    float32 // Cursor Y at Begin, or after the frozen items

	ctx      *Context
	tempData *listClipperData
}

// clipperRange is a range of items to submit. Ranges built from positions
// are converted to indices once the item height is known.
type clipperRange struct {
	Min, Max int

	PosToIndexConvert bool
	PosMin, PosMax    float32
	OffMin, OffMax    int // Extra items added after conversion
}

func clipperRangeFromIndices(min, max int) clipperRange {
	return clipperRange{Min: min, Max: max}
}

func clipperRangeFromPositions(y1, y2 float32, offMin, offMax int) clipperRange {
	return clipperRange{PosToIndexConvert: true, PosMin: y1, PosMax: y2, OffMin: offMin, OffMax: offMax}
}

// listClipperData is the per-nesting-level scratch state of a clipper. The
// context keeps these in a stack and reuses them across frames.
type listClipperData struct {
	clipper      *ListClipper
	stepNo       int
	itemsFrozen  int
	frozenTarget int
	ranges       []clipperRange
}

func (d *listClipperData) reset(c *ListClipper, frozen int) {
	d.clipper = c
	d.stepNo = 0
	d.itemsFrozen = 0
	d.frozenTarget = frozen
	d.ranges = d.ranges[:0]
}

// Begin starts a clipping pass over itemsCount items at the layout cursor.
func (c *ListClipper) Begin(ctx *Context, itemsCount int, opts ...Option) {
	assertf(c.tempData == nil, "ListClipper.Begin: previous pass was not ended")
	o := applyOptions(opts)
	w := ctx.CurrentWindow()

	c.ctx = ctx
	c.StartPosY = w.DC.CursorPos.Y
	c.ItemsHeight = GetOpt(o, OptItemHeight)
	c.ItemsCount = itemsCount
	c.DisplayStart = -1
	c.DisplayEnd = 0

	// Acquire a temp data slot for this nesting level.
	ctx.clipperTempDataStacked++
	for len(ctx.clipperTempData) < ctx.clipperTempDataStacked {
		ctx.clipperTempData = append(ctx.clipperTempData, &listClipperData{})
	}
	data := ctx.clipperTempData[ctx.clipperTempDataStacked-1]
	data.reset(c, max(0, GetOpt(o, OptFrozenItems)))
	c.tempData = data
}

// End finishes the pass, moving the layout cursor past the last item.
// Step calls it automatically when it returns false.
func (c *ListClipper) End() {
	data := c.tempData
	if data == nil {
		return
	}
	ctx := c.ctx
	// Seek to the end rather than asserting the caller got there.
	if c.ItemsCount >= 0 && c.ItemsCount < math.MaxInt && c.DisplayStart >= 0 {
		c.seekCursorForItem(c.ItemsCount)
	}
	c.ItemsCount = -1

	assertf(ctx.clipperTempDataStacked > 0, "ListClipper.End: no clipper on the stack")
	assertf(data.clipper == c, "ListClipper.End: temp data belongs to another clipper")
	data.stepNo = len(data.ranges)
	ctx.clipperTempDataStacked--
	if ctx.clipperTempDataStacked > 0 {
		parent := ctx.clipperTempData[ctx.clipperTempDataStacked-1]
		parent.clipper.tempData = parent
	}
	c.tempData = nil
}

// IncludeItemsByIndex makes sure items [itemBegin, itemEnd) are submitted,
// e.g. a selected row that navigation needs to see. Call it before the first
// Step.
func (c *ListClipper) IncludeItemsByIndex(itemBegin, itemEnd int) {
	data := c.tempData
	assertf(data != nil, "ListClipper.IncludeItemsByIndex called before Begin")
	assertf(c.DisplayStart < 0, "ListClipper.IncludeItemsByIndex must be called before Step")
	assertf(itemBegin <= itemEnd, "ListClipper.IncludeItemsByIndex: inverted range [%d, %d)", itemBegin, itemEnd)
	if itemBegin < itemEnd {
		data.ranges = append(data.ranges, clipperRangeFromIndices(itemBegin, itemEnd))
	}
}

// Step advances to the next range to submit. It returns false once all
// ranges were emitted.
func (c *ListClipper) Step() bool {
	assertf(c.tempData != nil, "ListClipper.Step called without Begin")
	ret := c.stepInternal()
	if ret && c.DisplayStart == c.DisplayEnd {
		ret = false
	}
	if !ret {
		c.End()
	}
	return ret
}

func (c *ListClipper) stepInternal() bool {
	ctx := c.ctx
	w := ctx.CurrentWindow()
	data := c.tempData

	if c.ItemsCount == 0 || w.SkipItems {
		return false
	}

	// Frozen items are submitted one by one, unclipped.
	if data.stepNo == 0 && data.itemsFrozen < min(data.frozenTarget, c.ItemsCount) {
		c.DisplayStart = data.itemsFrozen
		c.DisplayEnd = data.itemsFrozen + 1
		data.itemsFrozen++
		return true
	}

	calcClipping := false
	if data.stepNo == 0 {
		c.StartPosY = w.DC.CursorPos.Y
		if c.ItemsHeight <= 0 {
			// Submit the first item so its height can be measured.
			data.ranges = append([]clipperRange{clipperRangeFromIndices(data.itemsFrozen, data.itemsFrozen+1)}, data.ranges...)
			c.DisplayStart = max(data.ranges[0].Min, data.itemsFrozen)
			c.DisplayEnd = min(data.ranges[0].Max, c.ItemsCount)
			data.stepNo = 1
			return true
		}
		calcClipping = true
	}

	if c.ItemsHeight <= 0 {
		assertf(data.stepNo == 1, "ListClipper: item height unknown after step %d", data.stepNo)
		c.ItemsHeight = (w.DC.CursorPos.Y - c.StartPosY) / float32(c.DisplayEnd-c.DisplayStart)
		assertf(c.ItemsHeight > 0, "ListClipper: unable to measure item height, the first item did not move the cursor")
		calcClipping = true
	}

	alreadySubmitted := c.DisplayEnd
	if calcClipping {
		if ctx.logEnabled {
			// Capture everything.
			data.ranges = append(data.ranges, clipperRangeFromIndices(0, c.ItemsCount))
		} else {
			if ctx.Nav.MoveScoringItems {
				r := ctx.Nav.ScoringRect
				data.ranges = append(data.ranges, clipperRangeFromPositions(r.Y, r.Y+r.H, 0, 0))
			}
			if ctx.navID != 0 && w.NavLastID == ctx.navID {
				r := w.NavRect
				data.ranges = append(data.ranges, clipperRangeFromPositions(r.Y, r.Y+r.H, 0, 0))
			}
			offMin, offMax := 0, 0
			if ctx.Nav.MoveScoringItems && ctx.Nav.MoveDir == DirUp {
				offMin = -1
			}
			if ctx.Nav.MoveScoringItems && ctx.Nav.MoveDir == DirDown {
				offMax = 1
			}
			clip := w.ClipRect
			data.ranges = append(data.ranges, clipperRangeFromPositions(clip.Y, clip.Y+clip.H, offMin, offMax))
		}

		// A start position past the last item maps to the last item, which
		// keeps wrapping navigation working.
		cursorY := w.DC.CursorPos.Y
		for i := range data.ranges {
			r := &data.ranges[i]
			if !r.PosToIndexConvert {
				continue
			}
			m1 := alreadySubmitted + int(math.Floor(float64((r.PosMin-cursorY)/c.ItemsHeight))) + r.OffMin
			m2 := alreadySubmitted + int(math.Ceil(float64((r.PosMax-cursorY)/c.ItemsHeight))) + r.OffMax
			r.Min = clampInt(m1, alreadySubmitted, c.ItemsCount-1)
			r.Max = clampInt(m2, r.Min+1, c.ItemsCount)
			r.PosToIndexConvert = false
		}
		data.ranges = sortAndFuseRanges(data.ranges, data.stepNo)
		guiLogger.Debug("clipper ranges", "items", c.ItemsCount, "height", c.ItemsHeight, "ranges", len(data.ranges)-data.stepNo)
	}

	// A range already covered by earlier steps clamps to nothing and is skipped.
	for data.stepNo < len(data.ranges) {
		r := data.ranges[data.stepNo]
		data.stepNo++
		start := max(r.Min, alreadySubmitted)
		end := min(r.Max, c.ItemsCount)
		if start >= end {
			continue
		}
		c.DisplayStart, c.DisplayEnd = start, end
		if start > alreadySubmitted {
			c.seekCursorForItem(start)
		}
		return true
	}

	// Past the last range: move to the end of the list.
	if c.ItemsCount < math.MaxInt {
		c.seekCursorForItem(c.ItemsCount)
	}
	c.ItemsCount = -1
	return false
}

// seekCursorForItem moves the layout cursor to where item n would start.
func (c *ListClipper) seekCursorForItem(n int) {
	// StartPosY is measured after the frozen items.
	posY := c.StartPosY + float32(n-c.tempData.itemsFrozen)*c.ItemsHeight
	c.ctx.seekCursorAndSetupPrevLine(posY, c.ItemsHeight)
}

// seekCursorAndSetupPrevLine jumps the cursor to posY as if a line of
// lineHeight had just been laid out above it.
func (ctx *Context) seekCursorAndSetupPrevLine(posY, lineHeight float32) {
	w := ctx.CurrentWindow()
	spacing := ctx.style.ItemSpacing.Y
	w.DC.CursorPos.Y = posY
	w.DC.CursorMaxPos.Y = maxf(w.DC.CursorMaxPos.Y, posY-spacing)
	w.DC.CursorPosPrevLine.Y = posY - lineHeight
	w.DC.PrevLineSize.Y = lineHeight - spacing
}

// sortAndFuseRanges sorts ranges[offset:] by Min and merges ranges that
// overlap or touch. There are only a handful, so a bubble sort does.
func sortAndFuseRanges(ranges []clipperRange, offset int) []clipperRange {
	if len(ranges)-offset <= 1 {
		return ranges
	}
	for sortEnd := len(ranges) - offset - 1; sortEnd > 0; sortEnd-- {
		for i := offset; i < sortEnd+offset; i++ {
			if ranges[i].Min > ranges[i+1].Min {
				ranges[i], ranges[i+1] = ranges[i+1], ranges[i]
			}
		}
	}

	for i := 1 + offset; i < len(ranges); {
		assertf(!ranges[i].PosToIndexConvert && !ranges[i-1].PosToIndexConvert, "sortAndFuseRanges: unconverted range")
		if ranges[i-1].Max < ranges[i].Min {
			i++
			continue
		}
		ranges[i-1].Min = min(ranges[i-1].Min, ranges[i].Min)
		ranges[i-1].Max = max(ranges[i-1].Max, ranges[i].Max)
		ranges = append(ranges[:i], ranges[i+1:]...)
	}
	return ranges
}
