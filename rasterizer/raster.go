// Package rasterizer implements the analytical anti-aliased scanline
// rasterizer: it walks a scaled Outline and produces 8-bpp coverage into a
// caller-supplied Bitmap, using the FreeType-style cell (cover, area)
// accumulation algorithm.
package rasterizer

import (
	"sort"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
)

const (
	pixelBits = 8
	onePixel  = 1 << pixelBits // 256: one pixel in internal sub-pixel units

	// maxBands bounds the number of bands a single render splits its
	// y-range into, mirroring the reference's fixed-size band table.
	maxBands = 39
	// minBandSize is the floor band_size never shrinks below.
	minBandSize = 16
	// defaultPoolSize is the nominal pool budget used to compute the
	// starting band size (DEFAULT_POOL_SIZE in the reference header).
	defaultPoolSize = 16384
	// cellSize approximates the reference's Cell struct footprint (an x,
	// a cover and an area field) for turning a byte pool budget into a
	// cell capacity.
	cellSize = 12
)

func upscale(v int32) int32 { return v << 2 } // 26.6 -> 24.8 (8 fractional bits)

func trunc(v int32) int32 { return v >> pixelBits }

// cellRec is one (pixel-x, scanline) accumulation cell: cover is the signed
// sum of vertical sub-pixel distance an edge spends in this column at this
// scanline, area is the sum of (fx1+fx2)*Δy across every edge that crosses
// it.
type cellRec struct {
	x     int32
	cover int32
	area  int32
}

// Span is one run of constant coverage on a single scanline, as passed to
// a SpanFunc.
type Span struct {
	X        int16
	Len      uint16
	Coverage byte
}

// SpanFunc receives the spans produced for one scanline (y, measured from
// the top of the target bitmap). The default renderer writes spans
// directly into a gbtype.Bitmap; a caller may supply its own to collect
// spans instead.
type SpanFunc func(y int, spans []Span)

// Rasterizer is a reusable render context. Its pool size budget governs
// how many cells a single band may accumulate before the band is split and
// retried. The band size persists across renders on the same Rasterizer:
// like the reference implementation, a render that needed more than 8
// splits halves it (down to minBandSize), and a render whose row span
// would need more than maxBands bands raises it.
type Rasterizer struct {
	poolSize int
	bandSize int
}

// New creates a Rasterizer with the given cell-pool budget in bytes. A
// poolSize of 0 uses defaultPoolSize.
func New(poolSize int) *Rasterizer {
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return &Rasterizer{poolSize: poolSize}
}

// Render rasterizes outline into target, calling span for every row of
// coverage produced. If span is nil, spans are written directly into
// target's buffer as 8-bpp coverage (target.BitCount is ignored: the
// rasterizer always produces one coverage byte per pixel).
func (r *Rasterizer) Render(outline *gbtype.Outline, target *gbtype.Bitmap, span SpanFunc) error {
	if outline == nil || outline.NPoints() == 0 {
		return &gbtype.InvalidOutlineError{Reason: "outline has no points"}
	}
	if err := validateContours(outline); err != nil {
		return err
	}
	if span == nil {
		span = bitmapSpanFunc(target)
	}

	heightSub := int32(target.Height) << pixelBits

	minX, minY, maxX, maxY := int32(1<<30), int32(1<<30), int32(-1<<30), int32(-1<<30)
	for _, p := range outline.Points {
		x, y := upscale(int32(p.X)), heightSub-upscale(int32(p.Y))
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	minEx := trunc(minX)
	maxEx := trunc(maxX) + 1
	minEy := trunc(minY)
	maxEy := trunc(maxY) + 1
	if minEx < 0 {
		minEx = 0
	}
	if minEy < 0 {
		minEy = 0
	}
	if maxEx > int32(target.Width) {
		maxEx = int32(target.Width)
	}
	if maxEy > int32(target.Height) {
		maxEy = int32(target.Height)
	}
	if minEx >= maxEx || minEy >= maxEy {
		return nil // outline lies entirely outside the target bitmap
	}

	boost := computeBoost(minEx, maxEx, minEy, maxEy)

	if r.bandSize == 0 {
		r.bandSize = r.poolSize / 128
		if r.bandSize < minBandSize {
			r.bandSize = minBandSize
		}
	}
	maxCells := r.poolSize / cellSize
	if maxCells < 2 {
		maxCells = 2
	}

	totalRows := maxEy - minEy
	if totalRows/int32(r.bandSize) > maxBands {
		r.bandSize = int((totalRows + maxBands - 1) / maxBands)
		if r.bandSize < minBandSize {
			r.bandSize = minBandSize
		}
	}

	shoots := 0
	by0 := minEy
	for by0 < maxEy {
		by1 := by0 + int32(r.bandSize)
		if by1 > maxEy {
			by1 = maxEy
		}
		used, err := r.renderBand(outline, heightSub, minEx, maxEx, by0, by1, maxCells, boost, &shoots, span, target)
		if err != nil {
			return err
		}
		by0 = used
	}

	if shoots > 8 && r.bandSize > minBandSize {
		r.bandSize /= 2
		if r.bandSize < minBandSize {
			r.bandSize = minBandSize
		}
	}
	return nil
}

// renderBand renders the scanlines [by0, by1) and returns the next unrendered
// row. On a pool overflow it halves the remaining band and recurses,
// counting each split in *shoots; a single-scanline band that still
// overflows is a hard failure.
func (r *Rasterizer) renderBand(o *gbtype.Outline, heightSub, minEx, maxEx, by0, by1 int32, maxCells, boost int, shoots *int, span SpanFunc, target *gbtype.Bitmap) (int32, error) {
	rows := make([][]cellRec, by1-by0)
	preCover := make([]int32, by1-by0)
	numCells := 0
	overflowed := false

	record := func(row, x int32, cover, area int32) {
		if overflowed || row < 0 || row >= int32(len(rows)) {
			return
		}
		// A column left of the visible range still contributes its cover
		// to everything swept to its right, but never appears as a cell
		// of its own. A column at or past the right edge is never swept
		// and can be dropped outright.
		if x < minEx {
			preCover[row] += cover
			return
		}
		if x >= maxEx {
			return
		}
		bucket := &rows[row]
		for i := range *bucket {
			if (*bucket)[i].x == x {
				(*bucket)[i].cover += cover
				(*bucket)[i].area += area
				return
			}
			if (*bucket)[i].x > x {
				if numCells >= maxCells {
					overflowed = true
					return
				}
				*bucket = append(*bucket, cellRec{})
				copy((*bucket)[i+1:], (*bucket)[i:])
				(*bucket)[i] = cellRec{x: x, cover: cover, area: area}
				numCells++
				return
			}
		}
		if numCells >= maxCells {
			overflowed = true
			return
		}
		*bucket = append(*bucket, cellRec{x: x, cover: cover, area: area})
		numCells++
	}

	d := &decomposer{
		heightSub: heightSub,
		boost:     boost,
		emit: func(x0, y0, x1, y1 int32) {
			renderLine(record, by0*onePixel, by1*onePixel, x0, y0, x1, y1)
		},
	}
	if err := d.walk(o); err != nil {
		return by0, err
	}

	if overflowed {
		if by1-by0 <= 1 {
			return by0, &gbtype.PoolOverflowError{BandSize: int(by1 - by0)}
		}
		*shoots++
		mid := by0 + (by1-by0)/2
		if mid <= by0 {
			mid = by0 + 1
		}
		next, err := r.renderBand(o, heightSub, minEx, maxEx, by0, mid, maxCells, boost, shoots, span, target)
		if err != nil {
			return by0, err
		}
		return r.renderBand(o, heightSub, minEx, maxEx, next, by1, maxCells, boost, shoots, span, target)
	}

	sweepBand(rows, preCover, by0, minEx, maxEx, span)
	return by1, nil
}

func computeBoost(minEx, maxEx, minEy, maxEy int32) int {
	countEx := maxEx - minEx
	countEy := maxEy - minEy
	boost := 0
	if countEx > 24 || countEy > 24 {
		boost++
	}
	if countEx > 120 || countEy > 120 {
		boost++
	}
	return boost
}

// sweepBand converts each row's sparse cell list into coverage spans.
// preCover[i] carries the summed cover of every edge that fell left of
// minEx, seeding the running total before the first visible cell.
func sweepBand(rows [][]cellRec, preCover []int32, by0, minEx, maxEx int32, span SpanFunc) {
	for i, row := range rows {
		if len(row) == 0 && preCover[i] == 0 {
			continue
		}
		sort.Slice(row, func(a, b int) bool { return row[a].x < row[b].x })

		var spans []Span
		cover := preCover[i]
		x := minEx
		for _, c := range row {
			if c.x > x {
				run := coverageByte(cover * 2 * onePixel)
				if run != 0 {
					spans = appendSpan(spans, int16(x), uint16(c.x-x), run)
				}
			}
			cover += c.cover
			cellCoverage := cover*2*onePixel - c.area
			spans = appendSpan(spans, int16(c.x), 1, coverageByte(cellCoverage))
			x = c.x + 1
		}
		if x < maxEx && cover != 0 {
			run := coverageByte(cover * 2 * onePixel)
			if run != 0 {
				spans = appendSpan(spans, int16(x), uint16(maxEx-x), run)
			}
		}
		if len(spans) > 0 {
			span(int(by0)+i, spans)
		}
	}
}

func appendSpan(spans []Span, x int16, length uint16, coverage byte) []Span {
	if n := len(spans); n > 0 {
		last := &spans[n-1]
		if int32(last.X)+int32(last.Len) == int32(x) && last.Coverage == coverage {
			last.Len += length
			return spans
		}
	}
	return append(spans, Span{X: x, Len: length, Coverage: coverage})
}

// coverageByte converts internal coverage units (2*ONE_PIXEL^2 full scale)
// to an 8-bit alpha value via the reference's arithmetic shift, then
// clamps. Taking the absolute value makes contour winding direction
// irrelevant to the result.
func coverageByte(coverage int32) byte {
	if coverage < 0 {
		coverage = -coverage
	}
	v := coverage >> (pixelBits*2 + 1 - 8)
	if v > 255 {
		v = 255
	}
	return byte(v)
}

func bitmapSpanFunc(target *gbtype.Bitmap) SpanFunc {
	return func(y int, spans []Span) {
		if y < 0 || y >= target.Height {
			return
		}
		row := y * target.Pitch
		for _, s := range spans {
			start := row + int(s.X)
			end := start + int(s.Len)
			if start < row {
				start = row
			}
			if end > row+target.Width {
				end = row + target.Width
			}
			for i := start; i < end; i++ {
				target.Buffer[i] = s.Coverage
			}
		}
	}
}

// divModFloor returns the floor quotient and the non-negative-when-d>0
// remainder of p/d: spec.md §4.7's "p/dy integer divide with remainder
// carry" used throughout renderLine instead of a floating-point slope.
func divModFloor(p, d int64) (q, r int64) {
	q = p / d
	r = p % d
	if r != 0 && (r < 0) != (d < 0) {
		q--
		r += d
	}
	return q, r
}

// renderLine accumulates the portion of the segment (x0,y0)-(x1,y1), in
// absolute sub-pixel units, that falls within [bandY0, bandY1). Vertical
// segments are handled directly per the single-column rule; general
// segments are walked one scanline row at a time and, within each row, one
// pixel column at a time, distributing area and cover exactly. Every x
// position along the way, including the band-edge clip points, is derived
// from an exact integer p/dy divide rather than a floating-point slope,
// with the division's remainder carried into the next row's numerator
// (Bresenham-style) instead of being discarded.
func renderLine(record func(row, x, cover, area int32), bandY0, bandY1, x0, y0, x1, y1 int32) {
	if y0 == y1 {
		return // horizontal segments carry no cover
	}
	dir := int32(1)
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		dir = -1
	}
	if y1 <= bandY0 || y0 >= bandY1 {
		return // fully outside this band
	}
	dxOrig, dyOrig := int64(x1-x0), int64(y1-y0)
	if y0 < bandY0 {
		q, _ := divModFloor(dxOrig*int64(bandY0-y0), dyOrig)
		x0 += int32(q)
		y0 = bandY0
	}
	if y1 > bandY1 {
		q, _ := divModFloor(dxOrig*int64(bandY1-y0), dyOrig)
		x1 = x0 + int32(q)
		y1 = bandY1
	}
	dx, dyTotal := int64(x1-x0), int64(y1-y0)
	if dyTotal == 0 {
		return // clipped to nothing
	}

	y := y0
	x := x0
	var acc int64 // carried remainder of the last row's p/dy divide
	for y < y1 {
		rowTop := (y &^ (onePixel - 1)) + onePixel
		yStop := y1
		if rowTop < yStop {
			yStop = rowTop
		}
		dy := yStop - y
		q, r := divModFloor(dx*int64(dy)+acc, dyTotal)
		acc = r
		xStop := x + int32(q)
		row := (y >> pixelBits) - (bandY0 >> pixelBits)
		renderRow(record, row, x, xStop, dy, dir)
		y = yStop
		x = xStop
	}
}

// renderRow distributes the sub-segment [xA,xB) within one scanline row
// across every pixel column it touches.
func renderRow(record func(row, x, cover, area int32), row int32, xA, xB, dy, dir int32) {
	if xA == xB {
		col := xA >> pixelBits
		fx := xA - col*onePixel
		record(row, col, dir*dy, dir*2*fx*dy)
		return
	}

	lo, hi := xA, xB
	if lo > hi {
		lo, hi = hi, lo
	}
	total := hi - lo
	colLo := lo >> pixelBits
	colHi := hi >> pixelBits

	for col := colLo; col <= colHi; col++ {
		segLo := int32(col) * onePixel
		segHi := segLo + onePixel
		if segLo < lo {
			segLo = lo
		}
		if segHi > hi {
			segHi = hi
		}
		if segHi <= segLo {
			continue
		}
		frac := segHi - segLo
		colDy := int32(int64(dy) * int64(frac) / int64(total))
		var fx1, fx2 int32
		if xA <= xB {
			fx1 = segLo - col*onePixel
			fx2 = segHi - col*onePixel
		} else {
			fx1 = segHi - col*onePixel
			fx2 = segLo - col*onePixel
		}
		record(row, col, dir*colDy, dir*(fx1+fx2)*colDy)
	}
}
