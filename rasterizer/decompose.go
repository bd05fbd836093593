package rasterizer

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/outline"
)

// maxFlattenDepth bounds the adaptive subdivision stack, matching the
// reference's fixed-depth curve stack.
const maxFlattenDepth = 32

type point struct{ x, y int32 }

func mid(a, b point) point {
	return point{(a.x + b.x) / 2, (a.y + b.y) / 2}
}

// decomposer walks a gbtype.Outline contour by contour, applying the
// FreeType-compatible start/close rules and flattening conic/cubic
// segments into the line segments emit ultimately consumes.
type decomposer struct {
	heightSub int32
	boost     int
	emit      func(x0, y0, x1, y1 int32)

	cur point
}

func (d *decomposer) toPoint(p gbtype.Point) point {
	return point{upscale(int32(p.X)), d.heightSub - upscale(int32(p.Y))}
}

func (d *decomposer) moveTo(p point) { d.cur = p }

func (d *decomposer) lineTo(p point) {
	d.emit(d.cur.x, d.cur.y, p.x, p.y)
	d.cur = p
}

func (d *decomposer) walk(o *gbtype.Outline) error {
	start := 0
	for _, end := range o.Contours {
		if err := d.walkContour(o, start, int(end)); err != nil {
			return err
		}
		start = int(end) + 1
	}
	return nil
}

type ringPoint struct {
	p   point
	tag gbtype.PointTag
}

// walkContour renders one contour, whose points live at o.Points[start..end]
// inclusive.
func (d *decomposer) walkContour(o *gbtype.Outline, start, end int) error {
	n := end - start + 1
	if n <= 0 {
		return &gbtype.InvalidOutlineError{Reason: "contour has no points"}
	}
	pts := make([]ringPoint, n)
	for i := 0; i < n; i++ {
		pts[i] = ringPoint{d.toPoint(o.Points[start+i]), o.Tags[start+i]}
	}
	if pts[0].tag == gbtype.CubicOff {
		return &gbtype.InvalidOutlineError{Reason: "contour starts with a cubic-off point"}
	}

	var startPoint point
	var seq []ringPoint
	switch pts[0].tag {
	case gbtype.OnCurve:
		startPoint = pts[0].p
		seq = pts[1:]
	case gbtype.ConicOff:
		if pts[n-1].tag == gbtype.OnCurve {
			startPoint = pts[n-1].p
			seq = pts[:n-1]
		} else {
			startPoint = mid(pts[0].p, pts[n-1].p)
			seq = pts
		}
	}

	d.moveTo(startPoint)
	at := func(k int) ringPoint {
		if k >= len(seq) {
			return ringPoint{startPoint, gbtype.OnCurve}
		}
		return seq[k]
	}

	i := 0
	for i < len(seq) {
		p := seq[i]
		switch p.tag {
		case gbtype.OnCurve:
			d.lineTo(p.p)
			i++
		case gbtype.ConicOff:
			next := at(i + 1)
			if next.tag == gbtype.ConicOff {
				to := mid(p.p, next.p)
				d.conicTo(p.p, to)
				i++
			} else {
				d.conicTo(p.p, next.p)
				i += 2
			}
		case gbtype.CubicOff:
			next := at(i + 1)
			if next.tag != gbtype.CubicOff {
				return &gbtype.InvalidOutlineError{Reason: "cubic-off point not followed by another cubic-off point"}
			}
			to := at(i + 2)
			d.cubicTo(p.p, next.p, to.p)
			i += 3
		}
	}
	if d.cur != startPoint {
		d.lineTo(startPoint)
	}
	return nil
}

type conicSeg struct {
	p0, p1, p2 point
	depth      int
}

func (d *decomposer) conicTo(ctrl, to point) {
	conicLevel := int32(32 << d.boost)
	start := d.cur
	stack := arraystack.New()
	stack.Push(conicSeg{start, ctrl, to, 0})
	for !stack.Empty() {
		v, _ := stack.Pop()
		seg := v.(conicSeg)
		dx := abs32(seg.p2.x - 2*seg.p1.x + seg.p0.x)
		dy := abs32(seg.p2.y - 2*seg.p1.y + seg.p0.y)
		d2 := dx
		if dy > d2 {
			d2 = dy
		}
		if seg.depth >= maxFlattenDepth || d2 <= conicLevel {
			d.lineTo(seg.p2)
			continue
		}
		p01 := mid(seg.p0, seg.p1)
		p12 := mid(seg.p1, seg.p2)
		p012 := mid(p01, p12)
		// push the second half first so the first half pops (and thus
		// renders) before it.
		stack.Push(conicSeg{p012, p12, seg.p2, seg.depth + 1})
		stack.Push(conicSeg{seg.p0, p01, p012, seg.depth + 1})
	}
}

type cubicSeg struct {
	p0, p1, p2, p3 point
	depth          int
}

func (d *decomposer) cubicTo(c1, c2, to point) {
	cubicLevel := int32(16 << d.boost)
	start := d.cur
	stack := arraystack.New()
	stack.Push(cubicSeg{start, c1, c2, to, 0})
	for !stack.Empty() {
		v, _ := stack.Pop()
		seg := v.(cubicSeg)
		d1x := abs32(seg.p3.x - 2*seg.p2.x + seg.p1.x)
		d1y := abs32(seg.p3.y - 2*seg.p2.y + seg.p1.y)
		d2x := abs32(seg.p2.x - 2*seg.p1.x + seg.p0.x)
		d2y := abs32(seg.p2.y - 2*seg.p1.y + seg.p0.y)
		d1 := d1x
		if d1y > d1 {
			d1 = d1y
		}
		d2 := d2x
		if d2y > d2 {
			d2 = d2y
		}
		worst := d1
		if d2 > worst {
			worst = d2
		}
		if seg.depth >= maxFlattenDepth || worst <= cubicLevel {
			d.lineTo(seg.p3)
			continue
		}
		p01 := mid(seg.p0, seg.p1)
		p12 := mid(seg.p1, seg.p2)
		p23 := mid(seg.p2, seg.p3)
		p012 := mid(p01, p12)
		p123 := mid(p12, p23)
		p0123 := mid(p012, p123)
		stack.Push(cubicSeg{p0123, p123, p23, seg.p3, seg.depth + 1})
		stack.Push(cubicSeg{seg.p0, p01, p012, p0123, seg.depth + 1})
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func validateContours(o *gbtype.Outline) error {
	return outline.Validate(o)
}
