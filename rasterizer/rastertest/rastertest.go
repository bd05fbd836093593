// Package rastertest renders an Outline with golang.org/x/image/vector and
// is used only as a cross-check oracle in the rasterizer package's tests —
// it is never imported by production code.
package rastertest

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
)

// toFloat converts a 26.6 fixed-point X coordinate to pixels.
func toFloat(v int32, _ int) float32 {
	return float32(v) / 64
}

// toFloatY converts a 26.6 fixed-point Y coordinate to pixels, flipping it
// so it matches this project's top-down bitmap convention.
func toFloatY(v int32, heightPx int) float32 {
	return float32(heightPx) - float32(v)/64
}

// Render draws outline into a fresh w x h 8-bpp coverage buffer (row-major,
// pitch == w) using x/image/vector's quadratic/cubic-native rasterizer,
// entirely independent of this project's own cell-based one.
func Render(o *gbtype.Outline, w, h int) []byte {
	z := vector.NewRasterizer(w, h)

	start := 0
	for _, end := range o.Contours {
		emitContour(z, o, start, int(end), h)
		start = int(end) + 1
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.NewUniform(image.Opaque), image.Point{})
	return alphaToBuffer(dst, w, h)
}

func alphaToBuffer(dst *image.Alpha, w, h int) []byte {
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(buf[y*w:(y+1)*w], dst.Pix[y*dst.Stride:y*dst.Stride+w])
	}
	return buf
}

func emitContour(z *vector.Rasterizer, o *gbtype.Outline, start, end, h int) {
	n := end - start + 1
	if n <= 0 {
		return
	}
	pts := o.Points[start : end+1]
	tags := o.Tags[start : end+1]

	at := func(k int) (gbtype.Point, gbtype.PointTag) {
		k = ((k % n) + n) % n
		return pts[k], tags[k]
	}

	startIdx := 0
	for i := 0; i < n; i++ {
		if tags[i] == gbtype.OnCurve {
			startIdx = i
			break
		}
	}
	sp, _ := at(startIdx)
	z.MoveTo(toFloat(int32(sp.X), h), toFloatY(int32(sp.Y), h))

	i := startIdx + 1
	for count := 0; count < n; {
		p, tag := at(i)
		switch tag {
		case gbtype.OnCurve:
			z.LineTo(toFloat(int32(p.X), h), toFloatY(int32(p.Y), h))
			i++
			count++
		case gbtype.ConicOff:
			next, nextTag := at(i + 1)
			if nextTag == gbtype.ConicOff {
				mid := gbtype.Point{X: (p.X + next.X) / 2, Y: (p.Y + next.Y) / 2}
				z.QuadTo(toFloat(int32(p.X), h), toFloatY(int32(p.Y), h), toFloat(int32(mid.X), h), toFloatY(int32(mid.Y), h))
				i++
				count++
			} else {
				z.QuadTo(toFloat(int32(p.X), h), toFloatY(int32(p.Y), h), toFloat(int32(next.X), h), toFloatY(int32(next.Y), h))
				i += 2
				count += 2
			}
		case gbtype.CubicOff:
			c2, _ := at(i + 1)
			to, _ := at(i + 2)
			z.CubeTo(
				toFloat(int32(p.X), h), toFloatY(int32(p.Y), h),
				toFloat(int32(c2.X), h), toFloatY(int32(c2.Y), h),
				toFloat(int32(to.X), h), toFloatY(int32(to.Y), h),
			)
			i += 3
			count += 3
		}
	}
	z.ClosePath()
}
