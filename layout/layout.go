// Package layout implements glyph layout transforms — bit-depth scaling,
// synthetic bold and italic — and the Layout state machine that ties a
// format.Decoder, the rasterizer, and those transforms together into a
// single cached "current glyph bitmap" per code point.
package layout

import (
	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/rasterizer"
)

// Layout retrieves, rasterizes if necessary, scales, and optionally
// emboldens/italicizes the bitmap for a single code point at a time,
// caching the result until the requested code point changes.
type Layout struct {
	decoder  format.Decoder
	size     int16
	bitCount int
	bold     bool
	italic   bool

	hasCode bool
	code    uint32
	bitmap  *gbtype.Bitmap
	horiOff int8

	raster *rasterizer.Rasterizer
}

// New creates a Layout over decoder, targeting the given point size and
// bit depth, with synthetic bold/italic applied if requested.
func New(decoder format.Decoder, size int16, bitCount int, bold, italic bool) *Layout {
	return &Layout{
		decoder:  decoder,
		size:     size,
		bitCount: bitCount,
		bold:     bold,
		italic:   italic,
	}
}

// Close releases the Layout. It does not close the underlying decoder,
// which the owning Loader keeps; Go's garbage collector reclaims the
// Layout's own staging buffers without an explicit free.
func (l *Layout) Close() error { return nil }

// GetWidth returns code's advance width at this Layout's point size.
func (l *Layout) GetWidth(code uint32) int {
	return int(l.decoder.GetAdvance(code, l.size))
}

// HoriOff returns the horizontal bearing of the most recently loaded
// glyph, scaled to this Layout's target size.
func (l *Layout) HoriOff() int8 { return l.horiOff }

// LoadChar returns the target bitmap for code, rebuilding it only if code
// differs from the previously loaded one.
func (l *Layout) LoadChar(code uint32) (*gbtype.Bitmap, error) {
	if l.hasCode && l.code == code {
		return l.bitmap, nil
	}

	data, err := l.decoder.Decode(code, l.size)
	if err != nil {
		return nil, err
	}

	var src *gbtype.Bitmap
	switch data.Kind {
	case gbtype.KindBitmap:
		src = data.Bitmap
	case gbtype.KindOutline:
		src, err = l.rasterize(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &gbtype.UnsupportedError{SubSystem: "layout", Feature: "glyph kind"}
	}

	horiOff := data.HoriOff
	if src.BitCount == l.bitCount && src.Height == int(l.size) {
		l.bitmap = src
	} else {
		scaled, err := ScaleBitmap(src, int(l.size), l.bitCount)
		if err != nil {
			return nil, err
		}
		horiOff = scaleHoriOff(horiOff, src.Height, scaled.Height)
		l.bitmap = scaled
	}
	l.horiOff = horiOff

	if l.bold {
		if err := Bold(l.bitmap); err != nil {
			return nil, err
		}
	}
	if l.italic {
		if err := Italic(l.bitmap); err != nil {
			return nil, err
		}
	}

	l.code = code
	l.hasCode = true
	return l.bitmap, nil
}

// rasterize renders an outline glyph into a freshly zeroed 8-bpp staging
// bitmap sized (data.Width, this Layout's point size).
func (l *Layout) rasterize(data *gbtype.GlyphData) (*gbtype.Bitmap, error) {
	if data.Outline == nil {
		return nil, &gbtype.InvalidArgumentError{SubSystem: "layout", Reason: "outline glyph has no outline"}
	}
	width := int(data.Width)
	if width <= 0 {
		width = 1
	}
	stage := &gbtype.Bitmap{
		Width:    width,
		Height:   int(l.size),
		BitCount: 8,
		Pitch:    width,
		Buffer:   make([]byte, width*int(l.size)),
	}
	if l.raster == nil {
		l.raster = rasterizer.New(0)
	}
	if err := l.raster.Render(data.Outline, stage, nil); err != nil {
		return nil, err
	}
	return stage, nil
}
