package gbtype

import "golang.org/x/image/math/fixed"

// PointTag describes the kind of a single outline point. Its two low bits
// are exactly the two tag bits the on-disk packed point form carries (one
// in the low bit of the packed x byte, one in the low bit of the packed y
// byte), so every value round-trips through outline.Pack/Unpack.
type PointTag uint8

const (
	// ConicOff marks a quadratic (conic) control point.
	ConicOff PointTag = 0
	// OnCurve marks a point that lies on the contour.
	OnCurve PointTag = 1
	// CubicOff marks a cubic control point.
	CubicOff PointTag = 2
)

// Bitmap is a decoded grey-scale or monochrome glyph image. Pitch is the
// number of bytes per row; for 1-bpp bitmaps it may exceed width/8 to keep
// rows byte-aligned, for 8-bpp bitmaps it equals width.
type Bitmap struct {
	Width    int
	Height   int
	BitCount int // 1 or 8
	Pitch    int
	Buffer   []byte
}

// Clone returns a deep copy of b.
func (b *Bitmap) Clone() *Bitmap {
	if b == nil {
		return nil
	}
	out := *b
	out.Buffer = append([]byte(nil), b.Buffer...)
	return &out
}

// Outline is the unpacked, render-ready representation of a vector glyph.
// Contours[i] is the index of the last point belonging to contour i; the
// first point of contour i is Contours[i-1]+1 (or 0 for i==0).
type Outline struct {
	Contours []int16
	Points   []Point
	Tags     []PointTag
}

// Point is a glyph coordinate in 26.6 fixed-point sub-pixel units, using
// the same representation as golang.org/x/image/math/fixed.Int26_6.
type Point struct {
	X, Y fixed.Int26_6
}

// NPoints returns the number of points in the outline.
func (o *Outline) NPoints() int { return len(o.Points) }

// NContours returns the number of contours in the outline.
func (o *Outline) NContours() int { return len(o.Contours) }

// Clone returns a deep copy of o, copying all NPoints() points — not just
// NContours() of them.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return nil
	}
	out := &Outline{
		Contours: append([]int16(nil), o.Contours...),
		Points:   make([]Point, len(o.Points)),
		Tags:     make([]PointTag, len(o.Tags)),
	}
	copy(out.Points, o.Points)
	copy(out.Tags, o.Tags)
	return out
}

// GlyphKind selects the active member of a GlyphData tagged union.
type GlyphKind uint8

const (
	// KindBitmap means GlyphData.Bitmap is the active member.
	KindBitmap GlyphKind = iota
	// KindOutline means GlyphData.Outline is the active member.
	KindOutline
	// KindStream means GlyphData.Stream is the active member. None of the
	// codecs in this module returns it: combinefile routes each glyph to
	// a child decoder, which returns a bitmap or an outline.
	KindStream
)

// GlyphData is the decoded form of one glyph, shared by every codec. Only
// the field matching Kind is populated.
type GlyphData struct {
	Kind    GlyphKind
	Bitmap  *Bitmap
	Outline *Outline
	Stream  []byte // raw bytes of an embedded sub-format stream

	Width   int16 // advance width: file units for an encoder, pixels at the requested size from a decoder
	HoriOff int8  // horizontal bearing, signed byte
}

// Param names a tunable a Loader or Creator accepts through SetParam. A
// Layout has no SetParam: its target bit depth, bold and italic settings
// are arguments to layout.New, and no SetParam in this module acts on
// ParamScale, ParamBold or ParamItalic. Unlike a generic string-keyed
// options map, the set of valid parameters is closed and typed, matching
// how the teacher's table package exposes fixed per-table options.
type Param int

const (
	// ParamCacheItem sets the number of RAM cache slots a decoder may grow
	// into. Cache growth is append-only: a later, smaller value never
	// shrinks slots already filled.
	ParamCacheItem Param = iota
	// ParamScale sets the target bit depth layout transforms scale into.
	ParamScale
	// ParamBold enables synthetic bolding in layout transforms.
	ParamBold
	// ParamItalic enables synthetic italic shear in layout transforms.
	ParamItalic
	// ParamHeight sets an encoder's glyph box height.
	ParamHeight
	// ParamBitCount sets an encoder's bit depth (1 or 8).
	ParamBitCount
	// ParamCompress enables an encoder's byte-RLE compression (8-bpp only).
	ParamCompress
)
