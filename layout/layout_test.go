package layout

import (
	"testing"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
)

// stubDecoder is a minimal format.Decoder that serves one fixed glyph per
// code, for exercising Layout without a real on-disk format.
type stubDecoder struct {
	data map[uint32]*gbtype.GlyphData
	adv  map[uint32]int16
}

func (s *stubDecoder) SetParam(p gbtype.Param, value int) error { return nil }
func (s *stubDecoder) GetCount() int                            { return len(s.data) }
func (s *stubDecoder) GetWidth(code uint32, size int16) int     { return int(s.adv[code]) }
func (s *stubDecoder) GetHeight() int                           { return 0 }
func (s *stubDecoder) GetAdvance(code uint32, size int16) int16 { return s.adv[code] }
func (s *stubDecoder) Close() error                             { return nil }
func (s *stubDecoder) Decode(code uint32, size int16) (*gbtype.GlyphData, error) {
	d, ok := s.data[code]
	if !ok {
		return nil, &gbtype.NotFoundError{SubSystem: "stub", Code: code}
	}
	return d, nil
}

func bitmapGlyph(w, h int, fill byte) *gbtype.GlyphData {
	buf := make([]byte, w*h)
	for i := range buf {
		buf[i] = fill
	}
	return &gbtype.GlyphData{
		Kind:   gbtype.KindBitmap,
		Bitmap: &gbtype.Bitmap{Width: w, Height: h, BitCount: 8, Pitch: w, Buffer: buf},
		Width:  int16(w),
	}
}

func TestLoadCharCachesByCode(t *testing.T) {
	dec := &stubDecoder{
		data: map[uint32]*gbtype.GlyphData{'A': bitmapGlyph(4, 4, 0x22)},
		adv:  map[uint32]int16{'A': 4},
	}
	l := New(dec, 4, 8, false, false)
	b1, err := l.LoadChar('A')
	if err != nil {
		t.Fatal(err)
	}
	b2, err := l.LoadChar('A')
	if err != nil {
		t.Fatal(err)
	}
	if b1 != b2 {
		t.Fatal("LoadChar with an unchanged code should return the same cached bitmap")
	}
}

func TestLoadCharScalesOnSizeMismatch(t *testing.T) {
	dec := &stubDecoder{
		data: map[uint32]*gbtype.GlyphData{'A': bitmapGlyph(8, 8, 0xff)},
		adv:  map[uint32]int16{'A': 8},
	}
	l := New(dec, 4, 8, false, false)
	bm, err := l.LoadChar('A')
	if err != nil {
		t.Fatal(err)
	}
	if bm.Height != 4 {
		t.Fatalf("Height = %d, want 4 (scaled to target size)", bm.Height)
	}
}

func TestLoadCharRendersOutline(t *testing.T) {
	o := &gbtype.Outline{
		Contours: []int16{3},
		Points: []gbtype.Point{
			{X: 0, Y: 0}, {X: 256, Y: 0}, {X: 256, Y: 256}, {X: 0, Y: 256},
		},
		Tags: []gbtype.PointTag{gbtype.OnCurve, gbtype.OnCurve, gbtype.OnCurve, gbtype.OnCurve},
	}
	dec := &stubDecoder{
		data: map[uint32]*gbtype.GlyphData{'A': {Kind: gbtype.KindOutline, Outline: o, Width: 4}},
		adv:  map[uint32]int16{'A': 4},
	}
	l := New(dec, 4, 8, false, false)
	bm, err := l.LoadChar('A')
	if err != nil {
		t.Fatal(err)
	}
	if bm.Width != 4 || bm.Height != 4 {
		t.Fatalf("bitmap = %dx%d, want 4x4", bm.Width, bm.Height)
	}
	allZero := true
	for _, v := range bm.Buffer {
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Fatal("expected the rasterized square to produce nonzero coverage")
	}
}

func TestLoadCharAppliesBoldAndItalic(t *testing.T) {
	dec := &stubDecoder{
		data: map[uint32]*gbtype.GlyphData{'A': bitmapGlyph(32, 32, 0x80)},
		adv:  map[uint32]int16{'A': 32},
	}
	l := New(dec, 32, 8, true, true)
	bm, err := l.LoadChar('A')
	if err != nil {
		t.Fatal(err)
	}
	if bm.Width != 32 || bm.Height != 32 {
		t.Fatalf("bitmap = %dx%d, want 32x32", bm.Width, bm.Height)
	}
}

func TestLoadCharPropagatesDecodeError(t *testing.T) {
	dec := &stubDecoder{data: map[uint32]*gbtype.GlyphData{}, adv: map[uint32]int16{}}
	l := New(dec, 8, 8, false, false)
	if _, err := l.LoadChar('Z'); !gbtype.IsNotFound(err) {
		t.Fatalf("LoadChar on a missing glyph = %v, want a NotFoundError", err)
	}
}

func TestScaleBitmap8to1RoundTrips(t *testing.T) {
	src := &gbtype.Bitmap{Width: 8, Height: 8, BitCount: 8, Pitch: 8, Buffer: make([]byte, 64)}
	for i := range src.Buffer {
		src.Buffer[i] = 0xff
	}
	dst, err := ScaleBitmap(src, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	if dst.BitCount != 1 || dst.Pitch != 1 {
		t.Fatalf("dst = {bitcount:%d pitch:%d}, want {1,1}", dst.BitCount, dst.Pitch)
	}
	for _, b := range dst.Buffer {
		if b != 0xff {
			t.Fatalf("byte = %#x, want 0xff (every source pixel lit)", b)
		}
	}
}

func TestBoldNoopOnShortBitmap(t *testing.T) {
	bm := &gbtype.Bitmap{Width: 4, Height: 4, BitCount: 8, Pitch: 4, Buffer: make([]byte, 16)}
	before := append([]byte(nil), bm.Buffer...)
	if err := Bold(bm); err != nil {
		t.Fatal(err)
	}
	for i := range bm.Buffer {
		if bm.Buffer[i] != before[i] {
			t.Fatal("Bold should be a no-op for a bitmap shorter than 32px")
		}
	}
}

func TestItalicShearsTallBitmap(t *testing.T) {
	bm := &gbtype.Bitmap{Width: 16, Height: 16, BitCount: 8, Pitch: 16, Buffer: make([]byte, 256)}
	for y := 0; y < 16; y++ {
		bm.Buffer[y*16+4] = 0xff
	}
	if err := Italic(bm); err != nil {
		t.Fatal(err)
	}
	// The top row and bottom row should now be displaced in opposite
	// directions relative to each other.
	topIdx, botIdx := -1, -1
	for x := 0; x < 16; x++ {
		if bm.Buffer[x] != 0 {
			topIdx = x
		}
		if bm.Buffer[15*16+x] != 0 {
			botIdx = x
		}
	}
	if topIdx == botIdx {
		t.Fatalf("expected the top and bottom rows to shear apart, both landed at %d", topIdx)
	}
}
