package bitmapfile

import (
	"testing"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

func makeBitmap(width, height int, fill byte) *gbtype.Bitmap {
	buf := make([]byte, width*height)
	for i := range buf {
		buf[i] = fill
	}
	return &gbtype.Bitmap{Width: width, Height: height, BitCount: 8, Pitch: width, Buffer: buf}
}

func TestEncodeFlushDecodeRoundTrip(t *testing.T) {
	s := stream.NewMemory(nil)
	enc, err := NewEncoder(s)
	if err != nil {
		t.Fatal(err)
	}
	b := enc.(*Encoder)
	if err := b.SetHeader(20, 8, 0); err != nil {
		t.Fatal(err)
	}

	data := &gbtype.GlyphData{
		Kind:    gbtype.KindBitmap,
		Bitmap:  makeBitmap(10, 20, 0x40),
		Width:   10,
		HoriOff: 1,
	}
	if err := b.Encode('A', data); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Seek(0); err != nil {
		t.Fatal(err)
	}
	dec, err := NewDecoder(s)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := dec.GetCount(), 1; got != want {
		t.Fatalf("GetCount() = %d, want %d", got, want)
	}
	if got, want := dec.GetWidth('A', 20), 10; got != want {
		t.Fatalf("GetWidth() = %d, want %d", got, want)
	}
	g, err := dec.Decode('A', 20)
	if err != nil {
		t.Fatal(err)
	}
	if g.Kind != gbtype.KindBitmap {
		t.Fatalf("Kind = %v, want KindBitmap", g.Kind)
	}
	if g.Bitmap.Width != 10 || g.Bitmap.Height != 20 {
		t.Fatalf("decoded bitmap is %dx%d, want 10x20", g.Bitmap.Width, g.Bitmap.Height)
	}
	for i, v := range g.Bitmap.Buffer {
		if v != 0x40 {
			t.Fatalf("buffer[%d] = %#x, want 0x40", i, v)
		}
	}
}

func TestDecodeMissingGlyph(t *testing.T) {
	s := stream.NewMemory(nil)
	enc, _ := NewEncoder(s)
	b := enc.(*Encoder)
	b.SetHeader(10, 8, 0)
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	s.Seek(0)
	dec, err := NewDecoder(s)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dec.Decode('Z', 10); !gbtype.IsNotFound(err) {
		t.Fatalf("expected a NotFoundError, got %v", err)
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	s := stream.NewMemory(nil)
	enc, _ := NewEncoder(s)
	b := enc.(*Encoder)
	if err := b.SetHeader(8, 8, 1); err != nil {
		t.Fatal(err)
	}
	data := &gbtype.GlyphData{Kind: gbtype.KindBitmap, Bitmap: makeBitmap(8, 8, 0xAA), Width: 8}
	if err := b.Encode('Q', data); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	s.Seek(0)
	dec, err := NewDecoder(s)
	if err != nil {
		t.Fatal(err)
	}
	g, err := dec.Decode('Q', 8)
	if err != nil {
		t.Fatal(err)
	}
	want := byte(((0xAA >> 1) << 1) | 1)
	for i, v := range g.Bitmap.Buffer {
		if v != want {
			t.Fatalf("buffer[%d] = %#x, want %#x (lossy low-bit RLE round trip)", i, v, want)
		}
	}
}

func TestReinitClearsGlyphs(t *testing.T) {
	s := stream.NewMemory(nil)
	enc, _ := NewEncoder(s)
	b := enc.(*Encoder)
	b.SetHeader(10, 8, 0)
	b.Encode('A', &gbtype.GlyphData{Kind: gbtype.KindBitmap, Bitmap: makeBitmap(5, 10, 1), Width: 5})
	if b.GetCount() != 1 {
		t.Fatalf("GetCount() = %d before reinit, want 1", b.GetCount())
	}
	if err := b.SetHeader(12, 8, 0); err != nil { // height differs -> reinit
		t.Fatal(err)
	}
	if b.GetCount() != 0 {
		t.Fatalf("GetCount() = %d after reinit, want 0", b.GetCount())
	}
}
