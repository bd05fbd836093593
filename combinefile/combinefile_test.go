package combinefile

import (
	"testing"

	"github.com/raulmrio28-git/GreyBitType/bitmapfile"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
	"github.com/raulmrio28-git/GreyBitType/vectorfile"
)

func buildBitmapChild(t *testing.T, code uint32, height int) *stream.Stream {
	t.Helper()
	s := stream.NewMemory(nil)
	enc, err := bitmapfile.NewEncoder(s)
	if err != nil {
		t.Fatal(err)
	}
	b := enc.(*bitmapfile.Encoder)
	if err := b.SetHeader(int16(height), 8, 0); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 5*height)
	for i := range buf {
		buf[i] = 0x11
	}
	data := &gbtype.GlyphData{
		Kind:   gbtype.KindBitmap,
		Bitmap: &gbtype.Bitmap{Width: 5, Height: height, BitCount: 8, Pitch: 5, Buffer: buf},
		Width:  5,
	}
	if err := b.Encode(code, data); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	s.Seek(0)
	return s
}

func buildVectorChild(t *testing.T, code uint32, height int) *stream.Stream {
	t.Helper()
	s := stream.NewMemory(nil)
	enc, err := vectorfile.NewEncoder(s)
	if err != nil {
		t.Fatal(err)
	}
	v := enc.(*vectorfile.Encoder)
	if err := v.SetHeader(int16(height)); err != nil {
		t.Fatal(err)
	}
	o := triangleOutline()
	if err := v.Encode(code, &gbtype.GlyphData{Kind: gbtype.KindOutline, Outline: o, Width: 10}); err != nil {
		t.Fatal(err)
	}
	if err := v.Flush(); err != nil {
		t.Fatal(err)
	}
	s.Seek(0)
	return s
}

func triangleOutline() *gbtype.Outline {
	o := &gbtype.Outline{
		Contours: []int16{2},
		Points: []gbtype.Point{
			{X: 0, Y: 0},
			{X: 640, Y: 0},
			{X: 320, Y: 640},
		},
		Tags: []gbtype.PointTag{gbtype.OnCurve, gbtype.OnCurve, gbtype.OnCurve},
	}
	return o
}

func TestEncodeAddChildFlushDecodeRoundTrip(t *testing.T) {
	bitmapChild := buildBitmapChild(t, 'A', 10)
	vectorChild := buildVectorChild(t, 'B', 10)

	out := stream.NewMemory(nil)
	enc, err := NewEncoder(out)
	if err != nil {
		t.Fatal(err)
	}
	e := enc.(*Encoder)
	if err := e.AddChild(bitmapChild); err != nil {
		t.Fatalf("AddChild(bitmap) = %v", err)
	}
	if err := e.AddChild(vectorChild); err != nil {
		t.Fatalf("AddChild(vector) = %v", err)
	}
	if got, want := e.GetCount(), 2; got != want {
		t.Fatalf("GetCount() = %d, want %d", got, want)
	}
	if err := e.Flush(); err != nil {
		t.Fatal(err)
	}

	out.Seek(0)
	dec, err := NewDecoder(out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := dec.GetCount(), 2; got != want {
		t.Fatalf("GetCount() = %d, want %d", got, want)
	}
	if got, want := dec.GetHeight(), 0; got != want {
		t.Fatalf("GetHeight() = %d, want %d (unknown sentinel)", got, want)
	}

	if got, want := dec.GetWidth('A', 10), 5; got != want {
		t.Fatalf("GetWidth('A') = %d, want %d", got, want)
	}
	g, err := dec.Decode('A', 10)
	if err != nil {
		t.Fatal(err)
	}
	if g.Kind != gbtype.KindBitmap {
		t.Fatalf("Decode('A').Kind = %v, want KindBitmap", g.Kind)
	}

	g2, err := dec.Decode('B', 10)
	if err != nil {
		t.Fatal(err)
	}
	if g2.Kind != gbtype.KindOutline {
		t.Fatalf("Decode('B').Kind = %v, want KindOutline", g2.Kind)
	}

	if _, err := dec.Decode('Z', 10); !gbtype.IsNotFound(err) {
		t.Fatalf("Decode('Z') = %v, want a NotFoundError", err)
	}
}

func TestAddChildRejectsUnrecognizedFormat(t *testing.T) {
	out := stream.NewMemory(nil)
	enc, _ := NewEncoder(out)
	e := enc.(*Encoder)
	junk := stream.NewMemory([]byte("not a valid child stream at all"))
	if err := e.AddChild(junk); err == nil {
		t.Fatal("expected AddChild to reject a stream with no recognized magic")
	}
	if e.GetCount() != 0 {
		t.Fatalf("GetCount() = %d after rejected AddChild, want 0", e.GetCount())
	}
}

func TestAddChildRejectsWhenSlotsFull(t *testing.T) {
	out := stream.NewMemory(nil)
	enc, _ := NewEncoder(out)
	e := enc.(*Encoder)
	for i := 0; i < MaxSlots; i++ {
		child := buildBitmapChild(t, uint32('A'+i), 10)
		if err := e.AddChild(child); err != nil {
			t.Fatalf("AddChild #%d: %v", i, err)
		}
	}
	overflow := buildBitmapChild(t, 'Z', 10)
	if err := e.AddChild(overflow); err == nil {
		t.Fatal("expected AddChild to reject a 6th child")
	}
}
