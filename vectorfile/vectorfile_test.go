package vectorfile

import (
	"testing"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/outline"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

func triangle() *gbtype.Outline {
	o := outline.New(1, 3)
	o.Contours[0] = 2
	o.Points[0] = gbtype.Point{X: 0, Y: 0}
	o.Points[1] = gbtype.Point{X: 64 * 10, Y: 0}
	o.Points[2] = gbtype.Point{X: 64 * 5, Y: 64 * 10}
	o.Tags[0] = gbtype.OnCurve
	o.Tags[1] = gbtype.OnCurve
	o.Tags[2] = gbtype.ConicOff
	return o
}

func TestEncodeFlushDecodeRoundTrip(t *testing.T) {
	s := stream.NewMemory(nil)
	enc, err := NewEncoder(s)
	if err != nil {
		t.Fatal(err)
	}
	e := enc.(*Encoder)
	if err := e.SetHeader(10); err != nil {
		t.Fatal(err)
	}
	data := &gbtype.GlyphData{Kind: gbtype.KindOutline, Outline: triangle(), Width: 10}
	if err := e.Encode('A', data); err != nil {
		t.Fatal(err)
	}
	if err := e.Flush(); err != nil {
		t.Fatal(err)
	}

	s.Seek(0)
	dec, err := NewDecoder(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := dec.GetCount(); got != 1 {
		t.Fatalf("GetCount() = %d, want 1", got)
	}
	if got := dec.GetHeight(); got != 0 {
		t.Fatalf("GetHeight() = %d, want 0 (unknown sentinel)", got)
	}
	g, err := dec.Decode('A', 10)
	if err != nil {
		t.Fatal(err)
	}
	if g.Kind != gbtype.KindOutline {
		t.Fatalf("Kind = %v, want KindOutline", g.Kind)
	}
	if g.Outline.NPoints() != 3 || g.Outline.NContours() != 1 {
		t.Fatalf("decoded outline has %d points / %d contours, want 3/1",
			g.Outline.NPoints(), g.Outline.NContours())
	}
	for i, tag := range g.Outline.Tags {
		if tag != triangle().Tags[i] {
			t.Fatalf("point %d tag = %v, want %v", i, tag, triangle().Tags[i])
		}
	}
}

func TestEncodeRejectsOversizedOutline(t *testing.T) {
	s := stream.NewMemory(nil)
	enc, _ := NewEncoder(s)
	e := enc.(*Encoder)
	e.SetHeader(10)
	big := outline.New(1, 300) // exceeds MaxPoints
	big.Contours[0] = 299
	if err := e.Encode('A', &gbtype.GlyphData{Kind: gbtype.KindOutline, Outline: big}); err == nil {
		t.Fatal("expected an error for an outline exceeding the packed byte-sized counts")
	}
}
