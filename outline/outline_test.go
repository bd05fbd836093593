package outline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		p   gbtype.Point
		tag gbtype.PointTag
	}{
		{gbtype.Point{X: 0, Y: 0}, gbtype.OnCurve},
		{gbtype.Point{X: 64 * 10, Y: 64 * 20}, gbtype.ConicOff},
		{gbtype.Point{X: 64 * 127, Y: 64 * 127}, gbtype.CubicOff},
	}
	for _, c := range cases {
		packed := Pack(c.p, c.tag)
		gotPoint, gotTag := Unpack(packed)
		if diff := cmp.Diff(c.p, gotPoint); diff != "" {
			t.Errorf("point mismatch (+got -want):\n%s", diff)
		}
		if gotTag != c.tag {
			t.Errorf("tag mismatch: got %v want %v", gotTag, c.tag)
		}
	}
}

func TestCloneCopiesAllPoints(t *testing.T) {
	o := New(1, 5)
	for i := range o.Points {
		o.Points[i] = gbtype.Point{X: fixed.Int26_6(i), Y: fixed.Int26_6(i * 2)}
	}
	o.Contours[0] = 4

	clone := o.Clone()
	if diff := cmp.Diff(o, clone); diff != "" {
		t.Errorf("clone mismatch (+got -want):\n%s", diff)
	}
	clone.Points[4].X = 999
	if o.Points[4].X == 999 {
		t.Fatal("clone shares backing array with source")
	}
}

func TestValidateRejectsOutOfOrderContours(t *testing.T) {
	o := New(2, 4)
	o.Contours[0] = 2
	o.Contours[1] = 1 // goes backwards
	if err := Validate(o); err == nil {
		t.Fatal("expected an error for an out-of-order contour")
	}
}

func TestValidateRejectsFinalContourNotAtLastPoint(t *testing.T) {
	o := New(1, 5)
	o.Contours[0] = 2 // should be 4
	if err := Validate(o); err == nil {
		t.Fatal("expected an error when the final contour doesn't reach the last point")
	}
}

func TestValidateAcceptsWellFormedOutline(t *testing.T) {
	o := New(2, 6)
	o.Contours[0] = 2
	o.Contours[1] = 5
	if err := Validate(o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTranslate(t *testing.T) {
	o := New(1, 2)
	o.Points[0] = gbtype.Point{X: 10, Y: 20}
	o.Points[1] = gbtype.Point{X: -5, Y: 0}
	Translate(o, 100, -100)
	want := []gbtype.Point{{X: 110, Y: -80}, {X: 95, Y: -100}}
	if diff := cmp.Diff(want, o.Points); diff != "" {
		t.Errorf("mismatch (+got -want):\n%s", diff)
	}
}
