package rlecodec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lowBitForced(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = ((b >> 1) << 1) | 1
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0x00, 0x00, 0x00},
		{0x01, 0x02, 0x03, 0x04},
		{0xAA, 0xAA, 0xAA, 0xAA, 0xAA},
		repeat(0x10, 300),
	}
	for _, in := range cases {
		compressed := Compress(in)
		got, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		want := lowBitForced(in)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch for %v (+got -want):\n%s", in, diff)
		}
	}
}

func TestSingleByteIsLiteral(t *testing.T) {
	out := Compress([]byte{0x42})
	if len(out) != 1 {
		t.Fatalf("Compress of a single byte produced %d bytes, want 1", len(out))
	}
	if IsLen(out[0]) {
		t.Fatalf("single byte was tagged as a run, want a plain literal")
	}
}

func TestLongRunSplits(t *testing.T) {
	in := repeat(0x20, 500)
	out := Compress(in)
	got, err := Decompress(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(lowBitForced(in), got); diff != "" {
		t.Errorf("long run mismatch (+got -want):\n%s", diff)
	}
}

func TestDecompressRejectsTruncatedRun(t *testing.T) {
	if _, err := Decompress([]byte{SetLen(5)}); err == nil {
		t.Fatal("expected an error for a dangling run tag")
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{0x00, 0x01, 0x01, 0x01, 0xFF})
	f.Add([]byte{})
	f.Add(repeat(0x7F, 200))

	f.Fuzz(func(t *testing.T, in []byte) {
		compressed := Compress(in)
		got, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress(Compress(in)): %v", err)
		}
		want := lowBitForced(in)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (+got -want):\n%s", diff)
		}
	})
}

func repeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
