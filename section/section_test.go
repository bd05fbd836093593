package section

import "testing"

func TestIndexRoundTrip(t *testing.T) {
	for code := 0; code <= 0xFFFF; code++ {
		i := Index(uint16(code))
		if i == Count {
			continue
		}
		min, max := Rng(i)
		if uint16(code) < min || uint16(code) > max {
			t.Fatalf("code %#04x: Index returned %d, range is %#04x..%#04x", code, i, min, max)
		}
	}
}

func TestFinalSectionCoversFullRange(t *testing.T) {
	min, max := Rng(Count - 1)
	if min != 0xFFF0 || max != 0xFFFF {
		t.Fatalf("final section is %#04x..%#04x, want 0xFFF0..0xFFFF", min, max)
	}

	min, max = Rng(114)
	if max != 0x9FBF {
		t.Fatalf("CJK Unified Ideographs section ends at %#04x, want 0x9FBF", max)
	}
	if Index(0x9FBF) == Count {
		t.Fatalf("0x9FBF should resolve to a section, got sentinel")
	}
}

func TestTableSorted(t *testing.T) {
	for i := 1; i < len(Table); i++ {
		if Table[i].Min <= Table[i-1].Max {
			t.Fatalf("entry %d overlaps entry %d", i, i-1)
		}
	}
}

func TestLen(t *testing.T) {
	for i, r := range Table {
		want := int(r.Max) - int(r.Min) + 1
		if got := Len(i); got != want {
			t.Fatalf("Len(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestIndexSentinelForGap(t *testing.T) {
	// 0x1BB1..0x1BBF lies between the Sundanese and Batak sections and is
	// not covered by any entry.
	if got := Index(0x1BB5); got != Count {
		min, max := Rng(got)
		t.Fatalf("Index(0x1bb5) = %d (%#04x..%#04x), want sentinel %d", got, min, max, Count)
	}
}
