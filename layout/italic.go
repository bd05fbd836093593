package layout

import "github.com/raulmrio28-git/GreyBitType/gbtype"

// Italic shears bm in place: each row is displaced horizontally by an
// amount that grows linearly from the top: rows above the middle move
// left and rows below it move right. It is a no-op for bitmaps too short for any row to get a nonzero
// displacement.
func Italic(bm *gbtype.Bitmap) error {
	if bm.Height>>2 == 0 {
		return nil
	}
	halfOffMax := bm.Height >> 3

	switch bm.BitCount {
	case 8:
		italicGrey(bm, halfOffMax)
	case 1:
		italicMono(bm, halfOffMax)
	default:
		return &gbtype.UnsupportedError{SubSystem: "layout", Feature: "italic bit depth"}
	}
	return nil
}

func italicGrey(bm *gbtype.Bitmap, halfOffMax int) {
	swap := make([]byte, len(bm.Buffer))
	for y := 0; y < bm.Height; y++ {
		off := (y >> 2) - halfOffMax
		srow := bm.Buffer[y*bm.Pitch : y*bm.Pitch+bm.Pitch]
		drow := swap[y*bm.Pitch : y*bm.Pitch+bm.Pitch]
		for x := 0; x < bm.Pitch; x++ {
			d := x + off
			if d < 0 || d >= bm.Pitch {
				continue
			}
			drow[d] = srow[x]
		}
	}
	bm.Buffer = swap
}

func italicMono(bm *gbtype.Bitmap, halfOffMax int) {
	swap := make([]byte, len(bm.Buffer))
	for y := 0; y < bm.Height; y++ {
		off := (y >> 2) - halfOffMax
		srow := bm.Buffer[y*bm.Pitch : y*bm.Pitch+bm.Pitch]
		drow := swap[y*bm.Pitch : y*bm.Pitch+bm.Pitch]
		shiftBitsRow(drow, srow, off)
	}
	bm.Buffer = swap
}
