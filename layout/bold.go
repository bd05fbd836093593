package layout

import "github.com/raulmrio28-git/GreyBitType/gbtype"

// Bold emboldens bm in place by adding a copy of each row, shifted right
// by a height-derived offset, onto itself (8-bpp) or shifting each row's
// packed bits right by that offset (1-bpp). It is a no-op (not an error)
// for bitmaps too short for any offset to apply.
func Bold(bm *gbtype.Bitmap) error {
	off := bm.Height >> 5
	if off == 0 {
		return nil
	}
	if off > 4 {
		off = 4
	}

	switch bm.BitCount {
	case 8:
		boldGrey(bm, off)
	case 1:
		boldMono(bm, off)
	default:
		return &gbtype.UnsupportedError{SubSystem: "layout", Feature: "bold bit depth"}
	}
	return nil
}

func boldGrey(bm *gbtype.Bitmap, off int) {
	swap := append([]byte(nil), bm.Buffer...)
	for y := 0; y < bm.Height; y++ {
		srow := bm.Buffer[y*bm.Pitch : y*bm.Pitch+bm.Pitch]
		drow := swap[y*bm.Pitch : y*bm.Pitch+bm.Pitch]
		for x := 0; x < bm.Pitch-off; x++ {
			sum := int(srow[x]) + int(drow[x+off])
			if sum <= 255 {
				drow[x+off] = byte(sum)
			} else {
				drow[x+off] = 0xff
			}
		}
	}
	bm.Buffer = swap
}

func boldMono(bm *gbtype.Bitmap, off int) {
	swap := make([]byte, len(bm.Buffer))
	for y := 0; y < bm.Height; y++ {
		srow := bm.Buffer[y*bm.Pitch : y*bm.Pitch+bm.Pitch]
		drow := swap[y*bm.Pitch : y*bm.Pitch+bm.Pitch]
		shiftBitsRow(drow, srow, off)
	}
	bm.Buffer = swap
}

// shiftBitsRow writes into dst (which must start zeroed and be the same
// length as src) the bits of src shifted by off bit positions: positive
// off moves a bit toward higher indices (right, toward later pixels),
// negative moves it toward lower ones. Bits shifted past either edge are
// dropped. This generalizes the reference's single-byte adjacent-carry
// trick to an arbitrary offset, since italic's offset can exceed one byte
// for tall glyphs.
func shiftBitsRow(dst, src []byte, off int) {
	width := len(src) * 8
	for bit := 0; bit < width; bit++ {
		if src[bit>>3]&(1<<(7-uint(bit%8))) == 0 {
			continue
		}
		d := bit + off
		if d < 0 || d >= width {
			continue
		}
		dst[d>>3] |= 1 << (7 - uint(d%8))
	}
}
