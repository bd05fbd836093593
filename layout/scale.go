package layout

import "github.com/raulmrio28-git/GreyBitType/gbtype"

// bitmap8to1SwitchValue is the 8-bpp coverage threshold above which an
// 8-to-1 scale considers a pixel lit.
const bitmap8to1SwitchValue = 127

// ScaleBitmap allocates and fills a new bitmap of height dstHeight and bit
// depth dstBitCount from src, using fixed-point (10-fractional-bit)
// nearest-neighbour sampling on both axes. Width and pitch are derived
// from src's aspect ratio; see scaleHoriOff for the matching bearing
// scale.
func ScaleBitmap(src *gbtype.Bitmap, dstHeight, dstBitCount int) (*gbtype.Bitmap, error) {
	if src == nil || src.Height <= 0 {
		return nil, &gbtype.InvalidArgumentError{SubSystem: "layout", Reason: "scale source has no height"}
	}
	dst := &gbtype.Bitmap{
		Height:   dstHeight,
		BitCount: dstBitCount,
		Width:    src.Width * dstHeight / src.Height,
	}

	switch {
	case dstBitCount == 8 && src.BitCount == 8:
		dst.Pitch = dst.Width
		dst.Buffer = make([]byte, dst.Pitch*dst.Height)
		scale8to8(dst, src)
	case dstBitCount == 1 && src.BitCount == 1:
		dst.Pitch = pitch1bpp(dst.Width)
		dst.Buffer = make([]byte, dst.Pitch*dst.Height)
		scale1to1(dst, src)
	case dstBitCount == 8 && src.BitCount == 1:
		dst.Pitch = dst.Width
		dst.Buffer = make([]byte, dst.Pitch*dst.Height)
		scale1to8(dst, src)
	case dstBitCount == 1 && src.BitCount == 8:
		dst.Pitch = pitch1bpp(dst.Width)
		dst.Buffer = make([]byte, dst.Pitch*dst.Height)
		scale8to1(dst, src)
	default:
		return nil, &gbtype.UnsupportedError{SubSystem: "layout", Feature: "bit depth combination"}
	}
	return dst, nil
}

// scaleHoriOff scales a horizontal bearing by the same dstHeight/srcHeight
// ratio ScaleBitmap uses for width, matching the reference's
// dst.horioff = src.horioff * dst.height / src.height.
func scaleHoriOff(horioff int8, srcHeight, dstHeight int) int8 {
	if srcHeight == 0 {
		return horioff
	}
	return int8(int(horioff) * dstHeight / srcHeight)
}

func pitch1bpp(width int) int {
	p := width >> 3
	if p == 0 {
		p = 1
	}
	return p
}

// srcIndex maps a destination coordinate in [0, dstExtent) to the nearest
// source coordinate in [0, srcExtent), using a 10-bit fixed-point ratio.
func srcIndex(srcExtent, dstExtent, i int) int {
	return ((srcExtent << 10) / dstExtent * i) >> 10
}

func getBit1bpp(buf []byte, pitch, x int) int {
	b := buf[x>>3]
	return int(b>>(7-uint(x%8))) & 1
}

func setBit1bpp(buf []byte, x int) {
	buf[x>>3] |= 1 << (7 - uint(x%8))
}

func scale8to8(dst, src *gbtype.Bitmap) {
	for i := 0; i < dst.Height; i++ {
		sy := srcIndex(src.Height, dst.Height, i)
		drow := dst.Buffer[i*dst.Pitch:]
		srow := src.Buffer[sy*src.Pitch:]
		for j := 0; j < dst.Width; j++ {
			sx := srcIndex(src.Width, dst.Width, j)
			drow[j] = srow[sx]
		}
	}
}

func scale1to1(dst, src *gbtype.Bitmap) {
	for i := 0; i < dst.Height; i++ {
		sy := srcIndex(src.Height, dst.Height, i)
		drow := dst.Buffer[i*dst.Pitch : i*dst.Pitch+dst.Pitch]
		srow := src.Buffer[sy*src.Pitch:]
		for j := range drow {
			drow[j] = 0
		}
		for j := 0; j < dst.Width; j++ {
			sx := srcIndex(src.Width, dst.Width, j)
			if getBit1bpp(srow, src.Pitch, sx) != 0 {
				setBit1bpp(drow, j)
			}
		}
	}
}

func scale1to8(dst, src *gbtype.Bitmap) {
	for i := 0; i < dst.Height; i++ {
		sy := srcIndex(src.Height, dst.Height, i)
		drow := dst.Buffer[i*dst.Pitch:]
		srow := src.Buffer[sy*src.Pitch:]
		for j := 0; j < dst.Width; j++ {
			sx := srcIndex(src.Width, dst.Width, j)
			if getBit1bpp(srow, src.Pitch, sx) != 0 {
				drow[j] = 0xff
			} else {
				drow[j] = 0x00
			}
		}
	}
}

func scale8to1(dst, src *gbtype.Bitmap) {
	for i := 0; i < dst.Height; i++ {
		sy := srcIndex(src.Height, dst.Height, i)
		drow := dst.Buffer[i*dst.Pitch : i*dst.Pitch+dst.Pitch]
		srow := src.Buffer[sy*src.Pitch:]
		for j := range drow {
			drow[j] = 0
		}
		for j := 0; j < dst.Width; j++ {
			sx := srcIndex(src.Width, dst.Width, j)
			if srow[sx] > bitmap8to1SwitchValue {
				setBit1bpp(drow, j)
			}
		}
	}
}
