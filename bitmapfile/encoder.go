package bitmapfile

import (
	"encoding/binary"

	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/rlecodec"
	"github.com/raulmrio28-git/GreyBitType/section"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

type glyphSlot struct {
	present    bool
	width      byte
	horioff    int8
	raw        []byte // compressed or raw row bytes, per file's Compression setting
	compressed bool
}

// Encoder accumulates glyphs in memory and serializes the complete gbtf
// file only on Flush.
type Encoder struct {
	s *stream.Stream

	inited      bool
	height      int16
	bitCount    int16
	compression int16

	glyphs [0x10000]glyphSlot
	count  int
}

// NewEncoder opens a gbtf encoder writing to s.
func NewEncoder(s *stream.Stream) (format.Encoder, error) {
	return &Encoder{s: s}, nil
}

func (e *Encoder) SetParam(p gbtype.Param, value int) error {
	return &gbtype.UnsupportedError{SubSystem: "bitmapfile", Feature: "encoder param"}
}

// SetHeader configures the glyph box height, bit depth and compression
// flag glyphs are encoded against. Changing the height or the bit depth
// of an already initialized encoder clears every table and cached glyph;
// changing only the compression flag keeps them. The trigger condition is
// "already initialized AND height or bit count differs" (the reference's
// analogous check uses || where && was almost certainly intended; see
// DESIGN.md).
func (e *Encoder) SetHeader(height, bitCount, compression int16) error {
	return e.initHeader(height, bitCount, compression)
}

func (e *Encoder) initHeader(height, bitCount, compression int16) error {
	if bitCount != 1 && bitCount != 8 {
		return &gbtype.InvalidArgumentError{SubSystem: "bitmapfile", Reason: "bitcount must be 1 or 8"}
	}
	if compression != 0 && bitCount != 8 {
		return &gbtype.UnsupportedError{SubSystem: "bitmapfile", Feature: "compression on non-8bpp"}
	}
	changed := e.inited && (height != e.height || bitCount != e.bitCount)
	if changed {
		e.glyphs = [0x10000]glyphSlot{}
		e.count = 0
	}
	e.height = height
	e.bitCount = bitCount
	e.compression = compression
	e.inited = true
	return nil
}

func (e *Encoder) GetCount() int { return e.count }

func (e *Encoder) Delete(code uint32) error {
	if code > 0xFFFF {
		return &gbtype.InvalidArgumentError{SubSystem: "bitmapfile", Reason: "code out of range"}
	}
	if !e.glyphs[code].present {
		return &gbtype.NotFoundError{SubSystem: "bitmapfile", Code: code}
	}
	e.glyphs[code] = glyphSlot{}
	e.count--
	return nil
}

// Encode stores data under code. data must be a bitmap matching the
// encoder's configured bit depth and height, with width <= 3*height (a
// sanity clamp against runaway glyph dimensions).
func (e *Encoder) Encode(code uint32, data *gbtype.GlyphData) error {
	if code > 0xFFFF {
		return &gbtype.InvalidArgumentError{SubSystem: "bitmapfile", Reason: "code out of range"}
	}
	if data == nil || data.Kind != gbtype.KindBitmap || data.Bitmap == nil {
		return &gbtype.InvalidArgumentError{SubSystem: "bitmapfile", Reason: "expected bitmap glyph data"}
	}
	b := data.Bitmap
	if !e.inited {
		if err := e.initHeader(int16(b.Height), int16(b.BitCount), 0); err != nil {
			return err
		}
	}
	if b.BitCount != int(e.bitCount) || b.Height != int(e.height) {
		return &gbtype.InvalidArgumentError{SubSystem: "bitmapfile", Reason: "bitcount/height mismatch"}
	}
	if b.Width > 3*b.Height {
		return &gbtype.InvalidArgumentError{SubSystem: "bitmapfile", Reason: "width exceeds 3x height clamp"}
	}

	raw := b.Buffer
	compressed := e.compression != 0
	if compressed {
		raw = rlecodec.Compress(b.Buffer)
	}

	if !e.glyphs[code].present {
		e.count++
	}
	e.glyphs[code] = glyphSlot{
		present:    true,
		width:      byte(data.Width),
		horioff:    data.HoriOff,
		raw:        raw,
		compressed: compressed,
	}
	return nil
}

// Flush serializes the complete file: header, section-offset blocks,
// dense width/horioff/offset tables, then the glyph payload, in that
// order, per spec.md §4.4's BuildAll/WriteAll sequence.
func (e *Encoder) Flush() error {
	h := &infoHeader{
		BitCount:    e.bitCount,
		Compression: e.compression,
		Height:      e.height,
	}

	var widths, horioffs []byte
	var offsets []uint32
	var payload []byte
	var maxWidth int16

	for s := 0; s < numSections; s++ {
		min, max := section.Rng(s)
		firstPresent := -1
		for code := uint32(min); code <= uint32(max); code++ {
			if e.glyphs[code].present {
				firstPresent = int(code)
				break
			}
		}
		if firstPresent < 0 {
			continue
		}
		h.WidthSection[s] = uint16(len(widths)) + 1
		h.IndexSection[s] = uint16(len(offsets)) + 1
		for code := uint32(min); code <= uint32(max); code++ {
			g := e.glyphs[code]
			var width byte
			var horioff int8
			var off uint32 // 0: absent within a present section (width also stays 0)
			if g.present {
				width, horioff = g.width, g.horioff
				if int16(g.width) > maxWidth {
					maxWidth = int16(g.width)
				}
				off = uint32(len(payload))
				if e.compression != 0 {
					payload = append(payload, byte(len(g.raw)), byte(len(g.raw)>>8))
					payload = append(payload, g.raw...)
				} else {
					payload = append(payload, g.raw...)
				}
			}
			widths = append(widths, width)
			horioffs = append(horioffs, byte(horioff))
			offsets = append(offsets, off)
		}
	}

	h.Width = maxWidth
	h.Count = uint32(e.count)
	h.WidthTabOff = 0
	h.HorioffTabOff = uint32(len(widths))
	h.OffsetTabOff = h.HorioffTabOff + uint32(len(horioffs))
	h.OffGreyBits = h.OffsetTabOff + uint32(len(offsets))*4
	h.Size = uint32(headerSize)

	if _, err := e.s.Seek(0); err != nil {
		return err
	}
	if _, err := e.s.Write([]byte(Magic)); err != nil {
		return err
	}
	if err := writeInfoHeader(e.s, h); err != nil {
		return err
	}
	if _, err := e.s.Write(widths); err != nil {
		return err
	}
	if _, err := e.s.Write(horioffs); err != nil {
		return err
	}
	if err := binary.Write(e.s, binary.LittleEndian, offsets); err != nil {
		return err
	}
	if _, err := e.s.Write(payload); err != nil {
		return err
	}
	return nil
}

func (e *Encoder) Close() error {
	return e.s.Close()
}
