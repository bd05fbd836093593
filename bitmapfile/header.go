// Package bitmapfile implements the gbtf (bitmap glyph) file format: a
// header of fixed-size fields followed by two 146-entry section-offset
// blocks, three dense per-glyph tables, and a payload region of raw or
// RLE-compressed pixel rows.
package bitmapfile

import (
	"encoding/binary"
	"io"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/section"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

// Magic is the 4-byte tag every gbtf file opens with.
const Magic = "gbtf"

// magicSize is the byte length of Magic, the fixed offset every table and
// header field is measured past (tables and OffGreyBits are themselves
// relative to end-of-headers, i.e. magicSize+headerSize bytes in).
const magicSize = 4

const numSections = section.Count

// infoHeader is the fixed-size part of the file header, read and written
// field-by-field (never as a single native struct copy, to stay immune to
// host struct padding and endianness).
type infoHeader struct {
	Size          uint32
	Count         uint32
	BitCount      int16
	Compression   int16
	Width         int16
	Height        int16
	WidthTabOff   uint32
	HorioffTabOff uint32
	OffsetTabOff  uint32
	OffGreyBits   uint32
	WidthSection  [numSections]uint16
	IndexSection  [numSections]uint16
}

// fixedHeaderSize is the byte size of infoHeader up to (not including)
// the two section-offset blocks.
const fixedHeaderSize = 4 + 4 + 2 + 2 + 2 + 2 + 4 + 4 + 4 + 4

// headerSize is the total on-disk size of infoHeader.
const headerSize = fixedHeaderSize + 2*numSections*2

func readInfoHeader(r io.Reader) (*infoHeader, error) {
	var h infoHeader
	fields := []any{
		&h.Size, &h.Count, &h.BitCount, &h.Compression,
		&h.Width, &h.Height, &h.WidthTabOff, &h.HorioffTabOff,
		&h.OffsetTabOff, &h.OffGreyBits,
	}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return nil, &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "truncated header: " + err.Error()}
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &h.WidthSection); err != nil {
		return nil, &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "truncated width section block"}
	}
	if err := binary.Read(r, binary.LittleEndian, &h.IndexSection); err != nil {
		return nil, &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "truncated index section block"}
	}
	return &h, nil
}

func writeInfoHeader(w io.Writer, h *infoHeader) error {
	fields := []any{
		h.Size, h.Count, h.BitCount, h.Compression,
		h.Width, h.Height, h.WidthTabOff, h.HorioffTabOff,
		h.OffsetTabOff, h.OffGreyBits,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, &h.WidthSection); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, &h.IndexSection)
}

// Probe reports whether s opens with the gbtf magic tag, leaving s
// positioned at the start.
func Probe(s *stream.Stream) bool {
	buf := make([]byte, 4)
	n, _ := s.Read(buf)
	s.Seek(0)
	return n == 4 && string(buf) == Magic
}

// pitch computes the byte stride of one row at the given width and bit
// depth: ceil(bitcount*width/8), written in the reference's
// ceil(8*bitcount*width/64) form before it's reduced.
func pitch(bitCount int16, width int16) int {
	return (int(bitCount)*int(width) + 7) / 8
}
