// Package vectorfile implements the gvtf (vector glyph) file format: the
// same section-indexed table structure as bitmapfile, but each glyph
// record holds a packed outline instead of pixel rows.
package vectorfile

import (
	"encoding/binary"
	"io"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/section"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

// Magic is the 4-byte tag every gvtf file opens with.
const Magic = "gvtf"

// magicSize is the byte length of Magic, the fixed offset every table and
// header field is measured past (tables and OffGreyBits are themselves
// relative to end-of-headers, i.e. magicSize+headerSize bytes in).
const magicSize = 4

const numSections = section.Count

// infoHeader mirrors bitmapfile's, with bitcount/compression replaced by
// the maximum point and contour counts any glyph in the file uses.
type infoHeader struct {
	Size          uint32
	Count         uint32
	MaxPoints     int16
	MaxContours   int16
	Width         int16
	Height        int16
	WidthTabOff   uint32
	HorioffTabOff uint32
	OffsetTabOff  uint32
	OffGreyBits   uint32
	WidthSection  [numSections]uint16
	IndexSection  [numSections]uint16
}

const fixedHeaderSize = 4 + 4 + 2 + 2 + 2 + 2 + 4 + 4 + 4 + 4
const headerSize = fixedHeaderSize + 2*numSections*2

func readInfoHeader(r io.Reader) (*infoHeader, error) {
	var h infoHeader
	fields := []any{
		&h.Size, &h.Count, &h.MaxPoints, &h.MaxContours,
		&h.Width, &h.Height, &h.WidthTabOff, &h.HorioffTabOff,
		&h.OffsetTabOff, &h.OffGreyBits,
	}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return nil, &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated header: " + err.Error()}
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &h.WidthSection); err != nil {
		return nil, &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated width section block"}
	}
	if err := binary.Read(r, binary.LittleEndian, &h.IndexSection); err != nil {
		return nil, &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated index section block"}
	}
	return &h, nil
}

func writeInfoHeader(w io.Writer, h *infoHeader) error {
	fields := []any{
		h.Size, h.Count, h.MaxPoints, h.MaxContours,
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

// Probe reports whether s opens with the gvtf magic tag, leaving s
// positioned at the start.
func Probe(s *stream.Stream) bool {
	buf := make([]byte, 4)
	n, _ := s.Read(buf)
	s.Seek(0)
	return n == 4 && string(buf) == Magic
}
