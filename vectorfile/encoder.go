package vectorfile

import (
	"encoding/binary"

	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/outline"
	"github.com/raulmrio28-git/GreyBitType/section"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

type glyphSlot struct {
	present bool
	width   byte
	horioff int8
	rec     []byte // packed outline record, without its u16 length prefix
}

// Encoder accumulates glyphs in memory and serializes the complete gvtf
// file only on Flush.
type Encoder struct {
	s *stream.Stream

	inited bool
	height int16

	glyphs [0x10000]glyphSlot
	count  int

	maxPoints, maxContours int16
}

// NewEncoder opens a gvtf encoder writing to s.
func NewEncoder(s *stream.Stream) (format.Encoder, error) {
	return &Encoder{s: s}, nil
}

func (e *Encoder) SetParam(p gbtype.Param, value int) error {
	return &gbtype.UnsupportedError{SubSystem: "vectorfile", Feature: "encoder param"}
}

// SetHeader configures the glyph-box height outlines are scaled against.
// Changing it after glyphs have already been added clears every table and
// cached glyph, mirroring bitmapfile's re-initialization rule.
func (e *Encoder) SetHeader(height int16) error {
	changed := e.inited && height != e.height
	if changed {
		e.glyphs = [0x10000]glyphSlot{}
		e.count = 0
		e.maxPoints, e.maxContours = 0, 0
	}
	e.height = height
	e.inited = true
	return nil
}

func (e *Encoder) GetCount() int { return e.count }

func (e *Encoder) Delete(code uint32) error {
	if code > 0xFFFF {
		return &gbtype.InvalidArgumentError{SubSystem: "vectorfile", Reason: "code out of range"}
	}
	if !e.glyphs[code].present {
		return &gbtype.NotFoundError{SubSystem: "vectorfile", Code: code}
	}
	e.glyphs[code] = glyphSlot{}
	e.count--
	return nil
}

// Encode stores data under code. data must carry an outline whose point
// and contour counts fit the packed form's byte-sized fields.
func (e *Encoder) Encode(code uint32, data *gbtype.GlyphData) error {
	if code > 0xFFFF {
		return &gbtype.InvalidArgumentError{SubSystem: "vectorfile", Reason: "code out of range"}
	}
	if data == nil || data.Kind != gbtype.KindOutline || data.Outline == nil {
		return &gbtype.InvalidArgumentError{SubSystem: "vectorfile", Reason: "expected outline glyph data"}
	}
	o := data.Outline
	if o.NContours() > outline.MaxContours || o.NPoints() > outline.MaxPoints {
		return &gbtype.InvalidOutlineError{Reason: "outline exceeds the packed format's byte-sized counts"}
	}
	if !e.inited {
		e.inited = true
	}

	rec := encodePacked(o)
	if !e.glyphs[code].present {
		e.count++
	}
	e.glyphs[code] = glyphSlot{
		present: true,
		width:   byte(data.Width),
		horioff: data.HoriOff,
		rec:     rec,
	}
	if int16(o.NPoints()) > e.maxPoints {
		e.maxPoints = int16(o.NPoints())
	}
	if int16(o.NContours()) > e.maxContours {
		e.maxContours = int16(o.NContours())
	}
	return nil
}

func encodePacked(o *gbtype.Outline) []byte {
	rec := make([]byte, 0, 2+len(o.Contours)+2*len(o.Points))
	rec = append(rec, byte(len(o.Contours)), byte(len(o.Points)))
	for _, c := range o.Contours {
		rec = append(rec, byte(c))
	}
	for i, p := range o.Points {
		packed := outline.Pack(p, o.Tags[i])
		rec = append(rec, packed.X, packed.Y)
	}
	return rec
}

// Flush serializes the complete file, in the same section/dense-table/
// payload order as bitmapfile.
func (e *Encoder) Flush() error {
	h := &infoHeader{
		MaxPoints:   e.maxPoints,
		MaxContours: e.maxContours,
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
			var off uint32
			if g.present {
				width, horioff = g.width, g.horioff
				if int16(g.width) > maxWidth {
					maxWidth = int16(g.width)
				}
				off = uint32(len(payload))
				payload = append(payload, byte(len(g.rec)), byte(len(g.rec)>>8))
				payload = append(payload, g.rec...)
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
