package vectorfile

import (
	"encoding/binary"

	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/outline"
	"github.com/raulmrio28-git/GreyBitType/section"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

const ramMask uint32 = 0x80000000

// Decoder reads glyphs from a gvtf stream.
type Decoder struct {
	s      *stream.Stream
	header *infoHeader

	widths   []byte
	horioffs []int8
	offsets  []uint32

	cacheLimit int
	cache      []*gbtype.Outline
}

// NewDecoder opens a gvtf decoder over s.
func NewDecoder(s *stream.Stream) (format.Decoder, error) {
	magic := make([]byte, 4)
	if _, err := s.Read(magic); err != nil || string(magic) != Magic {
		return nil, &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "bad magic"}
	}
	h, err := readInfoHeader(s)
	if err != nil {
		return nil, err
	}
	d := &Decoder{s: s, header: h}
	if err := d.loadTables(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Decoder) loadTables() error {
	h := d.header
	var nWidths, nOffsets int
	for i := 0; i < numSections; i++ {
		n := section.Len(i)
		if h.WidthSection[i] != 0 {
			nWidths += n
		}
		if h.IndexSection[i] != 0 {
			nOffsets += n
		}
	}

	if _, err := d.s.Seek(int64(magicSize) + int64(headerSize) + int64(h.WidthTabOff)); err != nil {
		return err
	}
	d.widths = make([]byte, nWidths)
	if _, err := d.s.Read(d.widths); err != nil {
		return &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated width table"}
	}

	if _, err := d.s.Seek(int64(magicSize) + int64(headerSize) + int64(h.HorioffTabOff)); err != nil {
		return err
	}
	raw := make([]byte, nWidths)
	if _, err := d.s.Read(raw); err != nil {
		return &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated horioff table"}
	}
	d.horioffs = make([]int8, nWidths)
	for i, b := range raw {
		d.horioffs[i] = int8(b)
	}

	if _, err := d.s.Seek(int64(magicSize) + int64(headerSize) + int64(h.OffsetTabOff)); err != nil {
		return err
	}
	d.offsets = make([]uint32, nOffsets)
	if err := binary.Read(d.s, binary.LittleEndian, d.offsets); err != nil {
		return &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated offset table"}
	}
	return nil
}

func (d *Decoder) lookup(code uint32) (width byte, horioff int8, offset uint32, ok bool) {
	if code > 0xFFFF {
		return 0, 0, 0, false
	}
	s := section.Index(uint16(code))
	if s >= section.Count {
		return 0, 0, 0, false
	}
	ws := d.header.WidthSection[s]
	is := d.header.IndexSection[s]
	if ws == 0 || is == 0 {
		return 0, 0, 0, false
	}
	min, _ := section.Rng(s)
	k := int(uint16(code) - min)
	width = d.widths[int(ws)-1+k]
	if width == 0 {
		return 0, 0, 0, false
	}
	return width, d.horioffs[int(ws)-1+k], d.offsets[int(is)-1+k], true
}

func (d *Decoder) SetParam(p gbtype.Param, value int) error {
	switch p {
	case gbtype.ParamCacheItem:
		if value > d.cacheLimit {
			d.cacheLimit = value
		}
		return nil
	default:
		return &gbtype.UnsupportedError{SubSystem: "vectorfile", Feature: "decoder param"}
	}
}

func (d *Decoder) GetCount() int { return int(d.header.Count) }

// GetHeight returns 0, the "unknown" sentinel of the format.Decoder
// interface; the file's nominal height stored in InfoHeader.Height is
// exposed separately as Decoder.FileHeight.
func (d *Decoder) GetHeight() int { return 0 }

// FileHeight returns the InfoHeader.Height field (Open Question #4): the
// file's nominal glyph-box height, used to scale outlines at decode time.
func (d *Decoder) FileHeight() int16 { return d.header.Height }

func (d *Decoder) GetWidth(code uint32, size int16) int {
	width, _, _, ok := d.lookup(code)
	if !ok || d.header.Height == 0 {
		return 0
	}
	return int(size) * int(width) / int(d.header.Height)
}

func (d *Decoder) getHoriOff(code uint32, size int16) int {
	_, horioff, _, ok := d.lookup(code)
	if !ok || d.header.Height == 0 {
		return 0
	}
	return int(size) * int(horioff) / int(d.header.Height)
}

func (d *Decoder) GetAdvance(code uint32, size int16) int16 {
	adv := d.GetWidth(code, size) + d.getHoriOff(code, size)
	if adv < 0 {
		adv = 0
	}
	return int16(adv)
}

// Decode reads the glyph's packed outline, unpacking its coordinates into
// 26.6 units, then scales a copy of it to the target size, matching
// GetWidth's integer multiply-then-divide convention.
func (d *Decoder) Decode(code uint32, size int16) (*gbtype.GlyphData, error) {
	_, horioff, offset, ok := d.lookup(code)
	if !ok {
		return nil, &gbtype.NotFoundError{SubSystem: "vectorfile", Code: code}
	}

	o, err := d.readOutline(code, offset)
	if err != nil {
		return nil, err
	}
	o = o.Clone()
	if d.header.Height != 0 {
		outline.Scale(o, int32(size), int32(d.header.Height))
	}

	width := d.GetWidth(code, size)
	horioffScaled := 0
	if d.header.Height != 0 {
		horioffScaled = int(size) * int(horioff) / int(d.header.Height)
	}
	return &gbtype.GlyphData{
		Kind:    gbtype.KindOutline,
		Outline: o,
		Width:   int16(width),
		HoriOff: int8(horioffScaled),
	}, nil
}

func (d *Decoder) readOutline(code uint32, offset uint32) (*gbtype.Outline, error) {
	if offset&ramMask != 0 {
		return d.cache[offset&^ramMask], nil
	}

	if _, err := d.s.Seek(int64(magicSize) + int64(headerSize) + int64(d.header.OffGreyBits) + int64(offset)); err != nil {
		return nil, err
	}
	var recLen uint16
	if err := binary.Read(d.s, binary.LittleEndian, &recLen); err != nil {
		return nil, &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated record length"}
	}
	rec := make([]byte, recLen)
	if _, err := d.s.Read(rec); err != nil {
		return nil, &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated glyph record"}
	}
	o, err := decodePacked(rec)
	if err != nil {
		return nil, err
	}

	if d.cacheLimit > 0 && len(d.cache) < d.cacheLimit {
		slot := len(d.cache)
		d.cache = append(d.cache, o)
		d.rewriteOffset(code, uint32(slot)|ramMask)
	}
	return o, nil
}

func (d *Decoder) rewriteOffset(code uint32, newOffset uint32) {
	s := section.Index(uint16(code))
	if s >= section.Count {
		return
	}
	is := d.header.IndexSection[s]
	if is == 0 {
		return
	}
	min, _ := section.Rng(s)
	k := int(uint16(code) - min)
	d.offsets[int(is)-1+k] = newOffset
}

func decodePacked(rec []byte) (*gbtype.Outline, error) {
	if len(rec) < 2 {
		return nil, &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "record too short for outline header"}
	}
	nContours := int(rec[0])
	nPoints := int(rec[1])
	need := 2 + nContours + 2*nPoints
	if len(rec) < need {
		return nil, &gbtype.InvalidFormatError{SubSystem: "vectorfile", Reason: "truncated outline record"}
	}
	o := outline.New(nContours, nPoints)
	for i := 0; i < nContours; i++ {
		o.Contours[i] = int16(rec[2+i])
	}
	base := 2 + nContours
	for i := 0; i < nPoints; i++ {
		px := rec[base+2*i]
		py := rec[base+2*i+1]
		p, tag := outline.Unpack(outline.PackedPoint{X: px, Y: py})
		o.Points[i] = p
		o.Tags[i] = tag
	}
	return o, nil
}

func (d *Decoder) Close() error {
	return d.s.Close()
}
