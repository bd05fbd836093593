package bitmapfile

import (
	"encoding/binary"

	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/rlecodec"
	"github.com/raulmrio28-git/GreyBitType/section"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

// ramMask marks an offset-table entry as a RAM cache slot index rather
// than a file-relative byte offset.
const ramMask uint32 = 0x80000000

type cacheEntry struct {
	raw        []byte
	compressed bool
}

// Decoder reads glyphs from a gbtf stream.
type Decoder struct {
	s      *stream.Stream
	header *infoHeader

	widths   []byte
	horioffs []int8
	offsets  []uint32

	cacheLimit int
	cache      []cacheEntry
}

// NewDecoder opens a gbtf decoder over s, reading and validating the file
// header and the dense width/horioff/offset tables.
func NewDecoder(s *stream.Stream) (format.Decoder, error) {
	magic := make([]byte, 4)
	if _, err := s.Read(magic); err != nil || string(magic) != Magic {
		return nil, &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "bad magic"}
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
		return &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "truncated width table"}
	}

	if _, err := d.s.Seek(int64(magicSize) + int64(headerSize) + int64(h.HorioffTabOff)); err != nil {
		return err
	}
	rawHorioffs := make([]byte, nWidths)
	if _, err := d.s.Read(rawHorioffs); err != nil {
		return &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "truncated horioff table"}
	}
	d.horioffs = make([]int8, nWidths)
	for i, b := range rawHorioffs {
		d.horioffs[i] = int8(b)
	}

	if _, err := d.s.Seek(int64(magicSize) + int64(headerSize) + int64(h.OffsetTabOff)); err != nil {
		return err
	}
	d.offsets = make([]uint32, nOffsets)
	if err := binary.Read(d.s, binary.LittleEndian, d.offsets); err != nil {
		return &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "truncated offset table"}
	}
	return nil
}

// lookup resolves a code point to its dense-table position, per spec.md
// §4.4's 5-step index lookup.
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
		return &gbtype.UnsupportedError{SubSystem: "bitmapfile", Feature: "decoder param"}
	}
}

func (d *Decoder) GetCount() int { return int(d.header.Count) }

func (d *Decoder) GetHeight() int { return int(d.header.Height) }

// GetWidth scales the glyph's raw width to the target pixel size, per the
// file's "size * raw_width / file_height" convention.
func (d *Decoder) GetWidth(code uint32, size int16) int {
	width, _, _, ok := d.lookup(code)
	if !ok {
		return 0
	}
	return int(size) * int(width) / int(d.header.Height)
}

func (d *Decoder) getHoriOff(code uint32, size int16) int {
	_, horioff, _, ok := d.lookup(code)
	if !ok {
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

// Decode reads and, if necessary, decompresses glyph code at the given
// target size, scaling its bitmap dimensions and populating a fresh
// owned Bitmap.
func (d *Decoder) Decode(code uint32, size int16) (*gbtype.GlyphData, error) {
	rawWidth, horioff, offset, ok := d.lookup(code)
	if !ok {
		return nil, &gbtype.NotFoundError{SubSystem: "bitmapfile", Code: code}
	}

	width := int(size) * int(rawWidth) / int(d.header.Height)
	targetPitch := pitch(d.header.BitCount, int16(width))
	height := int(d.header.Height)

	raw, compressed, err := d.readGlyphRecord(code, offset, targetPitch*height)
	if err != nil {
		return nil, err
	}

	var buf []byte
	if compressed {
		buf, err = rlecodec.Decompress(raw)
		if err != nil {
			return nil, err
		}
	} else {
		buf = append([]byte(nil), raw...)
	}
	if len(buf) < targetPitch*height {
		padded := make([]byte, targetPitch*height)
		copy(padded, buf)
		buf = padded
	}

	return &gbtype.GlyphData{
		Kind: gbtype.KindBitmap,
		Bitmap: &gbtype.Bitmap{
			Width: width, Height: height,
			BitCount: int(d.header.BitCount), Pitch: targetPitch,
			Buffer: buf,
		},
		Width:   int16(width),
		HoriOff: int8(int(size) * int(horioff) / int(d.header.Height)),
	}, nil
}

func (d *Decoder) readGlyphRecord(code uint32, offset uint32, rawSize int) ([]byte, bool, error) {
	if offset&ramMask != 0 {
		idx := offset &^ ramMask
		e := d.cache[idx]
		return e.raw, e.compressed, nil
	}

	compressed := d.header.Compression != 0 && d.header.BitCount == 8
	if _, err := d.s.Seek(int64(magicSize) + int64(headerSize) + int64(d.header.OffGreyBits) + int64(offset)); err != nil {
		return nil, false, err
	}

	var raw []byte
	if compressed {
		var n uint16
		if err := binary.Read(d.s, binary.LittleEndian, &n); err != nil {
			return nil, false, &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "truncated record length"}
		}
		raw = make([]byte, n)
	} else {
		raw = make([]byte, rawSize)
	}
	if _, err := d.s.Read(raw); err != nil {
		return nil, false, &gbtype.InvalidFormatError{SubSystem: "bitmapfile", Reason: "truncated glyph record"}
	}

	if d.cacheLimit > 0 && len(d.cache) < d.cacheLimit {
		slot := len(d.cache)
		d.cache = append(d.cache, cacheEntry{raw: raw, compressed: compressed})
		d.rewriteOffset(code, uint32(slot)|ramMask)
	}
	return raw, compressed, nil
}

// rewriteOffset updates the in-memory offset table entry for code to
// point at a RAM cache slot, so future lookups skip the file read.
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

func (d *Decoder) Close() error {
	return d.s.Close()
}
