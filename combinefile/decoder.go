package combinefile

import (
	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

// existsProbeSize is the arbitrary size argument used to test whether a
// child decoder carries a given glyph at all: GetWidth(code, 100) != 0.
const existsProbeSize = 100

// Decoder fans a glyph lookup out across up to MaxSlots child decoders,
// each opened over its own windowed view of the underlying stream.
type Decoder struct {
	s       *stream.Stream
	slots   [MaxSlots]slot
	filled  [MaxSlots]bool
	decoder [MaxSlots]format.Decoder
	count   int
}

// NewDecoder opens a gctf decoder over s, opening one child decoder per
// populated slot against the shared, fixed registry of embeddable formats.
func NewDecoder(s *stream.Stream) (format.Decoder, error) {
	magic := make([]byte, 4)
	if _, err := s.Read(magic); err != nil || string(magic) != Magic {
		return nil, &gbtype.InvalidFormatError{SubSystem: "combinefile", Reason: "bad magic"}
	}
	slots, err := readSlots(s)
	if err != nil {
		return nil, err
	}

	d := &Decoder{s: s, slots: slots}
	reg := childRegistry()
	for i, sl := range slots {
		if sl.DataSize == 0 {
			continue
		}
		child := s.Offset(int64(headerSize)+int64(sl.DataOff), int64(sl.DataSize))
		dec, err := reg.ProbeDecoder(child)
		if err != nil {
			return nil, err
		}
		d.filled[i] = true
		d.decoder[i] = dec
		d.count += dec.GetCount()
	}
	return d, nil
}

// route returns the index of the first populated slot whose child decoder
// reports the glyph present, following the "exists?" convention of
// GetWidth(code, existsProbeSize) != 0.
func (d *Decoder) route(code uint32) (int, bool) {
	for i := 0; i < MaxSlots; i++ {
		if !d.filled[i] {
			continue
		}
		if d.decoder[i].GetWidth(code, existsProbeSize) != 0 {
			return i, true
		}
	}
	return 0, false
}

func (d *Decoder) SetParam(p gbtype.Param, value int) error {
	var anyOK bool
	var lastErr error
	for i := 0; i < MaxSlots; i++ {
		if !d.filled[i] {
			continue
		}
		if err := d.decoder[i].SetParam(p, value); err != nil {
			lastErr = err
			continue
		}
		anyOK = true
	}
	if !anyOK {
		if lastErr != nil {
			return lastErr
		}
		return &gbtype.UnsupportedError{SubSystem: "combinefile", Feature: "decoder param"}
	}
	return nil
}

// GetCount is the sum of every child decoder's count.
func (d *Decoder) GetCount() int { return d.count }

// GetHeight always returns 0: each slot carries its own glyph-box height,
// and a combine file has no single one to report.
func (d *Decoder) GetHeight() int { return 0 }

func (d *Decoder) GetWidth(code uint32, size int16) int {
	i, ok := d.route(code)
	if !ok {
		return 0
	}
	return d.decoder[i].GetWidth(code, size)
}

func (d *Decoder) GetAdvance(code uint32, size int16) int16 {
	i, ok := d.route(code)
	if !ok {
		return 0
	}
	return d.decoder[i].GetAdvance(code, size)
}

func (d *Decoder) Decode(code uint32, size int16) (*gbtype.GlyphData, error) {
	i, ok := d.route(code)
	if !ok {
		return nil, &gbtype.NotFoundError{SubSystem: "combinefile", Code: code}
	}
	return d.decoder[i].Decode(code, size)
}

func (d *Decoder) Close() error {
	var firstErr error
	for i := 0; i < MaxSlots; i++ {
		if !d.filled[i] {
			continue
		}
		if err := d.decoder[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := d.s.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
