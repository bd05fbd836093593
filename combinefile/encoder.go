package combinefile

import (
	"io"

	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

// Encoder assembles a gctf file out of up to MaxSlots already-encoded child
// streams (bitmapfile or vectorfile output). Unlike bitmapfile/vectorfile's
// encoders, a combine file is composed at the whole-child-stream
// granularity rather than glyph by glyph; AddChild is the real entry point,
// reached through a type assertion the same way callers reach
// bitmapfile/vectorfile's SetHeader.
type Encoder struct {
	s *stream.Stream

	filled      [MaxSlots]bool
	raw         [MaxSlots][]byte
	childHeight [MaxSlots]uint32
	count       int
}

// NewEncoder opens a gctf encoder writing to s.
func NewEncoder(s *stream.Stream) (format.Encoder, error) {
	return &Encoder{s: s}, nil
}

// AddChild reads child in full, verifies it is a format this container can
// embed, and reserves the next free slot for it.
//
// The reference encoder dereferences its child-stream pointer before
// assigning it, corrupting the slot on a failed probe; this stores the
// child's raw bytes into the slot first and only unassigns it if the
// probe that follows then rejects the format.
func (e *Encoder) AddChild(child *stream.Stream) error {
	idx := -1
	for i := 0; i < MaxSlots; i++ {
		if !e.filled[i] {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &gbtype.InvalidArgumentError{SubSystem: "combinefile", Reason: "all slots already in use"}
	}
	if _, err := child.Seek(0); err != nil {
		return err
	}
	buf, err := io.ReadAll(child)
	if err != nil {
		return &gbtype.InvalidFormatError{SubSystem: "combinefile", Reason: "short read from child stream"}
	}
	if len(buf) == 0 {
		return &gbtype.InvalidArgumentError{SubSystem: "combinefile", Reason: "child stream is empty"}
	}

	e.filled[idx] = true
	e.raw[idx] = buf

	dec, err := childRegistry().ProbeDecoder(stream.NewMemory(buf))
	if err != nil {
		e.filled[idx] = false
		e.raw[idx] = nil
		return err
	}
	e.childHeight[idx] = uint32(dec.GetHeight())
	e.count += dec.GetCount()
	dec.Close()
	return nil
}

func (e *Encoder) SetParam(p gbtype.Param, value int) error {
	return &gbtype.UnsupportedError{SubSystem: "combinefile", Feature: "encoder param"}
}

// GetCount is the sum of every added child's glyph count.
func (e *Encoder) GetCount() int { return e.count }

// Delete is not meaningful at the slot granularity a combine file is built
// at; remove glyphs from the child encoder before calling AddChild instead.
func (e *Encoder) Delete(code uint32) error {
	return &gbtype.UnsupportedError{SubSystem: "combinefile", Feature: "per-glyph delete"}
}

// Encode is not meaningful at this granularity either; see AddChild.
func (e *Encoder) Encode(code uint32, data *gbtype.GlyphData) error {
	return &gbtype.UnsupportedError{SubSystem: "combinefile", Feature: "per-glyph encode"}
}

// Flush writes the magic tag, the slot table, and the concatenated raw
// child bytes in slot order.
func (e *Encoder) Flush() error {
	var slots [MaxSlots]slot
	var payload []byte
	for i := 0; i < MaxSlots; i++ {
		if !e.filled[i] {
			continue
		}
		slots[i] = slot{
			Height:   e.childHeight[i],
			DataOff:  uint32(len(payload)),
			DataSize: uint32(len(e.raw[i])),
		}
		payload = append(payload, e.raw[i]...)
	}

	if _, err := e.s.Seek(0); err != nil {
		return err
	}
	if _, err := e.s.Write([]byte(Magic)); err != nil {
		return err
	}
	if err := writeSlots(e.s, slots); err != nil {
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
