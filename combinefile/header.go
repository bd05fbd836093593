// Package combinefile implements the gctf (combine) container format: a
// fixed table of up to 5 slots, each embedding a complete child bitmapfile
// or vectorfile stream, routed per glyph by which child reports the glyph
// present.
package combinefile

import (
	"encoding/binary"
	"io"

	"github.com/raulmrio28-git/GreyBitType/bitmapfile"
	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
	"github.com/raulmrio28-git/GreyBitType/vectorfile"
)

// Magic is the 4-byte tag every gctf file opens with.
const Magic = "gctf"

// MaxSlots is the number of embedded-file slots a gctf file carries,
// whether or not all of them are populated.
const MaxSlots = 5

// slot is one entry of the fixed 5-slot table. An unused slot has
// DataSize == 0.
type slot struct {
	Height   uint32
	DataOff  uint32
	DataSize uint32
}

const slotSize = 4 + 4 + 4
const headerSize = 4 + MaxSlots*slotSize // magic + slot table

func readSlots(r io.Reader) ([MaxSlots]slot, error) {
	var slots [MaxSlots]slot
	for i := range slots {
		fields := []any{&slots[i].Height, &slots[i].DataOff, &slots[i].DataSize}
		for _, f := range fields {
			if err := binary.Read(r, binary.LittleEndian, f); err != nil {
				return slots, &gbtype.InvalidFormatError{SubSystem: "combinefile", Reason: "truncated slot table"}
			}
		}
	}
	return slots, nil
}

func writeSlots(w io.Writer, slots [MaxSlots]slot) error {
	for _, s := range slots {
		fields := []any{s.Height, s.DataOff, s.DataSize}
		for _, f := range fields {
			if err := binary.Write(w, binary.LittleEndian, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Probe reports whether s opens with the gctf magic tag, leaving s
// positioned at the start.
func Probe(s *stream.Stream) bool {
	buf := make([]byte, 4)
	n, _ := s.Read(buf)
	s.Seek(0)
	return n == 4 && string(buf) == Magic
}

// childRegistry is the fixed set of formats a combine file's slots may
// embed. It deliberately excludes gctf itself: the format is a flat
// container, not a recursive one.
func childRegistry() *format.Registry {
	reg := &format.Registry{}
	reg.Register(format.Descriptor{
		Tag:        "gbf",
		Probe:      bitmapfile.Probe,
		Ext:        ".gbtf",
		NewDecoder: bitmapfile.NewDecoder,
		NewEncoder: bitmapfile.NewEncoder,
	})
	reg.Register(format.Descriptor{
		Tag:        "gvf",
		Probe:      vectorfile.Probe,
		Ext:        ".gvtf",
		NewDecoder: vectorfile.NewDecoder,
		NewEncoder: vectorfile.NewEncoder,
	})
	return reg
}
