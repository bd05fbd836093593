// Package format implements the registry of glyph file formats: the LIFO
// list of format descriptors, tag-based decoder probing, and the
// extension-based encoder fallback.
package format

import (
	"strings"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

// Decoder is the capability set every file format decoder exposes.
type Decoder interface {
	SetParam(p gbtype.Param, value int) error
	GetCount() int
	GetWidth(code uint32, size int16) int
	GetHeight() int
	GetAdvance(code uint32, size int16) int16
	Decode(code uint32, size int16) (*gbtype.GlyphData, error)
	Close() error
}

// Encoder is the capability set every file format encoder exposes.
type Encoder interface {
	SetParam(p gbtype.Param, value int) error
	GetCount() int
	Delete(code uint32) error
	Encode(code uint32, data *gbtype.GlyphData) error
	Flush() error
	Close() error
}

// Descriptor registers one file format with the registry.
type Descriptor struct {
	// Tag is the format's 3-byte tag — "gbf", "gvf" or "gcf" — not to be
	// confused with the file's own 4-byte magic, whose middle byte is
	// always the literal 't'.
	Tag string
	// Probe reports whether s holds a file of this format, by checking
	// its first 4 bytes against the format's magic ("gbtf", "gvtf" or
	// "gctf"). Probe must not consume s's position permanently; it seeks
	// back to the start before returning.
	Probe func(s *stream.Stream) bool
	// Ext is the filename extension (including the leading dot) this
	// format's encoder falls back to when no probe succeeds.
	Ext string

	NewDecoder func(s *stream.Stream) (Decoder, error)
	NewEncoder func(s *stream.Stream) (Encoder, error)
}

// Registry is a LIFO list of format descriptors, built at library
// initialization and walked in most-recently-registered-first order by
// both probes.
type Registry struct {
	formats []Descriptor
}

// Register adds d to the front of the registry, so it is tried before any
// previously registered format.
func (r *Registry) Register(d Descriptor) {
	r.formats = append([]Descriptor{d}, r.formats...)
}

// ProbeDecoder walks the registry in order and returns the decoder for the
// first format whose Probe succeeds.
func (r *Registry) ProbeDecoder(s *stream.Stream) (Decoder, error) {
	for _, d := range r.formats {
		if d.NewDecoder == nil {
			continue
		}
		if d.Probe(s) {
			return d.NewDecoder(s)
		}
	}
	return nil, &gbtype.InvalidFormatError{SubSystem: "format", Reason: "no registered format recognizes this stream"}
}

// ProbeEncoder walks the registry exactly as ProbeDecoder does; if no
// probe succeeds, it falls back to matching the stream's associated path
// extension against each format's Ext, so a caller can create an empty
// output file and still select the intended format by filename.
func (r *Registry) ProbeEncoder(s *stream.Stream) (Encoder, error) {
	for _, d := range r.formats {
		if d.NewEncoder == nil {
			continue
		}
		if d.Probe(s) {
			return d.NewEncoder(s)
		}
	}
	path := s.Path()
	for _, d := range r.formats {
		if d.NewEncoder == nil || d.Ext == "" {
			continue
		}
		if strings.EqualFold(pathExt(path), d.Ext) {
			return d.NewEncoder(s)
		}
	}
	return nil, &gbtype.InvalidFormatError{SubSystem: "format", Reason: "no registered format matches this stream or its extension"}
}

func pathExt(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}
