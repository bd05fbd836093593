package greyfont

import (
	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

// existsProbeSize is the arbitrary point size the reference uses to ask
// "does this glyph exist at all" without caring about its scaled result.
const existsProbeSize int16 = 100

// Loader opens a decoder over an existing glyph file or buffer. It
// implements format.Decoder itself, so it can be handed directly to
// layout.New without the caller reaching into its internals.
type Loader struct {
	dec format.Decoder
}

// New opens path, probes it against lib's format registry, and returns a
// Loader wrapping the matching decoder.
func New(lib *Library, path string) (*Loader, error) {
	s, err := fileStream(path, false)
	if err != nil {
		return nil, err
	}
	return newLoader(lib, s)
}

// NewMemory wraps buf as an in-memory stream and probes it the same way
// New does for a file.
func NewMemory(lib *Library, buf []byte) (*Loader, error) {
	return newLoader(lib, stream.NewMemory(buf))
}

// NewStream opens a Loader over a caller-supplied stream, windowed to
// size bytes (0 meaning "the rest of s"). Passing the same parent stream
// to multiple NewStream calls is how callers share one underlying file
// across several Loaders, per spec.md §5's parent/child stream model —
// each windowed child keeps the shared parent alive through its own
// reference count.
func NewStream(lib *Library, s *stream.Stream, size int64) (*Loader, error) {
	return newLoader(lib, s.Offset(0, size))
}

func newLoader(lib *Library, s *stream.Stream) (*Loader, error) {
	dec, err := lib.registry.ProbeDecoder(s)
	if err != nil {
		s.Close()
		return nil, err
	}
	return &Loader{dec: dec}, nil
}

// SetParam forwards to the underlying decoder. The only decoder-side
// param spec.md §6 names is ParamCacheItem.
func (l *Loader) SetParam(p gbtype.Param, value int) error {
	return l.dec.SetParam(p, value)
}

// GetCount returns the number of glyph records in the underlying file.
func (l *Loader) GetCount() int { return l.dec.GetCount() }

// GetHeight returns the file's glyph box height, or 0 if the format (gvtf,
// gctf) has none to report at this level — see spec.md §4.5 and §4.6.
func (l *Loader) GetHeight() int { return l.dec.GetHeight() }

// GetWidth forwards to the underlying decoder.
func (l *Loader) GetWidth(code uint32, size int16) int { return l.dec.GetWidth(code, size) }

// GetAdvance forwards to the underlying decoder.
func (l *Loader) GetAdvance(code uint32, size int16) int16 { return l.dec.GetAdvance(code, size) }

// Exists reports whether code has a glyph in this file, per spec.md §6's
// "exists(code) = get_width(code, 100) != 0" convention.
func (l *Loader) Exists(code uint32) bool {
	return l.dec.GetWidth(code, existsProbeSize) != 0
}

// Decode forwards to the underlying decoder.
func (l *Loader) Decode(code uint32, size int16) (*gbtype.GlyphData, error) {
	return l.dec.Decode(code, size)
}

// Done closes the underlying decoder, which in turn releases this
// Loader's reference to its stream (every decoder's Close forwards to its
// stream's Close, per spec.md §4.4-§4.6).
func (l *Loader) Done() error {
	return l.dec.Close()
}

// Close is an alias for Done, matching Go's io.Closer convention so a
// *Loader can be used with defer loader.Close() idiomatically.
func (l *Loader) Close() error { return l.Done() }
