package greyfont

import (
	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

// bitmapHeader is implemented by bitmapfile.Encoder: the HEIGHT/BITCOUNT/
// COMPRESS params translate to a single SetHeader call once all three are
// known.
type bitmapHeader interface {
	SetHeader(height, bitCount, compression int16) error
}

// vectorHeader is implemented by vectorfile.Encoder: only HEIGHT applies.
type vectorHeader interface {
	SetHeader(height int16) error
}

// Creator accumulates glyphs in memory against an Encoder obtained from a
// Library's format registry, translating the closed Param set of spec.md
// §6 into each concrete encoder's own header-configuration entry point.
type Creator struct {
	s   *stream.Stream
	enc format.Encoder

	height, bitCount, compress     int
	hasHeight, hasBitCount, hasCmp bool

	dirty bool
}

// New creates path and returns a Creator selecting its format by probing
// the (empty) stream's path extension, per spec.md §4.3's encoder
// fallback rule.
func New(lib *Library, path string) (*Creator, error) {
	s, err := fileStream(path, true)
	if err != nil {
		return nil, err
	}
	return newCreator(lib, s)
}

// NewMemory wraps buf as an in-memory stream. Since a memory stream has no
// path, the registry's probe falls back to whatever bytes buf already
// contains (typically none for a fresh Creator); callers encoding into a
// brand-new memory buffer should prefer the concrete format package's own
// NewEncoder plus greyfont.WrapEncoder instead.
func NewMemory(lib *Library, buf []byte) (*Creator, error) {
	return newCreator(lib, stream.NewMemory(buf))
}

func newCreator(lib *Library, s *stream.Stream) (*Creator, error) {
	enc, err := lib.registry.ProbeEncoder(s)
	if err != nil {
		s.Close()
		return nil, err
	}
	return &Creator{s: s, enc: enc}, nil
}

// WrapEncoder builds a Creator directly around an already-constructed
// Encoder and its Stream, for callers (such as combinefile slot assembly)
// that picked a concrete format package's NewEncoder themselves instead of
// going through a Library's registry probe.
func WrapEncoder(s *stream.Stream, enc format.Encoder) *Creator {
	return &Creator{s: s, enc: enc}
}

// Encoder returns the underlying format.Encoder, for callers that need a
// concrete-type assertion beyond what Creator exposes directly (combine
// file assembly's AddChild, for instance).
func (c *Creator) Encoder() format.Encoder { return c.enc }

// Stream returns the stream this Creator writes to.
func (c *Creator) Stream() *stream.Stream { return c.s }

// SetParam recognizes the four params spec.md §6 names for an encoder:
// ParamHeight, ParamBitCount and ParamCompress accumulate until enough of
// them are known to call the underlying encoder's SetHeader; ParamCacheItem
// is decoder-only and always unsupported here.
func (c *Creator) SetParam(p gbtype.Param, value int) error {
	switch p {
	case gbtype.ParamHeight:
		c.height, c.hasHeight = value, true
	case gbtype.ParamBitCount:
		c.bitCount, c.hasBitCount = value, true
	case gbtype.ParamCompress:
		c.compress, c.hasCmp = value, true
	default:
		return &gbtype.UnsupportedError{SubSystem: "greyfont", Feature: "creator param"}
	}
	return c.applyHeader()
}

func (c *Creator) applyHeader() error {
	if bh, ok := c.enc.(bitmapHeader); ok {
		if !c.hasHeight || !c.hasBitCount {
			return nil // wait for both before the first SetHeader call
		}
		compress := 0
		if c.hasCmp {
			compress = c.compress
		}
		c.dirty = true
		return bh.SetHeader(int16(c.height), int16(c.bitCount), int16(compress))
	}
	if vh, ok := c.enc.(vectorHeader); ok {
		if !c.hasHeight {
			return nil
		}
		c.dirty = true
		return vh.SetHeader(int16(c.height))
	}
	return &gbtype.UnsupportedError{SubSystem: "greyfont", Feature: "header params on this format"}
}

// GetCount returns the number of glyphs encoded so far.
func (c *Creator) GetCount() int { return c.enc.GetCount() }

// Encode stores data under code.
func (c *Creator) Encode(code uint32, data *gbtype.GlyphData) error {
	if err := c.enc.Encode(code, data); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

// Delete removes code's glyph, if present.
func (c *Creator) Delete(code uint32) error {
	if err := c.enc.Delete(code); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

// Flush serializes the accumulated glyphs to the underlying stream.
func (c *Creator) Flush() error {
	if err := c.enc.Flush(); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// Done flushes any unwritten glyphs, then closes the underlying encoder
// and stream.
func (c *Creator) Done() error {
	if c.dirty {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	return c.enc.Close()
}

// Close is an alias for Done, matching Go's io.Closer convention.
func (c *Creator) Close() error { return c.Done() }
