// Package greyfont is the top-level wiring for the font engine core: a
// Library owns the format registry every Loader and Creator probes
// against, a Loader opens a decoder over an existing file or buffer, and a
// Creator accumulates glyphs and flushes an encoder's output. This is the
// "process-wide entry points that merely wire a library/loader/layout/
// creator handle together" collaborator spec.md calls out as external —
// kept minimal and host-agnostic, with no behaviour of its own beyond
// dispatch to the codec packages it wires together.
package greyfont

import (
	"os"

	"github.com/raulmrio28-git/GreyBitType/bitmapfile"
	"github.com/raulmrio28-git/GreyBitType/combinefile"
	"github.com/raulmrio28-git/GreyBitType/format"
	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
	"github.com/raulmrio28-git/GreyBitType/vectorfile"
)

// Library owns the format registry every Loader and Creator it opens
// probes against. Per spec.md §5, a Library allocates nothing but this
// registry; Loaders and Creators opened from it are fully independent
// siblings that share no further mutable state.
type Library struct {
	registry *format.Registry
}

// New builds a Library with the standard gbtf/gvtf/gctf formats
// registered. Formats form a LIFO list (spec.md §4.3): the combine format
// is registered last, so it is probed first, though since every format's
// probe checks a distinct 4-byte magic the registration order has no
// observable effect on which one matches.
func New() *Library {
	lib := &Library{registry: &format.Registry{}}
	lib.registry.Register(format.Descriptor{
		Tag:        "gbf",
		Probe:      bitmapfile.Probe,
		Ext:        ".gbtf",
		NewDecoder: bitmapfile.NewDecoder,
		NewEncoder: bitmapfile.NewEncoder,
	})
	lib.registry.Register(format.Descriptor{
		Tag:        "gvf",
		Probe:      vectorfile.Probe,
		Ext:        ".gvtf",
		NewDecoder: vectorfile.NewDecoder,
		NewEncoder: vectorfile.NewEncoder,
	})
	lib.registry.Register(format.Descriptor{
		Tag:        "gcf",
		Probe:      combinefile.Probe,
		Ext:        ".gctf",
		NewDecoder: combinefile.NewDecoder,
		NewEncoder: combinefile.NewEncoder,
	})
	return lib
}

// Done releases lib. A Library owns no resources beyond its registry, so
// this is a no-op kept only to mirror the reference's Library_Done and
// give callers a symmetric New/Done pair.
func (lib *Library) Done() error { return nil }

func openFile(path string, write bool) (*os.File, int64, error) {
	var f *os.File
	var err error
	if write {
		f, err = os.Create(path)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, 0, &gbtype.InvalidArgumentError{SubSystem: "greyfont", Reason: "cannot open " + path}
	}
	size := int64(0)
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}
	return f, size, nil
}

// fileStream opens path through the host's ordinary file I/O (the "host
// I/O backend" is an external collaborator per spec.md §1; this repo
// talks to it through the standard library's os package, which already
// satisfies stream.Handle).
func fileStream(path string, write bool) (*stream.Stream, error) {
	f, size, err := openFile(path, write)
	if err != nil {
		return nil, err
	}
	return stream.NewRoot(f, size, path), nil
}
