package format

import (
	"testing"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
	"github.com/raulmrio28-git/GreyBitType/stream"
)

type stubDecoder struct{ name string }

func (s *stubDecoder) SetParam(gbtype.Param, int) error { return nil }
func (s *stubDecoder) GetCount() int                    { return 0 }
func (s *stubDecoder) GetWidth(uint32, int16) int       { return 0 }
func (s *stubDecoder) GetHeight() int                   { return 0 }
func (s *stubDecoder) GetAdvance(uint32, int16) int16   { return 0 }
func (s *stubDecoder) Decode(uint32, int16) (*gbtype.GlyphData, error) {
	return nil, &gbtype.NotFoundError{SubSystem: s.name}
}
func (s *stubDecoder) Close() error { return nil }

func magicProbe(magic string) func(*stream.Stream) bool {
	return func(s *stream.Stream) bool {
		buf := make([]byte, 4)
		n, _ := s.Read(buf)
		s.Seek(0)
		return n == 4 && string(buf) == magic
	}
}

func TestProbeDecoderPicksMatchingFormat(t *testing.T) {
	var r Registry
	r.Register(Descriptor{
		Tag:   "gbf",
		Probe: magicProbe("gbtf"),
		NewDecoder: func(s *stream.Stream) (Decoder, error) {
			return &stubDecoder{name: "gbf"}, nil
		},
	})
	r.Register(Descriptor{
		Tag:   "gvf",
		Probe: magicProbe("gvtf"),
		NewDecoder: func(s *stream.Stream) (Decoder, error) {
			return &stubDecoder{name: "gvf"}, nil
		},
	})

	s := stream.NewMemory([]byte("gvtf-rest-of-file"))
	dec, err := r.ProbeDecoder(s)
	if err != nil {
		t.Fatal(err)
	}
	if dec.(*stubDecoder).name != "gvf" {
		t.Fatalf("picked format %q, want gvf", dec.(*stubDecoder).name)
	}
}

func TestProbeDecoderNoMatch(t *testing.T) {
	var r Registry
	r.Register(Descriptor{
		Tag:   "gbf",
		Probe: magicProbe("gbtf"),
		NewDecoder: func(s *stream.Stream) (Decoder, error) {
			return &stubDecoder{}, nil
		},
	})
	s := stream.NewMemory([]byte("xxxx"))
	if _, err := r.ProbeDecoder(s); err == nil {
		t.Fatal("expected an error when no format matches")
	}
}

func TestProbeEncoderFallsBackToExtension(t *testing.T) {
	var r Registry
	called := false
	r.Register(Descriptor{
		Tag:   "gvf",
		Ext:   ".gvtf",
		Probe: magicProbe("gvtf"),
		NewEncoder: func(s *stream.Stream) (Encoder, error) {
			called = true
			return nil, nil
		},
	})
	s := stream.NewRoot(&memNoMagic{}, 0, "output.gvtf")
	if _, err := r.ProbeEncoder(s); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("expected the extension-matched format's NewEncoder to run")
	}
}

type memNoMagic struct{}

func (memNoMagic) ReadAt(p []byte, off int64) (int, error) { return 0, nil }
func (memNoMagic) WriteAt(p []byte, off int64) (int, error) { return len(p), nil }
func (memNoMagic) Close() error                              { return nil }
