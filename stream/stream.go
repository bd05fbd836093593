// Package stream implements the capability set every codec reads and
// writes through: a seekable, reference-counted view over either a file or
// an in-memory byte buffer.
package stream

import (
	"io"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
)

// Handle is the underlying storage a Stream reads and writes through.
// *os.File already satisfies this interface.
type Handle interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
}

// Stream is a seekable view over a Handle: either the whole handle (a root
// stream) or a byte range within a parent stream (a child, as created by
// combinefile for its embedded sub-streams). Children keep their parent
// alive through reference counting; the underlying Handle is closed only
// when the root's count reaches zero.
type Stream struct {
	handle Handle
	parent *Stream
	path   string

	offset   int64 // start of this stream's range within handle
	size     int64 // 0 means unbounded (root streams over a whole file)
	pos      int64 // current position, relative to offset
	refcount int32
}

// NewRoot wraps h as a root stream of the given size (0 for unbounded) and
// optional path, retained so the format registry can fall back to an
// extension-based encoder probe.
func NewRoot(h Handle, size int64, path string) *Stream {
	return &Stream{handle: h, size: size, path: path, refcount: 1}
}

// NewMemory wraps an in-memory buffer as a root stream. An empty (or nil)
// buf gives an unbounded stream that grows as it is written; a non-empty
// buf gives a stream bounded to len(buf), whose writes are truncated at
// its end.
func NewMemory(buf []byte) *Stream {
	return NewRoot(&memHandle{buf: buf}, int64(len(buf)), "")
}

// Offset creates a child stream over a byte range of s, per the reference
// offset() operation: the child's range starts at off within s and, if
// size is zero, extends to the end of s's own range. Creating a child
// increments s's reference count; the child starts positioned at 0.
func (s *Stream) Offset(off, size int64) *Stream {
	s.refcount++
	child := &Stream{
		handle:   s.handle,
		parent:   s,
		path:     s.path,
		offset:   s.offset + off,
		refcount: 1,
	}
	if size != 0 {
		child.size = size
	} else if s.size != 0 {
		child.size = s.size - off
	}
	child.Seek(0)
	return child
}

// Path returns the filesystem path this stream (or its root ancestor) was
// opened from, or "" for a stream with no associated path.
func (s *Stream) Path() string {
	return s.path
}

// Size returns the stream's byte length, or 0 if unbounded.
func (s *Stream) Size() int64 {
	return s.size
}

// Seek positions the stream at pos, relative to the start of its own
// range. A request at or past the end of a bounded stream is rejected: a
// memory-backed stream reports this by returning 0 without moving the
// position, matching the reference implementation's behaviour for its one
// fully in-memory backend; a file-backed stream simply forwards the
// request, since seeking past end-of-file is ordinary and only becomes an
// error once something is actually read there.
func (s *Stream) Seek(pos int64) (int64, error) {
	if pos < 0 {
		return 0, &gbtype.InvalidArgumentError{SubSystem: "stream", Reason: "negative seek position"}
	}
	if s.size > 0 && pos >= s.size {
		if _, isMemory := s.handle.(*memHandle); isMemory {
			return 0, nil
		}
	}
	s.pos = pos
	return pos, nil
}

// Read fills p from the stream's current position, truncating to the
// remaining bytes in a bounded stream's range, and advances the position
// by the number of bytes actually transferred.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	p = s.clamp(p)
	if len(p) == 0 {
		return 0, io.EOF
	}
	n, err := s.handle.ReadAt(p, s.offset+s.pos)
	s.pos += int64(n)
	return n, err
}

// Write stores p at the stream's current position, truncating to the
// remaining bytes in a bounded stream's range, and advances the position
// by the number of bytes actually transferred.
func (s *Stream) Write(p []byte) (int, error) {
	p = s.clamp(p)
	n, err := s.handle.WriteAt(p, s.offset+s.pos)
	s.pos += int64(n)
	if s.size > 0 && s.pos > s.size {
		s.size = s.pos
	}
	return n, err
}

func (s *Stream) clamp(p []byte) []byte {
	if s.size <= 0 {
		return p
	}
	avail := s.size - s.pos
	if avail < 0 {
		avail = 0
	}
	if int64(len(p)) > avail {
		return p[:avail]
	}
	return p
}

// Close releases one reference to the stream. When the reference count
// reaches zero, a child stream simply releases its hold on the parent (in
// turn decrementing the parent's count); the root stream closes its
// underlying Handle.
func (s *Stream) Close() error {
	s.refcount--
	if s.refcount > 0 {
		return nil
	}
	if s.parent != nil {
		return s.parent.Close()
	}
	return s.handle.Close()
}

type memHandle struct {
	buf []byte
}

func (m *memHandle) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memHandle) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[off:], p)
	return n, nil
}

func (m *memHandle) Close() error { return nil }
