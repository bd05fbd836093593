package stream

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryReadWriteRoundTrip(t *testing.T) {
	s := NewMemory(nil)
	if _, err := s.Write([]byte("hello world")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Seek(0); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 5)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("hello", string(buf[:n])); diff != "" {
		t.Errorf("mismatch (+got -want):\n%s", diff)
	}
}

func TestOffsetChildRange(t *testing.T) {
	root := NewMemory([]byte("0123456789"))
	child := root.Offset(3, 4) // bytes "3456"
	buf := make([]byte, 10)
	n, err := child.Read(buf)
	if err != nil && err != io.EOF {
		t.Fatal(err)
	}
	if diff := cmp.Diff("3456", string(buf[:n])); diff != "" {
		t.Errorf("mismatch (+got -want):\n%s", diff)
	}
}

func TestOffsetChildInheritsRemainderWhenSizeZero(t *testing.T) {
	root := NewMemory([]byte("0123456789"))
	child := root.Offset(6, 0) // "6789", size unspecified -> remainder
	if got, want := child.Size(), int64(4); got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestSeekPastEndRejectedOnMemory(t *testing.T) {
	s := NewMemory([]byte("abc"))
	n, err := s.Seek(10)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("Seek past end returned %d, want 0", n)
	}
}

func TestRefcountClosesHandleOnlyAtRoot(t *testing.T) {
	closeCount := 0
	root := NewRoot(&countingHandle{buf: []byte("xyz")}, 3, "")
	root.handle.(*countingHandle).onClose = func() { closeCount++ }

	child := root.Offset(0, 3)
	if err := child.Close(); err != nil {
		t.Fatal(err)
	}
	if closeCount != 0 {
		t.Fatalf("closing the child closed the handle; refcount should still be held by root")
	}
	if err := root.Close(); err != nil {
		t.Fatal(err)
	}
	if closeCount != 1 {
		t.Fatalf("closeCount = %d, want 1 after root's last reference drops", closeCount)
	}
}

type countingHandle struct {
	buf     []byte
	onClose func()
}

func (h *countingHandle) ReadAt(p []byte, off int64) (int, error) {
	return (&memHandle{buf: h.buf}).ReadAt(p, off)
}
func (h *countingHandle) WriteAt(p []byte, off int64) (int, error) {
	return (&memHandle{buf: h.buf}).WriteAt(p, off)
}
func (h *countingHandle) Close() error {
	if h.onClose != nil {
		h.onClose()
	}
	return nil
}
