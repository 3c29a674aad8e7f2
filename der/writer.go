package der

import (
	"github.com/ansel1/merry"
)

// Writer writes encoded elements into a fixed, caller supplied buffer.  Writes which
// don't fit fail with ErrBufferOverflow and leave the buffer unchanged.
type Writer struct {
	buf []byte
	n   int
}

func NewWriter(dst []byte) *Writer {
	return &Writer{buf: dst}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.n
}

// Available returns the number of bytes left in the buffer.
func (w *Writer) Available() int {
	return len(w.buf) - w.n
}

// Bytes returns the written part of the buffer.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.n]
}

// Reserve returns the next n bytes of the buffer for the caller to fill.
func (w *Writer) Reserve(n int) ([]byte, error) {
	if n > w.Available() {
		return nil, merry.Here(ErrBufferOverflow).Appendf("need %d bytes, %d available", n, w.Available())
	}
	b := w.buf[w.n : w.n+n]
	w.n += n
	return b, nil
}

// Write copies p into the buffer.
func (w *Writer) Write(p []byte) (int, error) {
	b, err := w.Reserve(len(p))
	if err != nil {
		return 0, err
	}
	return copy(b, p), nil
}

// WriteHeader writes the identifier and length octets of an element.
func (w *Writer) WriteHeader(t Tag, length int) error {
	b, err := w.Reserve(HeaderLen(t, length))
	if err != nil {
		return err
	}
	AppendHeader(b[:0], t, length)
	return nil
}
