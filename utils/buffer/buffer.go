// Package buffer implements little-endian encoding of the scalar types used by
// the binary codecs of this module, over buffered writers and readers such as
// bufio.Writer, bufio.Reader and Buffer.
package buffer

import (
	"fmt"
	"io"
)

// Writer is a byte sink that must be flushed once a value is written.
type Writer interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

// Reader is a byte source that reads single bytes without allocating.
type Reader interface {
	io.Reader
	io.ByteReader
}

// Buffer is a Writer and Reader over a fixed-size byte slice. Writing past
// the end of the slice fails instead of growing it.
type Buffer struct {
	data []byte
	w, r int
}

// NewBuffer returns a Buffer reading data. Writes overwrite data from its
// first byte.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// NewBufferSize returns a Buffer over size zero bytes.
func NewBufferSize(size int) *Buffer {
	return NewBuffer(make([]byte, size))
}

// Write copies p after the bytes already written.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) > len(b.data)-b.w {
		return 0, fmt.Errorf("cannot Write: %d bytes left, %d requested", len(b.data)-b.w, len(p))
	}
	b.w += copy(b.data[b.w:], p)
	return len(p), nil
}

// WriteByte writes c after the bytes already written.
func (b *Buffer) WriteByte(c byte) error {
	_, err := b.Write([]byte{c})
	return err
}

// Flush is a no-op.
func (b *Buffer) Flush() error {
	return nil
}

// Bytes returns the bytes written so far.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.w]
}

// Read copies the unread bytes into p, returning io.EOF if fewer than len(p)
// were left.
func (b *Buffer) Read(p []byte) (n int, err error) {
	n = copy(p, b.data[b.r:])
	b.r += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ReadByte returns the next unread byte.
func (b *Buffer) ReadByte() (byte, error) {
	if b.r == len(b.data) {
		return 0, io.EOF
	}
	b.r++
	return b.data[b.r-1], nil
}
