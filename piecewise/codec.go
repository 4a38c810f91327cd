package piecewise

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/polyrange/utils/buffer"
)

// maxFragments bounds the fragment count accepted by ReadFrom.
const maxFragments = 1 << 20

// BinarySize returns the serialized size of the object in bytes.
func (pp *Polynomial) BinarySize() (size int) {
	size = 8
	for _, frag := range pp.fragments {
		size += frag.Range.BinarySize() + frag.Polynomial.BinarySize()
	}
	return
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface, it will be wrapped into a
// bufio.Writer.
func (pp *Polynomial) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = buffer.WriteUint64(w, uint64(len(pp.fragments))); err != nil {
			return n + inc, err
		}
		n += inc

		for _, frag := range pp.fragments {

			if inc, err = frag.Range.WriteTo(w); err != nil {
				return n + inc, err
			}
			n += inc

			if inc, err = frag.Polynomial.WriteTo(w); err != nil {
				return n + inc, err
			}
			n += inc
		}

		return n, w.Flush()

	default:
		return pp.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface. Fragments with an empty range are rejected.
//
// Unless r implements the buffer.Reader interface, it will be wrapped into a
// bufio.Reader.
func (pp *Polynomial) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var count uint64
		var inc int64

		if inc, err = buffer.ReadUint64(r, &count); err != nil {
			return n + inc, err
		}
		n += inc

		if count > maxFragments {
			return n, fmt.Errorf("cannot ReadFrom: fragment count %d exceeds %d", count, maxFragments)
		}

		fragments := make([]Fragment, count)

		for i := range fragments {

			if inc, err = fragments[i].Range.ReadFrom(r); err != nil {
				return n + inc, err
			}
			n += inc

			if fragments[i].Range.Empty() {
				return n, fmt.Errorf("cannot ReadFrom: fragment %d has empty range %v", i, fragments[i].Range)
			}

			if inc, err = fragments[i].Polynomial.ReadFrom(r); err != nil {
				return n + inc, err
			}
			n += inc
		}

		pp.fragments = fragments

		return

	default:
		return pp.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (pp *Polynomial) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(pp.BinarySize())
	_, err = pp.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (pp *Polynomial) UnmarshalBinary(data []byte) (err error) {
	_, err = pp.ReadFrom(buffer.NewBuffer(data))
	return
}
