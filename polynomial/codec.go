package polynomial

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/polyrange/utils/buffer"
)

// maxCoeffs bounds the coefficient count accepted by ReadFrom.
const maxCoeffs = 1 << 24

// BinarySize returns the serialized size of the object in bytes.
func (p Polynomial) BinarySize() int {
	return 8 + 8*len(p.coeffs)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface, it will be wrapped into a
// bufio.Writer. When writing multiple objects, it is preferable to first wrap
// w in a pre-allocated bufio.Writer, or to pass buffer.NewBuffer(b) when
// writing to a pre-allocated slice b.
func (p Polynomial) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = buffer.WriteUint64(w, uint64(len(p.coeffs))); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteFloat64Slice(w, p.coeffs); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		return p.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface, it will be wrapped into a
// bufio.Reader.
func (p *Polynomial) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var size uint64
		var inc int64

		if inc, err = buffer.ReadUint64(r, &size); err != nil {
			return n + inc, err
		}
		n += inc

		if size > maxCoeffs {
			return n, fmt.Errorf("cannot ReadFrom: coefficient count %d exceeds %d", size, maxCoeffs)
		}

		coeffs := make([]float64, size)

		if inc, err = buffer.ReadFloat64Slice(r, coeffs); err != nil {
			return n + inc, err
		}
		n += inc

		p.coeffs = coeffs

		return

	default:
		return p.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (p Polynomial) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(p.BinarySize())
	_, err = p.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (p *Polynomial) UnmarshalBinary(data []byte) (err error) {
	_, err = p.ReadFrom(buffer.NewBuffer(data))
	return
}
