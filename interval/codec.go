package interval

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/tuneinsight/polyrange/utils/buffer"
)

const (
	flagIncludedLeft = 1 << iota
	flagIncludedRight
)

// BinarySize returns the serialized size of the object in bytes.
// Each bound takes 8 bytes: the IEEE 754 bits of a float64 for floating-point
// types, the two's complement of an int64 or the uint64 value otherwise.
func (r Range[T]) BinarySize() int {
	return 1 + 8 + 8
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
// Unless w implements buffer.Writer, it is wrapped into a bufio.Writer.
func (r Range[T]) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var flags uint8
		if r.IncludedLeft {
			flags |= flagIncludedLeft
		}
		if r.IncludedRight {
			flags |= flagIncludedRight
		}

		var inc int64

		if inc, err = buffer.WriteUint8(w, flags); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteUint64(w, boundBits(r.Left)); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteUint64(w, boundBits(r.Right)); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		return r.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface. Unless rd implements buffer.Reader, it is wrapped
// into a bufio.Reader.
func (r *Range[T]) ReadFrom(rd io.Reader) (n int64, err error) {
	switch rd := rd.(type) {
	case buffer.Reader:

		var flags uint8
		var left, right uint64
		var inc int64

		if inc, err = buffer.ReadUint8(rd, &flags); err != nil {
			return n + inc, err
		}
		n += inc

		if flags&^(flagIncludedLeft|flagIncludedRight) != 0 {
			return n, fmt.Errorf("cannot ReadFrom: invalid range flags %#x", flags)
		}

		if inc, err = buffer.ReadUint64(rd, &left); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.ReadUint64(rd, &right); err != nil {
			return n + inc, err
		}
		n += inc

		l, okl := fromBoundBits[T](left)
		u, oku := fromBoundBits[T](right)
		if !okl || !oku {
			return n, fmt.Errorf("cannot ReadFrom: bounds %#x and %#x overflow %T", left, right, l)
		}

		*r = New(flags&flagIncludedLeft != 0, l, u, flags&flagIncludedRight != 0)

		return

	default:
		return r.ReadFrom(bufio.NewReader(rd))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (r Range[T]) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(r.BinarySize())
	_, err = r.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (r *Range[T]) UnmarshalBinary(p []byte) (err error) {
	_, err = r.ReadFrom(buffer.NewBuffer(p))
	return
}

func isFloat[T Number]() bool {
	var half T = 1
	half /= 2
	return half != 0
}

func isSigned[T Number]() bool {
	var zero T
	return zero-1 < zero
}

func boundBits[T Number](v T) uint64 {
	switch {
	case isFloat[T]():
		return math.Float64bits(float64(v))
	case isSigned[T]():
		return uint64(int64(v))
	default:
		return uint64(v)
	}
}

// fromBoundBits inverts boundBits. It returns false if the decoded value does
// not fit in T.
func fromBoundBits[T Number](b uint64) (v T, ok bool) {
	switch {
	case isFloat[T]():
		f := math.Float64frombits(b)
		v = T(f)
		return v, float64(v) == f || math.IsNaN(f)
	case isSigned[T]():
		v = T(int64(b))
	default:
		v = T(b)
	}
	return v, boundBits(v) == b
}
