package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteUint8 writes c to w.
func WriteUint8(w Writer, c uint8) (n int64, err error) {
	if err = w.WriteByte(c); err != nil {
		return 0, err
	}
	return 1, nil
}

// WriteUint64 writes c to w on 8 bytes.
func WriteUint64(w Writer, c uint64) (n int64, err error) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], c)
	nint, err := w.Write(b[:])
	return int64(nint), err
}

// WriteFloat64 writes the IEEE-754 representation of c to w.
func WriteFloat64(w Writer, c float64) (n int64, err error) {
	return WriteUint64(w, math.Float64bits(c))
}

// WriteFloat64Slice writes the values of c one after the other, without
// length prefix.
func WriteFloat64Slice(w Writer, c []float64) (n int64, err error) {
	var inc int64
	for i := range c {
		if inc, err = WriteFloat64(w, c[i]); err != nil {
			return n + inc, err
		}
		n += inc
	}
	return
}

// ReadUint8 reads one byte from r into c.
func ReadUint8(r Reader, c *uint8) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint8: c is nil")
	}

	if *c, err = r.ReadByte(); err != nil {
		return 0, err
	}

	return 1, nil
}

// ReadUint64 reads 8 bytes from r into c.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}

	var b [8]byte

	nint, err := io.ReadFull(r, b[:])
	if err != nil {
		return int64(nint), err
	}

	*c = binary.LittleEndian.Uint64(b[:])

	return 8, nil
}

// ReadFloat64 reads an IEEE-754 value from r into c.
func ReadFloat64(r Reader, c *float64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadFloat64: c is nil")
	}

	var u uint64
	if n, err = ReadUint64(r, &u); err != nil {
		return
	}

	*c = math.Float64frombits(u)

	return
}

// ReadFloat64Slice fills c with values read from r.
func ReadFloat64Slice(r Reader, c []float64) (n int64, err error) {
	var inc int64
	for i := range c {
		if inc, err = ReadFloat64(r, &c[i]); err != nil {
			return n + inc, err
		}
		n += inc
	}
	return
}
