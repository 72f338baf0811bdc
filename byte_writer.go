/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// byteWriter encapsulates io.Writer and provides methods to write binary data as fit for truetype
// fonts. Writes are buffered until flushed, and the buffer stays addressable: directory entries,
// checksums and patched header fields are overwritten in place once their values are known.
type byteWriter struct {
	w   io.Writer
	len int64

	buffer bytes.Buffer
}

func newByteWriter(w io.Writer) *byteWriter {
	return &byteWriter{
		w: w,
	}
}

func (w *byteWriter) flush() error {
	b := w.buffer.Bytes()
	_, err := w.w.Write(b)
	if err != nil {
		return err
	}

	w.buffer.Reset()
	return nil
}

// bufferedLen returns the length of the current buffer.
func (w *byteWriter) bufferedLen() int {
	return w.buffer.Len()
}

// offset returns the offset at which the next write to `w` lands.
func (w *byteWriter) offset() int64 {
	return int64(w.buffer.Len())
}

// checksum returns the checksum of buffer range [from,to).
func (w *byteWriter) checksum(from, to int64) uint32 {
	return tableChecksum(w.buffer.Bytes()[from:to])
}

// tableChecksum sums the data as a series of big endian uint32 values, with the last value
// zero-padded on the right when the data length is not a multiple of four.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otff#calculating-checksums
func tableChecksum(data []byte) uint32 {
	var sum uint32

	for i := 0; i < len(data); i += 4 {
		a := i
		b := i + 4
		if b > len(data) {
			b = len(data)
		}

		dup := make([]byte, 4)
		copy(dup, data[a:b])

		val := binary.BigEndian.Uint32(dup)
		sum += val
	}

	return sum
}

// pad4 pads the buffer with zero bytes up to the next 4-byte boundary.
func (w *byteWriter) pad4() error {
	for w.buffer.Len()%4 != 0 {
		err := w.writeUint8(0)
		if err != nil {
			return err
		}
	}
	return nil
}

// patchUint16 overwrites the 2 bytes at `offset` with `val` (big endian). The offset must have
// been written already.
func (w *byteWriter) patchUint16(offset int64, val uint16) error {
	b := w.buffer.Bytes()
	if offset < 0 || offset+2 > int64(len(b)) {
		return errRangeCheck
	}
	binary.BigEndian.PutUint16(b[offset:], val)
	return nil
}

// patchUint32 overwrites the 4 bytes at `offset` with `val` (big endian).
func (w *byteWriter) patchUint32(offset int64, val uint32) error {
	b := w.buffer.Bytes()
	if offset < 0 || offset+4 > int64(len(b)) {
		return errRangeCheck
	}
	binary.BigEndian.PutUint32(b[offset:], val)
	return nil
}

func (w *byteWriter) writeBytes(b []byte) error {
	n, err := w.buffer.Write(b)
	if err != nil {
		return err
	}
	w.len += int64(n)
	return nil
}

// write a series of values to `w`.
func (w *byteWriter) write(fields ...interface{}) error {
	for _, f := range fields {
		switch t := f.(type) {
		case uint8:
			err := w.writeUint8(t)
			if err != nil {
				return err
			}
		case uint16:
			err := w.writeUint16(t)
			if err != nil {
				return err
			}
		case int16:
			err := w.writeInt16(t)
			if err != nil {
				return err
			}
		case uint32:
			err := w.writeUint32(t)
			if err != nil {
				return err
			}
		case tag:
			err := w.writeTag(t)
			if err != nil {
				return err
			}
		case offset16:
			err := w.writeOffset16(t)
			if err != nil {
				return err
			}
		case offset32:
			err := w.writeOffset32(t)
			if err != nil {
				return err
			}
		default:
			fmt.Printf("Write type check error: %T\n", t)
			return errTypeCheck
		}
	}

	return nil
}

func (w *byteWriter) writeUint8(vals ...uint8) error {
	err := binary.Write(&w.buffer, binary.BigEndian, vals)
	if err != nil {
		return err
	}
	w.len++
	return nil
}

func (w *byteWriter) writeUint16(vals ...uint16) error {
	err := binary.Write(&w.buffer, binary.BigEndian, vals)
	if err != nil {
		return err
	}
	w.len += 2
	return nil
}

func (w *byteWriter) writeInt16(vals ...int16) error {
	err := binary.Write(&w.buffer, binary.BigEndian, vals)
	if err != nil {
		return err
	}
	w.len += 2
	return nil
}

func (w *byteWriter) writeUint32(val uint32) error {
	err := binary.Write(&w.buffer, binary.BigEndian, val)
	if err != nil {
		return err
	}
	w.len += 4
	return nil
}

func (w *byteWriter) writeTag(val tag) error {
	err := binary.Write(&w.buffer, binary.BigEndian, val)
	if err != nil {
		return err
	}
	w.len += 4
	return nil
}

func (w *byteWriter) writeOffset16(val offset16) error {
	err := binary.Write(&w.buffer, binary.BigEndian, val)
	if err != nil {
		return err
	}
	w.len += 2
	return nil
}

func (w *byteWriter) writeOffset32(val offset32) error {
	err := binary.Write(&w.buffer, binary.BigEndian, val)
	if err != nil {
		return err
	}
	w.len += 4
	return nil
}
