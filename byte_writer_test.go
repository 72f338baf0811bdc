/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The checksum is the OpenType big endian uint32 word sum, with the trailing
// partial word zero-padded on the right. This deliberately follows the format
// specification rather than byte-wise summing variants seen in the wild; the
// validator relies on it.
func TestTableChecksum(t *testing.T) {
	testcases := []struct {
		data     []byte
		expected uint32
	}{
		{nil, 0},
		{[]byte{0, 0, 0, 1}, 1},
		{[]byte{0, 0, 0, 1, 0, 0, 0, 2}, 3},
		{[]byte{0x01}, 0x01000000},
		{[]byte{0x00, 0x01, 0x02}, 0x00010200},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x01}, 0}, // sum wraps around.
	}

	for _, tcase := range testcases {
		assert.Equal(t, tcase.expected, tableChecksum(tcase.data))
	}
}

func TestByteWriterPatch(t *testing.T) {
	var buf bytes.Buffer
	w := newByteWriter(&buf)

	require.NoError(t, w.write(uint32(0x11223344), uint16(0x5566)))
	require.NoError(t, w.pad4())
	assert.Equal(t, int64(8), w.offset())

	require.NoError(t, w.patchUint16(4, 0xAABB))
	require.NoError(t, w.patchUint32(0, 0xDEADBEEF))
	assert.Error(t, w.patchUint32(6, 0)) // would write past the buffer end.

	require.NoError(t, w.flush())
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0xAA, 0xBB, 0x00, 0x00}, buf.Bytes())
}

func TestByteWriterChecksumRange(t *testing.T) {
	var buf bytes.Buffer
	w := newByteWriter(&buf)
	require.NoError(t, w.write(uint32(1), uint32(2), uint32(3)))

	assert.Equal(t, uint32(6), w.checksum(0, w.offset()))
	assert.Equal(t, uint32(5), w.checksum(4, 12))
}
