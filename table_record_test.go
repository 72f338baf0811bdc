/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDirectoryFilter(t *testing.T) {
	// cmap and name are always dropped; everything else in the source is part
	// of the keep set. The output directory preserves the source table order.
	fnt := testFont{
		numGlyphs:   4,
		glyphs:      map[int][]byte{1: simpleGlyph(0x01)},
		postLen:     40,
		includeCmap: true,
		includeName: true,
	}.build(t)

	out, err := BuildSubset(fnt, []GlyphIndex{1})
	require.NoError(t, err)

	list := readTableDirectory(t, out)
	var tags []string
	for _, tb := range list {
		tags = append(tags, tb.tag)
	}
	assert.Equal(t, []string{"cvt", "fpgm", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "post", "prep"}, tags)

	// post is reduced to its 32-byte header.
	post := findOutTable(t, list, "post")
	assert.Equal(t, uint32(32), post.length)
}

func TestTableDirectoryShortPost(t *testing.T) {
	// A post table shorter than its 32-byte header is dropped entirely.
	fnt := testFont{
		numGlyphs: 4,
		glyphs:    map[int][]byte{1: simpleGlyph(0x01)},
		postLen:   20,
	}.build(t)

	out, err := BuildSubset(fnt, []GlyphIndex{1})
	require.NoError(t, err)

	for _, tb := range readTableDirectory(t, out) {
		assert.NotEqual(t, "post", tb.tag)
	}
}

func TestPostFormatRewrite(t *testing.T) {
	fnt := testFont{
		numGlyphs: 4,
		glyphs:    map[int][]byte{1: simpleGlyph(0x01)},
		postLen:   48,
	}.build(t)

	out, err := BuildSubset(fnt, []GlyphIndex{1})
	require.NoError(t, err)

	list := readTableDirectory(t, out)
	post := findOutTable(t, list, "post")
	require.Equal(t, uint32(32), post.length)

	// Format 3, no per-glyph names.
	assert.Equal(t, uint32(0x00030000), binary.BigEndian.Uint32(out[post.offset:]))
	// Bytes [4,16) kept from the source, Type42/Type1 hint fields [16,32) cleared.
	for off := uint32(4); off < 16; off++ {
		assert.Equal(t, byte(0xAA), out[post.offset+off])
	}
	for off := uint32(16); off < 32; off++ {
		assert.Equal(t, byte(0), out[post.offset+off])
	}
}

func TestNotTrueType(t *testing.T) {
	fnt := testFont{
		numGlyphs: 4,
		glyphs:    map[int][]byte{1: simpleGlyph(0x01)},
		postLen:   32,
	}.build(t)
	copy(fnt[0:4], "OTTO")

	out, err := BuildSubset(fnt, []GlyphIndex{1})
	assert.Equal(t, ErrNotTrueType, err)
	assert.Nil(t, out)
}

func TestRequiredTableMissing(t *testing.T) {
	// A font exposing only cvt and prep: none of the six mandatory tables is
	// present.
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0x00010000))
	binary.Write(&buf, binary.BigEndian, uint16(2))
	binary.Write(&buf, binary.BigEndian, [3]uint16{})

	tables := []struct {
		tag  string
		data []byte
	}{
		{"cvt ", []byte{0, 10, 0, 20}},
		{"prep", []byte{0xB1, 0x00, 0x00, 0x00}},
	}
	offset := 12 + 16*len(tables)
	var body bytes.Buffer
	for _, tb := range tables {
		buf.WriteString(tb.tag)
		binary.Write(&buf, binary.BigEndian, uint32(0))
		binary.Write(&buf, binary.BigEndian, uint32(offset+body.Len()))
		binary.Write(&buf, binary.BigEndian, uint32(len(tb.data)))
		body.Write(tb.data)
	}
	buf.Write(body.Bytes())

	out, err := BuildSubset(buf.Bytes(), nil)
	assert.Equal(t, ErrRequiredTableMissing, err)
	assert.Nil(t, out)
}
