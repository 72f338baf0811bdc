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

func TestComponentRecordLen(t *testing.T) {
	testcases := []struct {
		flags    compositeGlyphFlag
		expected uint32
	}{
		{0, 6},
		{arg1And2AreWords, 8},
		{weHaveAScale, 8},
		{weHaveAnXAndYScale, 10},
		{weHaveATwoByTwo, 14},
		{arg1And2AreWords | weHaveAScale, 10},
		{arg1And2AreWords | weHaveAnXAndYScale, 12},
		{arg1And2AreWords | weHaveATwoByTwo, 16},
		{arg1And2AreWords | moreComponents | weHaveInstructions, 8},
	}

	for _, tcase := range testcases {
		assert.Equal(t, tcase.expected, componentRecordLen(tcase.flags), "flags %s", tcase.flags)
	}
}

func TestLoadGIDMemoized(t *testing.T) {
	fnt := testFont{
		numGlyphs: 10,
		glyphs: map[int][]byte{
			2: simpleGlyph(0x01),
			// Both composites share component 2; it is loaded once.
			5: compositeGlyph(testComponent{gid: 2}),
			7: compositeGlyph(testComponent{gid: 2}, testComponent{gid: 5}),
		},
		postLen: 32,
	}.build(t)

	s, err := newSubsetter(bytes.NewReader(fnt))
	require.NoError(t, err)
	require.NoError(t, s.loadGlyphs([]GlyphIndex{5, 7, 5}))

	assert.Len(t, s.glyphs, 4) // {0, 2, 5, 7}

	gd := s.glyphs[7]
	require.True(t, gd.composite)
	require.Len(t, gd.components, 2)
	assert.Equal(t, GlyphIndex(2), gd.components[0].glyphIndex)
	assert.Equal(t, GlyphIndex(5), gd.components[1].glyphIndex)
	// Component GID fields sit after the 10-byte glyph header and each
	// record's 2-byte flags.
	assert.Equal(t, uint32(12), gd.components[0].patchOffset)
	assert.Equal(t, uint32(18), gd.components[1].patchOffset)

	assert.False(t, s.glyphs[2].composite)
	assert.Equal(t, uint32(0), s.glyphs[0].length)
}
