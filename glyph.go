/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"strings"

	"github.com/unidoc/truetype/common"
)

// glyfGlyphHeaderLen is the length of the glyph header in the glyf table:
// numberOfContours, xMin, yMin, xMax, yMax (int16 each). Component records of
// composite glyphs start right after it.
const glyfGlyphHeaderLen = 10

// componentRef locates a composite component's 16-bit glyph index field inside the
// glyph's raw data, for patching when the glyph is written to the subset.
type componentRef struct {
	// patchOffset is relative to the start of the glyph data.
	patchOffset uint32
	glyphIndex  GlyphIndex // original GID of the component.
}

// glyphData describes a single glyph's byte range within the source font.
// A zero length denotes a valid empty glyph, e.g. space.
type glyphData struct {
	offset     int64 // absolute offset of the glyph data in the source font.
	length     uint32
	composite  bool
	components []componentRef
}

type compositeGlyphFlag uint16

const (
	arg1And2AreWords compositeGlyphFlag = (1 << iota) // If set, the args are 16-bit (uint16/int16), otherwise uint8/int8.
	argsAreXYValues                                   // If set, the args are signed xy values (otherwise unsigned).
	roundXYToGrid
	weHaveAScale
	_              // reserved
	moreComponents // Indicates at least one glyph following this one.
	weHaveAnXAndYScale
	weHaveATwoByTwo
	weHaveInstructions
	useMyMetrics
	overlapCompound
	scaledComponentOffset
	unscaledComponentOffset
)

func (f compositeGlyphFlag) IsSet(flag compositeGlyphFlag) bool {
	return f&flag != 0
}

func (f compositeGlyphFlag) String() string {
	var flags []string

	if f.IsSet(arg1And2AreWords) {
		flags = append(flags, "arg1And2AreWords")
	}
	if f.IsSet(argsAreXYValues) {
		flags = append(flags, "argsAreXYValues")
	}
	if f.IsSet(roundXYToGrid) {
		flags = append(flags, "roundXYToGrid")
	}
	if f.IsSet(weHaveAScale) {
		flags = append(flags, "weHaveAScale")
	}
	if f.IsSet(moreComponents) {
		flags = append(flags, "moreComponents")
	}
	if f.IsSet(weHaveAnXAndYScale) {
		flags = append(flags, "weHaveAnXAndYScale")
	}
	if f.IsSet(weHaveATwoByTwo) {
		flags = append(flags, "weHaveATwoByTwo")
	}
	if f.IsSet(weHaveInstructions) {
		flags = append(flags, "weHaveInstructions")
	}
	if f.IsSet(useMyMetrics) {
		flags = append(flags, "useMyMetrics")
	}
	if f.IsSet(overlapCompound) {
		flags = append(flags, "overlapCompound")
	}
	if f.IsSet(scaledComponentOffset) {
		flags = append(flags, "scaledComponentOffset")
	}
	if f.IsSet(unscaledComponentOffset) {
		flags = append(flags, "unscaledComponentOffset")
	}

	return strings.Join(flags, "|")
}

// componentRecordLen returns the length in bytes of a composite component record with the
// given flags: flags and glyph index fields, the point matching arguments, and the optional
// transformation block.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#composite-glyph-description
func componentRecordLen(flags compositeGlyphFlag) uint32 {
	length := uint32(4)
	if flags.IsSet(arg1And2AreWords) {
		length += 4
	} else {
		length += 2
	}
	switch {
	case flags.IsSet(weHaveAScale):
		length += 2
	case flags.IsSet(weHaveAnXAndYScale):
		length += 4
	case flags.IsSet(weHaveATwoByTwo):
		length += 8
	}
	return length
}

// loadGlyphs discovers every glyph the subset must retain: glyph 0, the requested GIDs in
// the order given, and transitively every composite component. Discovery uses an explicit
// worklist rather than recursion, so that deeply nested composites cannot exhaust the stack.
// Traversal order does not matter here; the renumbering pass imposes its own order.
func (s *subsetter) loadGlyphs(gids []GlyphIndex) error {
	// For any font, glyph 0 is needed.
	worklist := make([]GlyphIndex, 0, len(gids)+1)
	worklist = append(worklist, 0)
	worklist = append(worklist, gids...)

	for len(worklist) > 0 {
		gid := worklist[0]
		worklist = worklist[1:]

		refs, err := s.loadGID(gid)
		if err != nil {
			return err
		}
		worklist = append(worklist, refs...)
	}

	return nil
}

// loadGID loads the glyph record for `gid` and returns the GIDs of its composite components,
// if any. Loading an already-loaded GID is a no-op.
func (s *subsetter) loadGID(gid GlyphIndex) ([]GlyphIndex, error) {
	if gid >= GlyphIndex(s.f.glyphCount) {
		common.Log.Debug("GID %d out of range (numGlyphs %d)", gid, s.f.glyphCount)
		return nil, ErrGIDOutOfRange
	}

	if _, has := s.glyphs[gid]; has {
		return nil, nil
	}

	gd := &glyphData{}
	s.glyphs[gid] = gd

	// Resolve the glyph's byte range via two adjacent loca entries.
	// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
	if s.f.longLoca {
		err := s.r.Seek(s.locaOffset + 4*int64(gid))
		if err != nil {
			return nil, err
		}
		var offset1, offset2 uint32
		err = s.r.read(&offset1, &offset2)
		if err != nil {
			return nil, err
		}

		gd.length = offset2 - offset1
		gd.offset = s.glyfOffset + int64(offset1)
	} else {
		err := s.r.Seek(s.locaOffset + 2*int64(gid))
		if err != nil {
			return nil, err
		}
		var offset1, offset2 uint16
		err = s.r.read(&offset1, &offset2)
		if err != nil {
			return nil, err
		}

		// The short format stores offsets halved to extend its reach.
		uoffset1 := uint32(offset1) << 1
		uoffset2 := uint32(offset2) << 1
		gd.length = uoffset2 - uoffset1
		gd.offset = s.glyfOffset + int64(uoffset1)
	}

	if gd.length == 0 {
		// Valid empty glyph.
		return nil, nil
	}

	err := s.r.Seek(gd.offset)
	if err != nil {
		return nil, err
	}
	var contourCount int16
	err = s.r.read(&contourCount)
	if err != nil {
		return nil, err
	}
	if contourCount >= 0 {
		// Simple glyph.
		return nil, nil
	}

	gd.composite = true
	return s.loadComponents(gid, gd)
}

// loadComponents walks the component chain of a composite glyph, recording for each
// component the offset of its glyph index field relative to the glyph start.
func (s *subsetter) loadComponents(gid GlyphIndex, gd *glyphData) ([]GlyphIndex, error) {
	var refs []GlyphIndex

	offset := uint32(glyfGlyphHeaderLen)
	for {
		err := s.r.Seek(gd.offset + int64(offset))
		if err != nil {
			return nil, err
		}
		var flags, glyphIndex uint16
		err = s.r.read(&flags, &glyphIndex)
		if err != nil {
			return nil, err
		}
		common.Log.Trace("GID %d component %d flags: %s", gid, glyphIndex, compositeGlyphFlag(flags).String())

		gd.components = append(gd.components, componentRef{
			patchOffset: offset + 2,
			glyphIndex:  GlyphIndex(glyphIndex),
		})
		refs = append(refs, GlyphIndex(glyphIndex))

		if !compositeGlyphFlag(flags).IsSet(moreComponents) {
			break
		}
		offset += componentRecordLen(compositeGlyphFlag(flags))
	}

	return refs, nil
}
