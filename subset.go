/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"sort"

	"github.com/unidoc/truetype/common"
)

// tableRecordLen is the length of each table directory entry.
const tableRecordLen = 16

// subsetter holds the state of a single subset build. It is single-use:
// one font in, one font out.
type subsetter struct {
	r *byteReader
	f *font

	glyfOffset int64
	locaOffset int64

	glyphs map[GlyphIndex]*glyphData

	// orderedGIDs holds the original GID whose subset GID is the slice index.
	orderedGIDs []GlyphIndex
	// gidMap maps original GIDs to subset GIDs. Glyph 0 always maps to 0.
	gidMap map[GlyphIndex]GlyphIndex
}

// BuildSubset returns a subset of the font program `data` containing the glyphs in
// `gids`, every glyph they transitively reference, and the mandatory supporting
// tables. The GID list need not be deduplicated or sorted. Only TrueType-flavored
// (glyf outline) fonts are supported.
func BuildSubset(data []byte, gids []GlyphIndex) ([]byte, error) {
	return SubsetFont(bytes.NewReader(data), gids)
}

// SubsetFont is like BuildSubset, reading the source font from `rs`.
func SubsetFont(rs io.ReadSeeker, gids []GlyphIndex) ([]byte, error) {
	s, err := newSubsetter(rs)
	if err != nil {
		return nil, err
	}

	err = s.loadGlyphs(gids)
	if err != nil {
		return nil, err
	}
	s.buildGlyphOrder(gids)

	var buf bytes.Buffer
	w := newByteWriter(&buf)
	err = s.writeFont(w)
	if err != nil {
		return nil, err
	}
	err = w.flush()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func newSubsetter(rs io.ReadSeeker) (*subsetter, error) {
	r := newByteReader(rs)
	f, err := parseFont(r)
	if err != nil {
		return nil, err
	}

	s := &subsetter{
		r:      r,
		f:      f,
		glyphs: map[GlyphIndex]*glyphData{},
	}

	s.glyfOffset, err = f.tableOffset(makeTag("glyf"))
	if err != nil {
		return nil, err
	}
	s.locaOffset, err = f.tableOffset(makeTag("loca"))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// buildGlyphOrder assigns each retained original GID a contiguous zero-based subset GID.
// The order is fixed: glyph 0 first, then the requested GIDs in caller order (first
// occurrence only), then the not yet numbered composite components, scanning the loaded
// glyphs by ascending original GID and each glyph's components in chain order. The
// ordering is load-bearing: it determines the physical glyph layout of the subset.
func (s *subsetter) buildGlyphOrder(gids []GlyphIndex) {
	s.gidMap = map[GlyphIndex]GlyphIndex{0: 0}
	s.orderedGIDs = []GlyphIndex{0}

	for _, gid := range gids {
		if _, has := s.gidMap[gid]; has {
			continue
		}
		s.gidMap[gid] = GlyphIndex(len(s.orderedGIDs))
		s.orderedGIDs = append(s.orderedGIDs, gid)
	}

	loaded := make([]GlyphIndex, 0, len(s.glyphs))
	for gid := range s.glyphs {
		loaded = append(loaded, gid)
	}
	sort.Slice(loaded, func(i, j int) bool { return loaded[i] < loaded[j] })

	for _, gid := range loaded {
		gd := s.glyphs[gid]
		if !gd.composite {
			continue
		}
		for _, c := range gd.components {
			if _, has := s.gidMap[c.glyphIndex]; has {
				continue
			}
			s.gidMap[c.glyphIndex] = GlyphIndex(len(s.orderedGIDs))
			s.orderedGIDs = append(s.orderedGIDs, c.glyphIndex)
		}
	}
}

// copyData copies `size` source bytes starting at `offset` to the output.
func (s *subsetter) copyData(w *byteWriter, offset int64, size uint32) error {
	err := s.r.Seek(offset)
	if err != nil {
		return err
	}
	var buf []byte
	err = s.r.readBytes(&buf, int(size))
	if err != nil {
		return err
	}
	return w.writeBytes(buf)
}

// writeGlyphTable writes the subset glyf table: the raw data of each retained glyph in
// subset GID order, with composite component glyph index fields remapped to subset GIDs.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
func (s *subsetter) writeGlyphTable(w *byteWriter) error {
	for _, gid := range s.orderedGIDs {
		gd := s.glyphs[gid]
		if gd.length == 0 {
			continue
		}

		if !gd.composite {
			// Simple glyph data needs no fixing.
			err := s.copyData(w, gd.offset, gd.length)
			if err != nil {
				return err
			}
			continue
		}

		err := s.r.Seek(gd.offset)
		if err != nil {
			return err
		}
		var buf []byte
		err = s.r.readBytes(&buf, int(gd.length))
		if err != nil {
			return err
		}
		for _, c := range gd.components {
			binary.BigEndian.PutUint16(buf[c.patchOffset:], uint16(s.gidMap[c.glyphIndex]))
		}
		err = w.writeBytes(buf)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeLocaTable writes the subset loca table: cumulative offsets of the glyphs as laid
// out by writeGlyphTable, plus the extra trailing entry that makes it possible to compute
// the length of the last glyph.
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
func (s *subsetter) writeLocaTable(w *byteWriter) error {
	var glyphAddress uint32
	if s.f.longLoca {
		for _, gid := range s.orderedGIDs {
			err := w.write(glyphAddress)
			if err != nil {
				return err
			}
			glyphAddress += s.glyphs[gid].length
		}
		return w.write(glyphAddress)
	}

	for _, gid := range s.orderedGIDs {
		err := w.write(uint16(glyphAddress >> 1))
		if err != nil {
			return err
		}
		glyphAddress += s.glyphs[gid].length
	}
	return w.write(uint16(glyphAddress >> 1))
}

// writeHmtxTable writes the subset hmtx table: the 4-byte metric record (advance width,
// left side bearing) of each retained glyph, copied verbatim from the source table.
// Every retained glyph gets a full record; none share a trailing entry.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
func (s *subsetter) writeHmtxTable(w *byteWriter) error {
	tableOffset, err := s.f.tableOffset(makeTag("hmtx"))
	if err != nil {
		return err
	}
	for _, gid := range s.orderedGIDs {
		err := s.copyData(w, tableOffset+4*int64(gid), 4)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeFont lays out the subset font: sfnt header, table directory, and the tables in
// their original encounter order, each padded to a 4-byte boundary. Directory entries
// are written as placeholders and patched once per-table offsets, lengths and checksums
// are known; head.checksumAdjustment is patched last, from the whole-font checksum.
func (s *subsetter) writeFont(w *byteWriter) error {
	numTables := uint16(len(s.f.tables))

	entrySelector := uint16(bits.Len(uint(numTables) - 1))
	searchRange := uint16(1) << entrySelector
	rangeShift := 16*numTables - searchRange

	// https://docs.microsoft.com/en-us/typography/opentype/spec/otff#tabledirectory
	err := w.write(uint32(scalerTypeTrueType), numTables, searchRange, entrySelector, rangeShift)
	if err != nil {
		return err
	}

	directoryOffset := w.offset()
	for _, rec := range s.f.tables {
		// Checksum, offset and length are patched once known.
		err = w.write(rec.tableTag, uint32(0), uint32(0), uint32(0))
		if err != nil {
			return err
		}
	}

	newGlyphCount := uint16(len(s.orderedGIDs))
	headOffset := int64(-1)

	for i, rec := range s.f.tables {
		tableOffset := w.offset()

		switch rec.tableTag.String() {
		case "head":
			headOffset = tableOffset
			err = s.copyData(w, int64(rec.offset), rec.length)
			if err != nil {
				return err
			}
			// Zero checksumAdjustment; recomputed once the whole font is assembled.
			err = w.patchUint32(tableOffset+8, 0)
		case "maxp":
			// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
			err = s.copyData(w, int64(rec.offset), rec.length)
			if err != nil {
				return err
			}
			err = w.patchUint16(tableOffset+4, newGlyphCount)
		case "hhea":
			// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
			err = s.copyData(w, int64(rec.offset), rec.length)
			if err != nil {
				return err
			}
			// Every retained glyph gets a full hmtx record.
			err = w.patchUint16(tableOffset+34, newGlyphCount)
		case "post":
			// Only the 32-byte header is retained; see parseTableRecords.
			// https://docs.microsoft.com/en-us/typography/opentype/spec/post
			err = s.copyData(w, int64(rec.offset), rec.length)
			if err != nil {
				return err
			}
			// Enforce 'post' format 3, written as a Fixed 16.16 number.
			err = w.patchUint32(tableOffset, 0x00030000)
			if err != nil {
				return err
			}
			// Clear Type42/Type1 font information.
			for off := int64(16); off < 32; off += 4 {
				err = w.patchUint32(tableOffset+off, 0)
				if err != nil {
					return err
				}
			}
		case "glyf":
			err = s.writeGlyphTable(w)
		case "loca":
			err = s.writeLocaTable(w)
		case "hmtx":
			err = s.writeHmtxTable(w)
		case "cvt", "fpgm", "prep":
			err = s.copyData(w, int64(rec.offset), rec.length)
		default:
			common.Log.Debug("No write rule for table %s", rec.tableTag)
			err = ErrUnsupportedTable
		}
		if err != nil {
			return err
		}

		// Align the table to 4 bytes, padding with zeroes. The directory records
		// the unpadded length.
		tableLength := w.offset() - tableOffset
		err = w.pad4()
		if err != nil {
			return err
		}

		recordOffset := directoryOffset + int64(i)*tableRecordLen
		err = w.patchUint32(recordOffset+4, w.checksum(tableOffset, tableOffset+tableLength))
		if err != nil {
			return err
		}
		err = w.patchUint32(recordOffset+8, uint32(tableOffset))
		if err != nil {
			return err
		}
		err = w.patchUint32(recordOffset+12, uint32(tableLength))
		if err != nil {
			return err
		}
	}

	if headOffset < 0 {
		common.Log.Debug("head table never written")
		return ErrRequiredTableMissing
	}

	// https://docs.microsoft.com/en-us/typography/opentype/spec/otff#tabledirectory
	fontChecksum := 0xB1B0AFBA - w.checksum(0, w.offset())
	return w.patchUint32(headOffset+8, fontChecksum)
}
