/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "github.com/unidoc/truetype/common"

// font holds what the subsetter needs to know about the source font: the retained
// table directory and the header fields that drive glyph loading. Table contents
// are not parsed into models; the subsetter works on byte ranges of the source.
type font struct {
	ot     *offsetTable
	tables []tableRecord
	req    requiredTables

	glyphCount   uint16 // maxp numGlyphs.
	hmetricCount uint16 // hhea numberOfHMetrics.
	longLoca     bool   // head indexToLocFormat != 0.
}

func (f font) numTables() int {
	return int(f.ot.numTables)
}

func parseFont(r *byteReader) (*font, error) {
	f := &font{}

	var err error

	f.ot, err = f.parseOffsetTable(r)
	if err != nil {
		return nil, err
	}

	f.tables, f.req, err = f.parseTableRecords(r)
	if err != nil {
		return nil, err
	}

	err = f.parseHeaderFields(r)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// parseHeaderFields extracts the glyph count from maxp, the horizontal metric count
// from hhea and the loca offset width from head. Absence of any of the three tables
// surfaces here as a lookup failure.
func (f *font) parseHeaderFields(r *byteReader) error {
	offset, err := f.tableOffset(makeTag("maxp"))
	if err != nil {
		return err
	}
	// numGlyphs follows the 4-byte version field.
	err = r.Seek(offset + 4)
	if err != nil {
		return err
	}
	err = r.read(&f.glyphCount)
	if err != nil {
		return err
	}

	offset, err = f.tableOffset(makeTag("hhea"))
	if err != nil {
		return err
	}
	// numberOfHMetrics is the 18th uint16 field of hhea.
	err = r.Seek(offset + 34)
	if err != nil {
		return err
	}
	err = r.read(&f.hmetricCount)
	if err != nil {
		return err
	}

	offset, err = f.tableOffset(makeTag("head"))
	if err != nil {
		return err
	}
	err = r.Seek(offset + 50)
	if err != nil {
		return err
	}
	var indexToLocFormat uint16
	err = r.read(&indexToLocFormat)
	if err != nil {
		return err
	}
	// 0 denotes the short format; any other value the long format.
	f.longLoca = indexToLocFormat != 0

	common.Log.Debug("numGlyphs: %d, numberOfHMetrics: %d, longLoca: %t",
		f.glyphCount, f.hmetricCount, f.longLoca)
	return nil
}
