/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "github.com/unidoc/truetype/common"

// offsetTable is the sfnt header: scaler type and table directory search fields.
type offsetTable struct {
	sfntVersion   uint32
	numTables     uint16
	searchRange   uint16
	entrySelector uint16
	rangeShift    uint16
}

// Scaler types denoting TrueType-flavored outlines. 0x4F54544F ('OTTO') marks
// CFF-flavored OpenType fonts, which are not supported.
const (
	scalerTypeTrueType = 0x00010000
	scalerTypeAppleTT  = 0x74727565 // 'true'
)

func (f *font) parseOffsetTable(r *byteReader) (*offsetTable, error) {
	ot := &offsetTable{}

	err := r.read(&ot.sfntVersion, &ot.numTables, &ot.searchRange)
	if err != nil {
		return nil, err
	}

	err = r.read(&ot.entrySelector, &ot.rangeShift)
	if err != nil {
		return nil, err
	}

	switch ot.sfntVersion {
	case scalerTypeTrueType, scalerTypeAppleTT:
	default:
		common.Log.Debug("Unsupported scaler type 0x%08X", ot.sfntVersion)
		return nil, ErrNotTrueType
	}

	return ot, nil
}
