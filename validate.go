/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/unidoc/truetype/common"
)

// ValidateBytes checks the structural integrity of the font program `data`:
// whether the table directory is in bounds, whether each table checksum is
// correct, and whether head.checksumAdjustment accounts for the whole font.
func ValidateBytes(data []byte) error {
	r := newByteReader(bytes.NewReader(data))

	f := &font{}
	var err error
	f.ot, err = f.parseOffsetTable(r)
	if err != nil {
		return err
	}

	var headOffset int64 = -1
	numTables := f.numTables()
	for i := 0; i < numTables; i++ {
		var rec tableRecord
		err = rec.read(r)
		if err != nil {
			return err
		}
		if rec.tableTag.String() == "head" {
			headOffset = int64(rec.offset)
		}
		f.tables = append(f.tables, rec)
	}

	if headOffset < 0 {
		common.Log.Debug("head table missing")
		return ErrRequiredTableMissing
	}
	if headOffset+12 > int64(len(data)) {
		return errRangeCheck
	}

	// Validate each table against its directory checksum. head is checksummed
	// with its checksumAdjustment field zeroed.
	for _, rec := range f.tables {
		common.Log.Debug("Validating %s: %+v", rec.tableTag.String(), rec)

		end := int64(rec.offset) + int64(rec.length)
		if end > int64(len(data)) {
			common.Log.Debug("Table %s out of bounds", rec.tableTag)
			return errRangeCheck
		}

		b := make([]byte, rec.length)
		copy(b, data[rec.offset:end])
		if rec.tableTag.String() == "head" {
			if len(b) < 12 {
				return errors.New("head too short")
			}
			b[8], b[9], b[10], b[11] = 0, 0, 0, 0
		}

		checksum := tableChecksum(b)
		if rec.checksum != checksum {
			common.Log.Debug("Invalid %s checksum (%d != %d)", rec.tableTag, checksum, rec.checksum)
			return errors.New("checksum incorrect")
		}
	}

	// Validate the whole font: with checksumAdjustment zeroed, the stored
	// adjustment must bring the full checksum to 0xB1B0AFBA.
	dup := make([]byte, len(data))
	copy(dup, data)
	adjustment := binary.BigEndian.Uint32(dup[headOffset+8:])
	dup[headOffset+8], dup[headOffset+9], dup[headOffset+10], dup[headOffset+11] = 0, 0, 0, 0

	if adjustment != 0xB1B0AFBA-tableChecksum(dup) {
		return errors.New("file checksum mismatch")
	}

	return nil
}
