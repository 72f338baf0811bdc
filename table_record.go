/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"fmt"

	"github.com/unidoc/truetype/common"
)

// tableRecord represents table records, including name (tag) and file offset, size
// and checksum for integrity checking.
type tableRecord struct {
	tableTag tag
	checksum uint32
	offset   offset32
	length   uint32
}

func (tr *tableRecord) read(r *byteReader) error {
	return r.read(&tr.tableTag, &tr.checksum, &tr.offset, &tr.length)
}

// requiredTables tracks which of the mandatory subsetting tables were seen while
// reading the table directory. One explicit flag per tag.
type requiredTables struct {
	head bool
	hhea bool
	loca bool
	maxp bool
	glyf bool
	hmtx bool
}

func (rt requiredTables) anyPresent() bool {
	return rt.head || rt.hhea || rt.loca || rt.maxp || rt.glyf || rt.hmtx
}

// parseTableRecords reads the table directory of the font being subsetted, keeping only
// tables that have a place in the subset. Kept records stay in encounter order; that order
// becomes the output directory order.
//
// PDF 32000-1:2008 9.9 Embedded Font Programs:
// "These TrueType tables shall always be present if present in the original TrueType font
// program: 'head', 'hhea', 'loca', 'maxp', 'cvt', 'prep', 'glyf', 'hmtx' and 'fpgm'. [..]
// If used with a CIDFont dictionary, the 'cmap' table is not needed and shall not be present."
func (f *font) parseTableRecords(r *byteReader) ([]tableRecord, requiredTables, error) {
	var list []tableRecord
	var req requiredTables

	numTables := int(f.ot.numTables)
	for i := 0; i < numTables; i++ {
		var rec tableRecord
		err := rec.read(r)
		if err != nil {
			return nil, req, err
		}

		skipTable := false
		switch rec.tableTag.String() {
		case "head":
			req.head = true
		case "hhea":
			// Required to get numberOfHMetrics.
			req.hhea = true
		case "loca":
			req.loca = true
		case "maxp":
			req.maxp = true
		case "glyf":
			req.glyf = true
		case "hmtx":
			// Advance widths.
			req.hmtx = true
		case "cvt", "fpgm", "prep":
			// Include these tables unconditionally when present in the original font.
		case "post":
			if rec.length < 32 {
				skipTable = true
			}
			// Reduce the table to its 32-byte header; the table is later rewritten
			// as 'post' format 3.
			rec.length = 32
		default:
			// Exclude all other tables, including cmap which is not required.
			skipTable = true
		}

		if !skipTable {
			list = append(list, rec)
		}
	}

	if !req.anyPresent() {
		common.Log.Debug("No required TrueType table present")
		return nil, req, ErrRequiredTableMissing
	}

	return list, req, nil
}

// findTable looks up a retained table record by tag.
func (f *font) findTable(t tag) (tableRecord, bool) {
	for _, rec := range f.tables {
		if rec.tableTag == t {
			return rec, true
		}
	}
	return tableRecord{}, false
}

// tableOffset returns the source offset of the retained table with tag `t`.
func (f *font) tableOffset(t tag) (int64, error) {
	rec, has := f.findTable(t)
	if !has {
		common.Log.Debug("Table %s missing", t)
		return 0, ErrRequiredTableMissing
	}
	return int64(rec.offset), nil
}

func (f *font) String() string {
	var buf bytes.Buffer
	for i, tr := range f.tables {
		buf.WriteString(fmt.Sprintf("Table record %d: %+v\n", i+1, tr))
		buf.WriteString(fmt.Sprintf("%s\n", tr.tableTag))
	}
	return buf.String()
}
