/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "errors"

// Errors returned by the subsetter. All are fatal to the build in progress:
// no partial font output is ever returned.
var (
	// ErrNotTrueType indicates the input is not a TrueType or
	// TrueType-flavored OpenType font. CFF-flavored (OTTO) fonts are
	// not supported.
	ErrNotTrueType = errors.New("not a TrueType font")

	// ErrRequiredTableMissing indicates none of the mandatory tables
	// (head, hhea, loca, maxp, glyf, hmtx) were found, or a table needed
	// during subsetting is absent.
	ErrRequiredTableMissing = errors.New("required TrueType table missing")

	// ErrGIDOutOfRange indicates a requested or transitively referenced
	// glyph ID is not smaller than the font's glyph count.
	ErrGIDOutOfRange = errors.New("GID out of range")

	// ErrUnsupportedTable indicates a retained table has no write rule.
	// Should be unreachable given the table directory filter.
	ErrUnsupportedTable = errors.New("unsupported table at write")
)

var (
	errTypeCheck  = errors.New("type check error")
	errRangeCheck = errors.New("range check error")
)
