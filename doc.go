/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package truetype supports subsetting of TrueType and TrueType-flavored
// OpenType fonts for embedding in PDF. Given a font program and the glyph IDs
// actually used, it produces a minimal, self-contained font containing only
// those glyphs, their compound components, and the mandatory supporting tables.
package truetype
