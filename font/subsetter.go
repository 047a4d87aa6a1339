// seehuhn.de/go/pdfembed - PDF documents with embedded, subsetted fonts
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package font

import (
	"strconv"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"
)

// Code is a character code assigned by a [Subsetter].
//
// Codes below FirstCode are reserved.  Code c is written to the PDF file as
// the two-byte CID c-CodeOffset.
type Code uint16

// The code space used for embedded fonts.
const (
	FirstCode  Code = 32
	CodeOffset Code = 31
)

// CID returns the character identifier used for c in content streams.
func (c Code) CID() cid.CID {
	return cid.CID(c - CodeOffset)
}

// Subsetter keeps track of the characters used with a font and produces
// the subsetted font program.
//
// Every distinct character passed to Use is assigned a code, in the order in
// which the characters are first seen, starting at [FirstCode].
type Subsetter interface {
	// Use marks all characters in text as used.  If the font has no glyph
	// for one of the characters, an [*EncodingError] is returned and no
	// code is assigned for any character of text.
	Use(text string) error

	// Encode returns the codes for the characters in text.  All characters
	// must have been marked as used before.
	Encode(text string) ([]Code, error)

	// CMap maps the assigned codes to glyph IDs in the original font.
	CMap() map[Code]glyph.ID

	// ToUnicode maps the assigned codes to the corresponding characters.
	ToUnicode() map[Code]rune

	// AdvanceWidth returns the advance width of the glyph for code,
	// in font design units.
	AdvanceWidth(code Code) int

	// Tag returns the six-letter subset tag.  The tag is prefixed to the
	// PostScript name of the font to form the /FontName of the subset.
	Tag() string

	// Save returns the subsetted font program.  Glyph i of the program is
	// the glyph for CID i, glyph 0 is .notdef.
	Save() (*Program, error)
}

// Outlines describes the glyph outline format of a font program.
type Outlines int

// Supported outline formats.
const (
	CFF Outlines = iota + 1
	TrueType
)

func (o Outlines) String() string {
	switch o {
	case CFF:
		return "CFF"
	case TrueType:
		return "TrueType"
	default:
		return "font.Outlines(" + strconv.Itoa(int(o)) + ")"
	}
}

// Program is a font program, ready for embedding.
type Program struct {
	Outlines Outlines

	// Data is a bare CID-keyed CFF font for CFF outlines, and a TrueType
	// font file otherwise.
	Data []byte
}
