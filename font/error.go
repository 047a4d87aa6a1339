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
	"fmt"
)

// StructuralError indicates that a font cannot be embedded, because
// required font tables are missing or malformed, or because no font
// program could be produced.
type StructuralError struct {
	Font  string // the resource name of the font
	Table string // the offending table, if known
	Err   error
}

func (err *StructuralError) Error() string {
	msg := "font " + err.Font
	if err.Table != "" {
		msg += ": " + err.Table + " table"
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *StructuralError) Unwrap() error {
	return err.Err
}

// EncodingError is returned if a font has no glyph for a character.
type EncodingError struct {
	Font string
	Char rune
}

func (err *EncodingError) Error() string {
	return fmt.Sprintf("font %s has no glyph for %q (U+%04X)",
		err.Font, err.Char, err.Char)
}
