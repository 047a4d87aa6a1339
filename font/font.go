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
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"

	pdf "seehuhn.de/go/pdfembed"
	"seehuhn.de/go/pdfembed/font/tables"
)

// Font is a font which is embedded into a PDF file.
//
// A Font records which characters are used while the document is
// built.  When the document is complete, [Font.Write] embeds the subset of
// the font needed for these characters.
//
// A Font is not safe for concurrent use.
type Font struct {
	// Alias is the name of the font in the resource dictionaries of
	// the document, e.g. "F1".
	Alias pdf.Name

	info   *tables.Info
	subset Subsetter
	scale  float64
	ref    pdf.Reference
}

// New creates a new font.  The space character is marked as used
// immediately, so that it is always assigned the first code.
func New(alias pdf.Name, info *tables.Info, subset Subsetter) (*Font, error) {
	if info.UnitsPerEm == 0 {
		return nil, &StructuralError{
			Font:  string(alias),
			Table: "head",
			Err:   errNoUnitsPerEm,
		}
	}
	f := &Font{
		Alias:  alias,
		info:   info,
		subset: subset,
		scale:  1000 / float64(info.UnitsPerEm),
	}
	err := f.subset.Use(" ")
	if err != nil {
		return nil, err
	}
	return f, nil
}

// PostScriptName returns the PostScript name of the font.
func (f *Font) PostScriptName() string {
	return f.info.PostScriptName
}

// Info returns the font metrics.
func (f *Font) Info() *tables.Info {
	return f.info
}

// Encode marks the characters of text as used and returns the PDF string
// which shows text in a content stream, as a hex string of two-byte CIDs.
//
// The text is normalized to NFC before encoding.  If the font has no glyph
// for one of the characters, an [*EncodingError] is returned.
func (f *Font) Encode(text string) (pdf.Raw, error) {
	codes, err := f.codes(text)
	if err != nil {
		return "", err
	}

	const hexDigits = "0123456789abcdef"
	buf := &strings.Builder{}
	buf.Grow(4*len(codes) + 2)
	buf.WriteByte('<')
	for _, code := range codes {
		c := uint16(code.CID())
		buf.WriteByte(hexDigits[c>>12])
		buf.WriteByte(hexDigits[c>>8&15])
		buf.WriteByte(hexDigits[c>>4&15])
		buf.WriteByte(hexDigits[c&15])
	}
	buf.WriteByte('>')
	return pdf.Raw(buf.String()), nil
}

// Width returns the width of text, set at the given font size,
// in PDF units.  The characters of text are marked as used.
func (f *Font) Width(text string, size float64) (float64, error) {
	codes, err := f.codes(text)
	if err != nil {
		return 0, err
	}
	var w int
	for _, code := range codes {
		w += f.subset.AdvanceWidth(code)
	}
	return float64(w) * f.scale * size / 1000, nil
}

// Ascent returns the typographic ascender of the font, set at the given
// size, in PDF units.
func (f *Font) Ascent(size float64) float64 {
	if f.info.OS2 == nil {
		return float64(f.info.YMax) * f.scale * size / 1000
	}
	return float64(f.info.OS2.TypoAscender) * f.scale * size / 1000
}

// Descent returns the typographic descender of the font, set at the given
// size, in PDF units.  The value is normally negative.
func (f *Font) Descent(size float64) float64 {
	if f.info.OS2 == nil {
		return float64(f.info.YMin) * f.scale * size / 1000
	}
	return float64(f.info.OS2.TypoDescender) * f.scale * size / 1000
}

func (f *Font) codes(text string) ([]Code, error) {
	text = norm.NFC.String(text)
	err := f.subset.Use(text)
	if err != nil {
		var encErr *EncodingError
		if errors.As(err, &encErr) {
			encErr.Font = string(f.Alias)
		}
		return nil, err
	}
	return f.subset.Encode(text)
}
