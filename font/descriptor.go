// seehuhn.de/go/pdfembed - PDF documents with embedded, subsetted fonts
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfembed"
	"seehuhn.de/go/pdfembed/font/tables"
)

// Descriptor represents a PDF font descriptor.
//
// See section 9.8.1 of PDF 32000-1:2008.
type Descriptor struct {
	FontName string

	IsFixedPitch bool // flag
	IsSerif      bool // flag
	IsScript     bool // flag
	IsItalic     bool // flag

	FontBBox    rect.Rect
	ItalicAngle float64
	Ascent      float64
	Descent     float64
	CapHeight   float64
	StemV       float64
}

// MakeDescriptor computes the font descriptor for a font.  All lengths are
// converted from font design units to PDF glyph space units.
//
// The OS/2 typographic line gap is used for CapHeight, and StemV is
// always 0.
func MakeDescriptor(info *tables.Info, fontName string) (*Descriptor, error) {
	switch {
	case info.UnitsPerEm == 0:
		return nil, &StructuralError{Table: "head", Err: errNoUnitsPerEm}
	case info.OS2 == nil:
		return nil, &StructuralError{Table: "OS/2", Err: errMissingTable}
	case info.Post == nil:
		return nil, &StructuralError{Table: "post", Err: errMissingTable}
	}

	scale := 1000 / float64(info.UnitsPerEm)
	class := info.OS2.FamilyClassID()
	d := &Descriptor{
		FontName:     fontName,
		IsFixedPitch: info.Post.IsFixedPitch,
		IsSerif:      isSerifClass(class),
		IsScript:     class == classScripts,
		IsItalic:     info.Post.ItalicAngle != 0,
		FontBBox: rect.Rect{
			LLx: float64(info.XMin) * scale,
			LLy: float64(info.YMin) * scale,
			URx: float64(info.XMax) * scale,
			URy: float64(info.YMax) * scale,
		},
		ItalicAngle: info.Post.ItalicAngle,
		Ascent:      float64(info.OS2.TypoAscender) * scale,
		Descent:     float64(info.OS2.TypoDescender) * scale,
		CapHeight:   float64(info.OS2.TypoLineGap) * scale,
		StemV:       0,
	}
	return d, nil
}

// SubsetName returns the /FontName of a font subset, formed by joining the
// subset tag and the PostScript name of the font.
func SubsetName(tag, psName string) string {
	if tag == "" {
		return psName
	}
	return tag + "+" + psName
}

// Flags returns the font descriptor flags.  Embedded subsets are always
// marked as nonsymbolic.
func (d *Descriptor) Flags() Flags {
	flags := FlagNonsymbolic
	if d.IsFixedPitch {
		flags |= FlagFixedPitch
	}
	if d.IsSerif {
		flags |= FlagSerif
	}
	if d.IsScript {
		flags |= FlagScript
	}
	if d.IsItalic {
		flags |= FlagItalic
	}
	return flags
}

// AsDict returns the font descriptor dictionary, without the font file
// entry.
func (d *Descriptor) AsDict() *pdf.Dict {
	dict := &pdf.Dict{}
	dict.Set("Type", pdf.Name("FontDescriptor"))
	d.fill(dict)
	return dict
}

// fill adds the descriptor entries to dict.
func (d *Descriptor) fill(dict *pdf.Dict) {
	dict.Set("FontName", pdf.Name(d.FontName))
	dict.Set("Flags", pdf.Integer(d.Flags()))
	dict.Set("FontBBox", pdf.Array{
		pdf.Number(d.FontBBox.LLx),
		pdf.Number(d.FontBBox.LLy),
		pdf.Number(d.FontBBox.URx),
		pdf.Number(d.FontBBox.URy),
	})
	dict.Set("ItalicAngle", pdf.Number(d.ItalicAngle))
	dict.Set("Ascent", pdf.Number(d.Ascent))
	dict.Set("Descent", pdf.Number(d.Descent))
	dict.Set("CapHeight", pdf.Number(d.CapHeight))
	dict.Set("StemV", pdf.Number(d.StemV))
}

var (
	errMissingTable = errors.New("missing")
	errNoUnitsPerEm = errors.New("unitsPerEm is zero")
)
