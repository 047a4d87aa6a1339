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
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"slices"

	pdf "seehuhn.de/go/pdfembed"
)

// Write embeds the subsetted font into a PDF file and returns a
// reference to the Type0 font dictionary.
//
// Five objects are created, in this order: the font file stream, the font
// descriptor, the descendant CIDFont, the ToUnicode CMap stream and the
// Type0 font dictionary.  If an error is returned, no objects have been
// created.  Write can only be called once for each font.
func (f *Font) Write(a pdf.Allocator) (pdf.Reference, error) {
	if f.ref.Number != 0 {
		return pdf.Reference{}, errWritten
	}

	psName := f.info.PostScriptName
	if psName == "" {
		return pdf.Reference{}, f.structuralError("name", errNoPostScriptName)
	}
	desc, err := MakeDescriptor(f.info, SubsetName(f.subset.Tag(), psName))
	if err != nil {
		var sErr *StructuralError
		if errors.As(err, &sErr) {
			sErr.Font = string(f.Alias)
		}
		return pdf.Reference{}, err
	}

	prog, err := f.subset.Save()
	if err != nil {
		return pdf.Reference{}, f.structuralError("", err)
	}

	var subtype, fileKey pdf.Name
	var fileSubtype pdf.Object
	switch prog.Outlines {
	case CFF:
		subtype = "CIDFontType0"
		fileKey = "FontFile3"
		fileSubtype = pdf.Name("CIDFontType0C")
	case TrueType:
		subtype = "CIDFontType2"
		fileKey = "FontFile2"
	default:
		return pdf.Reference{}, f.structuralError("", errUnknownOutlines)
	}

	toUni := &bytes.Buffer{}
	err = writeToUnicode(toUni, IdentityROS, makeToUnicode(f.subset.ToUnicode()))
	if err != nil {
		return pdf.Reference{}, err
	}

	ros := pdf.NewDict(
		"Ordering", pdf.String(IdentityROS.Ordering),
		"Registry", pdf.String(IdentityROS.Registry),
		"Supplement", pdf.Integer(IdentityROS.Supplement),
	)
	w := f.widths()

	// From here on nothing can fail.

	fontFile := a.CreateObject("")
	fontFile.Dict.Set("Filter", pdf.Name("ASCIIHexDecode"))
	fontFile.Dict.Set("Subtype", fileSubtype)
	fontFile.Dict.Set("Length1", pdf.Integer(len(prog.Data)))
	fontFile.SetContent(hexEncode(prog.Data))

	fontDesc := a.CreateObject("FontDescriptor")
	desc.fill(fontDesc.Dict)
	fontDesc.Dict.Set(fileKey, fontFile.Reference())

	cidFont := a.CreateObject("Font")
	cidFont.Dict.Set("Subtype", subtype)
	cidFont.Dict.Set("BaseFont", pdf.Name(psName))
	cidFont.Dict.Set("DW", pdf.Integer(1000))
	cidFont.Dict.Set("CIDToGIDMap", pdf.Name("Identity"))
	cidFont.Dict.Set("CIDSystemInfo", ros)
	cidFont.Dict.Set("FontDescriptor", fontDesc.Reference())
	cidFont.Dict.Set("W", w)

	cmap := a.CreateObject("")
	cmap.SetContent(toUni.Bytes())

	font := a.CreateObject("Font")
	font.Dict.Set("Subtype", pdf.Name("Type0"))
	font.Dict.Set("BaseFont", pdf.Name(psName))
	font.Dict.Set("Encoding", pdf.Name("Identity-H"))
	font.Dict.Set("DescendantFonts", pdf.Array{cidFont.Reference()})
	font.Dict.Set("ToUnicode", cmap.Reference())

	f.ref = font.Reference()
	return f.ref, nil
}

// Reference returns the reference of the Type0 font dictionary,
// or the zero Reference if the font has not been written yet.
func (f *Font) Reference() pdf.Reference {
	return f.ref
}

// widths returns the /W array for the descendant font.
// Each used code from FirstCode onwards contributes an entry "cid [w]".
func (f *Font) widths() pdf.Array {
	cmap := f.subset.CMap()
	codes := make([]Code, 0, len(cmap))
	for code := range cmap {
		if code < FirstCode {
			continue
		}
		codes = append(codes, code)
	}
	slices.Sort(codes)

	res := make(pdf.Array, 0, 2*len(codes))
	for _, code := range codes {
		w := math.Round(float64(f.subset.AdvanceWidth(code)) * f.scale)
		res = append(res,
			pdf.Integer(code.CID()),
			pdf.Array{pdf.Integer(w)})
	}
	return res
}

// hexEncode returns the ASCIIHexDecode representation of data,
// including the end-of-data marker.
func hexEncode(data []byte) []byte {
	buf := make([]byte, hex.EncodedLen(len(data))+1)
	hex.Encode(buf, data)
	buf[len(buf)-1] = '>'
	return buf
}

func (f *Font) structuralError(table string, err error) error {
	return &StructuralError{
		Font:  string(f.Alias),
		Table: table,
		Err:   err,
	}
}

var (
	errWritten          = errors.New("font already written")
	errNoPostScriptName = errors.New("missing PostScript name")
	errUnknownOutlines  = errors.New("unknown outline format")
)
