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
	"fmt"
	"io"
	"slices"
	"text/template"
	"unicode/utf16"

	"seehuhn.de/go/postscript/cid"

	pdf "seehuhn.de/go/pdfembed"
)

// IdentityROS is the character collection used for all embedded fonts.
var IdentityROS = &cid.SystemInfo{
	Registry:   "Adobe",
	Ordering:   "Identity",
	Supplement: 0,
}

// ToUnicodeEntry maps a CID to the text it represents.
type ToUnicodeEntry struct {
	CID  cid.CID
	Text rune
}

// makeToUnicode lists the mappings for all codes from FirstCode onwards,
// in increasing code order.
func makeToUnicode(m map[Code]rune) []ToUnicodeEntry {
	codes := make([]Code, 0, len(m))
	for code := range m {
		if code < FirstCode {
			continue
		}
		codes = append(codes, code)
	}
	slices.Sort(codes)

	res := make([]ToUnicodeEntry, len(codes))
	for i, code := range codes {
		res[i] = ToUnicodeEntry{CID: code.CID(), Text: m[code]}
	}
	return res
}

// writeToUnicode writes a ToUnicode CMap with the given entries.
// The entries are split into bfchar blocks of at most 100 lines.
func writeToUnicode(w io.Writer, ros *cid.SystemInfo, entries []ToUnicodeEntry) error {
	data := struct {
		ROS    *cid.SystemInfo
		Chunks [][]ToUnicodeEntry
	}{
		ROS:    ros,
		Chunks: chunks(entries),
	}
	return toUnicodeTmpl.Execute(w, data)
}

const chunkSize = 100

func chunks(x []ToUnicodeEntry) [][]ToUnicodeEntry {
	var res [][]ToUnicodeEntry
	for len(x) >= chunkSize {
		res = append(res, x[:chunkSize])
		x = x[chunkSize:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

// formatEntry writes a bfchar mapping.  Characters outside the BMP are
// written as a UTF-16 surrogate pair, giving an 8-digit destination value.
func formatEntry(e ToUnicodeEntry) string {
	var text []byte
	for _, x := range utf16.Encode([]rune{e.Text}) {
		text = append(text, byte(x>>8), byte(x))
	}
	return fmt.Sprintf("<%04x><%x>", uint16(e.CID), text)
}

func formatPDFString(s string) (string, error) {
	buf := &bytes.Buffer{}
	err := pdf.String(s).PDF(buf)
	return buf.String(), err
}

var toUnicodeTmpl = template.Must(template.New("tounicode").Funcs(template.FuncMap{
	"PDFString": formatPDFString,
	"Entry":     formatEntry,
}).Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo <<
  /Registry {{PDFString .ROS.Registry}}
  /Ordering {{PDFString .ROS.Ordering}}
  /Supplement {{.ROS.Supplement}}
>> def
/CMapName /Identity-H def
/CMapType 2 def
1 begincodespacerange
<0000><ffff>
endcodespacerange
{{range .Chunks -}}
{{len .}} beginbfchar
{{range . -}}
{{Entry .}}
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`))
