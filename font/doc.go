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

// Package font embeds subsetted fonts into PDF files.
//
// Every [Font] is embedded as a composite (Type0) font with Identity-H
// encoding.  Text is encoded as two-byte character identifiers (CIDs);
// the glyph for CID i is glyph i of the embedded, compacted font program.
// Writing a font adds five indirect objects to a [pdf.Graph]:
//
//   - the font file stream, ASCIIHex encoded
//   - the font descriptor
//   - the descendant CIDFont, with the glyph widths
//   - the ToUnicode CMap stream
//   - the Type0 font dictionary
//
// Fonts with CFF outlines are embedded as CIDFontType0 fonts (FontFile3 with
// subtype CIDFontType0C), fonts with TrueType outlines as CIDFontType2
// fonts (FontFile2).
//
// Font metrics are read using [seehuhn.de/go/pdfembed/font/tables], the
// subsetting is delegated to a [Subsetter], normally provided by
// [seehuhn.de/go/pdfembed/font/subset].
package font
