// seehuhn.de/go/pdfembed - PDF documents with embedded, subsetted fonts
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package pdf implements the object model and the serializer used to
// generate PDF files.
//
// A PDF file is a sequence of numbered indirect objects, followed by a
// cross-reference table and a trailer.  A [Graph] owns the indirect objects
// of a file and hands out object numbers; [Write] turns a graph into the
// final byte sequence:
//
//	g := pdf.NewGraph()
//	catalog := g.CreateObject("Catalog")
//	pages := g.CreateObject("Pages")
//	catalog.Dict.Set("Pages", pages.Reference())
//	...
//	err := pdf.Write(w, g, pdf.V1_3)
//
// The following types implement the PDF value types.
// All of these implement the [Object] interface:
//
//	Array
//	Dict
//	Integer
//	Name
//	Raw
//	Real
//	Reference
//	String
//
// Subpackages embed fonts and build documents on top of this package.
package pdf
