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

package document

import (
	"bytes"
	"errors"
	"io"
	"math"
	"slices"

	pdf "seehuhn.de/go/pdfembed"
	"seehuhn.de/go/pdfembed/font"
)

// Page is a page of a document.  The page contents are built using the
// Text* methods, which append operators to the content stream.
//
// If an operation fails, the error is stored in Err and all later
// operations are ignored.
type Page struct {
	Err error

	doc      *Document
	obj      *pdf.IndirectObject
	contents *pdf.IndirectObject
	buf      *bytes.Buffer

	font     *font.Font
	fontSize float64
	inText   bool
	closed   bool
}

// TextBegin starts a new text object.
//
// This implements the PDF graphics operator "BT".
func (p *Page) TextBegin() {
	if p.inText {
		p.setErr(errNestedText)
		return
	}
	p.inText = true
	p.emit("BT")
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (p *Page) TextEnd() {
	if !p.inText {
		p.setErr(errNoText)
		return
	}
	p.inText = false
	p.emit("ET")
}

// TextSetFont sets the font and font size.  The font must have been
// obtained from the same document using [Document.Font].
//
// This implements the PDF graphics operator "Tf".
func (p *Page) TextSetFont(F *font.Font, size float64) {
	if p.Err != nil {
		return
	}
	if !slices.Contains(p.doc.fontList, F) {
		p.setErr(errForeignFont)
		return
	}
	if p.font == F && nearlyEqual(p.fontSize, size) {
		return
	}
	p.font = F
	p.fontSize = size
	p.emit("Tf", F.Alias, pdf.Number(size))
}

// TextSetLeading sets the text leading.
//
// This implements the PDF graphics operator "TL".
func (p *Page) TextSetLeading(leading float64) {
	p.emit("TL", pdf.Number(leading))
}

// TextFirstLine moves to the start of the next line of text.
// The new text position is (x, y), relative to the start of the current
// line (or to the current point if there is no current line).
//
// This implements the PDF graphics operator "Td".
func (p *Page) TextFirstLine(x, y float64) {
	p.emit("Td", pdf.Number(x), pdf.Number(y))
}

// TextSecondLine moves to the point (dx, dy) relative to the start of the
// current line of text.  The function also sets the leading to -dy.
//
// This implements the PDF graphics operator "TD".
func (p *Page) TextSecondLine(dx, dy float64) {
	p.emit("TD", pdf.Number(dx), pdf.Number(dy))
}

// TextNextLine moves to the start of the next line.
//
// This implements the PDF graphics operator "T*".
func (p *Page) TextNextLine() {
	p.emit("T*")
}

// TextShow shows text using the current font.  The characters are
// marked as used in the font.
//
// This implements the PDF graphics operator "Tj".
func (p *Page) TextShow(text string) error {
	if p.Err != nil {
		return p.Err
	}
	if p.font == nil {
		p.setErr(errNoFont)
		return p.Err
	}
	s, err := p.font.Encode(text)
	if err != nil {
		p.setErr(err)
		return err
	}
	p.emit("Tj", s)
	return p.Err
}

// Text shows text at position (x, y) in a text object of its own.
func (p *Page) Text(F *font.Font, size, x, y float64, text string) error {
	p.TextBegin()
	p.TextSetFont(F, size)
	p.TextFirstLine(x, y)
	p.TextShow(text)
	p.TextEnd()
	return p.Err
}

// Close finishes the page.  The page contents can no longer be modified
// after this call.  Pages which are still open when the document is
// written are closed automatically.
func (p *Page) Close() error {
	if p.closed {
		return errPageClosed
	}
	return p.close()
}

func (p *Page) close() error {
	if p.closed {
		return nil
	}
	if p.Err != nil {
		return p.Err
	}
	if p.inText {
		return errOpenText
	}
	p.closed = true
	p.contents.SetContent(p.buf.Bytes())
	p.buf = nil
	return nil
}

func (p *Page) emit(op string, args ...pdf.Object) {
	if p.Err != nil {
		return
	}
	if p.closed {
		p.Err = errPageClosed
		return
	}
	for _, arg := range args {
		err := arg.PDF(p.buf)
		if err != nil {
			p.Err = err
			return
		}
		p.buf.WriteByte(' ')
	}
	io.WriteString(p.buf, op)
	p.buf.WriteByte('\n')
}

func (p *Page) setErr(err error) {
	if p.Err == nil {
		p.Err = err
	}
}

func nearlyEqual(a, b float64) bool {
	const ε = 1e-6
	return math.Abs(a-b) < ε
}

var (
	errNestedText  = errors.New("nested text objects")
	errNoText      = errors.New("no text object open")
	errOpenText    = errors.New("text object not closed")
	errNoFont      = errors.New("no font set")
	errForeignFont = errors.New("font belongs to a different document")
	errPageClosed  = errors.New("page already closed")
)
