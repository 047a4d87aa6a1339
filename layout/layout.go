// seehuhn.de/go/pdfembed - PDF documents with embedded, subsetted fonts
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

// Package layout renders Markdown text into the pages of a document.
//
// Text is set in two fonts, one for headings and one for everything else.
// Lines are broken greedily between words, using the advance widths of
// the glyphs, and new pages are started when the text reaches the bottom
// padding of a page.
package layout

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"seehuhn.de/go/pdfembed/document"
	"seehuhn.de/go/pdfembed/font"
)

// Options control the appearance of the rendered text.
// Zero values select the defaults.
type Options struct {
	// BodyFont and HeaderFont are the names of the fonts used for
	// body text and headings.  The defaults are "Body" and "Header".
	BodyFont   string
	HeaderFont string

	// CodeFont, if set, is used for code blocks.  Otherwise code blocks
	// use the body font.
	CodeFont string

	// FontSize is the size of body text.  The default is 10.
	FontSize float64

	// LineHeight is the distance between baselines, as a multiple of the
	// font size.  The default is 1.4.
	LineHeight float64
}

// Engine places text on the pages of a document.
type Engine struct {
	doc        *document.Document
	body       *font.Font
	header     *font.Font
	code       *font.Font
	size       float64
	lineHeight float64

	page *document.Page
	y    float64 // the top of the next line
}

// New creates a layout engine for doc.  The fonts are requested from the
// document immediately.
func New(doc *document.Document, opt *Options) (*Engine, error) {
	if opt == nil {
		opt = &Options{}
	}
	bodyName := opt.BodyFont
	if bodyName == "" {
		bodyName = "Body"
	}
	headerName := opt.HeaderFont
	if headerName == "" {
		headerName = "Header"
	}

	e := &Engine{
		doc:        doc,
		size:       opt.FontSize,
		lineHeight: opt.LineHeight,
	}
	if e.size == 0 {
		e.size = 10
	}
	if e.lineHeight == 0 {
		e.lineHeight = 1.4
	}
	if e.size < 0 || e.lineHeight < 1 {
		return nil, errors.New("invalid font size or line height")
	}

	var err error
	e.body, err = doc.Font(bodyName)
	if err != nil {
		return nil, err
	}
	e.header, err = doc.Font(headerName)
	if err != nil {
		return nil, err
	}
	e.code = e.body
	if opt.CodeFont != "" {
		e.code, err = doc.Font(opt.CodeFont)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// headingScale gives the font size of headings, relative to the body text.
func headingScale(level int) float64 {
	switch level {
	case 1:
		return 2
	case 2:
		return 1.5
	default:
		return 1.25
	}
}

const listIndent = 15

// Markdown renders Markdown source text.
func (e *Engine) Markdown(src []byte) error {
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	return e.blocks(root, src, 0)
}

func (e *Engine) blocks(node ast.Node, src []byte, indent float64) error {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		var err error
		switch n := child.(type) {
		case *ast.Heading:
			size := e.size * headingScale(n.Level)
			err = e.Paragraph(inlineText(n, src), e.header, size, indent)
		case *ast.Paragraph, *ast.TextBlock:
			err = e.Paragraph(inlineText(n, src), e.body, e.size, indent)
		case *ast.List:
			err = e.list(n, src, indent)
		case *ast.Blockquote:
			err = e.blocks(n, src, indent+listIndent)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			err = e.codeBlock(n, src, indent)
		case *ast.ThematicBreak:
			e.skip(e.size * e.lineHeight)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) list(n *ast.List, src []byte, indent float64) error {
	number := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "\u2022"
		if n.IsOrdered() {
			marker = strconv.Itoa(number) + "."
			number++
		}
		err := e.ensureSpace(e.size * e.lineHeight)
		if err != nil {
			return err
		}
		err = e.page.Text(e.body, e.size, e.doc.Padding.Left+indent, e.y-e.size, marker)
		if err != nil {
			return err
		}
		err = e.blocks(item, src, indent+listIndent)
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) codeBlock(n ast.Node, src []byte, indent float64) error {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := expandTabs(strings.TrimRight(string(seg.Value(src)), "\r\n"))
		err := e.line(e.code, e.size, e.doc.Padding.Left+indent, line)
		if err != nil {
			return err
		}
	}
	e.skip(e.size * (e.lineHeight - 1))
	return nil
}

const tabWidth = 4

// expandTabs replaces tabs by spaces, up to the next multiple of tabWidth,
// and removes all other control characters.  The fonts have no glyphs
// for these.
func expandTabs(line string) string {
	b := &strings.Builder{}
	col := 0
	for _, r := range line {
		switch {
		case r == '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case r < 0x20 || r == 0x7f:
			// skip
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// Paragraph sets text in the given font and size, starting on a new line.
// Lines are filled greedily with as many words as fit into the text area.
func (e *Engine) Paragraph(text string, F *font.Font, size, indent float64) error {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	x := e.doc.Padding.Left + indent
	maxWidth := e.doc.InnerWidth() - indent

	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		w, err := F.Width(candidate, size)
		if err != nil {
			return err
		}
		if w <= maxWidth {
			line = candidate
			continue
		}
		err = e.line(F, size, x, line)
		if err != nil {
			return err
		}
		line = word
	}
	err := e.line(F, size, x, line)
	if err != nil {
		return err
	}
	e.skip(size * (e.lineHeight - 1))
	return nil
}

func (e *Engine) line(F *font.Font, size, x float64, text string) error {
	height := size * e.lineHeight
	err := e.ensureSpace(height)
	if err != nil {
		return err
	}
	if text != "" {
		err = e.page.Text(F, size, x, e.y-size, text)
		if err != nil {
			return err
		}
	}
	e.y -= height
	return nil
}

// ensureSpace starts a new page if there is no room for a line of the
// given height on the current page.
func (e *Engine) ensureSpace(height float64) error {
	if e.page != nil && e.y-height >= e.doc.Padding.Bottom {
		return nil
	}
	if e.page != nil {
		err := e.page.Close()
		if err != nil {
			return err
		}
	}
	page, err := e.doc.AddPage()
	if err != nil {
		return err
	}
	e.page = page
	e.y = e.doc.Height - e.doc.Padding.Top
	return nil
}

func (e *Engine) skip(height float64) {
	if e.page != nil {
		e.y -= height
	}
}

// inlineText collects the text of the inline children of n.
// Soft and hard line breaks are replaced by spaces.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(t.Value)
			case *ast.AutoLink:
				b.Write(t.URL(src))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}
