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

// Package document builds PDF documents with embedded, subsetted fonts.
//
// A Document owns the object graph of the file.  The document catalog is
// created together with the document and is always object 1.  Fonts are
// requested by name and are embedded when the document is written, at
// which point only the glyphs actually used are included.
//
// A Document is not safe for concurrent use.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfembed"
	"seehuhn.de/go/pdfembed/font"
	"seehuhn.de/go/pdfembed/font/loader"
	"seehuhn.de/go/pdfembed/font/subset"
	"seehuhn.de/go/pdfembed/font/tables"
	"seehuhn.de/go/pdfembed/logging"
	"seehuhn.de/go/pdfembed/metadata"
)

// ErrClosed is returned when a document is used after it has been written.
var ErrClosed = errors.New("document already written")

// Loader provides the font files for the fonts used in a document.
// [*loader.FontLoader] implements this interface.
type Loader interface {
	Load(name string) ([]byte, error)
}

// Padding gives the distance between the page edges and the area used
// for text, in PDF units.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// DefaultPadding is used if no padding is specified.
var DefaultPadding = Padding{Top: 70, Right: 40, Bottom: 70, Left: 50}

// Options can be used to control the construction of a document.
// Zero values select the defaults.
type Options struct {
	// Version is the PDF version of the output.  The default is PDF 1.3.
	Version pdf.Version

	// Width and Height give the page size.  The default is US Letter.
	Width, Height float64

	// Padding, if set, overrides DefaultPadding.
	Padding *Padding

	// Loader is used to find font files.  The default is a
	// [loader.FontLoader] which knows the Go fonts.
	Loader Loader

	// Logger receives progress messages.  The default discards all
	// messages.
	Logger logging.Logger
}

// Document is a PDF document under construction.
type Document struct {
	Version pdf.Version
	Width   float64
	Height  float64
	Padding Padding

	graph   *pdf.Graph
	catalog *pdf.IndirectObject
	pages   *pdf.IndirectObject
	kids    []*Page

	fonts      map[string]*font.Font
	fontList   []*font.Font
	nextFontID int

	meta *metadata.Stream

	loader Loader
	log    logging.Logger
	closed bool
}

// New creates a new document.  The new document contains only the
// document catalog.
func New(opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}

	doc := &Document{
		Version: opt.Version,
		Width:   opt.Width,
		Height:  opt.Height,
		Padding: DefaultPadding,

		graph:      pdf.NewGraph(),
		fonts:      make(map[string]*font.Font),
		nextFontID: 1,

		loader: opt.Loader,
		log:    opt.Logger,
	}
	if doc.Version == 0 {
		doc.Version = pdf.V1_3
	}
	if _, err := doc.Version.ToString(); err != nil {
		return nil, err
	}
	if doc.Width == 0 && doc.Height == 0 {
		doc.Width = Letter.URx
		doc.Height = Letter.URy
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%g", doc.Width, doc.Height)
	}
	if opt.Padding != nil {
		doc.Padding = *opt.Padding
	}
	if doc.InnerWidth() <= 0 || doc.InnerHeight() <= 0 {
		return nil, errors.New("padding leaves no space for text")
	}
	if doc.loader == nil {
		doc.loader = loader.NewFontLoader()
	}
	if doc.log == nil {
		doc.log = logging.Nop
	}

	doc.catalog = doc.graph.CreateObject("Catalog")
	return doc, nil
}

// InnerWidth returns the width of the text area.
func (doc *Document) InnerWidth() float64 {
	return doc.Width - doc.Padding.Right - doc.Padding.Left
}

// InnerHeight returns the height of the text area.
func (doc *Document) InnerHeight() float64 {
	return doc.Height - doc.Padding.Top - doc.Padding.Bottom
}

// InnerBox returns the text area of a page.
func (doc *Document) InnerBox() rect.Rect {
	return rect.Rect{
		LLx: doc.Padding.Left,
		LLy: doc.Padding.Bottom,
		URx: doc.Width - doc.Padding.Right,
		URy: doc.Height - doc.Padding.Top,
	}
}

// Graph returns the object graph of the document.
func (doc *Document) Graph() *pdf.Graph {
	return doc.graph
}

// Font returns the font with the given name.  The first request for a
// name loads the font and assigns the next resource name (F1, F2, ...);
// later requests return the same font.  If loading fails, no resource
// name is used up.
func (doc *Document) Font(name string) (*font.Font, error) {
	if doc.closed {
		return nil, ErrClosed
	}
	if F, ok := doc.fonts[name]; ok {
		return F, nil
	}

	err := pdf.CheckVersion(doc.Version, "embedded CID fonts", pdf.V1_2)
	if err != nil {
		return nil, err
	}

	data, err := doc.loader.Load(name)
	if err != nil {
		return nil, err
	}
	info, err := tables.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	sub, err := subset.New(data)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	alias := pdf.Name("F" + strconv.Itoa(doc.nextFontID))
	F, err := font.New(alias, info, sub)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}

	doc.nextFontID++
	doc.fonts[name] = F
	doc.fontList = append(doc.fontList, F)
	doc.log.Info("font loaded",
		logging.String("name", name),
		logging.String("alias", string(alias)),
		logging.String("postscript", F.PostScriptName()))
	return F, nil
}

// SetInfo adds XMP metadata to the document.  This requires PDF 1.4
// or newer.
func (doc *Document) SetInfo(info *metadata.Info) error {
	if doc.closed {
		return ErrClosed
	}
	err := pdf.CheckVersion(doc.Version, "XMP metadata", pdf.V1_4)
	if err != nil {
		return err
	}
	s, err := metadata.NewStream(info)
	if err != nil {
		return err
	}
	doc.meta = s
	return nil
}

// AddPage appends a new page to the document.
func (doc *Document) AddPage() (*Page, error) {
	if doc.closed {
		return nil, ErrClosed
	}
	pagesRef := doc.pagesRoot().Reference()

	obj := doc.graph.CreateObject("Page")
	obj.Dict.Set("Parent", pagesRef)
	obj.Dict.Set("MediaBox", pdf.Array{
		pdf.Integer(0), pdf.Integer(0),
		pdf.Number(doc.Width), pdf.Number(doc.Height),
	})
	contents := doc.graph.CreateObject("")
	obj.Dict.Set("Contents", contents.Reference())

	p := &Page{
		doc:      doc,
		obj:      obj,
		contents: contents,
		buf:      &bytes.Buffer{},
	}
	doc.kids = append(doc.kids, p)
	return p, nil
}

// NumPages returns the number of pages added so far.
func (doc *Document) NumPages() int {
	return len(doc.kids)
}

func (doc *Document) pagesRoot() *pdf.IndirectObject {
	if doc.pages == nil {
		doc.pages = doc.graph.CreateObject("Pages")
		doc.catalog.Dict.Set("Pages", doc.pages.Reference())
	}
	return doc.pages
}

// Bytes writes all fonts, closes all pages and returns the serialized
// document.  After Bytes has been called, the document can no longer be
// modified.
func (doc *Document) Bytes() ([]byte, error) {
	if doc.closed {
		return nil, ErrClosed
	}
	doc.closed = true

	err := doc.finalize()
	if err != nil {
		return nil, err
	}
	data, err := pdf.Bytes(doc.graph, doc.Version)
	if err != nil {
		return nil, err
	}
	doc.log.Info("document written",
		logging.Int("objects", doc.graph.Len()),
		logging.Int("pages", len(doc.kids)),
		logging.Int("bytes", len(data)))
	return data, nil
}

// WriteTo writes the serialized document to w.
// This implements the [io.WriterTo] interface.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := doc.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile writes the serialized document to the named file.
// The file is only created if the document could be serialized.
func (doc *Document) WriteFile(name string) error {
	data, err := doc.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

func (doc *Document) finalize() error {
	for _, p := range doc.kids {
		err := p.close()
		if err != nil {
			return err
		}
	}

	fontDict := &pdf.Dict{}
	for _, F := range doc.fontList {
		ref, err := F.Write(doc.graph)
		if err != nil {
			return err
		}
		fontDict.Set(F.Alias, ref)
		doc.log.Debug("font embedded",
			logging.String("alias", string(F.Alias)),
			logging.String("postscript", F.PostScriptName()),
			logging.Int64("object", int64(ref.Number)))
	}

	pages := doc.pagesRoot()
	kids := make(pdf.Array, len(doc.kids))
	for i, p := range doc.kids {
		kids[i] = p.obj.Reference()
	}
	pages.Dict.Set("Kids", kids)
	pages.Dict.Set("Count", pdf.Integer(len(doc.kids)))
	if fontDict.Len() > 0 {
		pages.Dict.Set("Resources", pdf.NewDict("Font", fontDict))
	}

	if doc.meta != nil {
		ref, err := doc.meta.Embed(doc.graph, doc.Version)
		if err != nil {
			return err
		}
		doc.catalog.Dict.Set("Metadata", ref)
	}
	return nil
}
