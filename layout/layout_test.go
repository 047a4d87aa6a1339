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

package layout

import (
	"regexp"
	"strings"
	"testing"

	"seehuhn.de/go/pdfembed/document"
	"seehuhn.de/go/pdfembed/font/loader"
)

func newDocument(t *testing.T) *document.Document {
	t.Helper()
	fonts := loader.NewFontLoader()
	err := fonts.AddFontMap(strings.NewReader("Body builtin:GoRegular\nHeader builtin:GoBold\n"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.New(&document.Options{Loader: fonts})
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestMarkdown(t *testing.T) {
	doc := newDocument(t)
	e, err := New(doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	src := "# Title\n\nSome *body* text\nwith a soft break.\n\n- one\n- two\n\n1. first\n2. second\n"
	err = e.Markdown([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if doc.NumPages() != 1 {
		t.Fatalf("%d pages", doc.NumPages())
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	s := string(data)
	// the heading uses the header font F2 at twice the body size
	if !strings.Contains(s, "/F2 20 Tf\n") {
		t.Error("heading not set in header font")
	}
	if !strings.Contains(s, "/F1 10 Tf\n") {
		t.Error("body text not set in body font")
	}
	shows := regexp.MustCompile(`(?m)^<[0-9a-f]*> Tj$`).FindAllString(s, -1)
	// title, one paragraph line, two bullets, two items, two numbers, two items
	if len(shows) != 10 {
		t.Errorf("%d text fragments shown", len(shows))
	}
}

func TestCodeBlockTabs(t *testing.T) {
	doc := newDocument(t)
	e, err := New(doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	src := "```\nfunc f() {\n\treturn\n}\n```\n"
	err = e.Markdown([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	shows := regexp.MustCompile(`(?m)^<[0-9a-f]*> Tj$`).FindAllString(string(data), -1)
	if len(shows) != 3 {
		t.Errorf("%d lines shown, want 3", len(shows))
	}
}

func TestExpandTabs(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"\treturn", "    return"},
		{"a\tb", "a   b"},
		{"abcd\te", "abcd    e"},
		{"x\x00y\x1b", "xy"},
		{"\u00e9\tz", "\u00e9   z"},
	}
	for _, c := range cases {
		if got := expandTabs(c.in); got != c.want {
			t.Errorf("expandTabs(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPageBreaks(t *testing.T) {
	doc := newDocument(t)
	e, err := New(doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	word := "lorem ipsum dolor sit amet "
	para := strings.Repeat(word, 40)
	src := strings.Repeat(para+"\n\n", 20)
	err = e.Markdown([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if doc.NumPages() < 2 {
		t.Errorf("expected several pages, got %d", doc.NumPages())
	}

	_, err = doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}
}

func TestLineBreaking(t *testing.T) {
	doc := newDocument(t)
	e, err := New(doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("word ", 200)
	err = e.Paragraph(text, e.body, 10, 0)
	if err != nil {
		t.Fatal(err)
	}

	// every line must fit into the text area, and adding the next word
	// must not
	width, err := e.body.Width("word", 10)
	if err != nil {
		t.Fatal(err)
	}
	space, err := e.body.Width(" ", 10)
	if err != nil {
		t.Fatal(err)
	}
	perLine := int((doc.InnerWidth() + space) / (width + space))
	wantLines := (200 + perLine - 1) / perLine
	lineHeight := 10 * 1.4
	wantY := doc.Height - doc.Padding.Top - float64(wantLines)*lineHeight - 10*0.4
	if diff := e.y - wantY; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("y=%g, want %g (%d lines)", e.y, wantY, wantLines)
	}
}

func TestMissingFont(t *testing.T) {
	doc, err := document.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(doc, nil)
	if err == nil {
		t.Error("missing Body font not reported")
	}
	_, err = New(doc, &Options{BodyFont: "GoRegular", HeaderFont: "GoBold"})
	if err != nil {
		t.Error(err)
	}
}
