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

package subset

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfembed/font"
	"seehuhn.de/go/pdfembed/font/tables"
)

func TestCodes(t *testing.T) {
	s, err := New(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	err = s.Use("hello")
	if err != nil {
		t.Fatal(err)
	}
	codes, err := s.Encode("hello")
	if err != nil {
		t.Fatal(err)
	}
	want := []font.Code{32, 33, 34, 34, 35}
	if d := cmp.Diff(want, codes); d != "" {
		t.Errorf("codes (-want +got):\n%s", d)
	}

	toUni := s.ToUnicode()
	if d := cmp.Diff(map[font.Code]rune{32: 'h', 33: 'e', 34: 'l', 35: 'o'}, toUni); d != "" {
		t.Errorf("ToUnicode (-want +got):\n%s", d)
	}

	// the cmap must agree with the cmap table of the font
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	for code, gid := range s.CMap() {
		if want := subtable.Lookup(toUni[code]); gid != want {
			t.Errorf("code %d: glyph %d, want %d", code, gid, want)
		}
		if w := s.AdvanceWidth(code); w != int(info.GlyphWidth(gid)) {
			t.Errorf("code %d: width %d, want %g", code, w, info.GlyphWidth(gid))
		}
	}

	_, err = s.Encode("x")
	if err == nil {
		t.Error("unused character encoded")
	}
}

func TestUseMissingGlyph(t *testing.T) {
	s, err := New(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	// U+0E01 THAI CHARACTER KO KAI is not in Go Regular
	err = s.Use("ab\u0e01")
	var encErr *font.EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if encErr.Char != '\u0e01' {
		t.Errorf("wrong character %q", encErr.Char)
	}
	if len(s.CMap()) != 0 {
		t.Error("codes assigned on failure")
	}
}

func TestSubsetTag(t *testing.T) {
	s, err := New(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	err = s.Use(" AB")
	if err != nil {
		t.Fatal(err)
	}
	tag := s.Tag()
	if len(tag) != 6 {
		t.Fatalf("wrong subset tag %q", tag)
	}
	for _, c := range tag {
		if c < 'A' || c > 'Z' {
			t.Errorf("wrong subset tag %q", tag)
			break
		}
	}
	if s.Tag() != tag {
		t.Error("tag not deterministic")
	}

	err = s.Use("C")
	if err != nil {
		t.Fatal(err)
	}
	if s.Tag() == tag {
		t.Error("tag unchanged after adding a glyph")
	}
}

func TestSaveTrueType(t *testing.T) {
	s, err := New(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	err = s.Use(" Hello")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := s.Save()
	if err != nil {
		t.Fatal(err)
	}
	if prog.Outlines != font.TrueType {
		t.Errorf("wrong outlines %s", prog.Outlines)
	}
	if len(prog.Data) == 0 || len(prog.Data) >= len(goregular.TTF) {
		t.Errorf("unexpected font size %d", len(prog.Data))
	}

	sub, err := tables.Read(bytes.NewReader(prog.Data))
	if err != nil {
		t.Fatal(err)
	}
	// .notdef plus " Helo"
	if sub.NumGlyphs < 6 {
		t.Errorf("subset has %d glyphs", sub.NumGlyphs)
	}
	for cid, gid := range s.glyphs() {
		if w, want := sub.AdvanceWidth(cid), int(s.font.GlyphWidth(gid)); w != want {
			t.Errorf("CID %d: width %d, want %d", cid, w, want)
		}
	}
}

func TestTag(t *testing.T) {
	a := Tag([]glyph.ID{0, 5, 3}, 100)
	b := Tag([]glyph.ID{0, 3, 5}, 100)
	c := Tag([]glyph.ID{0, 3, 6}, 100)
	if a != b {
		t.Errorf("tag depends on order: %q != %q", a, b)
	}
	if a == c {
		t.Errorf("same tag %q for different subsets", a)
	}
}
