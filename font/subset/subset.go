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

// Package subset implements [font.Subsetter] for TrueType and OpenType
// fonts.
//
// Codes are assigned to characters in order of first use, starting at
// [font.FirstCode].  The subsetted font program contains the .notdef glyph
// followed by the glyphs for the assigned codes, so that glyph i of the
// program is the glyph for CID i.
package subset

import (
	"bytes"
	"errors"
	"fmt"
	"maps"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfembed/font"
)

// Subset keeps track of the characters used from a font.
type Subset struct {
	font *sfnt.Font
	cmap cmap.Subtable

	codes map[rune]font.Code
	gids  map[font.Code]glyph.ID
	text  map[font.Code]rune
	next  font.Code
}

var _ font.Subsetter = (*Subset)(nil)

// New reads a TrueType or OpenType font and prepares it for subsetting.
func New(data []byte) (*Subset, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return FromFont(info)
}

// FromFont prepares an already parsed font for subsetting.
func FromFont(info *sfnt.Font) (*Subset, error) {
	if info.CMapTable == nil {
		return nil, &font.StructuralError{Table: "cmap", Err: errNoCMap}
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, &font.StructuralError{Table: "cmap", Err: err}
	}
	s := &Subset{
		font:  info,
		cmap:  subtable,
		codes: make(map[rune]font.Code),
		gids:  make(map[font.Code]glyph.ID),
		text:  make(map[font.Code]rune),
		next:  font.FirstCode,
	}
	return s, nil
}

// Use implements the [font.Subsetter] interface.
func (s *Subset) Use(text string) error {
	var todo []rune
	var todoGID []glyph.ID
	seen := make(map[rune]bool)
	for _, r := range text {
		if _, ok := s.codes[r]; ok || seen[r] {
			continue
		}
		gid := s.cmap.Lookup(r)
		if gid == 0 {
			return &font.EncodingError{Char: r}
		}
		seen[r] = true
		todo = append(todo, r)
		todoGID = append(todoGID, gid)
	}
	if len(todo) > int(maxCode)-int(s.next)+1 {
		return errCodeSpace
	}

	for i, r := range todo {
		code := s.next
		s.next++
		s.codes[r] = code
		s.gids[code] = todoGID[i]
		s.text[code] = r
	}
	return nil
}

// Encode implements the [font.Subsetter] interface.
func (s *Subset) Encode(text string) ([]font.Code, error) {
	var res []font.Code
	for _, r := range text {
		code, ok := s.codes[r]
		if !ok {
			return nil, fmt.Errorf("subset: character %q not in use", r)
		}
		res = append(res, code)
	}
	return res, nil
}

// CMap implements the [font.Subsetter] interface.
func (s *Subset) CMap() map[font.Code]glyph.ID {
	return maps.Clone(s.gids)
}

// ToUnicode implements the [font.Subsetter] interface.
func (s *Subset) ToUnicode() map[font.Code]rune {
	return maps.Clone(s.text)
}

// AdvanceWidth implements the [font.Subsetter] interface.
func (s *Subset) AdvanceWidth(code font.Code) int {
	gid, ok := s.gids[code]
	if !ok {
		return 0
	}
	return int(s.font.GlyphWidth(gid))
}

// Tag implements the [font.Subsetter] interface.
func (s *Subset) Tag() string {
	return Tag(s.glyphs(), s.font.NumGlyphs())
}

// Save implements the [font.Subsetter] interface.
func (s *Subset) Save() (*font.Program, error) {
	glyphs := s.glyphs()
	buf := &bytes.Buffer{}

	if s.font.IsCFF() {
		orig := s.font.AsCFF()
		outlines := orig.Outlines.Subset(glyphs)
		cids := make([]cid.CID, len(glyphs))
		for i := range cids {
			cids[i] = cid.CID(i)
		}
		outlines.MakeCIDKeyed(font.IdentityROS, cids)
		out := &cff.Font{
			FontInfo: orig.FontInfo,
			Outlines: outlines,
		}
		err := out.Write(buf)
		if err != nil {
			return nil, err
		}
		return &font.Program{Outlines: font.CFF, Data: buf.Bytes()}, nil
	}

	// The CIDToGIDMap of the CIDFont replaces the cmap table, and the
	// layout tables refer to glyphs which may not be in the subset.
	f := s.font.Clone()
	f.CMapTable = nil
	f.Gdef = nil
	f.Gsub = nil
	f.Gpos = nil

	sub := f.Subset(glyphs)
	_, err := sub.WriteTrueTypePDF(buf)
	if err != nil {
		return nil, err
	}
	return &font.Program{Outlines: font.TrueType, Data: buf.Bytes()}, nil
}

// glyphs returns the glyphs of the subsetted font, in order of CID.
func (s *Subset) glyphs() []glyph.ID {
	res := make([]glyph.ID, 0, len(s.gids)+1)
	res = append(res, 0)
	for code := font.FirstCode; code < s.next; code++ {
		res = append(res, s.gids[code])
	}
	return res
}

// maxCode is the largest code assigned.  This keeps next from overflowing.
const maxCode = font.Code(0xFFFE)

var (
	errNoCMap    = errors.New("missing")
	errCodeSpace = errors.New("subset: code space exhausted")
)
