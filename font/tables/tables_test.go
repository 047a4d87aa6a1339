// seehuhn.de/go/pdfembed - PDF documents with embedded, subsetted fonts
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package tables

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/hmtx"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/name"
	"seehuhn.de/go/sfnt/os2"
	"seehuhn.de/go/sfnt/post"
)

func TestGoFonts(t *testing.T) {
	fonts := map[string][]byte{
		"goregular": goregular.TTF,
		"gobold":    gobold.TTF,
		"goitalic":  goitalic.TTF,
		"gomono":    gomono.TTF,
	}
	for name, data := range fonts {
		t.Run(name, func(t *testing.T) {
			info, err := Read(bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}
			ref, err := sfnt.Read(bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}

			if info.UnitsPerEm != ref.UnitsPerEm {
				t.Errorf("UnitsPerEm = %d, want %d", info.UnitsPerEm, ref.UnitsPerEm)
			}
			if info.NumGlyphs != ref.NumGlyphs() {
				t.Errorf("NumGlyphs = %d, want %d", info.NumGlyphs, ref.NumGlyphs())
			}
			if len(info.Widths) != info.NumGlyphs {
				t.Errorf("%d widths for %d glyphs", len(info.Widths), info.NumGlyphs)
			}
			if info.PostScriptName == "" || strings.ContainsAny(info.PostScriptName, " ()[]/") {
				t.Errorf("invalid PostScript name %q", info.PostScriptName)
			}
			if info.IsCFF() {
				t.Error("Go fonts use glyf outlines")
			}
			if info.OS2 == nil || info.Post == nil {
				t.Fatal("missing OS/2 or post table")
			}
			if info.Post.IsFixedPitch != ref.IsFixedPitch() {
				t.Errorf("IsFixedPitch = %t, want %t",
					info.Post.IsFixedPitch, ref.IsFixedPitch())
			}
			if math.Abs(info.Post.ItalicAngle-ref.ItalicAngle) > 1e-6 {
				t.Errorf("ItalicAngle = %g, want %g",
					info.Post.ItalicAngle, ref.ItalicAngle)
			}
			if info.XMin >= info.XMax || info.YMin >= info.YMax {
				t.Errorf("invalid bounding box [%d %d %d %d]",
					info.XMin, info.YMin, info.XMax, info.YMax)
			}
		})
	}
}

// makeFont assembles a TrueType font file from the given tables.
func makeFont(t *testing.T, tables map[string][]byte) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	_, err := header.Write(buf, header.ScalerTypeTrueType, tables)
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func minimalTables() map[string][]byte {
	headInfo := &head.Info{
		UnitsPerEm: 1000,
		FontBBox:   funit.Rect16{LLx: -50, LLy: -200, URx: 950, URy: 800},
	}
	maxpInfo := &maxp.Info{NumGlyphs: 4}
	hmtxInfo := &hmtx.Info{
		Widths: []funit.Int16{500, 600},
		LSB:    []funit.Int16{0, 0},
	}
	hheaData, hmtxData := hmtxInfo.Encode()
	return map[string][]byte{
		"head": headInfo.Encode(),
		"hhea": hheaData,
		"hmtx": hmtxData,
		"maxp": maxpInfo.Encode(),
	}
}

func TestMinimal(t *testing.T) {
	data := makeFont(t, minimalTables())
	info, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if info.UnitsPerEm != 1000 || info.NumGlyphs != 4 {
		t.Errorf("UnitsPerEm=%d NumGlyphs=%d", info.UnitsPerEm, info.NumGlyphs)
	}
	if info.XMin != -50 || info.YMin != -200 || info.XMax != 950 || info.YMax != 800 {
		t.Errorf("wrong bounding box [%d %d %d %d]",
			info.XMin, info.YMin, info.XMax, info.YMax)
	}
	wantWidths := []int{500, 600, 600, 600}
	for i, w := range wantWidths {
		if info.AdvanceWidth(i) != w {
			t.Errorf("AdvanceWidth(%d) = %d, want %d", i, info.AdvanceWidth(i), w)
		}
	}
	if info.AdvanceWidth(4) != 0 {
		t.Errorf("width for out of range glyph")
	}
	if info.OS2 != nil || info.Post != nil {
		t.Error("OS/2 or post found in a font without these tables")
	}
	if info.PostScriptName != "" {
		t.Errorf("unexpected name %q", info.PostScriptName)
	}
}

func TestOptionalTables(t *testing.T) {
	tables := minimalTables()

	os2Info := &os2.Info{
		FamilyClass: 0x0805,
		Ascent:      750,
		Descent:     -250,
		LineGap:     200,
	}
	postInfo := &post.Info{
		ItalicAngle:  -12,
		IsFixedPitch: true,
	}
	nameInfo := &name.Info{
		Mac: name.Tables{
			"en": &name.Table{PostScriptName: "Test-Regular"},
		},
	}
	tables["OS/2"] = os2Info.Encode()
	tables["post"] = postInfo.Encode()
	tables["name"] = nameInfo.Encode(1)

	info, err := Read(bytes.NewReader(makeFont(t, tables)))
	if err != nil {
		t.Fatal(err)
	}
	if info.OS2 == nil || info.Post == nil {
		t.Fatal("missing OS/2 or post information")
	}
	if info.OS2.FamilyClassID() != 8 {
		t.Errorf("FamilyClassID() = %d, want 8", info.OS2.FamilyClassID())
	}
	if info.OS2.TypoAscender != 750 || info.OS2.TypoDescender != -250 || info.OS2.TypoLineGap != 200 {
		t.Errorf("wrong typo metrics %v", info.OS2)
	}
	if info.Post.ItalicAngle != -12 || !info.Post.IsFixedPitch {
		t.Errorf("wrong post info %v", info.Post)
	}
	if info.PostScriptName != "Test-Regular" {
		t.Errorf("PostScriptName = %q", info.PostScriptName)
	}
}

func TestWindowsName(t *testing.T) {
	tables := minimalTables()
	nameInfo := &name.Info{
		Mac: name.Tables{
			"en": &name.Table{PostScriptName: "Mac-Name"},
		},
		Windows: name.Tables{
			"en-US": &name.Table{PostScriptName: "Windows-Name"},
		},
	}
	tables["name"] = nameInfo.Encode(1)

	info, err := Read(bytes.NewReader(makeFont(t, tables)))
	if err != nil {
		t.Fatal(err)
	}
	if info.PostScriptName != "Windows-Name" {
		t.Errorf("PostScriptName = %q, want %q", info.PostScriptName, "Windows-Name")
	}
}

func TestMissingHead(t *testing.T) {
	tables := minimalTables()
	delete(tables, "head")
	_, err := Read(bytes.NewReader(makeFont(t, tables)))
	var noTable *ErrNoTable
	if !errors.As(err, &noTable) || noTable.Name != "head" {
		t.Errorf("expected missing head table, got %v", err)
	}
}

func TestNotAFont(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("%PDF-1.3\n\n")))
	if err == nil {
		t.Error("missing error")
	}
}
