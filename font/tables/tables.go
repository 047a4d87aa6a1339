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

// Package tables reads the font-wide metrics of TrueType and OpenType font
// files.
//
// Only the tables needed to describe a font in a PDF file are read: the
// table directory, "head", "hhea", "hmtx", "maxp", "OS/2", "post" and
// "name".  Glyph outlines are left to the subsetter.
package tables

import (
	"fmt"
	"io"

	"golang.org/x/text/language"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/hmtx"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/name"
	"seehuhn.de/go/sfnt/os2"
	"seehuhn.de/go/sfnt/post"
)

// Info contains the metrics of a font, in font design units.
type Info struct {
	ScalerType uint32
	NumGlyphs  int

	UnitsPerEm uint16
	XMin       int16
	YMin       int16
	XMax       int16
	YMax       int16

	// PostScriptName is the name with ID 6 from the "name" table.  This is
	// empty if the font has no usable name.
	PostScriptName string

	// Widths contains the advance width of every glyph.
	Widths []funit.Int16

	// OS2 and Post are nil if the corresponding table is missing.
	OS2  *OS2
	Post *Post
}

// OS2 contains the fields of the "OS/2" table which describe the font.
type OS2 struct {
	FamilyClass   int16
	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
}

// FamilyClassID returns the class ID of the font, i.e. the high byte
// of FamilyClass.
func (os2 *OS2) FamilyClassID() int {
	return int(os2.FamilyClass >> 8)
}

// Post contains the fields of the "post" table which describe the font.
type Post struct {
	ItalicAngle  float64 // degrees, counter-clockwise from the vertical
	IsFixedPitch bool
}

// ErrNoTable is returned if a required table is missing.
type ErrNoTable struct {
	Name string
}

func (err *ErrNoTable) Error() string {
	return "missing " + err.Name + " table"
}

// Read decodes the font metrics from a TrueType or OpenType font file.
//
// The tables "head", "hhea", "hmtx" and "maxp" are required.  If the
// "OS/2" or "post" tables are missing, the corresponding fields of the
// result are nil.
func Read(r io.ReaderAt) (*Info, error) {
	dir, err := header.Read(r)
	if err != nil {
		return nil, err
	}
	for _, tag := range []string{"head", "hhea", "hmtx", "maxp"} {
		if !dir.Has(tag) {
			return nil, &ErrNoTable{Name: tag}
		}
	}

	fd, err := dir.TableReader(r, "head")
	if err != nil {
		return nil, err
	}
	headInfo, err := head.Read(fd)
	if err != nil {
		return nil, fmt.Errorf("head: %w", err)
	}

	fd, err = dir.TableReader(r, "maxp")
	if err != nil {
		return nil, err
	}
	maxpInfo, err := maxp.Read(fd)
	if err != nil {
		return nil, fmt.Errorf("maxp: %w", err)
	}

	hheaData, err := dir.ReadTableBytes(r, "hhea")
	if err != nil {
		return nil, err
	}
	hmtxData, err := dir.ReadTableBytes(r, "hmtx")
	if err != nil {
		return nil, err
	}
	hmtxInfo, err := hmtx.Decode(hheaData, hmtxData)
	if err != nil {
		return nil, fmt.Errorf("hmtx: %w", err)
	}

	bbox := headInfo.FontBBox
	info := &Info{
		ScalerType: dir.ScalerType,
		NumGlyphs:  maxpInfo.NumGlyphs,
		UnitsPerEm: headInfo.UnitsPerEm,
		XMin:       int16(bbox.LLx),
		YMin:       int16(bbox.LLy),
		XMax:       int16(bbox.URx),
		YMax:       int16(bbox.URy),
		Widths:     fillWidths(hmtxInfo.Widths, maxpInfo.NumGlyphs),
	}

	info.OS2, err = readOS2(r, dir)
	if err != nil {
		return nil, fmt.Errorf("OS/2: %w", err)
	}
	info.Post, err = readPost(r, dir)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	info.PostScriptName, err = readFontName(r, dir)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	return info, nil
}

// IsCFF reports whether the font contains CFF-based glyph outlines.
func (info *Info) IsCFF() bool {
	return info.ScalerType == header.ScalerTypeCFF
}

// AdvanceWidth returns the advance width of glyph gid in font design units.
func (info *Info) AdvanceWidth(gid int) int {
	if gid < 0 || gid >= len(info.Widths) {
		return 0
	}
	return int(info.Widths[gid])
}

// fillWidths returns exactly numGlyphs widths.  Glyphs beyond the end of
// the "hmtx" table repeat the last advance width.
func fillWidths(widths []funit.Int16, numGlyphs int) []funit.Int16 {
	if len(widths) >= numGlyphs {
		return widths[:numGlyphs]
	}
	res := make([]funit.Int16, numGlyphs)
	copy(res, widths)
	if len(widths) > 0 {
		last := widths[len(widths)-1]
		for i := len(widths); i < numGlyphs; i++ {
			res[i] = last
		}
	}
	return res
}

func readOS2(r io.ReaderAt, dir *header.Info) (*OS2, error) {
	fd, err := dir.TableReader(r, "OS/2")
	if header.IsMissing(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	os2Info, err := os2.Read(fd)
	if err != nil {
		return nil, err
	}
	return &OS2{
		FamilyClass:   os2Info.FamilyClass,
		TypoAscender:  int16(os2Info.Ascent),
		TypoDescender: int16(os2Info.Descent),
		TypoLineGap:   int16(os2Info.LineGap),
	}, nil
}

func readPost(r io.ReaderAt, dir *header.Info) (*Post, error) {
	fd, err := dir.TableReader(r, "post")
	if header.IsMissing(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	postInfo, err := post.Read(fd)
	if err != nil {
		return nil, err
	}
	return &Post{
		ItalicAngle:  postInfo.ItalicAngle,
		IsFixedPitch: postInfo.IsFixedPitch,
	}, nil
}

// readFontName returns name ID 6, preferring the Windows names over the
// Macintosh ones.  The empty string is returned if the font has no
// "name" table.
func readFontName(r io.ReaderAt, dir *header.Info) (string, error) {
	data, err := dir.ReadTableBytes(r, "name")
	if header.IsMissing(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	nameInfo, err := name.Decode(data)
	if err != nil {
		return "", err
	}

	winTab, winConf := nameInfo.Windows.Choose(language.AmericanEnglish)
	macTab, macConf := nameInfo.Mac.Choose(language.AmericanEnglish)
	table := winTab
	if table == nil || table.PostScriptName == "" || winConf < language.High && macConf > winConf {
		if macTab != nil && macTab.PostScriptName != "" {
			table = macTab
		}
	}
	if table == nil {
		return "", nil
	}
	return table.PostScriptName, nil
}
