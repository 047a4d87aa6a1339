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

// Package metadata implements XMP metadata streams for PDF documents.
package metadata

import (
	"bytes"
	"encoding/hex"
	"io"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	pdf "seehuhn.de/go/pdfembed"
)

// PDF 2.0 sections: 14.3

// Info is the document information which is stored in the XMP packet.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Created  time.Time
	Producer string
}

// PDF is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type PDF struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Keywords xmp.Text
	Producer xmp.AgentName
}

var xDefault = language.MustParse("x-default")

// NewStream converts info into an XMP metadata stream.
// Empty fields are omitted.
func NewStream(info *Info) (*Stream, error) {
	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Set(xDefault, info.Title)
	}
	if info.Author != "" {
		dc.Creator.Append(xmp.NewProperName(info.Author))
	}
	if info.Subject != "" {
		dc.Description.Set(xDefault, info.Subject)
	}
	basic := &xmp.Basic{}
	if !info.Created.IsZero() {
		basic.CreateDate = xmp.NewDate(info.Created)
	}
	pdfInfo := &PDF{}
	if info.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(info.Producer)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, pdfInfo)
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// Stream represents an XMP metadata stream.
type Stream struct {
	Data *xmp.Packet
}

// Read reads an XMP packet.
func Read(r io.Reader) (*Stream, error) {
	packet, err := xmp.Read(r)
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// Embed adds the XMP metadata stream to the PDF file and returns
// a reference to the stream.
//
// If the serialized packet is not pure ASCII, the stream is
// ASCIIHex-encoded so that the file stays 7-bit clean.
func (s *Stream) Embed(a pdf.Allocator, ver pdf.Version) (pdf.Reference, error) {
	if err := pdf.CheckVersion(ver, "XMP metadata stream", pdf.V1_4); err != nil {
		return pdf.Reference{}, err
	}

	buf := &bytes.Buffer{}
	err := s.Data.Write(buf, nil)
	if err != nil {
		return pdf.Reference{}, err
	}
	body := buf.Bytes()

	obj := a.CreateObject("Metadata")
	obj.Dict.Set("Subtype", pdf.Name("XML"))
	if !isASCII(body) {
		obj.Dict.Set("Filter", pdf.Name("ASCIIHexDecode"))
		enc := make([]byte, hex.EncodedLen(len(body))+1)
		hex.Encode(enc, body)
		enc[len(enc)-1] = '>'
		body = enc
	}
	obj.SetContent(body)

	return obj.Reference(), nil
}

// Equal reports whether s and other represent the same XMP metadata.
func (s *Stream) Equal(other *Stream) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Data.Equal(other.Data)
}

func isASCII(data []byte) bool {
	for _, c := range data {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
