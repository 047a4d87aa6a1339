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

package pdf

import (
	"fmt"
	"io"
)

type xRefEntry struct {
	Pos        int64
	Generation uint32
}

// writeXRefTable writes a cross-reference table with a single subsection.
// Object 0 is the head of the (empty) free list, xref[i] describes object
// i+1.
func writeXRefTable(w io.Writer, xref []xRefEntry) error {
	_, err := fmt.Fprintf(w, "xref\n0 %d\n", len(xref)+1)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "0000000000 65535 f \n")
	if err != nil {
		return err
	}
	for _, entry := range xref {
		_, err = fmt.Fprintf(w, "%010d %05d n \n", entry.Pos, entry.Generation)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTrailer(w io.Writer, trailer *Dict, xRefPos int64) error {
	_, err := io.WriteString(w, "trailer\n")
	if err != nil {
		return err
	}
	err = trailer.PDF(w)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nstartxref\n%d\n%%%%EOF", xRefPos)
	return err
}
