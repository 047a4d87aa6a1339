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

package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Write serializes the object graph g as a complete PDF file.
//
// The graph is checked before any output is produced: every reference must
// point to an object of g, the document catalog must be object 1, and all
// values must be representable.  If the check fails, an error is returned
// and nothing is written to w.
func Write(w io.Writer, g *Graph, ver Version) error {
	verString, err := ver.ToString()
	if err != nil {
		return err
	}
	err = checkGraph(g)
	if err != nil {
		return err
	}

	out := &posWriter{w: w}
	_, err = fmt.Fprintf(out, "%%PDF-%s\n\n", verString)
	if err != nil {
		return err
	}

	xref := make([]xRefEntry, 0, g.Len())
	for _, obj := range g.objects {
		xref = append(xref, xRefEntry{Pos: out.pos, Generation: obj.Generation})
		err = writeIndirect(out, obj)
		if err != nil {
			return err
		}
	}

	xRefPos := out.pos
	err = writeXRefTable(out, xref)
	if err != nil {
		return err
	}

	trailer := &Dict{}
	trailer.Set("Size", Integer(len(xref)+1))
	trailer.Set("Root", g.objects[0].Reference())
	return writeTrailer(out, trailer, xRefPos)
}

// Bytes returns the serialized form of g, as produced by [Write].
func Bytes(g *Graph, ver Version) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := Write(buf, g, ver)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serializes g and stores the result in the named file.
// The file is only created if serialization succeeds.
func WriteFile(name string, g *Graph, ver Version) error {
	data, err := Bytes(g, ver)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

func writeIndirect(w io.Writer, obj *IndirectObject) error {
	_, err := fmt.Fprintf(w, "%d %d obj\n", obj.ID, obj.Generation)
	if err != nil {
		return err
	}
	err = obj.Dict.PDF(w)
	if err != nil {
		return fmt.Errorf("object %d: %w", obj.ID, err)
	}
	if obj.isStream {
		_, err = io.WriteString(w, "\nstream\n")
		if err != nil {
			return err
		}
		_, err = w.Write(obj.content)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "\nendstream")
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\nendobj\n\n")
	return err
}

func checkGraph(g *Graph) error {
	if g.Len() == 0 {
		return &GraphError{Err: ErrNoCatalog}
	}
	for _, obj := range g.objects {
		if tp, _ := obj.Dict.Get("Type").(Name); tp == "Catalog" && obj.ID != 1 {
			return &GraphError{Ref: obj.Reference(), Err: ErrCatalog}
		}
	}
	if tp, _ := g.objects[0].Dict.Get("Type").(Name); tp != "Catalog" {
		return &GraphError{Ref: g.objects[0].Reference(), Err: ErrCatalog}
	}

	for _, obj := range g.objects {
		err := obj.Dict.PDF(io.Discard)
		if err != nil {
			return fmt.Errorf("object %d: %w", obj.ID, err)
		}

		var bad *GraphError
		References(obj.Dict, func(ref Reference) {
			if bad != nil {
				return
			}
			target := g.Lookup(ref.Number)
			switch {
			case target == nil:
				bad = &GraphError{Ref: ref, Err: ErrDangling}
			case target.Generation != ref.Generation:
				bad = &GraphError{Ref: ref, Err: ErrBadGeneration}
			}
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
