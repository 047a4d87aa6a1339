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
	"errors"
	"fmt"
)

var (
	errVersion = errors.New("unsupported PDF version")
)

// VersionError is returned when trying to use a feature in a PDF file which
// is not supported by the PDF version used.
type VersionError struct {
	Operation string
	Earliest  Version
}

func (err *VersionError) Error() string {
	return fmt.Sprintf("%s requires PDF version %s or newer",
		err.Operation, err.Earliest)
}

// GraphError indicates that the indirect objects of a file do not form a
// consistent graph, so that no valid cross-reference table can be written.
type GraphError struct {
	// Ref is the offending reference, or the zero reference if the
	// error does not concern a specific object.
	Ref Reference

	Err error
}

func (err *GraphError) Error() string {
	msg := "inconsistent object graph"
	if err.Ref.Number != 0 {
		msg += " (object " + err.Ref.String() + ")"
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *GraphError) Unwrap() error {
	return err.Err
}

// Errors wrapped by a [GraphError].
var (
	ErrDangling      = errors.New("reference to an object which was never created")
	ErrCatalog       = errors.New("the document catalog must be object 1")
	ErrNoCatalog     = errors.New("missing document catalog")
	ErrBadGeneration = errors.New("invalid generation number")
)
