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

package pdf

// Graph owns the indirect objects of a PDF file.  Objects are numbered
// consecutively, starting at 1, in the order in which they are created;
// this is also the order in which they are written to the file.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	objects []*IndirectObject
	nextID  uint32
}

// NewGraph returns an empty object graph.
func NewGraph() *Graph {
	return &Graph{nextID: 1}
}

// CreateObject allocates the next object number and appends a new object
// to the graph.  If tp is non-empty, the /Type entry of the object's
// dictionary is set to tp.
func (g *Graph) CreateObject(tp Name) *IndirectObject {
	obj := &IndirectObject{
		ID:   g.nextID,
		Dict: &Dict{},
	}
	if tp != "" {
		obj.Dict.Set("Type", tp)
	}
	g.nextID++
	g.objects = append(g.objects, obj)
	return obj
}

// Allocator creates new indirect objects.  [*Graph] implements this
// interface.
type Allocator interface {
	CreateObject(tp Name) *IndirectObject
}

// Len returns the number of objects in the graph.
func (g *Graph) Len() int {
	return len(g.objects)
}

// NextID returns the object number which will be assigned by the next
// call to CreateObject.  This is always Len()+1.
func (g *Graph) NextID() uint32 {
	return g.nextID
}

// Objects returns the objects of the graph in creation order.
func (g *Graph) Objects() []*IndirectObject {
	return append([]*IndirectObject(nil), g.objects...)
}

// Lookup returns the object with the given number, or nil if no such
// object exists.
func (g *Graph) Lookup(id uint32) *IndirectObject {
	if id == 0 || int(id) > len(g.objects) {
		return nil
	}
	return g.objects[id-1]
}

// IndirectObject is a numbered object in a PDF file.  The object number
// is fixed when the object is created; the dictionary and the stream
// contents can be modified until the file is written.
type IndirectObject struct {
	ID         uint32
	Generation uint32
	Dict       *Dict

	content  []byte
	isStream bool
}

// Reference returns a reference to obj.
func (obj *IndirectObject) Reference() Reference {
	return Reference{Number: obj.ID, Generation: obj.Generation}
}

// SetContent turns obj into a stream with the given contents.
// The /Length entry of the dictionary is set to len(data).
func (obj *IndirectObject) SetContent(data []byte) {
	obj.content = data
	obj.isStream = true
	obj.Dict.Set("Length", Integer(len(data)))
}

// Content returns the stream contents of obj.
func (obj *IndirectObject) Content() []byte {
	return obj.content
}

// IsStream reports whether obj is a stream object.
func (obj *IndirectObject) IsStream() bool {
	return obj.isStream
}
