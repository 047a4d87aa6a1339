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
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Object represents a value in a PDF file.  The types implementing this
// interface are listed in the package documentation; no other types can
// implement it.
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error

	isObject()
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the [Object] interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

func (x Integer) isObject() {}

// Real represents a real number in a PDF file.
// Integral values are written without a fractional part.
type Real float64

// PDF implements the [Object] interface.
func (x Real) PDF(w io.Writer) error {
	if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		return errNotFinite
	}
	_, err := io.WriteString(w, formatReal(float64(x)))
	return err
}

func (x Real) isObject() {}

// Number returns x as an [Integer] if it is integral, and as a [Real]
// otherwise.
func Number(x float64) Object {
	if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
		return Integer(x)
	}
	return Real(x)
}

func formatReal(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Name represents a name in a PDF file.
type Name string

// PDF implements the [Object] interface.
func (x Name) PDF(w io.Writer) error {
	l := []byte(x)

	var funny []int
	for i, c := range l {
		if isSpace(c) || isDelimiter(c) || c < 0x21 || c > 0x7e || c == '#' {
			funny = append(funny, i)
		}
	}
	n := len(l)

	buf := &bytes.Buffer{}
	buf.WriteString("/")
	pos := 0
	for _, i := range funny {
		if pos < i {
			buf.Write(l[pos:i])
		}
		fmt.Fprintf(buf, "#%02x", l[i])
		pos = i + 1
	}
	if pos < n {
		buf.Write(l[pos:n])
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func (x Name) isObject() {}

// String represents a string literal in a PDF file.  The character set
// encoding, if any, is determined by the context.
type String []byte

// PDF implements the [Object] interface.
// Strings which consist mostly of printable ASCII characters are written
// in the (...) form, all other strings are written as hex strings.
func (x String) PDF(w io.Writer) error {
	l := []byte(x)

	level := 0
	for _, c := range l {
		if c == '(' {
			level++
		} else if c == ')' {
			level--
			if level < 0 {
				break
			}
		}
	}
	balanced := level == 0

	var funny []int
	for i, c := range l {
		if c == '\r' || c == '\n' || c == '\t' {
			continue
		}
		if c < 32 || c >= 127 || c == '\\' ||
			!balanced && (c == '(' || c == ')') {
			funny = append(funny, i)
		}
	}
	n := len(l)

	buf := &bytes.Buffer{}
	if 3*len(funny) <= n {
		buf.WriteString("(")
		pos := 0
		for _, i := range funny {
			if pos < i {
				buf.Write(l[pos:i])
			}
			switch c := l[i]; c {
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '(':
				buf.WriteString(`\(`)
			case ')':
				buf.WriteString(`\)`)
			case '\\':
				buf.WriteString(`\\`)
			default:
				fmt.Fprintf(buf, `\%03o`, c)
			}
			pos = i + 1
		}
		if pos < n {
			buf.Write(l[pos:n])
		}
		buf.WriteString(")")
	} else {
		fmt.Fprintf(buf, "<%x>", l)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func (x String) isObject() {}

// Array represent an array of objects in a PDF file.
type Array []Object

// PDF implements the [Object] interface.
func (x Array) PDF(w io.Writer) error {
	_, err := io.WriteString(w, "[")
	if err != nil {
		return err
	}
	for i, val := range x {
		if i > 0 {
			_, err = io.WriteString(w, " ")
			if err != nil {
				return err
			}
		}
		if val == nil {
			_, err = io.WriteString(w, "null")
		} else {
			err = val.PDF(w)
		}
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "]")
	return err
}

func (x Array) isObject() {}

// Dict represents a dictionary object in a PDF file.
// Entries are written in the order in which they were first set.
// The zero value is an empty dictionary, ready to use.
type Dict struct {
	keys []Name
	vals map[Name]Object
}

// NewDict returns a dictionary with the given entries.  The arguments
// alternate between keys and values; keys must be of type [Name] or
// string.
func NewDict(kv ...any) *Dict {
	if len(kv)%2 != 0 {
		panic("pdf.NewDict: odd number of arguments")
	}
	d := &Dict{}
	for i := 0; i < len(kv); i += 2 {
		var key Name
		switch k := kv[i].(type) {
		case Name:
			key = k
		case string:
			key = Name(k)
		default:
			panic(fmt.Sprintf("pdf.NewDict: invalid key type %T", kv[i]))
		}
		val, _ := kv[i+1].(Object)
		d.Set(key, val)
	}
	return d
}

// Set sets the value for key.  Setting a key to nil removes the entry.
// Replacing an existing value keeps the original position of the key.
func (d *Dict) Set(key Name, val Object) {
	if val == nil {
		if _, ok := d.vals[key]; !ok {
			return
		}
		delete(d.vals, key)
		for i, k := range d.keys {
			if k == key {
				d.keys = append(d.keys[:i], d.keys[i+1:]...)
				break
			}
		}
		return
	}

	if d.vals == nil {
		d.vals = make(map[Name]Object)
	}
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = val
}

// Get returns the value stored for key, or nil if the key is not present.
func (d *Dict) Get(key Name) Object {
	if d == nil {
		return nil
	}
	return d.vals[key]
}

// Keys returns the keys of the dictionary in insertion order.
func (d *Dict) Keys() []Name {
	if d == nil {
		return nil
	}
	return append([]Name(nil), d.keys...)
}

// Len returns the number of entries in the dictionary.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

func (d *Dict) String() string {
	res := []string{}
	if tp, ok := d.Get("Type").(Name); ok {
		res = append(res, string(tp)+" Dict")
	} else {
		res = append(res, "Dict")
	}
	res = append(res, strconv.Itoa(d.Len())+" entries")
	return "<" + strings.Join(res, ", ") + ">"
}

// PDF implements the [Object] interface.
func (d *Dict) PDF(w io.Writer) error {
	if d == nil {
		_, err := io.WriteString(w, "null")
		return err
	}

	_, err := io.WriteString(w, "<<")
	if err != nil {
		return err
	}
	for _, key := range d.keys {
		_, err = io.WriteString(w, "\n")
		if err != nil {
			return err
		}
		err = key.PDF(w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, " ")
		if err != nil {
			return err
		}
		err = d.vals[key].PDF(w)
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n>>")
	return err
}

func (d *Dict) isObject() {}

// Reference represents a reference to an indirect object in a PDF file.
// A reference does not own the object it points to; it is resolved
// against the cross-reference table when the file is read.
type Reference struct {
	Number     uint32
	Generation uint32
}

func (x Reference) String() string {
	return strconv.FormatUint(uint64(x.Number), 10) + " " +
		strconv.FormatUint(uint64(x.Generation), 10) + " R"
}

// PDF implements the [Object] interface.
func (x Reference) PDF(w io.Writer) error {
	_, err := io.WriteString(w, x.String())
	return err
}

func (x Reference) isObject() {}

// Raw is a preformatted PDF token sequence, for example a hex string
// produced by a font encoder.  The text is written unchanged.
type Raw string

// PDF implements the [Object] interface.
func (x Raw) PDF(w io.Writer) error {
	_, err := io.WriteString(w, string(x))
	return err
}

func (x Raw) isObject() {}

// Format returns the PDF representation of obj as a string.
// A nil object is formatted as "null".
func Format(obj Object) (string, error) {
	if obj == nil {
		return "null", nil
	}
	buf := &strings.Builder{}
	err := obj.PDF(buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// References calls yield for every reference contained in obj,
// descending into arrays and dictionaries.
func References(obj Object, yield func(Reference)) {
	switch x := obj.(type) {
	case Reference:
		yield(x)
	case Array:
		for _, elem := range x {
			References(elem, yield)
		}
	case *Dict:
		if x == nil {
			return
		}
		for _, key := range x.keys {
			References(x.vals[key], yield)
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case 0, 9, 10, 12, 13, 32:
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

var errNotFinite = errors.New("pdf: real number is not finite")
