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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Integer(7), "7"},
		{Integer(-3), "-3"},
		{Real(1.5), "1.5"},
		{Real(1000), "1000"},
		{Real(-12.25), "-12.25"},
		{Real(math.Copysign(0, -1)), "0"},
		{Name("Type"), "/Type"},
		{Name("A B"), "/A#20B"},
		{Name("a#b"), "/a#23b"},
		{Name("Identity-H"), "/Identity-H"},
		{String("a"), "(a)"},
		{String("a (test version)"), "(a (test version))"},
		{String("a (test version"), "(a \\(test version)"},
		{String(""), "()"},
		{String("\000"), "<00>"},
		{Array{Integer(1), nil, Integer(3)}, "[1 null 3]"},
		{Array{}, "[]"},
		{Reference{Number: 12}, "12 0 R"},
		{Raw("<0001>"), "<0001>"},
		{&Dict{}, "<<\n>>"},
		{
			NewDict("Type", Name("Font"), "W", Array{Integer(1), Array{Integer(500)}}),
			"<<\n/Type /Font\n/W [1 [500]]\n>>",
		},
		{
			NewDict("A", NewDict("B", Integer(1))),
			"<<\n/A <<\n/B 1\n>>\n>>",
		},
	}
	for _, test := range cases {
		out, err := Format(test.in)
		if err != nil {
			t.Errorf("%v: %s", test.in, err)
			continue
		}
		if out != test.out {
			t.Errorf("string wrongly formatted, expected %q but got %q",
				test.out, out)
		}
	}
}

func TestRealNotFinite(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Format(Real(x))
		if err == nil {
			t.Errorf("%g: missing error", x)
		}
	}
}

func TestNumber(t *testing.T) {
	if _, ok := Number(3).(Integer); !ok {
		t.Errorf("Number(3) = %T, want Integer", Number(3))
	}
	if _, ok := Number(-2.5).(Real); !ok {
		t.Errorf("Number(-2.5) = %T, want Real", Number(-2.5))
	}
}

func TestDictOrder(t *testing.T) {
	d := &Dict{}
	d.Set("C", Integer(1))
	d.Set("A", Integer(2))
	d.Set("B", Integer(3))
	d.Set("A", Integer(4))

	if diff := cmp.Diff([]Name{"C", "A", "B"}, d.Keys()); diff != "" {
		t.Errorf("wrong key order (-want +got):\n%s", diff)
	}
	if got := d.Get("A"); got != Integer(4) {
		t.Errorf("Get(A) = %v, want 4", got)
	}

	d.Set("A", nil)
	d.Set("X", nil)
	if diff := cmp.Diff([]Name{"C", "B"}, d.Keys()); diff != "" {
		t.Errorf("wrong keys after delete (-want +got):\n%s", diff)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
	if d.Get("A") != nil {
		t.Errorf("deleted key still present")
	}
}

func TestReferences(t *testing.T) {
	obj := NewDict(
		"Font", NewDict("F1", Reference{Number: 7}),
		"Kids", Array{Reference{Number: 3}, Integer(1), Reference{Number: 5}},
		"Parent", Reference{Number: 2},
	)

	var got []uint32
	References(obj, func(ref Reference) {
		got = append(got, ref.Number)
	})
	if diff := cmp.Diff([]uint32{7, 3, 5, 2}, got); diff != "" {
		t.Errorf("wrong references (-want +got):\n%s", diff)
	}
}
