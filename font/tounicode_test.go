// seehuhn.de/go/pdfembed - PDF documents with embedded, subsetted fonts
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

package font

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToUnicodeChunks(t *testing.T) {
	for _, n := range []int{0, 1, 99, 100, 101, 200, 250} {
		m := map[Code]rune{}
		for i := 0; i < n; i++ {
			m[FirstCode+Code(i)] = rune('A' + i)
		}
		buf := &bytes.Buffer{}
		err := writeToUnicode(buf, IdentityROS, makeToUnicode(m))
		if err != nil {
			t.Fatal(err)
		}
		body := buf.String()

		var sizes []string
		for _, line := range strings.Split(body, "\n") {
			if size, ok := strings.CutSuffix(line, " beginbfchar"); ok {
				sizes = append(sizes, size)
			}
		}
		var want []string
		for k := n; k > 0; k -= 100 {
			want = append(want, strconv.Itoa(min(k, 100)))
		}
		if d := cmp.Diff(want, sizes); d != "" {
			t.Errorf("n=%d: block sizes (-want +got):\n%s", n, d)
		}
		if strings.Count(body, "endbfchar") != len(want) {
			t.Errorf("n=%d: unbalanced blocks", n)
		}
	}
}

func TestToUnicodeSkipsReserved(t *testing.T) {
	m := map[Code]rune{
		3:  'x',
		31: 'y',
		32: ' ',
		40: 'A',
		33: 'B',
	}
	got := makeToUnicode(m)
	want := []ToUnicodeEntry{
		{CID: 1, Text: ' '},
		{CID: 2, Text: 'B'},
		{CID: 9, Text: 'A'},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("entries (-want +got):\n%s", d)
	}
}

func TestToUnicodeFormat(t *testing.T) {
	cases := []struct {
		in   ToUnicodeEntry
		want string
	}{
		{ToUnicodeEntry{CID: 1, Text: ' '}, "<0001><0020>"},
		{ToUnicodeEntry{CID: 0x1234, Text: '\u00e9'}, "<1234><00e9>"},
		{ToUnicodeEntry{CID: 2, Text: '\U0001F600'}, "<0002><d83dde00>"},
	}
	for _, c := range cases {
		got := formatEntry(c.in)
		if got != c.want {
			t.Errorf("%v: got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToUnicodeStructure(t *testing.T) {
	buf := &bytes.Buffer{}
	err := writeToUnicode(buf, IdentityROS, []ToUnicodeEntry{{CID: 1, Text: 'A'}})
	if err != nil {
		t.Fatal(err)
	}
	body := buf.String()
	for _, part := range []string{
		"/CIDInit /ProcSet findresource begin\n",
		"begincmap\n",
		"/Registry (Adobe)",
		"/Ordering (Identity)",
		"/Supplement 0",
		"/CMapName /Identity-H def\n",
		"1 begincodespacerange\n<0000><ffff>\nendcodespacerange\n",
		"1 beginbfchar\n<0001><0041>\nendbfchar\n",
		"endcmap\n",
	} {
		if !strings.Contains(body, part) {
			t.Errorf("missing %q", part)
		}
	}
	if !strings.HasSuffix(body, "end\nend\n") {
		t.Errorf("wrong ending %q", body[max(0, len(body)-20):])
	}
}
