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

package loader

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestBuiltinFonts(t *testing.T) {
	loader := NewFontLoader()

	cases := []struct {
		name string
		want []byte
	}{
		{"GoRegular", goregular.TTF},
		{"GoBold", gobold.TTF},
		{"Helvetica", goregular.TTF},
		{"Times-Bold", gobold.TTF},
		{"Courier", gomono.TTF},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := loader.Load(c.name)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(data, c.want) {
				t.Errorf("wrong font data for %q", c.name)
			}
		})
	}
}

func TestNames(t *testing.T) {
	loader := NewFontLoader()
	err := loader.AddFontMap(strings.NewReader("Body builtin:GoRegular\n"))
	if err != nil {
		t.Fatal(err)
	}

	names := loader.Names()
	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %q", names)
	}
	for _, want := range []string{"Body", "Courier", "GoMono", "GoRegular", "Helvetica"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing %q in %q", want, names)
		}
	}
	for _, name := range names {
		_, err := loader.Load(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestNotFound(t *testing.T) {
	loader := NewFontLoader()
	_, err := loader.Load("NoSuchFont")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "NoSuchFont") {
		t.Errorf("error %q does not name the font", err)
	}
}

func TestFontMap(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "test.ttf")
	err := os.WriteFile(fname, []byte("font data"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	fontMap := "# comment\n\n% another comment\nBody " + fname + "\nHeader builtin:GoBold\n"
	loader := NewFontLoader()
	err = loader.AddFontMap(strings.NewReader(fontMap))
	if err != nil {
		t.Fatal(err)
	}

	data, err := loader.Load("Body")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "font data" {
		t.Errorf("wrong data %q", data)
	}
	data, err = loader.Load("Header")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, gobold.TTF) {
		t.Error("wrong data for Header")
	}

	for _, bad := range []string{"NoPath\n", "X builtin:Helvetica\n"} {
		err = loader.AddFontMap(strings.NewReader(bad))
		if err == nil {
			t.Errorf("no error for %q", bad)
		}
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewFontLoader()
	err := loader.AddFont("Gone", filepath.Join(t.TempDir(), "gone.ttf"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = loader.Load("Gone")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A.ttf", "B.OTF", "notes.txt"} {
		err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644)
		if err != nil {
			t.Fatal(err)
		}
	}

	loader := NewFontLoader()
	loader.AddData("C", []byte("C"))
	err := loader.AddDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]string{"A": "A.ttf", "B": "B.OTF", "C": "C"} {
		data, err := loader.Load(name)
		if err != nil {
			t.Error(err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s: got %q, want %q", name, data, want)
		}
	}
	if _, err := loader.Load("notes"); !errors.Is(err, ErrNotFound) {
		t.Error("non-font file registered")
	}
}
