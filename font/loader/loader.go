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

// Package loader maps font names to font files.
package loader

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"seehuhn.de/go/pdfembed/font/gofont"
)

// BuiltinPrefix marks a font file name which refers to one of the
// fonts of the Go font family, e.g. "builtin:GoRegular".
const BuiltinPrefix = "builtin:"

// ErrNotFound is returned when no font is known under the requested name.
var ErrNotFound = errors.New("font not found")

// A FontLoader loads font files by name.  Every FontLoader knows the Go
// font family, under the names returned by [gofont.Font.Name], and
// substitutes for the standard 14 fonts.  Other fonts can be added using
// AddFontMap, AddFont, AddData and AddDir.
//
// It is safe to use a FontLoader concurrently from multiple goroutines.
type FontLoader struct {
	sync.RWMutex
	lookup map[string]*val
}

type val struct {
	fname string
	data  []byte
}

// NewFontLoader creates a new font loader.
func NewFontLoader() *FontLoader {
	res := &FontLoader{
		lookup: make(map[string]*val),
	}
	for _, F := range gofont.All {
		res.lookup[F.Name()] = &val{data: F.TTF()}
	}

	// There should not be any errors for the builtin fonts.
	defaultMap, err := builtin.Open("builtin/font.map")
	if err != nil {
		panic(err)
	}
	err = res.AddFontMap(defaultMap)
	if err != nil {
		panic(err)
	}
	err = defaultMap.Close()
	if err != nil {
		panic(err)
	}

	return res
}

// Load returns the contents of the font file for the given name.
// If the name is unknown, the returned error wraps [ErrNotFound].
func (l *FontLoader) Load(name string) ([]byte, error) {
	l.RLock()
	font, ok := l.lookup[name]
	l.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	if font.data != nil {
		return font.data, nil
	}
	data, err := os.ReadFile(font.fname)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	return data, nil
}

// Names returns the names of all known fonts, in sorted order.
func (l *FontLoader) Names() []string {
	l.RLock()
	defer l.RUnlock()
	res := make([]string, 0, len(l.lookup))
	for name := range l.lookup {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// AddFontMap reads a font map from r and adds it to the loader.  A font map
// consists of lines of the form
//
//	<name> <path>
//
// where <name> is the name of the font and <path> is the path to a
// TrueType or OpenType font file, or "builtin:" followed by the name of a
// Go font.  The fields must be separated by a single space.  Lines starting
// with '#' or '%' are ignored.
//
// Any previous mapping for <name> is overwritten.
func (l *FontLoader) AddFontMap(r io.Reader) error {
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		line := lines.Text()
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' || line[0] == '%' {
			continue
		}

		name, fname, ok := strings.Cut(line, " ")
		if !ok || name == "" || fname == "" {
			return fmt.Errorf("invalid font map line: %q", line)
		}
		err := l.AddFont(name, fname)
		if err != nil {
			return err
		}
	}
	return lines.Err()
}

// AddFont adds a font file to the loader.  If fname starts with
// [BuiltinPrefix], the rest of fname must name a Go font.
// Any previous mapping for the same name is overwritten.
func (l *FontLoader) AddFont(name, fname string) error {
	v := &val{fname: fname}
	if goName, ok := strings.CutPrefix(fname, BuiltinPrefix); ok {
		F, ok := gofont.Lookup(goName)
		if !ok {
			return fmt.Errorf("unknown builtin font %q", goName)
		}
		v = &val{data: F.TTF()}
	}
	l.Lock()
	l.lookup[name] = v
	l.Unlock()
	return nil
}

// AddData adds a font from memory.
// Any previous mapping for the same name is overwritten.
func (l *FontLoader) AddData(name string, data []byte) {
	l.Lock()
	l.lookup[name] = &val{data: bytes.Clone(data)}
	l.Unlock()
}

// AddDir adds all TrueType and OpenType fonts in dir.  Each font is
// registered under its file name, without the extension.
func (l *FontLoader) AddDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		switch strings.ToLower(ext) {
		case ".ttf", ".otf":
			name := strings.TrimSuffix(e.Name(), ext)
			err = l.AddFont(name, filepath.Join(dir, e.Name()))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// builtin holds the default font map.
//
//go:embed builtin
var builtin embed.FS
