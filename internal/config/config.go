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

// Package config handles the job files of the pdfembed command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	pdf "seehuhn.de/go/pdfembed"
	"seehuhn.de/go/pdfembed/document"
	"seehuhn.de/go/pdfembed/font/loader"
)

// Job describes a document to be produced.
type Job struct {
	Version    string            `yaml:"version"`
	Page       PageConfig        `yaml:"page"`
	Fonts      map[string]string `yaml:"fonts"`
	Size       float64           `yaml:"size"`
	LineHeight float64           `yaml:"line_height"`
	Input      string            `yaml:"input"`
	Info       InfoConfig        `yaml:"info"`
}

// PageConfig holds the page geometry.  If Paper is set, it takes
// precedence over Width and Height.
type PageConfig struct {
	Paper   string        `yaml:"paper,omitempty"`
	Width   float64       `yaml:"width,omitempty"`
	Height  float64       `yaml:"height,omitempty"`
	Padding PaddingConfig `yaml:"padding"`
}

// PaddingConfig holds the distances between page edges and text.
type PaddingConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// InfoConfig holds the document metadata.
type InfoConfig struct {
	Title   string `yaml:"title,omitempty"`
	Author  string `yaml:"author,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// IsEmpty reports whether no metadata is set.
func (i InfoConfig) IsEmpty() bool {
	return i.Title == "" && i.Author == "" && i.Subject == ""
}

// Default returns the default job.
func Default() *Job {
	p := document.DefaultPadding
	return &Job{
		Version: "1.3",
		Page: PageConfig{
			Width:  document.Letter.URx,
			Height: document.Letter.URy,
			Padding: PaddingConfig{
				Top:    p.Top,
				Right:  p.Right,
				Bottom: p.Bottom,
				Left:   p.Left,
			},
		},
		Fonts: map[string]string{
			"Body":   loader.BuiltinPrefix + "GoRegular",
			"Header": loader.BuiltinPrefix + "GoBold",
		},
		Size:       10,
		LineHeight: 1.4,
		Input:      "input.md",
	}
}

// Load loads a job from a file.  Relative paths in the job are
// interpreted relative to the directory containing the job file.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job: %w", err)
	}

	job := Default()
	if err := yaml.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("failed to parse job: %w", err)
	}

	dir := filepath.Dir(path)
	job.Input = resolve(dir, job.Input)
	for name, fname := range job.Fonts {
		if !strings.HasPrefix(fname, loader.BuiltinPrefix) {
			job.Fonts[name] = resolve(dir, fname)
		}
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job %s: %w", path, err)
	}
	return job, nil
}

// Save writes the job to a file.
func (j *Job) Save(path string) error {
	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}
	return nil
}

// Validate checks the job for consistency.
func (j *Job) Validate() error {
	if _, err := pdf.ParseVersion(j.Version); err != nil {
		return fmt.Errorf("version %q: %w", j.Version, err)
	}
	if j.Page.Paper != "" && document.PaperSize(j.Page.Paper) == nil {
		return fmt.Errorf("unknown paper size %q", j.Page.Paper)
	}
	if j.Size <= 0 {
		return errors.New("font size must be positive")
	}
	if j.Input == "" {
		return errors.New("no input file")
	}
	return nil
}

// DocumentOptions returns the document options for the job.  The fonts
// of the job are added to fonts.
func (j *Job) DocumentOptions(fonts *loader.FontLoader) (*document.Options, error) {
	ver, err := pdf.ParseVersion(j.Version)
	if err != nil {
		return nil, err
	}
	for name, fname := range j.Fonts {
		err := fonts.AddFont(name, fname)
		if err != nil {
			return nil, err
		}
	}

	opt := &document.Options{
		Version: ver,
		Width:   j.Page.Width,
		Height:  j.Page.Height,
		Padding: &document.Padding{
			Top:    j.Page.Padding.Top,
			Right:  j.Page.Padding.Right,
			Bottom: j.Page.Padding.Bottom,
			Left:   j.Page.Padding.Left,
		},
		Loader: fonts,
	}
	if paper := document.PaperSize(j.Page.Paper); paper != nil {
		opt.Width = paper.URx
		opt.Height = paper.URy
	}
	return opt, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
