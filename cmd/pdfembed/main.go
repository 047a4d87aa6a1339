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

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"seehuhn.de/go/pdfembed/document"
	"seehuhn.de/go/pdfembed/font/loader"
	"seehuhn.de/go/pdfembed/internal/buildinfo"
	"seehuhn.de/go/pdfembed/internal/config"
	"seehuhn.de/go/pdfembed/internal/profile"
	"seehuhn.de/go/pdfembed/layout"
	"seehuhn.de/go/pdfembed/logging"
	"seehuhn.de/go/pdfembed/metadata"
)

var (
	outArg     = flag.String("o", "", "write output to `file` (default stdout)")
	verbose    = flag.Bool("v", false, "print progress messages")
	initArg    = flag.Bool("init", false, "write a default job file and exit")
	fontsArg   = flag.Bool("fonts", false, "list the built-in font names and exit")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdfembed - typeset a markdown file into PDF with embedded fonts\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("pdfembed"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdfembed [options] <job.yaml>\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  job.yaml   job file naming the input, fonts and page geometry\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pdfembed -init job.yaml\n")
		fmt.Fprintf(os.Stderr, "  pdfembed -fonts\n")
		fmt.Fprintf(os.Stderr, "  pdfembed -o out.pdf job.yaml\n")
	}
	flag.Parse()

	if *fontsArg {
		for _, name := range loader.NewFontLoader().Names() {
			fmt.Println(name)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(jobFile string) error {
	if *initArg {
		if _, err := os.Stat(jobFile); err == nil {
			return fmt.Errorf("%s: file exists", jobFile)
		}
		return config.Default().Save(jobFile)
	}

	if *outArg == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("refusing to write PDF data to a terminal, use -o")
	}

	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	level := logging.LevelWarn
	if *verbose {
		level = logging.LevelDebug
	}
	log := logging.New(os.Stderr, level)

	job, err := config.Load(jobFile)
	if err != nil {
		return err
	}
	input, err := os.ReadFile(job.Input)
	if err != nil {
		return err
	}

	opt, err := job.DocumentOptions(loader.NewFontLoader())
	if err != nil {
		return err
	}
	opt.Logger = log
	doc, err := document.New(opt)
	if err != nil {
		return err
	}

	if !job.Info.IsEmpty() {
		err = doc.SetInfo(&metadata.Info{
			Title:    job.Info.Title,
			Author:   job.Info.Author,
			Subject:  job.Info.Subject,
			Created:  time.Now(),
			Producer: buildinfo.Short("pdfembed"),
		})
		if err != nil {
			return err
		}
	}

	lopt := &layout.Options{
		FontSize:   job.Size,
		LineHeight: job.LineHeight,
	}
	if _, ok := job.Fonts["Code"]; ok {
		lopt.CodeFont = "Code"
	}
	engine, err := layout.New(doc, lopt)
	if err != nil {
		return err
	}
	err = engine.Markdown(input)
	if err != nil {
		return fmt.Errorf("%s: %w", job.Input, err)
	}

	if *outArg != "" {
		return doc.WriteFile(*outArg)
	}
	_, err = doc.WriteTo(os.Stdout)
	return err
}
