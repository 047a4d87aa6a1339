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

package logging

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// Level is the severity of a log message.
type Level int

// These are the supported log levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel converts a level name like "info" into a Level.
func ParseLevel(s string) (Level, error) {
	for l := LevelDebug; l <= LevelError; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// TextLogger writes one line per message, of the form
//
//	LEVEL msg key=value ...
//
// Messages below the minimum level are discarded.
type TextLogger struct {
	out    *log.Logger
	level  Level
	fields []Field
}

// New returns a TextLogger which writes messages of at least the given
// level to w.
func New(w io.Writer, level Level) *TextLogger {
	return &TextLogger{
		out:   log.New(w, "", 0),
		level: level,
	}
}

func (l *TextLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *TextLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *TextLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *TextLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

// With returns a logger which adds the given fields to every message.
func (l *TextLogger) With(fields ...Field) Logger {
	all := make([]Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)
	return &TextLogger{
		out:    l.out,
		level:  l.level,
		fields: all,
	}
}

func (l *TextLogger) log(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}

	buf := &strings.Builder{}
	buf.WriteString(level.String())
	buf.WriteByte(' ')
	buf.WriteString(msg)
	for _, f := range l.fields {
		writeField(buf, f)
	}
	for _, f := range fields {
		writeField(buf, f)
	}
	l.out.Print(buf.String())
}

func writeField(buf *strings.Builder, f Field) {
	buf.WriteByte(' ')
	buf.WriteString(f.Key())
	buf.WriteByte('=')

	var s string
	switch v := f.Value().(type) {
	case string:
		s = v
	case error:
		if v == nil {
			s = "<nil>"
		} else {
			s = v.Error()
		}
	default:
		s = fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		s = strconv.Quote(s)
	}
	buf.WriteString(s)
}
