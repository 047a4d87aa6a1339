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

// Package logging provides the structured logger used by the document
// builder.
package logging

// Logger receives log messages with structured fields.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field is a key/value pair attached to a log message.
type Field interface {
	Key() string
	Value() any
}

type stringField struct{ key, val string }

func (f stringField) Key() string { return f.key }
func (f stringField) Value() any  { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string { return f.key }
func (f intField) Value() any  { return f.val }

type int64Field struct {
	key string
	val int64
}

func (f int64Field) Key() string { return f.key }
func (f int64Field) Value() any  { return f.val }

type float64Field struct {
	key string
	val float64
}

func (f float64Field) Key() string { return f.key }
func (f float64Field) Value() any  { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string { return f.key }
func (f errorField) Value() any  { return f.err }

func String(key, value string) Field          { return stringField{key, value} }
func Int(key string, value int) Field         { return intField{key, value} }
func Int64(key string, value int64) Field     { return int64Field{key, value} }
func Float64(key string, value float64) Field { return float64Field{key, value} }
func Error(key string, err error) Field       { return errorField{key, err} }

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// Nop is the logger used when no logger is configured.
var Nop Logger = NopLogger{}
