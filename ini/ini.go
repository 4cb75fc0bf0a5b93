// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// A File is an ordered collection of sections, each holding key/value
// properties in insertion order. The zero value is an empty file. Values
// are stored raw: placeholder expansion is package interp's job.
//
// A File has one logical owner; it performs no locking of its own.
type File struct {
	sections []*section
	byName   map[string]*section
}

type section struct {
	name   string
	keys   []string
	values map[string]string
}

func (s *section) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// ParseOptions holds optional parameters for Parse. Nil is treated
// identically to the zero value.
type ParseOptions struct {
	// Name identifies the input in error messages and callbacks, for
	// example a file path.
	Name string

	// NormalizeSection is called on each section name to apply text
	// transformations. This can be used to make names case-insensitive,
	// for instance. If nil, no transformations are made.
	NormalizeSection func(name string) string

	// NormalizeKey is called on each key to apply text transformations.
	// If nil, no transformations are made. Values are never transformed.
	NormalizeKey func(section, key string) string

	// OnInvalidLine, if non-nil, receives each line inside a section that
	// matches no known shape, and the parse continues past it. If nil,
	// the first such line stops the parse with a *ParseError.
	//
	// Lines before the first section header are not diverted: those
	// always stop the parse with a *MissingSectionHeaderError.
	OnInvalidLine func(source string, line int, text string)
}

// Parse reads an INI document in a single forward pass.
//
// See the Syntax section in the package documentation for the format
// recognized by Parse. On error, the returned *File holds everything
// parsed before the offending line.
func Parse(r io.Reader, opts *ParseOptions) (*File, error) {
	s := bufio.NewScanner(r)
	s.Split(ScanLines)
	f := new(File)
	source := ""
	if opts != nil {
		source = opts.Name
	}
	var curr *section
	lineno := 1
	for ; s.Scan(); lineno++ {
		raw := s.Text()
		ln := classify(strings.TrimLeftFunc(raw, unicode.IsSpace))
		switch ln.kind {
		case lineBlank, lineComment:
		case lineSection:
			name := ln.name
			if opts != nil && opts.NormalizeSection != nil {
				name = opts.NormalizeSection(name)
			}
			curr = f.resetSection(name)
		case lineKeyValue:
			if curr == nil {
				return f, &MissingSectionHeaderError{Source: source, Line: lineno, Text: raw}
			}
			key := ln.key
			if opts != nil && opts.NormalizeKey != nil {
				key = opts.NormalizeKey(curr.name, key)
			}
			curr.set(key, ln.value)
		case lineInvalid:
			if curr == nil {
				return f, &MissingSectionHeaderError{Source: source, Line: lineno, Text: raw}
			}
			if opts != nil && opts.OnInvalidLine != nil {
				opts.OnInvalidLine(source, lineno, raw)
				continue
			}
			return f, &ParseError{Source: source, Line: lineno, Text: raw}
		}
	}
	if err := s.Err(); err != nil {
		return f, fmt.Errorf("parse %s: line %d: %w", sourceName(source), lineno, err)
	}
	return f, nil
}

// resetSection makes name an empty current section. An existing section of
// that name is emptied in place, keeping its position in section order.
func (f *File) resetSection(name string) *section {
	if s := f.byName[name]; s != nil {
		s.keys = nil
		s.values = make(map[string]string)
		return s
	}
	return f.appendSection(name)
}

func (f *File) appendSection(name string) *section {
	s := &section{name: name, values: make(map[string]string)}
	if f.byName == nil {
		f.byName = make(map[string]*section)
	}
	f.byName[name] = s
	f.sections = append(f.sections, s)
	return s
}

// SectionNames returns the section names in insertion order.
func (f *File) SectionNames() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.sections))
	for i, s := range f.sections {
		names[i] = s.name
	}
	return names
}

// HasSection reports whether the named section exists.
func (f *File) HasSection(name string) bool {
	if f == nil {
		return false
	}
	return f.byName[name] != nil
}

// AddSection creates a new empty section at the end of the file. It
// returns a *DuplicateSectionError if the name already exists: unlike a
// re-declared header during Parse, explicit addition is strict.
// AddSection panics if IsValidSection(name) reports false.
func (f *File) AddSection(name string) error {
	if !IsValidSection(name) {
		panic("File.AddSection invalid section: " + name)
	}
	if f.byName[name] != nil {
		return &DuplicateSectionError{Section: name}
	}
	f.appendSection(name)
	return nil
}

// RemoveSection removes the named section and all its keys, reporting
// whether it existed.
func (f *File) RemoveSection(name string) bool {
	if f == nil || f.byName[name] == nil {
		return false
	}
	delete(f.byName, name)
	for i, s := range f.sections {
		if s.name == name {
			f.sections = append(f.sections[:i], f.sections[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys of the named section in insertion order. It
// returns a *NoSectionError if the section does not exist.
func (f *File) Keys(name string) ([]string, error) {
	var s *section
	if f != nil {
		s = f.byName[name]
	}
	if s == nil {
		return nil, &NoSectionError{Section: name}
	}
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys, nil
}

// HasKey reports whether the key exists in the named section.
func (f *File) HasKey(section, key string) bool {
	_, ok := f.Lookup(section, key)
	return ok
}

// Lookup returns the raw (non-interpolated) value stored at
// (section, key). It satisfies interp.Lookup.
func (f *File) Lookup(section, key string) (value string, ok bool) {
	if f == nil {
		return "", false
	}
	s := f.byName[section]
	if s == nil {
		return "", false
	}
	value, ok = s.values[key]
	return value, ok
}

// Set stores key → value in the named section, overwriting an existing
// key in place. It returns a *NoSectionError if the section does not
// exist; sections are created explicitly with AddSection. Set panics if
// IsValidKey(key) or IsValidValue(value) report false.
func (f *File) Set(section, key, value string) error {
	if !IsValidKey(key) {
		panic("File.Set invalid key: " + key)
	}
	if !IsValidValue(value) {
		panic("File.Set invalid value: " + value)
	}
	s := f.byName[section]
	if s == nil {
		return &NoSectionError{Section: section}
	}
	s.set(key, value)
	return nil
}

// RemoveKey removes key from the named section, reporting whether it
// existed. It returns a *NoSectionError if the section does not exist.
func (f *File) RemoveKey(name, key string) (bool, error) {
	var s *section
	if f != nil {
		s = f.byName[name]
	}
	if s == nil {
		return false, &NoSectionError{Section: name}
	}
	if _, ok := s.values[key]; !ok {
		return false, nil
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true, nil
}

const terminators = "\r\n\u0085\u2028\u2029"

// IsValidSection reports whether a string can be used as a section name:
// non-empty, no closing bracket, and no line terminators. Such a name
// survives a serialize/parse round trip unchanged.
func IsValidSection(name string) bool {
	return name != "" && !strings.ContainsAny(name, "]"+terminators)
}

// IsValidKey reports whether a string can be used as a property key:
// non-empty, not surrounded by whitespace, not starting with a comment
// character or an opening bracket, and containing no delimiter or line
// terminator. A key starting with '[' is rejected because the written
// key=value line could otherwise re-parse as a section header.
func IsValidKey(key string) bool {
	if key == "" || key != strings.TrimSpace(key) {
		return false
	}
	if key[0] == ';' || key[0] == '#' || key[0] == '[' {
		return false
	}
	return !strings.ContainsAny(key, "=:"+terminators)
}

// IsValidValue reports whether a string can be stored as a value: any
// text without line terminators. Values are written unquoted, so a
// terminator would split the property on re-parse.
func IsValidValue(value string) bool {
	return !strings.ContainsAny(value, terminators)
}
