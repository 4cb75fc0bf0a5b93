// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "fmt"

// A ParseError reports a line inside a section that is neither blank,
// comment, header, nor key/value. It can be diverted with
// ParseOptions.OnInvalidLine.
type ParseError struct {
	Source string // input name from ParseOptions.Name, may be empty
	Line   int    // 1-based line number
	Text   string // the offending line, as read
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: line %d: invalid line %q", sourceName(e.Source), e.Line, e.Text)
}

// A MissingSectionHeaderError reports a non-blank, non-comment line before
// the first section header. It always stops the parse: there is no section
// to assign the data to.
type MissingSectionHeaderError struct {
	Source string
	Line   int
	Text   string
}

func (e *MissingSectionHeaderError) Error() string {
	return fmt.Sprintf("parse %s: line %d: %q before any section header", sourceName(e.Source), e.Line, e.Text)
}

// A NoSectionError reports an operation on a section that does not exist.
type NoSectionError struct {
	Section string
}

func (e *NoSectionError) Error() string {
	return fmt.Sprintf("no section %q", e.Section)
}

// A DuplicateSectionError reports an AddSection call for a name that
// already exists. The parser never returns it: a re-declared header
// overwrites the section instead.
type DuplicateSectionError struct {
	Section string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("section %q already exists", e.Section)
}

func sourceName(s string) string {
	if s == "" {
		return "<input>"
	}
	return s
}
