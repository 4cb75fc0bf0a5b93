// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini parses and serializes INI configuration text.

This package is the parsing core: it turns a sequence of text lines into an
order-preserving store of sections and keys, and writes such a store back
out. Placeholder expansion is layered on top by package interp, and file
handling by package configfile.

# Syntax

An INI document is Unicode text encoded in UTF-8. Lines end at any Unicode
line boundary: CRLF, LF, CR, NEL (U+0085), LINE SEPARATOR (U+2028), or
PARAGRAPH SEPARATOR (U+2029). Leading whitespace on a line is ignored.

A section is started by writing its name in square brackets on its own
line. The name is everything between the brackets and may not contain a
closing bracket:

	[section]
	key1=value1
	key2:value2

A property is a key and value separated by the first equals sign ('=') or
colon (':') on the line. Whitespace between the key and the delimiter is
ignored; the value is everything after the delimiter, kept exactly as
written, including surrounding whitespace. Keys are unique within a
section: assigning a key again overwrites its value in place.

Every property belongs to a section. A property line before the first
section header is an error: there is no global section.

If the first non-whitespace character of a line is a semicolon (';') or a
hash ('#'), the line is a comment. Blank lines are ignored. Comments are
not preserved when serializing.

Declaring a section a second time replaces it with a fresh empty section
in its original position; the last declaration wins. This differs from
File.AddSection, which reports a duplicate instead.

A line that fits none of these shapes stops the parse with a *ParseError,
unless an invalid-line callback is configured, in which case the line is
reported to the callback and skipped.
*/
package ini
