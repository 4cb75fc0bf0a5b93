// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
	"unicode"
)

// UTF-8 encodings of the non-ASCII line terminators.
const (
	nel1, nel2       = 0xc2, 0x85 // U+0085 NEL
	sep1, sep2       = 0xe2, 0x80 // prefix of U+2028 and U+2029
	lineSep, paraSep = 0xa8, 0xa9 // final byte of U+2028, U+2029
)

// ScanLines is a bufio.SplitFunc that splits input at Unicode line
// boundaries: CRLF, LF, CR, NEL (U+0085), LINE SEPARATOR (U+2028), and
// PARAGRAPH SEPARATOR (U+2029). The terminator is not part of the token.
// Unlike bufio.ScanLines, a lone CR ends a line, and the non-ASCII
// terminators are recognized so that non-ASCII source text splits
// correctly.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i := 0; i < len(data); i++ {
		switch c := data[i]; c {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// Cannot tell CR from CRLF without the next byte.
			return 0, nil, nil
		case nel1:
			if i+1 >= len(data) {
				if atEOF {
					return len(data), data, nil
				}
				return 0, nil, nil
			}
			if data[i+1] == nel2 {
				return i + 2, data[:i], nil
			}
		case sep1:
			if i+1 >= len(data) || (i+2 >= len(data) && data[i+1] == sep2) {
				if atEOF {
					return len(data), data, nil
				}
				return 0, nil, nil
			}
			if i+2 < len(data) && data[i+1] == sep2 && (data[i+2] == lineSep || data[i+2] == paraSep) {
				return i + 3, data[:i], nil
			}
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineSection
	lineKeyValue
	lineInvalid
)

// A line is the tagged result of classifying one input line. name is set
// for lineSection; key and value for lineKeyValue.
type line struct {
	kind  lineKind
	name  string
	key   string
	value string
}

// classify tags a single input line. The argument must already have its
// leading whitespace removed; trailing whitespace is significant only in
// values.
//
// Classification order: blank, comment, section header, key/value. A
// section header is the whole line (after right-trimming) and its name may
// not contain ']'. A key/value line splits at the first '=' or ':'; the
// key, right-trimmed, must be non-empty, so a line starting with a
// delimiter is invalid rather than a property with an empty key.
func classify(s string) line {
	if strings.TrimRightFunc(s, unicode.IsSpace) == "" {
		return line{kind: lineBlank}
	}
	if s[0] == ';' || s[0] == '#' {
		return line{kind: lineComment}
	}
	if s[0] == '[' {
		if t := strings.TrimRightFunc(s, unicode.IsSpace); strings.HasSuffix(t, "]") {
			if name := t[1 : len(t)-1]; name != "" && !strings.Contains(name, "]") {
				return line{kind: lineSection, name: name}
			}
		}
		// Not a well-formed header. Fall through: the line may still
		// split as a property (for example "[x]y=1").
	}
	i := strings.IndexAny(s, "=:")
	if i < 0 {
		return line{kind: lineInvalid}
	}
	key := strings.TrimRightFunc(s[:i], unicode.IsSpace)
	if key == "" {
		return line{kind: lineInvalid}
	}
	return line{kind: lineKeyValue, key: key, value: s[i+1:]}
}
