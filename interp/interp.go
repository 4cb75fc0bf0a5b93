// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

/*
Package interp expands placeholder references inside configuration values.

A value may reference other keys with the syntax %(name)s. The reference is
resolved against the originating section first, then against the DEFAULT
section. Referenced values are themselves expanded before substitution, to
any nesting depth up to MaxDepth. %% produces a literal percent sign; any
other use of '%' is an error. This syntax is fixed: a value that deviates
from it fails with an *Error rather than passing through.

Resolution is read-only and performed from scratch on every call, so a
mutation of a referenced key is observed by the next Resolve.
*/
package interp

import (
	"fmt"
	"strings"
)

// DefaultSection is the fallback section consulted when a referenced key
// is not found in the originating section.
const DefaultSection = "DEFAULT"

// MaxDepth caps how many levels of nested references one resolution may
// follow before failing.
const MaxDepth = 10

// A Lookup provides raw (non-expanded) values by section and key.
// *ini.File satisfies Lookup.
type Lookup interface {
	Lookup(section, key string) (value string, ok bool)
}

// An Error reports a failed resolution: a missing referenced key, a
// reference cycle, too-deep nesting, or malformed placeholder syntax.
type Error struct {
	Section string
	Key     string
	Msg     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("interpolate %s.%s: %s", e.Section, e.Key, e.Msg)
}

// Resolve returns the fully expanded value stored at (section, key),
// looked up in that section and then in DefaultSection. The store is
// never modified.
func Resolve(lk Lookup, section, key string) (string, error) {
	r := &resolver{lk: lk}
	return r.resolve(section, key, 1)
}

type ref struct {
	section, key string
}

type resolver struct {
	lk    Lookup
	chain []ref // keys currently being expanded, outermost first
}

func (r *resolver) resolve(section, key string, depth int) (string, error) {
	raw, ok := r.lk.Lookup(section, key)
	if !ok {
		raw, ok = r.lk.Lookup(DefaultSection, key)
	}
	if !ok {
		return "", &Error{Section: section, Key: key, Msg: "no such key in section or " + DefaultSection}
	}
	for _, c := range r.chain {
		if c.section == section && c.key == key {
			return "", &Error{Section: section, Key: key, Msg: "reference cycle " + r.chainString(section, key)}
		}
	}
	if depth > MaxDepth {
		return "", &Error{Section: section, Key: key, Msg: fmt.Sprintf("more than %d levels of substitution in raw value %q", MaxDepth, raw)}
	}
	r.chain = append(r.chain, ref{section, key})
	defer func() { r.chain = r.chain[:len(r.chain)-1] }()
	return r.expand(raw, section, key, depth)
}

func (r *resolver) expand(raw, section, key string, depth int) (string, error) {
	b := new(strings.Builder)
	b.Grow(len(raw))
	rest := raw
	for {
		p := strings.IndexByte(rest, '%')
		if p < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:p])
		rest = rest[p:]
		if len(rest) < 2 {
			return "", &Error{Section: section, Key: key, Msg: fmt.Sprintf("'%%' at end of raw value %q", raw)}
		}
		switch rest[1] {
		case '%':
			b.WriteByte('%')
			rest = rest[2:]
		case '(':
			end := strings.IndexByte(rest, ')')
			if end < 0 {
				return "", &Error{Section: section, Key: key, Msg: fmt.Sprintf("unterminated reference in raw value %q", raw)}
			}
			name := rest[2:end]
			if name == "" {
				return "", &Error{Section: section, Key: key, Msg: fmt.Sprintf("empty reference in raw value %q", raw)}
			}
			if end+1 >= len(rest) || rest[end+1] != 's' {
				return "", &Error{Section: section, Key: key, Msg: fmt.Sprintf("reference %%(%s) must be followed by 's' in raw value %q", name, raw)}
			}
			sub, err := r.resolve(section, name, depth+1)
			if err != nil {
				return "", err
			}
			b.WriteString(sub)
			rest = rest[end+2:]
		default:
			return "", &Error{Section: section, Key: key, Msg: fmt.Sprintf("'%%' must be followed by '%%' or '(' in raw value %q", raw)}
		}
	}
}

func (r *resolver) chainString(section, key string) string {
	parts := make([]string, 0, len(r.chain)+1)
	for _, c := range r.chain {
		parts = append(parts, c.section+"."+c.key)
	}
	parts = append(parts, section+"."+key)
	return strings.Join(parts, " -> ")
}
