// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestScanLines(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name: "Empty",
		},
		{
			name:   "NoTerminator",
			source: "abc",
			want:   []string{"abc"},
		},
		{
			name:   "LF",
			source: "a\nb\n",
			want:   []string{"a", "b"},
		},
		{
			name:   "CRLF",
			source: "a\r\nb\r\n",
			want:   []string{"a", "b"},
		},
		{
			name:   "LoneCR",
			source: "a\rb",
			want:   []string{"a", "b"},
		},
		{
			name:   "TrailingCR",
			source: "a\r",
			want:   []string{"a"},
		},
		{
			name:   "NEL",
			source: "ab",
			want:   []string{"a", "b"},
		},
		{
			name:   "LineSeparator",
			source: "a b",
			want:   []string{"a", "b"},
		},
		{
			name:   "ParagraphSeparator",
			source: "a b",
			want:   []string{"a", "b"},
		},
		{
			name:   "Mixed",
			source: "a\r\nb\rc\nd e",
			want:   []string{"a", "b", "c", "d", "e"},
		},
		{
			name:   "BlankLines",
			source: "a\n\n\nb",
			want:   []string{"a", "", "", "b"},
		},
		{
			name:   "NonTerminatorMultibyte",
			source: "á\néü\n",
			want:   []string{"á", "éü"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// OneByteReader forces the scanner to see partial
			// terminators at buffer boundaries.
			for _, r := range []struct {
				name string
				s    *bufio.Scanner
			}{
				{"Whole", bufio.NewScanner(strings.NewReader(test.source))},
				{"ByteAtATime", bufio.NewScanner(iotest.OneByteReader(strings.NewReader(test.source)))},
			} {
				t.Run(r.name, func(t *testing.T) {
					r.s.Split(ScanLines)
					var got []string
					for r.s.Scan() {
						got = append(got, r.s.Text())
					}
					if err := r.s.Err(); err != nil {
						t.Fatal("scan:", err)
					}
					if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
						t.Errorf("lines (-want +got):\n%s", diff)
					}
				})
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  line
	}{
		{"", line{kind: lineBlank}},
		{"   ", line{kind: lineBlank}},
		{"; comment", line{kind: lineComment}},
		{"# comment", line{kind: lineComment}},
		{"[foo]", line{kind: lineSection, name: "foo"}},
		{"[ foo ]", line{kind: lineSection, name: " foo "}},
		{"[foo]  ", line{kind: lineSection, name: "foo"}},
		{"[a[b]", line{kind: lineSection, name: "a[b"}},
		{"[]", line{kind: lineInvalid}},
		{"[foo", line{kind: lineInvalid}},
		{"[foo]]", line{kind: lineInvalid}},
		{"[a]b", line{kind: lineInvalid}},
		{"k=v", line{kind: lineKeyValue, key: "k", value: "v"}},
		{"k:v", line{kind: lineKeyValue, key: "k", value: "v"}},
		{"k = v ", line{kind: lineKeyValue, key: "k", value: " v "}},
		{"k=", line{kind: lineKeyValue, key: "k", value: ""}},
		{"k=a=b", line{kind: lineKeyValue, key: "k", value: "a=b"}},
		{"a:b=c", line{kind: lineKeyValue, key: "a", value: "b=c"}},
		{"port=%(host)s:5432", line{kind: lineKeyValue, key: "port", value: "%(host)s:5432"}},
		{"[x]y=1", line{kind: lineKeyValue, key: "[x]y", value: "1"}},
		{"=v", line{kind: lineInvalid}},
		{":v", line{kind: lineInvalid}},
		{"=", line{kind: lineInvalid}},
		{" =v", line{kind: lineInvalid}},
		{"novalue", line{kind: lineInvalid}},
	}
	for _, test := range tests {
		got := classify(strings.TrimLeft(test.input, " \t"))
		if got != test.want {
			t.Errorf("classify(%q) = %+v; want %+v", test.input, got, test.want)
		}
	}
}
