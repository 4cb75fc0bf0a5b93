// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "bytes"

// MarshalText serializes the file: for each section in insertion order, a
// [name] header, each key=value property in key order, then a blank line.
// Comments are not part of the store, so none are written. The output
// parses back to an equal store.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	var buf []byte
	for _, s := range f.sections {
		buf = append(buf, '[')
		buf = append(buf, s.name...)
		buf = append(buf, "]\n"...)
		for _, k := range s.keys {
			buf = append(buf, k...)
			buf = append(buf, '=')
			buf = append(buf, s.values[k]...)
			buf = append(buf, '\n')
		}
		buf = append(buf, '\n')
	}
	return buf, nil
}

// UnmarshalText parses the INI data with default options, replacing any
// sections in f.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}
