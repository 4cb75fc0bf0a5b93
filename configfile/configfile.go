// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package configfile provides a read-modify-write API over INI
// configuration files: section and key accessors, placeholder
// interpolation on reads, numeric coercions, and file I/O around the pure
// parsing core in package ini.
//
// A Config is owned by a single logical caller; wrap access in your own
// synchronization if several goroutines must share one.
package configfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/confkit/confkit/ini"
	"github.com/confkit/confkit/interp"
)

// Transform selects the case folding applied to section names and keys at
// parse time. Values are never transformed.
type Transform int

const (
	TransformNone Transform = iota
	TransformLower
	TransformUpper
)

// Options holds optional parameters for New. Nil is treated identically to
// the zero value.
type Options struct {
	// Transform folds section names and keys while reading.
	Transform Transform

	// OnInvalidLine, if non-nil, diverts invalid key/value lines to the
	// handler instead of stopping the read. See
	// ini.ParseOptions.OnInvalidLine.
	OnInvalidLine func(source string, line int, text string)
}

// ErrNotANumber reports a numeric lookup whose key is missing or whose
// value does not parse as a number. It stands in for the NaN result that
// GetInt cannot express.
var ErrNotANumber = errors.New("not a number")

// A Config is an INI configuration store with interpolation on reads.
// Each Config owns its store exclusively; nothing is shared between
// instances.
type Config struct {
	f    *ini.File
	opts Options
}

// New returns an empty Config.
func New(opts *Options) *Config {
	c := &Config{f: new(ini.File)}
	if opts != nil {
		c.opts = *opts
	}
	return c
}

func (c *Config) parseOptions(name string) *ini.ParseOptions {
	po := &ini.ParseOptions{
		Name:          name,
		OnInvalidLine: c.opts.OnInvalidLine,
	}
	switch c.opts.Transform {
	case TransformLower:
		po.NormalizeSection = strings.ToLower
		po.NormalizeKey = func(section, key string) string { return strings.ToLower(key) }
	case TransformUpper:
		po.NormalizeSection = strings.ToUpper
		po.NormalizeKey = func(section, key string) string { return strings.ToUpper(key) }
	}
	return po
}

// Read parses r, replacing the Config's contents.
func (c *Config) Read(r io.Reader) error {
	f, err := ini.Parse(r, c.parseOptions(""))
	if err != nil {
		return err
	}
	c.f = f
	return nil
}

// ReadFile parses the file at path, replacing the Config's contents. The
// path identifies the input in parse errors and invalid-line reports.
func (c *Config) ReadFile(path string) error {
	r, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	defer r.Close()
	f, err := ini.Parse(r, c.parseOptions(path))
	if err != nil {
		return err
	}
	c.f = f
	return nil
}

// Write serializes the Config to w.
func (c *Config) Write(w io.Writer) error {
	text, err := c.f.MarshalText()
	if err != nil {
		return err
	}
	if _, err := w.Write(text); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// WriteFile serializes the Config to the file at path.
func (c *Config) WriteFile(path string) error {
	text, err := c.f.MarshalText()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, text, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// String returns the serialized form of the Config.
func (c *Config) String() string {
	text, _ := c.f.MarshalText()
	return string(text)
}

// Sections returns the section names in insertion order.
func (c *Config) Sections() []string {
	return c.f.SectionNames()
}

// AddSection creates a new empty section, returning a
// *ini.DuplicateSectionError if the name exists. Re-declaring a header in
// parsed text overwrites instead; only explicit addition is strict.
func (c *Config) AddSection(name string) error {
	return c.f.AddSection(name)
}

// HasSection reports whether the named section exists.
func (c *Config) HasSection(name string) bool {
	return c.f.HasSection(name)
}

// RemoveSection removes the named section, reporting whether it existed.
func (c *Config) RemoveSection(name string) bool {
	return c.f.RemoveSection(name)
}

// Keys returns the keys of the named section in insertion order, or a
// *ini.NoSectionError.
func (c *Config) Keys(section string) ([]string, error) {
	return c.f.Keys(section)
}

// HasKey reports whether the key exists in the named section or in the
// DEFAULT section.
func (c *Config) HasKey(section, key string) bool {
	if c.f.HasKey(section, key) {
		return true
	}
	return c.f.HasSection(section) && c.f.HasKey(interp.DefaultSection, key)
}

// GetRaw returns the stored value without interpolation, consulting the
// named section and then DEFAULT. It returns "" if the key is absent from
// both. This is the escape hatch for values holding literal percent
// signs.
func (c *Config) GetRaw(section, key string) string {
	if v, ok := c.f.Lookup(section, key); ok {
		return v
	}
	if !c.f.HasSection(section) {
		return ""
	}
	v, _ := c.f.Lookup(interp.DefaultSection, key)
	return v
}

// Get returns the interpolated value at (section, key), consulting the
// named section and then DEFAULT. It returns "" without error if the
// section does not exist or the key is absent from both; a failed
// expansion returns a *interp.Error.
func (c *Config) Get(section, key string) (string, error) {
	if !c.HasKey(section, key) {
		return "", nil
	}
	return interp.Resolve(c.f, section, key)
}

// GetInt returns the interpolated value parsed as a base-10 integer.
// A missing section yields a *ini.NoSectionError; a missing key or a
// value that does not parse yields ErrNotANumber. Surrounding whitespace
// in the value is ignored.
func (c *Config) GetInt(section, key string) (int64, error) {
	v, err := c.number(section, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}

// GetFloat returns the interpolated value parsed as a float. A missing
// section yields a *ini.NoSectionError; a missing key or a value that
// does not parse yields math.NaN() and ErrNotANumber.
func (c *Config) GetFloat(section, key string) (float64, error) {
	v, err := c.number(section, key)
	if err != nil {
		if errors.Is(err, ErrNotANumber) {
			return math.NaN(), err
		}
		return 0, err
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN(), ErrNotANumber
	}
	return n, nil
}

func (c *Config) number(section, key string) (string, error) {
	if !c.f.HasSection(section) {
		return "", &ini.NoSectionError{Section: section}
	}
	if !c.HasKey(section, key) {
		return "", ErrNotANumber
	}
	v, err := interp.Resolve(c.f, section, key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

// An Item is one key/value pair of a section.
type Item struct {
	Key   string
	Value string
}

// Items returns the section's pairs in key insertion order, with values
// interpolated. It returns a *ini.NoSectionError if the section does not
// exist and a *interp.Error if any value fails to expand.
func (c *Config) Items(section string) ([]Item, error) {
	keys, err := c.f.Keys(section)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		v, err := interp.Resolve(c.f, section, k)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Key: k, Value: v})
	}
	return items, nil
}

// Set stores key → value in the named section, or returns a
// *ini.NoSectionError; sections are created with AddSection.
func (c *Config) Set(section, key, value string) error {
	return c.f.Set(section, key, value)
}

// RemoveKey removes the key from the named section, reporting whether it
// existed, or returns a *ini.NoSectionError.
func (c *Config) RemoveKey(section, key string) (bool, error) {
	return c.f.RemoveKey(section, key)
}

// File returns the underlying store, for use with packages operating on
// *ini.File directly (for example confsync).
func (c *Config) File() *ini.File {
	return c.f
}
