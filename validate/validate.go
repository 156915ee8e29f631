// seehuhn.de/go/ligaturize - add programming ligatures to monospace fonts
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

// Package validate checks generated font files.
//
// The font is first parsed with golang.org/x/image/font/sfnt, then the
// ligature rules are read back with seehuhn.de/go/sfnt.
package validate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/sfnt"

	"seehuhn.de/go/ligaturize"
	"seehuhn.de/go/ligaturize/sfntstore"
)

// DefaultMinSize is the smallest file size accepted by default.
// Real fonts are much larger than this.
const DefaultMinSize = 50000

// Options controls the checks performed by [File].
// The zero value is ready to use.
type Options struct {
	// MinSize is the minimal file size in bytes.
	// If this is zero, DefaultMinSize is used.  Use a negative value
	// to disable the check.
	MinSize int64

	// Family, if set, is the expected family name.
	Family string

	// Feature is the feature tag of the ligature rules.
	// If this is empty, "liga" is used.
	Feature string

	// Catalog is used to find the characters of the rules' targets.
	// If this is nil, ligaturize.DefaultCatalog is used.
	Catalog []ligaturize.Target
}

// File checks that the font file fname exists, has a plausible size,
// can be parsed, and contains the given ligature rules.
// All errors are of type [*ligaturize.OutputError].
func File(fname string, rules []ligaturize.Rule, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	err := check(fname, rules, opts)
	if err != nil {
		return &ligaturize.OutputError{Path: fname, Err: err}
	}
	return nil
}

func check(fname string, rules []ligaturize.Rule, opts *Options) error {
	fi, err := os.Stat(fname)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return errors.New("not a regular file")
	}
	minSize := opts.MinSize
	if minSize == 0 {
		minSize = DefaultMinSize
	}
	if fi.Size() < minSize {
		return fmt.Errorf("%w: %d < %d bytes", errTooSmall, fi.Size(), minSize)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}

	font, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing font: %w", err)
	}
	buf := &sfnt.Buffer{}

	if opts.Family != "" {
		family, err := font.Name(buf, sfnt.NameIDFamily)
		if err != nil {
			return fmt.Errorf("reading family name: %w", err)
		}
		if family != opts.Family {
			return fmt.Errorf("family name is %q, expected %q", family, opts.Family)
		}
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = ligaturize.DefaultCatalog
	}
	seq := make(map[string][]rune, len(catalog))
	for _, t := range catalog {
		seq[t.ID] = t.Seq
	}
	for _, rule := range rules {
		for _, r := range seq[rule.Target] {
			gid, err := font.GlyphIndex(buf, r)
			if err != nil {
				return err
			}
			if gid == 0 {
				return fmt.Errorf("%s: no glyph for %q", rule.Target, r)
			}
		}
	}

	names, err := glyphNames(font, buf)
	if err != nil {
		return err
	}
	if names != nil {
		for _, rule := range rules {
			if !names[rule.Ligature] {
				return fmt.Errorf("%s: %w %q", rule.Target, errNoGlyph, rule.Ligature)
			}
		}
	}

	return checkRules(data, rules, opts)
}

// glyphNames returns the set of glyph names in the font.
// If the font does not store glyph names, nil is returned.
func glyphNames(font *sfnt.Font, buf *sfnt.Buffer) (map[string]bool, error) {
	names := make(map[string]bool, font.NumGlyphs())
	for i := 0; i < font.NumGlyphs(); i++ {
		name, err := font.GlyphName(buf, sfnt.GlyphIndex(i))
		if err != nil {
			return nil, err
		}
		if name != "" {
			names[name] = true
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	return names, nil
}

// checkRules verifies that the "GSUB" table contains the rules.
// Other rules registered under the same feature are allowed.
func checkRules(data []byte, rules []ligaturize.Rule, opts *Options) error {
	f, err := sfntstore.Read(data)
	if err != nil {
		return err
	}
	feature := opts.Feature
	if feature == "" {
		feature = "liga"
	}

	have := make(map[string]int)
	for _, r := range f.Ligatures(feature) {
		have[ruleKey(r)]++
	}
	var missing []string
	for _, r := range rules {
		key := ruleKey(r)
		if have[key] == 0 {
			missing = append(missing, fmt.Sprintf("%s -> %s",
				strings.Join(r.Input, " "), r.Ligature))
			continue
		}
		have[key]--
	}
	if missing != nil {
		return fmt.Errorf("%w: %s", errRuleMismatch, strings.Join(missing, ", "))
	}
	return nil
}

func ruleKey(r ligaturize.Rule) string {
	return strings.Join(r.Input, "\x00") + "\x00\x00" + r.Ligature
}

var (
	errTooSmall     = errors.New("file too small")
	errNoGlyph      = errors.New("missing glyph")
	errRuleMismatch = errors.New("ligature rules missing")
)
