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

package ligaturize

import (
	"errors"
	"slices"
)

// memFont is an in-memory font for testing the builder.
type memFont struct {
	family string
	names  []string
	uni    map[string]rune

	// copied maps new glyph names to the donor glyph names.
	copied map[string]string

	// failOn and panicOn list donor glyphs which cannot be copied.
	failOn  map[string]bool
	panicOn map[string]bool

	// extra lists glyphs which are created in addition to the ligature
	// glyph when a donor glyph is copied, like components of a composite
	// glyph.
	extra map[string][]string

	feature   string
	installed []Rule
}

// newMemFont returns a font with a ".notdef" glyph, one mapped glyph for
// every character in mapped and one unmapped glyph for every name in
// unmapped.
func newMemFont(mapped string, unmapped ...string) *memFont {
	f := &memFont{
		family:  "Mem Mono",
		names:   []string{".notdef"},
		uni:     make(map[string]rune),
		copied:  make(map[string]string),
		failOn:  make(map[string]bool),
		panicOn: make(map[string]bool),
		extra:   make(map[string][]string),
	}
	for _, r := range mapped {
		name := TokenName(r)
		f.names = append(f.names, name)
		f.uni[name] = r
	}
	f.names = append(f.names, unmapped...)
	return f
}

func (f *memFont) GlyphNames() []string {
	return slices.Clone(f.names)
}

func (f *memFont) Unicode(name string) (rune, bool) {
	r, ok := f.uni[name]
	return r, ok
}

func (f *memFont) AddLigatureGlyph(src GlyphSource, srcName, dstName string, input []string) error {
	if f.panicOn[srcName] {
		panic("corrupt outline")
	}
	if f.failOn[srcName] {
		return errCorrupt
	}
	if !slices.Contains(src.GlyphNames(), srcName) {
		return errors.New("no such donor glyph")
	}
	if slices.Contains(f.names, dstName) {
		return errors.New("glyph exists")
	}
	for _, name := range f.extra[srcName] {
		if slices.Contains(f.names, name) {
			return errors.New("glyph exists")
		}
	}
	f.names = append(f.names, dstName)
	f.names = append(f.names, f.extra[srcName]...)
	f.copied[dstName] = srcName
	return nil
}

func (f *memFont) InstallLigatures(feature string, rules []Rule) error {
	f.feature = feature
	f.installed = append(f.installed, rules...)
	return nil
}

func (f *memFont) FamilyName() string {
	return f.family
}

func (f *memFont) SetFamilyName(name string) {
	f.family = name
}

var errCorrupt = errors.New("corrupt glyph")
