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

// ResolveBase returns the name of the first glyph in dst (in glyph ID order)
// which is mapped to the character r.
func ResolveBase(dst GlyphSource, r rune) (string, bool) {
	for _, name := range dst.GlyphNames() {
		if u, ok := dst.Unicode(name); ok && u == r {
			return name, true
		}
	}
	return "", false
}

// runeIndex maps characters to glyph names.  When several glyphs are
// mapped to the same character, the glyph with the lowest glyph ID is used,
// as in [ResolveBase].
type runeIndex map[rune]string

func newRuneIndex(font GlyphSource) runeIndex {
	idx := make(runeIndex)
	for _, name := range font.GlyphNames() {
		r, ok := font.Unicode(name)
		if !ok {
			continue
		}
		if _, seen := idx[r]; !seen {
			idx[r] = name
		}
	}
	return idx
}

// resolve returns the glyph names for all characters in seq.
// If a character is not mapped, the character is returned instead.
func (idx runeIndex) resolve(seq []rune) ([]string, rune, bool) {
	res := make([]string, len(seq))
	for i, r := range seq {
		name, ok := idx[r]
		if !ok {
			return nil, r, false
		}
		res[i] = name
	}
	return res, 0, true
}
