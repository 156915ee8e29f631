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

// A Shaper turns a string into the sequence of glyph names which a font
// with the given ligature rules displays.
type Shaper struct {
	cmap  runeIndex
	rules map[string]string
	max   int
	buf   []string
}

// NewShaper creates a new shaper for the glyphs of font and the given rules.
func NewShaper(font GlyphSource, rules []Rule) *Shaper {
	s := &Shaper{
		cmap:  newRuneIndex(font),
		rules: make(map[string]string, len(rules)),
	}
	for _, r := range rules {
		key := seqKey(r.Input)
		if _, seen := s.rules[key]; seen {
			continue
		}
		s.rules[key] = r.Ligature
		s.max = max(s.max, len(r.Input))
	}
	return s
}

// Layout returns the glyph names for the given text.  At every position the
// longest matching ligature is used.  Unmapped characters are shown as
// ".notdef".
//
// The returned slice is owned by the Shaper and is only valid until the next
// call to Layout.
func (s *Shaper) Layout(text string) []string {
	var in []string
	for _, r := range text {
		name, ok := s.cmap[r]
		if !ok {
			name = ".notdef"
		}
		in = append(in, name)
	}

	out := s.buf[:0]
	for i := 0; i < len(in); {
		n := 1
		lig := in[i]
		for k := min(s.max, len(in)-i); k >= 2; k-- {
			if name, ok := s.rules[seqKey(in[i:i+k])]; ok {
				n = k
				lig = name
				break
			}
		}
		out = append(out, lig)
		i += n
	}

	s.buf = out
	return out
}
