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

// GlyphSource gives read access to the glyphs of a font.
type GlyphSource interface {
	// GlyphNames returns the names of all glyphs, in glyph ID order.
	// Names are unique within a font.
	GlyphNames() []string

	// Unicode returns the character which the font maps to the given glyph.
	// The second return value is false for unmapped glyphs.
	Unicode(name string) (rune, bool)
}

// Font is a destination font, which can be extended by ligature glyphs
// and ligature substitution rules.
//
// Implementations are not expected to be safe for concurrent use.
type Font interface {
	GlyphSource

	// AddLigatureGlyph creates a new glyph called dstName, with the outline
	// of the glyph srcName from src.  The input slice lists the names of the
	// base glyphs which the new glyph replaces.  If an error is returned, the
	// font must be left unchanged.
	AddLigatureGlyph(src GlyphSource, srcName, dstName string, input []string) error

	// InstallLigatures stores the rules in the font's substitution tables,
	// under the given feature tag.
	InstallLigatures(feature string, rules []Rule) error

	FamilyName() string
	SetFamilyName(name string)
}
