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

// Package ligaturize adds programming ligatures to monospace fonts.
//
// The ligature glyphs are taken from a donor font.  A [Builder] scans the
// donor for unmapped glyphs whose names look like ligatures (see
// [Discover]), selects a donor glyph for every entry of a target catalog
// (see [Match]), looks up the base glyphs of the target characters in the
// destination font (see [ResolveBase]) and finally copies the ligature
// glyphs into the destination font and installs the corresponding
// substitution rules.
//
// The font files themselves are handled by the package
// seehuhn.de/go/ligaturize/sfntstore.
package ligaturize
