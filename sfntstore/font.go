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

// Package sfntstore reads, modifies and writes TrueType and OpenType fonts
// for the ligaturize package.
package sfntstore

import (
	"bytes"
	"errors"
	"os"
	"slices"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ligaturize"
)

// Font is a TrueType or OpenType font, with glyphs addressed by name.
//
// A Font is not safe for concurrent use.
type Font struct {
	// SFNT is the underlying font.  Glyphs must only be added
	// using the methods of Font.
	SFNT *sfnt.Font

	names []string
	index map[string]glyph.ID
	uni   map[glyph.ID]rune
}

var _ ligaturize.Font = (*Font)(nil)

// Open reads a font file.
func Open(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, &ligaturize.InputError{Path: fname, Err: err}
	}
	f, err := Read(data)
	if err != nil {
		var inputErr *ligaturize.InputError
		if errors.As(err, &inputErr) {
			inputErr.Path = fname
		}
		return nil, err
	}
	return f, nil
}

// Read decodes a font from memory.
func Read(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, &ligaturize.InputError{Err: err}
	}
	return New(info)
}

// New wraps an existing font.  Missing glyph names are filled in,
// and the font is modified to store these names.
func New(info *sfnt.Font) (*Font, error) {
	if info == nil {
		return nil, &ligaturize.InputError{Err: errNoOutlines}
	}
	switch info.Outlines.(type) {
	case *glyf.Outlines, *cff.Outlines:
		// pass
	default:
		return nil, &ligaturize.InputError{Err: errNoOutlines}
	}

	names := glyphNames(info)
	storeNames(info, names)

	f := &Font{
		SFNT:  info,
		names: names,
		index: make(map[string]glyph.ID, len(names)),
		uni:   make(map[glyph.ID]rune),
	}
	for gid, name := range names {
		f.index[name] = glyph.ID(gid)
	}

	if fontCMap, err := info.CMapTable.GetBest(); err == nil {
		low, high := fontCMap.CodeRange()
		for r := low; r <= high; r++ {
			gid := fontCMap.Lookup(r)
			if gid == 0 {
				continue
			}
			if _, seen := f.uni[gid]; !seen {
				f.uni[gid] = r
			}
		}
	}

	return f, nil
}

// GlyphNames returns the glyph names in glyph ID order.
// This implements the [ligaturize.GlyphSource] interface.
func (f *Font) GlyphNames() []string {
	return slices.Clone(f.names)
}

// Unicode returns the character mapped to the named glyph.  If several
// characters map to the same glyph, the smallest one is returned.
// This implements the [ligaturize.GlyphSource] interface.
func (f *Font) Unicode(name string) (rune, bool) {
	gid, ok := f.index[name]
	if !ok {
		return 0, false
	}
	r, ok := f.uni[gid]
	return r, ok
}

// GID returns the glyph ID of the named glyph.
func (f *Font) GID(name string) (glyph.ID, bool) {
	gid, ok := f.index[name]
	return gid, ok
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.names)
}

// FamilyName returns the family name of the font.
func (f *Font) FamilyName() string {
	return f.SFNT.FamilyName
}

// SetFamilyName changes the family name of the font.
func (f *Font) SetFamilyName(name string) {
	f.SFNT.FamilyName = name
}

// width returns the advance width of a glyph, in font design units.
func (f *Font) width(gid glyph.ID) float64 {
	switch o := f.SFNT.Outlines.(type) {
	case *glyf.Outlines:
		if int(gid) >= len(o.Widths) {
			return 0
		}
		return float64(o.Widths[gid])
	case *cff.Outlines:
		return asFloat(o.Glyphs[gid].Width)
	default:
		panic("unexpected font type")
	}
}

var errNoOutlines = errors.New("font has no TrueType or CFF outlines")
