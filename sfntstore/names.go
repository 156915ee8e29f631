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

package sfntstore

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/postscript/type1/names"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/ligaturize"
)

// glyphNames returns unique names for all glyphs in the font.
//
// Names stored in the font are used where present.  Missing names are
// inferred from the cmap table and from ligature substitutions in the
// "GSUB" table.  Any glyphs still without a name are called "glyph00042"
// etc.
func glyphNames(info *sfnt.Font) []string {
	var glyphNames []string
	switch o := info.Outlines.(type) {
	case *cff.Outlines:
		glyphNames = make([]string, len(o.Glyphs))
		for gid, g := range o.Glyphs {
			if g != nil {
				glyphNames[gid] = g.Name
			}
		}
	case *glyf.Outlines:
		glyphNames = make([]string, len(o.Glyphs))
		if len(o.Names) == len(o.Glyphs) {
			copy(glyphNames, o.Names)
		}
	}
	if len(glyphNames) == 0 {
		return glyphNames
	}
	glyphNames[0] = ".notdef"

	used := make(map[string]bool)
	missing := 0
	for gid, name := range glyphNames {
		if used[name] {
			glyphNames[gid] = ""
		}
		if glyphNames[gid] == "" {
			missing++
		} else {
			used[name] = true
		}
	}
	if missing == 0 {
		return glyphNames
	}

	if fontCMap, _ := info.CMapTable.GetBest(); fontCMap != nil {
		low, high := fontCMap.CodeRange()
		for r := low; r <= high; r++ {
			gid := fontCMap.Lookup(r)
			if int(gid) >= len(glyphNames) || glyphNames[gid] != "" {
				// This includes unmapped characters (gid == 0).
				continue
			}
			name := names.FromUnicode(string(r))
			if !used[name] {
				glyphNames[gid] = name
				used[name] = true
			}
		}
	}

	// Name ligature glyphs after their components, in the same way as
	// ligature glyphs in a donor font are expected to be named.
	if info.Gsub != nil {
		for _, lookup := range info.Gsub.LookupList {
			for _, subtable := range lookup.Subtables {
				lig, ok := subtable.(*gtab.Gsub4_1)
				if !ok {
					continue
				}
				var parts []string
				firstGIDs := maps.Keys(lig.Cov)
				slices.Sort(firstGIDs)
				for _, firstGID := range firstGIDs {
					idx := lig.Cov[firstGID]
					if idx >= len(lig.Repl) || glyphNames[firstGID] == "" {
						continue
					}
				replLoop:
					for _, l := range lig.Repl[idx] {
						if int(l.Out) >= len(glyphNames) || glyphNames[l.Out] != "" {
							continue
						}
						parts = append(parts[:0], glyphNames[firstGID])
						for _, gid := range l.In {
							if int(gid) >= len(glyphNames) || glyphNames[gid] == "" {
								continue replLoop
							}
							parts = append(parts, glyphNames[gid])
						}
						glyphNames[l.Out] = ligaturize.MakeVariant(used, strings.Join(parts, "_")+".liga")
					}
				}
			}
		}
	}

	for gid, name := range glyphNames {
		if name == "" {
			glyphNames[gid] = ligaturize.MakeVariant(used, fmt.Sprintf("glyph%05d", gid))
		}
	}
	return glyphNames
}

// storeNames writes the glyph names into the font outlines,
// so that they are included when the font is written.
func storeNames(info *sfnt.Font, glyphNames []string) {
	switch o := info.Outlines.(type) {
	case *cff.Outlines:
		for gid, g := range o.Glyphs {
			if g != nil {
				g.Name = glyphNames[gid]
			}
		}
	case *glyf.Outlines:
		o.Names = glyphNames
	}
}
