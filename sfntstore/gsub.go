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

	"golang.org/x/exp/maps"
	"golang.org/x/text/language"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/ligaturize"
)

// noRequiredFeature is used in a script's feature list when no feature
// is required.
const noRequiredFeature gtab.FeatureIndex = 0xFFFF

// defaultScript is used when a new "GSUB" table is created.
var defaultScript = language.MustParse("und-Latn-x-latn")

// InstallLigatures adds a ligature substitution lookup for the given rules
// to the "GSUB" table of the font.  The lookup is registered under the
// given feature tag for all scripts.  Existing lookups are kept.
// This implements the [ligaturize.Font] interface.
func (f *Font) InstallLigatures(feature string, rules []ligaturize.Rule) error {
	if len(rules) == 0 {
		return nil
	}

	// ligatures grouped by the first glyph of the input sequence
	ll := map[glyph.ID][]gtab.Ligature{}
	for _, r := range rules {
		if len(r.Input) < 2 {
			return fmt.Errorf("ligature %q: input too short", r.Ligature)
		}
		gg := make([]glyph.ID, len(r.Input))
		for i, name := range r.Input {
			gid, ok := f.index[name]
			if !ok {
				return fmt.Errorf("%w: %q", errMissingGlyph, name)
			}
			gg[i] = gid
		}
		out, ok := f.index[r.Ligature]
		if !ok {
			return fmt.Errorf("%w: %q", errMissingGlyph, r.Ligature)
		}
		ll[gg[0]] = append(ll[gg[0]], gtab.Ligature{
			In:  gg[1:],
			Out: out,
		})
	}

	keys := maps.Keys(ll)
	slices.Sort(keys)

	cov := coverage.Table{}
	var repl [][]gtab.Ligature
	for i, gid := range keys {
		cov[gid] = i
		// Longer sequences first, so that the longest match is found.
		group := ll[gid]
		slices.SortStableFunc(group, func(a, b gtab.Ligature) int {
			return len(b.In) - len(a.In)
		})
		repl = append(repl, group)
	}
	subst := &gtab.Gsub4_1{
		Cov:  cov,
		Repl: repl,
	}

	gsub := f.SFNT.Gsub
	if gsub == nil {
		gsub = &gtab.Info{}
		f.SFNT.Gsub = gsub
	}
	if len(gsub.ScriptList) == 0 {
		gsub.ScriptList = map[language.Tag]*gtab.Features{
			defaultScript: {Required: noRequiredFeature},
		}
	}

	lookupIndex := gtab.LookupIndex(len(gsub.LookupList))
	gsub.LookupList = append(gsub.LookupList, &gtab.LookupTable{
		Meta:      &gtab.LookupMetaInfo{LookupType: 4},
		Subtables: []gtab.Subtable{subst},
	})
	featureIndex := gtab.FeatureIndex(len(gsub.FeatureList))
	gsub.FeatureList = append(gsub.FeatureList, &gtab.Feature{
		Tag:     feature,
		Lookups: []gtab.LookupIndex{lookupIndex},
	})
	for tag, features := range gsub.ScriptList {
		if features == nil {
			features = &gtab.Features{Required: noRequiredFeature}
			gsub.ScriptList[tag] = features
		}
		features.Optional = append(features.Optional, featureIndex)
	}

	return nil
}

// Ligatures returns the ligature substitutions registered in the "GSUB"
// table under the given feature tag.  Only the Input and Ligature fields
// of the rules are set.  The rules are ordered by lookup, then by the
// glyph ID of the first input glyph.
func (f *Font) Ligatures(feature string) []ligaturize.Rule {
	gsub := f.SFNT.Gsub
	if gsub == nil {
		return nil
	}

	var lookups []gtab.LookupIndex
	for _, feat := range gsub.FeatureList {
		if feat.Tag == feature {
			lookups = append(lookups, feat.Lookups...)
		}
	}
	slices.Sort(lookups)
	lookups = slices.Compact(lookups)

	var res []ligaturize.Rule
	for _, idx := range lookups {
		if int(idx) >= len(gsub.LookupList) {
			continue
		}
		for _, subtable := range gsub.LookupList[idx].Subtables {
			lig, ok := subtable.(*gtab.Gsub4_1)
			if !ok {
				continue
			}
			firstGIDs := maps.Keys(lig.Cov)
			slices.Sort(firstGIDs)
			for _, first := range firstGIDs {
				k := lig.Cov[first]
				if k >= len(lig.Repl) {
					continue
				}
				for _, l := range lig.Repl[k] {
					input := []string{f.name(first)}
					for _, gid := range l.In {
						input = append(input, f.name(gid))
					}
					res = append(res, ligaturize.Rule{
						Input:    input,
						Ligature: f.name(l.Out),
					})
				}
			}
		}
	}
	return res
}

func (f *Font) name(gid glyph.ID) string {
	if int(gid) < len(f.names) {
		return f.names[gid]
	}
	return fmt.Sprintf("glyph%05d", gid)
}
