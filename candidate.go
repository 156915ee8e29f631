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
	"strings"
)

// Candidate is a donor glyph which may represent a ligature.
type Candidate struct {
	// Name is the glyph name in the donor font.
	Name string

	// Tokens lists the character tokens inferred from the name.
	// See [Tokens].
	Tokens []string
}

// A Predicate decides whether an unmapped glyph looks like a ligature glyph.
type Predicate interface {
	IsLigature(name string) bool
}

// PredicateFunc adapts an ordinary function to the Predicate interface.
type PredicateFunc func(name string) bool

// IsLigature implements the [Predicate] interface.
func (f PredicateFunc) IsLigature(name string) bool {
	return f(name)
}

// NamePredicate recognises ligature glyphs by their names.
//
// A name is accepted if it contains one of the Separators, if it contains
// Marker, or if its lower case version contains one of the Keywords.
type NamePredicate struct {
	Separators string
	Marker     string
	Keywords   []string
}

// IsLigature implements the [Predicate] interface.
func (p *NamePredicate) IsLigature(name string) bool {
	if p.Separators != "" && strings.ContainsAny(name, p.Separators) {
		return true
	}
	if p.Marker != "" && strings.Contains(name, p.Marker) {
		return true
	}
	lower := strings.ToLower(name)
	for _, kw := range p.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DefaultKeywords are the names of the characters which commonly form
// programming ligatures.
var DefaultKeywords = []string{
	"hyphen", "greater", "less", "equal", "exclam", "plus", "bar", "ampersand",
}

// DefaultPredicate is used when a [Builder] has no predicate set.
var DefaultPredicate Predicate = &NamePredicate{
	Separators: "_",
	Marker:     "liga",
	Keywords:   DefaultKeywords,
}

// Discover returns the glyphs of the donor font which may be ligatures.
// A glyph qualifies if it has no Unicode mapping and if p accepts its name.
// If p is nil, DefaultPredicate is used.
//
// The candidates are returned in glyph ID order.
func Discover(donor GlyphSource, p Predicate) []Candidate {
	if p == nil {
		p = DefaultPredicate
	}

	var res []Candidate
	for _, name := range donor.GlyphNames() {
		if name == "" || name == ".notdef" {
			continue
		}
		if _, mapped := donor.Unicode(name); mapped {
			continue
		}
		if !p.IsLigature(name) {
			continue
		}
		res = append(res, Candidate{
			Name:   name,
			Tokens: Tokens(name),
		})
	}
	return res
}
